package integration

import (
	"context"
	"testing"

	"github.com/go-sif/frames"
	"github.com/go-sif/frames/datasource/memory"
	"github.com/go-sif/frames/datasource/parser/jsonl"
	ops "github.com/go-sif/frames/operations/transform"
	"github.com/go-sif/frames/schema"
	"github.com/go-sif/frames/session"
	"github.com/go-sif/frames/testing/frametest"
	"github.com/stretchr/testify/require"
)

func createTestReduceDataFrame(t *testing.T, numRows int) frames.DataFrame {
	row := []byte("{\"col1\": \"abc\"}")
	data := make([][]byte, numRows)
	for i := 0; i < len(data); i++ {
		data[i] = row
	}

	parser := jsonl.CreateParser(&jsonl.ParserConf{
		PartitionSize: 5,
	})
	dataframe, err := memory.CreateDataFrame(data, parser, schema.MustParse("col1 string"))
	require.Nil(t, err)
	return dataframe
}

func TestReduce(t *testing.T) {
	numRows := 100
	frame, err := createTestReduceDataFrame(t, numRows).To(
		ops.AddColumn("count", &frames.Int32ColumnType{}),
		ops.Map(func(row frames.Row) error {
			return row.SetInt32("count", int32(1))
		}),
		ops.RemoveColumn("col1"),
		ops.Reduce(func(row frames.Row) ([]byte, error) {
			return []byte{byte(1)}, nil
		}, func(lrow frames.Row, rrow frames.Row) error {
			lval, err := lrow.GetInt32("count")
			if err != nil {
				return err
			}
			rval, err := rrow.GetInt32("count")
			if err != nil {
				return err
			}
			return lrow.SetInt32("count", lval+rval)
		}),
	)
	require.Nil(t, err)
	require.Equal(t, []string{"count"}, frame.GetSchema().ColumnNames())

	// summing to a single row
	rows, err := frametest.LocalRunFrame(context.Background(), frame, &session.Options{NumWorkers: 2, TempDir: t.TempDir()})
	require.Nil(t, err)
	require.Len(t, rows, 1)
	count, err := rows[0].GetInt32("count")
	require.Nil(t, err)
	require.EqualValues(t, numRows, count)
}
