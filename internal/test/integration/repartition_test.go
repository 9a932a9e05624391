package integration

import (
	"testing"

	"github.com/go-sif/frames"
	"github.com/go-sif/frames/datasource/memory"
	"github.com/go-sif/frames/datasource/parser/jsonl"
	ops "github.com/go-sif/frames/operations/transform"
	"github.com/go-sif/frames/schema"
	"github.com/go-sif/frames/testing/frametest"
	"github.com/stretchr/testify/require"
)

func createTestRepartitionDataFrame(t *testing.T, numFiles int) frames.DataFrame {
	data := make([][]byte, numFiles)
	for i := 0; i < numFiles; i++ {
		first, second := "abc", "def"
		if i%2 == 1 {
			first, second = second, first
		}
		for j := 0; j < 5; j++ {
			data[i] = append(data[i], []byte("{\"col1\": \""+first+"\"}\n{\"col1\": \""+second+"\"}\n")...)
		}
	}

	parser := jsonl.CreateParser(&jsonl.ParserConf{
		PartitionSize: 5,
	})
	dataframe, err := memory.CreateDataFrame(data, parser, schema.MustParse("col1 string"))
	require.Nil(t, err)
	return dataframe
}

func TestRepartition(t *testing.T) {
	frame, err := createTestRepartitionDataFrame(t, 2).To(
		ops.Repartition(10, func(row frames.Row) ([]byte, error) {
			col1, err := row.GetString("col1")
			if err != nil {
				return nil, err
			}
			return []byte(col1), nil
		}),
	)
	require.Nil(t, err)

	rows := frametest.CollectRows(t, frame)
	require.Len(t, rows, 20)
	// rows with equal keys are gathered together, in order of first appearance
	for i, val := range frametest.Values(t, rows, "col1") {
		if i < 10 {
			require.Equal(t, "abc", val)
		} else {
			require.Equal(t, "def", val)
		}
	}
}
