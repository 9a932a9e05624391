package session

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-sif/frames"
	"github.com/go-sif/frames/accumulators"
	errors "github.com/go-sif/frames/errors"
	"github.com/go-sif/frames/internal/partition"
	"github.com/go-sif/frames/logging"
	"github.com/go-sif/frames/schema"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const itemsCSV = "id,weight,type\nA,5.0,Dairy\nB,12.0,Dairy\nC,12.0,Meat\n"

func createSession(t *testing.T) *Session {
	sess, err := Create(&Options{
		NumWorkers:            2,
		TempDir:               t.TempDir(),
		NumInMemoryPartitions: 2,
		Logger:                logging.Discard(),
		Clock:                 func() time.Time { return time.Date(2024, 3, 30, 0, 0, 0, 0, time.UTC) },
	})
	require.Nil(t, err)
	t.Cleanup(sess.Close)
	return sess
}

func writeFile(t *testing.T, name string, contents string) string {
	path := filepath.Join(t.TempDir(), name)
	require.Nil(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestOptionsValidation(t *testing.T) {
	_, err := Create(&Options{NumWorkers: -1})
	require.NotNil(t, err)
	_, err = Create(&Options{Compression: "rar", TempDir: t.TempDir()})
	require.NotNil(t, err)
}

func TestReadCSVAndShow(t *testing.T) {
	sess := createSession(t)
	df, err := sess.Read(writeFile(t, "items.csv", itemsCSV), &ReadOptions{Header: true, InferSchema: true})
	require.Nil(t, err)
	require.Equal(t, "id string, weight double, type string", schema.ToDDL(df.GetSchema()))

	var out strings.Builder
	require.Nil(t, sess.Show(context.Background(), df, 2, &out))
	require.Equal(t, strings.Join([]string{
		"+---+------+-----+",
		"| id|weight| type|",
		"+---+------+-----+",
		"|  A|   5.0|Dairy|",
		"|  B|  12.0|Dairy|",
		"+---+------+-----+",
		"only showing top 2 rows",
		"",
	}, "\n"), out.String())

	out.Reset()
	require.Nil(t, sess.PrintSchema(df, &out))
	require.Equal(t, "root\n |-- id: string (nullable = true)\n |-- weight: double (nullable = true)\n |-- type: string (nullable = true)\n", out.String())
}

func TestReadWithExplicitSchema(t *testing.T) {
	sess := createSession(t)
	df, err := sess.Read(writeFile(t, "items.csv", itemsCSV), &ReadOptions{Header: true, SchemaDDL: "id string, weight string, type string"})
	require.Nil(t, err)
	row, err := sess.First(context.Background(), df)
	require.Nil(t, err)
	require.Equal(t, []interface{}{"A", "5.0", "Dairy"}, row.Values())

	_, err = sess.Read(filepath.Join(t.TempDir(), "*.csv"), nil)
	require.IsType(t, errors.SourceNotFoundError{}, err)
	_, err = sess.Read(writeFile(t, "items.csv", itemsCSV), &ReadOptions{Format: "xml"})
	require.NotNil(t, err)
}

func TestReadJSON(t *testing.T) {
	sess := createSession(t)
	path := writeFile(t, "people.json", "{\"name\": \"a\", \"age\": 3}\n{\"name\": \"b\"}\n")
	df, err := sess.Read(path, &ReadOptions{Format: FormatJSON})
	require.Nil(t, err)
	require.Equal(t, "age bigint, name string", schema.ToDDL(df.GetSchema()))
	rows, err := sess.Collect(context.Background(), df)
	require.Nil(t, err)
	require.Equal(t, []interface{}{int64(3), "a"}, rows[0].Values())
	require.Equal(t, []interface{}{nil, "b"}, rows[1].Values())

	path = writeFile(t, "people.json", "[{\"name\": \"a\"},\n {\"name\": \"b\"}]")
	df, err = sess.Read(path, &ReadOptions{Format: FormatJSON, MultiLine: true})
	require.Nil(t, err)
	count, err := sess.Count(context.Background(), df)
	require.Nil(t, err)
	require.Equal(t, int64(2), count)
}

func TestActions(t *testing.T) {
	sess := createSession(t)
	require.Nil(t, sess.Statistics())
	df, err := sess.CreateDataFrame(schema.MustParse("id string, weight double, type string"), [][]interface{}{
		{"A", 5.0, "Dairy"},
		{"B", 12.0, "Dairy"},
		{"C", 12.0, "Meat"},
	})
	require.Nil(t, err)

	count, err := sess.Count(context.Background(), df)
	require.Nil(t, err)
	require.Equal(t, int64(3), count)
	stats := sess.Statistics()
	require.NotNil(t, stats)
	require.Equal(t, []int64{3}, stats.GetNumRowsProcessed())

	acc, err := sess.Accumulate(context.Background(), df, accumulators.Adder("weight"))
	require.Nil(t, err)
	require.Equal(t, 29.0, acc.Value())

	rows, err := sess.CollectN(context.Background(), df, 2)
	require.Nil(t, err)
	require.Equal(t, 2, len(rows))

	empty, err := sess.CreateDataFrame(df.GetSchema(), [][]interface{}{})
	require.Nil(t, err)
	first, err := sess.First(context.Background(), empty)
	require.Nil(t, err)
	require.Nil(t, first)

	sess.Close()
	_, err = sess.Collect(context.Background(), df)
	require.NotNil(t, err)
}

func TestCanceledContext(t *testing.T) {
	sess := createSession(t)
	df, err := sess.CreateDataFrame(schema.MustParse("id string"), [][]interface{}{{"A"}})
	require.Nil(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = sess.Collect(ctx, df)
	require.ErrorIs(t, err, context.Canceled)
}

func gridRows(s frames.Schema, values ...[]interface{}) []frames.Row {
	rows := make([]frames.Row, len(values))
	for i, v := range values {
		rows[i] = partition.CreateRow(v, s)
	}
	return rows
}

func TestFormatGrid(t *testing.T) {
	s := schema.MustParse("name string, n int")
	rows := gridRows(s,
		[]interface{}{"日本", int32(1)},
		[]interface{}{"a very long string", nil},
	)
	require.Equal(t, strings.Join([]string{
		"+----------+----+",
		"|      name|   n|",
		"+----------+----+",
		"|      日本|   1|",
		"|a very ...|null|",
		"+----------+----+",
		"",
	}, "\n"), FormatGrid(s, rows, 5, 10))

	require.Equal(t, strings.Join([]string{
		"+----+---+",
		"|name|n  |",
		"+----+---+",
		"|日本|1  |",
		"+----+---+",
		"only showing top 1 row",
		"",
	}, "\n"), FormatGrid(s, rows, 1, 0))

	require.Equal(t, "+----+---+\n|name|  n|\n+----+---+\n+----+---+\n", FormatGrid(s, nil, 20, DefaultTruncate))
}
