package transform

import (
	"bytes"
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/go-sif/frames"
	"github.com/go-sif/frames/datasource/memory"
	errors "github.com/go-sif/frames/errors"
	"github.com/go-sif/frames/expr"
	"github.com/go-sif/frames/logging"
	"github.com/go-sif/frames/schema"
	"github.com/go-sif/frames/session"
	"github.com/go-sif/frames/testing/frametest"
	"github.com/stretchr/testify/require"
)

const itemsDDL = "id string, weight double, type string"

func createFrame(t *testing.T, ddl string, rows ...[]interface{}) frames.DataFrame {
	// small Partitions, so that every operation sees more than one
	df, err := memory.CreateRowDataFrame(rows, schema.MustParse(ddl), 2)
	require.Nil(t, err)
	return df
}

func createItems(t *testing.T) frames.DataFrame {
	return createFrame(t, itemsDDL,
		[]interface{}{"A", 5.0, "Dairy"},
		[]interface{}{"B", 12.0, "Dairy"},
		[]interface{}{"C", 12.0, "Meat"},
	)
}

func run(t *testing.T, df frames.DataFrame, ops ...frames.DataFrameOperation) []frames.Row {
	next, err := df.To(ops...)
	require.Nil(t, err)
	return frametest.CollectRows(t, next)
}

func rowValues(rows []frames.Row) [][]interface{} {
	values := make([][]interface{}, len(rows))
	for i, row := range rows {
		values[i] = row.Values()
	}
	return values
}

func TestSelectAllColumnsReproducesFrame(t *testing.T) {
	df := createItems(t)
	selected, err := df.To(SelectColumns("id", "weight", "type"))
	require.Nil(t, err)
	require.Nil(t, selected.GetSchema().Equals(df.GetSchema()))
	require.Equal(t, rowValues(frametest.CollectRows(t, df)), rowValues(frametest.CollectRows(t, selected)))
}

func TestSelectExpressions(t *testing.T) {
	df := createItems(t)
	selected, err := df.To(Select(
		expr.Col("id"),
		expr.Upper(expr.Col("type")),
		expr.Alias(expr.Mul(expr.Col("weight"), 2), "w"),
	))
	require.Nil(t, err)
	require.Equal(t, "id string, upper(type) string, w double", schema.ToDDL(selected.GetSchema()))
	rows := frametest.CollectRows(t, selected)
	require.Equal(t, []interface{}{"A", "DAIRY", 10.0}, rows[0].Values())

	_, err = df.To(Select(expr.Col("id"), expr.Col("id")))
	require.Equal(t, errors.DuplicateColumnError{Name: "id"}, err)
	_, err = df.To(Select(expr.Col("price")))
	require.Equal(t, errors.ColumnNotFoundError{Name: "price"}, err)
}

func TestWithColumn(t *testing.T) {
	df := createItems(t)
	next, err := df.To(
		WithColumn("weight", expr.Mul(expr.Col("weight"), 2)),
		WithColumn("heavy", expr.Gt(expr.Col("weight"), 20)),
	)
	require.Nil(t, err)
	require.Equal(t, "id string, weight double, type string, heavy boolean", schema.ToDDL(next.GetSchema()))
	rows := frametest.CollectRows(t, next)
	require.Equal(t, []interface{}{"A", 10.0, "Dairy", false}, rows[0].Values())
	require.Equal(t, []interface{}{"B", 24.0, "Dairy", true}, rows[1].Values())

	// replacing a column may change its type
	next, err = df.To(WithColumn("weight", expr.Cast(expr.Col("weight"), "int")))
	require.Nil(t, err)
	require.Equal(t, "id string, weight int, type string", schema.ToDDL(next.GetSchema()))
}

func TestFilterKeepsMatchingRowsInOrder(t *testing.T) {
	rows := run(t, createItems(t), Filter(expr.Gt(expr.Col("weight"), 10)))
	require.Equal(t, []interface{}{"B", "C"}, frametest.Values(t, rows, "id"))
}

func TestChainedFiltersEqualConjunction(t *testing.T) {
	p := expr.Gt(expr.Col("weight"), 10)
	q := expr.Eq(expr.Col("type"), "Dairy")
	chained := run(t, createItems(t), Filter(p), Filter(q))
	combined := run(t, createItems(t), Filter(expr.And(p, q)))
	require.Equal(t, rowValues(combined), rowValues(chained))
	require.Equal(t, []interface{}{"B"}, frametest.Values(t, chained, "id"))
}

func TestFilterDropsNulls(t *testing.T) {
	df := createFrame(t, itemsDDL,
		[]interface{}{"A", nil, "Dairy"},
		[]interface{}{"B", 12.0, nil},
	)
	require.Equal(t, 1, len(run(t, df, Filter(expr.Gt(expr.Col("weight"), 10)))))
	require.Equal(t, 0, len(run(t, df, Filter(expr.Not(expr.Gt(expr.Col("weight"), 10))))))
	require.Equal(t, 1, len(run(t, df, Filter(expr.IsNull(expr.Col("weight"))))))

	_, err := df.To(Filter(expr.Col("id")))
	require.IsType(t, errors.SchemaMismatchError{}, err)
}

func TestFilterFunc(t *testing.T) {
	rows := run(t, createItems(t), FilterFunc(func(row frames.Row) (bool, error) {
		typ, err := row.GetString("type")
		return typ == "Meat", err
	}))
	require.Equal(t, []interface{}{"C"}, frametest.Values(t, rows, "id"))
}

func TestRenameColumn(t *testing.T) {
	df := createItems(t)
	rows := run(t, df, RenameColumn("weight", "mass"), FilterFunc(func(row frames.Row) (bool, error) {
		mass, err := row.GetFloat64("mass")
		return mass > 10, err
	}))
	require.Equal(t, 2, len(rows))
	require.Equal(t, "id string, mass double, type string", schema.ToDDL(rows[0].Schema()))

	_, err := df.To(RenameColumn("id", "type"))
	require.Equal(t, errors.DuplicateColumnError{Name: "type"}, err)
	_, err = df.To(RenameColumn("nope", "x"))
	require.Equal(t, errors.ColumnNotFoundError{Name: "nope"}, err)
	same, err := df.To(RenameColumn("id", "id"))
	require.Nil(t, err)
	require.Nil(t, same.GetSchema().Equals(df.GetSchema()))
}

func TestRemoveColumn(t *testing.T) {
	rows := run(t, createItems(t), RemoveColumn("weight", "nope"))
	require.Equal(t, []interface{}{"A", "Dairy"}, rows[0].Values())
	require.Equal(t, "id string, type string", schema.ToDDL(rows[0].Schema()))
}

func TestSortDescendingIsStable(t *testing.T) {
	rows := run(t, createItems(t), Sort(Desc("weight")))
	require.Equal(t, []interface{}{"B", "C", "A"}, frametest.Values(t, rows, "id"))
	rows = run(t, createItems(t), Sort(Asc("type"), Desc("id")))
	require.Equal(t, []interface{}{"B", "A", "C"}, frametest.Values(t, rows, "id"))
}

func TestSortNullOrdering(t *testing.T) {
	df := createFrame(t, itemsDDL,
		[]interface{}{"A", 5.0, "Dairy"},
		[]interface{}{"N", nil, "Dairy"},
		[]interface{}{"B", 12.0, "Dairy"},
	)
	require.Equal(t, []interface{}{"N", "A", "B"}, frametest.Values(t, run(t, df, Sort(Asc("weight"))), "id"))
	require.Equal(t, []interface{}{"B", "A", "N"}, frametest.Values(t, run(t, df, Sort(Desc("weight"))), "id"))
	_, err := df.To(Sort(Asc("nope")))
	require.Equal(t, errors.ColumnNotFoundError{Name: "nope"}, err)
}

func TestDropDuplicates(t *testing.T) {
	df := createFrame(t, itemsDDL,
		[]interface{}{"A", 5.0, "Dairy"},
		[]interface{}{"A", 5.0, "Dairy"},
		[]interface{}{"B", nil, "Dairy"},
		[]interface{}{"B", nil, "Dairy"},
		[]interface{}{"C", 12.0, "Meat"},
	)
	distinct := run(t, df, Distinct())
	require.Equal(t, 3, len(distinct))
	seen := map[string]bool{}
	for _, row := range distinct {
		require.False(t, seen[row.ToString()])
		seen[row.ToString()] = true
	}
	require.Equal(t, 2, len(run(t, df, DropDuplicates("type"))))
	_, err := df.To(DropDuplicates("nope"))
	require.Equal(t, errors.ColumnNotFoundError{Name: "nope"}, err)
}

func TestDropNA(t *testing.T) {
	df := createFrame(t, itemsDDL,
		[]interface{}{"A", nil, "Dairy"},
		[]interface{}{"B", 12.0, nil},
		[]interface{}{"C", 12.0, "Meat"},
	)
	require.Equal(t, []interface{}{"C"}, frametest.Values(t, run(t, df, DropNA()), "id"))
	require.Equal(t, []interface{}{"B", "C"}, frametest.Values(t, run(t, df, DropNA("weight")), "id"))
}

func TestFillNA(t *testing.T) {
	df := createFrame(t, itemsDDL,
		[]interface{}{"A", nil, "Dairy"},
		[]interface{}{"B", 12.0, nil},
	)
	rows := run(t, df, FillNA(map[string]interface{}{"weight": 0.0}))
	require.Equal(t, []interface{}{"A", 0.0, "Dairy"}, rows[0].Values())
	require.Equal(t, []interface{}{"B", 12.0, nil}, rows[1].Values())

	// values are cast to numeric column types, but never across kinds
	rows = run(t, df, FillNA(map[string]interface{}{"weight": 1, "type": 2, "nope": "x"}))
	require.Equal(t, []interface{}{"A", 1.0, "Dairy"}, rows[0].Values())
	require.Equal(t, []interface{}{"B", 12.0, nil}, rows[1].Values())
	rows = run(t, df, FillNA(map[string]interface{}{"weight": "zero"}))
	require.Nil(t, rows[0].GetAt(1))

	rows = run(t, df, FillNAValue("unknown"))
	require.Equal(t, []interface{}{"A", nil, "Dairy"}, rows[0].Values())
	require.Equal(t, []interface{}{"B", 12.0, "unknown"}, rows[1].Values())
}

func TestFillNALogsSkippedColumns(t *testing.T) {
	df := createFrame(t, itemsDDL, []interface{}{"A", nil, "Dairy"})
	next, err := df.To(FillNA(map[string]interface{}{"weight": "zero"}))
	require.Nil(t, err)
	var out bytes.Buffer
	_, err = frametest.LocalRunFrame(context.Background(), next, &session.Options{Logger: logging.NewLogger(logging.DebugLevel, &out), TempDir: t.TempDir()})
	require.Nil(t, err)
	require.Contains(t, out.String(), `msg="fill value does not match column type" columns=[weight]`)

	out.Reset()
	_, err = frametest.LocalRunFrame(context.Background(), next, &session.Options{Logger: logging.NewLogger(logging.InfoLevel, &out), TempDir: t.TempDir()})
	require.Nil(t, err)
	require.Empty(t, out.String())
}

func TestUnion(t *testing.T) {
	a := createItems(t)
	b := createFrame(t, itemsDDL,
		[]interface{}{"D", 1.0, "Fruit"},
		[]interface{}{"E", 2.0, "Fruit"},
	)
	rows := run(t, a, Union(b))
	require.Equal(t, []interface{}{"A", "B", "C", "D", "E"}, frametest.Values(t, rows, "id"))

	reordered := createFrame(t, "type string, id string, weight double", []interface{}{"Fruit", "D", 1.0})
	_, err := a.To(Union(reordered))
	require.IsType(t, errors.SchemaMismatchError{}, err)
}

func TestUnionByName(t *testing.T) {
	a := createItems(t)
	b := createFrame(t, "type string, id string, weight double", []interface{}{"Fruit", "D", 1.0})
	next, err := a.To(UnionByName(b))
	require.Nil(t, err)
	require.Nil(t, next.GetSchema().Equals(a.GetSchema()))
	rows := frametest.CollectRows(t, next)
	require.Equal(t, 4, len(rows))
	require.Equal(t, []interface{}{"D", 1.0, "Fruit"}, rows[3].Values())

	missing := createFrame(t, "id string, weight double", []interface{}{"D", 1.0})
	_, err = a.To(UnionByName(missing))
	require.Equal(t, errors.ColumnNotFoundError{Name: "type"}, err)
	extra := createFrame(t, "id string, weight double, type string, color string", []interface{}{"D", 1.0, "Fruit", "red"})
	_, err = a.To(UnionByName(extra))
	require.Equal(t, errors.ColumnNotFoundError{Name: "color"}, err)
	retyped := createFrame(t, "id string, weight string, type string", []interface{}{"D", "1.0", "Fruit"})
	_, err = a.To(UnionByName(retyped))
	require.IsType(t, errors.SchemaMismatchError{}, err)
}

func TestUnionByNameAllowMissing(t *testing.T) {
	a := createItems(t)
	b := createFrame(t, "color string, id string", []interface{}{"red", "D"})
	next, err := a.To(UnionByNameAllowMissing(b))
	require.Nil(t, err)
	require.Equal(t, "id string, weight double, type string, color string", schema.ToDDL(next.GetSchema()))
	rows := frametest.CollectRows(t, next)
	require.Equal(t, 4, len(rows))
	require.Equal(t, []interface{}{"A", 5.0, "Dairy", nil}, rows[0].Values())
	require.Equal(t, []interface{}{"D", nil, nil, "red"}, rows[3].Values())
}

func TestExplode(t *testing.T) {
	df := createFrame(t, "id string, tags array<string>",
		[]interface{}{"A", []interface{}{"x", "y"}},
		[]interface{}{"B", nil},
		[]interface{}{"C", []interface{}{}},
	)
	next, err := df.To(Explode("tags"))
	require.Nil(t, err)
	require.Equal(t, "id string, tags string", schema.ToDDL(next.GetSchema()))
	rows := frametest.CollectRows(t, next)
	require.Equal(t, [][]interface{}{{"A", "x"}, {"A", "y"}}, rowValues(rows))

	rows = run(t, df, ExplodeOuter("tags"))
	require.Equal(t, [][]interface{}{{"A", "x"}, {"A", "y"}, {"B", nil}, {"C", nil}}, rowValues(rows))

	_, err = df.To(Explode("id"))
	require.IsType(t, errors.SchemaMismatchError{}, err)
}

func TestExplodeSplit(t *testing.T) {
	df := createFrame(t, "id string, names string", []interface{}{"A", "x,y"})
	rows := run(t, df, WithColumn("names", expr.Split(expr.Col("names"), ",")), Explode("names"))
	require.Equal(t, [][]interface{}{{"A", "x"}, {"A", "y"}}, rowValues(rows))
}

func TestLimit(t *testing.T) {
	require.Equal(t, []interface{}{"A", "B"}, frametest.Values(t, run(t, createItems(t), Limit(2)), "id"))
	require.Equal(t, 3, len(run(t, createItems(t), Limit(10))))
	require.Equal(t, 0, len(run(t, createItems(t), Limit(0))))
}

func TestMapFlatMapAndAddColumn(t *testing.T) {
	rows := run(t, createItems(t),
		AddColumn("note", &frames.StringColumnType{}),
		Map(func(row frames.Row) error {
			id, err := row.GetString("id")
			if err != nil {
				return err
			}
			return row.SetString("note", "item "+id)
		}),
		FlatMap(func(row frames.Row, newRow frames.RowFactory) error {
			for i := 0; i < 2; i++ {
				copied := newRow()
				for j, v := range row.Values() {
					copied.SetAt(j, v)
				}
			}
			return nil
		}),
	)
	require.Equal(t, 6, len(rows))
	require.Equal(t, []interface{}{"A", 5.0, "Dairy", "item A"}, rows[1].Values())
}

func TestRowErrorsCanBeIgnored(t *testing.T) {
	df, err := createItems(t).To(Map(func(row frames.Row) error {
		id, err := row.GetString("id")
		if err == nil && id == "B" {
			return fmt.Errorf("bad row")
		}
		return err
	}))
	require.Nil(t, err)
	_, err = frametest.LocalRunFrame(context.Background(), df, &session.Options{TempDir: t.TempDir()})
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "bad row")
	rows, err := frametest.LocalRunFrame(context.Background(), df, &session.Options{TempDir: t.TempDir(), IgnoreRowErrors: true})
	require.Nil(t, err)
	require.Equal(t, []interface{}{"A", "C"}, frametest.Values(t, rows, "id"))
}

func TestGroupAndReduce(t *testing.T) {
	df := createFrame(t, itemsDDL,
		[]interface{}{"A", 5.0, "Dairy"},
		[]interface{}{"C", 12.0, "Meat"},
		[]interface{}{"B", 12.0, "Dairy"},
	)
	grouped := run(t, df, Group(KeyColumns("type")))
	require.Equal(t, []interface{}{"A", "B", "C"}, frametest.Values(t, grouped, "id"))

	reduced := run(t, df, Reduce(KeyColumns("type"), func(lrow frames.Row, rrow frames.Row) error {
		lw, err := lrow.GetFloat64("weight")
		if err != nil {
			return err
		}
		rw, err := rrow.GetFloat64("weight")
		if err != nil {
			return err
		}
		return lrow.SetFloat64("weight", lw+rw)
	}))
	require.Equal(t, [][]interface{}{{"A", 17.0, "Dairy"}, {"C", 12.0, "Meat"}}, rowValues(reduced))

	repartitioned := run(t, df, Repartition(1, nil))
	require.Equal(t, []interface{}{"A", "C", "B"}, frametest.Values(t, repartitioned, "id"))
}

func TestCacheSkipsRecomputation(t *testing.T) {
	var calls int32
	df, err := createItems(t).To(
		Map(func(row frames.Row) error {
			atomic.AddInt32(&calls, 1)
			return nil
		}),
		Cache(),
		Filter(expr.Gt(expr.Col("weight"), 10)),
	)
	require.Nil(t, err)
	sess, err := session.Create(&session.Options{TempDir: t.TempDir(), NumInMemoryPartitions: 1, Logger: logging.Discard()})
	require.Nil(t, err)
	defer sess.Close()
	for i := 0; i < 3; i++ {
		rows, err := sess.Collect(context.Background(), df)
		require.Nil(t, err)
		require.Equal(t, []interface{}{"B", "C"}, frametest.Values(t, rows, "id"))
	}
	require.Equal(t, int32(3), atomic.LoadInt32(&calls))
}
