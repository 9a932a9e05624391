package dataframe_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-sif/frames"
	"github.com/go-sif/frames/datasource/memory"
	"github.com/go-sif/frames/expr"
	"github.com/go-sif/frames/internal/dataframe"
	"github.com/go-sif/frames/internal/stats"
	"github.com/go-sif/frames/operations/transform"
	"github.com/go-sif/frames/operations/util"
	"github.com/go-sif/frames/schema"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func createNumbers(t *testing.T, n int) frames.DataFrame {
	rows := make([][]interface{}, n)
	for i := range rows {
		rows[i] = []interface{}{int32(i), float64(i % 3)}
	}
	df, err := memory.CreateRowDataFrame(rows, schema.MustParse("n int, weight double"), 2)
	require.Nil(t, err)
	return df
}

func execute(t *testing.T, conf *dataframe.PlanExecutorConfig, df frames.DataFrame, rs *stats.RunStatistics) (*dataframe.Result, error) {
	collected, err := df.To(util.Collect(-1))
	require.Nil(t, err)
	return dataframe.CreatePlanExecutor(conf, rs).Execute(context.Background(), collected)
}

func numbers(t *testing.T, res *dataframe.Result) []int32 {
	values := []int32{}
	for _, part := range res.Partitions {
		for i := 0; i < part.GetNumRows(); i++ {
			n, err := part.GetRow(i).GetInt32("n")
			require.Nil(t, err)
			values = append(values, n)
		}
	}
	return values
}

func TestExecutePreservesSourceOrder(t *testing.T) {
	defer goleak.VerifyNone(t)
	df, err := createNumbers(t, 25).To(transform.Map(func(row frames.Row) error {
		n, err := row.GetInt32("n")
		if err != nil {
			return err
		}
		// uneven work, so that Partitions finish out of order
		time.Sleep(time.Duration(25-n) * 100 * time.Microsecond)
		return nil
	}))
	require.Nil(t, err)
	res, err := execute(t, &dataframe.PlanExecutorConfig{NumWorkers: 4}, df, nil)
	require.Nil(t, err)
	expected := make([]int32, 25)
	for i := range expected {
		expected[i] = int32(i)
	}
	require.Equal(t, expected, numbers(t, res))
}

func TestExecuteStatistics(t *testing.T) {
	defer goleak.VerifyNone(t)
	df, err := createNumbers(t, 9).To(
		transform.Sort(transform.Desc("n")),
		transform.Filter(expr.Gt(expr.Col("weight"), 0)),
	)
	require.Nil(t, err)
	rs := &stats.RunStatistics{}
	res, err := execute(t, &dataframe.PlanExecutorConfig{NumWorkers: 2, TargetPartitionSize: 4}, df, rs)
	require.Nil(t, err)
	require.Equal(t, []int32{8, 7, 5, 4, 2, 1}, numbers(t, res))
	require.Equal(t, []int64{9, 6}, rs.GetNumRowsProcessed())
	require.Equal(t, []int64{5, 3}, rs.GetNumPartitionsProcessed())
	require.Equal(t, 2, len(rs.GetStageRuntimes()))
}

func TestExecuteRowErrors(t *testing.T) {
	defer goleak.VerifyNone(t)
	df, err := createNumbers(t, 6).To(transform.Map(func(row frames.Row) error {
		n, err := row.GetInt32("n")
		if err == nil && n%2 == 1 {
			return fmt.Errorf("odd number %d", n)
		}
		return err
	}))
	require.Nil(t, err)
	_, err = execute(t, &dataframe.PlanExecutorConfig{NumWorkers: 3}, df, nil)
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "odd number")

	res, err := execute(t, &dataframe.PlanExecutorConfig{NumWorkers: 3, IgnoreRowErrors: true}, df, nil)
	require.Nil(t, err)
	require.Equal(t, []int32{0, 2, 4}, numbers(t, res))
}

func TestExecuteCollectionLimit(t *testing.T) {
	df, err := createNumbers(t, 7).To(util.Collect(3))
	require.Nil(t, err)
	res, err := dataframe.CreatePlanExecutor(&dataframe.PlanExecutorConfig{}, nil).Execute(context.Background(), df)
	require.Nil(t, err)
	require.Equal(t, []int32{0, 1, 2}, numbers(t, res))

	_, err = df.To(transform.Limit(1))
	require.NotNil(t, err)
}

func TestExecuteCanceled(t *testing.T) {
	defer goleak.VerifyNone(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := dataframe.CreatePlanExecutor(&dataframe.PlanExecutorConfig{}, nil).Execute(ctx, createNumbers(t, 4))
	require.ErrorIs(t, err, context.Canceled)
}

type foreignDataFrame struct {
	frames.DataFrame
}

func (f *foreignDataFrame) ID() string {
	return "foreign"
}

func TestExecuteForeignDataFrame(t *testing.T) {
	_, err := dataframe.CreatePlanExecutor(&dataframe.PlanExecutorConfig{}, nil).Execute(context.Background(), &foreignDataFrame{})
	require.NotNil(t, err)
}
