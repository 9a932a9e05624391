// Package frametest provides helpers for testing code which builds DataFrames
package frametest

import (
	"context"
	"testing"
	"time"

	"github.com/go-sif/frames"
	"github.com/go-sif/frames/logging"
	"github.com/go-sif/frames/session"
	"github.com/stretchr/testify/require"
)

// FixedTime is the clock of Sessions created by this package
var FixedTime = time.Date(2024, 3, 30, 15, 4, 5, 0, time.UTC)

// LocalRunFrame runs a DataFrame within a fresh Session, returning every Row it produces
func LocalRunFrame(ctx context.Context, frame frames.DataFrame, opts *session.Options) (rows []frames.Row, err error) {
	if opts == nil {
		opts = &session.Options{}
	}
	opts = session.CloneOptions(opts)
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.Clock == nil {
		opts.Clock = func() time.Time { return FixedTime }
	}
	if opts.NumInMemoryPartitions == 0 {
		opts.NumInMemoryPartitions = 10
	}
	sess, err := session.Create(opts)
	if err != nil {
		return nil, err
	}
	defer sess.Close()
	return sess.Collect(ctx, frame)
}

// CollectRows runs a DataFrame with a small number of workers, failing the test on error
func CollectRows(t *testing.T, frame frames.DataFrame) []frames.Row {
	t.Helper()
	rows, err := LocalRunFrame(context.Background(), frame, &session.Options{NumWorkers: 2, TempDir: t.TempDir()})
	require.Nil(t, err)
	return rows
}

// Values extracts the values of a single column from a series of Rows
func Values(t *testing.T, rows []frames.Row, colName string) []interface{} {
	t.Helper()
	values := make([]interface{}, len(rows))
	for i, row := range rows {
		v, err := row.Get(colName)
		require.Nil(t, err)
		values[i] = v
	}
	return values
}
