package integration

import (
	"context"
	"testing"

	"github.com/go-sif/frames/accumulators"
	"github.com/go-sif/frames/logging"
	"github.com/go-sif/frames/session"
	"github.com/stretchr/testify/require"
)

func TestAccumulate(t *testing.T) {
	sess, err := session.Create(&session.Options{NumWorkers: 2, TempDir: t.TempDir(), Logger: logging.Discard()})
	require.Nil(t, err)
	defer sess.Close()

	acc, err := sess.Accumulate(context.Background(), createTestReduceDataFrame(t, 100), accumulators.Counter)
	require.Nil(t, err)
	ca, isCountAccumulator := acc.(*accumulators.Count)
	require.True(t, isCountAccumulator)
	require.Equal(t, 100, int(ca.GetCount()))

	stats := sess.Statistics()
	require.NotNil(t, stats)
	require.Equal(t, []int64{100}, stats.GetNumRowsProcessed())
}
