package integration

import (
	"context"
	"fmt"
	"testing"

	"github.com/go-sif/frames"
	ops "github.com/go-sif/frames/operations/transform"
	"github.com/go-sif/frames/session"
	"github.com/go-sif/frames/testing/frametest"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestShuffleErrors(t *testing.T) {
	defer goleak.VerifyNone(t)

	// sum all numbers, erroring when keying numbers smaller than 2 and panicking on large totals
	frame, err := createTestMapErrorDataFrame(t, 10).To(
		ops.Reduce(func(row frames.Row) ([]byte, error) {
			col1, err := row.GetInt32("col1")
			if err != nil {
				return nil, err
			} else if col1 < 2 {
				return nil, fmt.Errorf("Don't key numbers smaller than 2")
			}
			return []byte{0}, nil
		}, func(lrow frames.Row, rrow frames.Row) error {
			rcol1, err := rrow.GetInt32("col1")
			if err != nil {
				return err
			}
			lcol1, err := lrow.GetInt32("col1")
			if err != nil {
				return err
			}
			if lcol1+rcol1 > 15 {
				panic(fmt.Errorf("Prevent totals larger than 15"))
			}
			return lrow.SetInt32("col1", lcol1+rcol1)
		}),
	)
	require.Nil(t, err)

	rows, err := frametest.LocalRunFrame(context.Background(), frame, &session.Options{NumWorkers: 2, IgnoreRowErrors: true, TempDir: t.TempDir()})
	require.Nil(t, err)
	require.Len(t, rows, 1)
	val, err := rows[0].GetInt32("col1")
	require.Nil(t, err)
	require.True(t, val <= 15)

	_, err = frametest.LocalRunFrame(context.Background(), frame, &session.Options{NumWorkers: 2, TempDir: t.TempDir()})
	require.NotNil(t, err)
}
