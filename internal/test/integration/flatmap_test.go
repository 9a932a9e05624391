package integration

import (
	"strings"
	"testing"

	"github.com/go-sif/frames"
	ops "github.com/go-sif/frames/operations/transform"
	"github.com/go-sif/frames/testing/frametest"
	"github.com/stretchr/testify/require"
)

func TestFlatMap(t *testing.T) {
	frame, err := createTestReduceDataFrame(t, 10).To(
		ops.AddColumn("res", &frames.StringColumnType{}),
		ops.FlatMap(func(row frames.Row, factory frames.RowFactory) error {
			col1, err := row.GetString("col1")
			if err != nil {
				return err
			}
			for _, c := range col1 {
				r := factory()
				err = r.SetString("res", strings.ToUpper(string(c)))
				if err != nil {
					return err
				}
			}
			return nil
		}),
		ops.RemoveColumn("col1"),
	)
	require.Nil(t, err)

	rows := frametest.CollectRows(t, frame)
	require.Len(t, rows, 30)
	for i, val := range frametest.Values(t, rows, "res") {
		require.Equal(t, string(rune('A'+i%3)), val)
	}
}
