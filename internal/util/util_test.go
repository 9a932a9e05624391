package util

import (
	"fmt"
	"testing"

	"github.com/go-sif/frames"
	"github.com/go-sif/frames/internal/partition"
	"github.com/go-sif/frames/schema"
	"github.com/stretchr/testify/require"
)

func TestSafeMapOperationRecoversPanics(t *testing.T) {
	row := partition.CreateRow([]interface{}{int32(1)}, schema.MustParse("a int"))
	err := SafeMapOperation(func(row frames.Row) error {
		panic(fmt.Errorf("boom"))
	})(row)
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "Map Panic: boom")
	require.Contains(t, err.Error(), "{a: 1}")
}

func TestSafeFilterOperationWrapsErrors(t *testing.T) {
	row := partition.CreateRow([]interface{}{int32(1)}, schema.MustParse("a int"))
	inner := fmt.Errorf("bad row")
	_, err := SafeFilterOperation(func(row frames.Row) (bool, error) {
		return false, inner
	})(row)
	require.ErrorIs(t, err, inner)
	require.Contains(t, err.Error(), "Filter Error")
}

func TestFormatMultiError(t *testing.T) {
	require.Equal(t, "a\nb\n", FormatMultiError([]error{fmt.Errorf("a"), fmt.Errorf("b")}))
}
