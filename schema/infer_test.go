package schema

import (
	"testing"

	"github.com/go-sif/frames"
	"github.com/stretchr/testify/require"
)

func TestInferColumnType(t *testing.T) {
	tests := []struct {
		samples  []string
		expected string
	}{
		{[]string{"1", "2", ""}, "int"},
		{[]string{"1", "9999999999"}, "bigint"},
		{[]string{"5", "12.5"}, "double"},
		{[]string{"true", "FALSE"}, "boolean"},
		{[]string{"2024-01-02", "2023-12-31"}, "date"},
		{[]string{"2024-01-02 10:00:00", "2023-12-31"}, "timestamp"},
		{[]string{"Dairy", "12"}, "string"},
		{[]string{"", " "}, "string"},
		{nil, "string"},
	}
	for _, test := range tests {
		require.Equal(t, test.expected, InferColumnType(test.samples).Name(), "samples %v", test.samples)
	}
}

func TestMergeColumnTypes(t *testing.T) {
	require.Equal(t, "bigint", MergeColumnTypes(&frames.Int32ColumnType{}, &frames.Int64ColumnType{}).Name())
	require.Equal(t, "double", MergeColumnTypes(&frames.Int64ColumnType{}, &frames.Float64ColumnType{}).Name())
	require.Equal(t, "string", MergeColumnTypes(&frames.BoolColumnType{}, &frames.Float64ColumnType{}).Name())
	require.Equal(t, "bigint", MergeColumnTypes(nil, &frames.Int64ColumnType{}).Name())
	require.Equal(t, "date", MergeColumnTypes(&frames.DateColumnType{}, &frames.NullColumnType{}).Name())
	require.Equal(t, "timestamp", MergeColumnTypes(&frames.DateColumnType{}, &frames.TimestampColumnType{}).Name())
	require.Equal(t, "array<double>", MergeColumnTypes(
		&frames.ListColumnType{Elem: &frames.Int64ColumnType{}},
		&frames.ListColumnType{Elem: &frames.Float64ColumnType{}},
	).Name())
}

func TestParseBool(t *testing.T) {
	v, ok := ParseBool("Yes")
	require.True(t, ok)
	require.True(t, v)
	v, ok = ParseBool("0")
	require.True(t, ok)
	require.False(t, v)
	_, ok = ParseBool("maybe")
	require.False(t, ok)
}
