package partition

import (
	"testing"
	"time"

	"github.com/go-sif/frames/errors"
	"github.com/go-sif/frames/schema"
	"github.com/stretchr/testify/require"
)

func TestGetSetInt32(t *testing.T) {
	row := CreateRow(make([]interface{}, 1), schema.MustParse("col1 int"))
	require.Nil(t, row.SetInt32("col1", 12))
	data, err := row.GetInt32("col1")
	require.Nil(t, err)
	require.Equal(t, int32(12), data)
	_, err = row.GetString("col1")
	require.NotNil(t, err)
}

func TestGetNil(t *testing.T) {
	row := CreateRow(make([]interface{}, 1), schema.MustParse("col1 double"))
	require.True(t, row.IsNil("col1"))
	_, err := row.GetFloat64("col1")
	require.Equal(t, errors.NilValueError{Name: "col1"}, err)
	v, err := row.Get("col1")
	require.Nil(t, err)
	require.Nil(t, v)
}

func TestSetCoercesValues(t *testing.T) {
	row := CreateRow(make([]interface{}, 4), schema.MustParse("a double, b bigint, c date, d array<int>"))
	require.Nil(t, row.Set("a", 3))
	require.Nil(t, row.Set("b", int32(4)))
	require.Nil(t, row.Set("c", time.Date(2024, 1, 2, 13, 0, 0, 0, time.UTC)))
	require.Nil(t, row.Set("d", []int{1, 2}))
	require.Equal(t, []interface{}{3.0, int64(4), time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), []interface{}{int32(1), int32(2)}}, row.Values())
	require.NotNil(t, row.Set("a", "not a number"))
	require.NotNil(t, row.Set("missing", 1))
}

func TestRowToString(t *testing.T) {
	row := CreateRow([]interface{}{"a", nil, 2.0}, schema.MustParse("s string, n int, f double"))
	require.Equal(t, `{s: "a", n: nil, f: 2.0}`, row.ToString())
}

func TestRowClone(t *testing.T) {
	row := CreateRow([]interface{}{[]interface{}{"a"}}, schema.MustParse("l array<string>"))
	clone := row.Clone()
	clone.Values()[0].([]interface{})[0] = "b"
	require.Equal(t, "a", row.Values()[0].([]interface{})[0])
}
