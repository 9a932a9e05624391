package frames

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCoerceTemporalValues(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	v, err := CoerceValue(&DateColumnType{}, "2024-03-01")
	require.Nil(t, err)
	require.Equal(t, day, v)

	v, err = CoerceValue(&DateColumnType{}, "2024-03-01 17:30:00")
	require.Nil(t, err)
	require.Equal(t, day, v)

	v, err = CoerceValue(&DateColumnType{}, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	require.Nil(t, err)
	require.Equal(t, day, v)

	v, err = CoerceValue(&TimestampColumnType{}, "2024-03-01 17:30:00")
	require.Nil(t, err)
	require.Equal(t, time.Date(2024, 3, 1, 17, 30, 0, 0, time.UTC), v)

	v, err = CoerceValue(&TimestampColumnType{}, "2024/03/01")
	require.Nil(t, err)
	require.Equal(t, day, v)

	_, err = CoerceValue(&DateColumnType{}, "yesterday")
	require.NotNil(t, err)
	_, err = CoerceValue(&TimestampColumnType{}, 20240301)
	require.NotNil(t, err)

	v, err = CoerceValue(&DateColumnType{}, nil)
	require.Nil(t, err)
	require.Nil(t, v)
}

func TestCoerceIntegralValues(t *testing.T) {
	v, err := CoerceValue(&Int32ColumnType{}, 7)
	require.Nil(t, err)
	require.Equal(t, int32(7), v)
	_, err = CoerceValue(&Int32ColumnType{}, int64(3000000000))
	require.NotNil(t, err)
	v, err = CoerceValue(&Float64ColumnType{}, int64(2))
	require.Nil(t, err)
	require.Equal(t, 2.0, v)
}
