package partition

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/go-sif/frames"
	"github.com/go-sif/frames/errors"
	"github.com/go-sif/frames/schema"
	"github.com/stretchr/testify/require"
)

func createPartitionTestSchema() frames.Schema {
	return schema.MustParse("col1 int, col2 string")
}

func TestCreatePartitionImpl(t *testing.T) {
	part := createPartitionImpl(4, createPartitionTestSchema())
	require.Equal(t, part.GetMaxRows(), 4)
	require.Equal(t, part.GetNumRows(), 0)
	require.Nil(t, part.canInsertRowData(make([]interface{}, 2)))
	require.Equal(t, errors.IncompatibleRowError{}, part.canInsertRowData(make([]interface{}, 3)))
}

func TestAppendRowData(t *testing.T) {
	part := createPartitionImpl(2, createPartitionTestSchema())
	require.Nil(t, part.AppendRowData([]interface{}{int32(1), "a"}))
	require.Equal(t, part.GetNumRows(), 1)
	val, err := part.GetRow(0).GetInt32("col1")
	require.Nil(t, err)
	require.Equal(t, int32(1), val)
	require.Nil(t, part.AppendRowData([]interface{}{int32(2), nil}))
	require.True(t, part.GetRow(1).IsNil("col2"))
	require.Equal(t, errors.PartitionFullError{}, part.AppendRowData([]interface{}{int32(3), "c"}))
}

func TestInsertRowData(t *testing.T) {
	part := createPartitionImpl(4, createPartitionTestSchema())
	require.Nil(t, part.AppendRowData([]interface{}{int32(1), "a"}))
	require.Nil(t, part.AppendRowData([]interface{}{int32(3), "c"}))
	require.Nil(t, part.InsertRowData([]interface{}{int32(2), "b"}, 1))
	for i := 0; i < 3; i++ {
		val, err := part.GetRow(i).GetInt32("col1")
		require.Nil(t, err)
		require.Equal(t, int32(i+1), val)
	}
}

func TestAppendEmptyRow(t *testing.T) {
	part := createPartitionImpl(4, createPartitionTestSchema())
	row, err := part.AppendEmptyRow()
	require.Nil(t, err)
	require.True(t, row.IsNil("col1"))
	require.Nil(t, row.SetInt32("col1", 7))
	val, err := part.GetRow(0).GetInt32("col1")
	require.Nil(t, err)
	require.Equal(t, int32(7), val)
}

func TestMapRowsDropsFailedRows(t *testing.T) {
	part := createPartitionImpl(8, createPartitionTestSchema())
	for i := 0; i < 5; i++ {
		require.Nil(t, part.AppendRowData([]interface{}{int32(i), "x"}))
	}
	result, err := part.MapRows(func(row frames.Row) error {
		v, err := row.GetInt32("col1")
		if err != nil {
			return err
		}
		if v%2 == 1 {
			return fmt.Errorf("odd")
		}
		return row.SetString("col2", "even")
	})
	require.NotNil(t, err)
	require.Equal(t, 3, result.GetNumRows())
	s, err := result.GetRow(2).GetString("col2")
	require.Nil(t, err)
	require.Equal(t, "even", s)
}

func TestFilterRows(t *testing.T) {
	part := createPartitionImpl(8, createPartitionTestSchema())
	for i := 0; i < 5; i++ {
		require.Nil(t, part.AppendRowData([]interface{}{int32(i), "x"}))
	}
	result, err := part.FilterRows(func(row frames.Row) (bool, error) {
		v, err := row.GetInt32("col1")
		return v > 2, err
	})
	require.Nil(t, err)
	require.Equal(t, 2, result.GetNumRows())
	require.Equal(t, 5, part.GetNumRows())
}

func TestFlatMapRowsSplitsPartitions(t *testing.T) {
	part := createPartitionImpl(2, createPartitionTestSchema())
	require.Nil(t, part.AppendRowData([]interface{}{int32(1), "a"}))
	require.Nil(t, part.AppendRowData([]interface{}{int32(2), "b"}))
	newSchema := schema.MustParse("v int")
	parts, err := part.FlatMapRows(newSchema, func(row frames.Row, newRow frames.RowFactory) error {
		v, err := row.GetInt32("col1")
		if err != nil {
			return err
		}
		for i := int32(0); i < v+1; i++ {
			if err := newRow().SetInt32("v", v*10+i); err != nil {
				return err
			}
		}
		return nil
	})
	require.Nil(t, err)
	require.Len(t, parts, 3)
	var values []int32
	for _, p := range parts {
		for i := 0; i < p.GetNumRows(); i++ {
			v, err := p.GetRow(i).GetInt32("v")
			require.Nil(t, err)
			values = append(values, v)
		}
	}
	require.Equal(t, []int32{10, 11, 20, 21, 22}, values)
}

func TestReshape(t *testing.T) {
	part := createPartitionImpl(4, createPartitionTestSchema())
	require.Nil(t, part.AppendRowData([]interface{}{int32(1), "a"}))
	newSchema := schema.MustParse("col2 string")
	result, err := part.Reshape(newSchema, func(row frames.Row, newRow frames.Row) error {
		newRow.SetAt(0, row.GetAt(1))
		return nil
	})
	require.Nil(t, err)
	s, err := result.GetRow(0).GetString("col2")
	require.Nil(t, err)
	require.Equal(t, "a", s)
}

func TestPack(t *testing.T) {
	s := createPartitionTestSchema()
	var parts []frames.OperablePartition
	for i := 0; i < 3; i++ {
		p := createPartitionImpl(4, s)
		require.Nil(t, p.AppendRowData([]interface{}{int32(i), "a"}))
		parts = append(parts, p)
	}
	packed := Pack(parts, 2, s)
	require.Len(t, packed, 2)
	require.Equal(t, 2, packed[0].GetNumRows())
	require.Equal(t, 1, packed[1].GetNumRows())
	require.Len(t, Pack(nil, 2, s), 1)
}

func TestSerializationRoundTrip(t *testing.T) {
	s := schema.MustParse("i int, l bigint, f double, s string, b boolean, d date, ts timestamp, tags array<string>")
	part := createPartitionImpl(4, s)
	now := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	require.Nil(t, part.AppendRowData([]interface{}{int32(1), int64(2), 3.5, "x", true, frames.ToDate(now), now, []interface{}{"a", nil}}))
	require.Nil(t, part.AppendRowData([]interface{}{nil, nil, nil, nil, nil, nil, nil, nil}))

	for _, serializer := range []frames.PartitionSerializer{NewLZ4PartitionSerializer(), NewZstdPartitionSerializer()} {
		buff := new(bytes.Buffer)
		require.Nil(t, serializer.Compress(buff, part))
		result, err := serializer.Decompress(buff, s)
		require.Nil(t, err)
		require.Equal(t, part.ID(), result.ID())
		require.Equal(t, 2, result.GetNumRows())
		require.Equal(t, part.GetRow(0).Values(), result.GetRow(0).Values())
		require.Equal(t, part.GetRow(1).Values(), result.GetRow(1).Values())
	}
}

func TestNewSerializer(t *testing.T) {
	_, err := NewSerializer("zstd")
	require.Nil(t, err)
	_, err = NewSerializer("lz4")
	require.Nil(t, err)
	_, err = NewSerializer("brotli")
	require.NotNil(t, err)
}
