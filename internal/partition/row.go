package partition

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-sif/frames"
	"github.com/go-sif/frames/errors"
)

// Row is a representation of a single row of tabular data,
// (a slice of a Partition), along with a reference to the
// Schema for that row (a mapping of column names to
// positions). In practice, users of Row will call its
// getter and setter methods to retrieve, manipulate and store data
type rowImpl struct {
	values []interface{} // likely shared with a partition
	schema frames.Schema // schema lets us pick the values we need out of the row
}

// CreateRow builds a new row from values aligned to a schema
func CreateRow(values []interface{}, schema frames.Schema) frames.Row {
	return &rowImpl{values: values, schema: schema}
}

// Schema returns the schema for a row
func (r *rowImpl) Schema() frames.Schema {
	return r.schema
}

// Values returns the underlying positional values of this Row
func (r *rowImpl) Values() []interface{} {
	return r.values
}

// ToString returns a string representation of this row
func (r *rowImpl) ToString() string {
	var res strings.Builder
	fmt.Fprint(&res, "{")
	types := r.schema.ColumnTypes()
	for i, name := range r.schema.ColumnNames() {
		if i > 0 {
			fmt.Fprint(&res, ", ")
		}
		v := r.values[i]
		if v == nil {
			fmt.Fprintf(&res, "%s: nil", name)
		} else if _, ok := v.(string); ok {
			fmt.Fprintf(&res, "%s: %q", name, v)
		} else {
			fmt.Fprintf(&res, "%s: %s", name, types[i].ToString(v))
		}
	}
	fmt.Fprint(&res, "}")
	return res.String()
}

// Clone returns a deep copy of this Row
func (r *rowImpl) Clone() frames.Row {
	values := make([]interface{}, len(r.values))
	for i, v := range r.values {
		if list, ok := v.([]interface{}); ok {
			cp := make([]interface{}, len(list))
			copy(cp, list)
			v = cp
		}
		values[i] = v
	}
	return &rowImpl{values: values, schema: r.schema}
}

func (r *rowImpl) offset(colName string) (frames.Column, error) {
	return r.schema.GetOffset(colName)
}

// IsNil returns true iff the given column value is nil in this row. Panics if the column does not exist.
func (r *rowImpl) IsNil(colName string) bool {
	offset, err := r.offset(colName)
	if err != nil {
		panic(err)
	}
	return r.values[offset.Index()] == nil
}

// SetNil sets the given column value to nil within this row
func (r *rowImpl) SetNil(colName string) error {
	offset, err := r.offset(colName)
	if err != nil {
		return err
	}
	r.values[offset.Index()] = nil
	return nil
}

// Get returns the value of a column, or nil if it is null
func (r *rowImpl) Get(colName string) (interface{}, error) {
	offset, err := r.offset(colName)
	if err != nil {
		return nil, err
	}
	return r.values[offset.Index()], nil
}

// GetAt returns the value at a position, or nil if it is null
func (r *rowImpl) GetAt(idx int) interface{} {
	return r.values[idx]
}

// Set coerces and assigns a value to a column
func (r *rowImpl) Set(colName string, value interface{}) error {
	offset, err := r.offset(colName)
	if err != nil {
		return err
	}
	v, err := frames.CoerceValue(offset.Type(), value)
	if err != nil {
		return fmt.Errorf("Column %s: %w", colName, err)
	}
	r.values[offset.Index()] = v
	return nil
}

// SetAt assigns an already-canonical value to a position
func (r *rowImpl) SetAt(idx int, value interface{}) {
	r.values[idx] = value
}

// getTyped fetches a non-nil value of a column, checking its type
func (r *rowImpl) getTyped(colName string, check func(frames.ColumnType) bool, expected string) (interface{}, error) {
	offset, err := r.offset(colName)
	if err != nil {
		return nil, err
	}
	if !check(offset.Type()) {
		return nil, fmt.Errorf("Column %s is of type %s, not %s", colName, offset.Type().Name(), expected)
	}
	v := r.values[offset.Index()]
	if v == nil {
		return nil, errors.NilValueError{Name: colName}
	}
	return v, nil
}

// GetBool retrieves a single bool value from this Row
func (r *rowImpl) GetBool(colName string) (bool, error) {
	v, err := r.getTyped(colName, func(t frames.ColumnType) bool { _, ok := t.(*frames.BoolColumnType); return ok }, "boolean")
	if err != nil {
		return false, err
	}
	return v.(bool), nil
}

// GetInt32 retrieves a single int32 value from this Row
func (r *rowImpl) GetInt32(colName string) (int32, error) {
	v, err := r.getTyped(colName, func(t frames.ColumnType) bool { _, ok := t.(*frames.Int32ColumnType); return ok }, "int")
	if err != nil {
		return 0, err
	}
	return v.(int32), nil
}

// GetInt64 retrieves a single int64 value from this Row
func (r *rowImpl) GetInt64(colName string) (int64, error) {
	v, err := r.getTyped(colName, func(t frames.ColumnType) bool { _, ok := t.(*frames.Int64ColumnType); return ok }, "bigint")
	if err != nil {
		return 0, err
	}
	return v.(int64), nil
}

// GetFloat64 retrieves a single float64 value from this Row
func (r *rowImpl) GetFloat64(colName string) (float64, error) {
	v, err := r.getTyped(colName, func(t frames.ColumnType) bool { _, ok := t.(*frames.Float64ColumnType); return ok }, "double")
	if err != nil {
		return 0, err
	}
	return v.(float64), nil
}

// GetString retrieves a single string value from this Row
func (r *rowImpl) GetString(colName string) (string, error) {
	v, err := r.getTyped(colName, func(t frames.ColumnType) bool { _, ok := t.(*frames.StringColumnType); return ok }, "string")
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// GetTime retrieves a single date or timestamp value from this Row
func (r *rowImpl) GetTime(colName string) (time.Time, error) {
	v, err := r.getTyped(colName, frames.IsTemporal, "date or timestamp")
	if err != nil {
		return time.Time{}, err
	}
	return v.(time.Time), nil
}

// GetList retrieves a single list value from this Row
func (r *rowImpl) GetList(colName string) ([]interface{}, error) {
	v, err := r.getTyped(colName, func(t frames.ColumnType) bool { _, ok := t.(*frames.ListColumnType); return ok }, "array")
	if err != nil {
		return nil, err
	}
	return v.([]interface{}), nil
}

// SetBool modifies a single bool value in this Row
func (r *rowImpl) SetBool(colName string, value bool) error {
	return r.Set(colName, value)
}

// SetInt32 modifies a single int32 value in this Row
func (r *rowImpl) SetInt32(colName string, value int32) error {
	return r.Set(colName, value)
}

// SetInt64 modifies a single int64 value in this Row
func (r *rowImpl) SetInt64(colName string, value int64) error {
	return r.Set(colName, value)
}

// SetFloat64 modifies a single float64 value in this Row
func (r *rowImpl) SetFloat64(colName string, value float64) error {
	return r.Set(colName, value)
}

// SetString modifies a single string value in this Row
func (r *rowImpl) SetString(colName string, value string) error {
	return r.Set(colName, value)
}

// SetTime modifies a single date or timestamp value in this Row
func (r *rowImpl) SetTime(colName string, value time.Time) error {
	return r.Set(colName, value)
}

// SetList modifies a single list value in this Row
func (r *rowImpl) SetList(colName string, value []interface{}) error {
	return r.Set(colName, value)
}
