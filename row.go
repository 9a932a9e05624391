package frames

import "time"

// Row is a representation of a single row of tabular data, aligned
// positionally to a Schema. Any field may be null. Typed getters return
// an errors.NilValueError when the requested field is null.
type Row interface {
	Schema() Schema                                    // Schema returns a read-only copy of the schema for a row
	Values() []interface{}                             // Values returns the underlying positional values of this Row. nil indicates null.
	ToString() string                                  // ToString returns a string representation of this row
	Clone() Row                                        // Clone returns a deep copy of this Row
	IsNil(colName string) bool                         // IsNil returns true iff the given column value is nil in this row. Panics if the column does not exist.
	SetNil(colName string) error                       // SetNil sets the given column value to nil within this row
	Get(colName string) (interface{}, error)           // Get returns the value of a column, or nil if it is null
	GetAt(idx int) interface{}                         // GetAt returns the value at a position, or nil if it is null
	Set(colName string, value interface{}) error       // Set coerces and assigns a value to a column
	SetAt(idx int, value interface{})                  // SetAt assigns an already-canonical value to a position
	GetBool(colName string) (bool, error)              // GetBool retrieves a single bool value from this Row
	GetInt32(colName string) (int32, error)            // GetInt32 retrieves a single int32 value from this Row
	GetInt64(colName string) (int64, error)            // GetInt64 retrieves a single int64 value from this Row
	GetFloat64(colName string) (float64, error)        // GetFloat64 retrieves a single float64 value from this Row
	GetString(colName string) (string, error)          // GetString retrieves a single string value from this Row
	GetTime(colName string) (time.Time, error)         // GetTime retrieves a single date or timestamp value from this Row
	GetList(colName string) ([]interface{}, error)     // GetList retrieves a single list value from this Row
	SetBool(colName string, value bool) error          // SetBool modifies a single bool value in this Row
	SetInt32(colName string, value int32) error        // SetInt32 modifies a single int32 value in this Row
	SetInt64(colName string, value int64) error        // SetInt64 modifies a single int64 value in this Row
	SetFloat64(colName string, value float64) error    // SetFloat64 modifies a single float64 value in this Row
	SetString(colName string, value string) error      // SetString modifies a single string value in this Row
	SetTime(colName string, value time.Time) error     // SetTime modifies a single date or timestamp value in this Row
	SetList(colName string, value []interface{}) error // SetList modifies a single list value in this Row
}
