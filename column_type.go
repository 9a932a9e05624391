package frames

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// DateFormat is the layout used to render DateColumnType values
const DateFormat = "2006-01-02"

// TimestampFormat is the layout used to render TimestampColumnType values
const TimestampFormat = "2006-01-02 15:04:05"

// ColumnType is the type of a Column. Values of a ColumnType are stored in Rows
// as a single canonical Go type (see each implementation), or nil for null.
type ColumnType interface {
	Name() string                  // Name returns the SQL name of this ColumnType, e.g. "bigint"
	ToString(v interface{}) string // ToString produces a display representation of a non-nil value of this ColumnType
}

// StringColumnType is a column type which stores a string value
type StringColumnType struct{}

// Name returns the SQL name of this ColumnType
func (c *StringColumnType) Name() string { return "string" }

// ToString produces a string representation of a StringColumnType value
func (c *StringColumnType) ToString(v interface{}) string {
	return v.(string)
}

// BoolColumnType is a column type which stores a bool value
type BoolColumnType struct{}

// Name returns the SQL name of this ColumnType
func (c *BoolColumnType) Name() string { return "boolean" }

// ToString produces a string representation of a BoolColumnType value
func (c *BoolColumnType) ToString(v interface{}) string {
	return strconv.FormatBool(v.(bool))
}

// Int32ColumnType is a column type which stores an int32 value
type Int32ColumnType struct{}

// Name returns the SQL name of this ColumnType
func (c *Int32ColumnType) Name() string { return "int" }

// ToString produces a string representation of an Int32ColumnType value
func (c *Int32ColumnType) ToString(v interface{}) string {
	return strconv.FormatInt(int64(v.(int32)), 10)
}

// Int64ColumnType is a column type which stores an int64 value
type Int64ColumnType struct{}

// Name returns the SQL name of this ColumnType
func (c *Int64ColumnType) Name() string { return "bigint" }

// ToString produces a string representation of an Int64ColumnType value
func (c *Int64ColumnType) ToString(v interface{}) string {
	return strconv.FormatInt(v.(int64), 10)
}

// Float64ColumnType is a column type which stores a float64 value
type Float64ColumnType struct{}

// Name returns the SQL name of this ColumnType
func (c *Float64ColumnType) Name() string { return "double" }

// ToString produces a string representation of a Float64ColumnType value.
// Integral values keep a trailing ".0".
func (c *Float64ColumnType) ToString(v interface{}) string {
	return FormatFloat(v.(float64))
}

// DateColumnType is a column type which stores a calendar date, as a time.Time at UTC midnight
type DateColumnType struct{}

// Name returns the SQL name of this ColumnType
func (c *DateColumnType) Name() string { return "date" }

// ToString produces a string representation of a DateColumnType value
func (c *DateColumnType) ToString(v interface{}) string {
	return v.(time.Time).Format(DateFormat)
}

// TimestampColumnType is a column type which stores a time.Time
type TimestampColumnType struct{}

// Name returns the SQL name of this ColumnType
func (c *TimestampColumnType) Name() string { return "timestamp" }

// ToString produces a string representation of a TimestampColumnType value
func (c *TimestampColumnType) ToString(v interface{}) string {
	return v.(time.Time).Format(TimestampFormat)
}

// ListColumnType is a column type which stores a []interface{} of Elem values
type ListColumnType struct {
	Elem ColumnType
}

// Name returns the SQL name of this ColumnType
func (c *ListColumnType) Name() string {
	return fmt.Sprintf("array<%s>", c.Elem.Name())
}

// ToString produces a string representation of a ListColumnType value
func (c *ListColumnType) ToString(v interface{}) string {
	list := v.([]interface{})
	var res strings.Builder
	res.WriteString("[")
	for i, e := range list {
		if i > 0 {
			res.WriteString(", ")
		}
		if e == nil {
			res.WriteString("null")
		} else {
			res.WriteString(c.Elem.ToString(e))
		}
	}
	res.WriteString("]")
	return res.String()
}

// NullColumnType is the type of an untyped null literal. Its values are always nil.
type NullColumnType struct{}

// Name returns the SQL name of this ColumnType
func (c *NullColumnType) Name() string { return "void" }

// ToString produces a string representation of a NullColumnType value
func (c *NullColumnType) ToString(v interface{}) string {
	return "null"
}

// SameType returns true iff two ColumnTypes describe the same type
func SameType(a ColumnType, b ColumnType) bool {
	return a.Name() == b.Name()
}

// IsNumeric returns true iff values of the given ColumnType are numbers
func IsNumeric(t ColumnType) bool {
	switch t.(type) {
	case *Int32ColumnType, *Int64ColumnType, *Float64ColumnType:
		return true
	default:
		return false
	}
}

// IsTemporal returns true iff values of the given ColumnType are time.Times
func IsTemporal(t ColumnType) bool {
	switch t.(type) {
	case *DateColumnType, *TimestampColumnType:
		return true
	default:
		return false
	}
}

// ParseColumnType parses a SQL type name (as used in DDL schema strings and casts) into a ColumnType
func ParseColumnType(name string) (ColumnType, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if strings.HasPrefix(n, "array<") && strings.HasSuffix(n, ">") {
		elem, err := ParseColumnType(n[len("array<") : len(n)-1])
		if err != nil {
			return nil, err
		}
		return &ListColumnType{Elem: elem}, nil
	}
	switch n {
	case "string", "varchar", "text":
		return &StringColumnType{}, nil
	case "boolean", "bool":
		return &BoolColumnType{}, nil
	case "int", "integer":
		return &Int32ColumnType{}, nil
	case "bigint", "long":
		return &Int64ColumnType{}, nil
	case "double", "float", "real":
		return &Float64ColumnType{}, nil
	case "date":
		return &DateColumnType{}, nil
	case "timestamp":
		return &TimestampColumnType{}, nil
	case "void", "null":
		return &NullColumnType{}, nil
	default:
		return nil, fmt.Errorf("Unknown column type %q", name)
	}
}

// FormatFloat renders a float64 the way tabular engines usually do, keeping ".0" on integral values
func FormatFloat(f float64) string {
	if math.IsNaN(f) {
		return "NaN"
	} else if math.IsInf(f, 1) {
		return "Infinity"
	} else if math.IsInf(f, -1) {
		return "-Infinity"
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// ToDate truncates a time.Time to a date value (UTC midnight of its calendar day)
func ToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// TimestampLayouts are the layouts recognized when parsing timestamps
var TimestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
}

// DateLayouts are the layouts recognized when parsing dates
var DateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
}

// ParseTimestamp parses a string using the first matching layout in TimestampLayouts or DateLayouts
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range TimestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return ParseDate(s)
}

// ParseDate parses a string using the first matching layout in DateLayouts
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range DateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// CoerceValue converts a Go value into the canonical representation used by Rows
// for the given ColumnType. Only lossless conversions between Go types are performed,
// plus parsing of strings into dates and timestamps. nil is always accepted.
func CoerceValue(colType ColumnType, v interface{}) (interface{}, error) {
	if v == nil {
		return nil, nil
	}
	switch t := colType.(type) {
	case *StringColumnType:
		if s, ok := v.(string); ok {
			return s, nil
		}
	case *BoolColumnType:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	case *Int32ColumnType:
		if i, ok := toInt64(v); ok && i >= math.MinInt32 && i <= math.MaxInt32 {
			return int32(i), nil
		}
	case *Int64ColumnType:
		if i, ok := toInt64(v); ok {
			return i, nil
		}
	case *Float64ColumnType:
		if i, ok := toInt64(v); ok {
			return float64(i), nil
		}
		switch f := v.(type) {
		case float64:
			return f, nil
		case float32:
			return float64(f), nil
		}
	case *DateColumnType:
		switch tv := v.(type) {
		case time.Time:
			return ToDate(tv), nil
		case string:
			if parsed, ok := ParseTimestamp(tv); ok {
				return ToDate(parsed), nil
			}
		}
	case *TimestampColumnType:
		switch tv := v.(type) {
		case time.Time:
			return tv, nil
		case string:
			if parsed, ok := ParseTimestamp(tv); ok {
				return parsed, nil
			}
		}
	case *ListColumnType:
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() != reflect.Uint8 {
			result := make([]interface{}, rv.Len())
			for i := 0; i < rv.Len(); i++ {
				e, err := CoerceValue(t.Elem, rv.Index(i).Interface())
				if err != nil {
					return nil, err
				}
				result[i] = e
			}
			return result, nil
		}
	case *NullColumnType:
	}
	return nil, fmt.Errorf("Value %#v is not compatible with column type %s", v, colType.Name())
}

func toInt64(v interface{}) (int64, bool) {
	switch i := v.(type) {
	case int:
		return int64(i), true
	case int8:
		return int64(i), true
	case int16:
		return int64(i), true
	case int32:
		return int64(i), true
	case int64:
		return i, true
	case uint8:
		return int64(i), true
	case uint16:
		return int64(i), true
	case uint32:
		return int64(i), true
	case uint:
		if uint64(i) <= math.MaxInt64 {
			return int64(i), true
		}
	case uint64:
		if i <= math.MaxInt64 {
			return int64(i), true
		}
	}
	return 0, false
}
