package jsonl

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/go-sif/frames"
	"github.com/go-sif/frames/schema"
	"github.com/tidwall/gjson"
)

// inferType maps a JSON value to a ColumnType
func inferType(value gjson.Result) frames.ColumnType {
	switch value.Type {
	case gjson.Null:
		return &frames.NullColumnType{}
	case gjson.True, gjson.False:
		return &frames.BoolColumnType{}
	case gjson.String:
		return &frames.StringColumnType{}
	case gjson.Number:
		if _, err := strconv.ParseInt(value.Raw, 10, 64); err == nil {
			return &frames.Int64ColumnType{}
		}
		return &frames.Float64ColumnType{}
	}
	if value.IsArray() {
		var elem frames.ColumnType
		for _, v := range value.Array() {
			elem = schema.MergeColumnTypes(elem, inferType(v))
		}
		return &frames.ListColumnType{Elem: elem}
	}
	// nested objects are kept as raw JSON
	return &frames.StringColumnType{}
}

// finalizeType replaces types which were never observed with string
func finalizeType(colType frames.ColumnType) frames.ColumnType {
	switch t := colType.(type) {
	case nil, *frames.NullColumnType:
		return &frames.StringColumnType{}
	case *frames.ListColumnType:
		return &frames.ListColumnType{Elem: finalizeType(t.Elem)}
	}
	return colType
}

// escapeKey escapes gjson path syntax within a top-level key
func escapeKey(key string) string {
	if !strings.ContainsAny(key, `.*?\`) {
		return key
	}
	var b strings.Builder
	for _, r := range key {
		if r == '.' || r == '*' || r == '?' || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// lookup finds a column within a record, first as a top-level key and then as a gjson path
func lookup(record gjson.Result, colName string) gjson.Result {
	if v := record.Get(escapeKey(colName)); v.Exists() {
		return v
	}
	return record.Get(colName)
}

// scanRecord extracts the values of each column from a record. Missing keys, and
// values which cannot be represented in their column's type, are null.
func scanRecord(conf *ParserConf, names []string, colTypes []frames.ColumnType, record gjson.Result) []interface{} {
	values := make([]interface{}, len(names))
	if !record.IsObject() {
		conf.Logger.Debug("malformed record replaced with nulls", slog.String("record", record.Raw))
		return values
	}
	for i, name := range names {
		v := lookup(record, name)
		val, ok := parseValue(colTypes[i], v)
		if !ok {
			conf.Logger.Debug("unparseable value replaced with null", slog.String("column", name), slog.String("type", colTypes[i].Name()), slog.String("value", v.Raw))
			continue
		}
		values[i] = val
	}
	return values
}

func parseValue(colType frames.ColumnType, v gjson.Result) (interface{}, bool) {
	if !v.Exists() || v.Type == gjson.Null {
		return nil, true
	}
	switch t := colType.(type) {
	case *frames.StringColumnType:
		if v.Type == gjson.String {
			return v.Str, true
		}
		return v.Raw, true
	case *frames.BoolColumnType:
		switch v.Type {
		case gjson.True, gjson.False:
			return v.Bool(), true
		case gjson.String:
			return schema.ParseBool(v.Str)
		}
	case *frames.Int32ColumnType:
		if v.Type == gjson.Number {
			ival, err := strconv.ParseInt(v.Raw, 10, 32)
			return int32(ival), err == nil
		}
	case *frames.Int64ColumnType:
		if v.Type == gjson.Number {
			ival, err := strconv.ParseInt(v.Raw, 10, 64)
			return ival, err == nil
		}
	case *frames.Float64ColumnType:
		switch v.Type {
		case gjson.Number:
			return v.Num, true
		case gjson.String:
			fval, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
			return fval, err == nil
		}
	case *frames.DateColumnType:
		if v.Type == gjson.String {
			tval, ok := schema.ParseTimestamp(strings.TrimSpace(v.Str))
			return frames.ToDate(tval), ok
		}
	case *frames.TimestampColumnType:
		if v.Type == gjson.String {
			return schema.ParseTimestamp(strings.TrimSpace(v.Str))
		}
	case *frames.ListColumnType:
		if !v.IsArray() {
			return nil, false
		}
		elems := v.Array()
		list := make([]interface{}, len(elems))
		for i, e := range elems {
			// elements which cannot be parsed are null, rather than the whole list
			list[i], _ = parseValue(t.Elem, e)
		}
		return list, true
	}
	return nil, false
}
