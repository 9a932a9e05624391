package datasink

import (
	"context"
	"encoding/json"
	"math"
	"strconv"

	"github.com/go-sif/frames"
)

// A Collector materializes DataFrames. *session.Session is a Collector.
type Collector interface {
	Collect(ctx context.Context, df frames.DataFrame) ([]frames.Row, error)
}

// Options configure the writers in this package
type Options struct {
	Header      bool   // csv: write column names as the first line
	Delimiter   rune   // csv: the field delimiter. Defaults to ','.
	NullValue   string // csv: the string written for null values. Defaults to the empty string.
	Compression string // parquet: "snappy" (default), "gzip", "zstd" or "none"
}

func defaultOptions(opts *Options) *Options {
	if opts == nil {
		return &Options{}
	}
	return opts
}

// appendJSONValue encodes a value of a ColumnType as JSON. Temporal values become strings
// in the same format produced by ColumnType.ToString, and non-finite doubles become the
// strings "NaN", "Infinity" and "-Infinity".
func appendJSONValue(buf []byte, colType frames.ColumnType, v interface{}) ([]byte, error) {
	if v == nil {
		return append(buf, "null"...), nil
	}
	switch t := colType.(type) {
	case *frames.BoolColumnType, *frames.Int32ColumnType, *frames.Int64ColumnType:
		return append(buf, colType.ToString(v)...), nil
	case *frames.Float64ColumnType:
		f := v.(float64)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return strconv.AppendQuote(buf, frames.FormatFloat(f)), nil
		}
		return append(buf, frames.FormatFloat(f)...), nil
	case *frames.ListColumnType:
		buf = append(buf, '[')
		for i, e := range v.([]interface{}) {
			if i > 0 {
				buf = append(buf, ',')
			}
			var err error
			if buf, err = appendJSONValue(buf, t.Elem, e); err != nil {
				return nil, err
			}
		}
		return append(buf, ']'), nil
	}
	str, err := json.Marshal(colType.ToString(v))
	if err != nil {
		return nil, err
	}
	return append(buf, str...), nil
}

// encodeJSONRow encodes a Row as a JSON object, with keys in column order
func encodeJSONRow(buf []byte, row frames.Row) ([]byte, error) {
	s := row.Schema()
	names := s.ColumnNames()
	types := s.ColumnTypes()
	buf = append(buf, '{')
	for i, name := range names {
		if i > 0 {
			buf = append(buf, ',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf = append(buf, key...)
		buf = append(buf, ':')
		if buf, err = appendJSONValue(buf, types[i], row.GetAt(i)); err != nil {
			return nil, err
		}
	}
	return append(buf, '}'), nil
}
