package dsv

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/go-sif/frames"
	"github.com/go-sif/frames/schema"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// skipBOM drops a leading UTF-8 byte order mark from a stream
func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		br.Discard(len(utf8BOM))
	}
	return br
}

func defaultNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("_c%d", i)
	}
	return names
}

// headerNames cleans up column names from a header. Blank names are replaced
// by positional ones, and duplicated names are suffixed with their position.
func headerNames(header []string) []string {
	counts := make(map[string]int, len(header))
	for _, h := range header {
		counts[strings.TrimSpace(h)]++
	}
	names := make([]string, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		switch {
		case h == "":
			names[i] = fmt.Sprintf("_c%d", i)
		case counts[h] > 1:
			names[i] = fmt.Sprintf("%s%d", h, i)
		default:
			names[i] = h
		}
	}
	return names
}

// Parses a slice of strings into Row values, according to a schema. Values which cannot be
// parsed become nil, and are reported to the logger.
func scanRow(conf *ParserConf, names []string, colTypes []frames.ColumnType, rowStrings []string) []interface{} {
	values := make([]interface{}, len(colTypes))
	for i := 0; i < len(colTypes) && i < len(rowStrings); i++ {
		colVal := rowStrings[i]
		// check for a nil value
		if len(colVal) == 0 || colVal == conf.NilValue {
			continue
		}
		v, ok := parseValue(colTypes[i], colVal)
		if !ok {
			conf.Logger.Debug("unparseable value replaced with null", slog.String("column", names[i]), slog.String("type", colTypes[i].Name()), slog.String("value", colVal))
			continue
		}
		values[i] = v
	}
	return values
}

func parseValue(colType frames.ColumnType, colVal string) (interface{}, bool) {
	trimmed := strings.TrimSpace(colVal)
	switch colType.(type) {
	case *frames.StringColumnType:
		return colVal, true
	case *frames.BoolColumnType:
		return schema.ParseBool(trimmed)
	case *frames.Int32ColumnType:
		ival, err := strconv.ParseInt(trimmed, 10, 32)
		return int32(ival), err == nil
	case *frames.Int64ColumnType:
		ival, err := strconv.ParseInt(trimmed, 10, 64)
		return ival, err == nil
	case *frames.Float64ColumnType:
		fval, err := strconv.ParseFloat(trimmed, 64)
		return fval, err == nil
	case *frames.DateColumnType:
		tval, ok := schema.ParseTimestamp(trimmed)
		return frames.ToDate(tval), ok
	case *frames.TimestampColumnType:
		return schema.ParseTimestamp(trimmed)
	}
	return nil, false
}
