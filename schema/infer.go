package schema

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-sif/frames"
)

// TimestampLayouts are the layouts recognized when inferring and parsing timestamps
var TimestampLayouts = frames.TimestampLayouts

// DateLayouts are the layouts recognized when inferring and parsing dates
var DateLayouts = frames.DateLayouts

// InferColumnType guesses the narrowest ColumnType which can represent all of the
// given textual samples. Empty samples are ignored; a column with no non-empty samples
// is a string column. Candidates are tried in order: int, bigint, double, boolean,
// timestamp, date, and finally string.
func InferColumnType(samples []string) frames.ColumnType {
	nonEmpty := make([]string, 0, len(samples))
	for _, v := range samples {
		v = strings.TrimSpace(v)
		if v != "" {
			nonEmpty = append(nonEmpty, v)
		}
	}
	if len(nonEmpty) == 0 {
		return &frames.StringColumnType{}
	}
	if allMatch(nonEmpty, isInt32) {
		return &frames.Int32ColumnType{}
	}
	if allMatch(nonEmpty, isInt64) {
		return &frames.Int64ColumnType{}
	}
	if allMatch(nonEmpty, isFloat) {
		return &frames.Float64ColumnType{}
	}
	if allMatch(nonEmpty, isBool) {
		return &frames.BoolColumnType{}
	}
	if allMatch(nonEmpty, func(s string) bool { _, ok := ParseTimestamp(s); return ok }) {
		if allMatch(nonEmpty, func(s string) bool { _, ok := ParseDate(s); return ok }) {
			return &frames.DateColumnType{}
		}
		return &frames.TimestampColumnType{}
	}
	return &frames.StringColumnType{}
}

// MergeColumnTypes returns the narrowest ColumnType which can represent values of both a and b.
// Either may be nil, indicating that only nulls have been observed.
func MergeColumnTypes(a frames.ColumnType, b frames.ColumnType) frames.ColumnType {
	if a == nil || isNullType(a) {
		return b
	} else if b == nil || isNullType(b) {
		return a
	} else if frames.SameType(a, b) {
		return a
	}
	if frames.IsNumeric(a) && frames.IsNumeric(b) {
		if isFloatType(a) || isFloatType(b) {
			return &frames.Float64ColumnType{}
		}
		return &frames.Int64ColumnType{}
	}
	if frames.IsTemporal(a) && frames.IsTemporal(b) {
		return &frames.TimestampColumnType{}
	}
	al, aok := a.(*frames.ListColumnType)
	bl, bok := b.(*frames.ListColumnType)
	if aok && bok {
		return &frames.ListColumnType{Elem: MergeColumnTypes(al.Elem, bl.Elem)}
	}
	return &frames.StringColumnType{}
}

// ParseTimestamp parses a string using the first matching layout in TimestampLayouts or DateLayouts
func ParseTimestamp(s string) (time.Time, bool) {
	return frames.ParseTimestamp(s)
}

// ParseDate parses a string using the first matching layout in DateLayouts
func ParseDate(s string) (time.Time, bool) {
	return frames.ParseDate(s)
}

// ParseBool accepts the usual textual representations of booleans
func ParseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "t", "yes", "y", "1":
		return true, true
	case "false", "f", "no", "n", "0":
		return false, true
	default:
		return false, false
	}
}

func isNullType(t frames.ColumnType) bool {
	_, ok := t.(*frames.NullColumnType)
	return ok
}

func isFloatType(t frames.ColumnType) bool {
	_, ok := t.(*frames.Float64ColumnType)
	return ok
}

func allMatch(vals []string, fn func(string) bool) bool {
	for _, v := range vals {
		if !fn(v) {
			return false
		}
	}
	return true
}

func isInt32(s string) bool {
	i, err := strconv.ParseInt(s, 10, 64)
	return err == nil && i >= math.MinInt32 && i <= math.MaxInt32
}

func isInt64(s string) bool {
	_, err := strconv.ParseInt(s, 10, 64)
	return err == nil
}

func isFloat(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// isBool only accepts words; "1" and "0" have already been claimed by integers
func isBool(s string) bool {
	switch strings.ToLower(s) {
	case "true", "false":
		return true
	default:
		return false
	}
}
