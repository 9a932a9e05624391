package expr

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-sif/frames"
	errors "github.com/go-sif/frames/errors"
	"github.com/go-sif/frames/schema"
)

type castExpr struct {
	child    Expression
	typeName string
}

// Cast converts the output of an Expression to the named type ("string", "int", "bigint", "double",
// "boolean", "date", "timestamp" or "array<...>"). Values which cannot be converted become null.
func Cast(e Expression, typeName string) Expression {
	return &castExpr{child: e, typeName: typeName}
}

func (c *castExpr) String() string {
	return fmt.Sprintf("CAST(%s AS %s)", c.child.String(), strings.ToUpper(c.typeName))
}

func (c *castExpr) Bind(s frames.Schema) (Evaluator, error) {
	to, err := frames.ParseColumnType(c.typeName)
	if err != nil {
		return nil, err
	}
	in, err := c.child.Bind(s)
	if err != nil {
		return nil, err
	}
	from := in.Type()
	if frames.SameType(from, to) {
		return &evaluator{colType: to, fn: in.Eval}, nil
	}
	return unaryNullSafe(in, to, func(env Env, v interface{}) (interface{}, error) {
		return castOrNull(env, v, from, to), nil
	}), nil
}

// castOrNull casts a value, logging and returning null on failure
func castOrNull(env Env, v interface{}, from frames.ColumnType, to frames.ColumnType) interface{} {
	res, err := CastValue(v, from, to)
	if err != nil {
		env.Logger().Debug("cast produced null", slog.Any("error", err))
		return nil
	}
	return res
}

// CastValue converts a canonical value of one ColumnType into another, following lenient
// (non-ANSI) SQL rules. A value which cannot be represented produces an errors.TypeCastError.
func CastValue(v interface{}, from frames.ColumnType, to frames.ColumnType) (interface{}, error) {
	if v == nil {
		return nil, nil
	}
	fail := errors.TypeCastError{Value: v, Type: to.Name()}
	switch t := to.(type) {
	case *frames.StringColumnType:
		return from.ToString(v), nil
	case *frames.BoolColumnType:
		switch x := v.(type) {
		case bool:
			return x, nil
		case string:
			if b, ok := schema.ParseBool(x); ok {
				return b, nil
			}
		case int32, int64, float64:
			f, _ := toFloat(x)
			return f != 0, nil
		}
	case *frames.Int32ColumnType:
		if i, ok := toIntegral(v); ok {
			if _, isString := v.(string); isString && (i < math.MinInt32 || i > math.MaxInt32) {
				return nil, fail
			}
			return int32(i), nil
		}
	case *frames.Int64ColumnType:
		if i, ok := toIntegral(v); ok {
			return i, nil
		}
	case *frames.Float64ColumnType:
		if f, ok := toFloat(v); ok {
			return f, nil
		}
	case *frames.DateColumnType:
		if tv, ok := toTime(v); ok {
			return frames.ToDate(tv), nil
		}
	case *frames.TimestampColumnType:
		if tv, ok := toTime(v); ok {
			return tv, nil
		}
	case *frames.ListColumnType:
		list, ok := v.([]interface{})
		fromList, fok := from.(*frames.ListColumnType)
		if ok && fok {
			res := make([]interface{}, len(list))
			for i, e := range list {
				ce, err := CastValue(e, fromList.Elem, t.Elem)
				if err != nil {
					return nil, fail
				}
				res[i] = ce
			}
			return res, nil
		}
	}
	return nil, fail
}

// toFloat converts numeric, boolean and numeric string values to float64
func toFloat(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		return f, err == nil
	}
	return 0, false
}

// toIntegral converts numeric, boolean and numeric string values to int64, truncating fractions.
// Out-of-range doubles and unparseable strings fail.
func toIntegral(v interface{}) (int64, bool) {
	switch x := v.(type) {
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	case float64:
		if math.IsNaN(x) || x >= math.MaxInt64 || x < math.MinInt64 {
			return 0, false
		}
		return int64(x), true
	case string:
		s := strings.TrimSpace(x)
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i, true
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return toIntegral(f)
		}
	}
	return 0, false
}

// toTime converts dates, timestamps and date/timestamp strings to time.Time
func toTime(v interface{}) (time.Time, bool) {
	switch x := v.(type) {
	case time.Time:
		return x, true
	case string:
		return schema.ParseTimestamp(x)
	}
	return time.Time{}, false
}
