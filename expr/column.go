package expr

import (
	"fmt"
	"math"
	"reflect"
	"time"

	"github.com/go-sif/frames"
)

type columnExpr struct {
	name string
}

// Col references a column by name
func Col(name string) Expression {
	return &columnExpr{name: name}
}

func (c *columnExpr) String() string {
	return c.name
}

func (c *columnExpr) Bind(schema frames.Schema) (Evaluator, error) {
	offset, err := schema.GetOffset(c.name)
	if err != nil {
		return nil, err
	}
	idx := offset.Index()
	return &evaluator{colType: offset.Type(), fn: func(env Env, row frames.Row) (interface{}, error) {
		return row.GetAt(idx), nil
	}}, nil
}

type literalExpr struct {
	value   interface{}
	colType frames.ColumnType
	err     error
}

// Lit produces a constant. Go ints become int columns when they fit in 32 bits (bigint otherwise),
// floats become doubles, time.Times become timestamps, slices become arrays and nil is an untyped null.
func Lit(v interface{}) Expression {
	colType, err := literalType(v)
	if err != nil {
		return &literalExpr{value: v, err: err}
	}
	value, err := frames.CoerceValue(colType, v)
	return &literalExpr{value: value, colType: colType, err: err}
}

// TypedLit produces a constant of a specific ColumnType, such as a date
func TypedLit(v interface{}, colType frames.ColumnType) Expression {
	value, err := frames.CoerceValue(colType, v)
	return &literalExpr{value: value, colType: colType, err: err}
}

func literalType(v interface{}) (frames.ColumnType, error) {
	switch t := v.(type) {
	case nil:
		return &frames.NullColumnType{}, nil
	case string:
		return &frames.StringColumnType{}, nil
	case bool:
		return &frames.BoolColumnType{}, nil
	case int8, int16, int32, uint8, uint16:
		return &frames.Int32ColumnType{}, nil
	case int:
		if t >= math.MinInt32 && t <= math.MaxInt32 {
			return &frames.Int32ColumnType{}, nil
		}
		return &frames.Int64ColumnType{}, nil
	case int64, uint32:
		return &frames.Int64ColumnType{}, nil
	case float32, float64:
		return &frames.Float64ColumnType{}, nil
	case time.Time:
		return &frames.TimestampColumnType{}, nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice {
		var elem frames.ColumnType = &frames.StringColumnType{}
		for i := 0; i < rv.Len(); i++ {
			if e := rv.Index(i).Interface(); e != nil {
				et, err := literalType(e)
				if err != nil {
					return nil, err
				}
				elem = et
				break
			}
		}
		return &frames.ListColumnType{Elem: elem}, nil
	}
	return nil, fmt.Errorf("Unsupported literal %#v", v)
}

func (l *literalExpr) String() string {
	if l.value == nil {
		return "NULL"
	}
	return l.colType.ToString(l.value)
}

func (l *literalExpr) Bind(schema frames.Schema) (Evaluator, error) {
	if l.err != nil {
		return nil, l.err
	}
	value := l.value
	return &evaluator{colType: l.colType, fn: func(env Env, row frames.Row) (interface{}, error) {
		return value, nil
	}}, nil
}

type aliasExpr struct {
	child Expression
	name  string
}

// Alias renames the output of an Expression
func Alias(e Expression, name string) Expression {
	return &aliasExpr{child: e, name: name}
}

func (a *aliasExpr) String() string {
	return fmt.Sprintf("%s AS %s", a.child.String(), a.name)
}

func (a *aliasExpr) Bind(schema frames.Schema) (Evaluator, error) {
	return a.child.Bind(schema)
}

// asExpression wraps plain Go values as literals, leaving Expressions untouched
func asExpression(v interface{}) Expression {
	if e, ok := v.(Expression); ok {
		return e
	}
	return Lit(v)
}
