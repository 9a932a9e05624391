package expr

import (
	"fmt"
	"time"

	"github.com/go-sif/frames"
)

const day = 24 * time.Hour

type currentDateExpr struct{}

// CurrentDate produces the date on which the current run started
func CurrentDate() Expression {
	return &currentDateExpr{}
}

func (c *currentDateExpr) String() string {
	return "current_date()"
}

func (c *currentDateExpr) Bind(schema frames.Schema) (Evaluator, error) {
	return &evaluator{colType: &frames.DateColumnType{}, fn: func(env Env, row frames.Row) (interface{}, error) {
		return frames.ToDate(env.Now()), nil
	}}, nil
}

// bindDate binds an Expression producing a date, timestamp or date string
func bindDate(parent Expression, e Expression, schema frames.Schema) (Evaluator, error) {
	in, err := e.Bind(schema)
	if err != nil {
		return nil, err
	}
	switch in.Type().(type) {
	case *frames.DateColumnType, *frames.TimestampColumnType, *frames.StringColumnType, *frames.NullColumnType:
	default:
		return nil, typeMismatch(parent, "argument '%s' requires date type, however, it is of %s type", e.String(), in.Type().Name())
	}
	return unaryNullSafe(in, &frames.DateColumnType{}, func(env Env, v interface{}) (interface{}, error) {
		t, ok := toTime(v)
		if !ok {
			return nil, nil
		}
		return frames.ToDate(t), nil
	}), nil
}

type dateAddExpr struct {
	child Expression
	days  int
}

// DateAdd adds a number of days (possibly negative) to a date
func DateAdd(e Expression, days int) Expression {
	return &dateAddExpr{child: e, days: days}
}

func (d *dateAddExpr) String() string {
	return fmt.Sprintf("date_add(%s, %d)", d.child.String(), d.days)
}

func (d *dateAddExpr) Bind(schema frames.Schema) (Evaluator, error) {
	in, err := bindDate(d, d.child, schema)
	if err != nil {
		return nil, err
	}
	days := d.days
	return unaryNullSafe(in, &frames.DateColumnType{}, func(env Env, v interface{}) (interface{}, error) {
		return v.(time.Time).AddDate(0, 0, days), nil
	}), nil
}

type dateDiffExpr struct {
	end   Expression
	start Expression
}

// DateDiff counts the days from start to end, as an int
func DateDiff(end Expression, start Expression) Expression {
	return &dateDiffExpr{end: end, start: start}
}

func (d *dateDiffExpr) String() string {
	return fmt.Sprintf("date_diff(%s, %s)", d.end.String(), d.start.String())
}

func (d *dateDiffExpr) Bind(schema frames.Schema) (Evaluator, error) {
	end, err := bindDate(d, d.end, schema)
	if err != nil {
		return nil, err
	}
	start, err := bindDate(d, d.start, schema)
	if err != nil {
		return nil, err
	}
	return binaryNullSafe(end, start, &frames.Int32ColumnType{}, func(env Env, a interface{}, b interface{}) (interface{}, error) {
		return int32(a.(time.Time).Sub(b.(time.Time)) / day), nil
	}), nil
}
