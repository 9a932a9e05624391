package expr

import (
	"fmt"

	"github.com/go-sif/frames"
)

type logicalExpr struct {
	and   bool
	left  Expression
	right Expression
}

// And combines two boolean Expressions using three-valued logic:
// false AND null is false, true AND null is null
func And(left Expression, right Expression) Expression {
	return &logicalExpr{and: true, left: left, right: right}
}

// Or combines two boolean Expressions using three-valued logic:
// true OR null is true, false OR null is null
func Or(left Expression, right Expression) Expression {
	return &logicalExpr{left: left, right: right}
}

func (l *logicalExpr) String() string {
	op := "OR"
	if l.and {
		op = "AND"
	}
	return fmt.Sprintf("(%s %s %s)", l.left.String(), op, l.right.String())
}

func bindBoolean(parent Expression, e Expression, schema frames.Schema) (Evaluator, error) {
	ev, err := e.Bind(schema)
	if err != nil {
		return nil, err
	}
	switch ev.Type().(type) {
	case *frames.BoolColumnType, *frames.NullColumnType:
		return ev, nil
	}
	return nil, typeMismatch(parent, "argument '%s' requires boolean type, however, it is of %s type", e.String(), ev.Type().Name())
}

func (l *logicalExpr) Bind(schema frames.Schema) (Evaluator, error) {
	left, err := bindBoolean(l, l.left, schema)
	if err != nil {
		return nil, err
	}
	right, err := bindBoolean(l, l.right, schema)
	if err != nil {
		return nil, err
	}
	// the value which decides the result on its own
	dominant := !l.and
	return &evaluator{colType: &frames.BoolColumnType{}, fn: func(env Env, row frames.Row) (interface{}, error) {
		a, err := left.Eval(env, row)
		if err != nil {
			return nil, err
		}
		if a != nil && a.(bool) == dominant {
			return dominant, nil
		}
		b, err := right.Eval(env, row)
		if err != nil {
			return nil, err
		}
		if b != nil && b.(bool) == dominant {
			return dominant, nil
		}
		if a == nil || b == nil {
			return nil, nil
		}
		return !dominant, nil
	}}, nil
}

type notExpr struct {
	child Expression
}

// Not negates a boolean Expression. NOT null is null.
func Not(e Expression) Expression {
	return &notExpr{child: e}
}

func (n *notExpr) String() string {
	return fmt.Sprintf("(NOT %s)", n.child.String())
}

func (n *notExpr) Bind(schema frames.Schema) (Evaluator, error) {
	in, err := bindBoolean(n, n.child, schema)
	if err != nil {
		return nil, err
	}
	return unaryNullSafe(in, &frames.BoolColumnType{}, func(env Env, v interface{}) (interface{}, error) {
		return !v.(bool), nil
	}), nil
}
