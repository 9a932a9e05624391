package expr

import (
	"fmt"

	"github.com/go-sif/frames"
)

type arithmeticOp string

const (
	addOp arithmeticOp = "+"
	subOp arithmeticOp = "-"
	mulOp arithmeticOp = "*"
	divOp arithmeticOp = "/"
)

type arithmeticExpr struct {
	op    arithmeticOp
	left  Expression
	right Expression
}

// Add sums two Expressions. Either side may be a plain Go value, which is treated as a literal.
func Add(left interface{}, right interface{}) Expression {
	return &arithmeticExpr{op: addOp, left: asExpression(left), right: asExpression(right)}
}

// Sub subtracts right from left
func Sub(left interface{}, right interface{}) Expression {
	return &arithmeticExpr{op: subOp, left: asExpression(left), right: asExpression(right)}
}

// Mul multiplies two Expressions
func Mul(left interface{}, right interface{}) Expression {
	return &arithmeticExpr{op: mulOp, left: asExpression(left), right: asExpression(right)}
}

// Div divides left by right, always producing a double. Division by zero produces null.
func Div(left interface{}, right interface{}) Expression {
	return &arithmeticExpr{op: divOp, left: asExpression(left), right: asExpression(right)}
}

func (a *arithmeticExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", a.left.String(), a.op, a.right.String())
}

// numericRank orders numeric types for promotion. Strings and nulls are promoted to double.
func numericRank(t frames.ColumnType) (int, bool) {
	switch t.(type) {
	case *frames.Int32ColumnType:
		return 1, true
	case *frames.Int64ColumnType:
		return 2, true
	case *frames.Float64ColumnType, *frames.StringColumnType:
		return 3, true
	case *frames.NullColumnType:
		return 0, true
	}
	return 0, false
}

func (a *arithmeticExpr) Bind(schema frames.Schema) (Evaluator, error) {
	left, err := a.left.Bind(schema)
	if err != nil {
		return nil, err
	}
	right, err := a.right.Bind(schema)
	if err != nil {
		return nil, err
	}
	lr, lok := numericRank(left.Type())
	rr, rok := numericRank(right.Type())
	if !lok || !rok {
		return nil, typeMismatch(a, "differing types in '%s' (%s and %s)", a.String(), left.Type().Name(), right.Type().Name())
	}
	rank := lr
	if rr > rank {
		rank = rr
	}
	if a.op == divOp || rank == 3 || rank == 0 {
		return binaryNullSafe(left, right, &frames.Float64ColumnType{}, func(env Env, x interface{}, y interface{}) (interface{}, error) {
			fx, xok := toFloat(x)
			fy, yok := toFloat(y)
			if !xok || !yok {
				return nil, nil
			}
			return applyFloat(a.op, fx, fy), nil
		}), nil
	}
	var colType frames.ColumnType = &frames.Int64ColumnType{}
	if rank == 1 {
		colType = &frames.Int32ColumnType{}
	}
	return binaryNullSafe(left, right, colType, func(env Env, x interface{}, y interface{}) (interface{}, error) {
		ix, _ := toIntegral(x)
		iy, _ := toIntegral(y)
		if rank == 1 {
			return applyInt32(a.op, int32(ix), int32(iy)), nil
		}
		return applyInt64(a.op, ix, iy), nil
	}), nil
}

func applyFloat(op arithmeticOp, x float64, y float64) interface{} {
	switch op {
	case addOp:
		return x + y
	case subOp:
		return x - y
	case mulOp:
		return x * y
	default:
		if y == 0 {
			return nil
		}
		return x / y
	}
}

func applyInt32(op arithmeticOp, x int32, y int32) interface{} {
	switch op {
	case addOp:
		return x + y
	case subOp:
		return x - y
	default:
		return x * y
	}
}

func applyInt64(op arithmeticOp, x int64, y int64) interface{} {
	switch op {
	case addOp:
		return x + y
	case subOp:
		return x - y
	default:
		return x * y
	}
}
