package expr

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-sif/frames"
)

// comparator orders two non-null values. ok is false if either could not be converted
// into the common comparison type, in which case the comparison is null.
type comparator func(a interface{}, b interface{}) (cmp int, ok bool)

func isIntegral(t frames.ColumnType) bool {
	switch t.(type) {
	case *frames.Int32ColumnType, *frames.Int64ColumnType:
		return true
	}
	return false
}

func isType[T frames.ColumnType](t frames.ColumnType) bool {
	_, ok := t.(T)
	return ok
}

// bindComparator chooses how values of two ColumnTypes are compared. Numbers compare with
// numbers (and with strings, which are cast to double); temporal values compare with each
// other and with strings, which are parsed.
func bindComparator(e Expression, lt frames.ColumnType, rt frames.ColumnType) (comparator, error) {
	lNull, rNull := isType[*frames.NullColumnType](lt), isType[*frames.NullColumnType](rt)
	lStr, rStr := isType[*frames.StringColumnType](lt), isType[*frames.StringColumnType](rt)
	switch {
	case lNull || rNull:
		return func(a interface{}, b interface{}) (int, bool) { return 0, false }, nil
	case isIntegral(lt) && isIntegral(rt):
		return func(a interface{}, b interface{}) (int, bool) {
			x, _ := toIntegral(a)
			y, _ := toIntegral(b)
			return compareInt64(x, y), true
		}, nil
	case (frames.IsNumeric(lt) || lStr) && (frames.IsNumeric(rt) || rStr) && !(lStr && rStr):
		return func(a interface{}, b interface{}) (int, bool) {
			x, xok := toFloat(a)
			y, yok := toFloat(b)
			if !xok || !yok {
				return 0, false
			}
			return compareFloat64(x, y), true
		}, nil
	case (frames.IsTemporal(lt) || lStr) && (frames.IsTemporal(rt) || rStr) && !(lStr && rStr):
		return func(a interface{}, b interface{}) (int, bool) {
			x, xok := toTime(a)
			y, yok := toTime(b)
			if !xok || !yok {
				return 0, false
			}
			return compareTime(x, y), true
		}, nil
	case frames.SameType(lt, rt):
		return func(a interface{}, b interface{}) (int, bool) {
			return CompareValues(a, b), true
		}, nil
	}
	return nil, typeMismatch(e, "differing types in '%s' (%s and %s)", e.String(), lt.Name(), rt.Name())
}

// CompareValues orders two canonical values of the same ColumnType. nil sorts before
// any other value, and NaN after any other double.
func CompareValues(a interface{}, b interface{}) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	}
	switch x := a.(type) {
	case string:
		return strings.Compare(x, b.(string))
	case bool:
		y := b.(bool)
		if x == y {
			return 0
		} else if !x {
			return -1
		}
		return 1
	case int32:
		return compareInt64(int64(x), int64(b.(int32)))
	case int64:
		return compareInt64(x, b.(int64))
	case float64:
		return compareFloat64(x, b.(float64))
	case time.Time:
		return compareTime(x, b.(time.Time))
	case []interface{}:
		y := b.([]interface{})
		for i := 0; i < len(x) && i < len(y); i++ {
			if c := CompareValues(x[i], y[i]); c != 0 {
				return c
			}
		}
		return compareInt64(int64(len(x)), int64(len(y)))
	}
	panic(fmt.Errorf("Values of type %T cannot be compared", a))
}

func compareInt64(x int64, y int64) int {
	if x < y {
		return -1
	} else if x > y {
		return 1
	}
	return 0
}

func compareFloat64(x float64, y float64) int {
	xNaN, yNaN := math.IsNaN(x), math.IsNaN(y)
	switch {
	case xNaN && yNaN:
		return 0
	case xNaN:
		return 1
	case yNaN:
		return -1
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}

func compareTime(x time.Time, y time.Time) int {
	if x.Before(y) {
		return -1
	} else if x.After(y) {
		return 1
	}
	return 0
}

type comparisonOp string

const (
	gtOp  comparisonOp = ">"
	geOp  comparisonOp = ">="
	ltOp  comparisonOp = "<"
	leOp  comparisonOp = "<="
	eqOp  comparisonOp = "="
	neqOp comparisonOp = "!="
)

type comparisonExpr struct {
	op    comparisonOp
	left  Expression
	right Expression
}

// Gt is true when left > right, and null if either is null
func Gt(left interface{}, right interface{}) Expression {
	return &comparisonExpr{op: gtOp, left: asExpression(left), right: asExpression(right)}
}

// Ge is true when left >= right
func Ge(left interface{}, right interface{}) Expression {
	return &comparisonExpr{op: geOp, left: asExpression(left), right: asExpression(right)}
}

// Lt is true when left < right
func Lt(left interface{}, right interface{}) Expression {
	return &comparisonExpr{op: ltOp, left: asExpression(left), right: asExpression(right)}
}

// Le is true when left <= right
func Le(left interface{}, right interface{}) Expression {
	return &comparisonExpr{op: leOp, left: asExpression(left), right: asExpression(right)}
}

// Eq is true when left = right
func Eq(left interface{}, right interface{}) Expression {
	return &comparisonExpr{op: eqOp, left: asExpression(left), right: asExpression(right)}
}

// Neq is true when left != right
func Neq(left interface{}, right interface{}) Expression {
	return &comparisonExpr{op: neqOp, left: asExpression(left), right: asExpression(right)}
}

func (c *comparisonExpr) String() string {
	if c.op == neqOp {
		return fmt.Sprintf("(NOT (%s = %s))", c.left.String(), c.right.String())
	}
	return fmt.Sprintf("(%s %s %s)", c.left.String(), c.op, c.right.String())
}

func (c *comparisonExpr) Bind(schema frames.Schema) (Evaluator, error) {
	left, err := c.left.Bind(schema)
	if err != nil {
		return nil, err
	}
	right, err := c.right.Bind(schema)
	if err != nil {
		return nil, err
	}
	cmp, err := bindComparator(c, left.Type(), right.Type())
	if err != nil {
		return nil, err
	}
	op := c.op
	return binaryNullSafe(left, right, &frames.BoolColumnType{}, func(env Env, a interface{}, b interface{}) (interface{}, error) {
		res, ok := cmp(a, b)
		if !ok {
			return nil, nil
		}
		switch op {
		case gtOp:
			return res > 0, nil
		case geOp:
			return res >= 0, nil
		case ltOp:
			return res < 0, nil
		case leOp:
			return res <= 0, nil
		case eqOp:
			return res == 0, nil
		default:
			return res != 0, nil
		}
	}), nil
}

type nullCheckExpr struct {
	child   Expression
	negated bool
}

// IsNull is true when its input is null. It is never null itself.
func IsNull(e Expression) Expression {
	return &nullCheckExpr{child: e}
}

// IsNotNull is true when its input is not null
func IsNotNull(e Expression) Expression {
	return &nullCheckExpr{child: e, negated: true}
}

func (n *nullCheckExpr) String() string {
	if n.negated {
		return fmt.Sprintf("(%s IS NOT NULL)", n.child.String())
	}
	return fmt.Sprintf("(%s IS NULL)", n.child.String())
}

func (n *nullCheckExpr) Bind(schema frames.Schema) (Evaluator, error) {
	in, err := n.child.Bind(schema)
	if err != nil {
		return nil, err
	}
	negated := n.negated
	return &evaluator{colType: &frames.BoolColumnType{}, fn: func(env Env, row frames.Row) (interface{}, error) {
		v, err := in.Eval(env, row)
		if err != nil {
			return nil, err
		}
		return (v == nil) != negated, nil
	}}, nil
}

type inExpr struct {
	child  Expression
	values []Expression
}

// IsIn is true when its input equals any of the given values. When no value matches,
// it is null if the input or any of the values is null, and false otherwise.
func IsIn(e Expression, values ...interface{}) Expression {
	exprs := make([]Expression, len(values))
	for i, v := range values {
		exprs[i] = asExpression(v)
	}
	return &inExpr{child: e, values: exprs}
}

func (in *inExpr) String() string {
	vals := make([]string, len(in.values))
	for i, v := range in.values {
		vals[i] = v.String()
	}
	return fmt.Sprintf("(%s IN (%s))", in.child.String(), strings.Join(vals, ", "))
}

func (in *inExpr) Bind(schema frames.Schema) (Evaluator, error) {
	child, err := in.child.Bind(schema)
	if err != nil {
		return nil, err
	}
	values, err := BindAll(schema, in.values...)
	if err != nil {
		return nil, err
	}
	cmps := make([]comparator, len(values))
	for i, v := range values {
		cmp, err := bindComparator(in, child.Type(), v.Type())
		if err != nil {
			return nil, err
		}
		cmps[i] = cmp
	}
	return &evaluator{colType: &frames.BoolColumnType{}, fn: func(env Env, row frames.Row) (interface{}, error) {
		v, err := child.Eval(env, row)
		if err != nil || v == nil {
			return nil, err
		}
		sawNull := false
		for i, ve := range values {
			candidate, err := ve.Eval(env, row)
			if err != nil {
				return nil, err
			}
			if candidate == nil {
				sawNull = true
				continue
			}
			res, ok := cmps[i](v, candidate)
			if !ok {
				sawNull = true
			} else if res == 0 {
				return true, nil
			}
		}
		if sawNull {
			return nil, nil
		}
		return false, nil
	}}, nil
}
