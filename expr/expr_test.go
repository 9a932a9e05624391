package expr

import (
	"math"
	"testing"
	"time"

	"github.com/go-sif/frames"
	"github.com/go-sif/frames/errors"
	"github.com/go-sif/frames/internal/partition"
	"github.com/go-sif/frames/schema"
	"github.com/stretchr/testify/require"
)

var testEnv = FixedEnv{At: time.Date(2024, 3, 30, 15, 4, 5, 0, time.UTC)}

var testSchema = schema.MustParse("name string, weight double, qty int, big bigint, ok boolean, born date, tags array<string>, num string")

func testRow(values ...interface{}) frames.Row {
	return partition.CreateRow(values, testSchema)
}

func eval(t *testing.T, e Expression, row frames.Row) interface{} {
	ev, err := e.Bind(testSchema)
	require.Nil(t, err)
	v, err := ev.Eval(testEnv, row)
	require.Nil(t, err)
	return v
}

func evalType(t *testing.T, e Expression) string {
	ev, err := e.Bind(testSchema)
	require.Nil(t, err)
	return ev.Type().Name()
}

var born = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

var row = testRow("tomato soup", 12.5, int32(3), int64(7), true, born, []interface{}{"x", "y"}, "4.5")

var nullRow = testRow(nil, nil, nil, nil, nil, nil, nil, nil)

func TestColumnAndNames(t *testing.T) {
	require.Equal(t, "tomato soup", eval(t, Col("name"), row))
	require.Equal(t, "name", OutputName(Col("name")))
	require.Equal(t, "upper(name)", OutputName(Upper(Col("name"))))
	require.Equal(t, "(weight * 1.1)", OutputName(Mul(Col("weight"), 1.1)))
	require.Equal(t, "heavy", OutputName(Alias(Gt(Col("weight"), 10), "heavy")))
	_, err := Col("missing").Bind(testSchema)
	require.Equal(t, errors.ColumnNotFoundError{Name: "missing"}, err)
}

func TestLiterals(t *testing.T) {
	require.Equal(t, "int", evalType(t, Lit(1)))
	require.Equal(t, "bigint", evalType(t, Lit(int64(1))))
	require.Equal(t, "bigint", evalType(t, Lit(1<<40)))
	require.Equal(t, "double", evalType(t, Lit(1.5)))
	require.Equal(t, "void", evalType(t, Lit(nil)))
	require.Equal(t, "array<string>", evalType(t, Lit([]string{"a"})))
	require.Equal(t, "Palestine", eval(t, Lit("Palestine"), nullRow))
	require.Equal(t, "NULL", Lit(nil).String())
	_, err := Lit(struct{}{}).Bind(testSchema)
	require.NotNil(t, err)
}

func TestArithmeticPromotion(t *testing.T) {
	require.Equal(t, "int", evalType(t, Add(Col("qty"), 1)))
	require.Equal(t, int32(4), eval(t, Add(Col("qty"), 1), row))
	require.Equal(t, "bigint", evalType(t, Mul(Col("qty"), Col("big"))))
	require.Equal(t, int64(21), eval(t, Mul(Col("qty"), Col("big")), row))
	require.Equal(t, "double", evalType(t, Sub(Col("weight"), Col("qty"))))
	require.Equal(t, 9.5, eval(t, Sub(Col("weight"), Col("qty")), row))
	require.Equal(t, "double", evalType(t, Div(Col("big"), 2)))
	require.Equal(t, 3.5, eval(t, Div(Col("big"), 2), row))
	// strings are cast to double
	require.Equal(t, 5.5, eval(t, Add(Col("num"), 1), row))
	require.Nil(t, eval(t, Add(Col("name"), 1), row))
	require.Nil(t, eval(t, Div(Col("qty"), 0), row))
	require.Nil(t, eval(t, Add(Col("qty"), 1), nullRow))
	_, err := Add(Col("born"), 1).Bind(testSchema)
	require.IsType(t, errors.SchemaMismatchError{}, err)
}

func TestComparisons(t *testing.T) {
	require.Equal(t, true, eval(t, Gt(Col("weight"), 10), row))
	require.Equal(t, false, eval(t, Lt(Col("weight"), 10), row))
	require.Equal(t, true, eval(t, Ge(Col("qty"), int64(3)), row))
	require.Equal(t, true, eval(t, Le(Col("qty"), 3), row))
	require.Equal(t, true, eval(t, Eq(Col("name"), "tomato soup"), row))
	require.Equal(t, false, eval(t, Neq(Col("name"), "tomato soup"), row))
	require.Equal(t, true, eval(t, Gt(Col("num"), 4), row))
	require.Equal(t, true, eval(t, Eq(Col("born"), "2024-03-01"), row))
	require.Nil(t, eval(t, Gt(Col("weight"), 10), nullRow))
	require.Nil(t, eval(t, Eq(Col("weight"), Lit(nil)), row))
	require.Equal(t, "(NOT (name = a))", Neq(Col("name"), "a").String())
	_, err := Gt(Col("ok"), Col("born")).Bind(testSchema)
	require.IsType(t, errors.SchemaMismatchError{}, err)
}

func TestNullChecks(t *testing.T) {
	require.Equal(t, true, eval(t, IsNull(Col("weight")), nullRow))
	require.Equal(t, false, eval(t, IsNull(Col("weight")), row))
	require.Equal(t, true, eval(t, IsNotNull(Col("weight")), row))
	require.Equal(t, "(weight IS NULL)", IsNull(Col("weight")).String())
}

func TestIsIn(t *testing.T) {
	require.Equal(t, true, eval(t, IsIn(Col("qty"), 1, 2, 3), row))
	require.Equal(t, false, eval(t, IsIn(Col("qty"), 1, 2), row))
	require.Nil(t, eval(t, IsIn(Col("qty"), 1, nil), row))
	require.Equal(t, true, eval(t, IsIn(Col("qty"), nil, 3), row))
	require.Nil(t, eval(t, IsIn(Col("qty"), 1, 2), nullRow))
	require.Equal(t, "(qty IN (1, 2))", IsIn(Col("qty"), 1, 2).String())
}

func TestThreeValuedLogic(t *testing.T) {
	tru, fls, null := Lit(true), Lit(false), Lit(nil)
	cases := []struct {
		e        Expression
		expected interface{}
	}{
		{And(tru, tru), true},
		{And(tru, fls), false},
		{And(fls, null), false},
		{And(null, fls), false},
		{And(tru, null), nil},
		{And(null, null), nil},
		{Or(tru, null), true},
		{Or(null, tru), true},
		{Or(fls, null), nil},
		{Or(fls, fls), false},
		{Not(null), nil},
		{Not(tru), false},
		{Not(fls), true},
	}
	for _, c := range cases {
		require.Equal(t, c.expected, eval(t, c.e, row), c.e.String())
	}
	_, err := And(Col("name"), tru).Bind(testSchema)
	require.IsType(t, errors.SchemaMismatchError{}, err)
}

func TestStringFunctions(t *testing.T) {
	require.Equal(t, "TOMATO SOUP", eval(t, Upper(Col("name")), row))
	require.Equal(t, "Tomato Soup", eval(t, InitCap(Col("name")), row))
	require.Equal(t, "Tomato Soup", eval(t, InitCap(Lit("tOMATO sOUP")), row))
	require.Equal(t, "Low Fat-dairy", eval(t, InitCap(Lit("low fat-dairy")), row))
	require.Equal(t, "  O'neil\tÉcole 2nd", eval(t, InitCap(Lit("  o'NEIL\técole 2ND")), row))
	require.Equal(t, "", eval(t, InitCap(Lit("")), row))
	require.Equal(t, int32(11), eval(t, Length(Col("name")), row))
	require.Equal(t, int32(4), eval(t, Length(Lit("café")), row))
	require.Equal(t, "tomato stew", eval(t, RegexpReplace(Col("name"), "soup$", "stew"), row))
	require.Equal(t, "Reg", eval(t, RegexpReplace(Lit("Regular"), "Regular", "Reg"), row))
	require.Equal(t, []interface{}{"tomato", "soup"}, eval(t, Split(Col("name"), " "), row))
	require.Equal(t, "array<string>", evalType(t, Split(Col("name"), " ")))
	require.Equal(t, "soup", eval(t, GetItem(Split(Col("name"), " "), 1), row))
	require.Nil(t, eval(t, GetItem(Split(Col("name"), " "), 5), row))
	require.Equal(t, "y", eval(t, GetItem(Col("tags"), 1), row))
	require.Equal(t, "3", eval(t, Lower(Col("qty")), row))
	require.Nil(t, eval(t, Upper(Col("name")), nullRow))
	_, err := RegexpReplace(Col("name"), "(", "").Bind(testSchema)
	require.NotNil(t, err)
	_, err = GetItem(Col("name"), 0).Bind(testSchema)
	require.IsType(t, errors.SchemaMismatchError{}, err)
}

func TestDateFunctions(t *testing.T) {
	today := time.Date(2024, 3, 30, 0, 0, 0, 0, time.UTC)
	require.Equal(t, today, eval(t, CurrentDate(), row))
	require.Equal(t, time.Date(2024, 4, 6, 0, 0, 0, 0, time.UTC), eval(t, DateAdd(CurrentDate(), 7), row))
	require.Equal(t, int32(7), eval(t, DateDiff(DateAdd(CurrentDate(), 7), CurrentDate()), row))
	require.Equal(t, int32(-29), eval(t, DateDiff(Col("born"), CurrentDate()), row))
	require.Equal(t, int32(1), eval(t, DateDiff(Lit("2024-01-02"), Lit("2024-01-01")), row))
	require.Nil(t, eval(t, DateAdd(Col("born"), 1), nullRow))
	_, err := DateAdd(Col("qty"), 1).Bind(testSchema)
	require.IsType(t, errors.SchemaMismatchError{}, err)
}

func TestCast(t *testing.T) {
	require.Equal(t, 4.5, eval(t, Cast(Col("num"), "double"), row))
	require.Nil(t, eval(t, Cast(Col("name"), "double"), row))
	require.Equal(t, int32(12), eval(t, Cast(Col("weight"), "int"), row))
	require.Equal(t, int32(4), eval(t, Cast(Col("num"), "int"), row))
	require.Nil(t, eval(t, Cast(Lit("3000000000"), "int"), row))
	require.Equal(t, int32(math.MinInt32), eval(t, Cast(Lit("-2147483648"), "int"), row))
	require.Equal(t, int64(3000000000), eval(t, Cast(Lit("3000000000"), "bigint"), row))
	require.Equal(t, "12.5", eval(t, Cast(Col("weight"), "string"), row))
	require.Equal(t, "2024-03-01", eval(t, Cast(Col("born"), "string"), row))
	require.Equal(t, born, eval(t, Cast(Lit("2024-03-01"), "date"), row))
	require.Equal(t, true, eval(t, Cast(Lit("yes"), "boolean"), row))
	require.Equal(t, []interface{}{"x", "y"}, eval(t, Cast(Col("tags"), "array<string>"), row))
	require.Equal(t, "CAST(num AS DOUBLE)", Cast(Col("num"), "double").String())
	_, err := Cast(Col("num"), "widget").Bind(testSchema)
	require.NotNil(t, err)

	_, err = CastValue("abc", &frames.StringColumnType{}, &frames.Int64ColumnType{})
	require.Equal(t, errors.TypeCastError{Value: "abc", Type: "bigint"}, err)
}

func TestXXHash64(t *testing.T) {
	a := eval(t, XXHash64(Col("name"), Col("qty")), row)
	b := eval(t, XXHash64(Col("name"), Col("qty")), row.Clone())
	require.Equal(t, a, b)
	require.NotEqual(t, a, eval(t, XXHash64(Col("qty"), Col("name")), row))
	require.Equal(t, "bigint", evalType(t, XXHash64(Col("name"))))
}

func TestCompareValues(t *testing.T) {
	require.Equal(t, -1, CompareValues(nil, "a"))
	require.Equal(t, 0, CompareValues(nil, nil))
	require.Equal(t, 1, CompareValues(int32(2), int32(1)))
	require.Equal(t, -1, CompareValues([]interface{}{"a"}, []interface{}{"a", "b"}))
	require.Equal(t, -1, CompareValues(born, born.AddDate(0, 0, 1)))
}
