package expr

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-sif/frames"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type stringFuncExpr struct {
	name  string
	child Expression
}

// Upper converts a string to upper case
func Upper(e Expression) Expression {
	return &stringFuncExpr{name: "upper", child: e}
}

// Lower converts a string to lower case
func Lower(e Expression) Expression {
	return &stringFuncExpr{name: "lower", child: e}
}

// InitCap upper-cases the first letter of each word and lower-cases the rest.
// Words are separated by whitespace only, so "fat-free" becomes "Fat-free".
func InitCap(e Expression) Expression {
	return &stringFuncExpr{name: "initcap", child: e}
}

// Length counts the characters of a string
func Length(e Expression) Expression {
	return &stringFuncExpr{name: "length", child: e}
}

// Trim removes leading and trailing whitespace
func Trim(e Expression) Expression {
	return &stringFuncExpr{name: "trim", child: e}
}

func (s *stringFuncExpr) String() string {
	return fmt.Sprintf("%s(%s)", s.name, s.child.String())
}

// bindString binds an Expression whose non-string output is implicitly cast to string
func bindString(e Expression, schema frames.Schema) (func(env Env, row frames.Row) (interface{}, error), error) {
	in, err := e.Bind(schema)
	if err != nil {
		return nil, err
	}
	from := in.Type()
	if _, ok := from.(*frames.StringColumnType); ok {
		return in.Eval, nil
	}
	return func(env Env, row frames.Row) (interface{}, error) {
		v, err := in.Eval(env, row)
		if err != nil || v == nil {
			return nil, err
		}
		return from.ToString(v), nil
	}, nil
}

func (s *stringFuncExpr) Bind(schema frames.Schema) (Evaluator, error) {
	in, err := bindString(s.child, schema)
	if err != nil {
		return nil, err
	}
	var colType frames.ColumnType = &frames.StringColumnType{}
	var fn func(v string) interface{}
	switch s.name {
	case "upper":
		fn = func(v string) interface{} { return strings.ToUpper(v) }
	case "lower":
		fn = func(v string) interface{} { return strings.ToLower(v) }
	case "initcap":
		fn = func(v string) interface{} { return initCap(v) }
	case "trim":
		fn = func(v string) interface{} { return strings.TrimSpace(v) }
	case "length":
		colType = &frames.Int32ColumnType{}
		fn = func(v string) interface{} { return int32(utf8.RuneCountInString(v)) }
	default:
		return nil, fmt.Errorf("Unknown string function %s", s.name)
	}
	return unaryNullSafe(&evaluator{colType: &frames.StringColumnType{}, fn: in}, colType, func(env Env, v interface{}) (interface{}, error) {
		return fn(v.(string)), nil
	}), nil
}

func initCap(v string) string {
	// a Caser holds state, so these are needed per call
	upper := cases.Upper(language.Und)
	lower := cases.Lower(language.Und)
	var b strings.Builder
	for len(v) > 0 {
		end := strings.IndexFunc(v, unicode.IsSpace)
		if end == 0 {
			_, size := utf8.DecodeRuneInString(v)
			b.WriteString(v[:size])
			v = v[size:]
			continue
		} else if end < 0 {
			end = len(v)
		}
		_, size := utf8.DecodeRuneInString(v)
		b.WriteString(upper.String(v[:size]))
		b.WriteString(lower.String(v[size:end]))
		v = v[end:]
	}
	return b.String()
}

type regexpReplaceExpr struct {
	child       Expression
	pattern     string
	replacement string
}

// RegexpReplace replaces every match of pattern within a string. The replacement may
// refer to capture groups as $1, $2, etc.
func RegexpReplace(e Expression, pattern string, replacement string) Expression {
	return &regexpReplaceExpr{child: e, pattern: pattern, replacement: replacement}
}

func (r *regexpReplaceExpr) String() string {
	return fmt.Sprintf("regexp_replace(%s, %s, %s, 1)", r.child.String(), r.pattern, r.replacement)
}

func (r *regexpReplaceExpr) Bind(schema frames.Schema) (Evaluator, error) {
	re, err := regexp.Compile(r.pattern)
	if err != nil {
		return nil, fmt.Errorf("Invalid pattern in %s: %w", r.String(), err)
	}
	in, err := bindString(r.child, schema)
	if err != nil {
		return nil, err
	}
	replacement := r.replacement
	return unaryNullSafe(&evaluator{colType: &frames.StringColumnType{}, fn: in}, &frames.StringColumnType{}, func(env Env, v interface{}) (interface{}, error) {
		return re.ReplaceAllString(v.(string), replacement), nil
	}), nil
}

type splitExpr struct {
	child   Expression
	pattern string
}

// Split divides a string around matches of a regular expression, producing an array<string>.
// Trailing empty strings are kept.
func Split(e Expression, pattern string) Expression {
	return &splitExpr{child: e, pattern: pattern}
}

func (s *splitExpr) String() string {
	return fmt.Sprintf("split(%s, %s, -1)", s.child.String(), s.pattern)
}

func (s *splitExpr) Bind(schema frames.Schema) (Evaluator, error) {
	re, err := regexp.Compile(s.pattern)
	if err != nil {
		return nil, fmt.Errorf("Invalid pattern in %s: %w", s.String(), err)
	}
	in, err := bindString(s.child, schema)
	if err != nil {
		return nil, err
	}
	colType := &frames.ListColumnType{Elem: &frames.StringColumnType{}}
	return unaryNullSafe(&evaluator{colType: &frames.StringColumnType{}, fn: in}, colType, func(env Env, v interface{}) (interface{}, error) {
		parts := re.Split(v.(string), -1)
		res := make([]interface{}, len(parts))
		for i, p := range parts {
			res[i] = p
		}
		return res, nil
	}), nil
}

type getItemExpr struct {
	child Expression
	index int
}

// GetItem retrieves an element of an array by zero-based position. Positions
// outside of the array produce null.
func GetItem(e Expression, index int) Expression {
	return &getItemExpr{child: e, index: index}
}

func (g *getItemExpr) String() string {
	return g.child.String() + "[" + strconv.Itoa(g.index) + "]"
}

func (g *getItemExpr) Bind(schema frames.Schema) (Evaluator, error) {
	in, err := g.child.Bind(schema)
	if err != nil {
		return nil, err
	}
	listType, ok := in.Type().(*frames.ListColumnType)
	if !ok {
		return nil, typeMismatch(g, "argument 1 requires array type, however, '%s' is of %s type", g.child.String(), in.Type().Name())
	}
	idx := g.index
	return unaryNullSafe(in, listType.Elem, func(env Env, v interface{}) (interface{}, error) {
		list := v.([]interface{})
		if idx < 0 || idx >= len(list) {
			return nil, nil
		}
		return list[idx], nil
	}), nil
}
