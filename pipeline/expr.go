package pipeline

import (
	"fmt"
	"strings"

	"github.com/go-sif/frames/expr"
	"gopkg.in/yaml.v3"
)

// Expr is the YAML form of an expr.Expression. A bare string is a column reference and any
// other bare scalar is a literal, so that `args: [weight, 10]` compares a column to a number.
// String literals must be written as `{lit: "..."}`.
type Expr struct {
	Col         string        `yaml:"col,omitempty"`
	Lit         interface{}   `yaml:"lit,omitempty"`
	Fn          string        `yaml:"fn,omitempty"`
	Args        []*Expr       `yaml:"args,omitempty"`
	Type        string        `yaml:"type,omitempty"`        // cast
	Pattern     string        `yaml:"pattern,omitempty"`     // regexp_replace, split
	Replacement string        `yaml:"replacement,omitempty"` // regexp_replace
	Index       int           `yaml:"index,omitempty"`       // get_item
	Days        int           `yaml:"days,omitempty"`        // date_add
	Values      []interface{} `yaml:"values,omitempty"`      // isin
	As          string        `yaml:"as,omitempty"`
}

type plainExpr Expr

// UnmarshalYAML decodes the shorthand scalar forms of an Expr
func (e *Expr) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return value.Decode((*plainExpr)(e))
	}
	if value.ShortTag() == "!!str" {
		e.Col = value.Value
		return nil
	}
	var lit interface{}
	if err := value.Decode(&lit); err != nil {
		return err
	}
	e.Lit = lit
	return nil
}

// MarshalYAML produces the shorthand scalar forms of an Expr where possible
func (e *Expr) MarshalYAML() (interface{}, error) {
	if len(e.Fn) == 0 && len(e.As) == 0 {
		if len(e.Col) > 0 {
			return e.Col, nil
		}
		if _, isString := e.Lit.(string); !isString {
			return e.Lit, nil
		}
	}
	return (*plainExpr)(e), nil
}

func (e *Expr) arg(i int) (expr.Expression, error) {
	if i >= len(e.Args) || e.Args[i] == nil {
		return nil, fmt.Errorf("%s requires %d argument(s)", e.Fn, i+1)
	}
	return e.Args[i].Build()
}

func (e *Expr) args2() (expr.Expression, expr.Expression, error) {
	left, err := e.arg(0)
	if err != nil {
		return nil, nil, err
	}
	right, err := e.arg(1)
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

var binaryFns = map[string]func(interface{}, interface{}) expr.Expression{
	"add": expr.Add,
	"sub": expr.Sub,
	"mul": expr.Mul,
	"div": expr.Div,
	"gt":  expr.Gt,
	"ge":  expr.Ge,
	"lt":  expr.Lt,
	"le":  expr.Le,
	"eq":  expr.Eq,
	"neq": expr.Neq,
}

var unaryFns = map[string]func(expr.Expression) expr.Expression{
	"not":       expr.Not,
	"isnull":    expr.IsNull,
	"isnotnull": expr.IsNotNull,
	"upper":     expr.Upper,
	"lower":     expr.Lower,
	"initcap":   expr.InitCap,
	"length":    expr.Length,
	"trim":      expr.Trim,
}

// Build converts an Expr into an expr.Expression
func (e *Expr) Build() (expr.Expression, error) {
	built, err := e.build()
	if err != nil {
		return nil, err
	}
	if len(e.As) > 0 {
		return expr.Alias(built, e.As), nil
	}
	return built, nil
}

func (e *Expr) build() (expr.Expression, error) {
	fn := strings.ToLower(e.Fn)
	switch {
	case len(fn) == 0 && len(e.Col) > 0:
		return expr.Col(e.Col), nil
	case len(fn) == 0:
		return expr.Lit(e.Lit), nil
	case binaryFns[fn] != nil:
		left, right, err := e.args2()
		if err != nil {
			return nil, err
		}
		return binaryFns[fn](left, right), nil
	case unaryFns[fn] != nil:
		in, err := e.arg(0)
		if err != nil {
			return nil, err
		}
		return unaryFns[fn](in), nil
	}
	switch fn {
	case "and", "or":
		left, right, err := e.args2()
		if err != nil {
			return nil, err
		}
		if fn == "and" {
			return expr.And(left, right), nil
		}
		return expr.Or(left, right), nil
	case "isin":
		in, err := e.arg(0)
		if err != nil {
			return nil, err
		}
		return expr.IsIn(in, e.Values...), nil
	case "cast":
		in, err := e.arg(0)
		if err != nil {
			return nil, err
		}
		return expr.Cast(in, e.Type), nil
	case "regexp_replace":
		in, err := e.arg(0)
		if err != nil {
			return nil, err
		}
		return expr.RegexpReplace(in, e.Pattern, e.Replacement), nil
	case "split":
		in, err := e.arg(0)
		if err != nil {
			return nil, err
		}
		return expr.Split(in, e.Pattern), nil
	case "get_item":
		in, err := e.arg(0)
		if err != nil {
			return nil, err
		}
		return expr.GetItem(in, e.Index), nil
	case "current_date":
		return expr.CurrentDate(), nil
	case "date_add":
		in, err := e.arg(0)
		if err != nil {
			return nil, err
		}
		return expr.DateAdd(in, e.Days), nil
	case "date_diff":
		end, start, err := e.args2()
		if err != nil {
			return nil, err
		}
		return expr.DateDiff(end, start), nil
	case "xxhash64":
		ins := make([]expr.Expression, len(e.Args))
		for i := range e.Args {
			var err error
			if ins[i], err = e.arg(i); err != nil {
				return nil, err
			}
		}
		return expr.XXHash64(ins...), nil
	}
	return nil, fmt.Errorf("Unknown function %q", e.Fn)
}
