package expr

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-sif/frames"
	errors "github.com/go-sif/frames/errors"
	"github.com/go-sif/frames/logging"
)

// Env exposes run-wide state to Evaluators. A frames.StageContext is an Env.
type Env interface {
	Now() time.Time       // Now returns the time at which the current run started
	Logger() *slog.Logger // Logger receives per-row diagnostics, such as failed casts
}

// An Expression is an unresolved computation over the columns of a Row.
// Expressions are immutable and may be shared between DataFrames.
type Expression interface {
	String() string                               // String renders this Expression, and serves as its default output column name
	Bind(schema frames.Schema) (Evaluator, error) // Bind resolves column references and types against a Schema
}

// An Evaluator is an Expression which has been bound to a Schema
type Evaluator interface {
	Type() frames.ColumnType                           // Type returns the ColumnType produced by this Evaluator
	Eval(env Env, row frames.Row) (interface{}, error) // Eval computes the value for a single Row. nil indicates null.
}

// OutputName returns the name of the column produced by an Expression
func OutputName(e Expression) string {
	switch t := e.(type) {
	case *aliasExpr:
		return t.name
	case *columnExpr:
		return t.name
	}
	return e.String()
}

// BindAll binds several Expressions against the same Schema
func BindAll(schema frames.Schema, exprs ...Expression) ([]Evaluator, error) {
	evals := make([]Evaluator, len(exprs))
	for i, e := range exprs {
		ev, err := e.Bind(schema)
		if err != nil {
			return nil, err
		}
		evals[i] = ev
	}
	return evals, nil
}

// FixedEnv is an Env with a fixed clock, useful outside of a running Stage
type FixedEnv struct {
	At  time.Time
	Log *slog.Logger
}

// Now returns the fixed time of this FixedEnv
func (f FixedEnv) Now() time.Time {
	return f.At
}

// Logger returns the logger of this FixedEnv, or a logger which drops everything
func (f FixedEnv) Logger() *slog.Logger {
	if f.Log == nil {
		return logging.Discard()
	}
	return f.Log
}

// evaluator is the common Evaluator implementation: a result type and a function
type evaluator struct {
	colType frames.ColumnType
	fn      func(env Env, row frames.Row) (interface{}, error)
}

func (e *evaluator) Type() frames.ColumnType {
	return e.colType
}

func (e *evaluator) Eval(env Env, row frames.Row) (interface{}, error) {
	return e.fn(env, row)
}

// unaryNullSafe builds an Evaluator which returns null when its input is null
func unaryNullSafe(in Evaluator, colType frames.ColumnType, fn func(env Env, v interface{}) (interface{}, error)) Evaluator {
	return &evaluator{colType: colType, fn: func(env Env, row frames.Row) (interface{}, error) {
		v, err := in.Eval(env, row)
		if err != nil || v == nil {
			return nil, err
		}
		return fn(env, v)
	}}
}

// binaryNullSafe builds an Evaluator which returns null when either input is null.
// The right input is not evaluated if the left one is null.
func binaryNullSafe(left Evaluator, right Evaluator, colType frames.ColumnType, fn func(env Env, a interface{}, b interface{}) (interface{}, error)) Evaluator {
	return &evaluator{colType: colType, fn: func(env Env, row frames.Row) (interface{}, error) {
		a, err := left.Eval(env, row)
		if err != nil || a == nil {
			return nil, err
		}
		b, err := right.Eval(env, row)
		if err != nil || b == nil {
			return nil, err
		}
		return fn(env, a, b)
	}}
}

func typeMismatch(e Expression, format string, args ...interface{}) error {
	return errors.SchemaMismatchError{
		Reason: fmt.Sprintf("cannot resolve '%s' due to data type mismatch: %s", e.String(), fmt.Sprintf(format, args...)),
	}
}
