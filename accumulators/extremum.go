package accumulators

import (
	"fmt"

	"github.com/go-sif/frames"
	"github.com/go-sif/frames/expr"
)

// Minimizer returns a new Extremum Accumulator which finds the smallest non-null value of a column
func Minimizer(colName string) frames.AccumulatorFactory {
	return func() frames.Accumulator {
		return &Extremum{colName: colName, sign: -1}
	}
}

// Maximizer returns a new Extremum Accumulator which finds the largest non-null value of a column
func Maximizer(colName string) frames.AccumulatorFactory {
	return func() frames.Accumulator {
		return &Extremum{colName: colName, sign: 1}
	}
}

// Extremum tracks the minimum or maximum value of a column, of any orderable type
type Extremum struct {
	colName string
	sign    int
	value   interface{}
}

func (a *Extremum) offer(v interface{}) {
	if v == nil {
		return
	}
	if a.value == nil || expr.CompareValues(v, a.value)*a.sign > 0 {
		a.value = v
	}
}

// Accumulate adds a row to this Accumulator
func (a *Extremum) Accumulate(row frames.Row) error {
	v, err := row.Get(a.colName)
	if err != nil {
		return err
	}
	a.offer(v)
	return nil
}

// Merge merges another Accumulator into this one
func (a *Extremum) Merge(o frames.Accumulator) error {
	ea, ok := o.(*Extremum)
	if !ok || ea.sign != a.sign {
		return fmt.Errorf("Incoming accumulator is not a matching Extremum Accumulator")
	}
	a.offer(ea.value)
	return nil
}

// Value returns the extreme value, or nil if no non-null values were seen
func (a *Extremum) Value() interface{} {
	return a.value
}
