package accumulators

import (
	"fmt"

	"github.com/go-sif/frames"
)

// Averager returns a new Avg Accumulator
func Averager(colName string) frames.AccumulatorFactory {
	return func() frames.Accumulator {
		return &Avg{colName: colName}
	}
}

// Avg averages the non-null values of a numeric column
type Avg struct {
	colName string
	sum     float64
	count   int64
}

// Accumulate adds a row to this Accumulator
func (a *Avg) Accumulate(row frames.Row) error {
	_, fval, _, ok, err := numericValue(row, a.colName)
	if err != nil || !ok {
		return err
	}
	a.sum += fval
	a.count++
	return nil
}

// Merge merges another Accumulator into this one
func (a *Avg) Merge(o frames.Accumulator) error {
	ca, ok := o.(*Avg)
	if !ok {
		return fmt.Errorf("Incoming accumulator is not an Avg Accumulator")
	}
	a.sum += ca.sum
	a.count += ca.count
	return nil
}

// Value returns the mean as a float64, or nil if no non-null values were seen
func (a *Avg) Value() interface{} {
	if a.count == 0 {
		return nil
	}
	return a.sum / float64(a.count)
}
