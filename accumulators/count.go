package accumulators

import (
	"fmt"

	"github.com/go-sif/frames"
)

// Counter returns a new Count Accumulator, which counts every Row
func Counter() frames.Accumulator {
	return new(Count)
}

// NonNullCounter returns a factory for Count Accumulators which only
// count Rows holding a non-null value in the named column
func NonNullCounter(colName string) frames.AccumulatorFactory {
	return func() frames.Accumulator {
		return &Count{colName: colName}
	}
}

// Count counts Rows, or the non-null values of a column
type Count struct {
	colName string // empty iff every Row is counted
	count   int64
}

// GetCount returns the row count from this Accumulator
func (a *Count) GetCount() int64 {
	return a.count
}

// Accumulate counts a Row
func (a *Count) Accumulate(row frames.Row) error {
	if len(a.colName) > 0 {
		v, err := row.Get(a.colName)
		if err != nil {
			return err
		} else if v == nil {
			return nil
		}
	}
	a.count++
	return nil
}

// Merge adds the count of another Count Accumulator to this one
func (a *Count) Merge(o frames.Accumulator) error {
	ca, ok := o.(*Count)
	if !ok {
		return fmt.Errorf("Incoming accumulator is not a Count Accumulator")
	} else if ca.colName != a.colName {
		return fmt.Errorf("Incoming Count Accumulator counts column %q, not %q", ca.colName, a.colName)
	}
	a.count += ca.count
	return nil
}

// Value returns the count as an int64
func (a *Count) Value() interface{} {
	return a.count
}
