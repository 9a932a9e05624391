package accumulators

import (
	"fmt"

	"github.com/go-sif/frames"
	errors "github.com/go-sif/frames/errors"
)

// Adder returns a new Sum Accumulator
func Adder(colName string) frames.AccumulatorFactory {
	return func() frames.Accumulator {
		return &Sum{colName: colName}
	}
}

// Sum sums the non-null values of a numeric column. Integral columns sum to a bigint,
// and doubles to a double.
type Sum struct {
	colName  string
	integral bool
	seen     bool
	isum     int64
	fsum     float64
}

// numericValue retrieves a numeric column value from a Row, reporting whether it is
// integral. ok is false iff the value is null.
func numericValue(row frames.Row, colName string) (ival int64, fval float64, integral bool, ok bool, err error) {
	offset, err := row.Schema().GetOffset(colName)
	if err != nil {
		return 0, 0, false, false, err
	}
	v := row.GetAt(offset.Index())
	switch t := v.(type) {
	case nil:
		return 0, 0, false, false, nil
	case int32:
		return int64(t), float64(t), true, true, nil
	case int64:
		return t, float64(t), true, true, nil
	case float64:
		return 0, t, false, true, nil
	}
	return 0, 0, false, false, errors.SchemaMismatchError{Reason: fmt.Sprintf("column %s of type %s is not numeric", colName, offset.Type().Name())}
}

// GetSum returns the row Sum from this Accumulator
func (a *Sum) GetSum() float64 {
	if a.integral {
		return float64(a.isum)
	}
	return a.fsum
}

// Accumulate adds a row to this Accumulator
func (a *Sum) Accumulate(row frames.Row) error {
	ival, fval, integral, ok, err := numericValue(row, a.colName)
	if err != nil || !ok {
		return err
	}
	if !a.seen {
		a.seen = true
		a.integral = integral
	}
	a.isum += ival
	a.fsum += fval
	return nil
}

// Merge merges another Accumulator into this one
func (a *Sum) Merge(o frames.Accumulator) error {
	ca, ok := o.(*Sum)
	if !ok {
		return fmt.Errorf("Incoming accumulator is not a Sum Accumulator")
	}
	if !ca.seen {
		return nil
	}
	if !a.seen {
		a.integral = ca.integral
	}
	a.seen = true
	a.isum += ca.isum
	a.fsum += ca.fsum
	return nil
}

// Value returns the sum, or nil if no non-null values were seen
func (a *Sum) Value() interface{} {
	if !a.seen {
		return nil
	}
	if a.integral {
		return a.isum
	}
	return a.fsum
}
