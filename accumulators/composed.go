package accumulators

import (
	"fmt"

	"github.com/go-sif/frames"
)

// Compose returns a new Composed Accumulator
func Compose(faccs ...frames.AccumulatorFactory) frames.AccumulatorFactory {
	return func() frames.Accumulator {
		accs := make([]frames.Accumulator, len(faccs))
		for i, f := range faccs {
			accs[i] = f()
		}
		return &Composed{accs: accs}
	}
}

// Composed composes other Accumulators
type Composed struct {
	accs []frames.Accumulator
}

// GetResults returns the contained Accumulators, so that their results may be accessed
func (c *Composed) GetResults() []frames.Accumulator {
	return c.accs
}

// Accumulate adds a row to all contained Accumulators
func (c *Composed) Accumulate(row frames.Row) error {
	for _, a := range c.accs {
		err := a.Accumulate(row)
		if err != nil {
			return err
		}
	}
	return nil
}

// Merge merges another Composed Accumulator into this one, merging all contained Accumulators
func (c *Composed) Merge(o frames.Accumulator) error {
	compa, ok := o.(*Composed)
	if !ok {
		return fmt.Errorf("Incoming accumulator is not a Composed Accumulator")
	}
	if len(compa.accs) != len(c.accs) {
		return fmt.Errorf("Incoming Composed Accumulator holds %d Accumulators, not %d", len(compa.accs), len(c.accs))
	}
	for i, a := range c.accs {
		err := a.Merge(compa.accs[i])
		if err != nil {
			return err
		}
	}
	return nil
}

// Value returns the values of the contained Accumulators, in order
func (c *Composed) Value() interface{} {
	values := make([]interface{}, len(c.accs))
	for i, a := range c.accs {
		values[i] = a.Value()
	}
	return values
}
