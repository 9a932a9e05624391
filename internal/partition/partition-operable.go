package partition

import (
	"github.com/go-sif/frames"
	"github.com/hashicorp/go-multierror"
)

// UpdateCurrentSchema updates the Schema of this Partition. The new Schema
// must have the same column types in the same positions.
func (p *partitionImpl) UpdateCurrentSchema(currentSchema frames.Schema) {
	p.schema = currentSchema
}

// MapRows runs a MapOperation on each row in this Partition, manipulating them in-place.
// Will fall back to creating a fresh partition, without the failing Rows, if row errors occur.
func (p *partitionImpl) MapRows(fn frames.MapOperation) (frames.OperablePartition, error) {
	inPlace := true // start by attempting to manipulate rows in-place
	result := p
	var multierr *multierror.Error
	for i := 0; i < p.GetNumRows(); i++ {
		err := fn(p.GetRow(i))
		if err != nil {
			multierr = multierror.Append(multierr, err)
			// immediately switch into creating a new Partition if we haven't already
			if inPlace {
				inPlace = false
				result = createPartitionImpl(p.maxRows, p.schema)
				// append all rows we've successfully processed so far (up to this one)
				result.rows = append(result.rows, p.rows[:i]...)
			}
		} else if !inPlace {
			result.rows = append(result.rows, p.rows[i])
		}
	}
	return result, multierr.ErrorOrNil()
}

// FlatMapRows runs a FlatMapOperation on each row in this Partition, creating new Partitions with newSchema
func (p *partitionImpl) FlatMapRows(newSchema frames.Schema, fn frames.FlatMapOperation) ([]frames.OperablePartition, error) {
	var multierr *multierror.Error
	parts := []frames.OperablePartition{createPartitionImpl(p.maxRows, newSchema)}
	var pending []*rowImpl
	// factory for producing new rows compatible with the new Schema
	factory := func() frames.Row {
		row := &rowImpl{values: make([]interface{}, newSchema.NumColumns()), schema: newSchema}
		pending = append(pending, row)
		return row
	}
	for i := 0; i < p.GetNumRows(); i++ {
		pending = pending[:0]
		if err := fn(p.GetRow(i), factory); err != nil {
			multierr = multierror.Append(multierr, err)
			continue
		}
		for _, row := range pending {
			appendTarget := parts[len(parts)-1]
			if appendTarget.GetNumRows() >= appendTarget.GetMaxRows() {
				appendTarget = createPartitionImpl(p.maxRows, newSchema)
				parts = append(parts, appendTarget)
			}
			if err := appendTarget.AppendRowData(row.values); err != nil {
				return nil, err
			}
		}
	}
	return parts, multierr.ErrorOrNil()
}

// FilterRows filters the Rows in the current Partition, creating a new one. Rows which produce errors are dropped.
func (p *partitionImpl) FilterRows(fn frames.FilterOperation) (frames.OperablePartition, error) {
	var multierr *multierror.Error
	result := createPartitionImpl(p.maxRows, p.schema)
	for i := 0; i < p.GetNumRows(); i++ {
		shouldKeep, err := fn(p.GetRow(i))
		if err != nil {
			multierr = multierror.Append(multierr, err)
		} else if shouldKeep {
			// there's no way we can fill up this Partition, since we have to have fewer rows than
			// the current one
			result.rows = append(result.rows, p.rows[i])
		}
	}
	return result, multierr.ErrorOrNil()
}

// Reshape produces a new Partition with a new Schema, populating each new Row from an old one.
// Rows which produce errors are dropped.
func (p *partitionImpl) Reshape(newSchema frames.Schema, fn frames.ReshapeOperation) (frames.OperablePartition, error) {
	var multierr *multierror.Error
	result := createPartitionImpl(p.maxRows, newSchema)
	for i := 0; i < p.GetNumRows(); i++ {
		newRow := &rowImpl{values: make([]interface{}, newSchema.NumColumns()), schema: newSchema}
		if err := fn(p.GetRow(i), newRow); err != nil {
			multierr = multierror.Append(multierr, err)
			continue
		}
		result.rows = append(result.rows, newRow.values)
	}
	return result, multierr.ErrorOrNil()
}

// Pack redistributes the Rows of a sequence of Partitions into as few Partitions as possible,
// each holding at most maxRows Rows. Row order is preserved and Rows are not copied.
func Pack(parts []frames.OperablePartition, maxRows int, schema frames.Schema) []frames.OperablePartition {
	result := []frames.OperablePartition{}
	current := createPartitionImpl(maxRows, schema)
	for _, part := range parts {
		for i := 0; i < part.GetNumRows(); i++ {
			if current.GetNumRows() >= maxRows {
				result = append(result, current)
				current = createPartitionImpl(maxRows, schema)
			}
			current.rows = append(current.rows, part.GetRow(i).Values())
		}
	}
	if current.GetNumRows() > 0 || len(result) == 0 {
		result = append(result, current)
	}
	return result
}

// FromRows builds Partitions from Rows, preserving order. Row values are not copied.
func FromRows(rows []frames.Row, maxRows int, schema frames.Schema) []frames.OperablePartition {
	result := []frames.OperablePartition{}
	current := createPartitionImpl(maxRows, schema)
	for _, row := range rows {
		if current.GetNumRows() >= maxRows {
			result = append(result, current)
			current = createPartitionImpl(maxRows, schema)
		}
		current.rows = append(current.rows, row.Values())
	}
	if current.GetNumRows() > 0 || len(result) == 0 {
		result = append(result, current)
	}
	return result
}
