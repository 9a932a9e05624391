package partition

import (
	"github.com/go-sif/frames"
	"github.com/go-sif/frames/errors"
)

// canInsertRowData checks if values can be inserted into this Partition
func (p *partitionImpl) canInsertRowData(values []interface{}) error {
	if len(p.rows) >= p.maxRows {
		return errors.PartitionFullError{}
	} else if len(values) != p.schema.NumColumns() {
		return errors.IncompatibleRowError{}
	}
	return nil
}

// AppendEmptyRow adds an all-null Row to the end of this Partition, returning it so that it may be populated
func (p *partitionImpl) AppendEmptyRow() (frames.Row, error) {
	values := make([]interface{}, p.schema.NumColumns())
	if err := p.canInsertRowData(values); err != nil {
		return nil, err
	}
	p.rows = append(p.rows, values)
	return &rowImpl{values: values, schema: p.schema}, nil
}

// AppendRowData adds canonical values as a Row to the end of this Partition. The slice is retained, not copied.
func (p *partitionImpl) AppendRowData(values []interface{}) error {
	if err := p.canInsertRowData(values); err != nil {
		return err
	}
	p.rows = append(p.rows, values)
	return nil
}

// InsertRowData inserts values as a Row at a specific position within this Partition, shifting later Rows
func (p *partitionImpl) InsertRowData(values []interface{}, pos int) error {
	if err := p.canInsertRowData(values); err != nil {
		return err
	}
	p.rows = append(p.rows, nil)
	copy(p.rows[pos+1:], p.rows[pos:])
	p.rows[pos] = values
	return nil
}
