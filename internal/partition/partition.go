package partition

import (
	"log"

	"github.com/go-sif/frames"
	uuid "github.com/gofrs/uuid"
)

const defaultCapacity = 16

// partitionImpl is the internal implementation of Partition. Rows are stored
// positionally, as slices of canonical values aligned to the current Schema.
type partitionImpl struct {
	id      string
	maxRows int
	rows    [][]interface{}
	schema  frames.Schema
}

// createPartitionImpl creates a new, empty Partition for a schema
func createPartitionImpl(maxRows int, schema frames.Schema) *partitionImpl {
	id, err := uuid.NewV4()
	if err != nil {
		log.Fatalf("failed to generate UUID for Partition: %v", err)
	}
	initialCapacity := defaultCapacity
	if initialCapacity > maxRows {
		initialCapacity = maxRows
	}
	return &partitionImpl{
		id:      id.String(),
		maxRows: maxRows,
		rows:    make([][]interface{}, 0, initialCapacity),
		schema:  schema,
	}
}

// CreatePartition creates a new, empty Partition for a schema
func CreatePartition(maxRows int, schema frames.Schema) frames.OperablePartition {
	return createPartitionImpl(maxRows, schema)
}

// ID retrieves the ID of this Partition
func (p *partitionImpl) ID() string {
	return p.id
}

// GetMaxRows retrieves the maximum number of rows in this Partition
func (p *partitionImpl) GetMaxRows() int {
	return p.maxRows
}

// GetNumRows retrieves the number of rows in this Partition
func (p *partitionImpl) GetNumRows() int {
	return len(p.rows)
}

// GetSchema retrieves the Schema of this Partition
func (p *partitionImpl) GetSchema() frames.Schema {
	return p.schema
}

// GetRow retrieves a specific row from this Partition. Modifications to the
// Row are reflected in the Partition.
func (p *partitionImpl) GetRow(rowNum int) frames.Row {
	return &rowImpl{values: p.rows[rowNum], schema: p.schema}
}

// ForEachRow iterates over Rows in a Partition
func (p *partitionImpl) ForEachRow(fn frames.MapOperation) error {
	for i := range p.rows {
		if err := fn(p.GetRow(i)); err != nil {
			return err
		}
	}
	return nil
}
