package memory

import (
	"bytes"
	"fmt"

	"github.com/go-sif/frames"
	"github.com/go-sif/frames/datasource"
)

// PartitionLoader is capable of loading partitions of data from a buffer
type PartitionLoader struct {
	idx    int
	source *DataSource
}

// ToString returns a string representation of this PartitionLoader
func (pl *PartitionLoader) ToString() string {
	return fmt.Sprintf("Memory loader index: %d", pl.idx)
}

// Load is capable of loading partitions of data from a buffer
func (pl *PartitionLoader) Load(parser frames.DataSourceParser, schema frames.Schema) (frames.PartitionIterator, error) {
	r := bytes.NewReader(pl.source.data[pl.idx])
	pi, err := parser.Parse(r, pl.source, schema, nil)
	if err != nil {
		return nil, err
	}
	return pi, nil
}

// RowLoader is capable of loading partitions of data from Go values
type RowLoader struct {
	source *DataSource
}

// ToString returns a string representation of this RowLoader
func (rl *RowLoader) ToString() string {
	return fmt.Sprintf("Memory loader for %d rows", len(rl.source.rows))
}

// Load divides the rows of a DataSource into Partitions. The parser is unused.
func (rl *RowLoader) Load(parser frames.DataSourceParser, schema frames.Schema) (frames.PartitionIterator, error) {
	parts := []frames.OperablePartition{}
	var part frames.OperablePartition
	for _, row := range rl.source.rows {
		if part == nil || part.GetNumRows() >= part.GetMaxRows() {
			part = datasource.CreateBuildablePartition(rl.source.partitionSize, schema)
			parts = append(parts, part)
		}
		// values are copied, so that in-place transformations never modify the source
		values := make([]interface{}, len(row))
		copy(values, row)
		if err := part.AppendRowData(values); err != nil {
			return nil, err
		}
	}
	return datasource.CreatePartitionIterator(parts), nil
}
