package memory

import (
	"github.com/go-sif/frames"
)

// PartitionMap is an iterator producing a sequence of PartitionLoaders
type PartitionMap struct {
	idx    int
	source *DataSource
}

// HasNext returns true iff there is another PartitionLoader remaining
func (pm *PartitionMap) HasNext() bool {
	if pm.source.rows != nil {
		return pm.idx == 0
	}
	return pm.idx < len(pm.source.data)
}

// Next returns the next PartitionLoader for a buffer
func (pm *PartitionMap) Next() frames.PartitionLoader {
	defer func() { pm.idx++ }()
	if pm.source.rows != nil {
		return &RowLoader{source: pm.source}
	}
	return &PartitionLoader{idx: pm.idx, source: pm.source}
}
