package dataframe

import (
	"sync"

	"github.com/go-sif/frames"
	errors "github.com/go-sif/frames/errors"
)

// partitionSliceIterator produces a simple iterator for Partitions stored in a slice
type partitionSliceIterator struct {
	partitions   []frames.OperablePartition
	next         int
	lock         sync.Mutex
	endListeners []func()
}

// CreatePartitionSliceIterator produces a new PartitionIterator for iterating over a slice of Partitions
func CreatePartitionSliceIterator(partitions []frames.OperablePartition) frames.PartitionIterator {
	return &partitionSliceIterator{
		partitions:   partitions,
		next:         0,
		endListeners: []func(){},
	}
}

// OnEnd registers a listener which fires when this iterator runs out of Partitions
func (psi *partitionSliceIterator) OnEnd(onEnd func()) {
	psi.lock.Lock()
	defer psi.lock.Unlock()
	psi.endListeners = append(psi.endListeners, onEnd)
}

func (psi *partitionSliceIterator) Close() {
	psi.lock.Lock()
	defer psi.lock.Unlock()
	psi.next = len(psi.partitions)
	for _, l := range psi.endListeners {
		l()
	}
	psi.endListeners = []func(){}
}

// HasNextPartition returns true iff this PartitionIterator can produce another Partition
func (psi *partitionSliceIterator) HasNextPartition() bool {
	psi.lock.Lock()
	defer psi.lock.Unlock()
	return psi.next < len(psi.partitions)
}

// NextPartition returns the next Partition if one is available, or an error
func (psi *partitionSliceIterator) NextPartition() (frames.OperablePartition, error) {
	psi.lock.Lock()
	defer psi.lock.Unlock()
	if psi.next >= len(psi.partitions) {
		for _, l := range psi.endListeners {
			l()
		}
		psi.endListeners = []func(){}
		return nil, errors.NoMorePartitionsError{}
	}
	part := psi.partitions[psi.next]
	psi.next++
	return part, nil
}

// partitionLoaderIterator produces Partitions from the PartitionLoaders of a PartitionMap, in order
type partitionLoaderIterator struct {
	partitionLoaders frames.PartitionMap
	partitionGroup   frames.PartitionIterator
	parser           frames.DataSourceParser
	schema           frames.Schema
	lock             sync.Mutex
	endListeners     []func()
}

func createPartitionLoaderIterator(partitionLoaders frames.PartitionMap, parser frames.DataSourceParser, schema frames.Schema) frames.PartitionIterator {
	return &partitionLoaderIterator{
		partitionLoaders: partitionLoaders,
		partitionGroup:   nil,
		parser:           parser,
		schema:           schema,
		endListeners:     []func(){},
	}
}

// OnEnd registers a listener which fires when this iterator runs out of Partitions
func (pli *partitionLoaderIterator) OnEnd(onEnd func()) {
	pli.lock.Lock()
	defer pli.lock.Unlock()
	pli.endListeners = append(pli.endListeners, onEnd)
}

// Close closes the current group of Partitions and skips any remaining PartitionLoaders
func (pli *partitionLoaderIterator) Close() {
	pli.lock.Lock()
	defer pli.lock.Unlock()
	if pli.partitionGroup != nil {
		pli.partitionGroup.Close()
		pli.partitionGroup = nil
	}
	pli.partitionLoaders = emptyPartitionMap{}
	for _, l := range pli.endListeners {
		l()
	}
	pli.endListeners = []func(){}
}

// emptyPartitionMap has no PartitionLoaders
type emptyPartitionMap struct{}

func (emptyPartitionMap) HasNext() bool                { return false }
func (emptyPartitionMap) Next() frames.PartitionLoader { return nil }

// HasNextPartition returns true iff the current group has another Partition or more loaders remain.
// A remaining loader may turn out to be empty, in which case NextPartition returns a NoMorePartitionsError.
func (pli *partitionLoaderIterator) HasNextPartition() bool {
	pli.lock.Lock()
	defer pli.lock.Unlock()
	return pli.partitionLoaders.HasNext() || (pli.partitionGroup != nil && pli.partitionGroup.HasNextPartition())
}

// NextPartition returns the next Partition, loading the next PartitionLoader if necessary
func (pli *partitionLoaderIterator) NextPartition() (frames.OperablePartition, error) {
	pli.lock.Lock()
	defer pli.lock.Unlock()
	// grab the next group of partitions from the Loader iterator if necessary
	for pli.partitionGroup == nil || !pli.partitionGroup.HasNextPartition() {
		if !pli.partitionLoaders.HasNext() {
			for _, l := range pli.endListeners {
				l()
			}
			pli.endListeners = []func(){}
			return nil, errors.NoMorePartitionsError{}
		}
		l := pli.partitionLoaders.Next()
		partGroup, err := l.Load(pli.parser, pli.schema)
		if err != nil {
			return nil, err
		}
		pli.partitionGroup = partGroup
	}
	// return the next partition from the existing group
	return pli.partitionGroup.NextPartition()
}
