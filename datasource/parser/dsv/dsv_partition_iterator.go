package dsv

import (
	"encoding/csv"
	"io"
	"sync"

	"github.com/go-sif/frames"
	"github.com/go-sif/frames/datasource"
	errors "github.com/go-sif/frames/errors"
)

type dsvFilePartitionIterator struct {
	parser       *Parser
	reader       *csv.Reader
	hasNext      bool
	source       frames.DataSource
	schema       frames.Schema
	lock         sync.Mutex
	endListeners []func()
}

// OnEnd registers a listener which fires when this iterator runs out of Partitions
func (dsvi *dsvFilePartitionIterator) OnEnd(onEnd func()) {
	dsvi.lock.Lock()
	defer dsvi.lock.Unlock()
	dsvi.endListeners = append(dsvi.endListeners, onEnd)
}

// HasNextPartition returns true iff this PartitionIterator can produce another Partition
func (dsvi *dsvFilePartitionIterator) HasNextPartition() bool {
	dsvi.lock.Lock()
	defer dsvi.lock.Unlock()
	return dsvi.hasNext
}

func (dsvi *dsvFilePartitionIterator) end() {
	dsvi.hasNext = false
	for _, l := range dsvi.endListeners {
		l()
	}
	dsvi.endListeners = []func(){}
}

// Close stops reading, releasing the underlying input if it has not been exhausted
func (dsvi *dsvFilePartitionIterator) Close() {
	dsvi.lock.Lock()
	defer dsvi.lock.Unlock()
	if dsvi.hasNext {
		dsvi.end()
	}
}

// NextPartition returns the next Partition if one is available, or an error
func (dsvi *dsvFilePartitionIterator) NextPartition() (frames.OperablePartition, error) {
	dsvi.lock.Lock()
	defer dsvi.lock.Unlock()
	if !dsvi.hasNext {
		return nil, errors.NoMorePartitionsError{}
	}
	colNames := dsvi.schema.ColumnNames()
	colTypes := dsvi.schema.ColumnTypes()
	part := datasource.CreateBuildablePartition(dsvi.parser.PartitionSize(), dsvi.schema)
	// parse lines
	for {
		// If the partition is full, we're done
		if part.GetNumRows() == part.GetMaxRows() {
			return part, nil
		}
		// Otherwise, grab another line from the file
		rowStrings, err := dsvi.reader.Read()
		if err == io.EOF {
			dsvi.end()
			return part, nil
		} else if err != nil {
			dsvi.end()
			return nil, err
		}
		if err := part.AppendRowData(scanRow(dsvi.parser.conf, colNames, colTypes, rowStrings)); err != nil {
			return nil, err
		}
	}
}
