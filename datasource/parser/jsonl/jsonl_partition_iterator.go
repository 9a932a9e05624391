package jsonl

import (
	"io"
	"sync"

	"github.com/go-sif/frames"
	"github.com/go-sif/frames/datasource"
	errors "github.com/go-sif/frames/errors"
)

type jsonlFilePartitionIterator struct {
	parser       *Parser
	reader       recordReader
	hasNext      bool
	source       frames.DataSource
	schema       frames.Schema
	lock         sync.Mutex
	endListeners []func()
}

// OnEnd registers a listener which fires when this iterator runs out of Partitions
func (jsonli *jsonlFilePartitionIterator) OnEnd(onEnd func()) {
	jsonli.lock.Lock()
	defer jsonli.lock.Unlock()
	jsonli.endListeners = append(jsonli.endListeners, onEnd)
}

// HasNextPartition returns true iff this PartitionIterator can produce another Partition
func (jsonli *jsonlFilePartitionIterator) HasNextPartition() bool {
	jsonli.lock.Lock()
	defer jsonli.lock.Unlock()
	return jsonli.hasNext
}

func (jsonli *jsonlFilePartitionIterator) end() {
	jsonli.hasNext = false
	for _, l := range jsonli.endListeners {
		l()
	}
	jsonli.endListeners = []func(){}
}

// Close stops reading, releasing the underlying input if it has not been exhausted
func (jsonli *jsonlFilePartitionIterator) Close() {
	jsonli.lock.Lock()
	defer jsonli.lock.Unlock()
	if jsonli.hasNext {
		jsonli.end()
	}
}

// NextPartition returns the next Partition if one is available, or an error
func (jsonli *jsonlFilePartitionIterator) NextPartition() (frames.OperablePartition, error) {
	jsonli.lock.Lock()
	defer jsonli.lock.Unlock()
	if !jsonli.hasNext {
		return nil, errors.NoMorePartitionsError{}
	}
	colNames := jsonli.schema.ColumnNames()
	colTypes := jsonli.schema.ColumnTypes()
	part := datasource.CreateBuildablePartition(jsonli.parser.PartitionSize(), jsonli.schema)
	for {
		if part.GetNumRows() == part.GetMaxRows() {
			return part, nil
		}
		record, err := jsonli.reader.Next()
		if err == io.EOF {
			jsonli.end()
			return part, nil
		} else if err != nil {
			jsonli.end()
			return nil, err
		}
		if err := part.AppendRowData(scanRecord(jsonli.parser.conf, colNames, colTypes, record)); err != nil {
			return nil, err
		}
	}
}
