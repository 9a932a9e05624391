package dataframe

import (
	"fmt"

	"github.com/go-sif/frames"
	uuid "github.com/gofrs/uuid"
)

// A dataFrameImpl implements DataFrame internally for frames
type dataFrameImpl struct {
	id       string                  // uniquely identifies this DataFrame, and keys its cached Partitions
	parent   *dataFrameImpl          // the parent DataFrame. Nil if this is the root.
	task     frames.Task             // the task represented by this DataFrame, executed to produce the next one
	taskType frames.TaskType         // a unique name for the type of task this DataFrame represents
	source   frames.DataSource       // the source of the data
	parser   frames.DataSourceParser // the parser for the source data
	schema   frames.Schema           // the schema of the data produced by this DataFrame's task
}

func newID() string {
	id, err := uuid.NewV4()
	if err != nil {
		panic(fmt.Errorf("failed to generate UUID: %w", err))
	}
	return id.String()
}

// CreateDataFrame is a factory for DataFrames. This function is not intended to be used directly,
// as DataFrames are returned by DataSource packages.
func CreateDataFrame(source frames.DataSource, parser frames.DataSourceParser, schema frames.Schema) frames.DataFrame {
	return &dataFrameImpl{
		id:       newID(),
		parent:   nil,
		task:     &noOpTask{},
		taskType: frames.ExtractTaskType,
		source:   source,
		parser:   parser,
		schema:   schema,
	}
}

// ID returns the unique identifier of a DataFrame
func (df *dataFrameImpl) ID() string {
	return df.id
}

// GetSchema returns the Schema of a DataFrame
func (df *dataFrameImpl) GetSchema() frames.Schema {
	return df.schema
}

// GetDataSource returns the DataSource of a DataFrame
func (df *dataFrameImpl) GetDataSource() frames.DataSource {
	return df.source
}

// GetParser returns the DataSourceParser of a DataFrame
func (df *dataFrameImpl) GetParser() frames.DataSourceParser {
	return df.parser
}

// GetTaskType returns the TaskType of the Task which produced this DataFrame
func (df *dataFrameImpl) GetTaskType() frames.TaskType {
	return df.taskType
}

// To is a "functional operations" factory method for DataFrames,
// chaining operations onto the current one(s). The receiver is never modified.
func (df *dataFrameImpl) To(ops ...frames.DataFrameOperation) (frames.DataFrame, error) {
	next := df
	// See https://dave.cheney.net/2014/10/17/functional-options-for-friendly-apis for details of approach
	for _, op := range ops {
		if next.taskType == frames.AccumulateTaskType || next.taskType == frames.CollectTaskType {
			return nil, fmt.Errorf("No tasks can follow a %s task", next.taskType)
		}
		result, err := op(next)
		if err != nil {
			return nil, err
		}
		next = &dataFrameImpl{
			id:       newID(),
			parent:   next,
			source:   df.source,
			task:     result.Task,
			taskType: result.TaskType,
			parser:   df.parser,
			schema:   result.Schema,
		}
	}
	return next, nil
}

// lineage returns the chain of DataFrames which produce this one, in order of execution
func (df *dataFrameImpl) lineage() []*dataFrameImpl {
	chain := []*dataFrameImpl{}
	for next := df; next != nil; next = next.parent {
		chain = append(chain, next)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}
