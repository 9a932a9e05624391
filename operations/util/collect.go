package util

import (
	"fmt"

	"github.com/go-sif/frames"
)

type collectTask struct {
	collectionLimit int64
}

func (s *collectTask) RunWorker(sctx frames.StageContext, previous frames.OperablePartition) ([]frames.OperablePartition, error) {
	// do nothing
	return []frames.OperablePartition{previous}, nil
}

func (s *collectTask) GetCollectionLimit() int64 {
	return s.collectionLimit
}

// Collect declares that Rows should be gathered upon completion of the
// previous stage. A negative collectionLimit gathers every Row. This also
// signals the end of a DataFrame's tasks.
func Collect(collectionLimit int64) frames.DataFrameOperation {
	return func(d frames.DataFrame) (*frames.DataFrameOperationResult, error) {
		if d.GetDataSource().IsStreaming() {
			return nil, fmt.Errorf("Cannot collect() from a streaming DataSource")
		}
		return &frames.DataFrameOperationResult{
			Task:     &collectTask{collectionLimit},
			TaskType: frames.CollectTaskType,
			Schema:   d.GetSchema().Clone(),
		}, nil
	}
}
