package transform

import (
	"github.com/go-sif/frames"
	iutil "github.com/go-sif/frames/internal/util"
)

type mapTask struct {
	fn frames.MapOperation
}

func (s *mapTask) RunWorker(sctx frames.StageContext, previous frames.OperablePartition) ([]frames.OperablePartition, error) {
	return singlePartition(previous.MapRows(s.fn))
}

// Map transforms a Row in-place
func Map(fn frames.MapOperation) frames.DataFrameOperation {
	return func(d frames.DataFrame) (*frames.DataFrameOperationResult, error) {
		return &frames.DataFrameOperationResult{
			Task:     &mapTask{fn: iutil.SafeMapOperation(fn)},
			TaskType: frames.MapTaskType,
			Schema:   d.GetSchema().Clone(),
		}, nil
	}
}
