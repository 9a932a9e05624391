package transform

import (
	"github.com/go-sif/frames"
	iutil "github.com/go-sif/frames/internal/util"
)

type flatMapTask struct {
	fn        frames.FlatMapOperation
	newSchema frames.Schema
}

func (s *flatMapTask) RunWorker(sctx frames.StageContext, previous frames.OperablePartition) ([]frames.OperablePartition, error) {
	return previous.FlatMapRows(s.newSchema, s.fn)
}

// FlatMap transforms a Row, potentially producing new rows
func FlatMap(fn frames.FlatMapOperation) frames.DataFrameOperation {
	return func(d frames.DataFrame) (*frames.DataFrameOperationResult, error) {
		newSchema := d.GetSchema().Clone()
		return &frames.DataFrameOperationResult{
			Task:     &flatMapTask{fn: iutil.SafeFlatMapOperation(fn), newSchema: newSchema},
			TaskType: frames.FlatMapTaskType,
			Schema:   newSchema,
		}, nil
	}
}
