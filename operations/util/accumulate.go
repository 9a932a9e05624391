package util

import (
	"github.com/go-sif/frames"
)

type accumulateTask struct {
	facc frames.AccumulatorFactory
}

func (s *accumulateTask) RunWorker(sctx frames.StageContext, previous frames.OperablePartition) ([]frames.OperablePartition, error) {
	return []frames.OperablePartition{previous}, nil
}

func (s *accumulateTask) GetAccumulatorFactory() frames.AccumulatorFactory {
	return s.facc
}

// Accumulate combines rows across workers, using a user-provided data structure
func Accumulate(facc frames.AccumulatorFactory) frames.DataFrameOperation {
	return func(d frames.DataFrame) (*frames.DataFrameOperationResult, error) {
		return &frames.DataFrameOperationResult{
			Task:     &accumulateTask{facc: facc},
			TaskType: frames.AccumulateTaskType,
			Schema:   d.GetSchema().Clone(),
		}, nil
	}
}
