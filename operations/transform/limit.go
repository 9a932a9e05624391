package transform

import (
	"github.com/go-sif/frames"
)

type limitTask struct {
	limit int
}

// RunWorker truncates each Partition, since no more than limit Rows can come from any one of them
func (s *limitTask) RunWorker(sctx frames.StageContext, previous frames.OperablePartition) ([]frames.OperablePartition, error) {
	return truncate(previous, s.limit)
}

func (s *limitTask) RunShuffle(sctx frames.StageContext, parts []frames.OperablePartition) ([]frames.OperablePartition, error) {
	result := []frames.OperablePartition{}
	remaining := s.limit
	for _, p := range parts {
		if remaining <= 0 {
			break
		}
		truncated, err := truncate(p, remaining)
		if err != nil {
			return nil, err
		}
		result = append(result, truncated...)
		remaining -= p.GetNumRows()
	}
	return result, nil
}

func truncate(part frames.OperablePartition, limit int) ([]frames.OperablePartition, error) {
	if part.GetNumRows() <= limit {
		return []frames.OperablePartition{part}, nil
	}
	seen := 0
	return singlePartition(part.FilterRows(func(row frames.Row) (bool, error) {
		seen++
		return seen <= limit, nil
	}))
}

// Limit retains the first n Rows, in order
func Limit(n int) frames.DataFrameOperation {
	return func(d frames.DataFrame) (*frames.DataFrameOperationResult, error) {
		limit := n
		if limit < 0 {
			limit = 0
		}
		return &frames.DataFrameOperationResult{
			Task:     &limitTask{limit: limit},
			TaskType: frames.ShuffleTaskType,
			Schema:   d.GetSchema().Clone(),
		}, nil
	}
}
