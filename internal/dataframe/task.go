package dataframe

import (
	"github.com/go-sif/frames"
)

// noOpTask is a task that does nothing
type noOpTask struct{}

// RunWorker for noOpTask does nothing
func (s *noOpTask) RunWorker(sctx frames.StageContext, previous frames.OperablePartition) ([]frames.OperablePartition, error) {
	return []frames.OperablePartition{previous}, nil
}
