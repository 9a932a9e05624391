package dataframe

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-sif/frames"
)

// stageContextImpl exposes the state of a running PlanExecutor to Tasks
type stageContextImpl struct {
	context.Context
	stageID  int
	executor *PlanExecutor
}

func (pe *PlanExecutor) createStageContext(ctx context.Context, stageID int) frames.StageContext {
	return &stageContextImpl{Context: ctx, stageID: stageID, executor: pe}
}

// StageID returns the index of the Stage being executed, or -1 during planning
func (s *stageContextImpl) StageID() int {
	return s.stageID
}

// Now returns the time at which the current run started
func (s *stageContextImpl) Now() time.Time {
	return s.executor.now
}

// Logger returns the logger for this run
func (s *stageContextImpl) Logger() *slog.Logger {
	return s.executor.conf.Logger
}

// PartitionCache returns the configured PartitionCache, or nil if none exists
func (s *stageContextImpl) PartitionCache() frames.PartitionCache {
	return s.executor.conf.PartitionCache
}

// TargetPartitionSize returns the intended maximum size of Partitions produced by wide tasks
func (s *stageContextImpl) TargetPartitionSize() int {
	return s.executor.conf.TargetPartitionSize
}

// Materialize executes another DataFrame as part of the current run, sharing its
// configuration and start time but not its statistics
func (s *stageContextImpl) Materialize(df frames.DataFrame) ([]frames.OperablePartition, error) {
	nested := &PlanExecutor{conf: s.executor.conf, now: s.executor.now}
	res, err := nested.Execute(s.Context, df)
	if err != nil {
		return nil, err
	}
	return res.Partitions, nil
}
