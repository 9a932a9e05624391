package dataframe

import (
	"fmt"

	"github.com/go-sif/frames"
	"github.com/hashicorp/go-multierror"
)

// Stage is a group of narrow tasks, optionally followed by a single
// task which must observe every Partition (a stage boundary).
// Stages block the execution of further stages until they are complete.
type stageImpl struct {
	id     int
	frames []*dataFrameImpl
}

// createStage is a factory for Stages, safely assigning deterministic IDs
func createStage(nextID int) *stageImpl {
	return &stageImpl{
		id:     nextID,
		frames: []*dataFrameImpl{},
	}
}

// ID returns the ID for this Stage
func (s *stageImpl) ID() int {
	return s.id
}

// OutgoingSchema is the Schema for data leaving this Stage
func (s *stageImpl) OutgoingSchema() frames.Schema {
	return s.frames[len(s.frames)-1].schema
}

// boundary returns the final frame of this Stage iff it is a stage boundary
func (s *stageImpl) boundary() *dataFrameImpl {
	if len(s.frames) == 0 {
		return nil
	}
	last := s.frames[len(s.frames)-1]
	if last.taskType.IsStageBoundary() {
		return last
	}
	return nil
}

// EndsInAccumulate returns true iff this Stage ends with an accumulation task
func (s *stageImpl) EndsInAccumulate() bool {
	b := s.boundary()
	return b != nil && b.taskType == frames.AccumulateTaskType
}

// EndsInShuffle returns true iff this Stage ends with a task which must observe every Partition at once
func (s *stageImpl) EndsInShuffle() bool {
	b := s.boundary()
	return b != nil && (b.taskType == frames.ShuffleTaskType || b.taskType == frames.CacheTaskType)
}

// EndsInCollect returns true iff this Stage represents a collect task
func (s *stageImpl) EndsInCollect() bool {
	b := s.boundary()
	return b != nil && b.taskType == frames.CollectTaskType
}

// GetCollectionLimit returns the maximum number of Rows to collect, or -1 for all of them
func (s *stageImpl) GetCollectionLimit() (int64, error) {
	if !s.EndsInCollect() {
		return -1, nil
	}
	cTask, ok := s.boundary().task.(frames.CollectionTask)
	if !ok {
		return 0, fmt.Errorf("taskType is collect but Task is not a CollectionTask")
	}
	return cTask.GetCollectionLimit(), nil
}

// WorkerExecute runs every task of a Stage (including the per-Partition portion of a
// boundary task) against a Partition of data, returning the modified Partition (which
// may have been modified in-place, filtered, or turned into multiple Partitions).
// Row errors are accumulated in a multierror and, if ignoreRowErrors is true, reported
// through onRowErrors instead of stopping execution.
func (s *stageImpl) WorkerExecute(sctx frames.StageContext, part frames.OperablePartition, ignoreRowErrors bool, onRowErrors func(error)) ([]frames.OperablePartition, error) {
	var prev = []frames.OperablePartition{part}
	for _, frame := range s.frames {
		next := make([]frames.OperablePartition, 0, len(prev))
		for _, p := range prev {
			out, err := frame.task.RunWorker(sctx, p)
			if err != nil {
				if _, ok := err.(*multierror.Error); !ignoreRowErrors || !ok {
					// either this isn't a multierr or we're supposed to fail immediately
					return nil, err
				}
				onRowErrors(err)
			}
			next = append(next, out...)
		}
		prev = next
	}
	return prev, nil
}
