package transform

import (
	"github.com/go-sif/frames"
	"github.com/go-sif/frames/internal/partition"
	iutil "github.com/go-sif/frames/internal/util"
	"github.com/hashicorp/go-multierror"
)

// keyedShuffleTask gathers Rows with equal keys together, optionally reducing each
// group to a single Row, and repacks the results into Partitions of a target size
type keyedShuffleTask struct {
	kfn                 frames.KeyingOperation    // nil iff Rows are repacked without keying
	fn                  frames.ReductionOperation // nil iff Rows are grouped without reduction
	targetPartitionSize int                       // -1 uses the run's target Partition size
	newSchema           frames.Schema
}

// group buckets Rows by key, reducing each bucket if a ReductionOperation is present.
// Rows which fail to be keyed or reduced are dropped, and their errors returned.
func (s *keyedShuffleTask) group(rows []frames.Row) ([]frames.Row, error) {
	if s.kfn == nil {
		return rows, nil
	}
	var multierr *multierror.Error
	groups := createKeyedGroups()
	for _, row := range rows {
		key, err := s.kfn(row)
		if err != nil {
			multierr = multierror.Append(multierr, err)
			continue
		}
		if s.fn == nil {
			groups.add(key, row)
			continue
		}
		// with a reduction, each group holds exactly one Row
		if g, _ := groups.find(key); g >= 0 {
			if err := s.fn(groups.groups[g][0], row); err != nil {
				multierr = multierror.Append(multierr, err)
			}
			continue
		}
		groups.add(key, row.Clone())
	}
	result := make([]frames.Row, 0, len(rows))
	for _, g := range groups.groups {
		result = append(result, g...)
	}
	return result, multierr.ErrorOrNil()
}

// RunWorker reduces Rows within each Partition before they are shuffled
func (s *keyedShuffleTask) RunWorker(sctx frames.StageContext, previous frames.OperablePartition) ([]frames.OperablePartition, error) {
	if s.fn == nil {
		return []frames.OperablePartition{previous}, nil
	}
	rows, err := s.group(allRows([]frames.OperablePartition{previous}))
	return partition.FromRows(rows, previous.GetMaxRows(), s.newSchema), err
}

func (s *keyedShuffleTask) RunShuffle(sctx frames.StageContext, parts []frames.OperablePartition) ([]frames.OperablePartition, error) {
	size := s.targetPartitionSize
	if size < 1 {
		size = sctx.TargetPartitionSize()
	}
	rows, err := s.group(allRows(parts))
	return partition.FromRows(rows, size, s.newSchema), err
}

func keyedShuffle(d frames.DataFrame, targetPartitionSize int, kfn frames.KeyingOperation, fn frames.ReductionOperation) *frames.DataFrameOperationResult {
	task := &keyedShuffleTask{targetPartitionSize: targetPartitionSize, newSchema: d.GetSchema().Clone()}
	if kfn != nil {
		task.kfn = iutil.SafeKeyingOperation(kfn)
	}
	if fn != nil {
		task.fn = iutil.SafeReductionOperation(fn)
	}
	return &frames.DataFrameOperationResult{
		Task:     task,
		TaskType: frames.ShuffleTaskType,
		Schema:   task.newSchema,
	}
}

// Repartition changes the number of rows per Partition. If a KeyingOperation is provided,
// Rows with equal keys are also gathered together, as with Group.
func Repartition(targetPartitionSize int, kfn frames.KeyingOperation) frames.DataFrameOperation {
	return func(d frames.DataFrame) (*frames.DataFrameOperationResult, error) {
		return keyedShuffle(d, targetPartitionSize, kfn, nil), nil
	}
}
