package transform

import (
	"github.com/go-sif/frames"
	"github.com/go-sif/frames/internal/partition"
)

type dropDuplicatesTask struct {
	offsets   []int
	newSchema frames.Schema
}

func (s *dropDuplicatesTask) RunWorker(sctx frames.StageContext, previous frames.OperablePartition) ([]frames.OperablePartition, error) {
	return []frames.OperablePartition{previous}, nil
}

// RunShuffle keeps the first Row seen for each distinct key
func (s *dropDuplicatesTask) RunShuffle(sctx frames.StageContext, parts []frames.OperablePartition) ([]frames.OperablePartition, error) {
	groups := createKeyedGroups()
	kept := []frames.Row{}
	for _, row := range allRows(parts) {
		if groups.add(encodeKey(row, s.offsets), row) {
			kept = append(kept, row)
		}
	}
	return partition.FromRows(kept, sctx.TargetPartitionSize(), s.newSchema), nil
}

// DropDuplicates retains exactly one Row for each distinct combination of values in
// the given columns, or in all columns if none are given. Nulls are equal to each other
// for this purpose.
func DropDuplicates(subset ...string) frames.DataFrameOperation {
	return func(d frames.DataFrame) (*frames.DataFrameOperationResult, error) {
		var offsets []int
		if len(subset) == 0 {
			offsets = allOffsets(d.GetSchema())
		} else {
			var err error
			if offsets, err = offsetsOf(d.GetSchema(), subset); err != nil {
				return nil, err
			}
		}
		newSchema := d.GetSchema().Clone()
		return &frames.DataFrameOperationResult{
			Task:     &dropDuplicatesTask{offsets: offsets, newSchema: newSchema},
			TaskType: frames.ShuffleTaskType,
			Schema:   newSchema,
		}, nil
	}
}

// Distinct retains one copy of each distinct Row
func Distinct() frames.DataFrameOperation {
	return DropDuplicates()
}
