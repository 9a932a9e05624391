package transform

import (
	"sort"

	"github.com/go-sif/frames"
	"github.com/go-sif/frames/expr"
	"github.com/go-sif/frames/internal/partition"
)

// A SortKey names a column to sort by, and a direction
type SortKey struct {
	Column     string
	Descending bool
}

// Asc sorts by a column in ascending order, with nulls first
func Asc(colName string) SortKey {
	return SortKey{Column: colName}
}

// Desc sorts by a column in descending order, with nulls last
func Desc(colName string) SortKey {
	return SortKey{Column: colName, Descending: true}
}

type sortTask struct {
	offsets    []int
	descending []bool
	newSchema  frames.Schema
}

func (s *sortTask) RunWorker(sctx frames.StageContext, previous frames.OperablePartition) ([]frames.OperablePartition, error) {
	return []frames.OperablePartition{previous}, nil
}

func (s *sortTask) RunShuffle(sctx frames.StageContext, parts []frames.OperablePartition) ([]frames.OperablePartition, error) {
	rows := allRows(parts)
	sort.SliceStable(rows, func(i, j int) bool {
		for k, idx := range s.offsets {
			c := expr.CompareValues(rows[i].GetAt(idx), rows[j].GetAt(idx))
			if s.descending[k] {
				c = -c
			}
			if c != 0 {
				return c < 0
			}
		}
		return false
	})
	return partition.FromRows(rows, sctx.TargetPartitionSize(), s.newSchema), nil
}

// Sort orders Rows by one or more keys. The sort is stable, so Rows with equal
// keys retain their relative order. Sort must observe every Partition, ending a Stage.
func Sort(keys ...SortKey) frames.DataFrameOperation {
	return func(d frames.DataFrame) (*frames.DataFrameOperationResult, error) {
		task := &sortTask{
			offsets:    make([]int, len(keys)),
			descending: make([]bool, len(keys)),
			newSchema:  d.GetSchema().Clone(),
		}
		for i, key := range keys {
			col, err := d.GetSchema().GetOffset(key.Column)
			if err != nil {
				return nil, err
			}
			task.offsets[i] = col.Index()
			task.descending[i] = key.Descending
		}
		return &frames.DataFrameOperationResult{
			Task:     task,
			TaskType: frames.ShuffleTaskType,
			Schema:   task.newSchema,
		}, nil
	}
}
