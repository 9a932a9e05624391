package transform

import (
	"github.com/go-sif/frames"
)

// Reduce combines Rows with equal keys into a single Row. The ReductionOperation merges
// its right Row into its left one, and must be associative: Rows are first reduced within
// each Partition, then across Partitions.
func Reduce(kfn frames.KeyingOperation, fn frames.ReductionOperation) frames.DataFrameOperation {
	return func(d frames.DataFrame) (*frames.DataFrameOperationResult, error) {
		return keyedShuffle(d, -1, kfn, fn), nil
	}
}
