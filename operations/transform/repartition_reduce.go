package transform

import (
	"github.com/go-sif/frames"
)

// RepartitionReduce is identical to Reduce, with the added ability to change the
// number of rows per partition during the reduction
func RepartitionReduce(targetPartitionSize int, kfn frames.KeyingOperation, fn frames.ReductionOperation) frames.DataFrameOperation {
	return func(d frames.DataFrame) (*frames.DataFrameOperationResult, error) {
		return keyedShuffle(d, targetPartitionSize, kfn, fn), nil
	}
}
