package transform

import (
	"github.com/go-sif/frames"
)

// Group gathers Rows with equal keys together, so that they are adjacent. Groups appear
// in the order in which their keys were first seen.
func Group(kfn frames.KeyingOperation) frames.DataFrameOperation {
	return func(d frames.DataFrame) (*frames.DataFrameOperationResult, error) {
		return keyedShuffle(d, -1, kfn, nil), nil
	}
}

// KeyColumns is a KeyingOperation which keys Rows by the values of several columns
func KeyColumns(colNames ...string) frames.KeyingOperation {
	return func(row frames.Row) ([]byte, error) {
		offsets, err := offsetsOf(row.Schema(), colNames)
		if err != nil {
			return nil, err
		}
		return encodeKey(row, offsets), nil
	}
}
