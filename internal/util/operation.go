package util

import (
	"fmt"

	"github.com/go-sif/frames"
)

// SafeMapOperation wraps a MapOperation such that panics are recovered and nice error messages are constructed
func SafeMapOperation(mapOp frames.MapOperation) (safeMapOp frames.MapOperation) {
	return func(row frames.Row) (err error) {
		defer func() {
			if r := recover(); r != nil {
				if anErr, ok := r.(error); ok {
					err = fmt.Errorf("Map Panic: %w\nRow: %s\n%s", anErr, row.ToString(), GetTrace())
				} else {
					err = fmt.Errorf("Map Panic: %v\nRow: %s\n%s", r, row.ToString(), GetTrace())
				}
			} else if err != nil {
				err = fmt.Errorf("Map Error: %w\nRow: %s", err, row.ToString())
			}
		}()
		err = mapOp(row)
		return
	}
}

// SafeFilterOperation wraps a FilterOperation such that panics are recovered and nice error messages are constructed
func SafeFilterOperation(filterOp frames.FilterOperation) (safeFilterOp frames.FilterOperation) {
	return func(row frames.Row) (shouldKeep bool, err error) {
		defer func() {
			if r := recover(); r != nil {
				if anErr, ok := r.(error); ok {
					err = fmt.Errorf("Filter Panic: %w\nRow: %s\n%s", anErr, row.ToString(), GetTrace())
				} else {
					err = fmt.Errorf("Filter Panic: %v\nRow: %s\n%s", r, row.ToString(), GetTrace())
				}
			} else if err != nil {
				err = fmt.Errorf("Filter Error: %w\nRow: %s", err, row.ToString())
			}
		}()
		shouldKeep, err = filterOp(row)
		return
	}
}

// SafeFlatMapOperation wraps a FlatMapOperation such that panics are recovered and nice error messages are constructed
func SafeFlatMapOperation(flatMapOp frames.FlatMapOperation) (safeFlatMapOp frames.FlatMapOperation) {
	return func(row frames.Row, newRow frames.RowFactory) (err error) {
		defer func() {
			if r := recover(); r != nil {
				if anErr, ok := r.(error); ok {
					err = fmt.Errorf("FlatMap Panic: %w\nRow: %s\n%s", anErr, row.ToString(), GetTrace())
				} else {
					err = fmt.Errorf("FlatMap Panic: %v\nRow: %s\n%s", r, row.ToString(), GetTrace())
				}
			} else if err != nil {
				err = fmt.Errorf("FlatMap Error: %w\nRow: %s", err, row.ToString())
			}
		}()
		err = flatMapOp(row, newRow)
		return
	}
}

// SafeReshapeOperation wraps a ReshapeOperation such that panics are recovered and nice error messages are constructed
func SafeReshapeOperation(reshapeOp frames.ReshapeOperation) (safeReshapeOp frames.ReshapeOperation) {
	return func(row frames.Row, newRow frames.Row) (err error) {
		defer func() {
			if r := recover(); r != nil {
				if anErr, ok := r.(error); ok {
					err = fmt.Errorf("Reshape Panic: %w\nRow: %s\n%s", anErr, row.ToString(), GetTrace())
				} else {
					err = fmt.Errorf("Reshape Panic: %v\nRow: %s\n%s", r, row.ToString(), GetTrace())
				}
			} else if err != nil {
				err = fmt.Errorf("Reshape Error: %w\nRow: %s", err, row.ToString())
			}
		}()
		err = reshapeOp(row, newRow)
		return
	}
}

// SafeKeyingOperation wraps a KeyingOperation such that panics are recovered and nice error messages are constructed
func SafeKeyingOperation(keyingOp frames.KeyingOperation) (safeKeyingOp frames.KeyingOperation) {
	return func(row frames.Row) (key []byte, err error) {
		defer func() {
			if r := recover(); r != nil {
				if anErr, ok := r.(error); ok {
					err = fmt.Errorf("Keying Panic: %w\nRow: %s\n%s", anErr, row.ToString(), GetTrace())
				} else {
					err = fmt.Errorf("Keying Panic: %v\nRow: %s\n%s", r, row.ToString(), GetTrace())
				}
			} else if err != nil {
				err = fmt.Errorf("Keying Error: %w\nRow: %s", err, row.ToString())
			}
		}()
		key, err = keyingOp(row)
		return
	}
}

// SafeReductionOperation wraps a ReductionOperation such that panics are recovered and nice error messages are constructed
func SafeReductionOperation(reductionOp frames.ReductionOperation) (safeReductionOp frames.ReductionOperation) {
	return func(lrow frames.Row, rrow frames.Row) (err error) {
		defer func() {
			if r := recover(); r != nil {
				if anErr, ok := r.(error); ok {
					err = fmt.Errorf("Reduction Panic: %w\nLeft Row: %s\nRight Row: %s\n%s", anErr, lrow.ToString(), rrow.ToString(), GetTrace())
				} else {
					err = fmt.Errorf("Reduction Panic: %v\nLeft Row: %s\nRight Row: %s\n%s", r, lrow.ToString(), rrow.ToString(), GetTrace())
				}
			} else if err != nil {
				err = fmt.Errorf("Reduction Error: %w\nLeft Row: %s\nRight Row: %s", err, lrow.ToString(), rrow.ToString())
			}
		}()
		err = reductionOp(lrow, rrow)
		return
	}
}
