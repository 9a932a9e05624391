package transform

import (
	"github.com/go-sif/frames"
	errors "github.com/go-sif/frames/errors"
	"github.com/go-sif/frames/expr"
	iutil "github.com/go-sif/frames/internal/util"
)

type filterTask struct {
	fn frames.FilterOperation
}

func (s *filterTask) RunWorker(sctx frames.StageContext, previous frames.OperablePartition) ([]frames.OperablePartition, error) {
	return singlePartition(previous.FilterRows(s.fn))
}

type predicateTask struct {
	predicate expr.Evaluator
}

func (s *predicateTask) RunWorker(sctx frames.StageContext, previous frames.OperablePartition) ([]frames.OperablePartition, error) {
	return singlePartition(previous.FilterRows(iutil.SafeFilterOperation(func(row frames.Row) (bool, error) {
		v, err := s.predicate.Eval(sctx, row)
		if err != nil {
			return false, err
		}
		// null and false both drop the Row
		keep, _ := v.(bool)
		return keep, nil
	})))
}

// Filter retains Rows for which a boolean Expression is true. Rows for which it is
// false or null are dropped. The relative order of retained Rows is preserved.
func Filter(predicate expr.Expression) frames.DataFrameOperation {
	return func(d frames.DataFrame) (*frames.DataFrameOperationResult, error) {
		ev, err := predicate.Bind(d.GetSchema())
		if err != nil {
			return nil, err
		}
		switch ev.Type().(type) {
		case *frames.BoolColumnType, *frames.NullColumnType:
		default:
			return nil, errors.SchemaMismatchError{Reason: "filter expression '" + predicate.String() + "' of type " + ev.Type().Name() + " is not a boolean"}
		}
		return &frames.DataFrameOperationResult{
			Task:     &predicateTask{predicate: ev},
			TaskType: frames.FilterTaskType,
			Schema:   d.GetSchema().Clone(),
		}, nil
	}
}

// FilterFunc filters Rows out of a Partition using a Go function, creating a new one
func FilterFunc(fn frames.FilterOperation) frames.DataFrameOperation {
	return func(d frames.DataFrame) (*frames.DataFrameOperationResult, error) {
		return &frames.DataFrameOperationResult{
			Task:     &filterTask{fn: iutil.SafeFilterOperation(fn)},
			TaskType: frames.FilterTaskType,
			Schema:   d.GetSchema().Clone(),
		}, nil
	}
}
