package transform

import (
	"github.com/go-sif/frames"
	"github.com/go-sif/frames/expr"
	iutil "github.com/go-sif/frames/internal/util"
	"github.com/go-sif/frames/schema"
)

type selectTask struct {
	evaluators []expr.Evaluator
	newSchema  frames.Schema
}

func (s *selectTask) RunWorker(sctx frames.StageContext, previous frames.OperablePartition) ([]frames.OperablePartition, error) {
	return singlePartition(previous.Reshape(s.newSchema, iutil.SafeReshapeOperation(func(row frames.Row, newRow frames.Row) error {
		for i, ev := range s.evaluators {
			v, err := ev.Eval(sctx, row)
			if err != nil {
				return err
			}
			newRow.SetAt(i, v)
		}
		return nil
	})))
}

// Select projects each Row onto a series of Expressions. The outgoing Schema holds
// exactly one column per Expression, named by expr.OutputName.
func Select(exprs ...expr.Expression) frames.DataFrameOperation {
	return func(d frames.DataFrame) (*frames.DataFrameOperationResult, error) {
		evaluators, err := expr.BindAll(d.GetSchema(), exprs...)
		if err != nil {
			return nil, err
		}
		newSchema := schema.CreateSchema()
		for i, e := range exprs {
			if _, err := newSchema.CreateColumn(expr.OutputName(e), evaluators[i].Type()); err != nil {
				return nil, err
			}
		}
		return &frames.DataFrameOperationResult{
			Task:     &selectTask{evaluators: evaluators, newSchema: newSchema},
			TaskType: frames.RepackTaskType,
			Schema:   newSchema,
		}, nil
	}
}

// SelectColumns is shorthand for a Select of column references
func SelectColumns(names ...string) frames.DataFrameOperation {
	exprs := make([]expr.Expression, len(names))
	for i, name := range names {
		exprs[i] = expr.Col(name)
	}
	return Select(exprs...)
}
