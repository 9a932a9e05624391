package transform

import (
	"github.com/go-sif/frames"
	"github.com/go-sif/frames/expr"
	iutil "github.com/go-sif/frames/internal/util"
)

type withColumnTask struct {
	evaluator expr.Evaluator
	target    int
	copyFrom  mapping
	newSchema frames.Schema
}

func (s *withColumnTask) RunWorker(sctx frames.StageContext, previous frames.OperablePartition) ([]frames.OperablePartition, error) {
	copyCells := s.copyFrom.reshape()
	return singlePartition(previous.Reshape(s.newSchema, iutil.SafeReshapeOperation(func(row frames.Row, newRow frames.Row) error {
		v, err := s.evaluator.Eval(sctx, row)
		if err != nil {
			return err
		}
		if err := copyCells(row, newRow); err != nil {
			return err
		}
		newRow.SetAt(s.target, v)
		return nil
	})))
}

// WithColumn computes a column from an Expression. An existing column of the same
// name is replaced in place (possibly changing its type); otherwise the column is appended.
func WithColumn(colName string, e expr.Expression) frames.DataFrameOperation {
	return func(d frames.DataFrame) (*frames.DataFrameOperationResult, error) {
		ev, err := e.Bind(d.GetSchema())
		if err != nil {
			return nil, err
		}
		newSchema := d.GetSchema().Clone()
		if newSchema.HasColumn(colName) {
			newSchema, err = newSchema.SetColumnType(colName, ev.Type())
		} else {
			newSchema, err = newSchema.CreateColumn(colName, ev.Type())
		}
		if err != nil {
			return nil, err
		}
		col, err := newSchema.GetOffset(colName)
		if err != nil {
			return nil, err
		}
		copyFrom := mapping(allOffsets(d.GetSchema()))
		if col.Index() < len(copyFrom) {
			copyFrom[col.Index()] = -1
		}
		return &frames.DataFrameOperationResult{
			Task:     &withColumnTask{evaluator: ev, target: col.Index(), copyFrom: copyFrom, newSchema: newSchema},
			TaskType: frames.RepackTaskType,
			Schema:   newSchema,
		}, nil
	}
}

// addColumnTask widens each Row with an empty column
type addColumnTask struct {
	newSchema frames.Schema
	copyFrom  mapping
}

func (s *addColumnTask) RunWorker(sctx frames.StageContext, previous frames.OperablePartition) ([]frames.OperablePartition, error) {
	return singlePartition(previous.Reshape(s.newSchema, s.copyFrom.reshape()))
}

// AddColumn declares that a new (empty) column with a
// specific type and name should be available to the
// next Task of the DataFrame pipeline
func AddColumn(colName string, colType frames.ColumnType) frames.DataFrameOperation {
	return func(d frames.DataFrame) (*frames.DataFrameOperationResult, error) {
		newSchema, err := d.GetSchema().Clone().CreateColumn(colName, colType)
		if err != nil {
			return nil, err
		}
		return &frames.DataFrameOperationResult{
			Task:     &addColumnTask{newSchema: newSchema, copyFrom: mapping(allOffsets(d.GetSchema()))},
			TaskType: frames.RepackTaskType,
			Schema:   newSchema,
		}, nil
	}
}
