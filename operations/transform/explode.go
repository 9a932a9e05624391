package transform

import (
	"github.com/go-sif/frames"
	errors "github.com/go-sif/frames/errors"
	iutil "github.com/go-sif/frames/internal/util"
)

type explodeTask struct {
	target    int
	outer     bool
	newSchema frames.Schema
}

func (s *explodeTask) RunWorker(sctx frames.StageContext, previous frames.OperablePartition) ([]frames.OperablePartition, error) {
	return previous.FlatMapRows(s.newSchema, iutil.SafeFlatMapOperation(func(row frames.Row, newRow frames.RowFactory) error {
		list, _ := row.GetAt(s.target).([]interface{})
		if len(list) == 0 {
			if s.outer {
				copyWith(row, newRow(), s.target, nil)
			}
			return nil
		}
		for _, elem := range list {
			copyWith(row, newRow(), s.target, elem)
		}
		return nil
	}))
}

// copyWith populates a new Row from an old one, replacing the value at one position
func copyWith(row frames.Row, newRow frames.Row, target int, value interface{}) {
	for i, v := range row.Values() {
		newRow.SetAt(i, v)
	}
	newRow.SetAt(target, value)
}

func explode(colName string, outer bool) frames.DataFrameOperation {
	return func(d frames.DataFrame) (*frames.DataFrameOperationResult, error) {
		col, err := d.GetSchema().GetOffset(colName)
		if err != nil {
			return nil, err
		}
		listType, ok := col.Type().(*frames.ListColumnType)
		if !ok {
			return nil, errors.SchemaMismatchError{Reason: "cannot explode column " + colName + " of type " + col.Type().Name()}
		}
		newSchema, err := d.GetSchema().Clone().SetColumnType(colName, listType.Elem)
		if err != nil {
			return nil, err
		}
		return &frames.DataFrameOperationResult{
			Task:     &explodeTask{target: col.Index(), outer: outer, newSchema: newSchema},
			TaskType: frames.FlatMapTaskType,
			Schema:   newSchema,
		}, nil
	}
}

// Explode produces one Row per element of a list column, replacing the list with the element.
// Rows whose list is null or empty are dropped.
func Explode(colName string) frames.DataFrameOperation {
	return explode(colName, false)
}

// ExplodeOuter is Explode, except that Rows whose list is null or empty are
// retained with a null element
func ExplodeOuter(colName string) frames.DataFrameOperation {
	return explode(colName, true)
}
