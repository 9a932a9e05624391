package transform

import (
	"log/slog"

	"github.com/go-sif/frames"
	"github.com/go-sif/frames/expr"
)

type dropNATask struct {
	offsets []int
}

func (s *dropNATask) RunWorker(sctx frames.StageContext, previous frames.OperablePartition) ([]frames.OperablePartition, error) {
	return singlePartition(previous.FilterRows(func(row frames.Row) (bool, error) {
		for _, idx := range s.offsets {
			if row.GetAt(idx) == nil {
				return false, nil
			}
		}
		return true, nil
	}))
}

// DropNA drops Rows containing a null in any of the given columns, or in any column if none are given
func DropNA(subset ...string) frames.DataFrameOperation {
	return func(d frames.DataFrame) (*frames.DataFrameOperationResult, error) {
		offsets := allOffsets(d.GetSchema())
		if len(subset) > 0 {
			var err error
			if offsets, err = offsetsOf(d.GetSchema(), subset); err != nil {
				return nil, err
			}
		}
		return &frames.DataFrameOperationResult{
			Task:     &dropNATask{offsets: offsets},
			TaskType: frames.FilterTaskType,
			Schema:   d.GetSchema().Clone(),
		}, nil
	}
}

type fillNATask struct {
	fills   map[int]interface{}
	skipped []string // columns whose fill value does not match their type
}

func (s *fillNATask) RunWorker(sctx frames.StageContext, previous frames.OperablePartition) ([]frames.OperablePartition, error) {
	if len(s.skipped) > 0 {
		sctx.Logger().Debug("fill value does not match column type", slog.Any("columns", s.skipped))
	}
	return singlePartition(previous.MapRows(func(row frames.Row) error {
		for idx, v := range s.fills {
			if row.GetAt(idx) == nil {
				row.SetAt(idx, v)
			}
		}
		return nil
	}))
}

// fillValue casts a fill value to the type of a column. Numbers fill numeric columns;
// other values only fill columns of their own type.
func fillValue(value interface{}, colType frames.ColumnType) (interface{}, bool) {
	ev, err := expr.Lit(value).Bind(nil)
	if err != nil {
		return nil, false
	}
	from := ev.Type()
	if !(frames.IsNumeric(from) && frames.IsNumeric(colType)) && !frames.SameType(from, colType) {
		return nil, false
	}
	v, err := ev.Eval(expr.FixedEnv{}, nil)
	if err != nil || v == nil {
		return nil, false
	}
	cast, err := expr.CastValue(v, from, colType)
	if err != nil {
		return nil, false
	}
	return cast, true
}

func fillNA(d frames.DataFrame, values map[string]interface{}) (*frames.DataFrameOperationResult, error) {
	fills := make(map[int]interface{})
	var skipped []string
	for name, value := range values {
		col, err := d.GetSchema().GetOffset(name)
		if err != nil {
			// unknown columns are ignored
			continue
		}
		v, ok := fillValue(value, col.Type())
		if !ok {
			skipped = append(skipped, name)
			continue
		}
		fills[col.Index()] = v
	}
	return &frames.DataFrameOperationResult{
		Task:     &fillNATask{fills: fills, skipped: skipped},
		TaskType: frames.MapTaskType,
		Schema:   d.GetSchema().Clone(),
	}, nil
}

// FillNA replaces nulls in the named columns with the corresponding values. Each value is
// cast to its column's type; values of an incompatible type (such as a string for a double
// column) leave their column untouched. Unknown column names are ignored.
func FillNA(values map[string]interface{}) frames.DataFrameOperation {
	return func(d frames.DataFrame) (*frames.DataFrameOperationResult, error) {
		return fillNA(d, values)
	}
}

// FillNAValue replaces nulls with a single value, in every compatible column
// of the subset (or of the whole Schema, if no subset is given)
func FillNAValue(value interface{}, subset ...string) frames.DataFrameOperation {
	return func(d frames.DataFrame) (*frames.DataFrameOperationResult, error) {
		if len(subset) == 0 {
			subset = d.GetSchema().ColumnNames()
		}
		values := make(map[string]interface{}, len(subset))
		for _, name := range subset {
			values[name] = value
		}
		return fillNA(d, values)
	}
}
