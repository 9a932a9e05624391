package transform

import "github.com/go-sif/frames"

// removeColumnTask narrows each Row to the remaining columns
type removeColumnTask struct {
	newSchema frames.Schema
	copyFrom  mapping
}

func (s *removeColumnTask) RunWorker(sctx frames.StageContext, previous frames.OperablePartition) ([]frames.OperablePartition, error) {
	return singlePartition(previous.Reshape(s.newSchema, s.copyFrom.reshape()))
}

// RemoveColumn removes existing columns. Names which are not present are ignored.
func RemoveColumn(oldNames ...string) frames.DataFrameOperation {
	return func(d frames.DataFrame) (*frames.DataFrameOperationResult, error) {
		newSchema := d.GetSchema().Clone()
		for _, oldName := range oldNames {
			newSchema, _ = newSchema.RemoveColumn(oldName)
		}
		copyFrom := make(mapping, 0, newSchema.NumColumns())
		for _, name := range newSchema.ColumnNames() {
			col, err := d.GetSchema().GetOffset(name)
			if err != nil {
				return nil, err
			}
			copyFrom = append(copyFrom, col.Index())
		}
		return &frames.DataFrameOperationResult{
			Task:     &removeColumnTask{newSchema: newSchema, copyFrom: copyFrom},
			TaskType: frames.RepackTaskType,
			Schema:   newSchema,
		}, nil
	}
}
