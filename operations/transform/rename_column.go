package transform

import (
	"github.com/go-sif/frames"
)

// renameColumnTask relabels Partitions without touching their Rows
type renameColumnTask struct {
	newSchema frames.Schema
}

func (s *renameColumnTask) RunWorker(sctx frames.StageContext, previous frames.OperablePartition) ([]frames.OperablePartition, error) {
	previous.UpdateCurrentSchema(s.newSchema)
	return []frames.OperablePartition{previous}, nil
}

// RenameColumn renames an existing column. Renaming a column to itself does nothing.
func RenameColumn(oldName string, newName string) frames.DataFrameOperation {
	return func(d frames.DataFrame) (*frames.DataFrameOperationResult, error) {
		newSchema, err := d.GetSchema().Clone().RenameColumn(oldName, newName)
		if err != nil {
			return nil, err
		}
		return &frames.DataFrameOperationResult{
			Task:     &renameColumnTask{newSchema: newSchema},
			TaskType: frames.NoOpTaskType,
			Schema:   newSchema,
		}, nil
	}
}
