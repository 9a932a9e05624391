package dataframe

import (
	"github.com/go-sif/frames"
)

// planImpl is an execution Plan for a DataFrame: its lineage divided into Stages
type planImpl struct {
	stages []*stageImpl
	parser frames.DataSourceParser
	source frames.DataSource
}

// createPlan splits a chain of DataFrames into Stages, ending a Stage after each
// stage boundary (see TaskType.IsStageBoundary)
func createPlan(chain []*dataFrameImpl) *planImpl {
	plan := &planImpl{stages: []*stageImpl{}}
	if len(chain) > 0 {
		plan.parser = chain[0].parser
		plan.source = chain[0].source
	}
	current := createStage(0)
	for _, f := range chain {
		current.frames = append(current.frames, f)
		if f.taskType.IsStageBoundary() {
			plan.stages = append(plan.stages, current)
			current = createStage(len(plan.stages))
		}
	}
	if len(current.frames) > 0 || len(plan.stages) == 0 {
		plan.stages = append(plan.stages, current)
	}
	return plan
}

// Size returns the number of stages in this Plan
func (p *planImpl) Size() int {
	return len(p.stages)
}

// GetStage returns a particular Stage in this Plan
func (p *planImpl) GetStage(idx int) *stageImpl {
	return p.stages[idx]
}
