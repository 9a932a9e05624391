package transform

import (
	"fmt"

	"github.com/go-sif/frames"
	errors "github.com/go-sif/frames/errors"
	iutil "github.com/go-sif/frames/internal/util"
	"github.com/hashicorp/go-multierror"
)

// unionTask appends the Rows of another DataFrame to this one. Both sides are realigned
// to the outgoing Schema using a mapping, unless their layout already matches.
type unionTask struct {
	other     frames.DataFrame
	incoming  frames.Schema
	left      mapping
	right     mapping
	newSchema frames.Schema
}

func (s *unionTask) align(parts []frames.OperablePartition, incoming frames.Schema, m mapping) ([]frames.OperablePartition, error) {
	if m.isIdentity(incoming) && incoming.NumColumns() == s.newSchema.NumColumns() {
		for _, p := range parts {
			p.UpdateCurrentSchema(s.newSchema)
		}
		return parts, nil
	}
	var multierr *multierror.Error
	aligned := make([]frames.OperablePartition, 0, len(parts))
	for _, p := range parts {
		next, err := p.Reshape(s.newSchema, iutil.SafeReshapeOperation(m.reshape()))
		if err != nil {
			multierr = multierror.Append(multierr, err)
		}
		aligned = append(aligned, next)
	}
	return aligned, multierr.ErrorOrNil()
}

func (s *unionTask) RunWorker(sctx frames.StageContext, previous frames.OperablePartition) ([]frames.OperablePartition, error) {
	return []frames.OperablePartition{previous}, nil
}

// RunShuffle materializes the other DataFrame, and appends its Rows after these ones
func (s *unionTask) RunShuffle(sctx frames.StageContext, parts []frames.OperablePartition) ([]frames.OperablePartition, error) {
	otherParts, err := sctx.Materialize(s.other)
	if err != nil {
		return nil, fmt.Errorf("Unable to materialize the right side of a union: %w", err)
	}
	var multierr *multierror.Error
	left, err := s.align(parts, s.incoming, s.left)
	if err != nil {
		multierr = multierror.Append(multierr, err)
	}
	right, err := s.align(otherParts, s.other.GetSchema(), s.right)
	if err != nil {
		multierr = multierror.Append(multierr, err)
	}
	return append(left, right...), multierr.ErrorOrNil()
}

// Union appends the Rows of another DataFrame to this one, by position. Both DataFrames
// must have the same column names, in the same order, with the same types.
func Union(other frames.DataFrame) frames.DataFrameOperation {
	return func(d frames.DataFrame) (*frames.DataFrameOperationResult, error) {
		if err := d.GetSchema().Equals(other.GetSchema()); err != nil {
			return nil, err
		}
		newSchema := d.GetSchema().Clone()
		return &frames.DataFrameOperationResult{
			Task: &unionTask{
				other:     other,
				incoming:  d.GetSchema(),
				left:      allOffsets(newSchema),
				right:     allOffsets(newSchema),
				newSchema: newSchema,
			},
			TaskType: frames.ShuffleTaskType,
			Schema:   newSchema,
		}, nil
	}
}

// UnionByName appends the Rows of another DataFrame to this one, matching columns by name.
// Both DataFrames must have the same set of column names, with the same types.
func UnionByName(other frames.DataFrame) frames.DataFrameOperation {
	return unionByName(other, false)
}

// UnionByNameAllowMissing is UnionByName where columns missing from either side are null.
// The outgoing Schema holds this DataFrame's columns, followed by any extra columns of the other.
func UnionByNameAllowMissing(other frames.DataFrame) frames.DataFrameOperation {
	return unionByName(other, true)
}

func unionByName(other frames.DataFrame, allowMissing bool) frames.DataFrameOperation {
	return func(d frames.DataFrame) (*frames.DataFrameOperationResult, error) {
		ls, rs := d.GetSchema(), other.GetSchema()
		newSchema := ls.Clone()
		for _, name := range rs.ColumnNames() {
			rcol, _ := rs.GetOffset(name)
			lcol, err := ls.GetOffset(name)
			if err != nil {
				if !allowMissing {
					return nil, err
				}
				if _, err := newSchema.CreateColumn(name, rcol.Type()); err != nil {
					return nil, err
				}
				continue
			}
			if !frames.SameType(lcol.Type(), rcol.Type()) {
				return nil, errors.SchemaMismatchError{Reason: fmt.Sprintf("column %s has types %s and %s", name, lcol.Type().Name(), rcol.Type().Name())}
			}
		}
		left := make(mapping, newSchema.NumColumns())
		right := make(mapping, newSchema.NumColumns())
		for i, name := range newSchema.ColumnNames() {
			left[i], right[i] = -1, -1
			if col, err := ls.GetOffset(name); err == nil {
				left[i] = col.Index()
			}
			col, err := rs.GetOffset(name)
			if err == nil {
				right[i] = col.Index()
			} else if !allowMissing {
				return nil, err
			}
		}
		return &frames.DataFrameOperationResult{
			Task:     &unionTask{other: other, incoming: ls, left: left, right: right, newSchema: newSchema},
			TaskType: frames.ShuffleTaskType,
			Schema:   newSchema,
		}, nil
	}
}
