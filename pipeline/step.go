package pipeline

import (
	"fmt"
	"strings"

	"github.com/go-sif/frames"
	"github.com/go-sif/frames/expr"
	"github.com/go-sif/frames/operations/transform"
)

// SortKey is the YAML form of a transform.SortKey
type SortKey struct {
	Column string `yaml:"column"`
	Desc   bool   `yaml:"desc,omitempty"`
}

// A Step applies a single named operation to the DataFrame produced by the previous Step
type Step struct {
	Name    string                 `yaml:"name,omitempty"`
	Op      string                 `yaml:"op"`
	Columns []string               `yaml:"columns,omitempty"` // select, drop, dropna, dedup
	Exprs   []*Expr                `yaml:"exprs,omitempty"`   // select
	Column  string                 `yaml:"column,omitempty"`  // withColumn, rename, explode
	To      string                 `yaml:"to,omitempty"`      // rename
	Expr    *Expr                  `yaml:"expr,omitempty"`    // withColumn
	Where   *Expr                  `yaml:"where,omitempty"`   // filter
	Keys    []SortKey              `yaml:"keys,omitempty"`    // sort
	Values  map[string]interface{} `yaml:"values,omitempty"`  // fillna
	Value   interface{}            `yaml:"value,omitempty"`   // fillna, applied to columns (or all columns)
	N       *int                   `yaml:"n,omitempty"`       // limit
	Source  *Source                `yaml:"source,omitempty"`  // union, unionByName, unionByNameAllowMissing
	Show    *int                   `yaml:"show,omitempty"`    // overrides Pipeline.Show for this Step
}

// Title describes a Step in the output of Pipeline.Run
func (s *Step) Title() string {
	if len(s.Name) > 0 {
		return s.Name
	}
	return s.Op
}

// readFunc produces the DataFrame of a Source referenced by a Step
type readFunc func(src *Source) (frames.DataFrame, error)

func (s *Step) requireColumn() error {
	if len(s.Column) == 0 {
		return fmt.Errorf("step %q: %s requires a column", s.Title(), s.Op)
	}
	return nil
}

// Operation converts a Step into a DataFrameOperation
func (s *Step) Operation(read readFunc) (frames.DataFrameOperation, error) {
	switch strings.ToLower(s.Op) {
	case "select":
		if len(s.Exprs) == 0 {
			return transform.SelectColumns(s.Columns...), nil
		}
		exprs := make([]expr.Expression, len(s.Exprs))
		for i, e := range s.Exprs {
			built, err := e.Build()
			if err != nil {
				return nil, fmt.Errorf("step %q: %w", s.Title(), err)
			}
			exprs[i] = built
		}
		return transform.Select(exprs...), nil
	case "withcolumn":
		if err := s.requireColumn(); err != nil {
			return nil, err
		}
		if s.Expr == nil {
			return nil, fmt.Errorf("step %q: withColumn requires an expr", s.Title())
		}
		e, err := s.Expr.Build()
		if err != nil {
			return nil, fmt.Errorf("step %q: %w", s.Title(), err)
		}
		return transform.WithColumn(s.Column, e), nil
	case "filter":
		if s.Where == nil {
			return nil, fmt.Errorf("step %q: filter requires a where expression", s.Title())
		}
		e, err := s.Where.Build()
		if err != nil {
			return nil, fmt.Errorf("step %q: %w", s.Title(), err)
		}
		return transform.Filter(e), nil
	case "rename":
		if err := s.requireColumn(); err != nil {
			return nil, err
		}
		return transform.RenameColumn(s.Column, s.To), nil
	case "drop":
		return transform.RemoveColumn(s.Columns...), nil
	case "sort":
		keys := make([]transform.SortKey, len(s.Keys))
		for i, k := range s.Keys {
			keys[i] = transform.SortKey{Column: k.Column, Descending: k.Desc}
		}
		return transform.Sort(keys...), nil
	case "dedup":
		return transform.DropDuplicates(s.Columns...), nil
	case "distinct":
		return transform.Distinct(), nil
	case "dropna":
		return transform.DropNA(s.Columns...), nil
	case "fillna":
		if s.Values != nil {
			return transform.FillNA(s.Values), nil
		}
		return transform.FillNAValue(s.Value, s.Columns...), nil
	case "union", "unionbyname", "unionbynameallowmissing":
		if s.Source == nil {
			return nil, fmt.Errorf("step %q: %s requires a source", s.Title(), s.Op)
		}
		other, err := read(s.Source)
		if err != nil {
			return nil, fmt.Errorf("step %q: %w", s.Title(), err)
		}
		switch strings.ToLower(s.Op) {
		case "union":
			return transform.Union(other), nil
		case "unionbyname":
			return transform.UnionByName(other), nil
		}
		return transform.UnionByNameAllowMissing(other), nil
	case "explode":
		if err := s.requireColumn(); err != nil {
			return nil, err
		}
		return transform.Explode(s.Column), nil
	case "explodeouter":
		if err := s.requireColumn(); err != nil {
			return nil, err
		}
		return transform.ExplodeOuter(s.Column), nil
	case "limit":
		if s.N == nil {
			return nil, fmt.Errorf("step %q: limit requires n", s.Title())
		}
		return transform.Limit(*s.N), nil
	case "cache":
		return transform.Cache(), nil
	}
	return nil, fmt.Errorf("step %q: unknown operation %q", s.Title(), s.Op)
}
