package schema

import (
	"fmt"
	"strings"

	"github.com/go-sif/frames"
	"github.com/go-sif/frames/errors"
)

// column describes the position and type of a field in a Row
type column struct {
	idx     int
	colType frames.ColumnType
}

// Clone returns a copy of this Column
func (c *column) Clone() frames.Column {
	return &column{c.idx, c.colType}
}

// Index returns the index of this Column within a Schema
func (c *column) Index() int {
	return c.idx
}

// SetIndex modifies the index of this Column within a Schema
func (c *column) SetIndex(newIndex int) {
	c.idx = newIndex
}

// Type returns the ColumnType of this Column
func (c *column) Type() frames.ColumnType {
	return c.colType
}

// schema is an ordered mapping from column names to positions
// within a Row. It allows one to obtain positions by name,
// define new columns, remove columns, etc.
type schema struct {
	names  []string
	schema map[string]*column
}

// CreateSchema is a factory for Schemas
func CreateSchema() frames.Schema {
	return &schema{
		names:  []string{},
		schema: make(map[string]*column),
	}
}

// Equals returns nil iff this and another Schema have the same column names, in the same order,
// with the same types. Otherwise, a SchemaMismatchError describes the first difference.
func (s *schema) Equals(otherSchema frames.Schema) error {
	if s.NumColumns() != otherSchema.NumColumns() {
		return errors.SchemaMismatchError{Reason: fmt.Sprintf("schemas have %d and %d columns", s.NumColumns(), otherSchema.NumColumns())}
	}
	otherNames := otherSchema.ColumnNames()
	otherTypes := otherSchema.ColumnTypes()
	for i, name := range s.names {
		if name != otherNames[i] {
			return errors.SchemaMismatchError{Reason: fmt.Sprintf("column %d is named %s and %s", i, name, otherNames[i])}
		}
		if !frames.SameType(s.schema[name].colType, otherTypes[i]) {
			return errors.SchemaMismatchError{Reason: fmt.Sprintf("column %s has types %s and %s", name, s.schema[name].colType.Name(), otherTypes[i].Name())}
		}
	}
	return nil
}

// Clone returns a copy of this Schema
func (s *schema) Clone() frames.Schema {
	newNames := make([]string, len(s.names))
	copy(newNames, s.names)
	newSchema := make(map[string]*column, len(s.schema))
	for k, v := range s.schema {
		newSchema[k] = &column{v.idx, v.colType}
	}
	return &schema{names: newNames, schema: newSchema}
}

// NumColumns returns the number of columns in this Schema
func (s *schema) NumColumns() int {
	return len(s.names)
}

// GetOffset returns the Column describing the position and type of a named column
func (s *schema) GetOffset(colName string) (frames.Column, error) {
	col, ok := s.schema[colName]
	if !ok {
		return nil, errors.ColumnNotFoundError{Name: colName}
	}
	return col, nil
}

// HasColumn returns true iff this Schema contains a column with the given name
func (s *schema) HasColumn(colName string) bool {
	_, ok := s.schema[colName]
	return ok
}

// CreateColumn appends a column to this Schema
func (s *schema) CreateColumn(colName string, columnType frames.ColumnType) (frames.Schema, error) {
	if columnType == nil {
		return nil, fmt.Errorf("Column %s must have a type", colName)
	}
	if _, exists := s.schema[colName]; exists {
		return nil, errors.DuplicateColumnError{Name: colName}
	}
	s.schema[colName] = &column{idx: len(s.names), colType: columnType}
	s.names = append(s.names, colName)
	return s, nil
}

// SetColumnType changes the type of an existing column, retaining its position
func (s *schema) SetColumnType(colName string, columnType frames.ColumnType) (frames.Schema, error) {
	col, ok := s.schema[colName]
	if !ok {
		return nil, errors.ColumnNotFoundError{Name: colName}
	}
	col.colType = columnType
	return s, nil
}

// RenameColumn renames a column within this Schema. Renaming a column to itself is permitted.
func (s *schema) RenameColumn(oldName string, newName string) (frames.Schema, error) {
	col, ok := s.schema[oldName]
	if !ok {
		return nil, errors.ColumnNotFoundError{Name: oldName}
	}
	if oldName == newName {
		return s, nil
	}
	if _, exists := s.schema[newName]; exists {
		return nil, errors.DuplicateColumnError{Name: newName}
	}
	delete(s.schema, oldName)
	s.schema[newName] = col
	s.names[col.idx] = newName
	return s, nil
}

// RemoveColumn removes a column from this Schema, shifting the positions of subsequent columns
func (s *schema) RemoveColumn(colName string) (frames.Schema, bool) {
	col, ok := s.schema[colName]
	if !ok {
		return s, false
	}
	delete(s.schema, colName)
	s.names = append(s.names[:col.idx], s.names[col.idx+1:]...)
	for i := col.idx; i < len(s.names); i++ {
		s.schema[s.names[i]].idx = i
	}
	return s, true
}

// ColumnNames returns the names in the schema, in index order
func (s *schema) ColumnNames() []string {
	result := make([]string, len(s.names))
	copy(result, s.names)
	return result
}

// ColumnTypes returns the types in the schema, in index order
func (s *schema) ColumnTypes() []frames.ColumnType {
	result := make([]frames.ColumnType, len(s.names))
	for i, name := range s.names {
		result[i] = s.schema[name].colType
	}
	return result
}

// ForEachColumn iterates over the columns in this Schema, in index order
func (s *schema) ForEachColumn(fn func(name string, col frames.Column) error) error {
	for _, name := range s.names {
		if err := fn(name, s.schema[name]); err != nil {
			return err
		}
	}
	return nil
}

// ToString renders this Schema as a tree, one column per line
func (s *schema) ToString() string {
	var res strings.Builder
	res.WriteString("root\n")
	for _, name := range s.names {
		writeTreeType(&res, " |-- "+name, s.schema[name].colType, " |   ")
	}
	return res.String()
}

func writeTreeType(res *strings.Builder, label string, colType frames.ColumnType, indent string) {
	switch t := colType.(type) {
	case *frames.ListColumnType:
		fmt.Fprintf(res, "%s: array (nullable = true)\n", label)
		writeTreeType(res, indent+" |-- element", t.Elem, indent+" |   ")
	default:
		fmt.Fprintf(res, "%s: %s (nullable = true)\n", label, treeTypeName(colType))
	}
}

func treeTypeName(colType frames.ColumnType) string {
	switch colType.(type) {
	case *frames.Int32ColumnType:
		return "integer"
	case *frames.Int64ColumnType:
		return "long"
	default:
		return colType.Name()
	}
}
