package errors

import (
	"fmt"
)

// NilValueError occurs when a value in a Row is null
type NilValueError struct{ Name string }

// Error returns a textual representation of this NilValueError
func (e NilValueError) Error() string {
	return fmt.Sprintf("Value for column %s is nil", e.Name)
}

// IncompatibleRowError occurs when a Row's width does not match an expected Schema
type IncompatibleRowError struct{}

// Error returns a textual representation of this IncompatibleRowError
func (e IncompatibleRowError) Error() string {
	return "Row width is not compatible with Schema"
}

// PartitionFullError occurs when a Partition has reached its max size an a new Row insertion is attempted
type PartitionFullError struct{}

// Error returns a textual representation of this PartitionFullError
func (e PartitionFullError) Error() string {
	return "Partition is full"
}

// NoMorePartitionsError occurs when there are no more partitions in a PartitionIterator
type NoMorePartitionsError struct{}

// Error returns a textual representation of this NoMorePartitionsError
func (e NoMorePartitionsError) Error() string {
	return "No more partitions"
}

// SourceNotFoundError occurs when a path does not match any readable data
type SourceNotFoundError struct{ Path string }

// Error returns a textual representation of this SourceNotFoundError
func (e SourceNotFoundError) Error() string {
	return fmt.Sprintf("Path does not exist: %s", e.Path)
}

// SchemaMismatchError occurs when the arity, names or types of two Schemas
// (or of a Schema and its data) disagree
type SchemaMismatchError struct{ Reason string }

// Error returns a textual representation of this SchemaMismatchError
func (e SchemaMismatchError) Error() string {
	return fmt.Sprintf("Schema mismatch: %s", e.Reason)
}

// ColumnNotFoundError occurs when a column is referenced which does not exist in a Schema
type ColumnNotFoundError struct{ Name string }

// Error returns a textual representation of this ColumnNotFoundError
func (e ColumnNotFoundError) Error() string {
	return fmt.Sprintf("Column %s does not exist", e.Name)
}

// DuplicateColumnError occurs when a column would be defined twice within a Schema
type DuplicateColumnError struct{ Name string }

// Error returns a textual representation of this DuplicateColumnError
func (e DuplicateColumnError) Error() string {
	return fmt.Sprintf("Column %s already exists", e.Name)
}

// TypeCastError describes a value which could not be cast to a type. It is never fatal:
// the cast produces null, and the error is only logged.
type TypeCastError struct {
	Value interface{}
	Type  string
}

// Error returns a textual representation of this TypeCastError
func (e TypeCastError) Error() string {
	return fmt.Sprintf("Cannot cast %#v to %s", e.Value, e.Type)
}
