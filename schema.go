package frames

// Schema is an ordered mapping from column names to
// positions within a Row. It allows one to obtain
// positions by name, define new columns, remove columns, etc.
// Mutating methods modify the Schema in place and return it,
// so callers should Clone a Schema they do not own.
type Schema interface {
	Equals(otherSchema Schema) error
	Clone() Schema
	NumColumns() int
	GetOffset(colName string) (offset Column, err error)
	HasColumn(colName string) bool
	CreateColumn(colName string, columnType ColumnType) (newSchema Schema, err error)
	SetColumnType(colName string, columnType ColumnType) (newSchema Schema, err error)
	RenameColumn(oldName string, newName string) (newSchema Schema, err error)
	RemoveColumn(colName string) (newSchema Schema, wasRemoved bool)
	ColumnNames() []string
	ColumnTypes() []ColumnType
	ForEachColumn(fn func(name string, col Column) error) error
	ToString() string
}
