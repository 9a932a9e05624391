package frames

// A Partition is a portion of a tabular dataset, consisting of multiple Rows
// which share a Schema. Partitions are not generally interacted with directly,
// instead being manipulated in parallel by DataFrame Tasks.
type Partition interface {
	ID() string            // ID retrieves the ID of this Partition
	GetMaxRows() int       // GetMaxRows retrieves the maximum number of rows in this Partition
	GetNumRows() int       // GetNumRows retrieves the number of rows in this Partition
	GetRow(rowNum int) Row // GetRow retrieves a specific row from this Partition
	GetSchema() Schema     // GetSchema retrieves the Schema of this Partition
}

// A BuildablePartition can be built. Used in the implementation of DataSources and Parsers
type BuildablePartition interface {
	Partition
	ForEachRow(fn MapOperation) error                  // ForEachRow iterates over Rows in a Partition
	AppendEmptyRow() (Row, error)                      // AppendEmptyRow is a convenient way to add an all-null Row to the end of this Partition, returning the Row so that Row methods can be used to populate it
	AppendRowData(values []interface{}) error          // AppendRowData adds canonical values as a Row to the end of this Partition, if it isn't full and if the values fit the Schema
	InsertRowData(values []interface{}, pos int) error // InsertRowData inserts values as a Row at a specific position within this Partition. Other Rows are shifted as necessary.
}

// An OperablePartition can be operated on
type OperablePartition interface {
	BuildablePartition
	UpdateCurrentSchema(currentSchema Schema)                                       // Sets the current schema of a Partition, for schema-only changes such as renames
	MapRows(fn MapOperation) (OperablePartition, error)                             // MapRows runs a MapOperation on each row in this Partition, manipulating them in-place. Will fall back to creating a fresh partition if row errors occur.
	FlatMapRows(newSchema Schema, fn FlatMapOperation) ([]OperablePartition, error) // FlatMapRows runs a FlatMapOperation on each row in this Partition, creating new Partitions with the given Schema
	FilterRows(fn FilterOperation) (OperablePartition, error)                       // FilterRows filters the Rows in the current Partition, creating a new one
	Reshape(newSchema Schema, fn ReshapeOperation) (OperablePartition, error)       // Reshape produces a new Partition with a new Schema, populating each new Row from an old one
}

// A CollectedPartition has been collected
type CollectedPartition interface {
	Partition
	ForEachRow(fn MapOperation) error // ForEachRow iterates over Rows in a Partition
}
