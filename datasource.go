package frames

import "io"

// PartitionLoader is a description of how to load specific Partitions of data from a particular DataSource.
// DataSources implement this interface to implement data-loading logic.
type PartitionLoader interface {
	ToString() string                                                       // for logging
	Load(parser DataSourceParser, schema Schema) (PartitionIterator, error) // how to actually load data
}

// PartitionMap is an interface describing an iterator for PartitionLoaders.
// Returned by DataSource.Analyze(), PartitionLoaders are loaded in order.
type PartitionMap interface {
	HasNext() bool
	Next() PartitionLoader
}

// DataSource is a source of data which will be manipulated according to transformations and actions defined in a DataFrame.
// It represents information about how to load data from the source as Partitions.
type DataSource interface {
	Analyze() (PartitionMap, error)
	IsStreaming() bool
}

// DataSourceParser is a tool for parsing raw data from a DataSource into Partitions.
type DataSourceParser interface {
	PartitionSize() int                                                                                   // returns the maximum size in rows of Partitions produced by this DataSourceParser
	Parse(r io.Reader, source DataSource, schema Schema, onIteratorEnd func()) (PartitionIterator, error) // lazily converts bytes from a Reader into Partitions
}

// A SchemaInferringParser can derive a Schema from a sample of raw data, and check
// an explicit Schema against it. Used to resolve Schemas before a DataFrame is built.
type SchemaInferringParser interface {
	DataSourceParser
	InferSchema(r io.Reader) (Schema, error)      // InferSchema derives a Schema from the beginning of a stream
	CheckSchema(r io.Reader, schema Schema) error // CheckSchema returns an errors.SchemaMismatchError if the data cannot be described by schema
}
