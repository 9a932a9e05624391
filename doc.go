// Package frames contains the core components of Frames, a library for lazy, partitioned
// tabular transformations. This root package defines the types which are employed during
// the regular use of the library, as well as in its extension, and is a good overview of
// its key concepts: DataFrames are immutable chains of Tasks over a DataSource, which are
// only executed when a Session materializes them.
package frames
