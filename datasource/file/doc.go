// Package file provides a DataSource which reads data from files on disk matching a glob.
// Files are loaded in their entirety, in lexical order, so it is favourable if individual
// files represent roughly equal-sized divisions of data.
package file
