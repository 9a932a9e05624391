package frames

import "time"

// RuntimeStatistics facilitates the retrieval of statistics about the most recent run of a DataFrame
type RuntimeStatistics interface {
	// GetStartTime returns the start time of the run
	GetStartTime() time.Time
	// GetRuntime returns the running time of the run
	GetRuntime() time.Duration
	// GetNumRowsProcessed returns the number of Rows which have been processed so far, counted by stage
	GetNumRowsProcessed() []int64
	// GetNumPartitionsProcessed returns the number of Partitions which have been processed so far, counted by stage
	GetNumPartitionsProcessed() []int64
	// GetStageRuntimes returns all recorded stage runtimes
	GetStageRuntimes() []time.Duration
}
