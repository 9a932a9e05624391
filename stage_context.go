package frames

import (
	"context"
	"log/slog"
	"time"
)

// A StageContext is a Context enhanced to expose execution state to Tasks during execution of a Stage
type StageContext interface {
	context.Context
	StageID() int                                          // StageID returns the index of the Stage being executed
	Now() time.Time                                        // Now returns the time at which the current run started, used by date functions
	Logger() *slog.Logger                                  // Logger returns the logger for this run
	PartitionCache() PartitionCache                        // PartitionCache returns the configured PartitionCache, or nil if none exists
	TargetPartitionSize() int                              // TargetPartitionSize returns the intended Partition maxSize for outgoing Partitions
	Materialize(df DataFrame) ([]OperablePartition, error) // Materialize executes another DataFrame with the same configuration, returning its Partitions in order
}
