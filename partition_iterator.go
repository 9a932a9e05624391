package frames

// PartitionIterator is a generalized interface for iterating over Partitions, regardless of where they come from
type PartitionIterator interface {
	HasNextPartition() bool
	NextPartition() (part OperablePartition, err error)
	OnEnd(onEnd func())
	// Close abandons any remaining Partitions and releases the input behind them,
	// firing OnEnd listeners which have not yet fired. Closing an exhausted iterator does nothing.
	Close()
}
