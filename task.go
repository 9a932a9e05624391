package frames

// A Task is an action or transformation applied
// to Partitions of tabular data.
type Task interface {
	RunWorker(sctx StageContext, previous OperablePartition) ([]OperablePartition, error)
}

// A ShuffleTask is a Task which must observe every Partition at once,
// such as a sort. ShuffleTasks end a Stage. RunWorker is applied to each
// Partition first, then RunShuffle receives all of them, in order.
type ShuffleTask interface {
	Task
	RunShuffle(sctx StageContext, parts []OperablePartition) ([]OperablePartition, error)
}

// A CachingTask is a ShuffleTask which memoizes its output. If LoadCached
// succeeds, no preceding Task needs to be executed.
type CachingTask interface {
	ShuffleTask
	LoadCached(sctx StageContext) (parts []OperablePartition, ok bool, err error)
}

// An AccumulationTask ends a DataFrame with an Accumulator
type AccumulationTask interface {
	Task
	GetAccumulatorFactory() AccumulatorFactory
}

// A CollectionTask ends a DataFrame by collecting Rows
type CollectionTask interface {
	Task
	GetCollectionLimit() int64
}
