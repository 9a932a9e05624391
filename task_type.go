package frames

// TaskType describes the type of a Task, used internally to control behaviour
type TaskType string

const (
	// NoOpTaskType indicates that this task does not manipulate data
	NoOpTaskType TaskType = "no_op"
	// ExtractTaskType indicates that this task sources data from a DataSource
	ExtractTaskType TaskType = "extract"
	// RepackTaskType indicates that this task changes the layout of Rows
	RepackTaskType TaskType = "repack"
	// ShuffleTaskType indicates that this task must observe all Partitions, ending a Stage
	ShuffleTaskType TaskType = "shuffle"
	// CacheTaskType indicates that this task memoizes Partitions, ending a Stage
	CacheTaskType TaskType = "cache"
	// AccumulateTaskType indicates that this task triggers an Accumulation
	AccumulateTaskType TaskType = "accumulate"
	// FlatMapTaskType indicates that this task triggers a FlatMap
	FlatMapTaskType TaskType = "flatmap"
	// MapTaskType indicates that this task triggers a Map
	MapTaskType TaskType = "map"
	// FilterTaskType indicates that this task triggers a Filter
	FilterTaskType TaskType = "filter"
	// CollectTaskType indicates that this task triggers a Collect
	CollectTaskType TaskType = "collect"
)

// IsStageBoundary returns true iff a Task of this type ends a Stage
func (t TaskType) IsStageBoundary() bool {
	switch t {
	case ShuffleTaskType, CacheTaskType, AccumulateTaskType, CollectTaskType:
		return true
	default:
		return false
	}
}
