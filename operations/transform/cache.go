package transform

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/go-sif/frames"
	"github.com/go-sif/frames/internal/partition"
)

// cacheTask stores the Partitions of a DataFrame in the PartitionCache of each
// run which materializes it, so that later runs can start from them
type cacheTask struct {
	key       string
	newSchema frames.Schema
	lock      sync.Mutex
	counts    map[frames.PartitionCache]int // the number of Partitions stored in each cache
}

func (s *cacheTask) partitionKey(i int) string {
	return fmt.Sprintf("%s/%d", s.key, i)
}

// clone copies a Partition, so that in-place updates downstream never reach cached Rows
func clone(part frames.Partition, s frames.Schema) (frames.OperablePartition, error) {
	copied := partition.CreatePartition(part.GetMaxRows(), s)
	for i := 0; i < part.GetNumRows(); i++ {
		if err := copied.AppendRowData(part.GetRow(i).Clone().Values()); err != nil {
			return nil, err
		}
	}
	return copied, nil
}

func (s *cacheTask) RunWorker(sctx frames.StageContext, previous frames.OperablePartition) ([]frames.OperablePartition, error) {
	return []frames.OperablePartition{previous}, nil
}

// RunShuffle stores every Partition under a key derived from the DataFrame
func (s *cacheTask) RunShuffle(sctx frames.StageContext, parts []frames.OperablePartition) ([]frames.OperablePartition, error) {
	pcache := sctx.PartitionCache()
	if pcache == nil {
		sctx.Logger().Warn("no partition cache is configured, so nothing will be cached", slog.String("key", s.key))
		return parts, nil
	}
	for i, part := range parts {
		copied, err := clone(part, s.newSchema)
		if err != nil {
			return nil, err
		}
		if err := pcache.Add(s.partitionKey(i), copied); err != nil {
			return nil, err
		}
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.counts[pcache] = len(parts)
	sctx.Logger().Debug("cached dataframe", slog.String("key", s.key), slog.Int("partitions", len(parts)))
	return parts, nil
}

// LoadCached retrieves copies of previously cached Partitions, if every one of them is still present
func (s *cacheTask) LoadCached(sctx frames.StageContext) ([]frames.OperablePartition, bool, error) {
	pcache := sctx.PartitionCache()
	if pcache == nil {
		return nil, false, nil
	}
	s.lock.Lock()
	count, ok := s.counts[pcache]
	s.lock.Unlock()
	if !ok {
		return nil, false, nil
	}
	parts := make([]frames.OperablePartition, 0, count)
	for i := 0; i < count; i++ {
		if !pcache.Has(s.partitionKey(i)) {
			return nil, false, nil
		}
		part, err := pcache.Get(s.partitionKey(i))
		if err != nil {
			return nil, false, err
		}
		copied, err := clone(part, s.newSchema)
		if err != nil {
			return nil, false, err
		}
		parts = append(parts, copied)
	}
	return parts, true, nil
}

// Cache memoizes the Partitions of a DataFrame within the PartitionCache of the run which first
// materializes it. Later runs sharing the PartitionCache begin from the cached Partitions instead
// of recomputing them.
func Cache() frames.DataFrameOperation {
	return func(d frames.DataFrame) (*frames.DataFrameOperationResult, error) {
		newSchema := d.GetSchema().Clone()
		return &frames.DataFrameOperationResult{
			Task: &cacheTask{
				key:       d.ID() + "/cache",
				newSchema: newSchema,
				counts:    make(map[frames.PartitionCache]int),
			},
			TaskType: frames.CacheTaskType,
			Schema:   newSchema,
		}, nil
	}
}
