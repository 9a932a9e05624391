package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/go-sif/frames"
	"github.com/go-sif/frames/accumulators"
	"github.com/go-sif/frames/datasource/memory"
	"github.com/go-sif/frames/internal/dataframe"
	"github.com/go-sif/frames/internal/partition"
	"github.com/go-sif/frames/internal/pcache"
	"github.com/go-sif/frames/internal/stats"
	"github.com/go-sif/frames/operations/util"
)

// A Session executes DataFrames. It holds the configuration, logger, clock and
// partition cache shared by every run, and is safe for concurrent use.
type Session struct {
	opts      *Options
	pcache    frames.PartitionCache
	lock      sync.Mutex
	lastStats *stats.RunStatistics
	closed    bool
}

// Create produces a new Session. Close should be called when the Session is no longer needed.
func Create(opts *Options) (*Session, error) {
	if opts == nil {
		opts = &Options{}
	}
	opts = CloneOptions(opts)
	if err := ensureDefaultOptionsValues(opts); err != nil {
		return nil, err
	}
	serializer, err := partition.NewSerializer(opts.Compression)
	if err != nil {
		return nil, err
	}
	cache, err := pcache.NewLRU(&pcache.LRUConfig{
		InitialSize: opts.NumInMemoryPartitions,
		DiskPath:    opts.TempDir,
		Serializer:  serializer,
		Logger:      opts.Logger,
	})
	if err != nil {
		return nil, err
	}
	return &Session{opts: opts, pcache: cache}, nil
}

// Logger returns the logger of this Session
func (s *Session) Logger() *slog.Logger {
	return s.opts.Logger
}

// Options returns a copy of the Options of this Session
func (s *Session) Options() *Options {
	return CloneOptions(s.opts)
}

// Close releases the partition cache of this Session, including any partitions swapped to disk
func (s *Session) Close() {
	s.lock.Lock()
	defer s.lock.Unlock()
	if !s.closed {
		s.closed = true
		s.pcache.Destroy()
	}
}

// Statistics returns statistics about the most recent run within this Session, or nil if there has been none
func (s *Session) Statistics() frames.RuntimeStatistics {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.lastStats == nil {
		return nil
	}
	return s.lastStats
}

// CreateDataFrame builds a DataFrame from Go values, one slice per Row. Values are
// coerced to the types of the Schema, such as a string "2024-01-01" to a date.
func (s *Session) CreateDataFrame(schema frames.Schema, rows [][]interface{}) (frames.DataFrame, error) {
	return memory.CreateRowDataFrame(rows, schema, s.opts.TargetPartitionSize)
}

func (s *Session) execute(ctx context.Context, df frames.DataFrame) (*dataframe.Result, error) {
	s.lock.Lock()
	if s.closed {
		s.lock.Unlock()
		return nil, fmt.Errorf("Session is closed")
	}
	runStats := &stats.RunStatistics{}
	s.lastStats = runStats
	s.lock.Unlock()
	executor := dataframe.CreatePlanExecutor(&dataframe.PlanExecutorConfig{
		NumWorkers:          s.opts.NumWorkers,
		IgnoreRowErrors:     s.opts.IgnoreRowErrors,
		TargetPartitionSize: s.opts.TargetPartitionSize,
		PartitionCache:      s.pcache,
		Logger:              s.opts.Logger,
		Clock:               s.opts.Clock,
	}, runStats)
	s.opts.Logger.Debug("executing dataframe", slog.String("dataframe", df.ID()))
	return executor.Execute(ctx, df)
}

// CollectN materializes a DataFrame, returning at most limit Rows in order.
// A negative limit returns every Row.
func (s *Session) CollectN(ctx context.Context, df frames.DataFrame, limit int64) ([]frames.Row, error) {
	collected, err := df.To(util.Collect(limit))
	if err != nil {
		return nil, err
	}
	res, err := s.execute(ctx, collected)
	if err != nil {
		return nil, err
	}
	rows := []frames.Row{}
	for _, part := range res.Partitions {
		for i := 0; i < part.GetNumRows(); i++ {
			rows = append(rows, part.GetRow(i))
		}
	}
	return rows, nil
}

// Collect materializes a DataFrame, returning all of its Rows in order
func (s *Session) Collect(ctx context.Context, df frames.DataFrame) ([]frames.Row, error) {
	return s.CollectN(ctx, df, -1)
}

// First returns the first Row of a DataFrame, or nil if it has none
func (s *Session) First(ctx context.Context, df frames.DataFrame) (frames.Row, error) {
	rows, err := s.CollectN(ctx, df, 1)
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return rows[0], nil
}

// Accumulate materializes a DataFrame into an Accumulator
func (s *Session) Accumulate(ctx context.Context, df frames.DataFrame, facc frames.AccumulatorFactory) (frames.Accumulator, error) {
	accumulated, err := df.To(util.Accumulate(facc))
	if err != nil {
		return nil, err
	}
	res, err := s.execute(ctx, accumulated)
	if err != nil {
		return nil, err
	}
	return res.Accumulator, nil
}

// Count returns the number of Rows in a DataFrame
func (s *Session) Count(ctx context.Context, df frames.DataFrame) (int64, error) {
	acc, err := s.Accumulate(ctx, df, accumulators.Counter)
	if err != nil {
		return 0, err
	}
	return acc.(*accumulators.Count).GetCount(), nil
}
