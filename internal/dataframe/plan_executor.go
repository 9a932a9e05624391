package dataframe

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/go-sif/frames"
	errors "github.com/go-sif/frames/errors"
	"github.com/go-sif/frames/internal/stats"
	iutil "github.com/go-sif/frames/internal/util"
	"github.com/go-sif/frames/logging"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"
)

// PlanExecutorConfig configures the execution of DataFrames
type PlanExecutorConfig struct {
	NumWorkers          int                   // the number of Partitions processed concurrently within a Stage
	IgnoreRowErrors     bool                  // iff true, log row transformation errors instead of failing the run
	TargetPartitionSize int                   // the maximum number of rows in Partitions produced by wide tasks
	PartitionCache      frames.PartitionCache // stores the Partitions of cached DataFrames. May be nil.
	Logger              *slog.Logger
	Clock               func() time.Time // the source of the run start time, used by date functions
}

// A Result is the outcome of executing a DataFrame
type Result struct {
	Partitions  []frames.OperablePartition // the Partitions produced by the final Stage, in order
	Accumulator frames.Accumulator         // the merged Accumulator, iff the DataFrame ends in an accumulation
}

// PlanExecutor executes DataFrames within a single process
type PlanExecutor struct {
	conf         *PlanExecutorConfig
	statsTracker *stats.RunStatistics
	now          time.Time
}

// CreatePlanExecutor is a factory for PlanExecutors. statsTracker may be nil.
func CreatePlanExecutor(conf *PlanExecutorConfig, statsTracker *stats.RunStatistics) *PlanExecutor {
	if conf.NumWorkers < 1 {
		conf.NumWorkers = runtime.NumCPU()
	}
	if conf.TargetPartitionSize < 1 {
		conf.TargetPartitionSize = 128
	}
	if conf.Logger == nil {
		conf.Logger = logging.Discard()
	}
	if conf.Clock == nil {
		conf.Clock = time.Now
	}
	return &PlanExecutor{conf: conf, statsTracker: statsTracker}
}

// GetConf returns the configuration for this PlanExecutor
func (pe *PlanExecutor) GetConf() *PlanExecutorConfig {
	return pe.conf
}

// Execute runs every Stage of a DataFrame's lineage, returning its Partitions in order
func (pe *PlanExecutor) Execute(ctx context.Context, df frames.DataFrame) (*Result, error) {
	dfi, ok := df.(*dataFrameImpl)
	if !ok {
		return nil, fmt.Errorf("DataFrame %s was not produced by this library", df.ID())
	}
	if pe.now.IsZero() {
		pe.now = pe.conf.Clock()
	}
	chain := dfi.lineage()
	// begin after the most recent cached DataFrame, if one exists
	var input frames.PartitionIterator
	start := 0
	for i := len(chain) - 1; i > 0 && input == nil; i-- {
		if chain[i].taskType != frames.CacheTaskType {
			continue
		}
		cTask, ok := chain[i].task.(frames.CachingTask)
		if !ok {
			return nil, fmt.Errorf("taskType is cache but Task is not a CachingTask")
		}
		cached, ok, err := cTask.LoadCached(pe.createStageContext(ctx, -1))
		if err != nil {
			return nil, err
		} else if ok {
			pe.conf.Logger.Debug("starting from cached dataframe", slog.String("dataframe", chain[i].id))
			input = CreatePartitionSliceIterator(cached)
			start = i + 1
		}
	}
	if input == nil {
		partitionLoaders, err := dfi.source.Analyze()
		if err != nil {
			return nil, err
		}
		input = createPartitionLoaderIterator(partitionLoaders, dfi.parser, chain[0].schema)
	}
	plan := createPlan(chain[start:])
	if pe.statsTracker != nil {
		pe.statsTracker.Start(plan.Size())
		defer pe.statsTracker.Finish()
	}
	var result *Result
	for i := 0; i < plan.Size(); i++ {
		stage := plan.GetStage(i)
		var err error
		result, err = pe.runStage(ctx, stage, input)
		if err != nil {
			return nil, err
		}
		input = CreatePartitionSliceIterator(result.Partitions)
	}
	return result, nil
}

// stageResult holds the output of a single source Partition within a Stage
type stageResult struct {
	parts []frames.OperablePartition
	acc   frames.Accumulator
}

// runStage transforms every incoming Partition in parallel, then runs the Stage's
// boundary task (if any) against all of the results in order
func (pe *PlanExecutor) runStage(ctx context.Context, stage *stageImpl, input frames.PartitionIterator) (*Result, error) {
	logger := pe.conf.Logger.With(slog.Int("stage", stage.ID()))
	logger.Debug("starting stage", slog.Int("tasks", len(stage.frames)))
	if pe.statsTracker != nil {
		pe.statsTracker.StartStage()
		defer pe.statsTracker.EndStage(stage.ID())
	}
	defer input.Close()
	var accFactory frames.AccumulatorFactory
	if stage.EndsInAccumulate() {
		aTask, ok := stage.boundary().task.(frames.AccumulationTask)
		if !ok {
			return nil, fmt.Errorf("taskType is accumulate but Task is not an AccumulationTask")
		}
		accFactory = aTask.GetAccumulatorFactory()
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(pe.conf.NumWorkers)
	sctx := pe.createStageContext(gctx, stage.ID())
	var lock sync.Mutex
	results := []*stageResult{}
	onRowErrors := func(err error) {
		if multierr, ok := err.(*multierror.Error); ok {
			multierr.ErrorFormat = iutil.FormatMultiError
		}
		logger.Error("ignoring row errors", slog.String("errors", err.Error()))
	}
	var loadErr error
	for input.HasNextPartition() {
		if gctx.Err() != nil {
			break
		}
		part, err := input.NextPartition()
		if _, ok := err.(errors.NoMorePartitionsError); ok {
			break
		} else if err != nil {
			loadErr = err
			break
		}
		lock.Lock()
		slot := len(results)
		results = append(results, nil)
		lock.Unlock()
		g.Go(func() error {
			out, err := stage.WorkerExecute(sctx, part, pe.conf.IgnoreRowErrors, onRowErrors)
			if err != nil {
				return err
			}
			res := &stageResult{parts: out}
			numRows := 0
			for _, p := range out {
				numRows += p.GetNumRows()
			}
			if accFactory != nil {
				res.acc, err = accumulatePartitions(accFactory, out)
				if err != nil {
					if _, ok := err.(*multierror.Error); !pe.conf.IgnoreRowErrors || !ok {
						return err
					}
					onRowErrors(err)
				}
			}
			lock.Lock()
			results[slot] = res
			lock.Unlock()
			if pe.statsTracker != nil {
				pe.statsTracker.EndPartition(stage.ID(), numRows)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if loadErr != nil {
		return nil, loadErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	// reassemble results in source order
	parts := []frames.OperablePartition{}
	for _, res := range results {
		parts = append(parts, res.parts...)
	}
	result := &Result{Partitions: parts}
	switch {
	case stage.EndsInShuffle():
		sTask, ok := stage.boundary().task.(frames.ShuffleTask)
		if !ok {
			return nil, fmt.Errorf("taskType is %s but Task is not a ShuffleTask", stage.boundary().taskType)
		}
		shuffled, err := sTask.RunShuffle(pe.createStageContext(ctx, stage.ID()), parts)
		if err != nil {
			if _, ok := err.(*multierror.Error); !pe.conf.IgnoreRowErrors || !ok {
				return nil, err
			}
			onRowErrors(err)
		}
		result.Partitions = shuffled
	case stage.EndsInAccumulate():
		acc := accFactory()
		for _, res := range results {
			if res.acc == nil {
				continue
			}
			if err := acc.Merge(res.acc); err != nil {
				return nil, err
			}
		}
		result.Accumulator = acc
	case stage.EndsInCollect():
		limit, err := stage.GetCollectionLimit()
		if err != nil {
			return nil, err
		}
		result.Partitions, err = limitRows(parts, limit)
		if err != nil {
			return nil, err
		}
	}
	logger.Debug("finished stage", slog.Int("partitions", len(result.Partitions)))
	return result, nil
}

// accumulatePartitions accumulates every Row of several Partitions into a fresh Accumulator
func accumulatePartitions(factory frames.AccumulatorFactory, parts []frames.OperablePartition) (frames.Accumulator, error) {
	acc := factory()
	accumulate := iutil.SafeMapOperation(acc.Accumulate)
	var multierr *multierror.Error
	for _, p := range parts {
		for i := 0; i < p.GetNumRows(); i++ {
			if err := accumulate(p.GetRow(i)); err != nil {
				multierr = multierror.Append(multierr, err)
			}
		}
	}
	return acc, multierr.ErrorOrNil()
}

// limitRows retains the first limit Rows of a series of Partitions. A negative limit retains everything.
func limitRows(parts []frames.OperablePartition, limit int64) ([]frames.OperablePartition, error) {
	if limit < 0 {
		return parts, nil
	}
	result := []frames.OperablePartition{}
	remaining := limit
	for _, p := range parts {
		if remaining <= 0 {
			break
		}
		if int64(p.GetNumRows()) <= remaining {
			result = append(result, p)
			remaining -= int64(p.GetNumRows())
			continue
		}
		kept := int64(0)
		truncated, err := p.FilterRows(func(row frames.Row) (bool, error) {
			kept++
			return kept <= remaining, nil
		})
		if err != nil {
			return nil, err
		}
		result = append(result, truncated)
		remaining = 0
	}
	return result, nil
}
