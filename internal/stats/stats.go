package stats

import (
	"sync"
	"time"
)

// RunStatistics contains statistics about a run of a DataFrame. It is safe for concurrent use,
// since Partitions within a Stage are processed in parallel.
type RunStatistics struct {
	lock                sync.Mutex
	started             bool
	finished            bool
	startTime           time.Time
	totalRuntime        time.Duration
	rowsProcessed       []int64
	partitionsProcessed []int64
	stageRuntimes       []time.Duration

	// temp vars
	currentStageStartTime time.Time
}

// Start triggers statistics tracking, resetting any statistics from a previous run
func (rs *RunStatistics) Start(numStages int) {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	rs.started = true
	rs.finished = false
	rs.startTime = time.Now()
	rs.totalRuntime = 0
	rs.rowsProcessed = make([]int64, numStages)
	rs.partitionsProcessed = make([]int64, numStages)
	rs.stageRuntimes = make([]time.Duration, numStages)
}

// Finish completes statistics tracking
func (rs *RunStatistics) Finish() {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	rs.finished = true
	rs.totalRuntime = time.Since(rs.startTime)
}

// StartStage tracks the beginning of a new Stage
func (rs *RunStatistics) StartStage() {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	rs.currentStageStartTime = time.Now()
}

// EndStage tracks the end of a Stage
func (rs *RunStatistics) EndStage(sidx int) {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	if sidx < len(rs.stageRuntimes) {
		rs.stageRuntimes[sidx] = time.Since(rs.currentStageStartTime)
	}
}

// EndPartition tracks the end of the processing of a partition
func (rs *RunStatistics) EndPartition(sidx int, numRows int) {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	if sidx < len(rs.rowsProcessed) {
		rs.rowsProcessed[sidx] += int64(numRows)
		rs.partitionsProcessed[sidx]++
	}
}

// GetStartTime returns the start time of the run
func (rs *RunStatistics) GetStartTime() time.Time {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	return rs.startTime
}

// GetRuntime returns the running time of the run
func (rs *RunStatistics) GetRuntime() time.Duration {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	if !rs.started {
		return 0
	} else if rs.finished {
		return rs.totalRuntime
	}
	return time.Since(rs.startTime)
}

// GetNumRowsProcessed returns the number of Rows which have been processed so far, counted by stage
func (rs *RunStatistics) GetNumRowsProcessed() []int64 {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	return append([]int64(nil), rs.rowsProcessed...)
}

// GetNumPartitionsProcessed returns the number of Partitions which have been processed so far, counted by stage
func (rs *RunStatistics) GetNumPartitionsProcessed() []int64 {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	return append([]int64(nil), rs.partitionsProcessed...)
}

// GetStageRuntimes returns all recorded stage runtimes
func (rs *RunStatistics) GetStageRuntimes() []time.Duration {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	return append([]time.Duration(nil), rs.stageRuntimes...)
}
