package session

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/go-sif/frames/logging"
)

// Options configure a Session
type Options struct {
	NumWorkers            int              // the number of Partitions processed concurrently. Defaults to the number of CPUs.
	TempDir               string           // location for storing temporary files (primarily cached partitions swapped out of memory)
	NumInMemoryPartitions int              // the number of cached partitions to retain in memory before swapping to disk
	TargetPartitionSize   int              // the maximum number of rows per Partition produced by sorts, unions and other wide operations
	IgnoreRowErrors       bool             // iff true, log row transformation errors instead of failing immediately
	Compression           string           // compression for partitions swapped to disk: "lz4" (default) or "zstd"
	LogLevel              string           // one of "trace", "debug", "info", "warn", "error" or "fatal". Defaults to "info".
	LogOutput             io.Writer        // destination for logs. Defaults to os.Stderr.
	Logger                *slog.Logger     // overrides LogLevel and LogOutput, if provided
	Clock                 func() time.Time // the source of the current time, used by date functions. Defaults to time.Now.
}

// CloneOptions makes a copy of an Options
func CloneOptions(opts *Options) *Options {
	return &Options{
		NumWorkers:            opts.NumWorkers,
		TempDir:               opts.TempDir,
		NumInMemoryPartitions: opts.NumInMemoryPartitions,
		TargetPartitionSize:   opts.TargetPartitionSize,
		IgnoreRowErrors:       opts.IgnoreRowErrors,
		Compression:           opts.Compression,
		LogLevel:              opts.LogLevel,
		LogOutput:             opts.LogOutput,
		Logger:                opts.Logger,
		Clock:                 opts.Clock,
	}
}

func ensureDefaultOptionsValues(opts *Options) error {
	if opts.NumWorkers < 0 {
		return fmt.Errorf("Options.NumWorkers must not be negative")
	}
	if opts.NumInMemoryPartitions < 0 {
		return fmt.Errorf("Options.NumInMemoryPartitions must not be negative")
	}
	if opts.NumWorkers == 0 {
		opts.NumWorkers = runtime.NumCPU()
	}
	if len(opts.TempDir) == 0 {
		opts.TempDir = os.TempDir()
	}
	if opts.NumInMemoryPartitions == 0 {
		opts.NumInMemoryPartitions = 100
	}
	if opts.TargetPartitionSize <= 0 {
		opts.TargetPartitionSize = 128
	}
	if len(opts.Compression) == 0 {
		opts.Compression = "lz4"
	}
	if len(opts.LogLevel) == 0 {
		opts.LogLevel = logging.LogLevelToString(logging.InfoLevel)
	}
	if opts.LogOutput == nil {
		opts.LogOutput = os.Stderr
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewLogger(logging.ParseLogLevel(opts.LogLevel), opts.LogOutput)
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return nil
}
