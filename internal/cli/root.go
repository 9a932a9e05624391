// Package cli implements the frames command-line interface
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/go-sif/frames/session"
	"github.com/spf13/cobra"
)

// Execute runs the CLI, returning the process exit code
func Execute() int {
	return execute(os.Args[1:], os.Stdout, os.Stderr)
}

func execute(args []string, stdout io.Writer, stderr io.Writer) int {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// sessionFlags configure the Session created for each command
type sessionFlags struct {
	workers         int
	tempDir         string
	logLevel        string
	ignoreRowErrors bool
	compression     string
}

func (f *sessionFlags) create(cmd *cobra.Command) (*session.Session, error) {
	return session.Create(&session.Options{
		NumWorkers:      f.workers,
		TempDir:         f.tempDir,
		IgnoreRowErrors: f.ignoreRowErrors,
		Compression:     f.compression,
		LogLevel:        f.logLevel,
		LogOutput:       cmd.ErrOrStderr(),
	})
}

func newRootCmd() *cobra.Command {
	flags := &sessionFlags{}
	rootCmd := &cobra.Command{
		Use:           "frames",
		Short:         "Explore CSV and JSON files as DataFrames",
		Long:          "Command-line interface for reading, transforming and displaying tabular files.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().IntVar(&flags.workers, "workers", 0, "Partitions processed concurrently (0 = number of CPUs)")
	rootCmd.PersistentFlags().StringVar(&flags.tempDir, "temp-dir", "", "Directory for cached partitions swapped out of memory")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "warn", "Log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&flags.ignoreRowErrors, "ignore-row-errors", false, "Log and drop rows which fail to transform")
	rootCmd.PersistentFlags().StringVar(&flags.compression, "compression", "lz4", "Compression for swapped partitions (lz4, zstd)")

	rootCmd.AddCommand(newShowCmd(flags))
	rootCmd.AddCommand(newSchemaCmd(flags))
	rootCmd.AddCommand(newRunCmd(flags))
	return rootCmd
}
