package integration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/go-sif/frames"
	"github.com/go-sif/frames/datasource/file"
	"github.com/go-sif/frames/datasource/parser/jsonl"
	ops "github.com/go-sif/frames/operations/transform"
	"github.com/go-sif/frames/schema"
	"github.com/go-sif/frames/session"
	"github.com/go-sif/frames/testing/frametest"
	"github.com/stretchr/testify/require"
)

func countOpenFiles(t *testing.T) int {
	entries, err := os.ReadDir("/proc/self/fd")
	require.Nil(t, err)
	return len(entries)
}

func createLargeFileDataFrame(t *testing.T) frames.DataFrame {
	var data strings.Builder
	for i := 0; i < 1000; i++ {
		fmt.Fprintf(&data, "{\"col1\": %d}\n", i)
	}
	path := filepath.Join(t.TempDir(), "numbers.json")
	require.Nil(t, os.WriteFile(path, []byte(data.String()), 0644))
	df, err := file.CreateDataFrame(path, jsonl.CreateParser(&jsonl.ParserConf{PartitionSize: 10}), schema.MustParse("col1 int"), nil)
	require.Nil(t, err)
	return df
}

func TestFailedRunsCloseFiles(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("open files are counted through /proc")
	}
	df := createLargeFileDataFrame(t)
	frame, err := df.To(mapOddErrors())
	require.Nil(t, err)

	before := countOpenFiles(t)
	for i := 0; i < 5; i++ {
		_, err := frametest.LocalRunFrame(context.Background(), frame, &session.Options{NumWorkers: 1, TempDir: t.TempDir()})
		require.NotNil(t, err)
	}
	require.LessOrEqual(t, countOpenFiles(t), before)
}

func TestCanceledRunsCloseFiles(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("open files are counted through /proc")
	}
	df := createLargeFileDataFrame(t)

	before := countOpenFiles(t)
	for i := 0; i < 5; i++ {
		ctx, cancel := context.WithCancel(context.Background())
		frame, err := df.To(ops.Map(func(row frames.Row) error {
			cancel()
			return nil
		}))
		require.Nil(t, err)
		_, err = frametest.LocalRunFrame(ctx, frame, &session.Options{NumWorkers: 1, TempDir: t.TempDir()})
		require.ErrorIs(t, err, context.Canceled)
		cancel()
	}
	require.LessOrEqual(t, countOpenFiles(t), before)
}
