package file

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-sif/frames"
	"github.com/go-sif/frames/datasource"
	errors "github.com/go-sif/frames/errors"
	"github.com/go-sif/frames/logging"
)

// DataSource is a set of files containing data which will be manipulated according to a DataFrame
type DataSource struct {
	glob   string
	schema frames.Schema
	logger *slog.Logger
}

// CreateDataFrame is a factory for DataSources. Files ending in .gz or .zst are decompressed
// as they are read. If schema is nil, it is inferred from the first matching file, which requires a frames.SchemaInferringParser. If a glob matches no files,
// an errors.SourceNotFoundError is returned. Failures to close files are reported to logger, which may be nil.
func CreateDataFrame(glob string, parser frames.DataSourceParser, schema frames.Schema, logger *slog.Logger) (frames.DataFrame, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	matches, err := match(glob)
	if err != nil {
		return nil, err
	}
	inferrer, canInfer := parser.(frames.SchemaInferringParser)
	if schema == nil && !canInfer {
		return nil, errors.SchemaMismatchError{Reason: "a schema is required for this parser"}
	}
	if canInfer {
		f, err := openFile(matches[0])
		if err != nil {
			return nil, err
		}
		defer f.Close()
		if schema == nil {
			schema, err = inferrer.InferSchema(f)
		} else {
			err = inferrer.CheckSchema(f, schema)
		}
		if err != nil {
			return nil, err
		}
	}
	source := &DataSource{glob, schema, logger}
	return datasource.CreateDataFrame(source, parser, schema), nil
}

func match(glob string) ([]string, error) {
	matches, err := filepath.Glob(glob)
	if err != nil {
		return nil, err
	}
	files := make([]string, 0, len(matches))
	for _, path := range matches {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			files = append(files, path)
		}
	}
	if len(files) == 0 {
		return nil, errors.SourceNotFoundError{Path: glob}
	}
	return files, nil
}

// Analyze returns a PartitionMap, describing how the source files will be divided into Partitions
func (fs *DataSource) Analyze() (frames.PartitionMap, error) {
	toRead, err := match(fs.glob)
	if err != nil {
		return nil, err
	}
	return &PartitionMap{
		files:  toRead,
		source: fs,
	}, nil
}

// IsStreaming returns true iff this DataSource provides a continuous stream of data
func (fs *DataSource) IsStreaming() bool {
	return false
}
