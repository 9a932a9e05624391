package file

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-sif/frames"
	errors "github.com/go-sif/frames/errors"
	"github.com/hashicorp/go-multierror"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// PartitionLoader is capable of loading partitions of data from a file
type PartitionLoader struct {
	path   string
	source *DataSource
}

// ToString returns a string representation of this PartitionLoader
func (pl *PartitionLoader) ToString() string {
	return fmt.Sprintf("File loader filename: %s", pl.path)
}

// Load opens a file and hands it to a parser, which closes it once its Partitions are exhausted or abandoned
func (pl *PartitionLoader) Load(parser frames.DataSourceParser, schema frames.Schema) (frames.PartitionIterator, error) {
	r, err := openFile(pl.path)
	if err != nil {
		return nil, err
	}
	pi, err := parser.Parse(r, pl.source, schema, func() {
		if err := r.Close(); err != nil {
			pl.source.logger.Warn("couldn't close file", slog.String("path", pl.path), slog.Any("error", err))
		}
	})
	if err != nil {
		r.Close()
		return nil, err
	}
	return pi, nil
}

// fileReader reads a file through zero or more decompressors
type fileReader struct {
	io.Reader
	closers []func() error
}

// Close closes decompressors before the file beneath them
func (fr *fileReader) Close() error {
	var multierr *multierror.Error
	for i := len(fr.closers) - 1; i >= 0; i-- {
		if err := fr.closers[i](); err != nil {
			multierr = multierror.Append(multierr, err)
		}
	}
	return multierr.ErrorOrNil()
}

// openFile opens a file for reading, transparently decompressing
// files with a .gz or .zst extension
func openFile(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.SourceNotFoundError{Path: path}
	} else if err != nil {
		return nil, err
	}
	fr := &fileReader{Reader: f, closers: []func() error{f.Close}}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		zr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("Unable to decompress %s: %w", path, err)
		}
		fr.Reader = zr
		fr.closers = append(fr.closers, zr.Close)
	case ".zst":
		zr, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("Unable to decompress %s: %w", path, err)
		}
		fr.Reader = zr
		fr.closers = append(fr.closers, func() error {
			zr.Close()
			return nil
		})
	}
	return fr, nil
}
