package session

import (
	"fmt"
	"strings"

	"github.com/go-sif/frames"
	"github.com/go-sif/frames/datasource/file"
	"github.com/go-sif/frames/datasource/parser/dsv"
	"github.com/go-sif/frames/datasource/parser/jsonl"
	"github.com/go-sif/frames/schema"
)

// Supported source formats
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// ReadOptions configure Session.Read
type ReadOptions struct {
	Format        string        // "csv" (default) or "json"
	Header        bool          // csv: treat the first line of each file as column names
	InferSchema   bool          // csv: infer column types by sampling. json always infers types.
	MultiLine     bool          // json: each file holds an array of objects, rather than one object per line
	Schema        frames.Schema // overrides inference, if provided
	SchemaDDL     string        // a Schema as a DDL string, such as "id int, name string". Ignored if Schema is provided.
	Delimiter     rune          // csv: the field delimiter. Defaults to ','.
	NullValue     string        // csv: a string which represents null, in addition to the empty string
	SamplingRows  int           // the number of records sampled for inference. Defaults to 1000.
	PartitionSize int           // the maximum number of rows per Partition. Defaults to 128.
}

// Read produces a DataFrame from the files matching a glob
func (s *Session) Read(path string, opts *ReadOptions) (frames.DataFrame, error) {
	if opts == nil {
		opts = &ReadOptions{}
	}
	sch := opts.Schema
	if sch == nil && len(opts.SchemaDDL) > 0 {
		var err error
		if sch, err = schema.Parse(opts.SchemaDDL); err != nil {
			return nil, err
		}
	}
	var parser frames.DataSourceParser
	switch strings.ToLower(opts.Format) {
	case "", FormatCSV:
		parser = dsv.CreateParser(&dsv.ParserConf{
			PartitionSize: opts.PartitionSize,
			Header:        opts.Header,
			Delimiter:     opts.Delimiter,
			NilValue:      opts.NullValue,
			InferSchema:   opts.InferSchema,
			SamplingRows:  opts.SamplingRows,
			Logger:        s.opts.Logger,
		})
	case FormatJSON:
		parser = jsonl.CreateParser(&jsonl.ParserConf{
			PartitionSize: opts.PartitionSize,
			MultiLine:     opts.MultiLine,
			SamplingRows:  opts.SamplingRows,
			Logger:        s.opts.Logger,
		})
	default:
		return nil, fmt.Errorf("Unsupported format %q", opts.Format)
	}
	return file.CreateDataFrame(path, parser, sch, s.opts.Logger)
}
