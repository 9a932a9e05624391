package dsv

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"

	"github.com/go-sif/frames"
	errors "github.com/go-sif/frames/errors"
	"github.com/go-sif/frames/logging"
	"github.com/go-sif/frames/schema"
)

// ParserConf configures a DSV Parser
type ParserConf struct {
	PartitionSize int          // The maximum number of rows per Partition. Defaults to 128.
	Header        bool         // Iff true, the first line of each file holds column names rather than data.
	Delimiter     rune         // The delimiter separating columns in the file. Defaults to ,
	Comment       rune         // Lines beginning with the comment character are ignored. Cannot be equal to the Delimiter. Defaults to no comment character.
	NilValue      string       // A special string which represents nil values in the dataset. Empty fields are always nil.
	InferSchema   bool         // Iff true, InferSchema guesses column types from the data. Otherwise every column is a string.
	SamplingRows  int          // The number of rows examined by InferSchema. Defaults to 1000.
	Logger        *slog.Logger // Receives values which could not be parsed. Defaults to discarding them.
}

// Parser produces partitions from DSV data
type Parser struct {
	conf *ParserConf
}

// CreateParser returns a new DSV Parser
func CreateParser(conf *ParserConf) *Parser {
	if conf.PartitionSize == 0 {
		conf.PartitionSize = 128
	}
	if conf.Delimiter == 0 {
		conf.Delimiter = ','
	}
	if conf.SamplingRows == 0 {
		conf.SamplingRows = 1000
	}
	if conf.Logger == nil {
		conf.Logger = logging.Discard()
	}
	return &Parser{conf: conf}
}

// PartitionSize returns the maximum size in rows of Partitions produced by this Parser
func (p *Parser) PartitionSize() int {
	return p.conf.PartitionSize
}

func (p *Parser) createReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(skipBOM(r))
	reader.Comma = p.conf.Delimiter
	reader.Comment = p.conf.Comment
	reader.FieldsPerRecord = -1 // short rows are padded with nulls, long rows truncated
	reader.LazyQuotes = true
	reader.ReuseRecord = true
	return reader
}

// InferSchema derives a Schema from the header (if configured) and the first SamplingRows
// records of a stream. Without a header, columns are named _c0, _c1, etc.
func (p *Parser) InferSchema(r io.Reader) (frames.Schema, error) {
	reader := p.createReader(r)
	var names []string
	if p.conf.Header {
		header, err := reader.Read()
		if err == io.EOF {
			return schema.CreateSchema(), nil
		} else if err != nil {
			return nil, err
		}
		names = headerNames(header)
	}
	var samples [][]string
	for i := 0; i < p.conf.SamplingRows; i++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		if names == nil {
			names = defaultNames(len(record))
		}
		if samples == nil {
			samples = make([][]string, len(names))
		}
		for j := range names {
			if j < len(record) && record[j] != p.conf.NilValue {
				samples[j] = append(samples[j], record[j])
			}
		}
	}
	types := make([]frames.ColumnType, len(names))
	for j := range names {
		if p.conf.InferSchema && samples != nil {
			types[j] = schema.InferColumnType(samples[j])
		} else {
			types[j] = &frames.StringColumnType{}
		}
	}
	return schema.FromColumns(names, types)
}

// CheckSchema returns an errors.SchemaMismatchError iff the first record of a stream
// does not have exactly one field per column of schema
func (p *Parser) CheckSchema(r io.Reader, s frames.Schema) error {
	record, err := p.createReader(r).Read()
	if err == io.EOF {
		return nil
	} else if err != nil {
		return err
	}
	if len(record) != s.NumColumns() {
		return errors.SchemaMismatchError{
			Reason: fmt.Sprintf("the schema has %d columns, but the data has %d fields", s.NumColumns(), len(record)),
		}
	}
	return nil
}

// Parse parses DSV data to produce Partitions
func (p *Parser) Parse(r io.Reader, source frames.DataSource, schema frames.Schema, onIteratorEnd func()) (frames.PartitionIterator, error) {
	// start parsing by creating a reader
	reader := p.createReader(r)

	// ignore the header, if configured to do so
	if p.conf.Header {
		_, err := reader.Read()
		if err != nil && err != io.EOF {
			return nil, err
		}
	}

	iterator := &dsvFilePartitionIterator{
		parser:       p,
		reader:       reader,
		hasNext:      true,
		source:       source,
		schema:       schema,
		endListeners: []func(){},
	}
	if onIteratorEnd != nil {
		iterator.OnEnd(onIteratorEnd)
	}
	return iterator, nil
}
