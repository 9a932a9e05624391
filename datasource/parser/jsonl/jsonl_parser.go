package jsonl

import (
	"bufio"
	"io"
	"log/slog"
	"sort"

	"github.com/go-sif/frames"
	"github.com/go-sif/frames/logging"
	"github.com/go-sif/frames/schema"
	"github.com/tidwall/gjson"
)

// ParserConf configures a JSONL Parser, suitable for JSON lines data
type ParserConf struct {
	PartitionSize int          // The maximum number of rows per Partition. Defaults to 128.
	MultiLine     bool         // Iff true, each file is a single JSON array of objects (or a sequence of objects) which may span lines.
	MaxBufferSize int          // Maximum size in bytes of the buffer used to read lines from the file
	SamplingRows  int          // The number of records examined by InferSchema. Defaults to 1000.
	Logger        *slog.Logger // Receives values which could not be parsed. Defaults to discarding them.
}

// Parser produces partitions from JSONL data
type Parser struct {
	conf *ParserConf
}

// CreateParser returns a new JSONL Parser. Columns are parsed lazily from each row of JSON using their column name,
// which is first treated as a top-level key, then as a gjson path. Values within the JSON which do not correspond to
// a Schema column are ignored.
func CreateParser(conf *ParserConf) *Parser {
	if conf.PartitionSize == 0 {
		conf.PartitionSize = 128
	}
	if conf.MaxBufferSize == 0 {
		conf.MaxBufferSize = bufio.MaxScanTokenSize
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

func (p *Parser) createRecordReader(r io.Reader) recordReader {
	if p.conf.MultiLine {
		return createMultiLineRecordReader(r)
	}
	return createLineRecordReader(r, p.conf.MaxBufferSize)
}

// InferSchema derives a Schema from the first SamplingRows records of a stream. Columns are the
// union of the records' top-level keys, in alphabetical order. Integral numbers are bigints, other
// numbers are doubles, arrays are typed by their elements and nested objects are kept as JSON strings.
func (p *Parser) InferSchema(r io.Reader) (frames.Schema, error) {
	reader := p.createRecordReader(r)
	colTypes := make(map[string]frames.ColumnType)
	for i := 0; i < p.conf.SamplingRows; i++ {
		record, err := reader.Next()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		if !record.IsObject() {
			continue
		}
		record.ForEach(func(key, value gjson.Result) bool {
			colTypes[key.String()] = schema.MergeColumnTypes(colTypes[key.String()], inferType(value))
			return true
		})
	}
	names := make([]string, 0, len(colTypes))
	for name := range colTypes {
		names = append(names, name)
	}
	sort.Strings(names)
	types := make([]frames.ColumnType, len(names))
	for i, name := range names {
		types[i] = finalizeType(colTypes[name])
	}
	return schema.FromColumns(names, types)
}

// CheckSchema accepts any Schema, since missing keys are null
func (p *Parser) CheckSchema(r io.Reader, s frames.Schema) error {
	return nil
}

// Parse parses JSONL data to produce Partitions
func (p *Parser) Parse(r io.Reader, source frames.DataSource, schema frames.Schema, onIteratorEnd func()) (frames.PartitionIterator, error) {
	iterator := &jsonlFilePartitionIterator{
		parser:       p,
		reader:       p.createRecordReader(r),
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
