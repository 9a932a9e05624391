package memory

import (
	"bytes"
	"fmt"

	"github.com/go-sif/frames"
	"github.com/go-sif/frames/datasource"
	errors "github.com/go-sif/frames/errors"
)

// DataSource is a set of buffers, or a set of Go values, containing data which will be manipulated according to a DataFrame
type DataSource struct {
	data          [][]byte
	rows          [][]interface{}
	partitionSize int
	schema        frames.Schema
}

// CreateDataFrame is a factory for DataSources which parse in-memory buffers. If schema is nil,
// it is inferred from the first buffer, which requires a frames.SchemaInferringParser.
func CreateDataFrame(data [][]byte, parser frames.DataSourceParser, schema frames.Schema) (frames.DataFrame, error) {
	inferrer, canInfer := parser.(frames.SchemaInferringParser)
	if schema == nil && !canInfer {
		return nil, errors.SchemaMismatchError{Reason: "a schema is required for this parser"}
	}
	if canInfer && len(data) > 0 {
		var err error
		if schema == nil {
			schema, err = inferrer.InferSchema(bytes.NewReader(data[0]))
		} else {
			err = inferrer.CheckSchema(bytes.NewReader(data[0]), schema)
		}
		if err != nil {
			return nil, err
		}
	}
	if schema == nil {
		return nil, errors.SchemaMismatchError{Reason: "cannot infer a schema without data"}
	}
	source := &DataSource{data: data, schema: schema}
	return datasource.CreateDataFrame(source, parser, schema), nil
}

// CreateRowDataFrame is a factory for DataSources which hold Go values. Each row must have
// one value per column, convertible to the column's type. Rows are divided into Partitions
// of at most partitionSize rows.
func CreateRowDataFrame(rows [][]interface{}, schema frames.Schema, partitionSize int) (frames.DataFrame, error) {
	colTypes := schema.ColumnTypes()
	colNames := schema.ColumnNames()
	coerced := make([][]interface{}, len(rows))
	for i, row := range rows {
		if len(row) != len(colTypes) {
			return nil, errors.SchemaMismatchError{
				Reason: fmt.Sprintf("row %d has %d values, but the schema has %d columns", i, len(row), len(colTypes)),
			}
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			cv, err := frames.CoerceValue(colTypes[j], v)
			if err != nil {
				return nil, errors.SchemaMismatchError{Reason: fmt.Sprintf("row %d, column %s: %s", i, colNames[j], err.Error())}
			}
			values[j] = cv
		}
		coerced[i] = values
	}
	if partitionSize < 1 {
		partitionSize = 128
	}
	source := &DataSource{rows: coerced, partitionSize: partitionSize, schema: schema}
	return datasource.CreateDataFrame(source, nil, schema), nil
}

// Analyze returns a PartitionMap, describing how the source data will be divided into Partitions
func (fs *DataSource) Analyze() (frames.PartitionMap, error) {
	return &PartitionMap{
		source: fs,
	}, nil
}

// IsStreaming returns true iff this DataSource provides a continuous stream of data
func (fs *DataSource) IsStreaming() bool {
	return false
}
