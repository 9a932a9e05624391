package datasink

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/go-sif/frames"
	"github.com/go-sif/frames/datasource/memory"
	"github.com/go-sif/frames/datasource/parser/jsonl"
	"github.com/go-sif/frames/schema"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/reader"
	"github.com/xitongsys/parquet-go/writer"
)

// SchemaMetadataKey is the key of the Parquet file metadata entry holding the Schema of the written DataFrame, as DDL
const SchemaMetadataKey = "frames.schema"

// parquetRecord stores a single Row as a JSON document
type parquetRecord struct {
	Data string `parquet:"name=data_json, type=BYTE_ARRAY, convertedtype=UTF8"`
}

func compressionCodec(name string) (parquet.CompressionCodec, error) {
	switch strings.ToLower(name) {
	case "", "snappy":
		return parquet.CompressionCodec_SNAPPY, nil
	case "gzip":
		return parquet.CompressionCodec_GZIP, nil
	case "zstd":
		return parquet.CompressionCodec_ZSTD, nil
	case "none":
		return parquet.CompressionCodec_UNCOMPRESSED, nil
	}
	return 0, fmt.Errorf("Unknown parquet compression %q", name)
}

// WriteParquet materializes a DataFrame and writes it to a Parquet file at path. Each Row is
// stored as a JSON document, and the Schema is recorded in the file metadata so that
// ReadParquet can restore column types.
func WriteParquet(ctx context.Context, c Collector, df frames.DataFrame, path string, opts *Options) error {
	opts = defaultOptions(opts)
	codec, err := compressionCodec(opts.Compression)
	if err != nil {
		return err
	}
	rows, err := c.Collect(ctx, df)
	if err != nil {
		return err
	}
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return err
	}
	defer fw.Close()
	pw, err := writer.NewParquetWriter(fw, new(parquetRecord), 4)
	if err != nil {
		return err
	}
	pw.CompressionType = codec
	ddl := schema.ToDDL(df.GetSchema())
	pw.Footer.KeyValueMetadata = append(pw.Footer.KeyValueMetadata, &parquet.KeyValue{Key: SchemaMetadataKey, Value: &ddl})
	var buf []byte
	for _, row := range rows {
		if buf, err = encodeJSONRow(buf[:0], row); err != nil {
			return err
		}
		if err := pw.Write(&parquetRecord{Data: string(buf)}); err != nil {
			return err
		}
	}
	return pw.WriteStop()
}

// ReadParquet produces a DataFrame from a Parquet file written by WriteParquet. If the file
// carries no Schema metadata, the Schema is inferred from the stored documents.
func ReadParquet(path string, partitionSize int) (frames.DataFrame, error) {
	fr, err := local.NewLocalFileReader(path)
	if err != nil {
		return nil, err
	}
	defer fr.Close()
	pr, err := reader.NewParquetReader(fr, new(parquetRecord), 1)
	if err != nil {
		return nil, fmt.Errorf("failed to create Parquet reader: %w", err)
	}
	defer pr.ReadStop()

	var s frames.Schema
	for _, kv := range pr.Footer.KeyValueMetadata {
		if kv.Key == SchemaMetadataKey && kv.Value != nil {
			if s, err = schema.Parse(*kv.Value); err != nil {
				return nil, err
			}
		}
	}
	numRows := int(pr.GetNumRows())
	records := make([]parquetRecord, numRows)
	if numRows > 0 {
		if err := pr.Read(&records); err != nil {
			return nil, fmt.Errorf("failed to read Parquet rows: %w", err)
		}
	}
	var data bytes.Buffer
	for _, r := range records {
		data.WriteString(r.Data)
		data.WriteByte('\n')
	}
	parser := jsonl.CreateParser(&jsonl.ParserConf{PartitionSize: partitionSize})
	return memory.CreateDataFrame([][]byte{data.Bytes()}, parser, s)
}
