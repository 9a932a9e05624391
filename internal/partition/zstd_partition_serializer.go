package partition

import (
	"fmt"
	"io"

	"github.com/go-sif/frames"
	"github.com/klauspost/compress/zstd"
)

// ZstdPartitionSerializer is a partition serializer which uses the zstd compression algorithm
type ZstdPartitionSerializer struct{}

// NewZstdPartitionSerializer instantiates a new ZstdPartitionSerializer
func NewZstdPartitionSerializer() frames.PartitionSerializer {
	return &ZstdPartitionSerializer{}
}

// Compress serializes and compresses partition data to a write stream
func (zpc *ZstdPartitionSerializer) Compress(w io.Writer, part frames.Partition) error {
	buff, err := ToBytes(part)
	if err != nil {
		return err
	}
	compressor, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return err
	}
	if _, err := compressor.Write(buff); err != nil {
		compressor.Close()
		return err
	}
	return compressor.Close()
}

// Decompress decompresses and deserializes partition data from a read stream
func (zpc *ZstdPartitionSerializer) Decompress(r io.Reader, schema frames.Schema) (frames.OperablePartition, error) {
	decompressor, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer decompressor.Close()
	buff, err := io.ReadAll(decompressor)
	if err != nil {
		return nil, err
	}
	return FromBytes(buff, schema)
}

// NewSerializer returns the PartitionSerializer for a compression algorithm name ("lz4" or "zstd")
func NewSerializer(compression string) (frames.PartitionSerializer, error) {
	switch compression {
	case "", "lz4":
		return NewLZ4PartitionSerializer(), nil
	case "zstd":
		return NewZstdPartitionSerializer(), nil
	default:
		return nil, fmt.Errorf("Unknown partition compression %q", compression)
	}
}
