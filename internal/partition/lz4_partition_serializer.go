package partition

import (
	"io"

	"github.com/go-sif/frames"
	"github.com/pierrec/lz4"
)

// LZ4PartitionSerializer is a partition serializer which uses the lz4 compression algorithm
type LZ4PartitionSerializer struct{}

// NewLZ4PartitionSerializer instantiates a new LZ4PartitionSerializer
func NewLZ4PartitionSerializer() frames.PartitionSerializer {
	return &LZ4PartitionSerializer{}
}

// Compress serializes and compresses partition data to a write stream
func (lz4pc *LZ4PartitionSerializer) Compress(w io.Writer, part frames.Partition) error {
	buff, err := ToBytes(part)
	if err != nil {
		return err
	}
	compressor := lz4.NewWriter(w)
	if _, err := compressor.Write(buff); err != nil {
		return err
	}
	return compressor.Close()
}

// Decompress decompresses and deserializes partition data from a read stream
func (lz4pc *LZ4PartitionSerializer) Decompress(r io.Reader, schema frames.Schema) (frames.OperablePartition, error) {
	buff, err := io.ReadAll(lz4.NewReader(r))
	if err != nil {
		return nil, err
	}
	return FromBytes(buff, schema)
}
