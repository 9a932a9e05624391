package datasource

import (
	"github.com/go-sif/frames"
	"github.com/go-sif/frames/internal/dataframe"
	"github.com/go-sif/frames/internal/partition"
)

// CreateDataFrame produces a fresh DataFrame (useful for the implementation of DataSources)
func CreateDataFrame(source frames.DataSource, parser frames.DataSourceParser, schema frames.Schema) frames.DataFrame {
	return dataframe.CreateDataFrame(source, parser, schema)
}

// CreateBuildablePartition produces an empty Partition (useful for the implementation of DataSourceParsers)
func CreateBuildablePartition(maxRows int, schema frames.Schema) frames.OperablePartition {
	return partition.CreatePartition(maxRows, schema)
}

// CreatePartitionIterator produces a PartitionIterator over a fixed slice of Partitions
func CreatePartitionIterator(parts []frames.OperablePartition) frames.PartitionIterator {
	return dataframe.CreatePartitionSliceIterator(parts)
}
