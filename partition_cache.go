package frames

// A PartitionCache stores Partitions by key, spilling them out of memory as necessary.
// A PartitionCache is safe for concurrent use.
type PartitionCache interface {
	Add(key string, value OperablePartition) error       // Add stores a Partition under a key, replacing any existing Partition
	Get(key string) (value OperablePartition, err error) // Get retrieves a Partition without removing it. Returns an error if it isn't present.
	Has(key string) bool                                 // Has returns true iff a Partition is stored under the key
	CurrentSize() int                                    // CurrentSize returns the number of Partitions held in memory
	Destroy()                                            // Destroy removes all stored Partitions, including any spilled to disk
}
