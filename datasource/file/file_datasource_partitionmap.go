package file

import "github.com/go-sif/frames"

// PartitionMap produces one PartitionLoader per matched file, in lexical order
type PartitionMap struct {
	files  []string
	next   int
	source *DataSource
}

// HasNext returns true iff there is another file to load
func (pm *PartitionMap) HasNext() bool {
	return pm.next < len(pm.files)
}

// Next returns the PartitionLoader for the next file
func (pm *PartitionMap) Next() frames.PartitionLoader {
	result := &PartitionLoader{path: pm.files[pm.next], source: pm.source}
	pm.next++
	return result
}
