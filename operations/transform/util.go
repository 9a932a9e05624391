package transform

import (
	"bytes"
	"encoding/binary"

	"github.com/go-sif/frames"
	"github.com/go-sif/frames/expr"
	"github.com/zeebo/xxh3"
)

// allRows flattens a series of Partitions into their Rows, in order
func allRows(parts []frames.OperablePartition) []frames.Row {
	total := 0
	for _, p := range parts {
		total += p.GetNumRows()
	}
	rows := make([]frames.Row, 0, total)
	for _, p := range parts {
		for i := 0; i < p.GetNumRows(); i++ {
			rows = append(rows, p.GetRow(i))
		}
	}
	return rows
}

// encodeKey produces an unambiguous byte encoding of several cells of a Row
func encodeKey(row frames.Row, offsets []int) []byte {
	var key []byte
	for _, idx := range offsets {
		v := row.GetAt(idx)
		if v == nil {
			key = binary.LittleEndian.AppendUint32(key, ^uint32(0))
			continue
		}
		enc := expr.HashBytes(v)
		key = binary.LittleEndian.AppendUint32(key, uint32(len(enc)))
		key = append(key, enc...)
	}
	return key
}

// keyedGroups buckets Rows by key, remembering the order in which keys were first seen.
// Keys are indexed by their xxh3 128-bit hash, and confirmed byte-for-byte.
type keyedGroups struct {
	index  map[xxh3.Uint128][]int
	keys   [][]byte
	groups [][]frames.Row
}

func createKeyedGroups() *keyedGroups {
	return &keyedGroups{index: make(map[xxh3.Uint128][]int)}
}

// find returns the position of the group for a key, or -1 if there is none
func (kg *keyedGroups) find(key []byte) (int, xxh3.Uint128) {
	hash := xxh3.Hash128(key)
	for _, g := range kg.index[hash] {
		if bytes.Equal(kg.keys[g], key) {
			return g, hash
		}
	}
	return -1, hash
}

// add appends a Row to the group for its key, returning true iff the group is new
func (kg *keyedGroups) add(key []byte, row frames.Row) bool {
	g, hash := kg.find(key)
	if g >= 0 {
		kg.groups[g] = append(kg.groups[g], row)
		return false
	}
	kg.index[hash] = append(kg.index[hash], len(kg.groups))
	kg.keys = append(kg.keys, key)
	kg.groups = append(kg.groups, []frames.Row{row})
	return true
}

// offsetsOf resolves column names to positions, failing on unknown columns
func offsetsOf(s frames.Schema, names []string) ([]int, error) {
	offsets := make([]int, len(names))
	for i, name := range names {
		col, err := s.GetOffset(name)
		if err != nil {
			return nil, err
		}
		offsets[i] = col.Index()
	}
	return offsets, nil
}

// allOffsets returns the position of every column of a Schema
func allOffsets(s frames.Schema) []int {
	offsets := make([]int, s.NumColumns())
	for i := range offsets {
		offsets[i] = i
	}
	return offsets
}

// mapping describes where each column of an outgoing Schema comes from within an incoming Row.
// -1 indicates a column which is always null.
type mapping []int

func (m mapping) isIdentity(incoming frames.Schema) bool {
	if len(m) != incoming.NumColumns() {
		return false
	}
	for i, src := range m {
		if src != i {
			return false
		}
	}
	return true
}

// reshape returns a ReshapeOperation which copies cells according to a mapping
func (m mapping) reshape() frames.ReshapeOperation {
	return func(row frames.Row, newRow frames.Row) error {
		for i, src := range m {
			if src >= 0 {
				newRow.SetAt(i, row.GetAt(src))
			}
		}
		return nil
	}
}

// singlePartition wraps a Partition, with its row errors, as a worker result
func singlePartition(part frames.OperablePartition, err error) ([]frames.OperablePartition, error) {
	if part == nil {
		return nil, err
	}
	return []frames.OperablePartition{part}, err
}
