package frames

// An Accumulator is an alternative reduction technique, which siphons data from
// Partitions into a custom data structure. The result is itself an Accumulator,
// rather than a series of Partitions, thus ending the job (no more operations may
// be performed against the data). Each Partition is accumulated separately, and the
// per-Partition Accumulators are then merged in Partition order.
type Accumulator interface {
	Accumulate(row Row) error  // Accumulate adds a row to this Accumulator
	Merge(o Accumulator) error // Merge merges another Accumulator into this one
	Value() interface{}        // Value returns the current result of this Accumulator, or nil if there is none
}
