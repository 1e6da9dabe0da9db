// SPDX-License-Identifier: MIT

package tilemap

import "io"

// Container is the common read/write contract shared by all three sparse
// backends (spec §4.2). Indices are non-negative and addressable up to
// 2^capacity_bits - 1; an unset index reads as 0.
type Container interface {
	// Get returns the value stored at i, or 0 if i was never set.
	Get(i uint32) uint64
	// Set stores v & ValueMask() at i, overwriting any previous value.
	Set(i uint32, v uint64)
	// ValueBits returns bits_per_value: 1 for the two bitmap-style backends,
	// the configured width for the word-array backend.
	ValueBits() uint8
}

// ValueMask returns the mask that Get/Set apply to values, derived from
// ValueBits.
func ValueMask(valueBits uint8) uint64 {
	if valueBits >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << valueBits) - 1
}

// FreezeSaver is implemented by containers that support the C6 persistence
// codec: Freeze applies any pre-save compaction (run-optimize for roaring,
// a no-op for the tree backends), WriteTo serializes in the backend's wire
// format.
type FreezeSaver interface {
	Container
	Freeze()
	WriteTo(w io.Writer) (int64, error)
}
