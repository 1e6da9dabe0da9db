// SPDX-License-Identifier: MIT

package tilemap

import (
	"fmt"
	"io"
	"sync"

	"github.com/RoaringBitmap/roaring"
)

// RoaringContainer is the C2.1 backend: a compressed bitmap over uint32
// indices, one bit per addressable (coord, addr). It interoperates at the
// bit level with github.com/RoaringBitmap/roaring's on-disk format, so files
// written by other Roaring implementations remain readable.
//
// Concurrent writers share one mutex (spec §5): the roaring container has no
// per-word structure to shard writes across.
type RoaringContainer struct {
	mu sync.Mutex
	bm *roaring.Bitmap
}

// NewRoaringContainer returns an empty RoaringContainer.
func NewRoaringContainer() *RoaringContainer {
	return &RoaringContainer{bm: roaring.NewBitmap()}
}

// Get returns 1 if i is set, 0 otherwise.
func (c *RoaringContainer) Get(i uint32) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.bm.Contains(i) {
		return 1
	}
	return 0
}

// Set adds or removes i depending on the low bit of v.
func (c *RoaringContainer) Set(i uint32, v uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v&1 != 0 {
		c.bm.Add(i)
	} else {
		c.bm.Remove(i)
	}
}

// ValueBits is always 1 for the roaring backend.
func (c *RoaringContainer) ValueBits() uint8 { return 1 }

// Freeze applies a run-optimize pass, collapsing dense runs before save.
func (c *RoaringContainer) Freeze() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bm.RunOptimize()
}

// WriteTo serializes the bitmap in its canonical Roaring wire format.
func (c *RoaringContainer) WriteTo(w io.Writer) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bm.WriteTo(w)
}

// ReadRoaringContainer deserializes a RoaringContainer previously written by
// WriteTo (or by any other Roaring-spec-compliant implementation).
func ReadRoaringContainer(r io.Reader) (*RoaringContainer, error) {
	bm := roaring.NewBitmap()
	if _, err := bm.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptData, err)
	}
	return &RoaringContainer{bm: bm}, nil
}
