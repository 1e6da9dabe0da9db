// SPDX-License-Identifier: MIT

package tilemap

// Semantics selects which convention a CollisionMap's raw bits follow (spec
// §4.4, §9 OQ3): two external data sources disagree on whether a set bit
// means "pathable" or "blocked".
type Semantics uint8

const (
	// Blocking is the default internal build convention: a set bit means
	// the direction is blocked.
	Blocking Semantics = iota
	// Walkable means a set bit means the direction is pathable.
	Walkable
)

// Collision address slots, spec §4.4.
const (
	AddrNorth uint32 = 0
	AddrEast  uint32 = 1
)

// All() bit layout, spec §4.4.
const (
	BitNW uint8 = 1 << 0
	BitN  uint8 = 1 << 1
	BitNE uint8 = 1 << 2
	BitW  uint8 = 1 << 3
	BitE  uint8 = 1 << 4
	BitSW uint8 = 1 << 5
	BitS  uint8 = 1 << 6
	BitSE uint8 = 1 << 7

	// DirNone is the sentinel returned by All when every cardinal is
	// unpathable.
	DirNone uint8 = 0
)

// FullBlocking bit layout for CollisionWriter.SetFullBlocking.
const (
	FullBlockNorth uint8 = 1 << 0
	FullBlockEast  uint8 = 1 << 1
	FullBlockSouth uint8 = 1 << 2
	FullBlockWest  uint8 = 1 << 3
)

type collisionCore struct {
	data      *TileDataMap
	semantics Semantics
}

func rawFromBlocked(semantics Semantics, blocked bool) bool {
	if semantics == Blocking {
		return blocked
	}
	return !blocked
}

func (c *collisionCore) rawBit(x, y, plane int32, addr uint32) (bool, error) {
	return c.data.IsBitSet(x, y, plane, addr)
}

func (c *collisionCore) toPathable(raw bool) bool {
	if c.semantics == Walkable {
		return raw
	}
	return !raw
}

// PathableNorth reports whether the north edge of (x, y, plane) is pathable.
func (c *collisionCore) PathableNorth(x, y, plane int32) (bool, error) {
	raw, err := c.rawBit(x, y, plane, AddrNorth)
	if err != nil {
		return false, err
	}
	return c.toPathable(raw), nil
}

// PathableEast reports whether the east edge of (x, y, plane) is pathable.
func (c *collisionCore) PathableEast(x, y, plane int32) (bool, error) {
	raw, err := c.rawBit(x, y, plane, AddrEast)
	if err != nil {
		return false, err
	}
	return c.toPathable(raw), nil
}

// PathableSouth is derived from the southern neighbor's north bit (spec §9
// OQ2: a single derivation path, no per-call-site override).
func (c *collisionCore) PathableSouth(x, y, plane int32) (bool, error) {
	return c.PathableNorth(x, y-1, plane)
}

// PathableWest is derived from the western neighbor's east bit.
func (c *collisionCore) PathableWest(x, y, plane int32) (bool, error) {
	return c.PathableEast(x-1, y, plane)
}

// IsBlocked reports whether all four cardinals are unpathable.
func (c *collisionCore) IsBlocked(x, y, plane int32) (bool, error) {
	n, err := c.PathableNorth(x, y, plane)
	if err != nil {
		return false, err
	}
	e, err := c.PathableEast(x, y, plane)
	if err != nil {
		return false, err
	}
	s, err := c.PathableSouth(x, y, plane)
	if err != nil {
		return false, err
	}
	w, err := c.PathableWest(x, y, plane)
	if err != nil {
		return false, err
	}
	return !n && !e && !s && !w, nil
}

// All returns the packed 8-way walkability flags for (x, y, plane), per the
// formulae in spec §4.4. If all four cardinals are unpathable, it returns
// DirNone.
func (c *collisionCore) All(x, y, plane int32) (uint8, error) {
	n, err := c.PathableNorth(x, y, plane)
	if err != nil {
		return 0, err
	}
	e, err := c.PathableEast(x, y, plane)
	if err != nil {
		return 0, err
	}
	s, err := c.PathableSouth(x, y, plane)
	if err != nil {
		return 0, err
	}
	w, err := c.PathableWest(x, y, plane)
	if err != nil {
		return 0, err
	}
	if !n && !e && !s && !w {
		return DirNone, nil
	}

	var result uint8
	if n {
		result |= BitN
	}
	if e {
		result |= BitE
	}
	if s {
		result |= BitS
	}
	if w {
		result |= BitW
	}

	if n && e {
		eNorth, err := c.PathableEast(x, y+1, plane)
		if err != nil {
			return 0, err
		}
		nEast, err := c.PathableNorth(x+1, y, plane)
		if err != nil {
			return 0, err
		}
		if eNorth && nEast {
			result |= BitNE
		}
	}
	if n && w {
		wNorth, err := c.PathableWest(x, y+1, plane)
		if err != nil {
			return 0, err
		}
		nWest, err := c.PathableNorth(x-1, y, plane)
		if err != nil {
			return 0, err
		}
		if wNorth && nWest {
			result |= BitNW
		}
	}
	if s && e {
		eSouth, err := c.PathableEast(x, y-1, plane)
		if err != nil {
			return 0, err
		}
		sEast, err := c.PathableSouth(x+1, y, plane)
		if err != nil {
			return 0, err
		}
		if eSouth && sEast {
			result |= BitSE
		}
	}
	if s && w {
		wSouth, err := c.PathableWest(x, y-1, plane)
		if err != nil {
			return 0, err
		}
		sWest, err := c.PathableSouth(x-1, y, plane)
		if err != nil {
			return 0, err
		}
		if wSouth && sWest {
			result |= BitSW
		}
	}
	return result, nil
}

// CollisionMap is the read-only facade over a frozen collision TileDataMap.
type CollisionMap struct {
	collisionCore
}

// NewCollisionMap wraps a container as a read-only CollisionMap.
func NewCollisionMap(container Container, indexer CoordIndexer, semantics Semantics) *CollisionMap {
	return &CollisionMap{collisionCore{data: NewTileDataMap(container, indexer, 2), semantics: semantics}}
}

// CollisionWriter is the read/write facade used while building a collision
// map. Its Set* operations are synchronized-equivalent (spec §4.4): safe for
// concurrent callers when backed by a mutex-protected or per-word-atomic
// Container.
type CollisionWriter struct {
	collisionCore
}

// NewCollisionWriter wraps a container as a CollisionWriter.
func NewCollisionWriter(container Container, indexer CoordIndexer, semantics Semantics) *CollisionWriter {
	return &CollisionWriter{collisionCore{data: NewTileDataMap(container, indexer, 2), semantics: semantics}}
}

func (w *CollisionWriter) setRaw(x, y, plane int32, addr uint32, raw bool) error {
	if raw {
		return w.data.SetBit(x, y, plane, addr)
	}
	return w.data.ClearBit(x, y, plane, addr)
}

// SetNorthBlocking sets whether the north edge of (x, y, plane) is blocked.
func (w *CollisionWriter) SetNorthBlocking(x, y, plane int32, blocked bool) error {
	return w.setRaw(x, y, plane, AddrNorth, rawFromBlocked(w.semantics, blocked))
}

// SetEastBlocking sets whether the east edge of (x, y, plane) is blocked.
func (w *CollisionWriter) SetEastBlocking(x, y, plane int32, blocked bool) error {
	return w.setRaw(x, y, plane, AddrEast, rawFromBlocked(w.semantics, blocked))
}

// SetSouthBlocking sets whether the south edge of (x, y, plane) is blocked,
// by writing the southern neighbor's north bit (S(x,y) = N(x,y-1)).
func (w *CollisionWriter) SetSouthBlocking(x, y, plane int32, blocked bool) error {
	return w.setRaw(x, y-1, plane, AddrNorth, rawFromBlocked(w.semantics, blocked))
}

// SetWestBlocking sets whether the west edge of (x, y, plane) is blocked, by
// writing the western neighbor's east bit (W(x,y) = E(x-1,y)).
func (w *CollisionWriter) SetWestBlocking(x, y, plane int32, blocked bool) error {
	return w.setRaw(x-1, y, plane, AddrEast, rawFromBlocked(w.semantics, blocked))
}

// SetFullBlocking sets all four edges at once from a FullBlock* bitmask.
func (w *CollisionWriter) SetFullBlocking(x, y, plane int32, blockedMask uint8) error {
	if err := w.SetNorthBlocking(x, y, plane, blockedMask&FullBlockNorth != 0); err != nil {
		return err
	}
	if err := w.SetEastBlocking(x, y, plane, blockedMask&FullBlockEast != 0); err != nil {
		return err
	}
	if err := w.SetSouthBlocking(x, y, plane, blockedMask&FullBlockSouth != 0); err != nil {
		return err
	}
	return w.SetWestBlocking(x, y, plane, blockedMask&FullBlockWest != 0)
}

// SetPathableNorth sets whether the north edge of (x, y, plane) is pathable,
// the inverse-convention setter for the walkability variant (spec §4.4).
func (w *CollisionWriter) SetPathableNorth(x, y, plane int32, pathable bool) error {
	return w.SetNorthBlocking(x, y, plane, !pathable)
}

// SetPathableEast sets whether the east edge of (x, y, plane) is pathable.
func (w *CollisionWriter) SetPathableEast(x, y, plane int32, pathable bool) error {
	return w.SetEastBlocking(x, y, plane, !pathable)
}

// SetPathableSouth sets whether the south edge of (x, y, plane) is pathable.
func (w *CollisionWriter) SetPathableSouth(x, y, plane int32, pathable bool) error {
	return w.SetSouthBlocking(x, y, plane, !pathable)
}

// SetPathableWest sets whether the west edge of (x, y, plane) is pathable.
func (w *CollisionWriter) SetPathableWest(x, y, plane int32, pathable bool) error {
	return w.SetWestBlocking(x, y, plane, !pathable)
}
