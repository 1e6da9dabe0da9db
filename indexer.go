// SPDX-License-Identifier: MIT

package tilemap

import (
	"fmt"
	"math/bits"
)

// indexerScheme selects how CoordIndexer.Pack lays out the coordinate and
// address bits of an index.
type indexerScheme uint8

const (
	// schemeFlagInterleaved keeps the address in the lowest bits of the index
	// and the x, y and plane fields above it at fixed shifts, so the
	// addresses of one tile sit at adjacent indices.
	schemeFlagInterleaved indexerScheme = iota
	// schemeContiguous keeps a tile's addresses in consecutive indices,
	// which is the layout that gives good cache locality.
	schemeContiguous
)

// IndexerConfig describes the bit layout of a CoordIndexer. It is a plain
// value type; presets below are just exported IndexerConfig literals.
type IndexerConfig struct {
	XBits, YBits, PlaneBits uint8
	XBase, YBase, PlaneBase int32
	AddressesPerCoord       uint32
	CapacityBits            uint8 // 31 or 32
}

// Standard presets, see spec §4.1.
var (
	// CollisionFlagIndexerConfig is the flag-interleaved layout used by the
	// collision map: 2 addresses (N, E) in the low bit, below the coordinate.
	CollisionFlagIndexerConfig = IndexerConfig{
		XBits: 14, YBits: 14, PlaneBits: 2,
		AddressesPerCoord: 2,
		CapacityBits:      31,
	}

	// ContiguousIndexerConfig2 is the cache-contiguous layout with 2
	// addresses per tile (collision N/E stored as a compact word array).
	ContiguousIndexerConfig2 = IndexerConfig{
		XBits: 12, XBase: 480, YBits: 14, PlaneBits: 2,
		AddressesPerCoord: 2,
		CapacityBits:      32,
	}

	// ContiguousIndexerConfig8 is the cache-contiguous layout with 8
	// addresses per tile, room for tile-type plus spare sub-slots.
	ContiguousIndexerConfig8 = IndexerConfig{
		XBits: 12, XBase: 480, YBits: 14, PlaneBits: 2,
		AddressesPerCoord: 8,
		CapacityBits:      32,
	}
)

// CoordIndexer packs (x, y, plane, addr) tuples into a non-negative index.
// It is an immutable value: With* methods return a modified copy.
type CoordIndexer struct {
	scheme   indexerScheme
	cfg      IndexerConfig
	addrBits uint8
	validate bool
}

// NewFlagIndexer builds a flag-interleaved CoordIndexer (spec §4.1 scheme 1).
func NewFlagIndexer(cfg IndexerConfig) (CoordIndexer, error) {
	return newIndexer(schemeFlagInterleaved, cfg)
}

// NewContiguousIndexer builds a cache-contiguous CoordIndexer (spec §4.1
// scheme 2).
func NewContiguousIndexer(cfg IndexerConfig) (CoordIndexer, error) {
	return newIndexer(schemeContiguous, cfg)
}

func newIndexer(scheme indexerScheme, cfg IndexerConfig) (CoordIndexer, error) {
	if cfg.CapacityBits != 31 && cfg.CapacityBits != 32 {
		return CoordIndexer{}, fmt.Errorf("%w: capacity_bits=%d, want 31 or 32", ErrInvalidConfiguration, cfg.CapacityBits)
	}
	coordBits := uint16(cfg.XBits) + uint16(cfg.YBits) + uint16(cfg.PlaneBits)
	if coordBits > uint16(cfg.CapacityBits) {
		return CoordIndexer{}, fmt.Errorf("%w: x_bits+y_bits+plane_bits=%d exceeds capacity_bits=%d", ErrInvalidConfiguration, coordBits, cfg.CapacityBits)
	}
	if cfg.AddressesPerCoord == 0 {
		return CoordIndexer{}, fmt.Errorf("%w: addresses_per_coord must be positive", ErrInvalidConfiguration)
	}
	maxAddresses := uint64(1) << (uint64(cfg.CapacityBits) - uint64(coordBits))
	if uint64(cfg.AddressesPerCoord) > maxAddresses {
		return CoordIndexer{}, fmt.Errorf("%w: addresses_per_coord=%d exceeds 2^(capacity_bits-coord_bits)=%d", ErrInvalidConfiguration, cfg.AddressesPerCoord, maxAddresses)
	}

	addrBits := uint8(bits.Len32(cfg.AddressesPerCoord - 1))
	if scheme == schemeFlagInterleaved {
		// The flag-interleaved scheme additionally needs room for the
		// address bits below the coordinate bits, or two different
		// addresses of the same tile would collide.
		if uint16(addrBits)+coordBits > uint16(cfg.CapacityBits) {
			return CoordIndexer{}, fmt.Errorf("%w: addr_bits+coord_bits=%d exceeds capacity_bits=%d", ErrInvalidConfiguration, uint16(addrBits)+coordBits, cfg.CapacityBits)
		}
	}

	return CoordIndexer{scheme: scheme, cfg: cfg, addrBits: addrBits}, nil
}

// WithValidationEnabled returns a copy of the indexer that rejects
// out-of-range input to Pack with ErrInvalidCoordinate.
func (c CoordIndexer) WithValidationEnabled() CoordIndexer {
	c.validate = true
	return c
}

// WithValidationDisabled returns a copy of the indexer that wraps
// out-of-range input instead of rejecting it: each coordinate offset is
// taken modulo 2^bits of its own field.
func (c CoordIndexer) WithValidationDisabled() CoordIndexer {
	c.validate = false
	return c
}

// MaxAddressIndex returns addresses_per_coord - 1.
func (c CoordIndexer) MaxAddressIndex() uint32 {
	return c.cfg.AddressesPerCoord - 1
}

// Pack packs (x, y, plane, addr) into an index. With validation enabled, it
// returns ErrInvalidCoordinate for inputs outside the configured range.
func (c CoordIndexer) Pack(x, y, plane int32, addr uint32) (uint32, error) {
	if c.validate {
		if err := c.validateCoord(x, y, plane, addr); err != nil {
			return 0, err
		}
	}
	fieldMask := func(width uint8) uint32 { return uint32(1)<<width - 1 }
	xOff := uint32(x-c.cfg.XBase) & fieldMask(c.cfg.XBits)
	yOff := uint32(y-c.cfg.YBase) & fieldMask(c.cfg.YBits)
	pOff := uint32(plane-c.cfg.PlaneBase) & fieldMask(c.cfg.PlaneBits)

	switch c.scheme {
	case schemeFlagInterleaved:
		shiftX := c.addrBits
		shiftY := shiftX + c.cfg.XBits
		shiftP := shiftY + c.cfg.YBits
		idx := addr | (xOff << shiftX) | (yOff << shiftY) | (pOff << shiftP)
		return idx, nil
	case schemeContiguous:
		packedCoord := (pOff << (c.cfg.XBits + c.cfg.YBits)) | (yOff << c.cfg.XBits) | xOff
		return packedCoord*c.cfg.AddressesPerCoord + addr, nil
	default:
		panic("tilemap: unknown indexer scheme")
	}
}

func (c CoordIndexer) validateCoord(x, y, plane int32, addr uint32) error {
	xMin := c.cfg.XBase + 2
	xMax := c.cfg.XBase + (int32(1)<<c.cfg.XBits - 1) - 2
	if x < xMin || x > xMax {
		return fmt.Errorf("%w: x=%d not in [%d, %d]", ErrInvalidCoordinate, x, xMin, xMax)
	}
	yMin := c.cfg.YBase + 2
	yMax := c.cfg.YBase + (int32(1)<<c.cfg.YBits - 1) - 2
	if y < yMin || y > yMax {
		return fmt.Errorf("%w: y=%d not in [%d, %d]", ErrInvalidCoordinate, y, yMin, yMax)
	}
	pMax := c.cfg.PlaneBase + (int32(1)<<c.cfg.PlaneBits - 1)
	if plane < c.cfg.PlaneBase || plane > pMax {
		return fmt.Errorf("%w: plane=%d not in [%d, %d]", ErrInvalidCoordinate, plane, c.cfg.PlaneBase, pMax)
	}
	if addr > c.cfg.AddressesPerCoord-1 {
		return fmt.Errorf("%w: addr=%d not in [0, %d]", ErrInvalidCoordinate, addr, c.cfg.AddressesPerCoord-1)
	}
	return nil
}
