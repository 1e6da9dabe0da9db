// SPDX-License-Identifier: MIT

package tilemap

import "testing"

func TestNewIndexerRejectsOversizedConfig(t *testing.T) {
	_, err := NewContiguousIndexer(IndexerConfig{
		XBits: 20, YBits: 20, PlaneBits: 2, AddressesPerCoord: 1, CapacityBits: 31,
	})
	if err == nil {
		t.Fatal("expected an error for x_bits+y_bits+plane_bits > capacity_bits")
	}
}

func TestNewIndexerRejectsTooManyAddresses(t *testing.T) {
	_, err := NewContiguousIndexer(IndexerConfig{
		XBits: 12, YBits: 14, PlaneBits: 2, AddressesPerCoord: 100, CapacityBits: 31,
	})
	if err == nil {
		t.Fatal("expected an error for addresses_per_coord too large for remaining capacity")
	}
}

func TestContiguousPackIsInjective(t *testing.T) {
	idx, err := NewContiguousIndexer(ContiguousIndexerConfig2)
	if err != nil {
		t.Fatal(err)
	}
	seen := make(map[uint32]struct{})
	for x := int32(480); x < 490; x++ {
		for y := int32(0); y < 10; y++ {
			for plane := int32(0); plane < 4; plane++ {
				for addr := uint32(0); addr < 2; addr++ {
					i, err := idx.Pack(x, y, plane, addr)
					if err != nil {
						t.Fatalf("Pack(%d,%d,%d,%d): %v", x, y, plane, addr, err)
					}
					if _, dup := seen[i]; dup {
						t.Fatalf("Pack(%d,%d,%d,%d) = %d collides with an earlier index", x, y, plane, addr, i)
					}
					seen[i] = struct{}{}
				}
			}
		}
	}
}

func TestFlagInterleavedPackIsInjective(t *testing.T) {
	idx, err := NewFlagIndexer(CollisionFlagIndexerConfig)
	if err != nil {
		t.Fatal(err)
	}
	seen := make(map[uint32]struct{})
	for x := int32(0); x < 10; x++ {
		for y := int32(0); y < 10; y++ {
			for plane := int32(0); plane < 4; plane++ {
				for addr := uint32(0); addr < 2; addr++ {
					i, err := idx.Pack(x, y, plane, addr)
					if err != nil {
						t.Fatalf("Pack(%d,%d,%d,%d): %v", x, y, plane, addr, err)
					}
					if _, dup := seen[i]; dup {
						t.Fatalf("Pack(%d,%d,%d,%d) = %d collides with an earlier index", x, y, plane, addr, i)
					}
					seen[i] = struct{}{}
				}
			}
		}
	}
}

func TestContiguousPackKeepsAddressesConsecutive(t *testing.T) {
	idx, err := NewContiguousIndexer(ContiguousIndexerConfig8)
	if err != nil {
		t.Fatal(err)
	}
	base, err := idx.Pack(600, 100, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	for addr := uint32(1); addr < 8; addr++ {
		i, err := idx.Pack(600, 100, 0, addr)
		if err != nil {
			t.Fatal(err)
		}
		if i != base+addr {
			t.Errorf("addr %d: got index %d, want %d", addr, i, base+addr)
		}
	}
}

func TestValidationRejectsOutOfRangeCoordinate(t *testing.T) {
	idx, err := NewContiguousIndexer(ContiguousIndexerConfig2)
	if err != nil {
		t.Fatal(err)
	}
	idx = idx.WithValidationEnabled()

	if _, err := idx.Pack(480, 0, 0, 0); err == nil {
		t.Error("expected ErrInvalidCoordinate for x at the base boundary (within the ±2 margin)")
	}
	if _, err := idx.Pack(600, 100, 0, 0); err != nil {
		t.Errorf("Pack(600,100,0,0) should be valid: %v", err)
	}
	if _, err := idx.Pack(600, 100, 0, 2); err == nil {
		t.Error("expected ErrInvalidCoordinate for addr=2 (AddressesPerCoord=2 means addr in {0,1})")
	}
}

func TestValidationDisabledWraps(t *testing.T) {
	idx, err := NewContiguousIndexer(ContiguousIndexerConfig2)
	if err != nil {
		t.Fatal(err)
	}
	// Validation is off by default; an out-of-range coordinate must not error.
	if _, err := idx.Pack(0, 0, 0, 0); err != nil {
		t.Errorf("expected no error with validation disabled, got %v", err)
	}
}

func TestMaxAddressIndex(t *testing.T) {
	idx, err := NewContiguousIndexer(ContiguousIndexerConfig8)
	if err != nil {
		t.Fatal(err)
	}
	if got := idx.MaxAddressIndex(); got != 7 {
		t.Errorf("MaxAddressIndex() = %d, want 7", got)
	}
}
