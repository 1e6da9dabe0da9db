// SPDX-License-Identifier: MIT

package tilemap

import (
	"context"
	"testing"
)

// TestFilterWaterBodiesScenario6 reproduces spec §8 scenario 6: two water
// bodies of size 10 and 6000 with threshold 5000. The small body is zeroed,
// the large body is preserved, and non-water tiles are left untouched.
func TestFilterWaterBodiesScenario6(t *testing.T) {
	idx, err := NewContiguousIndexer(ContiguousIndexerConfig8)
	if err != nil {
		t.Fatal(err)
	}
	inWA, err := NewSparseWordArray(8)
	if err != nil {
		t.Fatal(err)
	}
	in := NewTileTypeWriter(inWA, idx)

	// Small body: a 10-tile line.
	for x := int32(0); x < 10; x++ {
		if err := in.SetTileType(x, 0, 0, 1); err != nil {
			t.Fatal(err)
		}
	}
	// Large body: an 80x75 = 6000 tile rectangle, offset from the line with a
	// dry gap in between.
	for x := int32(20); x < 100; x++ {
		for y := int32(0); y < 75; y++ {
			if err := in.SetTileType(x, y, 0, 1); err != nil {
				t.Fatal(err)
			}
		}
	}
	// A single untouched dry tile inside the scanned bounds.
	if err := in.SetTileType(15, 40, 0, 0); err != nil {
		t.Fatal(err)
	}

	inView := NewTileTypeMap(inWA, idx)

	outIdx, err := NewContiguousIndexer(ContiguousIndexerConfig8)
	if err != nil {
		t.Fatal(err)
	}
	outWA, err := NewSparseWordArray(8)
	if err != nil {
		t.Fatal(err)
	}
	out := NewTileTypeWriter(outWA, outIdx)

	bounds := Bounds{MinX: 0, MinY: 0, MaxX: 99, MaxY: 74, Plane: 0}
	if err := FilterWaterBodies(context.Background(), inView, bounds, 5000, out); err != nil {
		t.Fatal(err)
	}

	small, err := out.GetTileType(0, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if small != TileTypeNone {
		t.Errorf("small body tile (0,0) = %d after filtering, want TileTypeNone", small)
	}

	large, err := out.GetTileType(50, 40, 0)
	if err != nil {
		t.Fatal(err)
	}
	if large != 1 {
		t.Errorf("large body tile (50,40) = %d after filtering, want 1 (preserved)", large)
	}

	dry, err := out.GetTileType(15, 40, 0)
	if err != nil {
		t.Fatal(err)
	}
	if dry != TileTypeNone {
		t.Errorf("dry tile (15,40) = %d after filtering, want TileTypeNone (untouched)", dry)
	}
}

func TestFilterWaterBodiesEmptyBoundsIsNoop(t *testing.T) {
	idx, err := NewContiguousIndexer(ContiguousIndexerConfig8)
	if err != nil {
		t.Fatal(err)
	}
	inWA, err := NewSparseWordArray(8)
	if err != nil {
		t.Fatal(err)
	}
	in := NewTileTypeMap(inWA, idx)

	outWA, err := NewSparseWordArray(8)
	if err != nil {
		t.Fatal(err)
	}
	out := NewTileTypeWriter(outWA, idx)

	bounds := Bounds{MinX: 0, MinY: 0, MaxX: 9, MaxY: 9, Plane: 0}
	if err := FilterWaterBodies(context.Background(), in, bounds, 5000, out); err != nil {
		t.Fatal(err)
	}
	tt, err := out.GetTileType(0, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if tt != TileTypeNone {
		t.Errorf("GetTileType on an all-dry region = %d, want TileTypeNone", tt)
	}
}
