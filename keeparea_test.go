// SPDX-License-Identifier: MIT

package tilemap

import "testing"

func newBaselineAndWriter(t *testing.T) (*CollisionMap, *CollisionWriter) {
	t.Helper()
	idx, err := NewContiguousIndexer(ContiguousIndexerConfig2)
	if err != nil {
		t.Fatal(err)
	}
	baseWA, err := NewSparseWordArray(1)
	if err != nil {
		t.Fatal(err)
	}
	baseWriter := NewCollisionWriter(baseWA, idx, Blocking)
	baseline := NewCollisionMap(baseWA, idx, Blocking)

	if err := baseWriter.SetPathableNorth(500, 50, 0, true); err != nil {
		t.Fatal(err)
	}
	if err := baseWriter.SetPathableEast(500, 50, 0, true); err != nil {
		t.Fatal(err)
	}

	outWA, err := NewSparseWordArray(1)
	if err != nil {
		t.Fatal(err)
	}
	out := NewCollisionWriter(outWA, idx, Blocking)
	return baseline, out
}

func TestKeepAreasOverridesInsideRect(t *testing.T) {
	baseline, out := newBaselineAndWriter(t)

	ka, err := NewKeepAreas([]KeepAreaRect{
		{MinX: 490, MinY: 40, MaxX: 510, MaxY: 60, Plane: 0},
	})
	if err != nil {
		t.Fatal(err)
	}

	applied, err := ka.OverrideIfApplicable(out, baseline, 500, 50, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !applied {
		t.Fatal("OverrideIfApplicable = false for a point inside the rect, want true")
	}

	north, err := out.PathableNorth(500, 50, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !north {
		t.Error("out.PathableNorth(500,50,0) = false after override, want true (copied from baseline)")
	}
}

func TestKeepAreasSkipsOutsideRect(t *testing.T) {
	baseline, out := newBaselineAndWriter(t)

	ka, err := NewKeepAreas([]KeepAreaRect{
		{MinX: 490, MinY: 40, MaxX: 510, MaxY: 60, Plane: 0},
	})
	if err != nil {
		t.Fatal(err)
	}

	applied, err := ka.OverrideIfApplicable(out, baseline, 600, 100, 0)
	if err != nil {
		t.Fatal(err)
	}
	if applied {
		t.Error("OverrideIfApplicable = true for a point outside every rect, want false")
	}
}

func TestKeepAreasFiltersByPlane(t *testing.T) {
	baseline, out := newBaselineAndWriter(t)

	ka, err := NewKeepAreas([]KeepAreaRect{
		{MinX: 490, MinY: 40, MaxX: 510, MaxY: 60, Plane: 1},
	})
	if err != nil {
		t.Fatal(err)
	}

	applied, err := ka.OverrideIfApplicable(out, baseline, 500, 50, 0)
	if err != nil {
		t.Fatal(err)
	}
	if applied {
		t.Error("OverrideIfApplicable = true for a rect on a different plane, want false")
	}
}
