// SPDX-License-Identifier: MIT

package tilemap

import (
	"fmt"

	"github.com/dhconnelly/rtreego"
)

// KeepAreaRect is one static rectangle of the keep-area overlay (spec §4.9):
// a region where the authoritative baseline map's collision data should
// override whatever a freshly dumped map computed.
type KeepAreaRect struct {
	MinX, MinY, MaxX, MaxY int32
	Plane                  int32
}

// keepAreaSpatial adapts a KeepAreaRect to rtreego.Spatial. rtreego only
// indexes two dimensions (x, y); plane rides along as attached data and is
// checked after the spatial hit, since there is no native third dimension
// for this mixed-resolution coordinate space.
type keepAreaSpatial struct {
	rect   KeepAreaRect
	bounds *rtreego.Rect
}

func (k *keepAreaSpatial) Bounds() *rtreego.Rect {
	return k.bounds
}

// KeepAreas is a static spatial index of authoritative override rectangles
// (spec §4.9), built once and queried per tile during a dump pass.
type KeepAreas struct {
	tree *rtreego.Rtree
}

// NewKeepAreas builds a KeepAreas index from a fixed rectangle list.
func NewKeepAreas(rects []KeepAreaRect) (*KeepAreas, error) {
	tree := rtreego.NewTree(2, 25, 50)
	for _, rect := range rects {
		lengths := []float64{
			float64(rect.MaxX-rect.MinX) + 1,
			float64(rect.MaxY-rect.MinY) + 1,
		}
		bounds, err := rtreego.NewRect(rtreego.Point{float64(rect.MinX), float64(rect.MinY)}, lengths)
		if err != nil {
			return nil, fmt.Errorf("%w: keep-area rectangle %+v: %v", ErrInvalidConfiguration, rect, err)
		}
		tree.Insert(&keepAreaSpatial{rect: rect, bounds: bounds})
	}
	return &KeepAreas{tree: tree}, nil
}

// OverrideIfApplicable checks whether (x, y, p) lies in any configured
// rectangle; if so, it copies the baseline map's north and east bits into
// writer and returns true. Otherwise it returns false and leaves writer
// untouched.
func (k *KeepAreas) OverrideIfApplicable(writer *CollisionWriter, baseline *CollisionMap, x, y, p int32) (bool, error) {
	point, err := rtreego.NewRect(rtreego.Point{float64(x), float64(y)}, []float64{1, 1})
	if err != nil {
		return false, fmt.Errorf("%w: querying point (%d,%d): %v", ErrInvalidConfiguration, x, y, err)
	}
	for _, hit := range k.tree.SearchIntersect(point) {
		ka := hit.(*keepAreaSpatial)
		if ka.rect.Plane != p {
			continue
		}
		north, err := baseline.PathableNorth(x, y, p)
		if err != nil {
			return false, err
		}
		if err := writer.SetPathableNorth(x, y, p, north); err != nil {
			return false, err
		}
		east, err := baseline.PathableEast(x, y, p)
		if err != nil {
			return false, err
		}
		if err := writer.SetPathableEast(x, y, p, east); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}
