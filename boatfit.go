// SPDX-License-Identifier: MIT

package tilemap

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// requiredDirections returns which of the four cardinals must be pathable
// for a tile at an edge/corner/interior position of an area-check rectangle
// (spec §4.7, area check rule 3). A tile on no edge is interior and needs
// all four; a tile on one edge needs only the cardinal pointing inward; a
// corner tile (two edges) needs both inward cardinals.
func requiredDirections(isMinX, isMaxX, isMinY, isMaxY bool) (needN, needE, needS, needW bool) {
	if !isMinX && !isMaxX && !isMinY && !isMaxY {
		return true, true, true, true
	}
	if isMinX {
		needE = true
	}
	if isMaxX {
		needW = true
	}
	if isMinY {
		needN = true
	}
	if isMaxY {
		needS = true
	}
	return
}

// boatAreaCheck implements spec §4.7's three-part area check over
// [minX..maxX] x [minY..maxY] on one plane.
func boatAreaCheck(collision *CollisionMap, tileType *TileTypeMap, minX, maxX, minY, maxY, plane int32) (bool, error) {
	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			isWater, err := tileType.IsWater(x, y, plane)
			if err != nil {
				if errors.Is(err, ErrInvalidCoordinate) {
					return false, nil
				}
				return false, err
			}
			if !isWater {
				return false, nil
			}

			needN, needE, needS, needW := requiredDirections(x == minX, x == maxX, y == minY, y == maxY)
			checks := []struct {
				need bool
				fn   func(int32, int32, int32) (bool, error)
			}{
				{needN, collision.PathableNorth},
				{needE, collision.PathableEast},
				{needS, collision.PathableSouth},
				{needW, collision.PathableWest},
			}
			for _, c := range checks {
				if !c.need {
					continue
				}
				ok, err := c.fn(x, y, plane)
				if err != nil {
					if errors.Is(err, ErrInvalidCoordinate) {
						return false, nil
					}
					return false, err
				}
				if !ok {
					return false, nil
				}
			}
		}
	}
	return true, nil
}

// fitsBoatAt reports whether a boat of edge length n fits centered at
// (cx, cy, plane), per spec §4.7's odd/even fit predicate.
func fitsBoatAt(collision *CollisionMap, tileType *TileTypeMap, cx, cy, plane int32, n int) (bool, error) {
	half := int32(n / 2)
	if n%2 == 1 {
		return boatAreaCheck(collision, tileType, cx-half, cx+half, cy-half, cy+half, plane)
	}
	offsets := [4][2]int32{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	for _, off := range offsets {
		minX := cx - half + off[0]
		minY := cy - half + off[1]
		ok, err := boatAreaCheck(collision, tileType, minX, minX+int32(n)-1, minY, minY+int32(n)-1, plane)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// FitBoat computes a new collision map expressing boat-sized pathability:
// pathable_north(x,y,p) holds iff a boat of edge length boatSize can be
// centered at (x,y+1,p), and pathable_east(x,y,p) iff one fits centered at
// (x+1,y,p) (spec §4.7). Work is partitioned by x column: a shared cursor
// hands out columns to runtime.NumCPU() workers, mirroring the
// single-producer work-stealing split the builder commands use for their
// parallel stages, adapted here to a CPU-bound fan-out with no I/O to
// pipeline.
func FitBoat(ctx context.Context, collision *CollisionMap, tileType *TileTypeMap, region Bounds, boatSize int, out *CollisionWriter) error {
	if boatSize < 1 {
		return fmt.Errorf("%w: boat_size=%d must be >= 1", ErrInvalidConfiguration, boatSize)
	}

	g, ctx := errgroup.WithContext(ctx)
	cursor := int64(region.MinX)
	workers := runtime.NumCPU()
	if workers < 1 {
		workers = 1
	}

	for i := 0; i < workers; i++ {
		g.Go(func() error {
			for {
				if err := ctx.Err(); err != nil {
					return fmt.Errorf("%w: %v", ErrCancellationRequested, err)
				}
				x := int32(atomic.AddInt64(&cursor, 1) - 1)
				if x > region.MaxX {
					return nil
				}
				for y := region.MinY; y <= region.MaxY; y++ {
					north, err := fitsBoatAt(collision, tileType, x, y+1, region.Plane, boatSize)
					if err != nil {
						return err
					}
					if err := out.SetPathableNorth(x, y, region.Plane, north); err != nil {
						return err
					}
					east, err := fitsBoatAt(collision, tileType, x+1, y, region.Plane, boatSize)
					if err != nil {
						return err
					}
					if err := out.SetPathableEast(x, y, region.Plane, east); err != nil {
						return err
					}
				}
			}
		})
	}
	return g.Wait()
}
