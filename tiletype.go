// SPDX-License-Identifier: MIT

package tilemap

// Tile type values, spec §4.5: 0 means no water, 1..12 are specific water
// variants (any value > 0 counts as water for boat fitting).
const (
	TileTypeNone     uint8 = 0
	MaxWaterTileType uint8 = 12
)

// TileTypeAddr is the single reserved address slot for tile-type maps.
const TileTypeAddr uint32 = 0

// TileTypeMap is the read-only facade over a frozen tile-type TileDataMap.
type TileTypeMap struct {
	data *TileDataMap
}

// NewTileTypeMap wraps a container as a read-only TileTypeMap.
func NewTileTypeMap(container Container, indexer CoordIndexer) *TileTypeMap {
	return &TileTypeMap{data: NewTileDataMap(container, indexer, 1)}
}

// GetTileType returns the tile type at (x, y, plane), or TileTypeNone if
// never set.
func (m *TileTypeMap) GetTileType(x, y, plane int32) (uint8, error) {
	return m.data.GetAllBits(x, y, plane)
}

// IsWater reports whether the tile at (x, y, plane) is any water variant.
func (m *TileTypeMap) IsWater(x, y, plane int32) (bool, error) {
	t, err := m.GetTileType(x, y, plane)
	if err != nil {
		return false, err
	}
	return t > TileTypeNone, nil
}

// TileTypeWriter is the read/write facade used while building a tile-type
// map.
type TileTypeWriter struct {
	TileTypeMap
}

// NewTileTypeWriter wraps a container as a TileTypeWriter.
func NewTileTypeWriter(container Container, indexer CoordIndexer) *TileTypeWriter {
	return &TileTypeWriter{TileTypeMap{data: NewTileDataMap(container, indexer, 1)}}
}

// SetTileType sets the tile type at (x, y, plane), storing the whole value
// in the TileTypeAddr slot.
func (w *TileTypeWriter) SetTileType(x, y, plane int32, t uint8) error {
	i, err := w.data.indexer.Pack(x, y, plane, TileTypeAddr)
	if err != nil {
		return err
	}
	w.data.container.Set(i, uint64(t))
	return nil
}
