package model

import "fmt"

// Layer names used by the editor and the game client.
const (
	LayerBuilding  = "building"
	LayerItem      = "item"
	LayerMiddle    = "middle"
	LayerBottom    = "bottom"
	LayerLandscape = "landscape"
	LayerRoof      = "roof"
)

// LayerPrecedence is the order in which layers are consulted to find the
// tile occupying a cell. middle and bottom are kept for older maps.
var LayerPrecedence = [...]string{LayerBuilding, LayerItem, LayerMiddle, LayerBottom}

// Dimensions of every layer grid in a map.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Layer is a row-major grid of tile references (Layer[y][x]).
type Layer [][]TileRef

// At returns the reference at (x, y). Out-of-range or ragged rows yield the empty ref.
func (l Layer) At(x, y int) TileRef {
	if y < 0 || y >= len(l) {
		return TileRef{}
	}
	row := l[y]
	if x < 0 || x >= len(row) {
		return TileRef{}
	}
	return row[x]
}

// Level holds the named layers of one Z slice.
type Level map[string]Layer

// Map is the full layered world: levels keyed by Z.
type Map struct {
	Levels     map[int]Level `json:"levels"`
	Dimensions Dimensions    `json:"dimensions"`
}

// NewMap creates an empty map with the given dimensions.
func NewMap(width, height int) *Map {
	return &Map{
		Levels:     make(map[int]Level),
		Dimensions: Dimensions{Width: width, Height: height},
	}
}

// InBounds reports whether (x, y) lies inside the map dimensions.
func (m *Map) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.Dimensions.Width && y < m.Dimensions.Height
}

// Level returns the level at z, or nil when it does not exist.
func (m *Map) Level(z int) Level {
	if m == nil || m.Levels == nil {
		return nil
	}
	return m.Levels[z]
}

// TileAt returns the reference in the named layer at (x, y, z).
func (m *Map) TileAt(layer string, x, y, z int) TileRef {
	lvl := m.Level(z)
	if lvl == nil {
		return TileRef{}
	}
	return lvl[layer].At(x, y)
}

// SetTile places ref into the named layer, allocating the level and layer on demand.
func (m *Map) SetTile(layer string, c Coord, ref TileRef) error {
	if !m.InBounds(c.X, c.Y) {
		return fmt.Errorf("set tile %s: %v outside %dx%d", layer, c, m.Dimensions.Width, m.Dimensions.Height)
	}
	if m.Levels == nil {
		m.Levels = make(map[int]Level)
	}
	lvl := m.Levels[c.Z]
	if lvl == nil {
		lvl = make(Level)
		m.Levels[c.Z] = lvl
	}
	grid := lvl[layer]
	if grid == nil {
		grid = make(Layer, m.Dimensions.Height)
		for y := range grid {
			grid[y] = make([]TileRef, m.Dimensions.Width)
		}
		lvl[layer] = grid
	}
	grid[c.Y][c.X] = ref
	return nil
}

// Validate checks that every layer matches the map dimensions.
func (m *Map) Validate() error {
	if m.Dimensions.Width <= 0 || m.Dimensions.Height <= 0 {
		return fmt.Errorf("invalid dimensions %dx%d", m.Dimensions.Width, m.Dimensions.Height)
	}
	for z, lvl := range m.Levels {
		for name, layer := range lvl {
			if len(layer) == 0 {
				continue
			}
			if len(layer) != m.Dimensions.Height {
				return fmt.Errorf("level %d layer %s: %d rows, want %d", z, name, len(layer), m.Dimensions.Height)
			}
			for y, row := range layer {
				if len(row) != m.Dimensions.Width {
					return fmt.Errorf("level %d layer %s row %d: %d cells, want %d", z, name, y, len(row), m.Dimensions.Width)
				}
			}
		}
	}
	return nil
}
