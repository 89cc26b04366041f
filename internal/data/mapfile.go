package data

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/udisondev/wasteland/internal/model"
)

// mapFile is the map editor export.
type mapFile struct {
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	Levels     map[int]model.Level `json:"levels"`
	Dimensions *model.Dimensions   `json:"dimensions"`
	Width      int                 `json:"width"`
	Height     int                 `json:"height"`
	StartPos   *model.Coord        `json:"startPos"`

	// Layers is the single-level format used before levels existed.
	Layers model.Level `json:"layers"`
}

// MapInfo carries the editor metadata that is not part of the grid.
type MapInfo struct {
	ID       string
	Name     string
	StartPos model.Coord
}

// LoadMap reads an editor map export.
func LoadMap(path string) (*model.Map, MapInfo, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, MapInfo{}, fmt.Errorf("reading map %s: %w", path, err)
	}

	m, info, err := ParseMap(raw)
	if err != nil {
		return nil, MapInfo{}, fmt.Errorf("map %s: %w", path, err)
	}

	slog.Info("loaded map",
		"path", path,
		"id", info.ID,
		"levels", len(m.Levels),
		"width", m.Dimensions.Width,
		"height", m.Dimensions.Height)
	return m, info, nil
}

// ParseMap decodes and validates an editor map export.
//
// Dimensions come from the "dimensions" object when present, otherwise from
// the largest layer grid, otherwise from top-level width/height.
func ParseMap(raw []byte) (*model.Map, MapInfo, error) {
	var f mapFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, MapInfo{}, fmt.Errorf("decoding json: %w", err)
	}

	levels := f.Levels
	if len(levels) == 0 && len(f.Layers) > 0 {
		levels = map[int]model.Level{0: f.Layers}
	}
	if len(levels) == 0 {
		return nil, MapInfo{}, fmt.Errorf("map has no levels")
	}

	m := &model.Map{Levels: levels}
	switch {
	case f.Dimensions != nil:
		m.Dimensions = *f.Dimensions
	default:
		m.Dimensions = measure(levels)
		if m.Dimensions.Width == 0 {
			m.Dimensions.Width = f.Width
		}
		if m.Dimensions.Height == 0 {
			m.Dimensions.Height = f.Height
		}
	}

	if err := m.Validate(); err != nil {
		return nil, MapInfo{}, err
	}

	info := MapInfo{ID: f.ID, Name: f.Name}
	if f.StartPos != nil {
		info.StartPos = *f.StartPos
	}
	if info.Name == "" {
		info.Name = info.ID
	}
	return m, info, nil
}

func measure(levels map[int]model.Level) model.Dimensions {
	var d model.Dimensions
	for _, lvl := range levels {
		for _, layer := range lvl {
			d.Height = max(d.Height, len(layer))
			if len(layer) > 0 {
				d.Width = max(d.Width, len(layer[0]))
			}
		}
	}
	return d
}

// UnknownTiles lists, sorted and without duplicates, the tile ids placed in m
// that ts does not define. Navigation treats such cells as unoccupied.
func UnknownTiles(m *model.Map, ts model.Tileset) []string {
	seen := make(map[string]struct{})
	for _, lvl := range m.Levels {
		for _, layer := range lvl {
			for _, row := range layer {
				for _, ref := range row {
					if id := ref.BaseID(); id != "" {
						if _, ok := ts[id]; !ok {
							seen[id] = struct{}{}
						}
					}
				}
			}
		}
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
