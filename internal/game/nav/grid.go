package nav

import "github.com/udisondev/wasteland/internal/model"

// ResolveTile returns the definition of the tile occupying c, checking layers
// in model.LayerPrecedence order. ok is false for empty cells, missing levels
// and ids unknown to the tileset.
func ResolveTile(m *model.Map, ts model.Tileset, c model.Coord) (def model.TileDef, ref model.TileRef, ok bool) {
	lvl := m.Level(c.Z)
	if lvl == nil {
		return model.TileDef{}, model.TileRef{}, false
	}
	for _, name := range model.LayerPrecedence {
		r := lvl[name].At(c.X, c.Y)
		if r.IsEmpty() {
			continue
		}
		if d, found := ts.Lookup(r); found {
			return d, r, true
		}
	}
	return model.TileDef{}, model.TileRef{}, false
}
