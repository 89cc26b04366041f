package nav

import (
	"github.com/udisondev/wasteland/internal/model"
)

// Oracle answers occupancy and vision questions about single cells.
// Implemented by the map/rendering side; the navigation core never looks
// at walkability rules directly.
type Oracle interface {
	// IsWalkable reports whether an entity can stand on or pass through the cell.
	IsWalkable(x, y, z int) bool
	// IsTileEmpty reports whether nothing at all occupies the cell.
	IsTileEmpty(x, y, z int) bool
	// CollisionTileAt returns the id of the tile blocking the cell, or "".
	CollisionTileAt(x, y, z int) string
	// IsTileBlockingVision reports whether the cell obstructs sight for a viewer at viewerZ.
	IsTileBlockingVision(x, y, z, viewerZ int) bool
}

// capabilityReporter is implemented by oracles that may lack some capabilities.
type capabilityReporter interface {
	MissingCapabilities() []string
}

// OracleFuncs adapts plain functions to Oracle. A nil field is a missing
// capability and makes every query fail validation.
type OracleFuncs struct {
	Walkable      func(x, y, z int) bool
	Empty         func(x, y, z int) bool
	CollisionTile func(x, y, z int) string
	BlocksVision  func(x, y, z, viewerZ int) bool
}

var _ Oracle = OracleFuncs{}

func (o OracleFuncs) IsWalkable(x, y, z int) bool        { return o.Walkable(x, y, z) }
func (o OracleFuncs) IsTileEmpty(x, y, z int) bool       { return o.Empty(x, y, z) }
func (o OracleFuncs) CollisionTileAt(x, y, z int) string { return o.CollisionTile(x, y, z) }
func (o OracleFuncs) IsTileBlockingVision(x, y, z, viewerZ int) bool {
	return o.BlocksVision(x, y, z, viewerZ)
}

// MissingCapabilities lists the nil function fields.
func (o OracleFuncs) MissingCapabilities() []string {
	var missing []string
	if o.Walkable == nil {
		missing = append(missing, "isWalkable")
	}
	if o.Empty == nil {
		missing = append(missing, "isTileEmpty")
	}
	if o.CollisionTile == nil {
		missing = append(missing, "getCollisionTileAt")
	}
	if o.BlocksVision == nil {
		missing = append(missing, "isTileBlockingVision")
	}
	return missing
}

// Layers consulted by GridOracle.
var (
	collisionLayers = [...]string{model.LayerBuilding, model.LayerItem, model.LayerMiddle, model.LayerLandscape}
	visionLayers    = [...]string{model.LayerLandscape, model.LayerBuilding, model.LayerItem, model.LayerMiddle}
)

// GridOracle derives cell answers from a map snapshot and its tileset.
//
// A cell is walkable when it is inside the map, has no collision tile and has
// footing: a floor tile at its own level or a solid_terrain_top tile right below.
type GridOracle struct {
	m  *model.Map
	ts model.Tileset
}

var _ Oracle = (*GridOracle)(nil)

// NewGridOracle creates an oracle over m and ts. Neither is copied.
func NewGridOracle(m *model.Map, ts model.Tileset) *GridOracle {
	return &GridOracle{m: m, ts: ts}
}

func (g *GridOracle) def(layer string, x, y, z int) (model.TileDef, string, bool) {
	ref := g.m.TileAt(layer, x, y, z)
	def, ok := g.ts.Lookup(ref)
	return def, ref.BaseID(), ok
}

// IsTileEmpty reports whether no layer holds a tile at (x, y, z).
func (g *GridOracle) IsTileEmpty(x, y, z int) bool {
	if g.m == nil || !g.m.InBounds(x, y) {
		return true
	}
	for _, layer := range g.m.Level(z) {
		if !layer.At(x, y).IsEmpty() {
			return false
		}
	}
	return true
}

// CollisionTileAt returns the first impassable tile or closed door in the cell.
func (g *GridOracle) CollisionTileAt(x, y, z int) string {
	if g.m == nil || !g.m.InBounds(x, y) {
		return ""
	}
	for _, layer := range collisionLayers {
		def, id, ok := g.def(layer, x, y, z)
		if !ok {
			continue
		}
		if def.HasTag(model.TagImpassable) || isClosedDoor(def) {
			return id
		}
	}
	return ""
}

// IsWalkable reports whether the cell is free and has footing.
func (g *GridOracle) IsWalkable(x, y, z int) bool {
	if g.m == nil || !g.m.InBounds(x, y) {
		return false
	}
	if g.CollisionTileAt(x, y, z) != "" {
		return false
	}
	return g.hasTag(x, y, z, model.TagFloor) || g.hasTag(x, y, z-1, model.TagSolidTerrainTop)
}

// IsTileBlockingVision reports whether the cell hides what is behind it.
// Cells on other levels are also hidden by the floor between them and the viewer.
func (g *GridOracle) IsTileBlockingVision(x, y, z, viewerZ int) bool {
	if g.m == nil || !g.m.InBounds(x, y) {
		return false
	}
	switch {
	case z < viewerZ:
		if g.solidFloor(x, y, z+1) {
			return true
		}
	case z > viewerZ:
		if g.solidFloor(x, y, z) {
			return true
		}
	}
	for _, layer := range visionLayers {
		def, _, ok := g.def(layer, x, y, z)
		if !ok {
			continue
		}
		if def.HasTag(model.TagAllowsVision) || def.HasTag(model.TagTransparent) {
			return false
		}
		if def.HasTag(model.TagImpassable) || def.HasTag(model.TagBlocksVision) || isClosedDoor(def) {
			return true
		}
	}
	return false
}

// solidFloor reports whether the floor of cell (x, y, z) is opaque.
func (g *GridOracle) solidFloor(x, y, z int) bool {
	for _, layer := range g.m.Level(z) {
		def, ok := g.ts.Lookup(layer.At(x, y))
		if ok && def.HasTag(model.TagFloor) && !def.HasTag(model.TagTransparentFloor) {
			return true
		}
	}
	return g.hasTag(x, y, z-1, model.TagSolidTerrainTop)
}

func (g *GridOracle) hasTag(x, y, z int, tag string) bool {
	for _, layer := range g.m.Level(z) {
		def, ok := g.ts.Lookup(layer.At(x, y))
		if ok && def.HasTag(tag) {
			return true
		}
	}
	return false
}

func isClosedDoor(def model.TileDef) bool {
	return def.HasTag(model.TagDoor) && def.HasTag(model.TagClosed)
}
