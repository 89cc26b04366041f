package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
)

// Tile tags relevant to navigation.
const (
	TagDoor             = "door"
	TagOpen             = "open"
	TagClosed           = "closed"
	TagZTransition      = "z_transition"
	TagImpassable       = "impassable"
	TagFloor            = "floor"
	TagSolidTerrainTop  = "solid_terrain_top"
	TagBlocksVision     = "blocks_vision"
	TagAllowsVision     = "allows_vision"
	TagTransparent      = "transparent"
	TagTransparentFloor = "transparent_floor"
	TagContainer        = "container"
)

// TileInstance is a placed tile carrying per-cell state.
type TileInstance struct {
	TileID   string            `json:"tileId"`
	IsLocked bool              `json:"isLocked,omitempty"`
	Contents []json.RawMessage `json:"contents,omitempty"`
	Tags     []string          `json:"tags,omitempty"`
}

// TileRef references a tile type either directly by id or through an instance.
// The zero value is the empty reference.
type TileRef struct {
	id       string
	instance *TileInstance
}

// Bare returns a reference to a tile type without instance state.
func Bare(id string) TileRef {
	return TileRef{id: id}
}

// Instance returns a reference backed by a tile instance.
func Instance(inst TileInstance) TileRef {
	return TileRef{instance: &inst}
}

// BaseID returns the tile type id regardless of the reference form.
func (r TileRef) BaseID() string {
	if r.instance != nil {
		return r.instance.TileID
	}
	return r.id
}

// IsEmpty reports whether the reference points at no tile.
func (r TileRef) IsEmpty() bool {
	return r.BaseID() == ""
}

// IsLocked reports the instance lock flag. Bare references are never locked.
func (r TileRef) IsLocked() bool {
	return r.instance != nil && r.instance.IsLocked
}

// InstanceState returns the instance behind r, or nil for bare references.
func (r TileRef) InstanceState() *TileInstance {
	return r.instance
}

// MarshalJSON writes bare refs as strings and instances as objects.
func (r TileRef) MarshalJSON() ([]byte, error) {
	if r.instance != nil {
		return json.Marshal(r.instance)
	}
	if r.id == "" {
		return []byte("null"), nil
	}
	return json.Marshal(r.id)
}

// UnmarshalJSON accepts null, a string id or an instance object.
func (r *TileRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*r = TileRef{}
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	switch data[0] {
	case '"':
		return json.Unmarshal(data, &r.id)
	case '{':
		var inst TileInstance
		if err := json.Unmarshal(data, &inst); err != nil {
			return fmt.Errorf("decoding tile instance: %w", err)
		}
		if inst.TileID == "" {
			return nil
		}
		r.instance = &inst
		return nil
	default:
		return fmt.Errorf("tile reference must be string, object or null, got %q", data)
	}
}

// TileDef is the static definition of a tile type.
type TileDef struct {
	Name          string   `json:"name,omitempty" yaml:"name,omitempty"`
	Tags          []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	OpenCost      int      `json:"openCost,omitempty" yaml:"open_cost,omitempty"`
	TargetDZ      *int     `json:"target_dz,omitempty" yaml:"target_dz,omitempty"`
	ZCost         int      `json:"z_cost,omitempty" yaml:"z_cost,omitempty"`
	IsLocked      bool     `json:"isLocked,omitempty" yaml:"is_locked,omitempty"`
	OpensToTileID string   `json:"opensToTileId,omitempty" yaml:"opens_to_tile_id,omitempty"`
}

// HasTag reports whether the definition carries tag.
func (d TileDef) HasTag(tag string) bool {
	return slices.Contains(d.Tags, tag)
}

// DoorOpenCost returns OpenCost, defaulting to 1.
func (d TileDef) DoorOpenCost() int {
	if d.OpenCost <= 0 {
		return 1
	}
	return d.OpenCost
}

// TransitionCost returns ZCost, defaulting to 1.
func (d TileDef) TransitionCost() int {
	if d.ZCost <= 0 {
		return 1
	}
	return d.ZCost
}

// ZTransition returns the Z offset of a z_transition tile.
// ok is false when the tile is not a transition or has no target_dz.
func (d TileDef) ZTransition() (dz int, ok bool) {
	if d.TargetDZ == nil || !d.HasTag(TagZTransition) {
		return 0, false
	}
	return *d.TargetDZ, true
}

// Tileset maps tile type ids to definitions.
type Tileset map[string]TileDef

// Lookup returns the definition behind ref.
func (ts Tileset) Lookup(ref TileRef) (TileDef, bool) {
	id := ref.BaseID()
	if id == "" {
		return TileDef{}, false
	}
	def, ok := ts[id]
	return def, ok
}
