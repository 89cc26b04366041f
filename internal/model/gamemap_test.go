package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const editorExport = `{
  "dimensions": {"width": 3, "height": 2},
  "levels": {
    "0": {
      "bottom":   [["FL", "FL", "FL"], ["FL", "FL", "FL"]],
      "building": [[null, {"tileId": "WDH", "isLocked": true}, ""], ["WALL", null, null]]
    },
    "-1": {
      "bottom": [["FL", null, null], [null, null, null]]
    }
  }
}`

func TestMapDecodeEditorExport(t *testing.T) {
	var m Map
	require.NoError(t, json.Unmarshal([]byte(editorExport), &m))
	require.NoError(t, m.Validate())

	assert.Equal(t, 3, m.Dimensions.Width)
	assert.Len(t, m.Levels, 2)

	door := m.TileAt(LayerBuilding, 1, 0, 0)
	assert.Equal(t, "WDH", door.BaseID())
	assert.True(t, door.IsLocked())

	assert.Equal(t, "WALL", m.TileAt(LayerBuilding, 0, 1, 0).BaseID())
	assert.Equal(t, "FL", m.TileAt(LayerBottom, 0, 0, -1).BaseID())
	assert.True(t, m.TileAt(LayerBottom, 1, 0, -1).IsEmpty())
}

func TestMapTileAtOutOfRange(t *testing.T) {
	m := NewMap(2, 2)
	require.NoError(t, m.SetTile(LayerBottom, C(1, 1, 0), Bare("FL")))

	assert.True(t, m.TileAt(LayerBottom, 5, 5, 0).IsEmpty())
	assert.True(t, m.TileAt(LayerBottom, -1, 0, 0).IsEmpty())
	assert.True(t, m.TileAt(LayerBottom, 1, 1, 7).IsEmpty(), "missing level")
	assert.True(t, m.TileAt(LayerItem, 1, 1, 0).IsEmpty(), "missing layer")
	assert.Equal(t, "FL", m.TileAt(LayerBottom, 1, 1, 0).BaseID())
}

func TestMapSetTileOutOfBounds(t *testing.T) {
	m := NewMap(2, 2)
	assert.Error(t, m.SetTile(LayerBottom, C(2, 0, 0), Bare("FL")))
}

func TestMapValidate(t *testing.T) {
	m := NewMap(0, 3)
	assert.Error(t, m.Validate())

	m = NewMap(2, 2)
	m.Levels[0] = Level{LayerBottom: Layer{{Bare("FL"), Bare("FL")}}}
	assert.Error(t, m.Validate(), "short layer")

	m.Levels[0] = Level{LayerBottom: Layer{{Bare("FL"), Bare("FL")}, {Bare("FL")}}}
	assert.Error(t, m.Validate(), "ragged row")

	m.Levels[0] = Level{LayerBottom: Layer{{Bare("FL"), Bare("FL")}, {Bare("FL"), {}}}}
	assert.NoError(t, m.Validate())
}

func TestCoordHelpers(t *testing.T) {
	a := C(1, 2, 3)
	assert.Equal(t, C(2, 2, 2), a.Add(1, 0, -1))
	assert.Equal(t, 9, a.Manhattan(C(-2, 5, 6)))
	assert.Equal(t, "(1,2,3)", a.String())
	assert.InDelta(t, 5.0, Distance3D(C(0, 0, 0), C(3, 4, 0)), 1e-9)
}
