package testutil

import (
	"testing"

	"github.com/udisondev/wasteland/internal/model"
)

// Идентификаторы тайлов тестового тайлсета.
const (
	TileFloor      = "FL"
	TileWall       = "WALL"
	TileCrate      = "CRATE"
	TileDoor       = "WDC" // closed door, openCost 3
	TileOpenDoor   = "WDO"
	TileOddDoor    = "WDX" // tagged both closed and open
	TileLadderDown = "LADDER_DN"
	TileLadderUp   = "LADDER_UP"
	TileStairsUp   = "STAIRS_UP"
	TileGlass      = "GLASS"
	TileBush       = "BUSH"
	TileGrate      = "GRATE"
)

// Tileset возвращает тайлсет, общий для тестов навигации.
// Каждый вызов создаёт новую копию, тесты могут её менять.
func Tileset() model.Tileset {
	down, up := -1, 1
	return model.Tileset{
		TileFloor: {Name: "Concrete Floor", Tags: []string{model.TagFloor}},
		TileWall:  {Name: "Brick Wall", Tags: []string{model.TagImpassable, model.TagBlocksVision}},
		TileCrate: {Name: "Crate", Tags: []string{model.TagImpassable, model.TagSolidTerrainTop, model.TagContainer}},
		TileDoor: {
			Name:          "Wooden Door",
			Tags:          []string{model.TagDoor, model.TagClosed},
			OpenCost:      3,
			OpensToTileID: TileOpenDoor,
		},
		TileOpenDoor: {Name: "Wooden Door (open)", Tags: []string{model.TagDoor, model.TagOpen}},
		TileOddDoor:  {Name: "Broken Door", Tags: []string{model.TagDoor, model.TagClosed, model.TagOpen}},
		TileLadderDown: {
			Name:     "Ladder Down",
			Tags:     []string{model.TagZTransition},
			TargetDZ: &down,
			ZCost:    2,
		},
		TileLadderUp: {
			Name:     "Ladder Up",
			Tags:     []string{model.TagZTransition},
			TargetDZ: &up,
			ZCost:    2,
		},
		TileStairsUp: {
			Name:     "Stairs",
			Tags:     []string{model.TagZTransition, model.TagFloor},
			TargetDZ: &up,
		},
		TileGlass: {Name: "Window", Tags: []string{model.TagImpassable, model.TagTransparent}},
		TileBush:  {Name: "Bush", Tags: []string{model.TagBlocksVision}},
		TileGrate: {Name: "Metal Grate", Tags: []string{model.TagFloor, model.TagTransparentFloor}},
	}
}

// BuildMap собирает карту из ASCII-схемы уровней.
//
// Легенда:
//
//	.  пол
//	#  стена (непроходима, закрывает обзор)
//	C  ящик (непроходим, на него можно залезть)
//	+  закрытая дверь        L  запертая дверь (instance)
//	/  открытая дверь        X  дверь с тегами closed и open
//	v  лестница вниз         ^  лестница вверх
//	S  ступени вверх         G  окно
//	*  куст (на полу)        =  решётка (прозрачный пол)
//	пробел: пустая клетка (воздух)
func BuildMap(tb testing.TB, levels map[int][]string) *model.Map {
	tb.Helper()

	width, height := -1, -1
	for z, rows := range levels {
		if height == -1 {
			height = len(rows)
		}
		if len(rows) != height {
			tb.Fatalf("level %d: %d rows, want %d", z, len(rows), height)
		}
		for y, row := range rows {
			if width == -1 {
				width = len(row)
			}
			if len(row) != width {
				tb.Fatalf("level %d row %d: %d cells, want %d", z, y, len(row), width)
			}
		}
	}
	if width <= 0 || height <= 0 {
		tb.Fatalf("empty map layout")
	}

	m := model.NewMap(width, height)
	for z, rows := range levels {
		for y, row := range rows {
			for x, ch := range row {
				place(tb, m, model.C(x, y, z), ch)
			}
		}
	}
	return m
}

func place(tb testing.TB, m *model.Map, c model.Coord, ch rune) {
	tb.Helper()

	set := func(layer string, ref model.TileRef) {
		if err := m.SetTile(layer, c, ref); err != nil {
			tb.Fatalf("placing %q: %v", ch, err)
		}
	}
	floor := func() { set(model.LayerBottom, model.Bare(TileFloor)) }

	switch ch {
	case ' ':
	case '.':
		floor()
	case '#':
		floor()
		set(model.LayerBuilding, model.Bare(TileWall))
	case 'C':
		floor()
		set(model.LayerBuilding, model.Bare(TileCrate))
	case '+':
		floor()
		set(model.LayerBuilding, model.Bare(TileDoor))
	case 'L':
		floor()
		set(model.LayerBuilding, model.Instance(model.TileInstance{TileID: TileDoor, IsLocked: true}))
	case '/':
		floor()
		set(model.LayerBuilding, model.Bare(TileOpenDoor))
	case 'X':
		floor()
		set(model.LayerBuilding, model.Bare(TileOddDoor))
	case 'v':
		floor()
		set(model.LayerBuilding, model.Bare(TileLadderDown))
	case '^':
		floor()
		set(model.LayerBuilding, model.Bare(TileLadderUp))
	case 'S':
		set(model.LayerMiddle, model.Bare(TileStairsUp))
	case 'G':
		floor()
		set(model.LayerBuilding, model.Bare(TileGlass))
	case '*':
		floor()
		set(model.LayerItem, model.Bare(TileBush))
	case '=':
		set(model.LayerBottom, model.Bare(TileGrate))
	default:
		tb.Fatalf("unknown map symbol %q at %v", ch, c)
	}
}
