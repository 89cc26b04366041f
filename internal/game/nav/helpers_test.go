package nav

import (
	"io"
	"log/slog"
	"testing"

	"github.com/udisondev/wasteland/internal/model"
	"github.com/udisondev/wasteland/internal/testutil"
)

type npc string

func (n npc) EntityID() string { return string(n) }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestEngine builds a map from ASCII levels and an engine over it.
func newTestEngine(t *testing.T, levels map[int][]string, opts ...Option) (*Engine, *model.Map, model.Tileset) {
	t.Helper()
	m := testutil.BuildMap(t, levels)
	ts := testutil.Tileset()
	opts = append([]Option{WithLogger(quietLogger())}, opts...)
	return ForMap(m, ts, opts...), m, ts
}

// openOracle treats every in-bounds cell as walkable and occupied.
func openOracle(m *model.Map) OracleFuncs {
	return OracleFuncs{
		Walkable:      func(x, y, z int) bool { return z == 0 && m.InBounds(x, y) },
		Empty:         func(x, y, z int) bool { return false },
		CollisionTile: func(x, y, z int) string { return "" },
		BlocksVision:  func(x, y, z, viewerZ int) bool { return false },
	}
}

func pathCost(t *testing.T, route Route) int {
	t.Helper()
	sum := 0
	for _, c := range route.Costs {
		sum += c
	}
	return sum
}
