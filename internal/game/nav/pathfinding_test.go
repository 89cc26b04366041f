package nav

import (
	"math/rand/v2"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/wasteland/internal/model"
	"github.com/udisondev/wasteland/internal/testutil"
)

func grid(w, h int, fill byte) []string {
	rows := make([]string, h)
	for y := range rows {
		rows[y] = strings.Repeat(string(fill), w)
	}
	return rows
}

func TestFindPathSameCell(t *testing.T) {
	e, m, ts := newTestEngine(t, map[int][]string{0: grid(3, 3, '.')})

	path := e.FindPath(model.C(1, 1, 0), model.C(1, 1, 0), nil, m, ts)
	assert.Equal(t, []model.Coord{model.C(1, 1, 0)}, path)
}

func TestFindPathOpenGrid(t *testing.T) {
	e, m, ts := newTestEngine(t, map[int][]string{0: grid(10, 10, '.')})

	start, end := model.C(0, 0, 0), model.C(9, 9, 0)
	route, ok := e.FindRoute(start, end, npc("scav"), m, ts)
	require.True(t, ok)

	assert.Len(t, route.Path, start.Manhattan(end)+1)
	assert.Equal(t, start, route.Path[0])
	assert.Equal(t, end, route.Path[len(route.Path)-1])
	assert.Equal(t, 18, route.Total)
	assert.Equal(t, route.Total, pathCost(t, route))
	assert.Equal(t, 0, route.Costs[0])

	for i := 1; i < len(route.Path); i++ {
		assert.Equal(t, 1, route.Path[i-1].Manhattan(route.Path[i]), "step %d not adjacent", i)
	}
}

func TestFindPathPrefersDetourOverDoor(t *testing.T) {
	e, m, ts := newTestEngine(t, map[int][]string{0: {
		"#######",
		"#..+..#",
		"#.....#",
		"#######",
	}})

	route, ok := e.FindRoute(model.C(1, 1, 0), model.C(5, 1, 0), nil, m, ts)
	require.True(t, ok)

	assert.Equal(t, 6, route.Total)
	assert.NotContains(t, route.Path, model.C(3, 1, 0), "door should be avoided")
}

func TestFindPathDoorPenalty(t *testing.T) {
	layout := func(door byte) map[int][]string {
		return map[int][]string{0: {
			"#######",
			"#.." + string(door) + "..#",
			"#######",
		}}
	}

	tests := []struct {
		name  string
		door  byte
		total int
		costs []int
	}{
		{"closed door", '+', 7, []int{0, 1, 4, 1, 1}},
		{"open door", '/', 4, []int{0, 1, 1, 1, 1}},
		{"closed and open tags", 'X', 5, []int{0, 1, 2, 1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, m, ts := newTestEngine(t, layout(tt.door))

			route, ok := e.FindRoute(model.C(1, 1, 0), model.C(5, 1, 0), nil, m, ts)
			require.True(t, ok)
			assert.Equal(t, tt.total, route.Total)
			assert.Equal(t, tt.costs, route.Costs)
		})
	}
}

func TestFindPathDoorPenaltyDifference(t *testing.T) {
	closed, m1, ts1 := newTestEngine(t, map[int][]string{0: {"..+.."}})
	open, m2, ts2 := newTestEngine(t, map[int][]string{0: {"../.."}})

	a, ok := closed.FindRoute(model.C(0, 0, 0), model.C(4, 0, 0), nil, m1, ts1)
	require.True(t, ok)
	b, ok := open.FindRoute(model.C(0, 0, 0), model.C(4, 0, 0), nil, m2, ts2)
	require.True(t, ok)

	assert.Equal(t, ts1[testutil.TileDoor].OpenCost, a.Total-b.Total)
}

func TestFindPathLockedDoor(t *testing.T) {
	t.Run("grid oracle", func(t *testing.T) {
		e, m, ts := newTestEngine(t, map[int][]string{0: {
			"#######",
			"#..L..#",
			"#######",
		}})
		assert.Nil(t, e.FindPath(model.C(1, 1, 0), model.C(5, 1, 0), nil, m, ts))
	})

	t.Run("oracle says walkable", func(t *testing.T) {
		m := testutil.BuildMap(t, map[int][]string{0: {"..L.."}})
		ts := testutil.Tileset()
		e := NewEngine(openOracle(m), WithLogger(quietLogger()))

		assert.Nil(t, e.FindPath(model.C(0, 0, 0), model.C(4, 0, 0), nil, m, ts))
	})

	t.Run("locked definition", func(t *testing.T) {
		m := testutil.BuildMap(t, map[int][]string{0: {"..+.."}})
		ts := testutil.Tileset()
		door := ts[testutil.TileDoor]
		door.IsLocked = true
		ts[testutil.TileDoor] = door
		e := NewEngine(openOracle(m), WithLogger(quietLogger()))

		assert.Nil(t, e.FindPath(model.C(0, 0, 0), model.C(4, 0, 0), nil, m, ts))
	})
}

func TestFindPathEnclosed(t *testing.T) {
	e, m, ts := newTestEngine(t, map[int][]string{0: {
		".......",
		".#####.",
		".#...#.",
		".#####.",
		".......",
	}})

	assert.Nil(t, e.FindPath(model.C(3, 2, 0), model.C(0, 0, 0), nil, m, ts))
	assert.Nil(t, e.FindPath(model.C(0, 0, 0), model.C(3, 2, 0), nil, m, ts))
}

func TestFindPathLadderDown(t *testing.T) {
	levels := map[int][]string{
		0:  grid(7, 7, '.'),
		-1: grid(7, 7, ' '),
		-2: {
			"       ",
			"       ",
			"       ",
			"   C   ",
			"       ",
			"       ",
			"       ",
		},
	}
	row := []byte(levels[0][3])
	row[3] = 'v'
	levels[0][3] = string(row)

	e, m, ts := newTestEngine(t, levels)

	t.Run("standing on ladder", func(t *testing.T) {
		route, ok := e.FindRoute(model.C(3, 3, 0), model.C(3, 3, -1), nil, m, ts)
		require.True(t, ok)
		assert.Equal(t, []model.Coord{model.C(3, 3, 0), model.C(3, 3, -1)}, route.Path)
		assert.Equal(t, 2, route.Total)
	})

	t.Run("stepping onto ladder", func(t *testing.T) {
		route, ok := e.FindRoute(model.C(2, 3, 0), model.C(3, 3, -1), nil, m, ts)
		require.True(t, ok)
		assert.Equal(t, []model.Coord{model.C(2, 3, 0), model.C(3, 3, -1)}, route.Path)
		assert.Equal(t, 3, route.Total)
	})
}

func TestFindPathStairs(t *testing.T) {
	e, m, ts := newTestEngine(t, map[int][]string{
		0: {
			"....",
			"..S.",
			"....",
		},
		1: {
			"    ",
			"  . ",
			"    ",
		},
	})

	route, ok := e.FindRoute(model.C(1, 1, 0), model.C(2, 1, 1), nil, m, ts)
	require.True(t, ok)
	assert.Equal(t, []model.Coord{model.C(1, 1, 0), model.C(2, 1, 1)}, route.Path)
	assert.Equal(t, 2, route.Total)
}

func crateLevels() map[int][]string {
	return map[int][]string{
		0: {
			"........",
			".....C..",
			"........",
		},
		1: {
			"        ",
			"      . ",
			"        ",
		},
	}
}

func TestFindPathClimb(t *testing.T) {
	e, m, ts := newTestEngine(t, crateLevels())

	route, ok := e.FindRoute(model.C(4, 1, 0), model.C(6, 1, 1), nil, m, ts)
	require.True(t, ok)

	assert.Equal(t, []model.Coord{model.C(4, 1, 0), model.C(5, 1, 1), model.C(6, 1, 1)}, route.Path)
	assert.Equal(t, []int{0, ClimbCost, StepCost}, route.Costs)
	assert.Equal(t, 3, route.Total)
}

func TestFindPathClimbNeedsHeadroom(t *testing.T) {
	levels := crateLevels()
	levels[1] = []string{
		"        ",
		"    #   ",
		"        ",
	}
	e, m, ts := newTestEngine(t, levels)

	route, ok := e.FindRoute(model.C(4, 1, 0), model.C(5, 1, 1), nil, m, ts)
	require.True(t, ok)
	assert.NotEqual(t, model.C(4, 1, 0), route.Path[len(route.Path)-2], "climb from under the wall")
	assert.Equal(t, 4, route.Total)
}

func TestFindPathFall(t *testing.T) {
	e, m, ts := newTestEngine(t, crateLevels())

	route, ok := e.FindRoute(model.C(6, 1, 1), model.C(4, 1, 0), nil, m, ts)
	require.True(t, ok)

	assert.Equal(t, []model.Coord{model.C(6, 1, 1), model.C(5, 1, 1), model.C(4, 1, 0)}, route.Path)
	assert.Equal(t, []int{0, StepCost, FallCost}, route.Costs)
}

func TestFindPathIterationCap(t *testing.T) {
	levels := map[int][]string{0: grid(20, 20, '.')}
	start, end := model.C(0, 0, 0), model.C(19, 19, 0)

	e, m, ts := newTestEngine(t, levels, WithMaxIterations(5))
	assert.Nil(t, e.FindPath(start, end, nil, m, ts))

	e, m, ts = newTestEngine(t, levels, WithMaxIterations(-1))
	assert.Equal(t, DefaultMaxIterations, e.maxIterations)
	assert.NotNil(t, e.FindPath(start, end, nil, m, ts))
}

func TestFindPathOutOfBoundsTarget(t *testing.T) {
	e, m, ts := newTestEngine(t, map[int][]string{0: grid(4, 4, '.')})

	assert.Nil(t, e.FindPath(model.C(0, 0, 0), model.C(10, 10, 0), nil, m, ts))
	assert.Nil(t, e.FindPath(model.C(0, 0, 0), model.C(1, 1, 3), nil, m, ts))
}

// bfsDistance is the flat single-level reference: shortest step count over '.' cells.
func bfsDistance(rows []string, from, to model.Coord) int {
	h, w := len(rows), len(rows[0])
	dist := make(map[model.Coord]int, w*h)
	dist[from] = 0
	queue := []model.Coord{from}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == to {
			return dist[c]
		}
		for _, d := range cardinals {
			n := c.Add(d.dx, d.dy, 0)
			if n.X < 0 || n.Y < 0 || n.X >= w || n.Y >= h || rows[n.Y][n.X] != '.' {
				continue
			}
			if _, seen := dist[n]; seen {
				continue
			}
			dist[n] = dist[c] + 1
			queue = append(queue, n)
		}
	}
	return -1
}

func TestFindPathOptimalOnRandomMazes(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 42))

	for i := range 25 {
		rows := make([]string, 12)
		for y := range rows {
			var b strings.Builder
			for range 12 {
				if rng.IntN(100) < 28 {
					b.WriteByte('#')
				} else {
					b.WriteByte('.')
				}
			}
			rows[y] = b.String()
		}
		first := []byte(rows[0])
		first[0] = '.'
		rows[0] = string(first)
		last := []byte(rows[11])
		last[11] = '.'
		rows[11] = string(last)

		start, end := model.C(0, 0, 0), model.C(11, 11, 0)
		want := bfsDistance(rows, start, end)

		e, m, ts := newTestEngine(t, map[int][]string{0: rows})
		route, ok := e.FindRoute(start, end, nil, m, ts)

		if want < 0 {
			assert.False(t, ok, "maze %d: expected no path", i)
			continue
		}
		require.True(t, ok, "maze %d: expected a path of %d", i, want)
		assert.Equal(t, want, route.Total, "maze %d", i)
	}
}

func TestFindPathDeterministic(t *testing.T) {
	e, m, ts := newTestEngine(t, map[int][]string{0: grid(8, 8, '.')})
	start, end := model.C(0, 0, 0), model.C(7, 5, 0)

	want := e.FindPath(start, end, nil, m, ts)
	for range 5 {
		assert.Equal(t, want, e.FindPath(start, end, nil, m, ts))
	}
}

func TestFindPathConcurrent(t *testing.T) {
	e, m, ts := newTestEngine(t, map[int][]string{0: {
		"..........",
		".########.",
		".#......#.",
		".#.####.#.",
		"...#..+...",
	}})
	start, end := model.C(0, 0, 0), model.C(5, 4, 0)
	want := e.FindPath(start, end, nil, m, ts)
	require.NotNil(t, want)

	var wg sync.WaitGroup
	results := make([][]model.Coord, 16)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = e.FindPath(start, end, npc("raider"), m, ts)
		}()
	}
	wg.Wait()

	for i, got := range results {
		assert.Equal(t, want, got, "goroutine %d", i)
	}
}

func TestBuildRoute(t *testing.T) {
	a := &searchNode{pos: model.C(0, 0, 0)}
	b := &searchNode{pos: model.C(1, 0, 0), g: 1, parent: a}
	c := &searchNode{pos: model.C(1, 0, 1), g: 4, parent: b}

	route := buildRoute(c)
	assert.Equal(t, []model.Coord{a.pos, b.pos, c.pos}, route.Path)
	assert.Equal(t, []int{0, 1, 3}, route.Costs)
	assert.Equal(t, 4, route.Total)
}

func TestLessNode(t *testing.T) {
	a := &searchNode{f: 5, seq: 2}
	b := &searchNode{f: 5, seq: 3}
	c := &searchNode{f: 4, seq: 9}

	assert.True(t, lessNode(a, b))
	assert.False(t, lessNode(b, a))
	assert.True(t, lessNode(c, a))
}
