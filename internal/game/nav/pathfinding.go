package nav

import (
	"github.com/udisondev/wasteland/internal/model"
	"github.com/udisondev/wasteland/internal/pqueue"
)

// Route is a found path with the cost of every step.
type Route struct {
	// Path runs from start to end inclusive.
	Path []model.Coord
	// Costs[i] is the cost of entering Path[i]; Costs[0] is always 0.
	Costs []int
	// Total is the sum of Costs.
	Total int
}

// searchNode is a node in the A* search graph.
type searchNode struct {
	pos    model.Coord
	g      int // cost from start
	h      int // heuristic to target
	f      int // g + h
	seq    int // insertion order, secondary heap key
	parent *searchNode
}

func (n *searchNode) Priority() int { return n.f }

// lessNode orders by f, then by insertion order so equal-f ties are reproducible.
func lessNode(a, b *searchNode) bool {
	if a.f != b.f {
		return a.f < b.f
	}
	return a.seq < b.seq
}

// FindPath returns the cheapest path from start to end, or nil when the
// request is invalid or no path exists.
func (e *Engine) FindPath(start, end model.Coord, ent Entity, m *model.Map, ts model.Tileset) []model.Coord {
	route, ok := e.FindRoute(start, end, ent, m, ts)
	if !ok {
		return nil
	}
	return route.Path
}

// FindRoute runs A* and returns the route with per-step costs.
// ok is false when the request is invalid, no path exists, or the
// expansion cap is exceeded.
func (e *Engine) FindRoute(start, end model.Coord, ent Entity, m *model.Map, ts model.Tileset) (Route, bool) {
	if err := e.Validate(m, ts); err != nil {
		e.log().Error("find path: invalid request", "from", start, "to", end, "err", err)
		return Route{}, false
	}

	goal := e.astar(start, end, m, ts)
	if goal == nil {
		return Route{}, false
	}

	route := buildRoute(goal)
	e.log().Debug("path found",
		"entity", entityID(ent),
		"from", start,
		"to", end,
		"nodes", len(route.Path),
		"cost", route.Total)
	return route, true
}

// astar returns the goal node, or nil if the target is unreachable.
func (e *Engine) astar(start, end model.Coord, m *model.Map, ts model.Tileset) *searchNode {
	seq := 0
	startNode := &searchNode{pos: start, h: start.Manhattan(end)}
	startNode.f = startNode.h

	open := pqueue.NewWithCapacity(lessNode, 64)
	open.Push(startNode)

	// best holds the cheapest open entry per coordinate. Entries it no longer
	// points at were superseded by a cheaper push and are skipped on pop.
	best := map[model.Coord]*searchNode{start: startNode}
	closed := make(map[model.Coord]struct{}, 256)
	edges := make([]edge, 0, 16)

	for expanded := 0; ; expanded++ {
		if expanded >= e.maxIterations {
			e.log().Warn("find path: expansion limit reached",
				"from", start, "to", end, "limit", e.maxIterations)
			return nil
		}

		current, ok := open.Pop()
		if !ok {
			e.log().Info("no path found", "from", start, "to", end)
			return nil
		}
		if _, done := closed[current.pos]; done {
			continue
		}
		if best[current.pos] != current {
			continue
		}

		if current.pos == end {
			return current
		}

		closed[current.pos] = struct{}{}
		delete(best, current.pos)

		edges = e.neighbors(edges[:0], m, ts, current.pos)
		for _, ed := range edges {
			if _, done := closed[ed.to]; done {
				continue
			}
			g := current.g + ed.cost
			if prev, queued := best[ed.to]; queued && g >= prev.g {
				continue
			}

			seq++
			node := &searchNode{
				pos:    ed.to,
				g:      g,
				h:      ed.to.Manhattan(end),
				seq:    seq,
				parent: current,
			}
			node.f = node.g + node.h
			best[ed.to] = node
			open.Push(node)
		}
	}
}

// buildRoute walks parent links back to the start.
func buildRoute(goal *searchNode) Route {
	n := 0
	for p := goal; p != nil; p = p.parent {
		n++
	}

	route := Route{
		Path:  make([]model.Coord, n),
		Costs: make([]int, n),
		Total: goal.g,
	}
	i := n - 1
	for p := goal; p != nil; p = p.parent {
		route.Path[i] = p.pos
		if p.parent != nil {
			route.Costs[i] = p.g - p.parent.g
		}
		i--
	}
	return route
}

func entityID(ent Entity) string {
	if ent == nil {
		return ""
	}
	return ent.EntityID()
}
