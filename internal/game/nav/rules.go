package nav

import "github.com/udisondev/wasteland/internal/model"

// edge is a single traversal step with its cost.
type edge struct {
	to   model.Coord
	cost int
}

// enterCost returns the cost of stepping horizontally into c.
// Doors decide for themselves; every other cell asks the oracle.
func (e *Engine) enterCost(m *model.Map, ts model.Tileset, c model.Coord) (model.TileDef, int, bool) {
	def, ref, ok := ResolveTile(m, ts, c)
	if ok && def.HasTag(model.TagDoor) {
		// closed is checked first: a door tagged both closed and open stays closed.
		if def.HasTag(model.TagClosed) {
			if ref.IsLocked() || def.IsLocked {
				return def, 0, false
			}
			return def, StepCost + def.DoorOpenCost(), true
		}
		if def.HasTag(model.TagOpen) {
			return def, StepCost, true
		}
	}
	if e.oracle.IsWalkable(c.X, c.Y, c.Z) {
		return def, StepCost, true
	}
	return def, 0, false
}

// neighbors appends every edge leaving c to dst.
func (e *Engine) neighbors(dst []edge, m *model.Map, ts model.Tileset, c model.Coord) []edge {
	o := e.oracle

	// Horizontal moves, plus the z-transition they may lead onto.
	for _, d := range cardinals {
		n := c.Add(d.dx, d.dy, 0)
		def, cost, ok := e.enterCost(m, ts, n)
		if !ok {
			continue
		}
		dst = append(dst, edge{to: n, cost: cost})

		if dz, isTransition := def.ZTransition(); isTransition {
			dest := n.Add(0, 0, dz)
			if o.IsWalkable(dest.X, dest.Y, dest.Z) {
				dst = append(dst, edge{to: dest, cost: cost + def.TransitionCost()})
			}
		}
	}

	// Standing on a transition tile (ladder, hatch).
	if def, _, ok := ResolveTile(m, ts, c); ok {
		if dz, isTransition := def.ZTransition(); isTransition {
			t := c.Add(0, 0, dz)
			if o.IsTileEmpty(t.X, t.Y, t.Z) && o.IsWalkable(t.X, t.Y, t.Z) {
				dst = append(dst, edge{to: t, cost: def.TransitionCost()})
			}
		}
	}

	// Implicit climb onto an obstruction and fall off an edge.
	for _, d := range cardinals {
		n := c.Add(d.dx, d.dy, 0)
		walkable := o.IsWalkable(n.X, n.Y, n.Z)

		up := n.Add(0, 0, 1)
		if !walkable && o.CollisionTileAt(n.X, n.Y, n.Z) != "" &&
			o.IsTileEmpty(c.X, c.Y, c.Z+1) && o.IsWalkable(up.X, up.Y, up.Z) {
			dst = append(dst, edge{to: up, cost: ClimbCost})
		}

		down := n.Add(0, 0, -1)
		if !walkable && o.IsTileEmpty(n.X, n.Y, n.Z) && o.IsWalkable(down.X, down.Y, down.Z) {
			dst = append(dst, edge{to: down, cost: FallCost})
		}
	}

	return dst
}
