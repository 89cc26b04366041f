package ai

import (
	"log/slog"

	"github.com/udisondev/wasteland/internal/game/nav"
	"github.com/udisondev/wasteland/internal/model"
)

// IsReachable reports whether nav finds any path from -> to.
func IsReachable(n nav.Navigator, from, to model.Coord, ent nav.Entity, m *model.Map, ts model.Tileset) bool {
	return len(n.FindPath(from, to, ent, m, ts)) > 0
}

// AdvanceAlong returns the longest prefix of route (start excluded) that fits
// into movementPoints, and the points it costs.
// A step is never taken partially: a door costing more than what is left
// stops the walk in front of it.
func AdvanceAlong(route nav.Route, movementPoints int) (reached []model.Coord, spent int) {
	if len(route.Path) <= 1 || movementPoints <= 0 {
		return nil, 0
	}

	for i := 1; i < len(route.Path) && i < len(route.Costs); i++ {
		cost := route.Costs[i]
		if spent+cost > movementPoints {
			break
		}
		spent += cost
		reached = append(reached, route.Path[i])
	}

	if IsDebugEnabled() {
		slog.Debug("route advanced",
			"steps", len(reached),
			"of", len(route.Path)-1,
			"spent", spent,
			"budget", movementPoints)
	}
	return reached, spent
}
