package ai

import (
	"log/slog"
	"slices"

	"github.com/udisondev/wasteland/internal/game/nav"
	"github.com/udisondev/wasteland/internal/model"
)

// Candidate is a combatant as seen by target selection.
type Candidate struct {
	ID     string
	TeamID string
	Pos    model.Coord
	Alive  bool
}

// EntityID implements nav.Entity.
func (c Candidate) EntityID() string { return c.ID }

// AggroEntry is accumulated threat against one attacker.
type AggroEntry struct {
	TargetID string
	Threat   int
}

// hostileTo reports whether c can be attacked by self.
func (c Candidate) hostileTo(self Candidate) bool {
	return c.ID != self.ID && c.Alive && c.TeamID != self.TeamID
}

// SelectTarget picks whom self attacks.
//
// Aggro entries are tried highest threat first; the first hostile one in
// sight wins. Aggro entries must refer to a current candidate. Without such
// an entry the nearest hostile candidate in sight is chosen (3D distance,
// ties keep candidate order). ok is false when nobody is visible.
func SelectTarget(n nav.Navigator, self Candidate, aggro []AggroEntry, candidates []Candidate, m *model.Map, ts model.Tileset) (target Candidate, ok bool) {
	byID := make(map[string]Candidate, len(candidates))
	for _, c := range candidates {
		byID[c.ID] = c
	}

	ordered := slices.Clone(aggro)
	slices.SortStableFunc(ordered, func(a, b AggroEntry) int { return b.Threat - a.Threat })

	for _, e := range ordered {
		c, known := byID[e.TargetID]
		if !known || !c.hostileTo(self) {
			continue
		}
		if n.HasLineOfSight(self.Pos, c.Pos, ts, m) {
			if IsDebugEnabled() {
				slog.Debug("target selected from aggro", "npc", self.ID, "target", c.ID, "threat", e.Threat)
			}
			return c, true
		}
	}

	best, bestDist := -1, 0.0
	for i, c := range candidates {
		if !c.hostileTo(self) {
			continue
		}
		if !n.HasLineOfSight(self.Pos, c.Pos, ts, m) {
			continue
		}
		if d := model.Distance3D(self.Pos, c.Pos); best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return Candidate{}, false
	}

	if IsDebugEnabled() {
		slog.Debug("nearest target selected", "npc", self.ID, "target", candidates[best].ID, "distance", bestDist)
	}
	return candidates[best], true
}
