package nav

import "github.com/udisondev/wasteland/internal/model"

// HasLineOfSight reports whether nothing blocks vision between start and end.
//
// Every cell after the viewer's own, the target cell included, is tested
// against the oracle relative to the viewer's level (start.Z). Invalid
// requests and lines that cannot be computed count as blocked.
func (e *Engine) HasLineOfSight(start, end model.Coord, ts model.Tileset, m *model.Map) bool {
	if err := e.Validate(m, ts); err != nil {
		e.log().Error("line of sight: invalid request", "from", start, "to", end, "err", err)
		return false
	}

	lineFn := e.line
	if lineFn == nil {
		lineFn = Line3D
	}
	line := lineFn(start, end)

	switch len(line) {
	case 0:
		e.log().Warn("line of sight: empty line", "from", start, "to", end)
		return false
	case 1:
		return true
	}

	for _, p := range line[1:] {
		if e.oracle.IsTileBlockingVision(p.X, p.Y, p.Z, start.Z) {
			return false
		}
	}
	return true
}
