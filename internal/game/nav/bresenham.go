package nav

import "github.com/udisondev/wasteland/internal/model"

// LineIterator3D steps through grid cells along a 3D Bresenham line.
// The dominant axis advances by one every step; the other two follow
// their error terms, so consecutive cells are always grid-adjacent.
type LineIterator3D struct {
	current model.Coord
	target  model.Coord

	deltaX, deltaY, deltaZ int
	stepX, stepY, stepZ    int
	errA, errB             int
	dominant               axis
	started                bool
}

type axis uint8

const (
	axisX axis = iota
	axisY
	axisZ
)

// NewLineIterator3D creates an iterator from start to end inclusive.
func NewLineIterator3D(start, end model.Coord) *LineIterator3D {
	it := &LineIterator3D{
		current: start,
		target:  end,
		deltaX:  absInt(end.X - start.X),
		deltaY:  absInt(end.Y - start.Y),
		deltaZ:  absInt(end.Z - start.Z),
		stepX:   sign(end.X - start.X),
		stepY:   sign(end.Y - start.Y),
		stepZ:   sign(end.Z - start.Z),
	}

	switch {
	case it.deltaX >= it.deltaY && it.deltaX >= it.deltaZ:
		it.dominant = axisX
		it.errA, it.errB = it.deltaX/2, it.deltaX/2
	case it.deltaY >= it.deltaX && it.deltaY >= it.deltaZ:
		it.dominant = axisY
		it.errA, it.errB = it.deltaY/2, it.deltaY/2
	default:
		it.dominant = axisZ
		it.errA, it.errB = it.deltaZ/2, it.deltaZ/2
	}

	return it
}

// Next advances to the next cell. The first call yields the start cell;
// returns false once the target has been yielded.
func (it *LineIterator3D) Next() bool {
	if !it.started {
		it.started = true
		return true
	}
	if it.current == it.target {
		return false
	}

	c := &it.current
	switch it.dominant {
	case axisX:
		c.X += it.stepX
		it.errA += it.deltaY
		if it.errA >= it.deltaX {
			c.Y += it.stepY
			it.errA -= it.deltaX
		}
		it.errB += it.deltaZ
		if it.errB >= it.deltaX {
			c.Z += it.stepZ
			it.errB -= it.deltaX
		}

	case axisY:
		c.Y += it.stepY
		it.errA += it.deltaX
		if it.errA >= it.deltaY {
			c.X += it.stepX
			it.errA -= it.deltaY
		}
		it.errB += it.deltaZ
		if it.errB >= it.deltaY {
			c.Z += it.stepZ
			it.errB -= it.deltaY
		}

	case axisZ:
		c.Z += it.stepZ
		it.errA += it.deltaX
		if it.errA >= it.deltaZ {
			c.X += it.stepX
			it.errA -= it.deltaZ
		}
		it.errB += it.deltaY
		if it.errB >= it.deltaZ {
			c.Y += it.stepY
			it.errB -= it.deltaZ
		}
	}

	return true
}

// Pos returns the current cell.
func (it *LineIterator3D) Pos() model.Coord { return it.current }

// Line3D returns every cell on the line from start to end inclusive.
func Line3D(start, end model.Coord) []model.Coord {
	it := NewLineIterator3D(start, end)
	n := max(it.deltaX, it.deltaY, it.deltaZ) + 1
	points := make([]model.Coord, 0, n)
	for it.Next() {
		points = append(points, it.Pos())
	}
	return points
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
