package model

import (
	"fmt"
	"math"
)

// Coord is a tile position in the layered world.
// Value type, compared with ==.
type Coord struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
	Z int `json:"z" yaml:"z"`
}

// C is shorthand for Coord{X: x, Y: y, Z: z}.
func C(x, y, z int) Coord {
	return Coord{X: x, Y: y, Z: z}
}

// Add returns c shifted by (dx, dy, dz).
func (c Coord) Add(dx, dy, dz int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy, Z: c.Z + dz}
}

// Manhattan returns |dx|+|dy|+|dz| between c and other.
func (c Coord) Manhattan(other Coord) int {
	return absInt(c.X-other.X) + absInt(c.Y-other.Y) + absInt(c.Z-other.Z)
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.X, c.Y, c.Z)
}

// Distance3D returns the Euclidean distance between two positions.
func Distance3D(a, b Coord) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	dz := float64(a.Z - b.Z)
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
