package model

import (
	"fmt"
	"math"
)

// Location is a world position in meters.
type Location struct {
	X, Y, Z float64
}

// NewLocation creates a Location.
func NewLocation(x, y, z float64) Location {
	return Location{X: x, Y: y, Z: z}
}

// DistanceSquared returns squared distance to other (no sqrt, preferred
// for range comparisons).
func (l Location) DistanceSquared(other Location) float64 {
	dx := l.X - other.X
	dy := l.Y - other.Y
	dz := l.Z - other.Z
	return dx*dx + dy*dy + dz*dz
}

// Distance returns the distance to other in meters.
func (l Location) Distance(other Location) float64 {
	return math.Sqrt(l.DistanceSquared(other))
}

func (l Location) String() string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", l.X, l.Y, l.Z)
}
