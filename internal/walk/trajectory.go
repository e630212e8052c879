package walk

import "math"

// Trajectory is an ordered sequence of lattice positions. Index 0 is
// the origin; each successive position differs from its predecessor by
// exactly one unit vector.
type Trajectory []Point

// Steps returns the number of positions in the trajectory.
func (t Trajectory) Steps() int {
	return len(t)
}

// Final returns the last position, or the origin for an empty
// trajectory.
func (t Trajectory) Final() Point {
	if len(t) == 0 {
		return Point{}
	}
	return t[len(t)-1]
}

// Net returns the vector from the first to the last position.
func (t Trajectory) Net() Point {
	if len(t) == 0 {
		return Point{}
	}
	first, last := t[0], t[len(t)-1]
	return Point{X: last.X - first.X, Y: last.Y - first.Y}
}

// Displacement returns the Euclidean distance between the first and
// last position.
func (t Trajectory) Displacement() float64 {
	n := t.Net()
	return math.Hypot(float64(n.X), float64(n.Y))
}

// Manhattan returns the L1 distance between the first and last
// position.
func (t Trajectory) Manhattan() int {
	n := t.Net()
	x, y := n.X, n.Y
	if x < 0 {
		x = -x
	}
	if y < 0 {
		y = -y
	}
	return x + y
}
