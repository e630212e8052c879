// Package walk implements 2D lattice random walks sampled from a
// categorical distribution over the four unit directions.
package walk

// Point is a position on the 2D integer lattice.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns the point translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Direction is one of the four lattice directions.
type Direction int

const (
	Up Direction = iota
	Right
	Down
	Left

	// NumDirections is the number of lattice directions.
	NumDirections = 4
)

var unitSteps = [NumDirections]Point{
	Up:    {X: 0, Y: 1},
	Right: {X: 1, Y: 0},
	Down:  {X: 0, Y: -1},
	Left:  {X: -1, Y: 0},
}

// Step returns the unit vector for the direction.
func (d Direction) Step() Point {
	return unitSteps[d]
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	default:
		return "unknown"
	}
}
