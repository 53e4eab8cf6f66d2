package pattern

import "fmt"

// Coordinate is a signed 2D pixel position. It is comparable and can be
// used as a map key.
type Coordinate struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Compare orders coordinates by X, then by Y. It returns -1, 0 or +1.
func (c Coordinate) Compare(o Coordinate) int {
	switch {
	case c.X < o.X:
		return -1
	case c.X > o.X:
		return 1
	case c.Y < o.Y:
		return -1
	case c.Y > o.Y:
		return 1
	}
	return 0
}

// Add returns c shifted by (dx, dy).
func (c Coordinate) Add(dx, dy int) Coordinate {
	return Coordinate{X: c.X + dx, Y: c.Y + dy}
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// neighbourOffsets are the eight 8-connected deltas around a pixel.
var neighbourOffsets = [8]Coordinate{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}
