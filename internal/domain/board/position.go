package board

import (
	"fmt"
	"math"
)

// Size is the edge length of the strategy board.
const Size = 8

const centerCoord = float64(Size-1) / 2

type Position struct {
	X int `json:"x" bson:"x" yaml:"x"`
	Y int `json:"y" bson:"y" yaml:"y"`
}

func NewPosition(x, y int) Position {
	return Position{X: x, Y: y}
}

func (p Position) InBounds() bool {
	return p.X >= 0 && p.Y >= 0 && p.X < Size && p.Y < Size
}

func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

func (p Position) Manhattan(other Position) int {
	return abs(p.X-other.X) + abs(p.Y-other.Y)
}

// CenterDistance is the Manhattan distance to the geometric centre (3.5, 3.5),
// so it ranges from 1 on the four centre squares to 7 in the corners.
func (p Position) CenterDistance() float64 {
	return math.Abs(float64(p.X)-centerCoord) + math.Abs(float64(p.Y)-centerCoord)
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
