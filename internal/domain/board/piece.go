package board

import (
	"fmt"
	"strings"
)

type Archetype int

const (
	CEO Archetype = iota
	CFO
	CTO
	CMO
	VP
	Manager
)

// Archetypes lists every archetype in declaration order.
var Archetypes = [...]Archetype{CEO, CFO, CTO, CMO, VP, Manager}

type archetypeSpec struct {
	name   string
	value  int
	weight float64
	radius int
}

var archetypeSpecs = [...]archetypeSpec{
	CEO:     {name: "CEO", value: 1000, weight: 1.0, radius: 3},
	CFO:     {name: "CFO", value: 90, weight: 0.9, radius: 2},
	CTO:     {name: "CTO", value: 50, weight: 0.8, radius: 2},
	CMO:     {name: "CMO", value: 30, weight: 0.7, radius: 2},
	VP:      {name: "VP", value: 30, weight: 0.6, radius: 1},
	Manager: {name: "MANAGER", value: 10, weight: 0.3, radius: 1},
}

func (a Archetype) Valid() bool {
	return a >= CEO && a <= Manager
}

func (a Archetype) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Archetype(%d)", int(a))
	}
	return archetypeSpecs[a].name
}

func (a Archetype) Value() int {
	return archetypeSpecs[a].value
}

func (a Archetype) Weight() float64 {
	return archetypeSpecs[a].weight
}

// InfluenceRadius is the Manhattan distance within which a piece of this
// archetype is considered to threaten a square.
func (a Archetype) InfluenceRadius() int {
	return archetypeSpecs[a].radius
}

func ParseArchetype(s string) (Archetype, error) {
	for _, a := range Archetypes {
		if strings.EqualFold(s, archetypeSpecs[a].name) {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown archetype %q", s)
}

func (a Archetype) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("unknown archetype %d", int(a))
	}
	return []byte(a.String()), nil
}

func (a *Archetype) UnmarshalText(text []byte) error {
	parsed, err := ParseArchetype(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

type Side int

const (
	Company Side = iota
	Competitor
	Market
	Regulator
)

var sideNames = [...]string{
	Company:    "COMPANY",
	Competitor: "COMPETITOR",
	Market:     "MARKET",
	Regulator:  "REGULATOR",
}

func (s Side) String() string {
	if s < Company || s > Regulator {
		return fmt.Sprintf("Side(%d)", int(s))
	}
	return sideNames[s]
}

// Placeable reports whether pieces of this side may occupy the board.
// MARKET and REGULATOR exist only as participants outside the grid.
func (s Side) Placeable() bool {
	return s == Company || s == Competitor
}

// Opponent returns the adversary of a board side. Non-board sides have none
// and are returned unchanged.
func (s Side) Opponent() Side {
	switch s {
	case Company:
		return Competitor
	case Competitor:
		return Company
	default:
		return s
	}
}

func ParseSide(s string) (Side, error) {
	for i, name := range sideNames {
		if strings.EqualFold(s, name) {
			return Side(i), nil
		}
	}
	return 0, fmt.Errorf("unknown side %q", s)
}

func (s Side) MarshalText() ([]byte, error) {
	if s < Company || s > Regulator {
		return nil, fmt.Errorf("unknown side %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *Side) UnmarshalText(text []byte) error {
	parsed, err := ParseSide(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

type Piece struct {
	Archetype Archetype
	Side      Side
	Position  Position
}

func NewPiece(archetype Archetype, side Side, x, y int) Piece {
	return Piece{Archetype: archetype, Side: side, Position: Position{X: x, Y: y}}
}

func (p Piece) Value() int {
	return p.Archetype.Value()
}

// MovedTo returns a copy of the piece standing on pos.
func (p Piece) MovedTo(pos Position) Piece {
	p.Position = pos
	return p
}

func (p Piece) String() string {
	return fmt.Sprintf("%s %s@%s", p.Side, p.Archetype, p.Position)
}
