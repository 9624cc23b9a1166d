package board

import (
	"encoding/json"
	"fmt"

	errs "bizchess/internal/errors"
)

type PieceView struct {
	Archetype       string   `json:"archetype" bson:"archetype"`
	Side            string   `json:"side" bson:"side"`
	Position        Position `json:"position" bson:"position"`
	Value           int      `json:"value" bson:"value"`
	InfluenceRadius int      `json:"influence_radius" bson:"influence_radius"`
	StrategicWeight float64  `json:"strategic_weight" bson:"strategic_weight"`
}

// Snapshot is the serialised form of a BoardState consumed by presentation
// layers and stored alongside analyses. Board is indexed [rank][file].
type Snapshot struct {
	Board      [][]*PieceView `json:"board" bson:"board"`
	Pieces     []PieceView    `json:"pieces" bson:"pieces"`
	Turn       string         `json:"turn" bson:"turn"`
	Ply        int            `json:"ply" bson:"ply"`
	Conditions map[string]any `json:"market_conditions,omitempty" bson:"market_conditions,omitempty"`
	Landscape  map[string]any `json:"competitive_landscape,omitempty" bson:"competitive_landscape,omitempty"`
}

func (p Piece) View() PieceView {
	return PieceView{
		Archetype:       p.Archetype.String(),
		Side:            p.Side.String(),
		Position:        p.Position,
		Value:           p.Archetype.Value(),
		InfluenceRadius: p.Archetype.InfluenceRadius(),
		StrategicWeight: p.Archetype.Weight(),
	}
}

func (v PieceView) piece() (Piece, error) {
	archetype, err := ParseArchetype(v.Archetype)
	if err != nil {
		return Piece{}, err
	}
	side, err := ParseSide(v.Side)
	if err != nil {
		return Piece{}, err
	}
	return Piece{Archetype: archetype, Side: side, Position: v.Position}, nil
}

func (s *BoardState) Snapshot() Snapshot {
	snap := Snapshot{
		Board:      make([][]*PieceView, Size),
		Pieces:     make([]PieceView, 0, len(s.pieces)),
		Turn:       s.turn.String(),
		Ply:        s.ply,
		Conditions: s.conditions,
		Landscape:  s.landscape,
	}
	for y := 0; y < Size; y++ {
		snap.Board[y] = make([]*PieceView, Size)
		for x := 0; x < Size; x++ {
			if p := s.grid[y][x]; p != nil {
				view := p.View()
				snap.Board[y][x] = &view
			}
		}
	}
	for _, p := range s.pieces {
		snap.Pieces = append(snap.Pieces, p.View())
	}
	return snap
}

// FromSnapshot rebuilds a validated BoardState. The roster is authoritative;
// when it is empty the pieces are collected from the grid instead. A grid
// cell whose piece claims a different position is rejected.
func FromSnapshot(snap Snapshot) (*BoardState, error) {
	if len(snap.Board) > Size {
		return nil, fmt.Errorf("%w: board has %d ranks", errs.ErrInvalidBoardState, len(snap.Board))
	}
	var fromGrid []PieceView
	for y, row := range snap.Board {
		if len(row) > Size {
			return nil, fmt.Errorf("%w: rank %d has %d files", errs.ErrInvalidBoardState, y, len(row))
		}
		for x, cell := range row {
			if cell == nil {
				continue
			}
			if cell.Position != (Position{X: x, Y: y}) {
				return nil, fmt.Errorf("%w: cell (%d,%d) holds a piece positioned at %s",
					errs.ErrInvalidBoardState, x, y, cell.Position)
			}
			fromGrid = append(fromGrid, *cell)
		}
	}

	views := snap.Pieces
	if len(views) == 0 {
		views = fromGrid
	}
	pieces := make([]Piece, 0, len(views))
	for _, v := range views {
		p, err := v.piece()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errs.ErrInvalidBoardState, err)
		}
		pieces = append(pieces, p)
	}

	turn := Company
	if snap.Turn != "" {
		parsed, err := ParseSide(snap.Turn)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errs.ErrInvalidBoardState, err)
		}
		turn = parsed
	}
	return NewBoardState(pieces, turn, snap.Ply, snap.Conditions, snap.Landscape)
}

func (s *BoardState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Snapshot())
}

func (s *BoardState) UnmarshalJSON(data []byte) error {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return err
	}
	parsed, err := FromSnapshot(snap)
	if err != nil {
		return err
	}
	*s = *parsed
	return nil
}
