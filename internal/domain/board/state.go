package board

import (
	"fmt"

	errs "bizchess/internal/errors"
)

// MaxCompetitors caps how many competitor CEO+CFO pairs share the board.
const MaxCompetitors = 3

// BoardState is an immutable snapshot of the game. Pieces are shared between
// snapshots and never modified; Apply builds the successor state.
type BoardState struct {
	grid       [Size][Size]*Piece // grid[y][x]
	pieces     []*Piece
	turn       Side
	ply        int
	conditions map[string]any
	landscape  map[string]any
}

func NewBoardState(pieces []Piece, turn Side, ply int, conditions, landscape map[string]any) (*BoardState, error) {
	if !turn.Placeable() {
		return nil, fmt.Errorf("%w: side %s cannot hold the turn", errs.ErrInvalidBoardState, turn)
	}
	if ply < 0 {
		return nil, fmt.Errorf("%w: negative ply %d", errs.ErrInvalidBoardState, ply)
	}

	state := &BoardState{
		pieces:     make([]*Piece, 0, len(pieces)),
		turn:       turn,
		ply:        ply,
		conditions: conditions,
		landscape:  landscape,
	}
	ceos := make(map[Side]int, 2)
	for _, p := range pieces {
		if !p.Archetype.Valid() {
			return nil, fmt.Errorf("%w: unknown archetype %d", errs.ErrInvalidBoardState, int(p.Archetype))
		}
		if !p.Side.Placeable() {
			return nil, fmt.Errorf("%w: %s pieces cannot be placed", errs.ErrInvalidBoardState, p.Side)
		}
		if !p.Position.InBounds() {
			return nil, fmt.Errorf("%w: %s is out of bounds", errs.ErrInvalidBoardState, p)
		}
		if occupant := state.grid[p.Position.Y][p.Position.X]; occupant != nil {
			return nil, fmt.Errorf("%w: %s collides with %s", errs.ErrInvalidBoardState, p, *occupant)
		}
		piece := p
		state.grid[p.Position.Y][p.Position.X] = &piece
		state.pieces = append(state.pieces, &piece)
		if p.Archetype == CEO {
			ceos[p.Side]++
		}
	}

	if ceos[Company] != 1 {
		return nil, fmt.Errorf("%w: COMPANY must field exactly one CEO, got %d", errs.ErrInvalidBoardState, ceos[Company])
	}
	if ceos[Competitor] > MaxCompetitors {
		return nil, fmt.Errorf("%w: at most %d COMPETITOR CEOs allowed, got %d", errs.ErrInvalidBoardState, MaxCompetitors, ceos[Competitor])
	}
	return state, nil
}

// At returns the piece on pos, if any.
func (s *BoardState) At(pos Position) (Piece, bool) {
	if !pos.InBounds() {
		return Piece{}, false
	}
	p := s.grid[pos.Y][pos.X]
	if p == nil {
		return Piece{}, false
	}
	return *p, true
}

func (s *BoardState) IsEmpty(pos Position) bool {
	return pos.InBounds() && s.grid[pos.Y][pos.X] == nil
}

// Pieces returns the roster in its stable order.
func (s *BoardState) Pieces() []Piece {
	out := make([]Piece, len(s.pieces))
	for i, p := range s.pieces {
		out[i] = *p
	}
	return out
}

func (s *BoardState) PiecesOf(side Side) []Piece {
	out := make([]Piece, 0, len(s.pieces))
	for _, p := range s.pieces {
		if p.Side == side {
			out = append(out, *p)
		}
	}
	return out
}

func (s *BoardState) CEOCount(side Side) int {
	count := 0
	for _, p := range s.pieces {
		if p.Side == side && p.Archetype == CEO {
			count++
		}
	}
	return count
}

func (s *BoardState) Turn() Side {
	return s.turn
}

func (s *BoardState) Ply() int {
	return s.ply
}

func (s *BoardState) Conditions() map[string]any {
	return s.conditions
}

func (s *BoardState) Landscape() map[string]any {
	return s.landscape
}

// Apply returns the state after m. m must have been generated for s; the
// receiver is left untouched so every search ply sees its own snapshot.
func (s *BoardState) Apply(m Move) *BoardState {
	next := &BoardState{
		grid:       s.grid,
		pieces:     make([]*Piece, 0, len(s.pieces)),
		turn:       s.turn.Opponent(),
		ply:        s.ply + 1,
		conditions: s.conditions,
		landscape:  s.landscape,
	}

	mover := s.grid[m.From.Y][m.From.X]
	captured := s.grid[m.To.Y][m.To.X]
	var moved Piece
	if mover != nil {
		moved = mover.MovedTo(m.To)
	} else {
		moved = m.Piece.MovedTo(m.To)
	}

	next.grid[m.From.Y][m.From.X] = nil
	next.grid[m.To.Y][m.To.X] = &moved

	for _, p := range s.pieces {
		switch p {
		case captured:
			continue
		case mover:
			next.pieces = append(next.pieces, &moved)
		default:
			next.pieces = append(next.pieces, p)
		}
	}
	if mover == nil {
		// nothing stood on From; m.Piece is placed so grid and roster agree
		next.pieces = append(next.pieces, &moved)
	}
	return next
}
