package engine

import (
	"fmt"

	"bizchess/internal/domain/board"
	errs "bizchess/internal/errors"
)

type direction struct {
	dx, dy int
}

var (
	orthogonal = []direction{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}
	diagonal   = []direction{{1, 1}, {1, -1}, {-1, -1}, {-1, 1}}
	allRays    = []direction{{0, 1}, {1, 0}, {0, -1}, {-1, 0}, {1, 1}, {1, -1}, {-1, -1}, {-1, 1}}
	vpOffsets  = []direction{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
)

// forward is the rank step a manager of side advances by. COMPANY starts on
// the high ranks and moves towards rank 0.
func forward(side board.Side) int {
	if side == board.Company {
		return -1
	}
	return 1
}

// forEachTarget calls visit with every legal destination of p, in generation
// order, until visit returns false. It reports whether the walk finished.
func forEachTarget(s *board.BoardState, p board.Piece, visit func(to board.Position) bool) bool {
	from := p.Position
	switch p.Archetype {
	case board.CEO:
		for _, d := range allRays {
			to := from.Add(d.dx, d.dy)
			if !to.InBounds() || isFriendly(s, to, p.Side) || isThreatened(s, to, p.Side) {
				continue
			}
			if !visit(to) {
				return false
			}
		}
	case board.CFO:
		return slide(s, p, allRays, visit)
	case board.CTO:
		return slide(s, p, orthogonal, visit)
	case board.CMO:
		return slide(s, p, diagonal, visit)
	case board.VP:
		for _, d := range vpOffsets {
			to := from.Add(d.dx, d.dy)
			if !to.InBounds() || isFriendly(s, to, p.Side) {
				continue
			}
			if !visit(to) {
				return false
			}
		}
	case board.Manager:
		dy := forward(p.Side)
		if ahead := from.Add(0, dy); s.IsEmpty(ahead) {
			if !visit(ahead) {
				return false
			}
		}
		for _, dx := range [2]int{-1, 1} {
			to := from.Add(dx, dy)
			if occupant, ok := s.At(to); ok && occupant.Side != p.Side {
				if !visit(to) {
					return false
				}
			}
		}
	}
	return true
}

// slide extends a ray per direction until it leaves the board, meets a
// friendly piece (excluded) or captures an opposing one (included).
func slide(s *board.BoardState, p board.Piece, dirs []direction, visit func(board.Position) bool) bool {
	for _, d := range dirs {
		to := p.Position.Add(d.dx, d.dy)
		for to.InBounds() {
			occupant, occupied := s.At(to)
			if occupied && occupant.Side == p.Side {
				break
			}
			if !visit(to) {
				return false
			}
			if occupied {
				break
			}
			to = to.Add(d.dx, d.dy)
		}
	}
	return true
}

func isFriendly(s *board.BoardState, pos board.Position, side board.Side) bool {
	occupant, ok := s.At(pos)
	return ok && occupant.Side == side
}

// isThreatened reports whether pos lies inside the influence radius of any
// piece opposing side. This is a distance heuristic, not attack simulation.
func isThreatened(s *board.BoardState, pos board.Position, side board.Side) bool {
	for _, p := range s.PiecesOf(side.Opponent()) {
		if covers(p, pos) {
			return true
		}
	}
	return false
}

func rawMove(s *board.BoardState, p board.Piece, to board.Position) board.Move {
	m := board.Move{From: p.Position, To: to, Piece: p}
	if captured, ok := s.At(to); ok {
		m.Captured = &captured
	}
	return m
}

func scoreMove(s *board.BoardState, m board.Move) board.Move {
	m.StrategicValue = StrategicValue(s, m.Piece, m.To)
	m.RiskScore = RiskScore(s, m.Piece, m.To)
	m.ExpectedReturn = ExpectedReturn(s, m.Piece, m.To)
	return m
}

// candidateMoves lists the moves of side without feature scores. The search
// only needs scores for the move it finally returns.
func candidateMoves(s *board.BoardState, side board.Side) []board.Move {
	var moves []board.Move
	for _, p := range s.PiecesOf(side) {
		forEachTarget(s, p, func(to board.Position) bool {
			moves = append(moves, rawMove(s, p, to))
			return true
		})
	}
	return moves
}

// PieceMoves returns the scored legal moves of a single piece.
func PieceMoves(s *board.BoardState, p board.Piece) []board.Move {
	var moves []board.Move
	forEachTarget(s, p, func(to board.Position) bool {
		moves = append(moves, scoreMove(s, rawMove(s, p, to)))
		return true
	})
	return moves
}

// LegalMoves returns every scored legal move of side in generation order:
// roster order first, then each archetype's fixed direction order.
func LegalMoves(s *board.BoardState, side board.Side) []board.Move {
	var moves []board.Move
	for _, p := range s.PiecesOf(side) {
		moves = append(moves, PieceMoves(s, p)...)
	}
	return moves
}

func countTargets(s *board.BoardState, p board.Piece) int {
	n := 0
	forEachTarget(s, p, func(board.Position) bool {
		n++
		return true
	})
	return n
}

func HasLegalMove(s *board.BoardState, side board.Side) bool {
	for _, p := range s.PiecesOf(side) {
		if !forEachTarget(s, p, func(board.Position) bool { return false }) {
			return true
		}
	}
	return false
}

// PlayMove validates and applies an externally chosen move for side.
func PlayMove(s *board.BoardState, side board.Side, from, to board.Position) (board.Move, *board.BoardState, error) {
	if s.Turn() != side {
		return board.Move{}, nil, fmt.Errorf("%w: it is %s's turn", errs.ErrIllegalMove, s.Turn())
	}
	p, ok := s.At(from)
	if !ok || p.Side != side {
		return board.Move{}, nil, fmt.Errorf("%w: no %s piece on %s", errs.ErrIllegalMove, side, from)
	}

	legal := false
	forEachTarget(s, p, func(target board.Position) bool {
		if target == to {
			legal = true
			return false
		}
		return true
	})
	if !legal {
		return board.Move{}, nil, fmt.Errorf("%w: %s cannot reach %s", errs.ErrIllegalMove, p, to)
	}

	m := scoreMove(s, rawMove(s, p, to))
	return m, s.Apply(m), nil
}
