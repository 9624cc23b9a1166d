package engine

import (
	"math"

	"bizchess/internal/domain/board"
)

// Feature weights used to rank candidate moves. They are heuristics that
// order moves, not calibrated business metrics.
const (
	centerBonusBase      = 0.5
	centerBonusStep      = 0.1
	controlBonusPerCell  = 0.1
	exposurePerAttacker  = 0.2
	returnValueFactor    = 0.1
	opportunityBonus     = 0.5
	competitivePerRival  = 0.2
	competitiveRange     = 2
	riskValueDenominator = 100.0
)

// StrategicValue = archetype weight + centre bonus + control bonus at dest.
func StrategicValue(s *board.BoardState, p board.Piece, dest board.Position) float64 {
	return p.Archetype.Weight() + centerBonus(dest) + controlBonus(s, dest, p.Side)
}

// RiskScore sums value/100 of each opposing piece whose influence radius
// covers dest, plus the exposure risk of dest.
func RiskScore(s *board.BoardState, p board.Piece, dest board.Position) float64 {
	risk := 0.0
	for _, opp := range s.PiecesOf(p.Side.Opponent()) {
		if covers(opp, dest) {
			risk += float64(opp.Value()) / riskValueDenominator
		}
	}
	return risk + exposureRisk(s, dest, p.Side)
}

func ExpectedReturn(s *board.BoardState, p board.Piece, dest board.Position) float64 {
	return float64(p.Value())*returnValueFactor + opportunityBonus + competitiveBonus(s, dest, p.Side)
}

func centerBonus(dest board.Position) float64 {
	return math.Max(0, centerBonusBase-dest.CenterDistance()*centerBonusStep)
}

// controlBonus counts neighbouring squares that are empty or held by side.
func controlBonus(s *board.BoardState, dest board.Position, side board.Side) float64 {
	bonus := 0.0
	for _, d := range allRays {
		n := dest.Add(d.dx, d.dy)
		if !n.InBounds() {
			continue
		}
		if occupant, ok := s.At(n); !ok || occupant.Side == side {
			bonus += controlBonusPerCell
		}
	}
	return bonus
}

func exposureRisk(s *board.BoardState, dest board.Position, side board.Side) float64 {
	risk := 0.0
	for _, opp := range s.PiecesOf(side.Opponent()) {
		if covers(opp, dest) {
			risk += exposurePerAttacker
		}
	}
	return risk
}

func competitiveBonus(s *board.BoardState, dest board.Position, side board.Side) float64 {
	bonus := 0.0
	for _, opp := range s.PiecesOf(side.Opponent()) {
		if opp.Position.Manhattan(dest) <= competitiveRange {
			bonus += competitivePerRival
		}
	}
	return bonus
}

func covers(p board.Piece, pos board.Position) bool {
	return p.Position.Manhattan(pos) <= p.Archetype.InfluenceRadius()
}
