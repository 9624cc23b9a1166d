package engine

import (
	"bizchess/internal/domain/board"
)

const (
	positionalReach      = 7.0
	positionalStep       = 0.1
	mobilityPerMove      = 0.05
	marketControlPerUnit = 0.1
	engagementBonus      = 0.2
	engagementRange      = 2
)

// Evaluation splits a position score into its parts, always from COMPANY's
// point of view.
type Evaluation struct {
	Material   float64 `json:"material" bson:"material"`
	Positional float64 `json:"positional" bson:"positional"`
	Strategic  float64 `json:"strategic" bson:"strategic"`
	Total      float64 `json:"total" bson:"total"`
}

func Evaluate(s *board.BoardState) float64 {
	return EvaluateBreakdown(s).Total
}

func EvaluateBreakdown(s *board.BoardState) Evaluation {
	company := s.PiecesOf(board.Company)
	competitor := s.PiecesOf(board.Competitor)

	var eval Evaluation
	for _, p := range company {
		eval.Material += float64(p.Value())
	}
	for _, p := range competitor {
		eval.Material -= float64(p.Value())
	}

	for _, p := range company {
		eval.Positional += (positionalReach-p.Position.CenterDistance())*positionalStep +
			mobilityPerMove*float64(countTargets(s, p))
	}

	marketControl := 0.0
	for _, p := range company {
		marketControl += float64(p.Archetype.InfluenceRadius()) * marketControlPerUnit
	}
	competitivePosition := 0.0
	for _, own := range company {
		for _, rival := range competitor {
			if own.Position.Manhattan(rival.Position) <= engagementRange {
				competitivePosition += engagementBonus
			}
		}
	}
	eval.Strategic = marketControl + competitivePosition

	eval.Total = eval.Material + eval.Positional + eval.Strategic
	return eval
}
