package board

import (
	"encoding/json"
	"fmt"
)

type Move struct {
	From     Position
	To       Position
	Piece    Piece
	Captured *Piece

	StrategicValue float64
	RiskScore      float64
	ExpectedReturn float64
}

func (m Move) IsCapture() bool {
	return m.Captured != nil
}

func (m Move) String() string {
	if m.Captured != nil {
		return fmt.Sprintf("%s %s->%s x%s", m.Piece.Archetype, m.From, m.To, m.Captured.Archetype)
	}
	return fmt.Sprintf("%s %s->%s", m.Piece.Archetype, m.From, m.To)
}

// MoveView is the caller-facing shape of a move.
type MoveView struct {
	Piece          string   `json:"piece" bson:"piece"`
	Side           string   `json:"side" bson:"side"`
	From           Position `json:"from" bson:"from"`
	To             Position `json:"to" bson:"to"`
	Captured       string   `json:"captured,omitempty" bson:"captured,omitempty"`
	StrategicValue float64  `json:"strategic_value" bson:"strategic_value"`
	RiskScore      float64  `json:"risk_score" bson:"risk_score"`
	ExpectedReturn float64  `json:"expected_return" bson:"expected_return"`
}

func (m Move) View() MoveView {
	view := MoveView{
		Piece:          m.Piece.Archetype.String(),
		Side:           m.Piece.Side.String(),
		From:           m.From,
		To:             m.To,
		StrategicValue: m.StrategicValue,
		RiskScore:      m.RiskScore,
		ExpectedReturn: m.ExpectedReturn,
	}
	if m.Captured != nil {
		view.Captured = m.Captured.Archetype.String()
	}
	return view
}

func (m Move) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.View())
}
