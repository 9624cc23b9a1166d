package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bizchess/internal/domain/board"
)

func TestEvaluateOpeningFavoursCompany(t *testing.T) {
	s, err := InitializeBoard(market(1))
	require.NoError(t, err)

	eval := EvaluateBreakdown(s)
	assert.InDelta(t, 190.0, eval.Material, 1e-9)
	assert.Greater(t, eval.Positional, 0.0)
	assert.Greater(t, Evaluate(s), 0.0)
	assert.InDelta(t, eval.Material+eval.Positional+eval.Strategic, eval.Total, 1e-9)
}

func TestEvaluateComponents(t *testing.T) {
	lone := mustState(t, board.Company,
		board.NewPiece(board.CEO, board.Company, 0, 0),
	)
	eval := EvaluateBreakdown(lone)
	assert.InDelta(t, 1000.0, eval.Material, 1e-9)
	assert.InDelta(t, 0.15, eval.Positional, 1e-9) // corner square, three moves
	assert.InDelta(t, 0.3, eval.Strategic, 1e-9)

	pressed := mustState(t, board.Company,
		board.NewPiece(board.CEO, board.Company, 0, 0),
		board.NewPiece(board.Manager, board.Competitor, 0, 2),
	)
	eval = EvaluateBreakdown(pressed)
	assert.InDelta(t, 990.0, eval.Material, 1e-9)
	assert.InDelta(t, 0.1, eval.Positional, 1e-9)
	assert.InDelta(t, 0.5, eval.Strategic, 1e-9)
	assert.InDelta(t, 990.6, Evaluate(pressed), 1e-9)
}

func TestMoveFeatureScores(t *testing.T) {
	s := mustState(t, board.Company,
		board.NewPiece(board.CEO, board.Company, 7, 7),
		board.NewPiece(board.CFO, board.Company, 3, 5),
		board.NewPiece(board.CFO, board.Competitor, 3, 1),
	)
	cfo, _ := s.At(board.NewPosition(3, 5))
	dest := board.NewPosition(3, 3)

	assert.InDelta(t, 2.1, StrategicValue(s, cfo, dest), 1e-9)
	assert.InDelta(t, 1.1, RiskScore(s, cfo, dest), 1e-9)
	assert.InDelta(t, 9.7, ExpectedReturn(s, cfo, dest), 1e-9)

	var found bool
	for _, m := range PieceMoves(s, cfo) {
		if m.To != dest {
			continue
		}
		found = true
		assert.InDelta(t, 2.1, m.StrategicValue, 1e-9)
		assert.InDelta(t, 1.1, m.RiskScore, 1e-9)
		assert.InDelta(t, 9.7, m.ExpectedReturn, 1e-9)
	}
	assert.True(t, found)
}

func TestCenterBonusNeverNegative(t *testing.T) {
	assert.Zero(t, centerBonus(board.NewPosition(0, 0)))
	assert.InDelta(t, 0.4, centerBonus(board.NewPosition(4, 4)), 1e-9)
}
