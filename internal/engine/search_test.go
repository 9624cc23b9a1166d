package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bizchess/internal/domain/board"
	errs "bizchess/internal/errors"
)

// skirmish is a sparse middle-game position small enough to search without
// pruning.
func skirmish(t *testing.T) *board.BoardState {
	return mustState(t, board.Company,
		board.NewPiece(board.CEO, board.Company, 4, 7),
		board.NewPiece(board.CFO, board.Company, 3, 5),
		board.NewPiece(board.VP, board.Company, 1, 6),
		board.NewPiece(board.Manager, board.Company, 6, 5),
		board.NewPiece(board.CEO, board.Competitor, 3, 0),
		board.NewPiece(board.CFO, board.Competitor, 5, 2),
		board.NewPiece(board.CMO, board.Competitor, 1, 1),
		board.NewPiece(board.Manager, board.Competitor, 6, 2),
	)
}

func TestAlphaBetaMatchesPlainMinimax(t *testing.T) {
	s := skirmish(t)

	for _, depth := range []int{1, 2, 3} {
		pruned := New(depth)
		full := New(depth, WithoutPruning())

		prunedScore, prunedMove := pruned.Minimax(s, depth, true, math.Inf(-1), math.Inf(1))
		fullScore, fullMove := full.Minimax(s, depth, true, math.Inf(-1), math.Inf(1))

		require.NotNil(t, prunedMove)
		require.NotNil(t, fullMove)
		assert.InDelta(t, fullScore, prunedScore, 1e-9, "depth %d", depth)
		assert.Equal(t, fullMove.From, prunedMove.From, "depth %d", depth)
		assert.Equal(t, fullMove.To, prunedMove.To, "depth %d", depth)
		assert.LessOrEqual(t, pruned.Stats().Nodes, full.Stats().Nodes)
		assert.Zero(t, full.Stats().Cutoffs)
	}
}

func TestBestMoveIsDeterministic(t *testing.T) {
	s, err := InitializeBoard(market(2))
	require.NoError(t, err)

	first, err := New(2).BestMove(s)
	require.NoError(t, err)
	second, err := New(2).BestMove(s)
	require.NoError(t, err)

	assert.Equal(t, first.Move, second.Move)
	assert.Equal(t, first.Score, second.Score)
	assert.Equal(t, first.Stats, second.Stats)
	assert.True(t, first.Complete)
	assert.False(t, first.Fallback)
	assert.Equal(t, board.Company, first.Move.Piece.Side)
	assert.Greater(t, first.Move.StrategicValue, 0.0)
}

func TestBestMoveTakesCEO(t *testing.T) {
	s := mustState(t, board.Company,
		board.NewPiece(board.CEO, board.Company, 7, 7),
		board.NewPiece(board.CFO, board.Company, 0, 4),
		board.NewPiece(board.CEO, board.Competitor, 0, 0),
		board.NewPiece(board.Manager, board.Competitor, 5, 0),
	)

	for _, depth := range []int{1, 2} {
		m, err := BestMove(s, depth)
		require.NoError(t, err)
		assert.Equal(t, board.NewPosition(0, 0), m.To, "depth %d", depth)
		require.True(t, m.IsCapture())
		assert.Equal(t, board.CEO, m.Captured.Archetype)
	}
}

func TestCapturedCEOIsTerminal(t *testing.T) {
	s := mustState(t, board.Competitor,
		board.NewPiece(board.CEO, board.Company, 4, 4),
		board.NewPiece(board.CFO, board.Competitor, 4, 6),
		board.NewPiece(board.CEO, board.Competitor, 0, 0),
	)

	_, next, err := PlayMove(s, board.Competitor, board.NewPosition(4, 6), board.NewPosition(4, 4))
	require.NoError(t, err)
	require.Zero(t, next.CEOCount(board.Company))

	assert.True(t, IsTerminal(next, board.Company))
	assert.True(t, IsTerminal(next, board.Competitor))

	score, mv := New(3).Minimax(next, 3, true, math.Inf(-1), math.Inf(1))
	assert.Nil(t, mv)
	assert.Equal(t, Evaluate(next), score)

	_, err = New(3).BestMove(next)
	assert.ErrorIs(t, err, errs.ErrNoLegalMoves)
}

func TestBestMoveWithoutLegalMoves(t *testing.T) {
	// every square next to the COMPANY CEO lies inside the rival CEO's radius
	s := mustState(t, board.Company,
		board.NewPiece(board.CEO, board.Company, 0, 0),
		board.NewPiece(board.CEO, board.Competitor, 2, 1),
	)
	require.True(t, IsTerminal(s, board.Company))

	_, err := BestMove(s, 3)
	require.ErrorIs(t, err, errs.ErrNoLegalMoves)
	assert.ErrorIs(t, err, errs.ErrEmptyMoveSet)
}

func TestBestMoveFallsBackToStrategicValue(t *testing.T) {
	s, err := InitializeBoard(market(1))
	require.NoError(t, err)

	result, err := New(0).BestMove(s)
	require.NoError(t, err)
	assert.True(t, result.Fallback)

	moves := LegalMoves(s, board.Company)
	for _, m := range moves {
		assert.LessOrEqual(t, m.StrategicValue, result.Move.StrategicValue, m.String())
	}
}

func TestBestMoveWithoutCompetitors(t *testing.T) {
	s, err := InitializeBoard(board.MarketData{})
	require.NoError(t, err)

	result, err := New(DefaultDepth).BestMove(s)
	require.NoError(t, err)
	assert.True(t, result.Fallback)
	assert.Equal(t, board.Company, result.Move.Piece.Side)
}

func TestStopHookAbortsSearch(t *testing.T) {
	s, err := InitializeBoard(market(3))
	require.NoError(t, err)

	e := New(3, WithoutPruning(), WithStop(func() bool { return true }))
	result, err := e.BestMove(s)
	require.NoError(t, err)

	assert.False(t, result.Complete)
	assert.Equal(t, int64(stopCheckInterval), result.Stats.Nodes)
	assert.Equal(t, board.Company, result.Move.Piece.Side)
}

func TestBestMoveRejectsNilBoard(t *testing.T) {
	_, err := New(1).BestMove(nil)
	assert.ErrorIs(t, err, errs.ErrInvalidBoardState)
}
