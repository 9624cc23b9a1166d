package play

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"bizchess/internal/bootstrap"
	"bizchess/internal/domain/board"
	"bizchess/internal/domain/play"
	"bizchess/internal/engine"
	errs "bizchess/internal/errors"
	analysisuc "bizchess/internal/usecase/analysis"
)

type memorySessions struct {
	mu       sync.Mutex
	sessions map[string]play.Session
}

func (m *memorySessions) SaveSession(_ context.Context, s play.Session, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

func (m *memorySessions) GetSession(_ context.Context, id string) (play.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return play.Session{}, fmt.Errorf("%w: %s", errs.ErrSessionNotFound, id)
	}
	return s, nil
}

func newUseCase(t *testing.T) (*PlayUseCase, *memorySessions) {
	log := zaptest.NewLogger(t).Sugar()
	store := &memorySessions{sessions: make(map[string]play.Session)}
	cfg := bootstrap.Config{
		SearchDepth:       1,
		MaxSearchDepth:    3,
		SearchTimeoutMs:   10000,
		PlaySessionTTLSec: 60,
	}
	return NewPlayUseCase(cfg, log, store, analysisuc.NewDeadlineSearcher(log)), store
}

func twoRivals() board.MarketData {
	return board.MarketData{Competitors: []board.Rival{{Name: "Acme"}, {Name: "Globex"}}}
}

// firstLegal picks the first legal COMPETITOR move in the session.
func firstLegal(t *testing.T, session play.Session) play.MoveRequest {
	t.Helper()
	state, err := board.FromSnapshot(session.Board)
	require.NoError(t, err)
	moves := engine.LegalMoves(state, board.Competitor)
	require.NotEmpty(t, moves)
	return play.MoveRequest{From: moves[0].From, To: moves[0].To}
}

func TestStartPlaysOpeningMove(t *testing.T) {
	uc, store := newUseCase(t)

	session, err := uc.Start(context.Background(), play.StartRequest{Market: twoRivals()})
	require.NoError(t, err)

	assert.Equal(t, play.StatusActive, session.Status)
	assert.Equal(t, 1, session.Depth)
	require.Len(t, session.Moves, 1)
	assert.Equal(t, "COMPANY", session.Moves[0].Side)
	assert.Equal(t, "COMPETITOR", session.Board.Turn)
	assert.Equal(t, 1, session.Board.Ply)

	stored, err := store.GetSession(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.Board, stored.Board)
}

func TestStartWithoutCompetitorsIsOver(t *testing.T) {
	uc, _ := newUseCase(t)

	session, err := uc.Start(context.Background(), play.StartRequest{})
	require.NoError(t, err)
	assert.Equal(t, play.StatusFinished, session.Status)
	assert.Equal(t, "COMPANY", session.Winner)
	assert.Empty(t, session.Moves)

	_, err = uc.Move(context.Background(), session.ID, play.MoveRequest{})
	assert.ErrorIs(t, err, errs.ErrGameOver)
}

func TestMoveAppliesHumanAndEngineReply(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	session, err := uc.Start(ctx, play.StartRequest{Market: twoRivals(), Depth: 2})
	require.NoError(t, err)

	req := firstLegal(t, session)
	turn, err := uc.Move(ctx, session.ID, req)
	require.NoError(t, err)

	assert.Equal(t, req.From, turn.Human.From)
	assert.Equal(t, req.To, turn.Human.To)
	assert.Equal(t, "COMPETITOR", turn.Human.Side)
	require.NotNil(t, turn.Reply)
	assert.Equal(t, "COMPANY", turn.Reply.Side)
	assert.Equal(t, "COMPETITOR", turn.Board.Turn)
	assert.Equal(t, 3, turn.Board.Ply)

	updated, err := uc.Session(ctx, session.ID)
	require.NoError(t, err)
	assert.Len(t, updated.Moves, 3)
	assert.Equal(t, turn.Board, updated.Board)
}

func TestMoveRejectsIllegalMove(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	session, err := uc.Start(ctx, play.StartRequest{Market: twoRivals()})
	require.NoError(t, err)

	// COMPANY pieces are not the human's to move
	_, err = uc.Move(ctx, session.ID, play.MoveRequest{From: board.NewPosition(4, 7), To: board.NewPosition(5, 7)})
	assert.ErrorIs(t, err, errs.ErrIllegalMove)

	_, err = uc.Move(ctx, session.ID, play.MoveRequest{From: board.NewPosition(1, 1), To: board.NewPosition(7, 7)})
	assert.ErrorIs(t, err, errs.ErrIllegalMove)

	unchanged, err := uc.Session(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.Board, unchanged.Board)
}

func TestMoveUnknownSession(t *testing.T) {
	uc, _ := newUseCase(t)
	_, err := uc.Move(context.Background(), "nope", play.MoveRequest{})
	assert.ErrorIs(t, err, errs.ErrSessionNotFound)
}

func TestCapturingLastCEOEndsGame(t *testing.T) {
	uc, store := newUseCase(t)
	ctx := context.Background()

	// the rival CFO can take the lone COMPANY CEO straight away
	state, err := board.NewBoardState([]board.Piece{
		board.NewPiece(board.CEO, board.Company, 4, 4),
		board.NewPiece(board.CFO, board.Competitor, 4, 6),
		board.NewPiece(board.CEO, board.Competitor, 0, 0),
	}, board.Competitor, 7, nil, nil)
	require.NoError(t, err)
	require.NoError(t, store.SaveSession(ctx, play.Session{
		ID:     "endgame",
		Depth:  1,
		Status: play.StatusActive,
		Board:  state.Snapshot(),
	}, time.Minute))

	turn, err := uc.Move(ctx, "endgame", play.MoveRequest{From: board.NewPosition(4, 6), To: board.NewPosition(4, 4)})
	require.NoError(t, err)
	assert.Equal(t, play.StatusFinished, turn.Status)
	assert.Equal(t, "COMPETITOR", turn.Winner)
	assert.Nil(t, turn.Reply)
	assert.Equal(t, "CEO", turn.Human.Captured)

	_, err = uc.Move(ctx, "endgame", play.MoveRequest{})
	assert.ErrorIs(t, err, errs.ErrGameOver)
}

func TestStartRejectsBadDepth(t *testing.T) {
	uc, _ := newUseCase(t)
	_, err := uc.Start(context.Background(), play.StartRequest{Market: twoRivals(), Depth: 4})
	assert.ErrorIs(t, err, errs.ErrInvalidDepth)
}
