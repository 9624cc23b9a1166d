package play

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bizchess/internal/bootstrap"
	"bizchess/internal/domain/board"
	"bizchess/internal/domain/play"
	"bizchess/internal/engine"
	errs "bizchess/internal/errors"
	"bizchess/internal/metrics"
	analysisuc "bizchess/internal/usecase/analysis"
)

type SessionStore interface {
	SaveSession(ctx context.Context, session play.Session, ttl time.Duration) error
	GetSession(ctx context.Context, id string) (play.Session, error)
}

// PlayUseCase runs games where the engine plays COMPANY and a human plays
// COMPETITOR. Sessions live in the store between turns, so any instance can
// serve the next move.
type PlayUseCase struct {
	cfg      bootstrap.Config
	log      *zap.SugaredLogger
	store    SessionStore
	searcher analysisuc.Searcher
	now      func() time.Time
}

func NewPlayUseCase(cfg bootstrap.Config, log *zap.SugaredLogger, store SessionStore, searcher analysisuc.Searcher) *PlayUseCase {
	return &PlayUseCase{
		cfg:      cfg,
		log:      log,
		store:    store,
		searcher: searcher,
		now:      time.Now,
	}
}

// Start opens a session and lets the engine make the opening move.
func (p *PlayUseCase) Start(ctx context.Context, req play.StartRequest) (play.Session, error) {
	depth, err := analysisuc.ResolveDepth(p.cfg, req.Depth)
	if err != nil {
		return play.Session{}, err
	}
	state, err := engine.InitializeBoard(req.Market)
	if err != nil {
		return play.Session{}, err
	}

	now := p.now().UTC()
	session := play.Session{
		ID:        uuid.New().String(),
		Depth:     depth,
		Status:    play.StatusActive,
		Moves:     []board.MoveView{},
		CreatedAt: now,
	}

	if over, winner := outcome(state, board.Company); over {
		session.Status, session.Winner = play.StatusFinished, winner
	} else {
		reply, next, err := p.engineReply(ctx, state, depth)
		if err != nil {
			return play.Session{}, err
		}
		session.Moves = append(session.Moves, reply.View())
		state = next
		if over, winner := outcome(state, board.Competitor); over {
			session.Status, session.Winner = play.StatusFinished, winner
		}
	}

	session.Board = state.Snapshot()
	session.UpdatedAt = now
	if err := p.store.SaveSession(ctx, session, p.cfg.PlaySessionTTL()); err != nil {
		return play.Session{}, fmt.Errorf("save session: %w", err)
	}

	p.log.Infof("play session %s started at depth %d", session.ID, depth)
	return session, nil
}

// Move applies the human COMPETITOR move and answers with the engine's
// COMPANY move unless the human move ended the game.
func (p *PlayUseCase) Move(ctx context.Context, sessionID string, req play.MoveRequest) (play.Turn, error) {
	session, err := p.store.GetSession(ctx, sessionID)
	if err != nil {
		return play.Turn{}, err
	}
	if session.Status == play.StatusFinished {
		metrics.PlayTurn("game_over")
		return play.Turn{}, fmt.Errorf("%w: session %s", errs.ErrGameOver, sessionID)
	}
	state, err := board.FromSnapshot(session.Board)
	if err != nil {
		return play.Turn{}, err
	}

	human, state, err := engine.PlayMove(state, board.Competitor, req.From, req.To)
	if err != nil {
		metrics.PlayTurn("illegal")
		return play.Turn{}, err
	}
	session.Moves = append(session.Moves, human.View())

	turn := play.Turn{
		SessionID: sessionID,
		Human:     human.View(),
	}

	if over, winner := outcome(state, board.Company); over {
		session.Status, session.Winner = play.StatusFinished, winner
	} else {
		reply, next, err := p.engineReply(ctx, state, session.Depth)
		if err != nil {
			return play.Turn{}, err
		}
		view := reply.View()
		turn.Reply = &view
		session.Moves = append(session.Moves, view)
		state = next
		if over, winner := outcome(state, board.Competitor); over {
			session.Status, session.Winner = play.StatusFinished, winner
		}
	}

	session.Board = state.Snapshot()
	session.UpdatedAt = p.now().UTC()
	if err := p.store.SaveSession(ctx, session, p.cfg.PlaySessionTTL()); err != nil {
		return play.Turn{}, fmt.Errorf("save session: %w", err)
	}
	metrics.PlayTurn("ok")

	turn.Board = session.Board
	turn.Status = session.Status
	turn.Winner = session.Winner
	return turn, nil
}

func (p *PlayUseCase) Session(ctx context.Context, sessionID string) (play.Session, error) {
	return p.store.GetSession(ctx, sessionID)
}

func (p *PlayUseCase) engineReply(ctx context.Context, state *board.BoardState, depth int) (board.Move, *board.BoardState, error) {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.SearchTimeout())
	defer cancel()

	result, err := p.searcher.Search(ctx, state, depth)
	if err != nil {
		return board.Move{}, nil, err
	}
	return engine.PlayMove(state, board.Company, result.Move.From, result.Move.To)
}

// outcome reports whether the game is over with toMove to play. The winner is
// the side still holding a CEO; a side left without moves but with its CEO
// ends the game undecided.
func outcome(state *board.BoardState, toMove board.Side) (bool, string) {
	if !engine.IsTerminal(state, toMove) {
		return false, ""
	}
	switch {
	case state.CEOCount(board.Company) == 0:
		return true, board.Competitor.String()
	case state.CEOCount(board.Competitor) == 0:
		return true, board.Company.String()
	}
	return true, ""
}
