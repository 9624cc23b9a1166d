package engine

import (
	"fmt"
	"math"
	"time"

	"bizchess/internal/domain/board"
	errs "bizchess/internal/errors"
)

const DefaultDepth = 3

// stopCheckInterval is how many nodes pass between calls to the stop hook.
const stopCheckInterval = 1024

type SearchStats struct {
	Nodes   int64 `json:"nodes"`
	Leaves  int64 `json:"leaves"`
	Cutoffs int64 `json:"cutoffs"`
}

type SearchResult struct {
	Move     board.Move
	Score    float64
	Depth    int
	Stats    SearchStats
	Elapsed  time.Duration
	Fallback bool // Move came from the strategic-value fallback, not minimax
	Complete bool // false when the stop hook aborted the walk
}

// Engine runs minimax with alpha-beta pruning for COMPANY against an
// adversarial COMPETITOR. An Engine holds per-search counters only and is
// not safe for concurrent use; build one per request.
type Engine struct {
	depth   int
	pruning bool
	stop    func() bool
	stopped bool
	stats   SearchStats
}

type Option func(*Engine)

// WithoutPruning disables alpha-beta cut-offs, turning the walk into plain
// minimax over the same move order.
func WithoutPruning() Option {
	return func(e *Engine) {
		e.pruning = false
	}
}

// WithStop installs a hook polled during the search; once it returns true
// the walk unwinds and the result is reported incomplete.
func WithStop(stop func() bool) Option {
	return func(e *Engine) {
		e.stop = stop
	}
}

func New(depth int, opts ...Option) *Engine {
	e := &Engine{depth: depth, pruning: true}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Depth() int {
	return e.depth
}

func (e *Engine) Stats() SearchStats {
	return e.stats
}

func sideToMove(maximizing bool) board.Side {
	if maximizing {
		return board.Company
	}
	return board.Competitor
}

// IsTerminal reports whether the game is over for side to move: either side
// has lost its last CEO, or side has no legal move.
func IsTerminal(s *board.BoardState, side board.Side) bool {
	if s.CEOCount(board.Company) == 0 || s.CEOCount(board.Competitor) == 0 {
		return true
	}
	return !HasLegalMove(s, side)
}

func (e *Engine) shouldStop() bool {
	if e.stopped {
		return true
	}
	if e.stop != nil && e.stats.Nodes%stopCheckInterval == 0 && e.stop() {
		e.stopped = true
	}
	return e.stopped
}

// Minimax returns the score of s searched to depth and the move achieving it
// (nil at leaves). Ties keep the first move encountered.
func (e *Engine) Minimax(s *board.BoardState, depth int, maximizing bool, alpha, beta float64) (float64, *board.Move) {
	e.stats.Nodes++
	if e.shouldStop() {
		return Evaluate(s), nil
	}

	if depth <= 0 || s.CEOCount(board.Company) == 0 || s.CEOCount(board.Competitor) == 0 {
		e.stats.Leaves++
		return Evaluate(s), nil
	}
	moves := candidateMoves(s, sideToMove(maximizing))
	if len(moves) == 0 {
		e.stats.Leaves++
		return Evaluate(s), nil
	}

	var best *board.Move
	bestScore := math.Inf(1)
	if maximizing {
		bestScore = math.Inf(-1)
	}

	for i := range moves {
		score, _ := e.Minimax(s.Apply(moves[i]), depth-1, !maximizing, alpha, beta)
		if maximizing {
			if score > bestScore {
				bestScore, best = score, &moves[i]
			}
			alpha = math.Max(alpha, bestScore)
		} else {
			if score < bestScore {
				bestScore, best = score, &moves[i]
			}
			beta = math.Min(beta, bestScore)
		}
		if e.pruning && beta <= alpha {
			e.stats.Cutoffs++
			break
		}
		if e.stopped {
			break
		}
	}
	return bestScore, best
}

// BestMove searches s to the engine depth and returns COMPANY's choice. When
// minimax yields no move (depth 0 or a terminal root) the legal move with the
// highest strategic value is used instead.
func (e *Engine) BestMove(s *board.BoardState) (SearchResult, error) {
	if s == nil {
		return SearchResult{}, fmt.Errorf("%w: nil board", errs.ErrInvalidBoardState)
	}

	start := time.Now()
	e.stats = SearchStats{}
	e.stopped = false

	score, mv := e.Minimax(s, e.depth, true, math.Inf(-1), math.Inf(1))
	result := SearchResult{
		Score:    score,
		Depth:    e.depth,
		Complete: !e.stopped,
	}

	if mv != nil {
		result.Move = scoreMove(s, *mv)
	} else {
		moves := LegalMoves(s, board.Company)
		if len(moves) == 0 {
			result.Stats = e.stats
			result.Elapsed = time.Since(start)
			return result, fmt.Errorf("%w: COMPANY cannot move at ply %d", errs.ErrEmptyMoveSet, s.Ply())
		}
		best := moves[0]
		for _, m := range moves[1:] {
			if m.StrategicValue > best.StrategicValue {
				best = m
			}
		}
		result.Move = best
		result.Fallback = true
	}

	result.Stats = e.stats
	result.Elapsed = time.Since(start)
	return result, nil
}

// BestMove is a one-shot search of s to depth.
func BestMove(s *board.BoardState, depth int) (board.Move, error) {
	result, err := New(depth).BestMove(s)
	if err != nil {
		return board.Move{}, err
	}
	return result.Move, nil
}
