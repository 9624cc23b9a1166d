package analysis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"bizchess/internal/domain/analysis"
	"bizchess/internal/domain/board"
	"bizchess/internal/engine"
	errs "bizchess/internal/errors"
	"bizchess/internal/metrics"
)

// Searcher finds COMPANY's best move in a position.
type Searcher interface {
	Search(ctx context.Context, state *board.BoardState, depth int) (analysis.Result, error)
}

// DeadlineSearcher runs the engine in process with iterative deepening. When
// ctx expires mid-search the deepest fully searched answer is returned and
// the result is flagged TimedOut.
type DeadlineSearcher struct {
	log *zap.SugaredLogger
}

func NewDeadlineSearcher(log *zap.SugaredLogger) *DeadlineSearcher {
	return &DeadlineSearcher{log: log}
}

func (d *DeadlineSearcher) Search(ctx context.Context, state *board.BoardState, depth int) (analysis.Result, error) {
	if depth < 1 {
		return analysis.Result{}, fmt.Errorf("%w: %d", errs.ErrInvalidDepth, depth)
	}
	start := time.Now()
	stop := func() bool { return ctx.Err() != nil }

	var (
		best      engine.SearchResult
		completed bool
		stats     engine.SearchStats
	)
	for current := 1; current <= depth; current++ {
		res, err := engine.New(current, engine.WithStop(stop)).BestMove(state)
		stats.Nodes += res.Stats.Nodes
		stats.Leaves += res.Stats.Leaves
		stats.Cutoffs += res.Stats.Cutoffs
		if err != nil {
			if errors.Is(err, errs.ErrNoLegalMoves) {
				metrics.SearchFailed(metrics.OutcomeNoMoves)
			}
			return analysis.Result{}, err
		}
		if !res.Complete {
			if !completed {
				// nothing finished yet, the partial walk is better than no answer
				best = res
			}
			d.log.Warnf("search stopped at depth %d of %d after %s", current, depth, time.Since(start))
			return d.result(state, best, stats, start, true), nil
		}
		best, completed = res, true
	}
	return d.result(state, best, stats, start, false), nil
}

func (d *DeadlineSearcher) result(state *board.BoardState, res engine.SearchResult, stats engine.SearchStats, start time.Time, timedOut bool) analysis.Result {
	elapsed := time.Since(start)

	outcome := metrics.OutcomeOK
	switch {
	case timedOut:
		outcome = metrics.OutcomeTimeout
	case res.Fallback:
		outcome = metrics.OutcomeFallback
	}
	metrics.ObserveSearch(res.Depth, stats, elapsed, outcome)

	depth := res.Depth
	if timedOut && !res.Complete {
		depth = 0
	}
	return analysis.Result{
		Move:       res.Move.View(),
		Score:      res.Score,
		Depth:      depth,
		Evaluation: engine.EvaluateBreakdown(state),
		Stats:      stats,
		ElapsedMs:  elapsed.Milliseconds(),
		Fallback:   res.Fallback,
		TimedOut:   timedOut,
	}
}
