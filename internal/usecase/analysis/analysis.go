package analysis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"bizchess/internal/bootstrap"
	"bizchess/internal/domain/analysis"
	"bizchess/internal/domain/board"
	"bizchess/internal/engine"
	errs "bizchess/internal/errors"
	"bizchess/internal/metrics"
)

const maxBatchSize = 32

type AnalysisStore interface {
	SaveAnalysis(ctx context.Context, a analysis.Analysis) error
	GetAnalysis(ctx context.Context, id string) (analysis.Analysis, error)
	ListSessionAnalyses(ctx context.Context, sessionID string, page, limit int) ([]analysis.Analysis, bool, error)
}

type ResultCache interface {
	GetResult(ctx context.Context, key string) (analysis.Result, bool, error)
	PutResult(ctx context.Context, key string, result analysis.Result, ttl time.Duration) error
}

type AnalysisUseCase struct {
	cfg      bootstrap.Config
	log      *zap.SugaredLogger
	store    AnalysisStore
	cache    ResultCache
	searcher Searcher
	now      func() time.Time
}

func NewAnalysisUseCase(cfg bootstrap.Config, log *zap.SugaredLogger, store AnalysisStore, cache ResultCache, searcher Searcher) *AnalysisUseCase {
	return &AnalysisUseCase{
		cfg:      cfg,
		log:      log,
		store:    store,
		cache:    cache,
		searcher: searcher,
		now:      time.Now,
	}
}

// ResolveDepth maps a requested depth onto the configured range; 0 selects
// the default depth.
func ResolveDepth(cfg bootstrap.Config, depth int) (int, error) {
	if depth == 0 {
		depth = cfg.SearchDepth
	}
	if depth < 1 || depth > cfg.MaxSearchDepth {
		return 0, fmt.Errorf("%w: %d is outside 1..%d", errs.ErrInvalidDepth, depth, cfg.MaxSearchDepth)
	}
	return depth, nil
}

func (a *AnalysisUseCase) InitializeBoard(ctx context.Context, market board.MarketData) (board.Snapshot, error) {
	state, err := engine.InitializeBoard(market)
	if err != nil {
		return board.Snapshot{}, err
	}
	return state.Snapshot(), nil
}

// position resolves the board a request refers to. A request without a
// board or market data analyses the default opening.
func position(req analysis.Request) (*board.BoardState, error) {
	if req.Board != nil {
		return board.FromSnapshot(*req.Board)
	}
	market := board.MarketData{}
	if req.Market != nil {
		market = *req.Market
	}
	return engine.InitializeBoard(market)
}

func cacheKey(state *board.BoardState, depth int) string {
	return fmt.Sprintf("%016x:%d", engine.Hash(state), depth)
}

func (a *AnalysisUseCase) AnalyzeBestMove(ctx context.Context, req analysis.Request) (analysis.Analysis, error) {
	depth, err := ResolveDepth(a.cfg, req.Depth)
	if err != nil {
		return analysis.Analysis{}, err
	}
	state, err := position(req)
	if err != nil {
		return analysis.Analysis{}, err
	}

	key := cacheKey(state, depth)
	result, cached := a.lookup(ctx, key)
	if !cached {
		searchCtx, cancel := context.WithTimeout(ctx, a.cfg.SearchTimeout())
		result, err = a.searcher.Search(searchCtx, state, depth)
		cancel()
		if err != nil {
			if !errors.Is(err, errs.ErrNoLegalMoves) {
				metrics.SearchFailed(metrics.OutcomeError)
			}
			return analysis.Analysis{}, err
		}
		if !result.TimedOut {
			if err := a.cache.PutResult(ctx, key, result, a.cfg.ResultCacheTTL()); err != nil {
				a.log.Warnf("failed to cache result %s: %v", key, err)
			}
		}
	}

	record := analysis.Analysis{
		ID:          uuid.New().String(),
		SessionID:   req.SessionID,
		PositionKey: key,
		Board:       state.Snapshot(),
		Result:      result,
		Cached:      cached,
		CreatedAt:   a.now().UTC(),
	}
	if err := a.store.SaveAnalysis(ctx, record); err != nil {
		return analysis.Analysis{}, fmt.Errorf("save analysis: %w", err)
	}

	a.log.Infow("analysis done",
		"id", record.ID,
		"session", record.SessionID,
		"depth", result.Depth,
		"move", result.Move.Piece,
		"cached", cached,
		"timed_out", result.TimedOut,
	)
	return record, nil
}

func (a *AnalysisUseCase) lookup(ctx context.Context, key string) (analysis.Result, bool) {
	result, ok, err := a.cache.GetResult(ctx, key)
	if err != nil {
		a.log.Warnf("result cache lookup %s failed: %v", key, err)
		return analysis.Result{}, false
	}
	if !ok {
		metrics.CacheMiss()
		return analysis.Result{}, false
	}
	metrics.CacheHit()
	return result, true
}

// AnalyzeBatch runs independent analyses concurrently. A failing item does
// not cancel its siblings; its error is reported in place.
func (a *AnalysisUseCase) AnalyzeBatch(ctx context.Context, reqs []analysis.Request) ([]analysis.BatchItem, error) {
	if len(reqs) == 0 || len(reqs) > maxBatchSize {
		return nil, fmt.Errorf("%w: batch needs 1..%d requests, got %d", errs.ErrInvalidRequest, maxBatchSize, len(reqs))
	}

	items := make([]analysis.BatchItem, len(reqs))

	var g errgroup.Group
	g.SetLimit(max(a.cfg.MaxParallelSearches, 1))
	for i, req := range reqs {
		g.Go(func() error {
			record, err := a.AnalyzeBestMove(ctx, req)
			if err != nil {
				items[i].Error = err.Error()
				return nil
			}
			items[i].Analysis = &record
			return nil
		})
	}
	_ = g.Wait()

	return items, nil
}

func (a *AnalysisUseCase) GetAnalysis(ctx context.Context, id string) (analysis.Analysis, error) {
	if id == "" {
		return analysis.Analysis{}, fmt.Errorf("%w: empty analysis id", errs.ErrInvalidRequest)
	}
	return a.store.GetAnalysis(ctx, id)
}

func (a *AnalysisUseCase) SessionHistory(ctx context.Context, sessionID string, page int) (analysis.HistoryPage, error) {
	if sessionID == "" || page < 1 {
		return analysis.HistoryPage{}, fmt.Errorf("%w: session %q page %d", errs.ErrInvalidRequest, sessionID, page)
	}
	items, hasMore, err := a.store.ListSessionAnalyses(ctx, sessionID, page, a.cfg.PageLimitHistory)
	if err != nil {
		return analysis.HistoryPage{}, err
	}
	if items == nil {
		items = []analysis.Analysis{}
	}
	return analysis.HistoryPage{
		SessionID: sessionID,
		Page:      page,
		Items:     items,
		HasMore:   hasMore,
	}, nil
}
