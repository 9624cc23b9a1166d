package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"bizchess/internal/bootstrap"
	"bizchess/internal/domain/analysis"
	"bizchess/internal/domain/board"
	errs "bizchess/internal/errors"
	"bizchess/internal/httpresponse"
	analysisuc "bizchess/internal/usecase/analysis"
)

type memoryStore struct {
	mu    sync.Mutex
	items map[string]analysis.Analysis
}

func (m *memoryStore) SaveAnalysis(_ context.Context, a analysis.Analysis) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[a.ID] = a
	return nil
}

func (m *memoryStore) GetAnalysis(_ context.Context, id string) (analysis.Analysis, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.items[id]
	if !ok {
		return analysis.Analysis{}, fmt.Errorf("%w: %s", errs.ErrAnalysisNotFound, id)
	}
	return a, nil
}

func (m *memoryStore) ListSessionAnalyses(_ context.Context, sessionID string, page, limit int) ([]analysis.Analysis, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []analysis.Analysis
	for _, a := range m.items {
		if a.SessionID == sessionID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	start := (page - 1) * limit
	if start >= len(out) {
		return nil, false, nil
	}
	end := min(start+limit, len(out))
	return out[start:end], end < len(out), nil
}

type noCache struct{}

func (noCache) GetResult(context.Context, string) (analysis.Result, bool, error) {
	return analysis.Result{}, false, nil
}

func (noCache) PutResult(context.Context, string, analysis.Result, time.Duration) error {
	return nil
}

func newRouter(t *testing.T) http.Handler {
	log := zaptest.NewLogger(t).Sugar()
	cfg := bootstrap.Config{
		SearchDepth:         1,
		MaxSearchDepth:      3,
		SearchTimeoutMs:     10000,
		ResultCacheTTLSec:   60,
		MaxParallelSearches: 2,
		PageLimitHistory:    10,
	}
	uc := analysisuc.NewAnalysisUseCase(cfg, log, &memoryStore{items: map[string]analysis.Analysis{}}, noCache{}, analysisuc.NewDeadlineSearcher(log))

	r := chi.NewRouter()
	NewAnalysisHandler(cfg, log, uc).Routes(r)
	return r
}

func do(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var payload bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			payload.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&payload).Encode(b))
		}
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, &payload))
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var resp httpresponse.Response[T]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, rec.Code, resp.Status)
	return resp.Body
}

func TestInitializeBoard(t *testing.T) {
	h := newRouter(t)

	rec := do(t, h, http.MethodPost, "/board/initialize", `{"competitors":[{"name":"Acme"},{"name":"Globex"}]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	snap := decode[board.Snapshot](t, rec)
	assert.Len(t, snap.Pieces, 17)
	assert.Equal(t, "COMPANY", snap.Turn)
	assert.Len(t, snap.Board, board.Size)
}

func TestBestMoveLifecycle(t *testing.T) {
	h := newRouter(t)

	rec := do(t, h, http.MethodPost, "/analysis/bestMove",
		`{"session_id":"s1","market_data":{"competitors":[{"name":"Acme"}]},"depth":1}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	created := decode[analysis.Analysis](t, rec)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "COMPANY", created.Result.Move.Side)
	assert.Equal(t, 1, created.Result.Depth)

	rec = do(t, h, http.MethodGet, "/analysis/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created.Result.Move, decode[analysis.Analysis](t, rec).Result.Move)

	rec = do(t, h, http.MethodGet, "/analysis/"+created.ID+"/report", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))

	rec = do(t, h, http.MethodGet, "/sessions/s1/history", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[analysis.HistoryPage](t, rec)
	assert.Equal(t, 1, page.Page)
	require.Len(t, page.Items, 1)
	assert.Equal(t, created.ID, page.Items[0].ID)
	assert.False(t, page.HasMore)
}

func TestBestMoveErrors(t *testing.T) {
	h := newRouter(t)

	cornered, err := board.NewBoardState([]board.Piece{
		board.NewPiece(board.CEO, board.Company, 0, 0),
		board.NewPiece(board.CEO, board.Competitor, 2, 1),
	}, board.Company, 0, nil, nil)
	require.NoError(t, err)
	snap := cornered.Snapshot()

	cases := []struct {
		name   string
		body   any
		status int
	}{
		{"depth too deep", `{"depth":9}`, http.StatusBadRequest},
		{"unknown field", `{"deep":2}`, http.StatusBadRequest},
		{"empty body", ``, http.StatusBadRequest},
		{"bad archetype", `{"board_state":{"pieces":[{"archetype":"INTERN","side":"COMPANY","position":{"x":0,"y":0}}]}}`, http.StatusBadRequest},
		{"no legal moves", analysis.Request{Board: &snap, Depth: 2}, http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/analysis/bestMove", tc.body)
			require.Equal(t, tc.status, rec.Code, rec.Body.String())
			assert.NotEmpty(t, decode[httpresponse.ErrorResponse](t, rec).ErrorDescription)
		})
	}
}

func TestBatch(t *testing.T) {
	h := newRouter(t)

	rec := do(t, h, http.MethodPost, "/analysis/batch", `{"requests":[{"depth":1},{"depth":7}]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	items := decode[[]analysis.BatchItem](t, rec)
	require.Len(t, items, 2)
	require.NotNil(t, items[0].Analysis)
	assert.Empty(t, items[0].Error)
	assert.Nil(t, items[1].Analysis)
	assert.Contains(t, items[1].Error, "invalid search depth")

	rec = do(t, h, http.MethodPost, "/analysis/batch", `{"requests":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNotFoundAndBadPage(t *testing.T) {
	h := newRouter(t)

	rec := do(t, h, http.MethodGet, "/analysis/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodGet, "/analysis/missing/report", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodGet, "/sessions/s1/history?page=abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/sessions/s1/history?page=0", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/sessions/nobody/history", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[analysis.HistoryPage](t, rec).Items)
}
