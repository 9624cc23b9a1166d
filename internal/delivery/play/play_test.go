package play

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"bizchess/internal/bootstrap"
	"bizchess/internal/domain/board"
	"bizchess/internal/domain/play"
	"bizchess/internal/engine"
	errs "bizchess/internal/errors"
	"bizchess/internal/httpresponse"
	analysisuc "bizchess/internal/usecase/analysis"
	playuc "bizchess/internal/usecase/play"
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

func newServer(t *testing.T) *httptest.Server {
	log := zaptest.NewLogger(t).Sugar()
	cfg := bootstrap.Config{
		SearchDepth:       1,
		MaxSearchDepth:    3,
		SearchTimeoutMs:   10000,
		PlaySessionTTLSec: 60,
	}
	uc := playuc.NewPlayUseCase(cfg, log, &memorySessions{sessions: map[string]play.Session{}}, analysisuc.NewDeadlineSearcher(log))

	r := chi.NewRouter()
	NewPlayHandler(cfg, log, uc).Routes(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func start(t *testing.T, srv *httptest.Server, body string) play.Session {
	t.Helper()
	resp, err := http.Post(srv.URL+"/play/start", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out httpresponse.Response[play.Session]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out.Body
}

func dial(t *testing.T, srv *httptest.Server, sessionID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/play/ws?session_id=" + sessionID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestPlayOverWebsocket(t *testing.T) {
	srv := newServer(t)
	session := start(t, srv, `{"market_data":{"competitors":[{"name":"Acme"},{"name":"Globex"}]}}`)
	require.Equal(t, play.StatusActive, session.Status)
	require.Len(t, session.Moves, 1)

	conn := dial(t, srv, session.ID)

	var greeting play.Session
	require.NoError(t, conn.ReadJSON(&greeting))
	assert.Equal(t, session.ID, greeting.ID)
	assert.Equal(t, "COMPETITOR", greeting.Board.Turn)

	require.NoError(t, conn.WriteJSON(play.MoveRequest{From: board.NewPosition(4, 7), To: board.NewPosition(4, 5)}))
	var rejected play.ErrorMessage
	require.NoError(t, conn.ReadJSON(&rejected))
	assert.Contains(t, rejected.Error, "illegal move")

	state, err := board.FromSnapshot(greeting.Board)
	require.NoError(t, err)
	legal := engine.LegalMoves(state, board.Competitor)
	require.NotEmpty(t, legal)

	require.NoError(t, conn.WriteJSON(play.MoveRequest{From: legal[0].From, To: legal[0].To}))
	var turn play.Turn
	require.NoError(t, conn.ReadJSON(&turn))
	assert.Equal(t, session.ID, turn.SessionID)
	assert.Equal(t, legal[0].To, turn.Human.To)
	if turn.Status == play.StatusActive {
		require.NotNil(t, turn.Reply)
		assert.Equal(t, "COMPANY", turn.Reply.Side)
		assert.Equal(t, 3, turn.Board.Ply)
	}

	resp, err := http.Get(srv.URL + "/play/" + session.ID)
	require.NoError(t, err)
	defer resp.Body.Close()
	var stored httpresponse.Response[play.Session]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stored))
	assert.Equal(t, turn.Board, stored.Body.Board)
}

func TestFinishedSessionIsClosed(t *testing.T) {
	srv := newServer(t)
	session := start(t, srv, `{"market_data":{"competitors":[]}}`)
	require.Equal(t, play.StatusFinished, session.Status)

	conn := dial(t, srv, session.ID)
	var greeting play.Session
	require.NoError(t, conn.ReadJSON(&greeting))
	assert.Equal(t, "COMPANY", greeting.Winner)

	_, _, err := conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "got %v", err)
}

func TestPlayRejectsBadRequests(t *testing.T) {
	srv := newServer(t)

	resp, err := http.Get(srv.URL + "/play/ws")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/play/ws?session_id=missing")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = http.Post(srv.URL+"/play/start", "application/json", bytes.NewBufferString(`{"depth":8}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
