package play

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"bizchess/internal/bootstrap"
	"bizchess/internal/domain/play"
	errs "bizchess/internal/errors"
	"bizchess/internal/httpresponse"
	playuc "bizchess/internal/usecase/play"
	"bizchess/internal/utils"
)

type PlayHandler struct {
	cfg    bootstrap.Config
	log    *zap.SugaredLogger
	playUC *playuc.PlayUseCase
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func NewPlayHandler(cfg bootstrap.Config, log *zap.SugaredLogger, playUC *playuc.PlayUseCase) *PlayHandler {
	return &PlayHandler{
		cfg:    cfg,
		log:    log,
		playUC: playUC,
	}
}

func (h *PlayHandler) Routes(r chi.Router) {
	r.Post("/play/start", h.HandleStart)
	r.Get("/play/ws", h.HandlePlay)
	r.Get("/play/{id}", h.HandleGetSession)
}

// @Summary Start a game against the engine
// @Tags play
// @Accept json
// @Produce json
// @Param request body play.StartRequest true "market and depth"
// @Success 200 {object} play.Session
// @Router /play/start [post]
func (h *PlayHandler) HandleStart(w http.ResponseWriter, r *http.Request) {
	var req play.StartRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		h.log.Warnf("start play: %v", err)
		httpresponse.WriteError(w, err)
		return
	}

	session, err := h.playUC.Start(r.Context(), req)
	if err != nil {
		h.log.Errorf("start play: %v", err)
		httpresponse.WriteError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, session)
}

// @Summary Fetch a play session
// @Tags play
// @Produce json
// @Param id path string true "session id"
// @Success 200 {object} play.Session
// @Failure 404 {object} httpresponse.ErrorResponse
// @Router /play/{id} [get]
func (h *PlayHandler) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.playUC.Session(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpresponse.WriteError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, session)
}

// @Summary Play moves over a websocket
// @Tags play
// @Param session_id query string true "session id"
// @Router /play/ws [get]
//
// HandlePlay upgrades to a websocket and plays one session: every text frame
// is a move request answered by a turn, or by an error message when the move
// is rejected. The connection is closed once the game is over.
func (h *PlayHandler) HandlePlay(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: "session_id is required"})
		return
	}
	session, err := h.playUC.Session(r.Context(), sessionID)
	if err != nil {
		h.log.Warnf("play %s: %v", sessionID, err)
		httpresponse.WriteError(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("websocket upgrade error:", err)
		return
	}
	defer conn.Close()

	h.log.Infof("player connected to session %s", sessionID)
	if err := conn.WriteJSON(session); err != nil {
		h.log.Warnf("play %s: write session: %v", sessionID, err)
		return
	}
	if session.Status == play.StatusFinished {
		closeNormally(conn, "game over")
		return
	}

	for {
		var req play.MoveRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.log.Warnf("play %s: read: %v", sessionID, err)
			}
			return
		}

		turn, err := h.playUC.Move(r.Context(), sessionID, req)
		if err != nil {
			if httpresponse.StatusFromError(err) == http.StatusInternalServerError {
				h.log.Errorf("play %s: move: %v", sessionID, err)
				err = errs.ErrInternal
			}
			if werr := conn.WriteJSON(play.ErrorMessage{Error: err.Error()}); werr != nil {
				return
			}
			if errors.Is(err, errs.ErrGameOver) || errors.Is(err, errs.ErrSessionNotFound) {
				closeNormally(conn, err.Error())
				return
			}
			continue
		}

		if err := conn.WriteJSON(turn); err != nil {
			h.log.Warnf("play %s: write turn: %v", sessionID, err)
			return
		}
		if turn.Status == play.StatusFinished {
			h.log.Infof("session %s finished, winner %q", sessionID, turn.Winner)
			closeNormally(conn, "game over")
			return
		}
	}
}

func closeNormally(conn *websocket.Conn, reason string) {
	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason))
}
