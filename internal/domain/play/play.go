package play

import (
	"time"

	"bizchess/internal/domain/board"
)

const (
	StatusActive   = "active"
	StatusFinished = "finished"
)

// Session is a game of a human COMPETITOR against the engine playing
// COMPANY. It is stored as a whole after every turn.
type Session struct {
	ID        string           `json:"id"`
	Depth     int              `json:"depth"`
	Status    string           `json:"status"`
	Winner    string           `json:"winner,omitempty"`
	Board     board.Snapshot   `json:"board_state"`
	Moves     []board.MoveView `json:"moves"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

type StartRequest struct {
	Market board.MarketData `json:"market_data"`
	Depth  int              `json:"depth,omitempty"`
}

// MoveRequest is one human move as received over the websocket.
type MoveRequest struct {
	From board.Position `json:"from"`
	To   board.Position `json:"to"`
}

// Turn reports the outcome of one human move and the engine's reply.
type Turn struct {
	SessionID string          `json:"session_id"`
	Human     board.MoveView  `json:"human_move"`
	Reply     *board.MoveView `json:"engine_move,omitempty"`
	Board     board.Snapshot  `json:"board_state"`
	Status    string          `json:"status"`
	Winner    string          `json:"winner,omitempty"`
}

type ErrorMessage struct {
	Error string `json:"error"`
}
