package analysis

import (
	"time"

	"bizchess/internal/domain/board"
	"bizchess/internal/engine"
)

// Request asks for the best COMPANY move. Either Market (a fresh opening
// position) or Board (an arbitrary position) must be set; Board wins when
// both are present. Depth 0 selects the configured default.
type Request struct {
	SessionID string            `json:"session_id,omitempty"`
	Market    *board.MarketData `json:"market_data,omitempty"`
	Board     *board.Snapshot   `json:"board_state,omitempty"`
	Depth     int               `json:"depth,omitempty"`
}

// Result is what a Searcher produces for one position.
type Result struct {
	Move       board.MoveView     `json:"move" bson:"move"`
	Score      float64            `json:"score" bson:"score"`
	Depth      int                `json:"depth" bson:"depth"`
	Evaluation engine.Evaluation  `json:"evaluation" bson:"evaluation"`
	Stats      engine.SearchStats `json:"stats" bson:"stats"`
	ElapsedMs  int64              `json:"elapsed_ms" bson:"elapsed_ms"`
	Fallback   bool               `json:"fallback" bson:"fallback"`
	TimedOut   bool               `json:"timed_out" bson:"timed_out"`
}

// Analysis is a stored search: the position, the engine's answer and who
// asked for it.
type Analysis struct {
	ID          string         `json:"id" bson:"_id"`
	SessionID   string         `json:"session_id,omitempty" bson:"session_id,omitempty"`
	PositionKey string         `json:"position_key" bson:"position_key"`
	Board       board.Snapshot `json:"board_state" bson:"board_state"`
	Result      Result         `json:"result" bson:"result"`
	Cached      bool           `json:"cached" bson:"-"`
	CreatedAt   time.Time      `json:"created_at" bson:"created_at"`
}

type HistoryPage struct {
	SessionID string     `json:"session_id"`
	Page      int        `json:"page"`
	Items     []Analysis `json:"items"`
	HasMore   bool       `json:"has_more"`
}

type BatchItem struct {
	Analysis *Analysis `json:"analysis,omitempty"`
	Error    string    `json:"error,omitempty"`
}

type BatchRequest struct {
	Requests []Request `json:"requests"`
}
