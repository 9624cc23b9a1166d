package errors

import "errors"

var (
	ErrInvalidBoardState = errors.New("invalid board state")
	ErrNoLegalMoves      = errors.New("no legal moves for the side to move")
	ErrIllegalMove       = errors.New("illegal move")
	ErrInvalidDepth      = errors.New("invalid search depth")
	ErrAnalysisNotFound  = errors.New("analysis not found")
	ErrSessionNotFound   = errors.New("session was not found")
	ErrGameOver          = errors.New("game is over")
	ErrInvalidRequest    = errors.New("invalid request")
	ErrInternal          = errors.New("internal error")
)

// ErrEmptyMoveSet is reported by best-move selection when the searching side
// has nothing to play. It is the same condition as ErrNoLegalMoves.
var ErrEmptyMoveSet = ErrNoLegalMoves
