package engine

import (
	"bizchess/internal/domain/board"
)

// companyFormation is the fixed opening set-up for COMPANY on ranks 6 and 7.
func companyFormation() []board.Piece {
	pieces := []board.Piece{
		board.NewPiece(board.CTO, board.Company, 0, 7),
		board.NewPiece(board.VP, board.Company, 1, 7),
		board.NewPiece(board.CMO, board.Company, 2, 7),
		board.NewPiece(board.CFO, board.Company, 3, 7),
		board.NewPiece(board.CEO, board.Company, 4, 7),
	}
	for x := 0; x < board.Size; x++ {
		pieces = append(pieces, board.NewPiece(board.Manager, board.Company, x, 6))
	}
	return pieces
}

// InitializeBoard builds the opening position for an analysis request. Each
// competitor (up to board.MaxCompetitors) contributes a CEO on rank 0 and a
// CFO on rank 1 at file 2*i+1. Missing competitors simply leave files empty.
func InitializeBoard(market board.MarketData) (*board.BoardState, error) {
	pieces := companyFormation()

	n := min(len(market.Competitors), board.MaxCompetitors)
	for i := 0; i < n; i++ {
		file := 2*i + 1
		pieces = append(pieces,
			board.NewPiece(board.CEO, board.Competitor, file, 0),
			board.NewPiece(board.CFO, board.Competitor, file, 1),
		)
	}

	return board.NewBoardState(pieces, board.Company, 0, market.Conditions, market.Landscape)
}
