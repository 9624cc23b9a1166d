package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"bizchess/internal/domain/analysis"
	"bizchess/internal/domain/board"
	errs "bizchess/internal/errors"
	engineRPC "bizchess/microservices/proto"
)

type BestMoveRequest struct {
	Board board.Snapshot `json:"board_state"`
	Depth int            `json:"depth"`
}

// RemoteSearcher delegates searches to the engine microservice.
type RemoteSearcher struct {
	log    *zap.SugaredLogger
	client engineRPC.EngineServiceClient
}

func NewRemoteSearcher(log *zap.SugaredLogger, client engineRPC.EngineServiceClient) *RemoteSearcher {
	return &RemoteSearcher{
		log:    log,
		client: client,
	}
}

func (r *RemoteSearcher) Search(ctx context.Context, state *board.BoardState, depth int) (analysis.Result, error) {
	in, err := engineRPC.Encode(BestMoveRequest{Board: state.Snapshot(), Depth: depth})
	if err != nil {
		return analysis.Result{}, err
	}

	out, err := r.client.BestMove(ctx, in)
	if err != nil {
		r.log.Errorf("engine rpc failed: %v", err)
		return analysis.Result{}, FromStatus(err)
	}

	var result analysis.Result
	if err := engineRPC.Decode(out, &result); err != nil {
		return analysis.Result{}, err
	}
	return result, nil
}

// FromStatus maps engine service status codes back onto domain errors.
func FromStatus(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	switch st.Code() {
	case codes.FailedPrecondition:
		return fmt.Errorf("%w: %s", errs.ErrNoLegalMoves, st.Message())
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", errs.ErrInvalidBoardState, st.Message())
	case codes.OutOfRange:
		return fmt.Errorf("%w: %s", errs.ErrInvalidDepth, st.Message())
	default:
		return fmt.Errorf("%w: %s", errs.ErrInternal, st.Message())
	}
}
