package usecase

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"bizchess/internal/bootstrap"
	"bizchess/internal/domain/board"
	"bizchess/internal/engine"
	errs "bizchess/internal/errors"
	"bizchess/internal/repository"
	analysisuc "bizchess/internal/usecase/analysis"
	engineRPC "bizchess/microservices/proto"
)

// EngineUseCase serves searches for API instances configured with
// ENGINE_GRPC_ADDR. Every call builds its own engine.
type EngineUseCase struct {
	cfg      bootstrap.Config
	log      *zap.SugaredLogger
	searcher analysisuc.Searcher
	engineRPC.UnimplementedEngineServiceServer
}

func NewEngineUseCase(cfg bootstrap.Config, log *zap.SugaredLogger, searcher analysisuc.Searcher) *EngineUseCase {
	return &EngineUseCase{
		cfg:      cfg,
		log:      log,
		searcher: searcher,
	}
}

func (e *EngineUseCase) BestMove(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req repository.BestMoveRequest
	if err := engineRPC.Decode(in, &req); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	depth, err := analysisuc.ResolveDepth(e.cfg, req.Depth)
	if err != nil {
		return nil, ToStatus(err)
	}
	state, err := board.FromSnapshot(req.Board)
	if err != nil {
		return nil, ToStatus(err)
	}

	ctx, cancel := context.WithTimeout(ctx, searchBudget(ctx, e.cfg.SearchTimeout()))
	defer cancel()

	result, err := e.searcher.Search(ctx, state, depth)
	if err != nil {
		e.log.Warnf("search failed: %v", err)
		return nil, ToStatus(err)
	}
	return engineRPC.Encode(result)
}

func (e *EngineUseCase) InitializeBoard(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var market board.MarketData
	if err := engineRPC.Decode(in, &market); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	state, err := engine.InitializeBoard(market)
	if err != nil {
		return nil, ToStatus(err)
	}
	return engineRPC.Encode(state.Snapshot())
}

// minReplyMargin is the least time kept back from the caller's deadline for
// encoding and sending the answer.
const minReplyMargin = 50 * time.Millisecond

// searchBudget stops the search early enough for a timed-out answer to reach
// the caller before its own deadline does. A fifth of the remaining time, and
// never less than minReplyMargin, is kept back.
func searchBudget(ctx context.Context, configured time.Duration) time.Duration {
	deadline, ok := ctx.Deadline()
	if !ok {
		return configured
	}
	remaining := time.Until(deadline)
	margin := max(remaining/5, minReplyMargin)
	return min(configured, remaining-margin)
}

// ToStatus maps domain errors onto gRPC codes; repository.FromStatus reverses
// it on the client side.
func ToStatus(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, errs.ErrNoLegalMoves):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, errs.ErrInvalidBoardState):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, errs.ErrInvalidDepth):
		return status.Error(codes.OutOfRange, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
