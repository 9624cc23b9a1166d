package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	_ "bizchess/docs"
	"bizchess/internal/adapters"
	"bizchess/internal/bootstrap"
	analysisDelivery "bizchess/internal/delivery/analysis"
	playDelivery "bizchess/internal/delivery/play"
	"bizchess/internal/httpresponse"
	ownMiddleware "bizchess/internal/middleware"
	"bizchess/internal/repository"
	analysisuc "bizchess/internal/usecase/analysis"
	playuc "bizchess/internal/usecase/play"
	engineRPC "bizchess/microservices/proto"
)

type mainDeliveryHandler struct {
	analysis *analysisDelivery.AnalysisHandler
	play     *playDelivery.PlayHandler
}

type dataBaseAdapters struct {
	redisAdapter *adapters.AdapterRedis
	mongoAdapter *adapters.AdapterMongo
}

// @title bizchess API
// @version 1.0
// @description Best-move search for business strategy positions.
// @BasePath /
func main() {
	logger := NewLogger()
	defer logger.Sync()

	cfg, err := bootstrap.Setup(".env")
	if err != nil {
		logger.Error("Failed to setup configuration", zap.Error(err))
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	databaseAdapters, err := initDatabaseAdapters(ctx, logger, *cfg)
	if err != nil {
		logger.Error("Failed to initialize storage", zap.Error(err))
		return
	}
	defer databaseAdapters.mongoAdapter.Close(context.Background())
	defer databaseAdapters.redisAdapter.Close(context.Background())

	searcher, closeSearcher, err := initSearcher(*cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize searcher", zap.Error(err))
		return
	}
	defer closeSearcher()

	r := chi.NewRouter()
	handlers := initializeDeliveryHandlers(*cfg, logger, searcher, databaseAdapters)
	handlers.Router(r, logger, *cfg)

	server := &http.Server{
		Addr:              cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		logger.Info("Received shutdown signal")
		shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
		defer stop()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warnf("shutdown: %v", err)
		}
	}()

	logger.Infof("Server is running on port %s", cfg.ServerPort)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Failed to start server", zap.Error(err))
		os.Exit(1)
	}
}

func NewLogger() *zap.SugaredLogger {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger.Sugar()
}

func (h *mainDeliveryHandler) Router(r *chi.Mux, log *zap.SugaredLogger, cfg bootstrap.Config) {
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	if cfg.IsLocalCors {
		r.Use(ownMiddleware.CORS(cfg.AllowedOrigins()))
	}
	r.Use(ownMiddleware.AccessLog(log))

	r.Get("/healthz", healthz)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	h.analysis.Routes(r)
	h.play.Routes(r)
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, "ok")
}

func initDatabaseAdapters(ctx context.Context, log *zap.SugaredLogger, cfg bootstrap.Config) (*dataBaseAdapters, error) {
	mongoAdapter := adapters.NewAdapterMongo(&cfg, log)
	if err := mongoAdapter.Init(ctx); err != nil {
		return nil, err
	}

	redisAdapter := adapters.NewAdapterRedis(&cfg, log)
	if err := redisAdapter.Init(ctx); err != nil {
		_ = mongoAdapter.Close(ctx)
		return nil, err
	}

	log.Info("database adapters initialized")
	return &dataBaseAdapters{
		redisAdapter: redisAdapter,
		mongoAdapter: mongoAdapter,
	}, nil
}

// initSearcher uses the engine microservice when ENGINE_GRPC_ADDR is set and
// searches in process otherwise.
func initSearcher(cfg bootstrap.Config, log *zap.SugaredLogger) (analysisuc.Searcher, func(), error) {
	if cfg.EngineGrpcAddr == "" {
		log.Info("searching in process")
		return analysisuc.NewDeadlineSearcher(log), func() {}, nil
	}

	conn, err := grpc.NewClient(cfg.EngineGrpcAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, nil, err
	}
	log.Infof("searching through engine service at %s", cfg.EngineGrpcAddr)
	return repository.NewRemoteSearcher(log, engineRPC.NewEngineServiceClient(conn)), func() { _ = conn.Close() }, nil
}

func initializeDeliveryHandlers(
	cfg bootstrap.Config,
	log *zap.SugaredLogger,
	searcher analysisuc.Searcher,
	databaseAdapters *dataBaseAdapters,
) *mainDeliveryHandler {
	redisClient := databaseAdapters.redisAdapter.GetClient()

	analysisUC := analysisuc.NewAnalysisUseCase(cfg, log,
		repository.NewAnalysisRepository(log, databaseAdapters.mongoAdapter.Database),
		repository.NewResultCache(redisClient),
		searcher,
	)
	playUC := playuc.NewPlayUseCase(cfg, log, repository.NewPlayRepository(redisClient), searcher)

	return &mainDeliveryHandler{
		analysis: analysisDelivery.NewAnalysisHandler(cfg, log, analysisUC),
		play:     playDelivery.NewPlayHandler(cfg, log, playUC),
	}
}
