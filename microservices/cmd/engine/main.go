package main

import (
	"net"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"google.golang.org/grpc"

	"bizchess/internal/bootstrap"
	analysisuc "bizchess/internal/usecase/analysis"
	engineRPC "bizchess/microservices/proto"
	"bizchess/microservices/usecase"
)

func main() {
	logger := NewLogger()
	defer logger.Sync()

	cfg, err := bootstrap.Setup(".env")
	if err != nil {
		logger.Error("Failed to setup configuration", zap.Error(err))
		return
	}

	lis, err := net.Listen("tcp", cfg.GrpcPort)
	if err != nil {
		logger.Fatalf("cant listen port %s: %v", cfg.GrpcPort, err)
	}

	server := grpc.NewServer()
	searcher := analysisuc.NewDeadlineSearcher(logger)
	engineRPC.RegisterEngineServiceServer(server, usecase.NewEngineUseCase(*cfg, logger, searcher))

	go func() {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		<-sigs
		logger.Info("Received shutdown signal")
		server.GracefulStop()
	}()

	logger.Infof("engine service listening on %s", cfg.GrpcPort)
	if err := server.Serve(lis); err != nil {
		logger.Fatalf("grpc serve: %v", err)
	}
}

func NewLogger() *zap.SugaredLogger {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}

	return logger.Sugar()
}
