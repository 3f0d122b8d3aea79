package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"filecatalog/internal/config"
	"filecatalog/internal/logger"
	"filecatalog/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zlog, err := logger.New(cfg.IsProd(), cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zlog.Sync()

	store, db, err := server.OpenStore(cfg, zlog)
	if err != nil {
		zlog.Fatal("open store failed", zap.Error(err))
	}

	srv := server.New(cfg, store, db, zlog)
	defer func() {
		if err := srv.Close(); err != nil {
			zlog.Warn("close failed", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		zlog.Error("server stopped with error", zap.Error(err))
	}
}
