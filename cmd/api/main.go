package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"pet-vaccination-api/internal/adapters/storage/dynamo"
	"pet-vaccination-api/internal/config"
	"pet-vaccination-api/internal/platform/logger"
	"pet-vaccination-api/internal/router"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zl, err := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    "pet-vaccination-api",
	})
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := router.Options{Logger: zl}

	if cfg.UseDynamo() {
		client, err := dynamo.NewClient(ctx, cfg.AWSRegion, cfg.AWSEndpointURL)
		if err != nil {
			zl.Fatal("dynamo client", zap.Error(err))
		}
		opts.PetsRepo = dynamo.NewPetsRepo(client, cfg.PetsTable)
		opts.VaccinesRepo = dynamo.NewVaccinesRepo(client, cfg.VaccinesTable)
		zl.Info("storage: dynamodb",
			zap.String("pets_table", cfg.PetsTable),
			zap.String("vaccines_table", cfg.VaccinesTable),
		)
	} else {
		// Sin tablas configuradas arrancamos con repos en memoria:
		// suficiente para probar el API sin AWS.
		zl.Info("storage: in-memory")
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router.NewRouter(opts),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		zl.Info("starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("shutdown", zap.Error(err))
	}
	zl.Info("server stopped")
}
