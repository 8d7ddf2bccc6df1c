package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"postly/internal/api"
	"postly/internal/auth"
	"postly/internal/config"
	"postly/internal/logger"
	"postly/internal/repositories"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Connect to database
	repositories.ConnectDatabase()

	tokens, err := auth.NewTokenService(
		config.Envs.JWTSecret,
		config.Envs.JWTAlgorithm,
		time.Duration(config.Envs.JWTLifetimeMinutes)*time.Minute,
	)
	if err != nil {
		logger.L.Fatal("token service setup failed", zap.Error(err))
	}

	mux := api.SetupRouter(tokens)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", config.Envs.Port),
		Handler: mux,
		// Timeouts prevent resource exhaustion from slow clients
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.L.Info("starting Postly server", zap.String("port", config.Envs.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.L.Fatal("server exited with error", zap.Error(err))
	}
	logger.L.Info("server stopped")
}
