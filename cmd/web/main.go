package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"devchatClient/cmd/app"
	"devchatClient/internal/config"
	handlers "devchatClient/internal/handler"
	"devchatClient/internal/logger"
)

func main() {
	cfg := config.LoadConfig()

	if _, err := logger.Init(cfg.LogLevel); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	st, store, services, err := app.App(cfg)
	if err != nil {
		logger.Log.Fatal("failed to start", zap.Error(err))
	}
	defer st.Close()

	watchCtx, stopWatching := context.WithCancel(context.Background())
	watcherDone := app.WatchSessions(watchCtx, store)

	h, err := handlers.NewHandlers(services, store, cfg)
	if err != nil {
		logger.Log.Fatal("failed to load templates", zap.Error(err))
	}

	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handlers.NewRouter(h),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.APITimeout + 15*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Log.Info("DevChat web client started",
			zap.String("addr", addr),
			zap.String("api", cfg.APIBaseURL),
			zap.String("storage", cfg.Storage.Driver),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("could not listen", zap.String("addr", addr), zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("server forced to shutdown", zap.Error(err))
	}

	stopWatching()
	<-watcherDone
	logger.Log.Info("server exited")
}
