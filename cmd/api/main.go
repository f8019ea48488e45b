package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"todo-api/internal/auth"
	"todo-api/internal/config"
	"todo-api/internal/handlers"
	"todo-api/internal/logging"
	"todo-api/internal/metrics"
	"todo-api/internal/store"
	"todo-api/internal/todos"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("load config", "err", err)
	}
	logger := logging.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := store.Open(ctx, cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("open store", "driver", cfg.DatabaseDriver, "err", err)
	}
	defer db.Close()

	tokens := auth.NewTokens(cfg.JWTKey, cfg.TokenTTL)
	h := handlers.New(handlers.Config{
		Todos:    todos.NewService(db),
		Users:    db,
		Tokens:   tokens,
		DB:       db,
		PageSize: cfg.PageSize,
		Logger:   logger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handlers.Router(h, tokens, metrics.New(), logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", srv.Addr, "driver", cfg.DatabaseDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("serve", "err", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "err", err)
	}
}
