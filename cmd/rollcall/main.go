package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mergington/rollcall/internal/api"
	"github.com/mergington/rollcall/internal/catalog"
	"github.com/mergington/rollcall/internal/config"
	"github.com/mergington/rollcall/internal/events"
	"github.com/mergington/rollcall/internal/snapshot"
	"github.com/mergington/rollcall/internal/store"
	"github.com/mergington/rollcall/internal/webui"
)

func main() {
	os.Exit(runCLI(os.Args[1:], os.Stdout, os.Stderr))
}

type commandContext struct {
	stdout io.Writer
	stderr io.Writer
}

func serve() int {
	cfg := config.Load()
	initLogger(cfg.LogLevel)

	seed := catalog.Builtin()
	if cfg.CatalogPath != "" {
		loaded, err := catalog.LoadFile(cfg.CatalogPath)
		if err != nil {
			slog.Error("catalog load failed", "path", cfg.CatalogPath, "err", err)
			return 1
		}
		seed = loaded
	}

	st, err := store.New(seed)
	if err != nil {
		slog.Error("store init failed", "err", err)
		return 1
	}
	defer func() { _ = st.Close() }()

	eventHub := events.NewHub()

	mux := http.NewServeMux()
	if err := webui.Register(mux); err != nil {
		slog.Error("frontend init failed", "err", err)
		return 1
	}
	api.Register(mux, st, eventHub, currentVersion())

	snapshotService, err := snapshot.New(st, snapshot.Options{
		Schedule: cfg.SnapshotSchedule,
		EventHub: eventHub,
	})
	if err != nil {
		slog.Error("invalid snapshot schedule", "expr", cfg.SnapshotSchedule, "err", err)
		return 1
	}
	snapshotService.Start(context.Background())

	exitCode := run(cfg, mux, len(seed))

	stopCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	snapshotService.Stop(stopCtx)
	cancel()
	return exitCode
}

func run(cfg config.Config, mux *http.ServeMux, activityCount int) int {
	server := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      requestLog(mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-shutdownCh
		slog.Info("shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("shutdown error", "err", err)
		}
	}()

	slog.Info("rollcall started",
		"listen", cfg.ListenAddr,
		"activities", activityCount,
		"catalog", cfg.CatalogPath,
		"snapshot_schedule", cfg.SnapshotSchedule,
		"log_level", cfg.LogLevel,
	)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server error", "err", err)
		return 1
	}
	slog.Info("rollcall stopped")
	return 0
}

func requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Debug("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start).Truncate(time.Millisecond))
	})
}

func initLogger(level string) {
	var lv slog.Level
	switch level {
	case "debug":
		lv = slog.LevelDebug
	case "warn":
		lv = slog.LevelWarn
	case "error":
		lv = slog.LevelError
	default:
		lv = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lv})))
}
