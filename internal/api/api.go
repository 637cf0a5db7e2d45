// Package api serves the activity-signup HTTP surface.
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/mergington/rollcall/internal/events"
	"github.com/mergington/rollcall/internal/store"
)

const requestTimeout = 5 * time.Second

// registry is the slice of the store the handlers need.
type registry interface {
	ListActivities(ctx context.Context) (map[string]store.Activity, error)
	Signup(ctx context.Context, activity, email string) error
	Unregister(ctx context.Context, activity, email string) error
	ListRosterSnapshots(ctx context.Context, limit int) ([]store.RosterSnapshot, error)
}

type Handler struct {
	store     registry
	events    *events.Hub
	version   string
	startedAt time.Time
}

// Register mounts all API routes on mux.
func Register(mux *http.ServeMux, st registry, eventsHub *events.Hub, version string) {
	h := &Handler{
		store:     st,
		events:    eventsHub,
		version:   version,
		startedAt: time.Now(),
	}
	mux.HandleFunc("GET /activities", h.listActivities)
	mux.HandleFunc("POST /activities/{activity}/signup", h.signup)
	mux.HandleFunc("POST /activities/{activity}/unregister", h.unregister)
	mux.HandleFunc("GET /snapshots", h.listSnapshots)
	mux.HandleFunc("GET /health", h.health)
}

func (h *Handler) emit(eventType string, payload map[string]any) {
	if h == nil || h.events == nil {
		return
	}
	h.events.Publish(events.NewEvent(eventType, payload))
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": h.version,
		"uptime":  time.Since(h.startedAt).Truncate(time.Second).String(),
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Warn("encode response failed", "err", err)
	}
}

// writeDetail emits the contract's error body: {"detail": "..."}.
func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

// writeMessage emits the contract's success body: {"message": "..."}.
func writeMessage(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, map[string]string{"message": message})
}
