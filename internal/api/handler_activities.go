package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/mergington/rollcall/internal/events"
	"github.com/mergington/rollcall/internal/store"
)

func (h *Handler) listActivities(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	activities, err := h.store.ListActivities(ctx)
	if err != nil {
		slog.Warn("list activities failed", "err", err)
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, activities)
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	activity := r.PathValue("activity")
	email := r.URL.Query().Get("email")
	if email == "" {
		writeDetail(w, http.StatusBadRequest, "Missing email query parameter")
		return
	}

	if err := h.store.Signup(ctx, activity, email); err != nil {
		writeRosterError(w, err)
		return
	}

	h.emit(events.TypeRosterUpdated, map[string]any{
		"action":   "signup",
		"activity": activity,
		"email":    email,
	})
	writeMessage(w, fmt.Sprintf("Signed up %s for %s", email, activity))
}

func (h *Handler) unregister(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	activity := r.PathValue("activity")
	email := r.URL.Query().Get("email")
	if email == "" {
		writeDetail(w, http.StatusBadRequest, "Missing email query parameter")
		return
	}

	if err := h.store.Unregister(ctx, activity, email); err != nil {
		writeRosterError(w, err)
		return
	}

	h.emit(events.TypeRosterUpdated, map[string]any{
		"action":   "unregister",
		"activity": activity,
		"email":    email,
	})
	writeMessage(w, fmt.Sprintf("Unregistered %s from %s", email, activity))
}

func (h *Handler) listSnapshots(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	limit := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	snaps, err := h.store.ListRosterSnapshots(ctx, limit)
	if err != nil {
		slog.Warn("list snapshots failed", "err", err)
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if snaps == nil {
		snaps = []store.RosterSnapshot{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"snapshots": snaps})
}

func writeRosterError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrActivityNotFound):
		writeDetail(w, http.StatusNotFound, "Activity not found")
	case errors.Is(err, store.ErrAlreadySignedUp):
		writeDetail(w, http.StatusBadRequest, "Student already signed up for this activity")
	case errors.Is(err, store.ErrNotSignedUp):
		writeDetail(w, http.StatusBadRequest, "Student is not signed up for this activity")
	default:
		slog.Warn("roster mutation failed", "err", err)
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
	}
}
