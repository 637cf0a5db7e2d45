package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mergington/rollcall/internal/api"
	"github.com/mergington/rollcall/internal/catalog"
	"github.com/mergington/rollcall/internal/events"
	"github.com/mergington/rollcall/internal/store"
)

func newTestServer(t *testing.T) *Client {
	t.Helper()
	st, err := store.New(catalog.Builtin())
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	mux := http.NewServeMux()
	api.Register(mux, st, events.NewHub(), "test")

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return New(srv.URL)
}

func TestActivities(t *testing.T) {
	t.Parallel()

	c := newTestServer(t)
	activities, err := c.Activities(context.Background())
	if err != nil {
		t.Fatalf("Activities() error = %v", err)
	}
	if len(activities) != 10 {
		t.Fatalf("got %d activities, want 10", len(activities))
	}
	if _, ok := activities["Basketball"]; !ok {
		t.Fatal("activities missing Basketball")
	}
}

func TestSignupAndUnregister(t *testing.T) {
	t.Parallel()

	c := newTestServer(t)
	ctx := context.Background()
	const email = "student@mergington.edu"

	msg, err := c.Signup(ctx, "Chess Club", email)
	if err != nil {
		t.Fatalf("Signup() error = %v", err)
	}
	if !strings.Contains(msg, email) || !strings.Contains(msg, "Chess Club") {
		t.Fatalf("message = %q", msg)
	}

	activities, err := c.Activities(ctx)
	if err != nil {
		t.Fatalf("Activities() error = %v", err)
	}
	roster := activities["Chess Club"].Participants
	if len(roster) != 1 || roster[0] != email {
		t.Fatalf("roster = %v, want [%s]", roster, email)
	}

	if _, err := c.Unregister(ctx, "Chess Club", email); err != nil {
		t.Fatalf("Unregister() error = %v", err)
	}
	activities, err = c.Activities(ctx)
	if err != nil {
		t.Fatalf("Activities() error = %v", err)
	}
	if n := len(activities["Chess Club"].Participants); n != 0 {
		t.Fatalf("roster has %d entries after unregister, want 0", n)
	}
}

func TestSignupConflictSurfacesAPIError(t *testing.T) {
	t.Parallel()

	c := newTestServer(t)
	ctx := context.Background()
	const email = "student@mergington.edu"

	if _, err := c.Signup(ctx, "Soccer", email); err != nil {
		t.Fatalf("first Signup() error = %v", err)
	}
	_, err := c.Signup(ctx, "Soccer", email)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("second Signup() error = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("StatusCode = %d, want 400", apiErr.StatusCode)
	}
	if apiErr.Detail != "Student already signed up for this activity" {
		t.Fatalf("Detail = %q", apiErr.Detail)
	}
}

func TestUnknownActivitySurfaces404(t *testing.T) {
	t.Parallel()

	c := newTestServer(t)
	_, err := c.Signup(context.Background(), "NoSuchClub", "student@mergington.edu")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Fatalf("StatusCode = %d, want 404", apiErr.StatusCode)
	}
}
