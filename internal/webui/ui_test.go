package webui

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestMux(t *testing.T) *http.ServeMux {
	t.Helper()
	mux := http.NewServeMux()
	if err := Register(mux); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	return mux
}

func TestRootRedirectsToIndex(t *testing.T) {
	t.Parallel()

	mux := newTestMux(t)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusTemporaryRedirect {
		t.Fatalf("GET / status = %d, want 307", rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != "/static/index.html" {
		t.Fatalf("Location = %q, want /static/index.html", loc)
	}
}

func TestServesIndex(t *testing.T) {
	t.Parallel()

	mux := newTestMux(t)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/static/index.html", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("GET /static/index.html status = %d, want 200", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Mergington High School") {
		t.Fatal("index.html missing expected heading")
	}
}

func TestServesAssets(t *testing.T) {
	t.Parallel()

	mux := newTestMux(t)
	for _, path := range []string{"/static/app.js", "/static/styles.css"} {
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != http.StatusOK {
			t.Errorf("GET %s status = %d, want 200", path, rr.Code)
		}
	}
}

func TestUnknownAssetIs404(t *testing.T) {
	t.Parallel()

	mux := newTestMux(t)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/static/missing.html", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
}
