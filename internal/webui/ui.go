// Package webui serves the embedded landing page under /static/ and the
// root redirect pointing at it.
package webui

import (
	"fmt"
	"net/http"
)

const indexPath = "/static/index.html"

// Register mounts the static asset routes on mux.
func Register(mux *http.ServeMux) error {
	assets, err := ensureStaticFS()
	if err != nil {
		return fmt.Errorf("embed static assets: %w", err)
	}

	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(assets))))
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, indexPath, http.StatusTemporaryRedirect)
	})
	return nil
}
