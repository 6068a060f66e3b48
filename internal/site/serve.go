package site

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Mount serves a generated site from dir as the router's fallback, so API
// and websocket routes registered on r keep precedence. Pages loaded this
// way reach the live overlay on the same host without a configured URL.
func Mount(r chi.Router, dir string) {
	fs := http.FileServer(http.Dir(dir))
	r.Get("/*", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Cache-Control", "no-cache")
		fs.ServeHTTP(w, req)
	})
}
