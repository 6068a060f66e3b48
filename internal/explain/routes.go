package explain

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/termlens/internal/highlight"
)

type explainRequest struct {
	Term    string `json:"term"`
	Context string `json:"context,omitempty"`
}

type highlightRequest struct {
	Markdown string `json:"markdown"`
}

type highlightResponse struct {
	HTML  string   `json:"html"`
	Terms []string `json:"terms"`
}

// RegisterRoutes mounts the explain endpoints under /simplifier. A nil
// renderer leaves out the highlight endpoint.
func RegisterRoutes(r chi.Router, svc *Service, renderer *highlight.Renderer) {
	r.Route("/simplifier", func(r chi.Router) {
		r.Post("/explain", handleExplain(svc))
		r.Get("/cache/stats", handleStats(svc))
		r.Delete("/cache/clear", handleClear(svc))
		r.Get("/check", handleCheck(svc))
		if renderer != nil {
			r.Post("/highlight", handleHighlight(renderer))
		}
	})
}

func handleExplain(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req explainRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		res, err := svc.Explain(r.Context(), req.Term, req.Context)
		switch {
		case errors.Is(err, ErrEmptyTerm):
			writeError(w, http.StatusBadRequest, "Term cannot be empty")
			return
		case err != nil:
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		writeJSON(w, http.StatusOK, res)
	}
}

func handleStats(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := svc.Stats(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}

func handleClear(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := svc.Clear(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"message": fmt.Sprintf("Cache cleared. %d terms removed.", n),
			"status":  "success",
		})
	}
}

func handleCheck(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		term := strings.TrimSpace(r.URL.Query().Get("term"))
		if term == "" {
			writeError(w, http.StatusBadRequest, "term query parameter is required")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"term":         term,
			"is_technical": svc.IsTechnicalTerm(term),
			"indexed":      svc.Index().Contains(term),
		})
	}
}

func handleHighlight(renderer *highlight.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req highlightRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		src := []byte(req.Markdown)
		html, err := renderer.Render(src)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, highlightResponse{HTML: html, Terms: renderer.Find(src)})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
