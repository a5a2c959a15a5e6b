// Package server exposes the article collection as a small JSON API for
// the presentation layer, plus the rebuild trigger endpoint.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"podigest/aggregator"
	"podigest/article"
	"podigest/cache"
)

// Server serves the article contract over HTTP.
type Server struct {
	cache *cache.Cache
	http  *http.Server
}

// New creates a server bound to addr, reading through the given cache.
func New(addr string, c *cache.Cache) *Server {
	s := &Server{cache: c}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/articles", s.handleList)
	mux.HandleFunc("GET /api/articles/{id}", s.handleGet)
	mux.HandleFunc("GET /api/articles/{id}/adjacent", s.handleAdjacent)
	mux.HandleFunc("POST /refresh", s.handleRefresh)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	s.http = &http.Server{Addr: addr, Handler: mux}
	return s
}

// ListenAndServe blocks serving requests until Shutdown.
func (s *Server) ListenAndServe() error {
	log.Printf("[server] listening on %s", s.http.Addr)
	return s.http.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// Handler returns the underlying handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	collection, err := s.cache.Get(r.Context())
	if err != nil {
		// First-ever refresh failed with no fallback: the reader gets an
		// empty list, never an error page.
		log.Printf("[server] collection unavailable: %v", err)
		writeJSON(w, http.StatusOK, []article.Article{})
		return
	}
	writeJSON(w, http.StatusOK, collection.All())
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	collection, err := s.cache.Get(r.Context())
	if err != nil {
		http.NotFound(w, r)
		return
	}

	a, err := collection.ByID(r.PathValue("id"))
	if errors.Is(err, article.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// adjacentResponse pairs the articles neighboring one position in the
// sorted collection. Null marks a boundary.
type adjacentResponse struct {
	Prev *article.Article `json:"prev"`
	Next *article.Article `json:"next"`
}

func (s *Server) handleAdjacent(w http.ResponseWriter, r *http.Request) {
	collection, err := s.cache.Get(r.Context())
	if err != nil {
		http.NotFound(w, r)
		return
	}

	prev, next, err := collection.Adjacent(r.PathValue("id"))
	if errors.Is(err, article.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, adjacentResponse{Prev: prev, Next: next})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	// The ID in the response matches the [aggregator] log lines of the
	// cycle this request drove.
	refreshID := aggregator.NewRefreshID()
	ctx := aggregator.WithRefreshID(r.Context(), refreshID)

	collection, err := s.cache.ForceRefresh(ctx)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]string{
			"error":      err.Error(),
			"refresh_id": refreshID,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"articles":    collection.Len(),
		"captured_at": s.cache.CapturedAt().Format(time.RFC3339),
		"refresh_id":  refreshID,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[server] encode response: %v", err)
	}
}
