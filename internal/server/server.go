/*
 * MIT License
 *
 * Copyright (c) 2026 The AetherMon Authors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

// Package server exposes the latest evaluation over a local JSON API. It is
// a dumb sink: all scoring and recommendation logic lives upstream.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/aetherhq/aethermon/internal/collector"
	"github.com/aetherhq/aethermon/internal/config"
	"github.com/aetherhq/aethermon/pkg/metrics"
	"github.com/aetherhq/aethermon/pkg/version"
)

// CacheClearer is the hook presentation clients trigger when their surface
// is hidden.
type CacheClearer interface {
	ClearCaches()
}

// Server renders the most recently published evaluation.
type Server struct {
	store  *evaluationStore
	caches CacheClearer
	totals collector.Totals
	window config.WindowConfig
	logger *slog.Logger
	router *mux.Router
}

// NewServer creates the API server. Publish must be called as evaluations
// arrive to keep responses current.
func NewServer(caches CacheClearer, totals collector.Totals, window config.WindowConfig, logger *slog.Logger) *Server {
	s := &Server{
		store:  &evaluationStore{},
		caches: caches,
		totals: totals,
		window: window,
		logger: logger,
		router: mux.NewRouter(),
	}

	s.setupRoutes()

	return s
}

// Publish stores an evaluation as the latest state served by the API.
func (s *Server) Publish(ev metrics.Evaluation) {
	s.store.set(ev)
}

func (s *Server) setupRoutes() {
	// Add CORS middleware
	s.router.Use(corsMiddleware)
	// Add logging middleware
	s.router.Use(s.loggingMiddleware)

	s.router.HandleFunc("/api/metrics", s.handleGetMetrics).Methods("GET")
	s.router.HandleFunc("/api/healthz", s.handleHealthz).Methods("GET")
	s.router.HandleFunc("/api/version", s.handleGetVersion).Methods("GET")
	s.router.HandleFunc("/api/caches/clear", s.handleClearCaches).Methods("POST")
}

// corsMiddleware adds CORS headers
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs HTTP requests with a per-request ID
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.New().String()
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r)
		s.logger.Debug("HTTP request",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start),
		)
	})
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// metricsResponse is the /api/metrics payload: the latest evaluation plus
// static capacity and window hints for presentation clients.
type metricsResponse struct {
	metrics.Evaluation
	Totals collector.Totals `json:"totals"`
	Window windowInfo       `json:"window"`
}

type windowInfo struct {
	Width     int  `json:"width"`
	Height    int  `json:"height"`
	Resizable bool `json:"resizable"`
}

// handleGetMetrics returns the latest evaluation, or 503 until the first one
// has been published.
func (s *Server) handleGetMetrics(w http.ResponseWriter, _ *http.Request) {
	ev, ok := s.store.get()
	if !ok {
		s.writeError(w, "No evaluation available yet", http.StatusServiceUnavailable)
		return
	}

	s.writeJSON(w, metricsResponse{
		Evaluation: ev,
		Totals:     s.totals,
		Window: windowInfo{
			Width:     s.window.Width,
			Height:    s.window.Height,
			Resizable: s.window.Resizable,
		},
	})
}

// handleHealthz reports liveness of the monitor process itself.
func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, map[string]string{"status": "ok"})
}

// handleGetVersion returns version information from the version package.
func (s *Server) handleGetVersion(w http.ResponseWriter, _ *http.Request) {
	versionInfo := map[string]string{
		"version": version.Version,
		"commit":  version.Commit,
		"date":    version.Date,
	}
	s.writeJSON(w, versionInfo)
}

// handleClearCaches invalidates all cached metric readings. Presentation
// clients call this when their surface becomes hidden.
func (s *Server) handleClearCaches(w http.ResponseWriter, _ *http.Request) {
	s.caches.ClearCaches()
	s.logger.Info("Metric caches cleared by client request")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("Failed to write JSON response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	}); err != nil {
		s.logger.Error("Failed to write error response", "error", err)
	}
}
