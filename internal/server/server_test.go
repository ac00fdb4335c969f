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

package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aetherhq/aethermon/internal/collector"
	"github.com/aetherhq/aethermon/internal/config"
	"github.com/aetherhq/aethermon/pkg/metrics"
)

type fakeClearer struct {
	calls int
}

func (f *fakeClearer) ClearCaches() { f.calls++ }

func newTestServer() (*Server, *fakeClearer) {
	clearer := &fakeClearer{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	totals := collector.Totals{RAMTotalGB: 16, DiskTotalGB: 512}
	window := config.WindowConfig{Width: 420, Height: 320}
	return NewServer(clearer, totals, window, logger), clearer
}

func sampleEvaluation() metrics.Evaluation {
	snap := metrics.Snapshot{
		Timestamp:   time.Now(),
		CPU:         90,
		RAM:         30,
		Disk:        10,
		Temperature: metrics.TemperatureNA,
	}
	score := metrics.EvaluateHealth(snap)
	return metrics.Evaluation{
		Snapshot:        snap,
		Health:          score,
		Recommendations: metrics.Recommend(snap, score),
	}
}

func TestGetMetricsBeforeFirstEvaluation(t *testing.T) {
	s, _ := newTestServer()

	req := httptest.NewRequest("GET", "/api/metrics", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["error"] == "" {
		t.Error("expected an error message in the body")
	}
}

func TestGetMetricsReturnsLatestEvaluation(t *testing.T) {
	s, _ := newTestServer()
	s.Publish(sampleEvaluation())

	req := httptest.NewRequest("GET", "/api/metrics", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var body struct {
		Snapshot struct {
			CPU         float64 `json:"cpu"`
			Temperature float64 `json:"temperature"`
		} `json:"snapshot"`
		Health          float64 `json:"health"`
		Recommendations []struct {
			Severity string `json:"severity"`
			Message  string `json:"message"`
		} `json:"recommendations"`
		Totals struct {
			RAMTotalGB float64 `json:"ram_total_gb"`
		} `json:"totals"`
		Window struct {
			Width int `json:"width"`
		} `json:"window"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}

	if body.Snapshot.CPU != 90 {
		t.Errorf("snapshot.cpu = %v, want 90", body.Snapshot.CPU)
	}
	if body.Snapshot.Temperature != -1 {
		t.Errorf("snapshot.temperature = %v, want -1", body.Snapshot.Temperature)
	}
	if len(body.Recommendations) != 1 {
		t.Fatalf("got %d recommendations, want 1", len(body.Recommendations))
	}
	if body.Recommendations[0].Message != "high CPU usage" {
		t.Errorf("recommendation = %q, want high CPU usage", body.Recommendations[0].Message)
	}
	if body.Recommendations[0].Severity != "warning" {
		t.Errorf("severity = %q, want warning", body.Recommendations[0].Severity)
	}
	if body.Totals.RAMTotalGB != 16 {
		t.Errorf("totals.ram_total_gb = %v, want 16", body.Totals.RAMTotalGB)
	}
	if body.Window.Width != 420 {
		t.Errorf("window.width = %d, want 420", body.Window.Width)
	}
}

func TestPublishOverwritesPrevious(t *testing.T) {
	s, _ := newTestServer()
	s.Publish(sampleEvaluation())

	updated := sampleEvaluation()
	updated.Snapshot.CPU = 10
	updated.Health = metrics.EvaluateHealth(updated.Snapshot)
	s.Publish(updated)

	req := httptest.NewRequest("GET", "/api/metrics", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	var body struct {
		Snapshot struct {
			CPU float64 `json:"cpu"`
		} `json:"snapshot"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Snapshot.CPU != 10 {
		t.Errorf("snapshot.cpu = %v, want 10", body.Snapshot.CPU)
	}
}

func TestHealthz(t *testing.T) {
	s, _ := newTestServer()

	req := httptest.NewRequest("GET", "/api/healthz", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestGetVersion(t *testing.T) {
	s, _ := newTestServer()

	req := httptest.NewRequest("GET", "/api/version", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["version"] == "" {
		t.Error("expected a version field")
	}
}

func TestClearCaches(t *testing.T) {
	s, clearer := newTestServer()

	req := httptest.NewRequest("POST", "/api/caches/clear", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if clearer.calls != 1 {
		t.Errorf("ClearCaches calls = %d, want 1", clearer.calls)
	}
}

func TestClearCachesRequiresPOST(t *testing.T) {
	s, clearer := newTestServer()

	req := httptest.NewRequest("GET", "/api/caches/clear", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
	if clearer.calls != 0 {
		t.Errorf("ClearCaches calls = %d, want 0", clearer.calls)
	}
}

func TestCORSHeaders(t *testing.T) {
	s, _ := newTestServer()

	req := httptest.NewRequest("GET", "/api/healthz", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected an X-Request-ID header")
	}
}
