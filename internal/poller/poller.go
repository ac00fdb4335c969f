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

// Package poller schedules metric collection. Each metric runs on its own
// timer at its configured interval, readings are cached with a TTL, and a
// watchdog widens all intervals while the monitor's own memory footprint
// exceeds the configured limit.
package poller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shirou/gopsutil/v3/process"

	"github.com/aetherhq/aethermon/internal/collector"
	"github.com/aetherhq/aethermon/internal/config"
	"github.com/aetherhq/aethermon/pkg/metrics"
)

// Dependency injection point for testing
var processRSS = func() (uint64, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return 0, err
	}
	info, err := proc.MemoryInfo()
	if err != nil {
		return 0, err
	}
	return info.RSS, nil
}

type metricState int

const (
	stateIdle metricState = iota
	stateScheduled
	statePolling
)

func (s metricState) String() string {
	switch s {
	case stateScheduled:
		return "scheduled"
	case statePolling:
		return "polling"
	default:
		return "idle"
	}
}

// entry is the per-metric cache slot. All fields are guarded by mu.
type entry struct {
	mu  sync.Mutex
	col collector.Collector

	state       metricState
	value       float64
	sampledAt   time.Time
	valid       bool
	unavailable bool
}

func (e *entry) setState(s metricState) {
	e.mu.Lock()
	e.state = s
	e.mu.Unlock()
}

// Poller drives periodic metric collection and publishes evaluations to the
// output channel at the shortest configured interval. Sends are non-blocking;
// evaluations are dropped when the consumer falls behind.
type Poller struct {
	cfg     *config.Config
	logger  *slog.Logger
	out     chan<- metrics.Evaluation
	entries map[metrics.Kind]*entry
	backoff atomic.Bool

	wg     sync.WaitGroup
	cancel context.CancelFunc
}

// New creates a poller backed by the real system collectors.
func New(cfg *config.Config, out chan<- metrics.Evaluation, logger *slog.Logger) *Poller {
	return newWithCollectors(cfg, map[metrics.Kind]collector.Collector{
		metrics.KindCPU:         collector.NewCPUCollector(),
		metrics.KindRAM:         collector.NewMemoryCollector(),
		metrics.KindDisk:        collector.NewDiskCollector(cfg.DiskPath),
		metrics.KindTemperature: collector.NewTemperatureCollector(),
	}, out, logger)
}

func newWithCollectors(cfg *config.Config, cols map[metrics.Kind]collector.Collector,
	out chan<- metrics.Evaluation, logger *slog.Logger,
) *Poller {
	entries := make(map[metrics.Kind]*entry, len(cols))
	for kind, col := range cols {
		entries[kind] = &entry{col: col}
	}

	return &Poller{
		cfg:     cfg,
		logger:  logger,
		out:     out,
		entries: entries,
	}
}

// Start launches the per-metric timers, the memory watchdog and the
// evaluation loop. It returns immediately; cancel the context or call Stop
// to shut down.
func (p *Poller) Start(ctx context.Context) {
	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	for kind := range p.entries {
		p.wg.Add(1)
		go p.runMetric(runCtx, kind)
	}

	p.wg.Add(2)
	go p.runMemoryWatchdog(runCtx)
	go p.runEvaluationLoop(runCtx)

	p.logger.Info("Poller started",
		"cpu_interval", p.cfg.Intervals.CPU,
		"ram_interval", p.cfg.Intervals.RAM,
		"disk_interval", p.cfg.Intervals.Disk,
		"temperature_interval", p.cfg.Intervals.Temperature,
		"cache_ttl", p.cfg.CacheTTL,
	)
}

// Stop cancels all polling loops and waits for them to finish. An in-flight
// collection completes but its result is no longer published.
func (p *Poller) Stop() {
	if p.cancel == nil {
		return
	}
	p.cancel()
	p.wg.Wait()
	p.logger.Info("Poller stopped")
}

func (p *Poller) runMetric(ctx context.Context, kind metrics.Kind) {
	defer p.wg.Done()

	e := p.entries[kind]
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		e.setState(stateScheduled)
		select {
		case <-ctx.Done():
			e.setState(stateIdle)
			return
		case <-timer.C:
			p.poll(kind, e)
			timer.Reset(p.EffectiveInterval(kind))
		}
	}
}

func (p *Poller) poll(kind metrics.Kind, e *entry) {
	e.setState(statePolling)

	value, err := e.col.Collect()

	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = stateIdle

	switch {
	case errors.Is(err, collector.ErrUnavailable):
		if !e.unavailable {
			p.logger.Debug("Metric not available", "metric", e.col.Name())
		}
		e.unavailable = true
	case err != nil:
		// Keep the last known value; a single failed read is not fatal.
		p.logger.Warn("Metric collection failed", "metric", e.col.Name(), "error", err)
	default:
		e.unavailable = false
		e.value = value
		e.sampledAt = time.Now()
		e.valid = true
		p.logger.Debug("Metric collected", "metric", e.col.Name(), "kind", kind, "value", value)
	}
}

// Read returns the current value for a metric. A cached reading younger than
// the configured TTL is served as-is; otherwise the metric is collected on
// the spot and the cache updated.
func (p *Poller) Read(ctx context.Context, kind metrics.Kind) (float64, error) {
	e, ok := p.entries[kind]
	if !ok {
		return 0, fmt.Errorf("unknown metric kind: %s", kind)
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.valid && time.Since(e.sampledAt) < p.cfg.CacheTTL {
		return e.value, nil
	}

	value, err := e.col.Collect()
	if err != nil {
		if errors.Is(err, collector.ErrUnavailable) {
			e.unavailable = true
		}
		return 0, err
	}

	e.unavailable = false
	e.value = value
	e.sampledAt = time.Now()
	e.valid = true

	return value, nil
}

// ClearCaches invalidates all cached readings so the next read of each
// metric polls the system again. Presentation clients call this when their
// surface is hidden.
func (p *Poller) ClearCaches() {
	for _, e := range p.entries {
		e.mu.Lock()
		e.valid = false
		e.value = 0
		e.sampledAt = time.Time{}
		e.mu.Unlock()
	}
	p.logger.Debug("Metric caches cleared")
}

// EffectiveInterval returns the poll interval currently in force for a
// metric: the configured base, widened by the backoff factor while the
// monitor is over its memory limit.
func (p *Poller) EffectiveInterval(kind metrics.Kind) time.Duration {
	base := p.baseInterval(kind)
	if p.backoff.Load() {
		return time.Duration(float64(base) * p.cfg.Memory.BackoffFactor)
	}
	return base
}

func (p *Poller) baseInterval(kind metrics.Kind) time.Duration {
	switch kind {
	case metrics.KindCPU:
		return p.cfg.Intervals.CPU
	case metrics.KindRAM:
		return p.cfg.Intervals.RAM
	case metrics.KindDisk:
		return p.cfg.Intervals.Disk
	case metrics.KindTemperature:
		return p.cfg.Intervals.Temperature
	default:
		return p.cfg.ShortestInterval()
	}
}

// UnderMemoryPressure reports whether widened intervals are in force.
func (p *Poller) UnderMemoryPressure() bool {
	return p.backoff.Load()
}

func (p *Poller) runMemoryWatchdog(ctx context.Context) {
	defer p.wg.Done()

	ticker := time.NewTicker(p.cfg.Memory.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.checkMemory()
		}
	}
}

func (p *Poller) checkMemory() {
	rss, err := processRSS()
	if err != nil {
		p.logger.Debug("Failed to read process memory", "error", err)
		return
	}

	usedMB := float64(rss) / (1024 * 1024)
	limitMB := float64(p.cfg.Memory.LimitMB)

	if usedMB > limitMB {
		if p.backoff.CompareAndSwap(false, true) {
			p.logger.Warn("Memory limit exceeded, widening poll intervals",
				"rss_mb", usedMB, "limit_mb", limitMB, "factor", p.cfg.Memory.BackoffFactor)
		}
		return
	}

	if p.backoff.CompareAndSwap(true, false) {
		p.logger.Info("Memory usage back below limit, restoring poll intervals",
			"rss_mb", usedMB, "limit_mb", limitMB)
	}
}

func (p *Poller) runEvaluationLoop(ctx context.Context) {
	defer p.wg.Done()

	ticker := time.NewTicker(p.cfg.ShortestInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.publish()
		}
	}
}

func (p *Poller) publish() {
	select {
	case p.out <- p.Evaluate():
	default:
		p.logger.Warn("Evaluation channel full, dropping evaluation")
	}
}

// Evaluate builds a snapshot from the cached readings and derives the health
// score and recommendations for it.
func (p *Poller) Evaluate() metrics.Evaluation {
	snap := p.Snapshot()
	score := metrics.EvaluateHealth(snap)

	return metrics.Evaluation{
		Snapshot:        snap,
		Health:          score,
		Recommendations: metrics.Recommend(snap, score),
	}
}

// Snapshot assembles the last known reading of every metric. Metrics that
// have never been read report zero; an unavailable temperature sensor
// reports metrics.TemperatureNA.
func (p *Poller) Snapshot() metrics.Snapshot {
	snap := metrics.Snapshot{
		Timestamp:   time.Now(),
		Temperature: metrics.TemperatureNA,
	}

	for kind, e := range p.entries {
		e.mu.Lock()
		valid := e.valid && !e.unavailable
		value := e.value
		e.mu.Unlock()

		if !valid {
			continue
		}

		switch kind {
		case metrics.KindCPU:
			snap.CPU = value
		case metrics.KindRAM:
			snap.RAM = value
		case metrics.KindDisk:
			snap.Disk = value
		case metrics.KindTemperature:
			snap.Temperature = value
		}
	}

	return snap
}
