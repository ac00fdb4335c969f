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

// Package collector reads individual system metrics via gopsutil. Collectors
// are stateless gauges; caching and scheduling live in the poller.
package collector

import (
	"errors"

	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

// ErrUnavailable indicates the OS does not expose the requested metric.
// Callers must degrade to an N/A value instead of failing.
var ErrUnavailable = errors.New("metric not available on this system")

// Collector reads a single metric.
type Collector interface {
	// Collect returns the current reading. Utilization collectors return a
	// percentage in [0, 100]; the temperature collector returns degrees
	// Celsius. Returns ErrUnavailable when the OS has no such sensor.
	Collect() (float64, error)

	// Name returns the collector name for logging purposes.
	Name() string
}

// Totals holds capacity figures gathered once at startup for display.
type Totals struct {
	RAMTotalGB  float64 `json:"ram_total_gb"`
	DiskTotalGB float64 `json:"disk_total_gb"`
}

const bytesPerGB = 1024 * 1024 * 1024

// ReadTotals collects RAM and disk capacity. Best effort: a failed read
// leaves the corresponding field at zero.
func ReadTotals(diskPath string) Totals {
	var t Totals

	if vm, err := virtualMemory(); err == nil {
		t.RAMTotalGB = float64(vm.Total) / bytesPerGB
	}
	if usage, err := diskUsage(diskPath); err == nil {
		t.DiskTotalGB = float64(usage.Total) / bytesPerGB
	}

	return t
}

// Dependency injection points for testing
var (
	virtualMemory = mem.VirtualMemory
	diskUsage     = disk.Usage
)

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
