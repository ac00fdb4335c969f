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

package collector

import (
	"fmt"

	"github.com/shirou/gopsutil/v3/cpu"
)

// Dependency injection point for testing
var cpuPercent = cpu.Percent

// CPUCollector reads aggregate CPU utilization.
type CPUCollector struct{}

// NewCPUCollector creates a new CPU collector instance.
func NewCPUCollector() *CPUCollector {
	return &CPUCollector{}
}

// Collect returns CPU utilization since the previous call as a percentage.
// The zero interval makes gopsutil diff against its internally stored last
// sample, so the call never blocks. The very first call measures since boot.
func (c *CPUCollector) Collect() (float64, error) {
	vals, err := cpuPercent(0, false)
	if err != nil {
		return 0, fmt.Errorf("failed to get CPU utilization: %w", err)
	}
	if len(vals) == 0 {
		return 0, fmt.Errorf("no CPU utilization data available")
	}

	return clampPercent(vals[0]), nil
}

// Name returns the collector name for logging purposes.
func (c *CPUCollector) Name() string {
	return "CPU"
}
