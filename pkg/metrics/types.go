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

// Package metrics defines the value types shared across the monitor and the
// pure evaluation logic (health score and recommendations) built on them.
package metrics

import (
	"encoding/json"
	"time"
)

// Kind identifies a monitored metric.
type Kind string

// Monitored metric kinds.
const (
	KindCPU         Kind = "cpu"
	KindRAM         Kind = "ram"
	KindDisk        Kind = "disk"
	KindTemperature Kind = "temperature"
)

// TemperatureNA marks a temperature reading on hosts without exposed sensors.
const TemperatureNA = -1.0

// Snapshot is a single point-in-time reading of all monitored metrics.
// CPU, RAM and Disk are utilization percentages in [0, 100]. Temperature is
// in degrees Celsius, or TemperatureNA when no sensor is available.
// A Snapshot is immutable once produced.
type Snapshot struct {
	Timestamp   time.Time `json:"timestamp"`
	CPU         float64   `json:"cpu"`
	RAM         float64   `json:"ram"`
	Disk        float64   `json:"disk"`
	Temperature float64   `json:"temperature"`
}

// HealthScore is an overall system health rating in [0, 100], higher is better.
type HealthScore float64

// Severity classifies a recommendation.
type Severity int

// Severity levels, ordered from least to most severe.
const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityCritical
)

// String returns the lowercase name of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityCritical:
		return "critical"
	default:
		return "info"
	}
}

// MarshalJSON encodes the severity as its string name.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Recommendation is a single piece of advice derived from a snapshot.
type Recommendation struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Action   string   `json:"action"`
}

// Evaluation bundles a snapshot with everything derived from it. This is the
// unit published to the presentation sink.
type Evaluation struct {
	Snapshot        Snapshot         `json:"snapshot"`
	Health          HealthScore      `json:"health"`
	Recommendations []Recommendation `json:"recommendations"`
}
