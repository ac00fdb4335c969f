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

package metrics

import "sort"

// Thresholds above which a metric triggers a recommendation.
const (
	HighCPUThreshold  = 80.0
	HighRAMThreshold  = 85.0
	HighDiskThreshold = 90.0
	LowHealthScore    = 50.0
)

// rule inspects a snapshot and its health score and reports whether it
// triggered, together with the recommendation to emit.
type rule func(s Snapshot, score HealthScore) (bool, Recommendation)

// Rules are evaluated in metric order. All triggered rules are emitted; there
// is no short-circuit.
var rules = []rule{
	cpuHighRule,
	ramHighRule,
	diskLowRule,
	healthPoorRule,
}

func cpuHighRule(s Snapshot, _ HealthScore) (bool, Recommendation) {
	return s.CPU > HighCPUThreshold, Recommendation{
		Severity: SeverityWarning,
		Message:  "high CPU usage",
		Action:   "close CPU-intensive applications",
	}
}

func ramHighRule(s Snapshot, _ HealthScore) (bool, Recommendation) {
	return s.RAM > HighRAMThreshold, Recommendation{
		Severity: SeverityWarning,
		Message:  "high memory usage",
		Action:   "close unused applications to free memory",
	}
}

func diskLowRule(s Snapshot, _ HealthScore) (bool, Recommendation) {
	return s.Disk > HighDiskThreshold, Recommendation{
		Severity: SeverityCritical,
		Message:  "low disk space",
		Action:   "remove unneeded files or move data to another drive",
	}
}

func healthPoorRule(_ Snapshot, score HealthScore) (bool, Recommendation) {
	return float64(score) < LowHealthScore, Recommendation{
		Severity: SeverityCritical,
		Message:  "overall system health poor",
		Action:   "review running processes and restart if the condition persists",
	}
}

// Recommend evaluates the rule table against a snapshot and its score.
// When no rule triggers it returns a single informational entry. Results are
// ordered by descending severity, ties keeping the rule table order.
func Recommend(s Snapshot, score HealthScore) []Recommendation {
	recs := make([]Recommendation, 0, len(rules))
	for _, r := range rules {
		if triggered, rec := r(s, score); triggered {
			recs = append(recs, rec)
		}
	}

	if len(recs) == 0 {
		return []Recommendation{{
			Severity: SeverityInfo,
			Message:  "system running optimally",
			Action:   "no action needed",
		}}
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Severity > recs[j].Severity
	})

	return recs
}
