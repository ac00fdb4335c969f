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

// Weights of each utilization metric in the health score. They sum to 1.0.
const (
	weightCPU  = 0.3
	weightRAM  = 0.4
	weightDisk = 0.3
)

// EvaluateHealth computes the overall health score for a snapshot as a
// weighted inverse of the utilization percentages, clamped to [0, 100].
// Temperature does not enter the score.
func EvaluateHealth(s Snapshot) HealthScore {
	score := 100.0 - (s.CPU*weightCPU + s.RAM*weightRAM + s.Disk*weightDisk)

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return HealthScore(score)
}
