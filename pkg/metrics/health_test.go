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

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateHealth(t *testing.T) {
	tests := []struct {
		name string
		snap Snapshot
		want float64
	}{
		{
			name: "idle system scores 100",
			snap: Snapshot{CPU: 0, RAM: 0, Disk: 0},
			want: 100,
		},
		{
			name: "saturated system scores 0",
			snap: Snapshot{CPU: 100, RAM: 100, Disk: 100},
			want: 0,
		},
		{
			name: "uniform load maps to inverse",
			snap: Snapshot{CPU: 50, RAM: 50, Disk: 50},
			want: 50,
		},
		{
			name: "weighted mix",
			snap: Snapshot{CPU: 90, RAM: 30, Disk: 10},
			want: 100 - (90*0.3 + 30*0.4 + 10*0.3),
		},
		{
			name: "out of range input clamps low",
			snap: Snapshot{CPU: 200, RAM: 200, Disk: 200},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluateHealth(tt.snap)
			assert.InDelta(t, tt.want, float64(got), 1e-9)
		})
	}
}

func TestEvaluateHealthBounds(t *testing.T) {
	for cpu := 0.0; cpu <= 100; cpu += 25 {
		for ram := 0.0; ram <= 100; ram += 25 {
			for disk := 0.0; disk <= 100; disk += 25 {
				got := float64(EvaluateHealth(Snapshot{CPU: cpu, RAM: ram, Disk: disk}))
				assert.GreaterOrEqual(t, got, 0.0)
				assert.LessOrEqual(t, got, 100.0)
			}
		}
	}
}

func TestEvaluateHealthIgnoresTemperature(t *testing.T) {
	base := Snapshot{CPU: 40, RAM: 60, Disk: 30}

	withSensor := base
	withSensor.Temperature = 85

	withoutSensor := base
	withoutSensor.Temperature = TemperatureNA

	assert.Equal(t, EvaluateHealth(withSensor), EvaluateHealth(withoutSensor))
}
