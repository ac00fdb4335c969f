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

import "github.com/shirou/gopsutil/v3/host"

// Dependency injection point for testing
var sensorsTemperatures = host.SensorsTemperatures

// TemperatureCollector reads the primary hardware temperature sensor.
// Many systems (most Windows machines in particular) expose no sensors at
// all; Collect then returns ErrUnavailable.
type TemperatureCollector struct{}

// NewTemperatureCollector creates a new temperature collector instance.
func NewTemperatureCollector() *TemperatureCollector {
	return &TemperatureCollector{}
}

// Collect returns the first plausible sensor reading in degrees Celsius.
func (t *TemperatureCollector) Collect() (float64, error) {
	sensors, err := sensorsTemperatures()
	if err != nil || len(sensors) == 0 {
		return 0, ErrUnavailable
	}

	for _, s := range sensors {
		if s.Temperature > 0 {
			return s.Temperature, nil
		}
	}

	return 0, ErrUnavailable
}

// Available probes whether any temperature sensor can be read right now.
func (t *TemperatureCollector) Available() bool {
	_, err := t.Collect()
	return err == nil
}

// Name returns the collector name for logging purposes.
func (t *TemperatureCollector) Name() string {
	return "Temperature"
}
