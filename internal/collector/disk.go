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
	"os"
	"runtime"
)

// DiskCollector reads space utilization of a single filesystem path.
type DiskCollector struct {
	path string
}

// NewDiskCollector creates a disk collector for the given path. An empty
// path selects the platform default system root.
func NewDiskCollector(path string) *DiskCollector {
	if path == "" {
		path = DefaultDiskPath()
	}
	return &DiskCollector{path: path}
}

// DefaultDiskPath returns the filesystem root to monitor when none is
// configured.
func DefaultDiskPath() string {
	if runtime.GOOS == "windows" {
		return `C:\`
	}
	return "/"
}

// Collect returns the used fraction of the monitored filesystem as a
// percentage. When the configured path cannot be read it falls back to the
// user home directory once before giving up.
func (d *DiskCollector) Collect() (float64, error) {
	usage, err := diskUsage(d.path)
	if err != nil {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return 0, fmt.Errorf("failed to get disk usage for %s: %w", d.path, err)
		}
		usage, err = diskUsage(home)
		if err != nil {
			return 0, fmt.Errorf("failed to get disk usage for %s: %w", d.path, err)
		}
	}

	return clampPercent(usage.UsedPercent), nil
}

// Path returns the monitored filesystem path.
func (d *DiskCollector) Path() string {
	return d.path
}

// Name returns the collector name for logging purposes.
func (d *DiskCollector) Name() string {
	return "Disk"
}
