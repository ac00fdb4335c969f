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

// Package devices enumerates disks and temperature sensors so users can pick
// a disk path to monitor and see why temperature may read as N/A.
package devices

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
)

// Dependency injection points for testing
var (
	diskPartitions      = disk.Partitions
	diskUsage           = disk.Usage
	sensorsTemperatures = host.SensorsTemperatures
)

// DiskInfo represents disk device information.
type DiskInfo struct {
	Name       string
	Mountpoint string
	Filesystem string
	Total      uint64
}

// SensorInfo represents a temperature sensor reading.
type SensorInfo struct {
	Key         string
	Temperature float64
}

// ListDisks returns a list of available disk devices.
func ListDisks() ([]DiskInfo, error) {
	partitions, err := diskPartitions(false)
	if err != nil {
		return nil, fmt.Errorf("failed to get disk partitions: %w", err)
	}

	disks := make([]DiskInfo, 0)
	seen := make(map[string]bool)

	for _, partition := range partitions {
		// Skip duplicate devices
		if seen[partition.Device] {
			continue
		}
		seen[partition.Device] = true

		usage, err := diskUsage(partition.Mountpoint)
		total := uint64(0)
		if err == nil {
			total = usage.Total
		}

		disks = append(disks, DiskInfo{
			Name:       partition.Device,
			Mountpoint: partition.Mountpoint,
			Filesystem: partition.Fstype,
			Total:      total,
		})
	}

	// Sort by device name
	sort.Slice(disks, func(i, j int) bool {
		return disks[i].Name < disks[j].Name
	})

	return disks, nil
}

// ListTemperatureSensors returns all readable temperature sensors. An empty
// result is not an error; many machines simply expose none.
func ListTemperatureSensors() ([]SensorInfo, error) {
	readings, err := sensorsTemperatures()
	if err != nil {
		return nil, fmt.Errorf("failed to get temperature sensors: %w", err)
	}

	sensors := make([]SensorInfo, 0, len(readings))
	for _, r := range readings {
		if r.SensorKey == "" {
			continue
		}
		sensors = append(sensors, SensorInfo{
			Key:         r.SensorKey,
			Temperature: r.Temperature,
		})
	}

	// Sort by sensor key
	sort.Slice(sensors, func(i, j int) bool {
		return sensors[i].Key < sensors[j].Key
	})

	return sensors, nil
}

// FormatDisksTable formats disk information as a table.
func FormatDisksTable(disks []DiskInfo) string {
	var sb strings.Builder

	sb.WriteString("\nAvailable Disk Devices:\n")
	sb.WriteString(strings.Repeat("=", 80))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("%-30s %-20s %-15s %s\n", "DEVICE", "MOUNTPOINT", "FILESYSTEM", "SIZE"))
	sb.WriteString(strings.Repeat("-", 80))
	sb.WriteString("\n")

	for _, d := range disks {
		size := formatBytes(d.Total)
		sb.WriteString(fmt.Sprintf("%-30s %-20s %-15s %s\n",
			d.Name,
			truncate(d.Mountpoint, 20),
			d.Filesystem,
			size,
		))
	}

	sb.WriteString(strings.Repeat("=", 80))
	sb.WriteString("\n")

	return sb.String()
}

// FormatSensorsTable formats temperature sensor readings as a table.
func FormatSensorsTable(sensors []SensorInfo) string {
	var sb strings.Builder

	sb.WriteString("\nAvailable Temperature Sensors:\n")
	sb.WriteString(strings.Repeat("=", 80))
	sb.WriteString("\n")

	if len(sensors) == 0 {
		sb.WriteString("No temperature sensors exposed by this system.\n")
		sb.WriteString("Temperature will be reported as N/A.\n")
		sb.WriteString(strings.Repeat("=", 80))
		sb.WriteString("\n")
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("%-60s %s\n", "SENSOR", "TEMPERATURE"))
	sb.WriteString(strings.Repeat("-", 80))
	sb.WriteString("\n")

	for _, s := range sensors {
		sb.WriteString(fmt.Sprintf("%-60s %.1f C\n", truncate(s.Key, 60), s.Temperature))
	}

	sb.WriteString(strings.Repeat("=", 80))
	sb.WriteString("\n")

	return sb.String()
}

// formatBytes converts bytes to human-readable format.
func formatBytes(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := uint64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// truncate truncates a string to maxLen characters.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
