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

package devices

import (
	"errors"
	"strings"
	"testing"

	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
)

func TestListDisks(t *testing.T) {
	originalPartitions := diskPartitions
	originalUsage := diskUsage
	defer func() {
		diskPartitions = originalPartitions
		diskUsage = originalUsage
	}()

	diskPartitions = func(_ bool) ([]disk.PartitionStat, error) {
		return []disk.PartitionStat{
			{Device: "/dev/sdb1", Mountpoint: "/data", Fstype: "xfs"},
			{Device: "/dev/sda1", Mountpoint: "/", Fstype: "ext4"},
			{Device: "/dev/sda1", Mountpoint: "/boot", Fstype: "ext4"},
		}, nil
	}
	diskUsage = func(_ string) (*disk.UsageStat, error) {
		return &disk.UsageStat{Total: 100 * 1024 * 1024 * 1024}, nil
	}

	disks, err := ListDisks()
	if err != nil {
		t.Fatalf("ListDisks failed: %v", err)
	}

	if len(disks) != 2 {
		t.Fatalf("got %d disks, want 2 (duplicates skipped)", len(disks))
	}
	if disks[0].Name != "/dev/sda1" || disks[1].Name != "/dev/sdb1" {
		t.Errorf("disks not sorted by device name: %+v", disks)
	}
}

func TestListDisksError(t *testing.T) {
	original := diskPartitions
	defer func() { diskPartitions = original }()

	diskPartitions = func(_ bool) ([]disk.PartitionStat, error) {
		return nil, errors.New("boom")
	}

	if _, err := ListDisks(); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestListTemperatureSensors(t *testing.T) {
	original := sensorsTemperatures
	defer func() { sensorsTemperatures = original }()

	sensorsTemperatures = func() ([]host.TemperatureStat, error) {
		return []host.TemperatureStat{
			{SensorKey: "coretemp_core_0", Temperature: 48},
			{SensorKey: "acpitz", Temperature: 42},
			{SensorKey: "", Temperature: 10},
		}, nil
	}

	sensors, err := ListTemperatureSensors()
	if err != nil {
		t.Fatalf("ListTemperatureSensors failed: %v", err)
	}

	if len(sensors) != 2 {
		t.Fatalf("got %d sensors, want 2 (nameless skipped)", len(sensors))
	}
	if sensors[0].Key != "acpitz" {
		t.Errorf("sensors not sorted by key: %+v", sensors)
	}
}

func TestFormatDisksTable(t *testing.T) {
	out := FormatDisksTable([]DiskInfo{
		{Name: "/dev/sda1", Mountpoint: "/", Filesystem: "ext4", Total: 500 * 1024 * 1024 * 1024},
	})

	if !strings.Contains(out, "/dev/sda1") {
		t.Error("table missing device name")
	}
	if !strings.Contains(out, "500.0 GB") {
		t.Errorf("table missing formatted size: %s", out)
	}
}

func TestFormatSensorsTable(t *testing.T) {
	out := FormatSensorsTable([]SensorInfo{
		{Key: "coretemp_core_0", Temperature: 48.5},
	})

	if !strings.Contains(out, "coretemp_core_0") {
		t.Error("table missing sensor key")
	}
	if !strings.Contains(out, "48.5 C") {
		t.Errorf("table missing temperature: %s", out)
	}
}

func TestFormatSensorsTableEmpty(t *testing.T) {
	out := FormatSensorsTable(nil)

	if !strings.Contains(out, "No temperature sensors") {
		t.Errorf("empty table missing explanation: %s", out)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		bytes uint64
		want  string
	}{
		{512, "512 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1024 * 1024, "1.0 MB"},
		{5 * 1024 * 1024 * 1024, "5.0 GB"},
	}

	for _, tt := range tests {
		if got := formatBytes(tt.bytes); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.bytes, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 20); got != "short" {
		t.Errorf("truncate(short) = %q", got)
	}
	if got := truncate("a-very-long-mountpoint-path", 10); got != "a-very-..." {
		t.Errorf("truncate long = %q", got)
	}
}
