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

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aetherhq/aethermon/internal/devices"
)

var listSensorsCmd = &cobra.Command{
	Use:   "list-sensors",
	Short: "List disk devices and temperature sensors",
	Long: `Lists the disk devices usable as the monitored disk path and the
temperature sensors this system exposes. An empty sensor list explains why
temperature reads as N/A.`,
	RunE: runListSensors,
}

func init() {
	rootCmd.AddCommand(listSensorsCmd)
}

func runListSensors(cmd *cobra.Command, _ []string) error {
	disks, err := devices.ListDisks()
	if err != nil {
		return fmt.Errorf("failed to list disks: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), devices.FormatDisksTable(disks))

	sensors, err := devices.ListTemperatureSensors()
	if err != nil {
		// Sensor enumeration failing is equivalent to having no sensors.
		fmt.Fprint(cmd.OutOrStdout(), devices.FormatSensorsTable(nil))
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), devices.FormatSensorsTable(sensors))

	return nil
}
