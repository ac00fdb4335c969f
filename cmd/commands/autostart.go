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

	"github.com/aetherhq/aethermon/internal/autostart"
)

var (
	autostartEnable  bool
	autostartDisable bool
)

var autostartCmd = &cobra.Command{
	Use:   "autostart",
	Short: "Manage start-at-login registration",
	Long: `Registers or removes the monitor in the per-user autostart list. Without
flags it reports the current registration state. Only supported on Windows.`,
	RunE: runAutostart,
}

func init() {
	autostartCmd.Flags().BoolVar(&autostartEnable, "enable", false,
		"Register the monitor to start at user login")
	autostartCmd.Flags().BoolVar(&autostartDisable, "disable", false,
		"Remove the start-at-login registration")
	autostartCmd.MarkFlagsMutuallyExclusive("enable", "disable")
	rootCmd.AddCommand(autostartCmd)
}

func runAutostart(cmd *cobra.Command, _ []string) error {
	logger := InitLogger(logLevel, logFile)

	switch {
	case autostartEnable:
		if err := autostart.Enable(); err != nil {
			return fmt.Errorf("failed to enable autostart: %w", err)
		}
		logger.Info("Autostart enabled")
	case autostartDisable:
		if err := autostart.Disable(); err != nil {
			return fmt.Errorf("failed to disable autostart: %w", err)
		}
		logger.Info("Autostart disabled")
	default:
		enabled, err := autostart.Enabled()
		if err != nil {
			return fmt.Errorf("failed to query autostart state: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Autostart enabled: %v\n", enabled)
	}

	return nil
}
