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
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aetherhq/aethermon/internal/collector"
	"github.com/aetherhq/aethermon/internal/config"
	"github.com/aetherhq/aethermon/internal/poller"
	"github.com/aetherhq/aethermon/internal/server"
	"github.com/aetherhq/aethermon/pkg/metrics"
)

// evaluationBuffer bounds how many evaluations may queue between the poller
// and the API before drops start.
const evaluationBuffer = 10

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Start monitoring and serve the local metrics API",
	Long: `Starts the polling loops for CPU, RAM, disk and temperature, evaluates the
system health score and recommendations, and serves the latest result over a
local JSON API until interrupted.`,
	RunE: runMonitor,
}

func init() {
	rootCmd.AddCommand(monitorCmd)
}

func runMonitor(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	// Explicit command-line flags win over the config file.
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if cmd.Flags().Changed("log-file") {
		cfg.LogFile = logFile
	}

	logger := InitLogger(cfg.LogLevel, cfg.LogFile)
	cfg.Normalize(logger)

	logger.Info("Starting AetherMon", "config", cfg.String())

	diskPath := cfg.DiskPath
	if diskPath == "" {
		diskPath = collector.DefaultDiskPath()
	}
	totals := collector.ReadTotals(diskPath)
	logger.Info("System capacity",
		"ram_total_gb", fmt.Sprintf("%.1f", totals.RAMTotalGB),
		"disk_total_gb", fmt.Sprintf("%.1f", totals.DiskTotalGB),
		"disk_path", diskPath,
	)

	if !collector.NewTemperatureCollector().Available() {
		logger.Info("No temperature sensors detected, temperature will read N/A")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	evals := make(chan metrics.Evaluation, evaluationBuffer)
	p := poller.New(cfg, evals, logger)
	srv := server.NewServer(p, totals, cfg.Window, logger)

	httpServer := &http.Server{
		Addr:              cfg.ListenAddr(),
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}

	p.Start(ctx)
	defer p.Stop()

	go func() {
		for ev := range evals {
			srv.Publish(ev)
		}
	}()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Metrics API listening", "addr", cfg.ListenAddr())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-serveErr:
		return fmt.Errorf("metrics API failed: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("Metrics API shutdown incomplete", "error", err)
	}

	logger.Info("AetherMon stopped")
	return nil
}
