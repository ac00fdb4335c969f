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

// Package config loads the monitor configuration from an optional YAML file
// and AETHERMON_* environment variables, with documented defaults. Invalid
// values never abort startup; they fall back to defaults with a warning.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents application configuration. It is immutable after
// Normalize; runtime interval widening is tracked by the poller, not here.
type Config struct {
	Intervals Intervals     // Base poll interval per metric
	CacheTTL  time.Duration // Cached readings younger than this are served as-is

	DiskPath string // Filesystem path monitored for space (empty = system root)

	Memory MemoryPolicy // Self-footprint backoff policy
	Window WindowConfig // Geometry hint for presentation clients
	Server ServerConfig // Presentation sink listen address

	LogLevel string // Log level: debug, info, warn, error
	LogFile  string // Log file path (empty = stdout)
}

// Intervals holds the base poll interval for each metric.
type Intervals struct {
	CPU         time.Duration
	RAM         time.Duration
	Disk        time.Duration
	Temperature time.Duration
}

// MemoryPolicy bounds the monitor's own memory footprint. When process RSS
// exceeds LimitMB, all poll intervals are multiplied by BackoffFactor until
// usage drops back below the limit.
type MemoryPolicy struct {
	LimitMB       int
	BackoffFactor float64
	CheckInterval time.Duration
}

// WindowConfig is the geometry hint reported to presentation clients.
type WindowConfig struct {
	Width     int
	Height    int
	Resizable bool
}

// ServerConfig configures the local JSON API.
type ServerConfig struct {
	Host string
	Port int
}

// Default configuration values.
const (
	DefaultCPUInterval         = 3 * time.Second
	DefaultRAMInterval         = 5 * time.Second
	DefaultDiskInterval        = 10 * time.Second
	DefaultTemperatureInterval = 10 * time.Second
	DefaultCacheTTL            = 1 * time.Second

	DefaultMemoryLimitMB = 25
	DefaultBackoffFactor = 3.0
	DefaultCheckInterval = 30 * time.Second

	DefaultWindowWidth  = 420
	DefaultWindowHeight = 320

	DefaultServerHost = "127.0.0.1"
	DefaultServerPort = 7700

	DefaultLogLevel = "info"
)

// Interval sanity bounds applied by Normalize.
const (
	minInterval = 1 * time.Second
	maxInterval = 1 * time.Hour
)

// Default returns a configuration populated with all default values.
func Default() *Config {
	return &Config{
		Intervals: Intervals{
			CPU:         DefaultCPUInterval,
			RAM:         DefaultRAMInterval,
			Disk:        DefaultDiskInterval,
			Temperature: DefaultTemperatureInterval,
		},
		CacheTTL: DefaultCacheTTL,
		Memory: MemoryPolicy{
			LimitMB:       DefaultMemoryLimitMB,
			BackoffFactor: DefaultBackoffFactor,
			CheckInterval: DefaultCheckInterval,
		},
		Window: WindowConfig{
			Width:     DefaultWindowWidth,
			Height:    DefaultWindowHeight,
			Resizable: false,
		},
		Server: ServerConfig{
			Host: DefaultServerHost,
			Port: DefaultServerPort,
		},
		LogLevel: DefaultLogLevel,
	}
}

// Load reads configuration from the given file, or searches the standard
// locations when path is empty. Environment variables with the AETHERMON_
// prefix override file values (dots become underscores, e.g.
// AETHERMON_CACHE_TTL). A missing config file is not an error unless an
// explicit path was given.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("aethermon")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "aethermon"))
		}
	}

	v.SetEnvPrefix("AETHERMON")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	return fromViper(v), nil
}

func setDefaults(v *viper.Viper) {
	// Interval and TTL keys are plain seconds in the file.
	v.SetDefault("poll_intervals.cpu", DefaultCPUInterval.Seconds())
	v.SetDefault("poll_intervals.ram", DefaultRAMInterval.Seconds())
	v.SetDefault("poll_intervals.disk", DefaultDiskInterval.Seconds())
	v.SetDefault("poll_intervals.temperature", DefaultTemperatureInterval.Seconds())
	v.SetDefault("cache_ttl", DefaultCacheTTL.Seconds())

	v.SetDefault("disk.path", "")

	v.SetDefault("memory.limit_mb", DefaultMemoryLimitMB)
	v.SetDefault("memory.backoff_factor", DefaultBackoffFactor)
	v.SetDefault("memory.check_interval", DefaultCheckInterval.Seconds())

	v.SetDefault("window.width", DefaultWindowWidth)
	v.SetDefault("window.height", DefaultWindowHeight)
	v.SetDefault("window.resizable", false)

	v.SetDefault("server.host", DefaultServerHost)
	v.SetDefault("server.port", DefaultServerPort)

	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.file", "")
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Intervals: Intervals{
			CPU:         secondsToDuration(v.GetFloat64("poll_intervals.cpu")),
			RAM:         secondsToDuration(v.GetFloat64("poll_intervals.ram")),
			Disk:        secondsToDuration(v.GetFloat64("poll_intervals.disk")),
			Temperature: secondsToDuration(v.GetFloat64("poll_intervals.temperature")),
		},
		CacheTTL: secondsToDuration(v.GetFloat64("cache_ttl")),
		DiskPath: v.GetString("disk.path"),
		Memory: MemoryPolicy{
			LimitMB:       v.GetInt("memory.limit_mb"),
			BackoffFactor: v.GetFloat64("memory.backoff_factor"),
			CheckInterval: secondsToDuration(v.GetFloat64("memory.check_interval")),
		},
		Window: WindowConfig{
			Width:     v.GetInt("window.width"),
			Height:    v.GetInt("window.height"),
			Resizable: v.GetBool("window.resizable"),
		},
		Server: ServerConfig{
			Host: v.GetString("server.host"),
			Port: v.GetInt("server.port"),
		},
		LogLevel: v.GetString("log.level"),
		LogFile:  v.GetString("log.file"),
	}
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// Normalize replaces invalid values with their defaults, logging a warning
// for each replacement. The monitor never refuses to start over bad config.
func (c *Config) Normalize(logger *slog.Logger) {
	def := Default()

	c.Intervals.CPU = normalizeInterval(logger, "poll_intervals.cpu", c.Intervals.CPU, def.Intervals.CPU)
	c.Intervals.RAM = normalizeInterval(logger, "poll_intervals.ram", c.Intervals.RAM, def.Intervals.RAM)
	c.Intervals.Disk = normalizeInterval(logger, "poll_intervals.disk", c.Intervals.Disk, def.Intervals.Disk)
	c.Intervals.Temperature = normalizeInterval(logger, "poll_intervals.temperature", c.Intervals.Temperature, def.Intervals.Temperature)

	if c.CacheTTL <= 0 || c.CacheTTL > c.ShortestInterval() {
		logger.Warn("Invalid config value, using default",
			"key", "cache_ttl", "value", c.CacheTTL, "default", def.CacheTTL)
		c.CacheTTL = def.CacheTTL
	}

	if c.Memory.LimitMB < 1 {
		logger.Warn("Invalid config value, using default",
			"key", "memory.limit_mb", "value", c.Memory.LimitMB, "default", def.Memory.LimitMB)
		c.Memory.LimitMB = def.Memory.LimitMB
	}
	if c.Memory.BackoffFactor < 1.0 {
		logger.Warn("Invalid config value, using default",
			"key", "memory.backoff_factor", "value", c.Memory.BackoffFactor, "default", def.Memory.BackoffFactor)
		c.Memory.BackoffFactor = def.Memory.BackoffFactor
	}
	if c.Memory.CheckInterval < time.Second {
		logger.Warn("Invalid config value, using default",
			"key", "memory.check_interval", "value", c.Memory.CheckInterval, "default", def.Memory.CheckInterval)
		c.Memory.CheckInterval = def.Memory.CheckInterval
	}

	if c.Window.Width < 1 || c.Window.Height < 1 {
		logger.Warn("Invalid config value, using default",
			"key", "window", "value", fmt.Sprintf("%dx%d", c.Window.Width, c.Window.Height),
			"default", fmt.Sprintf("%dx%d", def.Window.Width, def.Window.Height))
		c.Window.Width = def.Window.Width
		c.Window.Height = def.Window.Height
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		logger.Warn("Invalid config value, using default",
			"key", "server.port", "value", c.Server.Port, "default", def.Server.Port)
		c.Server.Port = def.Server.Port
	}
	if c.Server.Host == "" {
		c.Server.Host = def.Server.Host
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		logger.Warn("Invalid config value, using default",
			"key", "log.level", "value", c.LogLevel, "default", def.LogLevel)
		c.LogLevel = def.LogLevel
	}
}

func normalizeInterval(logger *slog.Logger, key string, val, def time.Duration) time.Duration {
	if val < minInterval || val > maxInterval {
		logger.Warn("Invalid config value, using default",
			"key", key, "value", val, "default", def)
		return def
	}
	return val
}

// ShortestInterval returns the shortest configured poll interval. The poller
// publishes evaluations at this cadence.
func (c *Config) ShortestInterval() time.Duration {
	shortest := c.Intervals.CPU
	for _, d := range []time.Duration{c.Intervals.RAM, c.Intervals.Disk, c.Intervals.Temperature} {
		if d < shortest {
			shortest = d
		}
	}
	return shortest
}

// ListenAddr returns the host:port the presentation sink binds to.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// String returns a human-readable representation of the configuration.
func (c *Config) String() string {
	return fmt.Sprintf("Config{CPU=%v, RAM=%v, Disk=%v, Temp=%v, TTL=%v, MemLimit=%dMB, Backoff=%.1f, Listen=%s}",
		c.Intervals.CPU, c.Intervals.RAM, c.Intervals.Disk, c.Intervals.Temperature,
		c.CacheTTL, c.Memory.LimitMB, c.Memory.BackoffFactor, c.ListenAddr())
}
