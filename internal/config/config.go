// Package config holds the protocol constants injected into the
// lighthouse decoder at construction time. Nothing here is a package
// level global: callers build a Config and pass it explicitly, so the
// decoder can be exercised at other tick bases in tests.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultConfigPath is the canonical location for a JSON config file.
// Nothing in this module reads it implicitly; callers pass a path to Load.
const DefaultConfigPath = "config/lighthouse.defaults.json"

// Config carries the two protocol constants a conforming decoder MUST
// be supplied with (spec §3, §9): the base station's tick rate and the
// rotor rotation rate.
type Config struct {
	// TickRate is the number of ticks per second the base station
	// counts at.
	TickRate uint64 `json:"tick_rate"`
	// RotorRPS is the rotor rotation rate, in revolutions per second.
	RotorRPS float64 `json:"rotor_rps"`
}

// Default returns the constants used by the reference hardware: a
// 48MHz tick counter and a 60rps (3600rpm) rotor.
func Default() Config {
	return Config{
		TickRate: 48_000_000,
		RotorRPS: 60,
	}
}

// Period returns one full rotor half-period in ticks: TICK_RATE /
// ROTOR_RPS / 2, the gap between consecutive sweeps from the same
// station (spec §3, §4.3).
func (c Config) Period() float64 {
	return float64(c.TickRate) / c.RotorRPS / 2
}

// Validate rejects configs that would make Period() meaningless.
func (c Config) Validate() error {
	if c.TickRate == 0 {
		return fmt.Errorf("config: tick_rate must be positive")
	}
	if c.RotorRPS <= 0 {
		return fmt.Errorf("config: rotor_rps must be positive")
	}
	return nil
}

// Load reads a Config from a JSON file. Fields omitted from the file
// fall back to Default()'s values.
func Load(path string) (Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return Config{}, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return Config{}, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if fileInfo.Size() > maxFileSize {
		return Config{}, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
