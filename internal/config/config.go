// Package config gathers simulation, resource-limit, snapshot and server
// settings, each with environment-variable overrides. The simulation
// defaults are not defined here: DefaultSim reads them from the kernel's
// own constants (kernel.DefaultTickRate, DefaultWorldSize, DefaultMaxTicks).
package config

import (
	"os"
	"strconv"

	"orbitsim/internal/kernel"
)

// =============================================================================
// SIMULATION CONFIGURATION
// =============================================================================

// SimConfig holds the kernel-facing timing and arena settings (§3).
type SimConfig struct {
	TickRate  int     // ticks per simulated second (Δt = 1/TickRate)
	WorldSize float64 // side length of the bounded square arena
	MaxTicks  int     // hard per-match tick cap
}

// DefaultSim returns the default simulation configuration, matching the
// kernel's own frozen constants.
func DefaultSim() SimConfig {
	return SimConfig{
		TickRate:  kernel.DefaultTickRate,
		WorldSize: kernel.DefaultWorldSize,
		MaxTicks:  kernel.DefaultMaxTicks,
	}
}

// SimFromEnv returns simulation configuration with environment variable
// overrides.
func SimFromEnv() SimConfig {
	cfg := DefaultSim()

	if tr := getEnvInt("TICK_RATE", 0); tr > 0 {
		cfg.TickRate = tr
	}
	if ws := getEnvFloat("WORLD_SIZE", 0); ws > 0 {
		cfg.WorldSize = ws
	}
	if mt := getEnvInt("MAX_TICKS", 0); mt > 0 {
		cfg.MaxTicks = mt
	}

	return cfg
}

// =============================================================================
// AGENT RESOURCE LIMITS
// =============================================================================

// ResourceLimits controls per-agent sandboxing and performance limits.
type ResourceLimits struct {
	AgentBudgetMillis int // per-ship per-tick agent deadline (§4.4)
	MaxReconnects     int // guest-subprocess reconnect attempts before giving up
	MaxMessageBytes   int // wire protocol frame size cap
	MaxShips          int // hard cap on live ships per match (DoS protection)
}

// DefaultLimits returns the default resource limits.
func DefaultLimits() ResourceLimits {
	return ResourceLimits{
		AgentBudgetMillis: 5,
		MaxReconnects:     20,
		MaxMessageBytes:   64 * 1024,
		MaxShips:          2000,
	}
}

// LimitsFromEnv returns resource limits with environment variable
// overrides.
func LimitsFromEnv() ResourceLimits {
	cfg := DefaultLimits()

	if ab := getEnvInt("AGENT_BUDGET_MS", 0); ab > 0 {
		cfg.AgentBudgetMillis = ab
	}
	if ms := getEnvInt("MAX_SHIPS", 0); ms > 0 {
		cfg.MaxShips = ms
	}

	return cfg
}

// =============================================================================
// SNAPSHOT / REPLAY CONFIGURATION
// =============================================================================

// SnapshotConfig controls how often match state is serialized for
// renderer/replay consumers.
type SnapshotConfig struct {
	CadenceTicks int // emit a snapshot every N ticks (1 = every tick)
}

// DefaultSnapshot returns the default snapshot cadence.
func DefaultSnapshot() SnapshotConfig {
	return SnapshotConfig{CadenceTicks: 1}
}

// SnapshotFromEnv returns snapshot configuration with environment
// variable overrides.
func SnapshotFromEnv() SnapshotConfig {
	cfg := DefaultSnapshot()
	if c := getEnvInt("SNAPSHOT_CADENCE", 0); c > 0 {
		cfg.CadenceTicks = c
	}
	return cfg
}

// =============================================================================
// SERVER CONFIGURATION
// =============================================================================

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port                 int
	MetricsPort          int
	MaxConcurrentMatches int
}

// DefaultServer returns the default server configuration.
func DefaultServer() ServerConfig {
	return ServerConfig{
		Port:                 8080,
		MetricsPort:          9090,
		MaxConcurrentMatches: 8,
	}
}

// ServerFromEnv returns server configuration with environment variable
// overrides.
func ServerFromEnv() ServerConfig {
	cfg := DefaultServer()

	if p := getEnvInt("PORT", 0); p > 0 {
		cfg.Port = p
	}
	if mp := getEnvInt("METRICS_PORT", 0); mp > 0 {
		cfg.MetricsPort = mp
	}
	if mc := getEnvInt("MAX_CONCURRENT_MATCHES", 0); mc > 0 {
		cfg.MaxConcurrentMatches = mc
	}

	return cfg
}

// =============================================================================
// COMPLETE APP CONFIGURATION
// =============================================================================

// AppConfig holds the complete application configuration.
type AppConfig struct {
	Sim      SimConfig
	Limits   ResourceLimits
	Snapshot SnapshotConfig
	Server   ServerConfig
}

// Load returns the complete configuration with environment overrides.
func Load() AppConfig {
	return AppConfig{
		Sim:      SimFromEnv(),
		Limits:   LimitsFromEnv(),
		Snapshot: SnapshotFromEnv(),
		Server:   ServerFromEnv(),
	}
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}
