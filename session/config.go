package session

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/milk9111/rangedcombat/common"
	"github.com/milk9111/rangedcombat/targeting"
	"gopkg.in/yaml.v3"
)

// Config holds the tunables of a combat session.
type Config struct {
	// TickRate is the number of simulation steps per second.
	TickRate     int           `yaml:"tick_rate"`
	AimInterval  time.Duration `yaml:"aim_interval"`
	ScanCapacity int           `yaml:"scan_capacity"`
	Seed         int64         `yaml:"seed"`
	Gravity      float64       `yaml:"gravity"`
	LogLevel     string        `yaml:"log_level"`
}

func DefaultConfig() Config {
	return Config{
		TickRate:     60,
		AimInterval:  targeting.DefaultInterval,
		ScanCapacity: targeting.MaxCandidates,
		Seed:         1,
		Gravity:      common.Gravity,
		LogLevel:     "info",
	}
}

// LoadConfig reads a YAML config on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("session: read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("session: unmarshal config: %w", err)
	}
	return cfg.normalize(), nil
}

// Step returns the duration of one simulation tick.
func (c Config) Step() time.Duration {
	if c.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.TickRate)
}

// Level parses LogLevel, falling back to info.
func (c Config) Level() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func (c Config) normalize() Config {
	d := DefaultConfig()
	if c.TickRate <= 0 {
		c.TickRate = d.TickRate
	}
	if c.AimInterval <= 0 {
		c.AimInterval = d.AimInterval
	}
	if c.ScanCapacity <= 0 || c.ScanCapacity > targeting.MaxCandidates {
		c.ScanCapacity = d.ScanCapacity
	}
	return c
}
