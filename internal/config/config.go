// Package config resolves runtime settings from defaults, an optional YAML
// file and DAYPLANNER_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	EnvConfigPath           = "DAYPLANNER_CONFIG"
	EnvDesktopNotifications = "DAYPLANNER_DESKTOP_NOTIFICATIONS"
	EnvTickSeconds          = "DAYPLANNER_TICK_SECONDS"
	EnvSeed                 = "DAYPLANNER_SEED"
	EnvJournalPath          = "DAYPLANNER_JOURNAL"
	EnvDebugLogPath         = "DAYPLANNER_DEBUG_LOG"
)

var ErrInvalidConfig = errors.New("config: invalid config")

type RuntimeConfig struct {
	DesktopNotifications bool   `yaml:"desktop_notifications"`
	TickSeconds          int    `yaml:"tick_seconds"`
	Seed                 uint64 `yaml:"seed"`
	JournalPath          string `yaml:"journal_path"`
	DebugLogPath         string `yaml:"debug_log_path"`
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		DesktopNotifications: false,
		TickSeconds:          5,
	}
}

// Load applies the file layer then the environment layer on top of the defaults.
func Load() (RuntimeConfig, error) {
	path, explicit := Path()
	cfg, err := LoadFile(DefaultRuntimeConfig(), path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			cfg = DefaultRuntimeConfig()
		} else {
			return RuntimeConfig{}, err
		}
	}
	cfg = RuntimeConfigFromEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return RuntimeConfig{}, err
	}
	return cfg, nil
}

// Path returns the config file location and whether the user named it explicitly.
func Path() (string, bool) {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p, true
	}
	dir := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME"))
	if dir == "" {
		home, err := os.UserConfigDir()
		if err != nil {
			return "", false
		}
		dir = home
	}
	return filepath.Join(dir, "dayplanner", "config.yaml"), false
}

// LoadFile overlays the YAML document at path onto base. Keys absent from the
// file keep their base value.
func LoadFile(base RuntimeConfig, path string) (RuntimeConfig, error) {
	if path == "" {
		return base, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, fmt.Errorf("%w: parsing %s: %v", ErrInvalidConfig, path, err)
	}
	return cfg, nil
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v, ok := getEnvBool(EnvDesktopNotifications); ok {
		cfg.DesktopNotifications = v
	}
	if v, ok := getEnvInt(EnvTickSeconds); ok && v > 0 {
		cfg.TickSeconds = v
	}
	if v, ok := getEnvUint(EnvSeed); ok {
		cfg.Seed = v
	}
	if v, ok := os.LookupEnv(EnvJournalPath); ok {
		cfg.JournalPath = strings.TrimSpace(v)
	}
	if v, ok := os.LookupEnv(EnvDebugLogPath); ok {
		cfg.DebugLogPath = strings.TrimSpace(v)
	}
	return cfg
}

func (c RuntimeConfig) Validate() error {
	if c.TickSeconds <= 0 {
		return fmt.Errorf("%w: tick_seconds must be positive, got %d", ErrInvalidConfig, c.TickSeconds)
	}
	return nil
}

func (c RuntimeConfig) Tick() time.Duration {
	return time.Duration(c.TickSeconds) * time.Second
}

// ResolvedSeed returns Seed, or a seed derived from now when Seed is 0.
func (c RuntimeConfig) ResolvedSeed(now time.Time) uint64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return uint64(now.UnixNano())
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvUint(name string) (uint64, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
