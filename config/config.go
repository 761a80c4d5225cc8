// Package config loads game settings from defaults, a TOML file, the environment and flags
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "TICTAC_"

// Backend names
const (
	BackendANSI  = "ansi"
	BackendTcell = "tcell"
)

var (
	// ErrInvalid wraps every validation failure
	ErrInvalid = errors.New("invalid config")

	// ErrUnknownKey is returned for keys in the file that no field takes
	ErrUnknownKey = errors.New("unknown config key")
)

// Config holds all runtime settings
type Config struct {
	Width   int     `toml:"width" env:"WIDTH"`
	Height  int     `toml:"height" env:"HEIGHT"`
	FPS     int     `toml:"fps" env:"FPS"`
	Backend string  `toml:"backend" env:"BACKEND"`
	Sound   bool    `toml:"sound" env:"SOUND"`
	Volume  float64 `toml:"volume" env:"VOLUME"`
	Debug   bool    `toml:"debug" env:"DEBUG"`
	LogDir  string  `toml:"log_dir" env:"LOG_DIR"`
	BoardX  int     `toml:"board_x" env:"BOARD_X"`
	BoardY  int     `toml:"board_y" env:"BOARD_Y"`

	// Action name → key names; file only
	Keys map[string][]string `toml:"keys"`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		Width:   60,
		Height:  10,
		FPS:     60,
		Backend: BackendANSI,
		Sound:   true,
		Volume:  0.5,
		LogDir:  "logs",
		BoardX:  2,
		BoardY:  1,
	}
}

// DefaultPath returns the per-user config file location
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "tictac", "config.toml")
}

// Load applies defaults, then the file at path, then environment overrides
// An empty path tries DefaultPath and skips it when absent; an explicit path must exist
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		if err := LoadFile(&cfg, path); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return cfg, err
			}
		}
	}

	if err := ParseEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadFile decodes a TOML file over cfg; unknown keys are an error
func LoadFile(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("config file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return fmt.Errorf("config file %s: %w: %s", path, ErrUnknownKey, strings.Join(keys, ", "))
	}
	return nil
}

// ParseEnv overlays TICTAC_* environment variables on cfg
func ParseEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate reports every out-of-range setting
func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("%w: size %dx%d must be positive", ErrInvalid, c.Width, c.Height))
	}
	if c.FPS < 1 || c.FPS > 240 {
		errs = append(errs, fmt.Errorf("%w: fps %d outside 1..240", ErrInvalid, c.FPS))
	}
	if c.Backend != BackendANSI && c.Backend != BackendTcell {
		errs = append(errs, fmt.Errorf("%w: backend %q, want %s or %s", ErrInvalid, c.Backend, BackendANSI, BackendTcell))
	}
	if c.Volume < 0 || c.Volume > 1 {
		errs = append(errs, fmt.Errorf("%w: volume %g outside 0..1", ErrInvalid, c.Volume))
	}
	if c.BoardX < 0 || c.BoardY < 0 {
		errs = append(errs, fmt.Errorf("%w: board origin (%d,%d) must not be negative", ErrInvalid, c.BoardX, c.BoardY))
	}
	if c.Debug && c.LogDir == "" {
		errs = append(errs, fmt.Errorf("%w: debug logging needs log_dir", ErrInvalid))
	}
	return errors.Join(errs...)
}
