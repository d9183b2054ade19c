package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/masmgr/logbound-go/internal/transform"
)

// EnvPrefix is the prefix of environment overrides. Nested keys are
// separated by a double underscore, e.g. LOGBOUND_TRANSFORM__MIN_BOUND.
const EnvPrefix = "LOGBOUND_"

// DefaultFileNames are searched in the working directory, then in $HOME.
var DefaultFileNames = []string{".logbound.yaml", ".logbound.yml", ".logbound.json"}

// Config is the root configuration structure.
type Config struct {
	Transform    TransformConfig    `koanf:"transform"`
	CheckInverse CheckInverseConfig `koanf:"check_inverse"`
	Input        InputConfig        `koanf:"input"`
	Calibration  CalibrationConfig  `koanf:"calibration"`
	Log          LogConfig          `koanf:"log"`
}

// TransformConfig holds the bounded log transform settings.
type TransformConfig struct {
	MinBound     float64 `koanf:"min_bound"`     // Default: -2
	MaxBound     float64 `koanf:"max_bound"`     // Default: 4
	StrictDomain bool    `koanf:"strict_domain"` // Fail instead of producing NaN for x >= 0
}

// CheckInverseConfig controls the forward/inverse consistency check.
type CheckInverseConfig struct {
	Enabled        bool `koanf:"enabled"`
	FailOnMismatch bool `koanf:"fail_on_mismatch"`
}

// InputConfig holds dataset parsing options.
type InputConfig struct {
	Column    string `koanf:"column"`
	Delimiter string `koanf:"delimiter"`
}

// CalibrationConfig holds bounds calibration options.
type CalibrationConfig struct {
	Padding float64 `koanf:"padding"`
}

// LogConfig holds logging options.
type LogConfig struct {
	Level string `koanf:"level"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Transform: TransformConfig{
			MinBound: transform.DefaultMinBound,
			MaxBound: transform.DefaultMaxBound,
		},
		CheckInverse: CheckInverseConfig{
			Enabled: true,
		},
		Input: InputConfig{
			Column:    "",
			Delimiter: ",",
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Validate checks settings that cannot be fixed up with defaults.
func (c *Config) Validate() error {
	if _, err := c.BoundedLog(); err != nil {
		return err
	}
	if n := len([]rune(c.Input.Delimiter)); n > 1 {
		return fmt.Errorf("delimiter must be a single character: %q", c.Input.Delimiter)
	}
	if c.Calibration.Padding < 0 {
		return fmt.Errorf("calibration padding must be non-negative: %g", c.Calibration.Padding)
	}
	return nil
}

// BoundedLog builds the transform described by the configuration.
func (c *Config) BoundedLog() (transform.BoundedLog, error) {
	return transform.New(c.Transform.MinBound, c.Transform.MaxBound)
}

// DelimiterRune returns the input delimiter, defaulting to ','.
func (c *Config) DelimiterRune() rune {
	for _, r := range c.Input.Delimiter {
		return r
	}
	return ','
}

// LoadConfig loads and validates configuration from a file and the
// environment, merging with defaults. An empty path searches DefaultFileNames.
func LoadConfig(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load is LoadConfig without validation, for callers that apply further
// overrides before calling Validate.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	k := koanf.New(".")

	explicit := path != ""
	if !explicit {
		path = findDefaultFile()
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to read %s: %w", path, err)
			}
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// envKey maps LOGBOUND_TRANSFORM__MIN_BOUND to transform.min_bound.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

func findDefaultFile() string {
	dirs := []string{"."}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		dirs = append(dirs, home)
	} else if envHome := os.Getenv("HOME"); envHome != "" {
		dirs = append(dirs, envHome)
	}
	for _, dir := range dirs {
		for _, name := range DefaultFileNames {
			p := filepath.Join(dir, name)
			if _, err := os.Stat(p); err == nil {
				return p
			}
		}
	}
	return ""
}
