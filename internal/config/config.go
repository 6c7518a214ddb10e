package config

import (
	"os"
	"strings"

	"agrismart/internal/errors"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix namespaces every environment override, e.g. AGRISMART_MODEL_DIR
const EnvPrefix = "AGRISMART_"

// ConfigPathEnvVar points at an optional YAML file layered between defaults and env
const ConfigPathEnvVar = "AGRISMART_CONFIG"

// DefaultConfigPaths are searched when AGRISMART_CONFIG is unset
var DefaultConfigPaths = []string{
	"agrismart.yaml",
	"agrismart.yml",
}

// Config represents the complete application configuration
type Config struct {
	Model   ModelConfig   `koanf:"model" validate:"required"`
	History HistoryConfig `koanf:"history"`
	Log     LogConfig     `koanf:"log"`
}

// ModelConfig holds training and artifact settings
type ModelConfig struct {
	Dir          string  `koanf:"dir" validate:"required"`
	Seed         int64   `koanf:"seed"`
	Samples      int     `koanf:"samples" validate:"gte=50"`
	TestFraction float64 `koanf:"test_fraction" validate:"gt=0,lt=1"`
	YieldTrees   int     `koanf:"yield_trees" validate:"gte=10"`
	CropTrees    int     `koanf:"crop_trees" validate:"gte=1"`
}

// HistoryConfig holds the optional prediction history database
type HistoryConfig struct {
	Driver string `koanf:"driver" validate:"omitempty,oneof=sqlite3 postgres"`
	DSN    string `koanf:"dsn"`
}

// Enabled reports whether predictions should be recorded
func (h HistoryConfig) Enabled() bool {
	return h.DSN != ""
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `koanf:"level" validate:"omitempty,oneof=ERROR WARN INFO DEBUG TRACE error warn info debug trace"`
	Format string `koanf:"format" validate:"omitempty,oneof=json console"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Model: ModelConfig{
			Dir:          "ml_models",
			Seed:         42,
			Samples:      1200,
			TestFraction: 0.2,
			YieldTrees:   100,
			CropTrees:    100,
		},
		History: HistoryConfig{
			Driver: "sqlite3",
			DSN:    "",
		},
		Log: LogConfig{
			Level:  "INFO",
			Format: "console",
		},
	}
}

// Load reads configuration from defaults, an optional YAML file and environment variables,
// in increasing order of precedence, and validates it
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, errors.Wrap(err, "failed to load configuration defaults")
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "failed to load config file %s", path)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, errors.Wrap(err, "failed to load environment variables")
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks struct constraints
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.ConfigInvalid("configuration validation failed", err)
	}
	return nil
}

// envTransformFunc maps AGRISMART_MODEL_TEST_FRACTION to model.test_fraction.
// Only the first underscore separates section from key.
func envTransformFunc(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if key == "config" {
		return ""
	}
	return strings.Replace(key, "_", ".", 1)
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
