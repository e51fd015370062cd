package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/satindergrewal/noisegen/internal/noise"
)

// EnvPrefix namespaces every environment override, e.g. NOISEGEN_KIND.
const EnvPrefix = "NOISEGEN"

// LogConfig controls the zap logger.
type LogConfig struct {
	Level      string `mapstructure:"level"`  // debug, info, warn, error
	Format     string `mapstructure:"format"` // console or json
	File       string `mapstructure:"file"`   // optional rotated log file
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// Config holds the settings that are not positional arguments. Values come
// from defaults, an optional YAML file, NOISEGEN_* environment variables and
// command-line flags, in increasing priority.
type Config struct {
	Kind       string    `mapstructure:"kind"`
	Seed       uint64    `mapstructure:"seed"` // 0 picks a random seed
	Parallel   bool      `mapstructure:"parallel"`
	FadeMS     int       `mapstructure:"fade_ms"`
	MaxSamples int       `mapstructure:"max_samples"`
	Log        LogConfig `mapstructure:"log"`
}

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("kind", "white")
	v.SetDefault("seed", 0)
	v.SetDefault("parallel", false)
	v.SetDefault("fade_ms", 0)
	v.SetDefault("max_samples", noise.DefaultMaxSamples)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)
	v.SetDefault("log.compress", false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// ReadFile merges a YAML config file into v.
func ReadFile(v *viper.Viper, path string) error {
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return nil
}

// Load decodes and checks the configuration held by v.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if _, err := noise.ParseKind(cfg.Kind); err != nil {
		return Config{}, err
	}
	if cfg.FadeMS < 0 {
		return Config{}, fmt.Errorf("config: fade_ms must not be negative, got %d", cfg.FadeMS)
	}
	if cfg.MaxSamples <= 0 {
		return Config{}, fmt.Errorf("config: max_samples must be positive, got %d", cfg.MaxSamples)
	}
	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return Config{}, fmt.Errorf("config: unknown log level %q", cfg.Log.Level)
	}
	switch cfg.Log.Format {
	case "console", "json":
	default:
		return Config{}, fmt.Errorf("config: unknown log format %q", cfg.Log.Format)
	}
	return cfg, nil
}

// NoiseKind returns the parsed noise kind. Load has already checked it.
func (c Config) NoiseKind() noise.Kind {
	k, _ := noise.ParseKind(c.Kind)
	return k
}
