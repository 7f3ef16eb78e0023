package session

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/npillmayer/neighbors"
	"github.com/npillmayer/schuko/tracing"
	"github.com/spf13/viper"
)

// Seeding conventions.
const (
	// SeedSentinel pre-seeds every set with a permanent sentinel member.
	SeedSentinel = "sentinel"
	// SeedEmpty starts from an empty set; the first position yields total 0.
	SeedEmpty = "empty"
)

// Defaults.
const (
	DefaultSeeding    = SeedSentinel
	DefaultSentinel   = 0
	DefaultFlushLines = 4096
	DefaultTrace      = "error"
)

// MaxCoordinate bounds the magnitude of positions accepted as input.
const MaxCoordinate = neighbors.MaxPosition

const (
	configName = ".nndist"
	configType = "yaml"
	envPrefix  = "NNDIST"
)

// Config holds the settings of a session.
type Config struct {
	// Seeding is one of SeedSentinel or SeedEmpty.
	Seeding string `mapstructure:"seeding"`
	// Sentinel is the position of the sentinel member for SeedSentinel.
	Sentinel int64 `mapstructure:"sentinel"`
	// Verify cross-checks the running total after every insertion.
	Verify bool `mapstructure:"verify"`
	// FlushLines is the number of output lines buffered between writes.
	FlushLines int `mapstructure:"flush_lines"`
	// Stats enables collection of insertion statistics.
	Stats bool `mapstructure:"stats"`
	// Trace is the trace level: "error", "info" or "debug".
	Trace string `mapstructure:"trace"`
}

// DefaultConfig returns the configuration used when nothing else is set.
func DefaultConfig() Config {
	return Config{
		Seeding:    DefaultSeeding,
		Sentinel:   DefaultSentinel,
		FlushLines: DefaultFlushLines,
		Trace:      DefaultTrace,
	}
}

// Validate checks a configuration for unknown or out-of-range values.
func (c Config) Validate() error {
	switch c.Seeding {
	case SeedSentinel, SeedEmpty:
	default:
		return fmt.Errorf("%w: unknown seeding %q", ErrInvalidConfig, c.Seeding)
	}
	if c.Sentinel > MaxCoordinate || c.Sentinel < -MaxCoordinate {
		return fmt.Errorf("%w: sentinel %d out of range", ErrInvalidConfig, c.Sentinel)
	}
	if c.FlushLines <= 0 {
		return fmt.Errorf("%w: flush_lines must be positive, is %d", ErrInvalidConfig, c.FlushLines)
	}
	if _, ok := traceLevels[strings.ToLower(c.Trace)]; !ok {
		return fmt.Errorf("%w: unknown trace level %q", ErrInvalidConfig, c.Trace)
	}
	return nil
}

var traceLevels = map[string]tracing.TraceLevel{
	"error": tracing.LevelError,
	"info":  tracing.LevelInfo,
	"debug": tracing.LevelDebug,
}

// TraceLevel maps the configured trace name to a tracing level.
// Unknown names map to tracing.LevelError.
func (c Config) TraceLevel() tracing.TraceLevel {
	if level, ok := traceLevels[strings.ToLower(c.Trace)]; ok {
		return level
	}
	return tracing.LevelError
}

// LoadConfig loads configuration from file, env vars, and defaults.
// If configPath is non-empty, it is used as the explicit config file path.
// Otherwise, the config file is searched in CWD and $HOME.
// Missing config file is not an error; defaults are used.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	applyDefaults(v)

	v.SetConfigType(configType)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		tracer().Debugf("session: no config file found, using defaults")
	} else {
		tracer().Infof("session: using config file %s", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

func applyDefaults(v *viper.Viper) {
	v.SetDefault("seeding", DefaultSeeding)
	v.SetDefault("sentinel", DefaultSentinel)
	v.SetDefault("verify", false)
	v.SetDefault("flush_lines", DefaultFlushLines)
	v.SetDefault("stats", false)
	v.SetDefault("trace", DefaultTrace)
}
