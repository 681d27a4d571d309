// Package config loads radgraph settings from .radgraph/config.toml, with
// RADGRAPH_* environment variables taking precedence over the file.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	rgerrors "radgraph/internal/errors"
	"radgraph/internal/paths"
	"radgraph/internal/slogutil"
)

// SchemaVersion is the config layout this build reads and writes.
const SchemaVersion = 1

// EnvPrefix prefixes environment overrides, e.g.
// RADGRAPH_CANONICAL_MAXPERMUTATIONS=720.
const EnvPrefix = "RADGRAPH"

// Config is the complete radgraph configuration.
type Config struct {
	Version   int             `toml:"version" mapstructure:"version" json:"version"`
	Canonical CanonicalConfig `toml:"canonical" mapstructure:"canonical" json:"canonical"`
	Cluster   ClusterConfig   `toml:"cluster" mapstructure:"cluster" json:"cluster"`
	Batch     BatchConfig     `toml:"batch" mapstructure:"batch" json:"batch"`
	Logging   LoggingConfig   `toml:"logging" mapstructure:"logging" json:"logging"`
}

// CanonicalConfig bounds equivalent-path lookup.
type CanonicalConfig struct {
	MaxPermutations int `toml:"maxPermutations" mapstructure:"maxPermutations" json:"maxPermutations"`
}

// ClusterConfig holds clustering defaults.
type ClusterConfig struct {
	DefaultThreshold int `toml:"defaultThreshold" mapstructure:"defaultThreshold" json:"defaultThreshold"`
}

// BatchConfig controls bulk loading of command files.
type BatchConfig struct {
	StopOnError bool `toml:"stopOnError" mapstructure:"stopOnError" json:"stopOnError"`
	Workers     int  `toml:"workers" mapstructure:"workers" json:"workers"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level      string `toml:"level" mapstructure:"level" json:"level"`
	Format     string `toml:"format" mapstructure:"format" json:"format"`
	File       string `toml:"file,omitempty" mapstructure:"file" json:"file,omitempty"`
	MaxSize    string `toml:"maxSize,omitempty" mapstructure:"maxSize" json:"maxSize,omitempty"`
	MaxBackups int    `toml:"maxBackups" mapstructure:"maxBackups" json:"maxBackups"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Version: SchemaVersion,
		Canonical: CanonicalConfig{
			MaxPermutations: 40320,
		},
		Cluster: ClusterConfig{
			DefaultThreshold: 2,
		},
		Batch: BatchConfig{
			StopOnError: false,
			Workers:     4,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     slogutil.FormatText,
			MaxSize:    "10MB",
			MaxBackups: 3,
		},
	}
}

// LoadConfig reads <base>/.radgraph/config.toml. A missing file is not an
// error: defaults and environment overrides still apply.
func LoadConfig(base string) (*Config, error) {
	v := newViper()
	v.SetConfigName(strings.TrimSuffix(paths.ConfigFileName, filepath.Ext(paths.ConfigFileName)))
	v.SetConfigType("toml")
	v.AddConfigPath(paths.ConfigDir(base))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, rgerrors.New(rgerrors.ConfigInvalid, "cannot read "+paths.ConfigFile(base), err)
		}
	}
	return decode(v)
}

// LoadFile reads an explicit config file. Unlike LoadConfig the file must
// exist.
func LoadFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, rgerrors.New(rgerrors.ConfigInvalid, "cannot read "+path, err)
	}
	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Every key needs a default so AutomaticEnv can see it during Unmarshal.
	d := DefaultConfig()
	v.SetDefault("version", d.Version)
	v.SetDefault("canonical.maxPermutations", d.Canonical.MaxPermutations)
	v.SetDefault("cluster.defaultThreshold", d.Cluster.DefaultThreshold)
	v.SetDefault("batch.stopOnError", d.Batch.StopOnError)
	v.SetDefault("batch.workers", d.Batch.Workers)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.file", d.Logging.File)
	v.SetDefault("logging.maxSize", d.Logging.MaxSize)
	v.SetDefault("logging.maxBackups", d.Logging.MaxBackups)
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, rgerrors.New(rgerrors.ConfigInvalid, "cannot decode configuration", err)
	}
	return &cfg, nil
}

// Save writes the configuration to <base>/.radgraph/config.toml.
func (c *Config) Save(base string) error {
	if _, err := paths.EnsureConfigDir(base); err != nil {
		return err
	}
	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(paths.ConfigFile(base), data, 0o644)
}

// Validate checks field ranges. The returned error carries CONFIG_INVALID and
// wraps a *ConfigError naming the field.
func (c *Config) Validate() error {
	if err := c.validate(); err != nil {
		return rgerrors.New(rgerrors.ConfigInvalid, "invalid configuration", err)
	}
	return nil
}

func (c *Config) validate() *ConfigError {
	switch {
	case c.Version != SchemaVersion:
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	case c.Canonical.MaxPermutations < 1:
		return &ConfigError{Field: "canonical.maxPermutations", Message: "must be at least 1"}
	case c.Cluster.DefaultThreshold < 1:
		return &ConfigError{Field: "cluster.defaultThreshold", Message: "must be positive"}
	case c.Batch.Workers < 1:
		return &ConfigError{Field: "batch.workers", Message: "must be at least 1"}
	case !slogutil.ValidLevel(c.Logging.Level):
		return &ConfigError{Field: "logging.level", Message: "unknown level " + c.Logging.Level}
	case c.Logging.Format != slogutil.FormatText && c.Logging.Format != slogutil.FormatJSON:
		return &ConfigError{Field: "logging.format", Message: "must be text or json"}
	case c.Logging.MaxSize != "" && slogutil.ParseSize(c.Logging.MaxSize) <= 0:
		return &ConfigError{Field: "logging.maxSize", Message: "cannot parse size " + c.Logging.MaxSize}
	case c.Logging.MaxBackups < 0:
		return &ConfigError{Field: "logging.maxBackups", Message: "must not be negative"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
