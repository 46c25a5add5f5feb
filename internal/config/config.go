// Package config resolves CLI settings for local-authorizers.
//
// Precedence, highest first: command-line flags, LOCAL_AUTHORIZERS_* environment
// variables, an optional local-authorizers.yaml, then defaults.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides (LOCAL_AUTHORIZERS_STAGE, ...).
const EnvPrefix = "LOCAL_AUTHORIZERS"

// Config is the resolved CLI configuration.
type Config struct {
	// Service definition to rewrite.
	Config string `mapstructure:"config"`
	// Stage overrides provider.stage when set.
	Stage string `mapstructure:"stage"`
	// Out is the output path; "-" writes to stdout.
	Out            string    `mapstructure:"out"`
	CheckPackaging bool      `mapstructure:"check_packaging"`
	Log            LogConfig `mapstructure:"log"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or console
}

// flagKeys maps flag names onto config keys.
var flagKeys = map[string]string{
	"config":          "config",
	"stage":           "stage",
	"out":             "out",
	"check-packaging": "check_packaging",
	"log-level":       "log.level",
	"log-format":      "log.format",
}

// Load reads configuration, binding any of the known flags present in flags.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetConfigName("local-authorizers")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
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

// Validate checks for configuration errors.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Config) == "" {
		return fmt.Errorf("config must name a service definition file")
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("log.format must be json or console, got %q", c.Log.Format)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("config", "serverless.yml")
	v.SetDefault("stage", "")
	v.SetDefault("out", "-")
	v.SetDefault("check_packaging", false)

	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")
}
