// Package config loads portgraph settings from a YAML or JSON file and
// PORTGRAPH_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aretw0/portgraph/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. PORTGRAPH_LIMITS_MAX_PORTS=32.
const EnvPrefix = "PORTGRAPH_"

// Loader kinds.
const (
	LoaderFile  = "file"
	LoaderLoam  = "loam"
	LoaderRedis = "redis"
)

// Config is the full application configuration.
type Config struct {
	Log    LogConfig     `mapstructure:"log" yaml:"log"`
	Limits domain.Limits `mapstructure:"limits" yaml:"limits"`
	HTTP   HTTPConfig    `mapstructure:"http" yaml:"http"`
	Redis  RedisConfig   `mapstructure:"redis" yaml:"redis"`
	Loader LoaderConfig  `mapstructure:"loader" yaml:"loader"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

type HTTPConfig struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
}

type RedisConfig struct {
	Addr     string        `mapstructure:"addr" yaml:"addr"`
	Password string        `mapstructure:"password" yaml:"password"`
	DB       int           `mapstructure:"db" yaml:"db"`
	Prefix   string        `mapstructure:"prefix" yaml:"prefix"`
	TTL      time.Duration `mapstructure:"ttl" yaml:"ttl"`
}

// LoaderConfig selects where named graph documents come from.
type LoaderConfig struct {
	Kind string `mapstructure:"kind" yaml:"kind"`
	Dir  string `mapstructure:"dir" yaml:"dir"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Log:    LogConfig{Level: "info", Format: "text"},
		Limits: domain.DefaultLimits(),
		HTTP: HTTPConfig{
			Addr:              ":8080",
			ReadHeaderTimeout: 5 * time.Second,
			ShutdownTimeout:   10 * time.Second,
		},
		Redis: RedisConfig{
			Addr:   "localhost:6379",
			Prefix: "portgraph:",
		},
		Loader: LoaderConfig{Kind: LoaderFile, Dir: "."},
	}
}

// Load reads path (YAML or JSON) over the defaults, then applies environment
// overrides. An empty or missing path yields the defaults.
func Load(path string) (*Config, error) {
	raw := make(map[string]any)

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// No config file: defaults plus environment.
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			// YAML is a superset of JSON, so one decoder covers both.
			if err := yaml.Unmarshal(data, &raw); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	applyEnv(raw, os.Environ())

	cfg := Default()
	if err := decode(raw, cfg); err != nil {
		return nil, err
	}
	cfg.Limits = cfg.Limits.WithDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(raw map[string]any, cfg *Config) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return fmt.Errorf("failed to create config decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}
	return nil
}

// applyEnv folds PORTGRAPH_<SECTION>_<KEY>=v into raw[section][key].
// Only the first underscore after the prefix separates section from key.
func applyEnv(raw map[string]any, environ []string) {
	for _, kv := range environ {
		name, val, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, EnvPrefix) {
			continue
		}
		section, key, ok := strings.Cut(strings.ToLower(strings.TrimPrefix(name, EnvPrefix)), "_")
		if !ok || section == "" || key == "" {
			continue
		}

		sub, ok := raw[section].(map[string]any)
		if !ok {
			sub = make(map[string]any)
			raw[section] = sub
		}
		sub[key] = val
	}
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q (want text or json)", c.Log.Format)
	}
	switch c.Loader.Kind {
	case LoaderFile, LoaderLoam, LoaderRedis:
	default:
		return fmt.Errorf("invalid loader kind %q (want %s, %s or %s)", c.Loader.Kind, LoaderFile, LoaderLoam, LoaderRedis)
	}
	return nil
}
