// Package config loads daemon settings from a YAML file and ALTTAB_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/alttab/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Item classes.
const (
	ModeWindows    = "windows"
	ModeWorkspaces = "workspaces"
)

// DefaultRedisChannel is where events are published when redis is enabled.
const DefaultRedisChannel = "alttab:events"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "ALTTAB_"

type Config struct {
	Mode        string      `mapstructure:"mode"`
	Socket      string      `mapstructure:"socket"`
	Capacity    int         `mapstructure:"capacity"`
	ReleaseKeys []string    `mapstructure:"release_keys"`
	Log         LogConfig   `mapstructure:"log"`
	HTTP        HTTPConfig  `mapstructure:"http"`
	Redis       RedisConfig `mapstructure:"redis"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// HTTPConfig enables the introspection server when Addr is set.
type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
}

// RedisConfig enables the event publisher when Addr is set.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Channel  string `mapstructure:"channel"`
}

type modeDefaults struct {
	socket      string
	releaseKeys []string
}

var defaults = map[string]modeDefaults{
	ModeWindows: {
		socket:      "/tmp/i3_cycle_windows",
		releaseKeys: []string{"Alt_L", "Alt_R"},
	},
	ModeWorkspaces: {
		socket:      "/tmp/i3_cycle_workspaces",
		releaseKeys: []string{"133", "134", "Super_L", "Super_R"},
	},
}

// envKeys maps environment variables to dotted config keys.
var envKeys = map[string]string{
	"MODE":           "mode",
	"SOCKET":         "socket",
	"CAPACITY":       "capacity",
	"RELEASE_KEYS":   "release_keys",
	"LOG_LEVEL":      "log.level",
	"LOG_FORMAT":     "log.format",
	"HTTP_ADDR":      "http.addr",
	"REDIS_ADDR":     "redis.addr",
	"REDIS_PASSWORD": "redis.password",
	"REDIS_DB":       "redis.db",
	"REDIS_CHANNEL":  "redis.channel",
}

// DefaultPath returns $XDG_CONFIG_HOME/alttab/config.yaml (or the platform equivalent).
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "alttab", "config.yaml")
}

// Load reads path (or DefaultPath when empty) and applies environment overrides.
// A missing default file is not an error; a missing explicit file is.
func Load(path string) (*Config, error) {
	return LoadWithEnv(path, os.LookupEnv)
}

// LoadWithEnv is Load with an injectable environment.
func LoadWithEnv(path string, lookupEnv func(string) (string, bool)) (*Config, error) {
	raw := map[string]any{}

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &raw); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
			if raw == nil {
				raw = map[string]any{}
			}
		case explicit || !errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	for name, key := range envKeys {
		if v, ok := lookupEnv(EnvPrefix + name); ok {
			set(raw, key, v)
		}
	}

	cfg := &Config{}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToSliceHookFunc(","),
		WeaklyTypedInput: true,
		Result:           cfg,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// Resolve fills mode-specific defaults and validates the result. Call it after flag overrides.
func (c *Config) Resolve() error {
	if c.Mode == "" {
		c.Mode = ModeWindows
	}
	c.Mode = strings.ToLower(c.Mode)
	d, ok := defaults[c.Mode]
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrUnknownMode, c.Mode)
	}
	if c.Socket == "" {
		c.Socket = d.socket
	}
	if len(c.ReleaseKeys) == 0 {
		c.ReleaseKeys = append([]string(nil), d.releaseKeys...)
	}
	for i, k := range c.ReleaseKeys {
		c.ReleaseKeys[i] = strings.TrimSpace(k)
	}
	if c.Redis.Channel == "" {
		c.Redis.Channel = DefaultRedisChannel
	}
	return nil
}

// set stores v under a dotted key, creating intermediate maps.
func set(m map[string]any, key string, v any) {
	parts := strings.Split(key, ".")
	for _, p := range parts[:len(parts)-1] {
		next, ok := m[p].(map[string]any)
		if !ok {
			next = map[string]any{}
			m[p] = next
		}
		m = next
	}
	m[parts[len(parts)-1]] = v
}
