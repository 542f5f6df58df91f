// Package config loads server settings from defaults, an optional YAML
// file and PORTFOLIO_* environment variables, in that order.
package config

import (
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix marks environment overrides. A double underscore separates
// nesting levels: PORTFOLIO_SERVER__PORT sets server.port.
const EnvPrefix = "PORTFOLIO_"

// DefaultPath is where the CLI looks for a config file.
const DefaultPath = "portfolio.yaml"

// Config is the full application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server" yaml:"server"`
	Visitors VisitorsConfig `koanf:"visitors" yaml:"visitors"`
	Log      LogConfig      `koanf:"log" yaml:"log"`
}

// ServerConfig holds HTTP settings.
type ServerConfig struct {
	Port              int           `koanf:"port" yaml:"port"`
	Mode              string        `koanf:"mode" yaml:"mode"`
	ReadHeaderTimeout time.Duration `koanf:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `koanf:"shutdown_timeout" yaml:"shutdown_timeout"`
	// TrustedProxies lists the IPs or CIDRs whose X-Forwarded-For is
	// believed. Empty means the peer address is the client.
	TrustedProxies    []string      `koanf:"trusted_proxies" yaml:"trusted_proxies,omitempty"`
}

// VisitorsConfig controls page-view tracking.
type VisitorsConfig struct {
	Enabled         bool   `koanf:"enabled" yaml:"enabled"`
	DBPath          string `koanf:"db_path" yaml:"db_path"`
	RetentionMonths int    `koanf:"retention_months" yaml:"retention_months"`
	Salt            string `koanf:"salt" yaml:"salt,omitempty"`
	QueueSize       int    `koanf:"queue_size" yaml:"queue_size"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level       string `koanf:"level" yaml:"level"`
	Development bool   `koanf:"development" yaml:"development"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:              8080,
			Mode:              "release",
			ReadHeaderTimeout: 10 * time.Second,
			ShutdownTimeout:   10 * time.Second,
		},
		Visitors: VisitorsConfig{
			Enabled:         true,
			DBPath:          "data/visitors.db",
			RetentionMonths: 12,
			QueueSize:       256,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads path if it exists, then environment overrides. An empty path
// skips the file.
func Load(path string) (cfg *Config, err error) {
	k := koanf.New(".")
	cfg = Default()

	if path != "" {
		_, err = os.Stat(path)
		switch {
		case err == nil:
			err = k.Load(file.Provider(path), yaml.Parser())
			if err != nil {
				err = errors.Wrapf(err, "failed to read config %s", path)
				return nil, err
			}
		case os.IsNotExist(err):
			err = nil
		default:
			err = errors.Wrapf(err, "failed to access config %s", path)
			return nil, err
		}
	}

	err = k.Load(env.Provider(EnvPrefix, ".", envKey), nil)
	if err != nil {
		err = errors.Wrap(err, "failed to load environment overrides")
		return nil, err
	}

	err = k.Unmarshal("", cfg)
	if err != nil {
		err = errors.Wrap(err, "failed to unmarshal config")
		return nil, err
	}

	err = cfg.applyEnvOverrides()
	if err != nil {
		return nil, err
	}

	err = cfg.Validate()
	if err != nil {
		err = errors.Wrap(err, "config validation failed")
		return nil, err
	}

	return cfg, err
}

func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// applyEnvOverrides honours the plain PORT variable most hosts set.
func (c *Config) applyEnvOverrides() (err error) {
	port := os.Getenv("PORT")
	if port == "" {
		return err
	}
	c.Server.Port, err = strconv.Atoi(port)
	if err != nil {
		err = errors.Wrapf(err, "invalid PORT %q", port)
	}
	return err
}

var validModes = map[string]bool{
	"debug":   true,
	"release": true,
	"test":    true,
}

// Validate checks value ranges.
func (c *Config) Validate() (err error) {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		err = errors.Errorf("server.port %d out of range", c.Server.Port)
		return err
	}

	if !validModes[c.Server.Mode] {
		err = errors.Errorf("invalid server.mode %q: must be one of debug, release, test", c.Server.Mode)
		return err
	}

	if c.Server.ShutdownTimeout < 0 || c.Server.ReadHeaderTimeout < 0 {
		err = errors.New("server timeouts must be non-negative")
		return err
	}

	for _, p := range c.Server.TrustedProxies {
		if net.ParseIP(p) != nil {
			continue
		}
		if _, _, perr := net.ParseCIDR(p); perr != nil {
			err = errors.Errorf("invalid server.trusted_proxies entry %q", p)
			return err
		}
	}

	if c.Visitors.Enabled && c.Visitors.DBPath == "" {
		err = errors.New("visitors.db_path is required when visitors.enabled is set")
		return err
	}

	if c.Visitors.RetentionMonths < 0 {
		err = errors.New("visitors.retention_months must be non-negative")
		return err
	}

	if c.Visitors.QueueSize < 1 {
		err = errors.New("visitors.queue_size must be at least 1")
		return err
	}

	_, err = zapcore.ParseLevel(c.Log.Level)
	if err != nil {
		err = errors.Wrapf(err, "invalid log.level %q", c.Log.Level)
		return err
	}

	return err
}

// Retention is how long visits are kept. Zero means forever.
func (v VisitorsConfig) Retention() time.Duration {
	return time.Duration(v.RetentionMonths) * 30 * 24 * time.Hour
}

// YAML renders c. The salt is masked.
func (c *Config) YAML() (out []byte, err error) {
	masked := *c
	if masked.Visitors.Salt != "" {
		masked.Visitors.Salt = "********"
	}
	out, err = yamlv3.Marshal(&masked)
	if err != nil {
		err = errors.Wrap(err, "failed to marshal config")
	}
	return out, err
}
