// Package config loads the bulletins configuration file.
//
// Configuration is read from a TOML file, then overridden by BULLETINS_*
// environment variables. Command-line flags are applied by the caller on
// top of the result. A missing file at the default location is not an
// error; every setting has a default.
//
//	[server]
//	addr = ":8080"
//	shutdown_timeout = "10s"
//
//	[storage]
//	backend = "mongo"
//	mongo_uri = "mongodb://localhost:27017"
//
//	[drafts]
//	backend = "redis"
//	ttl = "168h"
//
//	[redis]
//	addr = "localhost:6379"
package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/bulletins/pkg/errors"
)

const appName = "bulletins"

// Backend names.
const (
	BackendMemory = "memory"
	BackendMongo  = "mongo"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendNone   = "none"
)

// Duration is a time.Duration written as a Go duration string ("15s").
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config is the full configuration.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Storage StorageConfig `toml:"storage"`
	Drafts  DraftsConfig  `toml:"drafts"`
	Cache   CacheConfig   `toml:"cache"`
	Redis   RedisConfig   `toml:"redis"`
	Metrics MetricsConfig `toml:"metrics"`
	Log     LogConfig     `toml:"log"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr            string   `toml:"addr"`
	ReadTimeout     Duration `toml:"read_timeout" validate:"gte=0"`
	WriteTimeout    Duration `toml:"write_timeout" validate:"gte=0"`
	ShutdownTimeout Duration `toml:"shutdown_timeout" validate:"gte=0"`
}

// StorageConfig selects the document repository.
type StorageConfig struct {
	Backend       string `toml:"backend" validate:"oneof=memory mongo"`
	MongoURI      string `toml:"mongo_uri" validate:"required_if=Backend mongo"`
	MongoDatabase string `toml:"mongo_database"`
}

// DraftsConfig selects the draft store.
type DraftsConfig struct {
	Backend string   `toml:"backend" validate:"oneof=memory file redis"`
	Dir     string   `toml:"dir"`
	TTL     Duration `toml:"ttl" validate:"gte=0"`
}

// CacheConfig selects the cache for resolved styles.
type CacheConfig struct {
	Backend string   `toml:"backend" validate:"oneof=none memory file redis"`
	Dir     string   `toml:"dir"`
	TTL     Duration `toml:"ttl" validate:"gte=0"`
}

// RedisConfig is shared by the redis draft store and cache.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db" validate:"gte=0"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path" validate:"startswith=/"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `toml:"level" validate:"oneof=debug info warn error"`
}

var validate = validator.New()

// Default returns the configuration with every default applied.
func Default() Config {
	var c Config
	c.SetDefaults()
	return c
}

// SetDefaults fills unset fields with defaults.
func (c *Config) SetDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = Duration(15 * time.Second)
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = Duration(30 * time.Second)
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = Duration(10 * time.Second)
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = BackendMemory
	}
	if c.Storage.MongoDatabase == "" {
		c.Storage.MongoDatabase = appName
	}
	if c.Drafts.Backend == "" {
		c.Drafts.Backend = BackendMemory
	}
	if c.Drafts.TTL == 0 {
		c.Drafts.TTL = Duration(7 * 24 * time.Hour)
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = BackendMemory
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = Duration(24 * time.Hour)
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate checks the configuration. Call SetDefaults first.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !stderrors.As(err, &verrs) {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid config")
		}
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fmt.Sprintf("%s: failed %q", tomlKey(fe.Namespace()), fe.Tag()))
		}
		return errors.New(errors.ErrCodeInvalidInput, "invalid config: %s", strings.Join(msgs, "; "))
	}
	return nil
}

// tomlKey turns "Config.Storage.MongoURI" into "storage.mongouri".
func tomlKey(ns string) string {
	return strings.ToLower(strings.TrimPrefix(ns, "Config."))
}

// DefaultPath returns $XDG_CONFIG_HOME/bulletins/config.toml, falling back
// to ~/.config.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// DefaultDataDir returns the directory for file-backed drafts and cache
// entries: $XDG_DATA_HOME/bulletins, falling back to ~/.local/share.
func DefaultDataDir() (string, error) {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", appName), nil
}

// Load reads the file at path, applies environment overrides from getenv
// and defaults, and validates the result. An empty path means
// DefaultPath, which may be absent.
func Load(path string, getenv func(string) string) (Config, error) {
	var c Config
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}

	if path != "" {
		md, err := toml.DecodeFile(path, &c)
		switch {
		case err == nil:
			if undecoded := md.Undecoded(); len(undecoded) > 0 {
				keys := make([]string, len(undecoded))
				for i, k := range undecoded {
					keys[i] = k.String()
				}
				return Config{}, errors.New(errors.ErrCodeInvalidInput, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
			}
		case stderrors.Is(err, fs.ErrNotExist) && !explicit:
		default:
			return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read config %s", path)
		}
	}

	if getenv != nil {
		if err := c.applyEnv(getenv); err != nil {
			return Config{}, err
		}
	}
	c.SetDefaults()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}
