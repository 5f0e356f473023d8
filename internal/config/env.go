package config

import (
	"strconv"

	"github.com/matzehuels/bulletins/pkg/errors"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "BULLETINS_"

type envVar struct {
	name string
	set  func(c *Config, v string) error
}

func str(dst func(*Config) *string) func(*Config, string) error {
	return func(c *Config, v string) error {
		*dst(c) = v
		return nil
	}
}

func dur(dst func(*Config) *Duration) func(*Config, string) error {
	return func(c *Config, v string) error {
		return dst(c).UnmarshalText([]byte(v))
	}
}

// envVars lists the supported overrides, without EnvPrefix.
var envVars = []envVar{
	{"SERVER_ADDR", str(func(c *Config) *string { return &c.Server.Addr })},
	{"SERVER_SHUTDOWN_TIMEOUT", dur(func(c *Config) *Duration { return &c.Server.ShutdownTimeout })},
	{"STORAGE_BACKEND", str(func(c *Config) *string { return &c.Storage.Backend })},
	{"MONGO_URI", str(func(c *Config) *string { return &c.Storage.MongoURI })},
	{"MONGO_DATABASE", str(func(c *Config) *string { return &c.Storage.MongoDatabase })},
	{"DRAFTS_BACKEND", str(func(c *Config) *string { return &c.Drafts.Backend })},
	{"DRAFTS_DIR", str(func(c *Config) *string { return &c.Drafts.Dir })},
	{"DRAFTS_TTL", dur(func(c *Config) *Duration { return &c.Drafts.TTL })},
	{"CACHE_BACKEND", str(func(c *Config) *string { return &c.Cache.Backend })},
	{"CACHE_DIR", str(func(c *Config) *string { return &c.Cache.Dir })},
	{"CACHE_TTL", dur(func(c *Config) *Duration { return &c.Cache.TTL })},
	{"REDIS_ADDR", str(func(c *Config) *string { return &c.Redis.Addr })},
	{"REDIS_PASSWORD", str(func(c *Config) *string { return &c.Redis.Password })},
	{"REDIS_DB", func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		c.Redis.DB = n
		return err
	}},
	{"METRICS_ENABLED", func(c *Config, v string) error {
		b, err := strconv.ParseBool(v)
		c.Metrics.Enabled = b
		return err
	}},
	{"METRICS_PATH", str(func(c *Config) *string { return &c.Metrics.Path })},
	{"LOG_LEVEL", str(func(c *Config) *string { return &c.Log.Level })},
}

func (c *Config) applyEnv(getenv func(string) string) error {
	for _, ev := range envVars {
		v := getenv(EnvPrefix + ev.name)
		if v == "" {
			continue
		}
		if err := ev.set(c, v); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "%s%s", EnvPrefix, ev.name)
		}
	}
	return nil
}
