package cli

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bulletins/internal/config"
	"github.com/matzehuels/bulletins/internal/metrics"
	"github.com/matzehuels/bulletins/pkg/cache"
	"github.com/matzehuels/bulletins/pkg/draft"
)

func TestOpenBackends(t *testing.T) {
	tests := []struct {
		name   string
		drafts string
		cache  string
	}{
		{"memory", config.BackendMemory, config.BackendMemory},
		{"file", config.BackendFile, config.BackendFile},
		{"no cache", config.BackendMemory, config.BackendNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Drafts.Backend = tt.drafts
			cfg.Drafts.Dir = t.TempDir()
			cfg.Cache.Backend = tt.cache
			cfg.Cache.Dir = t.TempDir()

			b, err := openBackends(context.Background(), cfg, log.New(io.Discard))
			if err != nil {
				t.Fatalf("openBackends() error: %v", err)
			}
			if b.svc == nil {
				t.Fatal("service not built")
			}
			if b.redis != nil {
				t.Error("redis client opened without a redis backend")
			}
			if err := b.Close(context.Background()); err != nil {
				t.Errorf("Close() error: %v", err)
			}
		})
	}
}

func TestOpenDraftsAndCache(t *testing.T) {
	dir := t.TempDir()
	ds, err := openDrafts(config.DraftsConfig{Backend: config.BackendFile, Dir: dir}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := ds.(*draft.FileStore); !ok {
		t.Errorf("drafts = %T, want *draft.FileStore", ds)
	}

	c, err := openCache(config.CacheConfig{Backend: config.BackendFile, Dir: dir}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.(*cache.FileCache); !ok {
		t.Errorf("cache = %T, want *cache.FileCache", c)
	}

	c, err = openCache(config.CacheConfig{Backend: config.BackendNone}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.(*cache.NullCache); !ok {
		t.Errorf("cache = %T, want *cache.NullCache", c)
	}
}

func TestAPIConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Server.Addr = ":9090"

	b := &backends{}
	ac := b.apiConfig(cfg)
	if ac.Addr != ":9090" || ac.Metrics != nil {
		t.Errorf("apiConfig() = %+v", ac)
	}
	if ac.ShutdownTimeout != cfg.Server.ShutdownTimeout.Std() {
		t.Errorf("shutdown timeout = %v", ac.ShutdownTimeout)
	}

	b.metrics = metrics.New()
	ac = b.apiConfig(cfg)
	if ac.Metrics == nil || ac.MetricsPath != "/metrics" {
		t.Errorf("metrics not wired: %+v", ac)
	}
}
