package cli

import (
	"context"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/bulletins/internal/config"
	"github.com/matzehuels/bulletins/internal/metrics"
	"github.com/matzehuels/bulletins/pkg/api"
	"github.com/matzehuels/bulletins/pkg/cache"
	"github.com/matzehuels/bulletins/pkg/draft"
	"github.com/matzehuels/bulletins/pkg/errors"
	"github.com/matzehuels/bulletins/pkg/service"
	"github.com/matzehuels/bulletins/pkg/store"
	"github.com/matzehuels/bulletins/pkg/store/mongo"
)

// backends holds everything serve opens from the configuration.
type backends struct {
	svc     *service.Service
	redis   *redis.Client
	metrics *metrics.Metrics
}

// Close releases the service and the shared redis client.
func (b *backends) Close(ctx context.Context) error {
	err := b.svc.Close(ctx)
	if b.redis != nil {
		if rerr := b.redis.Close(); err == nil {
			err = rerr
		}
	}
	return err
}

// apiConfig derives the HTTP server configuration.
func (b *backends) apiConfig(cfg config.Config) api.Config {
	out := api.Config{
		Addr:            cfg.Server.Addr,
		ReadTimeout:     cfg.Server.ReadTimeout.Std(),
		WriteTimeout:    cfg.Server.WriteTimeout.Std(),
		ShutdownTimeout: cfg.Server.ShutdownTimeout.Std(),
	}
	if b.metrics != nil {
		out.Metrics = b.metrics.Handler()
		out.MetricsPath = cfg.Metrics.Path
	}
	return out
}

// openBackends connects the repository, draft store and cache named by cfg
// and builds the service on top of them. On error everything opened so far
// is closed.
func openBackends(ctx context.Context, cfg config.Config, logger *log.Logger) (_ *backends, err error) {
	b := &backends{}
	var closers []func()
	defer func() {
		if err != nil {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
		}
	}()

	if cfg.Drafts.Backend == config.BackendRedis || cfg.Cache.Backend == config.BackendRedis {
		b.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		closers = append(closers, func() { b.redis.Close() })
		if err := b.redis.Ping(ctx).Err(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeStorage, err, "connect to redis at %s", cfg.Redis.Addr)
		}
	}

	repo, err := openRepository(ctx, cfg.Storage)
	if err != nil {
		return nil, err
	}
	closers = append(closers, func() { repo.Close(context.Background()) })

	drafts, err := openDrafts(cfg.Drafts, b.redis)
	if err != nil {
		return nil, err
	}
	closers = append(closers, func() { drafts.Close() })

	c, err := openCache(cfg.Cache, b.redis)
	if err != nil {
		return nil, err
	}

	if cfg.Metrics.Enabled {
		b.metrics = metrics.New()
		b.metrics.Register()
	}

	b.svc, err = service.New(service.Options{
		Repo:          repo,
		Drafts:        drafts,
		DraftBackend:  cfg.Drafts.Backend,
		DraftTTL:      cfg.Drafts.TTL.Std(),
		Cache:         c,
		StyleCacheTTL: cfg.Cache.TTL.Std(),
		Logger:        logger,
	})
	if err != nil {
		c.Close()
		return nil, err
	}
	logger.Debug("backends ready",
		"storage", cfg.Storage.Backend,
		"drafts", cfg.Drafts.Backend,
		"cache", cfg.Cache.Backend,
		"metrics", cfg.Metrics.Enabled)
	return b, nil
}

func openRepository(ctx context.Context, cfg config.StorageConfig) (store.Repository, error) {
	switch cfg.Backend {
	case config.BackendMongo:
		return mongo.New(ctx, mongo.Config{URI: cfg.MongoURI, Database: cfg.MongoDatabase})
	default:
		return store.NewMemory(), nil
	}
}

func openDrafts(cfg config.DraftsConfig, rdb *redis.Client) (draft.Store, error) {
	switch cfg.Backend {
	case config.BackendFile:
		dir, err := dataDir(cfg.Dir, "drafts")
		if err != nil {
			return nil, err
		}
		return draft.NewFileStore(dir)
	case config.BackendRedis:
		return draft.NewRedisStoreFromClient(rdb, ""), nil
	default:
		return draft.NewMemoryStore(), nil
	}
}

func openCache(cfg config.CacheConfig, rdb *redis.Client) (cache.Cache, error) {
	switch cfg.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendFile:
		dir, err := cacheDir(cfg.Dir)
		if err != nil {
			return nil, err
		}
		return cache.NewFileCache(dir)
	case config.BackendRedis:
		return cache.NewRedisCache(rdb, ""), nil
	default:
		return cache.NewMemoryCache(), nil
	}
}

// dataDir returns dir, or sub under the default data directory when dir
// is empty.
func dataDir(dir, sub string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	base, err := config.DefaultDataDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeStorage, err, "resolve data directory")
	}
	return filepath.Join(base, sub), nil
}
