package draft

import (
	"context"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/bulletins/pkg/errors"
)

// DefaultRedisPrefix namespaces draft keys.
const DefaultRedisPrefix = "bulletins:draft:"

// RedisConfig configures a RedisStore.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int

	// Prefix is prepended to every key. Defaults to DefaultRedisPrefix.
	Prefix string
}

// RedisStore keeps drafts in redis. Expiry uses native key TTLs.
type RedisStore struct {
	client *redis.Client
	prefix string
	owned  bool
}

// NewRedisStore connects to redis and verifies the connection.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "connect to redis at %s", cfg.Addr)
	}
	s := NewRedisStoreFromClient(client, cfg.Prefix)
	s.owned = true
	return s, nil
}

// NewRedisStoreFromClient wraps an existing client. Close does not close it.
func NewRedisStoreFromClient(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(id string) string { return s.prefix + id }

func (s *RedisStore) Get(ctx context.Context, id string) (*Draft, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "get draft %s", id)
	}
	d, err := decode(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "parse draft %s", id)
	}
	if d.IsExpired() {
		return nil, nil
	}
	return d, nil
}

func (s *RedisStore) Set(ctx context.Context, d *Draft) error {
	ttl := time.Until(d.ExpiresAt)
	if ttl <= 0 {
		return s.Delete(ctx, d.ID)
	}
	data, err := encode(d)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "marshal draft")
	}
	if err := s.client.Set(ctx, s.key(d.ID), data, ttl).Err(); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "set draft %s", d.ID)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "delete draft %s", id)
	}
	return nil
}

func (s *RedisStore) List(ctx context.Context) ([]*Draft, error) {
	var out []*Draft
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		d, err := s.Get(ctx, iter.Val()[len(s.prefix):])
		if err != nil {
			return nil, err
		}
		if d != nil {
			out = append(out, d)
		}
	}
	if err := iter.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "scan drafts")
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Close closes the client when the store created it.
func (s *RedisStore) Close() error {
	if s.owned {
		return s.client.Close()
	}
	return nil
}

var _ Store = (*RedisStore)(nil)
