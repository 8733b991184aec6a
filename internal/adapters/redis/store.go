package redisad

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"luxe_haven/internal/adapters/observability"
)

// Store keeps client-side values in Redis under "<prefix>:<key>".
// A zero ttl stores the value without expiry.
type Store struct {
	c      *redis.Client
	prefix string
	name   string
}

func New(addr, pass string, db int, prefix string) *Store {
	return NewWithClient(redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}), prefix)
}

func NewWithClient(c *redis.Client, prefix string) *Store {
	return &Store{c: c, prefix: prefix, name: "redis"}
}

// Named labels the store in metrics (e.g. "local", "session").
func (r *Store) Named(name string) *Store {
	cp := *r
	cp.name = name
	return &cp
}

// Scoped returns a view of the same client under a longer prefix.
func (r *Store) Scoped(suffix string) *Store {
	cp := *r
	cp.prefix = r.key(suffix)
	return &cp
}

func (r *Store) key(k string) string {
	if r.prefix == "" {
		return k
	}
	return r.prefix + ":" + k
}

func (r *Store) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.c.Get(ctx, r.key(key)).Result()
	if err == redis.Nil {
		observability.ObserveStore(r.name, "miss")
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	observability.ObserveStore(r.name, "hit")
	return v, true, nil
}

func (r *Store) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	observability.ObserveStore(r.name, "set")
	return r.c.Set(ctx, r.key(key), value, ttl).Err()
}

func (r *Store) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = r.key(k)
	}
	observability.ObserveStore(r.name, "del")
	return r.c.Del(ctx, full...).Err()
}

func (r *Store) Ping(ctx context.Context) error { return r.c.Ping(ctx).Err() }

func (r *Store) Close() error { return r.c.Close() }
