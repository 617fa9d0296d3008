package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/redis/go-redis/v9"
)

var ErrMiss = errors.New("cache miss")

type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type Redis struct {
	client *redis.Client
}

func NewRedis(addr, password string, db int) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return &Redis{client: client}, nil
}

func (r *Redis) Client() *redis.Client { return r.client }

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	return val, err
}

func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *Redis) Delete(ctx context.Context, keys ...string) error {
	return r.client.Del(ctx, keys...).Err()
}

// Noop is used when no cache server is configured.
type Noop struct{}

func (Noop) Get(context.Context, string) ([]byte, error) {
	return nil, ErrMiss
}

func (Noop) Set(context.Context, string, []byte, time.Duration) error {
	return nil
}

func (Noop) Delete(context.Context, ...string) error {
	return nil
}

var current Cache = Noop{}

func Use(c Cache) {
	if c == nil {
		c = Noop{}
	}
	current = c
}

func Current() Cache { return current }

// Remember returns the cached JSON for key, or calls load, stores its
// result for ttl and returns it. Cache failures are logged and fall
// through to load.
func Remember[T any](ctx context.Context, key string, ttl time.Duration, load func() (T, error)) (T, error) {
	var out T
	if raw, err := current.Get(ctx, key); err == nil {
		if jsonErr := json.Unmarshal(raw, &out); jsonErr == nil {
			return out, nil
		}
	} else if !errors.Is(err, ErrMiss) {
		log.Warnf("cache get %s: %v", key, err)
	}

	out, err := load()
	if err != nil {
		return out, err
	}

	if raw, err := json.Marshal(out); err == nil {
		if err := current.Set(ctx, key, raw, ttl); err != nil {
			log.Warnf("cache set %s: %v", key, err)
		}
	}
	return out, nil
}

func Invalidate(ctx context.Context, keys ...string) {
	if err := current.Delete(ctx, keys...); err != nil {
		log.Warnf("cache delete %v: %v", keys, err)
	}
}
