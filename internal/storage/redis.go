package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// maxUpdateAttempts bounds optimistic-lock retries in RedisStore.Update.
const maxUpdateAttempts = 5

// RedisStore keeps each namespace in a string key "<prefix><namespace>".
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore wraps an existing client.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

// OpenRedis connects to the server named by url and checks it answers.
func OpenRedis(ctx context.Context, url, prefix string) (*RedisStore, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	opt.PoolSize = 2
	opt.ConnMaxIdleTime = 5 * time.Minute

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: ping redis: %w", ErrStorageUnavailable, err)
	}

	return NewRedisStore(client, prefix), nil
}

func (r *RedisStore) key(ns Namespace) string {
	return r.prefix + string(ns)
}

func (r *RedisStore) Get(ctx context.Context, ns Namespace) ([]byte, error) {
	b, err := r.client.Get(ctx, r.key(ns)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, unavailable("get", ns, err)
	}
	return b, nil
}

func (r *RedisStore) Put(ctx context.Context, ns Namespace, value []byte) error {
	if err := r.client.Set(ctx, r.key(ns), value, 0).Err(); err != nil {
		return unavailable("put", ns, err)
	}
	return nil
}

// Update uses WATCH/MULTI and retries when another client changed the key
// between the read and the write.
func (r *RedisStore) Update(ctx context.Context, ns Namespace, fn UpdateFunc) error {
	key := r.key(ns)
	var fnErr error

	txf := func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, key).Bytes()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}

		next, err := fn(current)
		if err != nil {
			fnErr = err
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, next, 0)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		err := r.client.Watch(ctx, txf, key)
		switch {
		case err == nil:
			return nil
		case fnErr != nil:
			return fnErr
		case errors.Is(err, redis.TxFailedErr):
			continue
		default:
			return unavailable("update", ns, err)
		}
	}
	return unavailable("update", ns, redis.TxFailedErr)
}

func (r *RedisStore) Delete(ctx context.Context, ns Namespace) error {
	if err := r.client.Del(ctx, r.key(ns)).Err(); err != nil {
		return unavailable("delete", ns, err)
	}
	return nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
