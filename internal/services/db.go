package services

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Row is the subset of pgx.Row the services need.
type Row interface {
	Scan(dest ...any) error
}

// Rows is the subset of pgx.Rows the services need.
type Rows interface {
	Close()
	Err() error
	Next() bool
	Scan(dest ...any) error
}

// DB abstracts the pgx pool so services can be exercised with a fake in tests.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) Row
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type poolAdapter struct {
	pool *pgxpool.Pool
}

// NewPoolAdapter wraps a pgx pool in the services DB interface.
func NewPoolAdapter(pool *pgxpool.Pool) DB {
	return &poolAdapter{pool: pool}
}

func (a *poolAdapter) QueryRow(ctx context.Context, sql string, args ...any) Row {
	return a.pool.QueryRow(ctx, sql, args...)
}

func (a *poolAdapter) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	rows, err := a.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (a *poolAdapter) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return a.pool.Exec(ctx, sql, args...)
}

// KV abstracts the Redis commands used for sessions and the settings cache.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	Expire(ctx context.Context, key string, ttl time.Duration) error
}

// ErrKeyNotFound is returned by KV.Get for missing keys.
var ErrKeyNotFound = redis.Nil

type redisAdapter struct {
	client *redis.Client
}

// NewRedisAdapter wraps a go-redis client in the services KV interface.
func NewRedisAdapter(client *redis.Client) KV {
	return &redisAdapter{client: client}
}

func (a *redisAdapter) Get(ctx context.Context, key string) (string, error) {
	return a.client.Get(ctx, key).Result()
}

func (a *redisAdapter) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return a.client.Set(ctx, key, value, ttl).Err()
}

func (a *redisAdapter) Del(ctx context.Context, keys ...string) error {
	return a.client.Del(ctx, keys...).Err()
}

func (a *redisAdapter) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return a.client.Expire(ctx, key, ttl).Err()
}
