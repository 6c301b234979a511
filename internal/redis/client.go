// Package redis adapts go-redis to the remote tier of the tiered cache.
package redis

import (
	"context"
	"errors"
	"net"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	apperrors "tiercache/internal/common/errors"
)

// Client is the remote key-value adapter. It only knows about raw bytes; values
// are encoded by the cache before they get here.
type Client struct {
	rdb    *redis.Client
	config *Config
}

// Config describes how to reach the Redis server.
type Config struct {
	Host     string        `json:"host"`
	Port     int           `json:"port"`
	Password string        `json:"password"`
	DB       int           `json:"db"`
	PoolSize int           `json:"pool_size"`
	Timeout  time.Duration `json:"timeout"` // dial, read and write timeout
}

// Address returns host:port.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// NewClient builds a client without contacting the server. The remote tier is
// optional, so an unreachable server at startup is not an error; liveness is
// checked by Ping before every use.
func NewClient(config *Config) (*Client, error) {
	if config == nil {
		return nil, apperrors.ConfigError("redis config is required")
	}

	if config.Host == "" {
		config.Host = "localhost"
	}
	if config.Port == 0 {
		config.Port = 6379
	}
	if config.PoolSize == 0 {
		config.PoolSize = 10
	}
	if config.Timeout == 0 {
		config.Timeout = 500 * time.Millisecond
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         config.Address(),
		Password:     config.Password,
		DB:           config.DB,
		PoolSize:     config.PoolSize,
		DialTimeout:  config.Timeout,
		ReadTimeout:  config.Timeout,
		WriteTimeout: config.Timeout,
		MaxRetries:   -1,
	})

	return &Client{
		rdb:    rdb,
		config: config,
	}, nil
}

// Close releases the connection pool.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Address returns the configured server address.
func (c *Client) Address() string {
	return c.config.Address()
}

// Ping probes the server.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return wrap("ping", err)
	}
	return nil
}

// Get returns the raw payload stored under key. A missing key is reported as
// found=false with a nil error.
func (c *Client) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, wrap("get", err)
	}
	return data, true, nil
}

// SetEX stores value under key with the given expiry.
func (c *Client) SetEX(ctx context.Context, key string, ttl time.Duration, value []byte) error {
	if err := c.rdb.SetEX(ctx, key, value, ttl).Err(); err != nil {
		return wrap("setex", err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (c *Client) Delete(ctx context.Context, key string) error {
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		return wrap("del", err)
	}
	return nil
}

// FlushDB removes every key in the configured logical database, not only the
// keys written by this process.
func (c *Client) FlushDB(ctx context.Context) error {
	if err := c.rdb.FlushDB(ctx).Err(); err != nil {
		return wrap("flushdb", err)
	}
	return nil
}

func wrap(op string, err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return apperrors.TimeoutError("redis "+op, err)
	}
	return apperrors.ConnectionError("redis "+op+" failed", err)
}
