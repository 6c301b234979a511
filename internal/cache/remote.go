package cache

import (
	"context"
	"time"

	"tiercache/internal/common/logging"
)

// Remote is the key-value store behind the first tier. internal/redis.Client
// implements it.
type Remote interface {
	Ping(ctx context.Context) error
	// Get reports found=false with a nil error when the key is absent.
	Get(ctx context.Context, key string) (data []byte, found bool, err error)
	SetEX(ctx context.Context, key string, ttl time.Duration, value []byte) error
	Delete(ctx context.Context, key string) error
	FlushDB(ctx context.Context) error
}

const tierRemote = "remote"

type remoteTier[V any] struct {
	remote Remote
	codec  Codec[V]
	ttl    time.Duration
	logger logging.Logger
}

// available pings the remote. Nothing is cached between calls.
func (r *remoteTier[V]) available() bool {
	if r.remote == nil {
		return false
	}
	if err := r.remote.Ping(context.Background()); err != nil {
		r.logger.Warn("redis unavailable", logging.Err(err))
		return false
	}
	return true
}

func (r *remoteTier[V]) name() string { return tierRemote }

func (r *remoteTier[V]) get(key string) Result[V] {
	if !r.available() {
		return resultUnavailable[V](tierRemote, nil)
	}

	data, found, err := r.remote.Get(context.Background(), key)
	if err != nil {
		return resultFailed[V](tierRemote, err)
	}
	if !found {
		return resultMiss[V](tierRemote)
	}

	value, err := r.codec.Unmarshal(data)
	if err != nil {
		return resultFailed[V](tierRemote, err)
	}
	return resultHit(tierRemote, value)
}

func (r *remoteTier[V]) set(key string, p payload[V]) Result[V] {
	if !r.available() {
		return resultUnavailable[V](tierRemote, nil)
	}
	if p.encErr != nil {
		return resultFailed[V](tierRemote, p.encErr)
	}
	if err := r.remote.SetEX(context.Background(), key, r.ttl, p.data); err != nil {
		return resultFailed[V](tierRemote, err)
	}
	return resultOK[V](tierRemote)
}

func (r *remoteTier[V]) delete(key string) Result[V] {
	if !r.available() {
		return resultUnavailable[V](tierRemote, nil)
	}
	if err := r.remote.Delete(context.Background(), key); err != nil {
		return resultFailed[V](tierRemote, err)
	}
	return resultOK[V](tierRemote)
}

func (r *remoteTier[V]) clear() Result[V] {
	if !r.available() {
		return resultUnavailable[V](tierRemote, nil)
	}
	if err := r.remote.FlushDB(context.Background()); err != nil {
		return resultFailed[V](tierRemote, err)
	}
	return resultOK[V](tierRemote)
}
