package cache

import (
	"bytes"
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	apperrors "tiercache/internal/common/errors"
	"tiercache/internal/common/logging"
	"tiercache/internal/redis"
)

type report struct {
	Name  string   `json:"name"`
	Count int      `json:"count"`
	Tags  []string `json:"tags,omitempty"`
}

// fakeRemote is an in-memory Remote whose operations can be made to fail.
type fakeRemote struct {
	mu   sync.Mutex
	data map[string][]byte

	pingErr  error
	getErr   error
	setErr   error
	delErr   error
	flushErr error

	pings int
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{data: make(map[string][]byte)}
}

func (f *fakeRemote) Ping(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pings++
	return f.pingErr
}

func (f *fakeRemote) Get(ctx context.Context, key string) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, false, f.getErr
	}
	data, found := f.data[key]
	return data, found, nil
}

func (f *fakeRemote) SetEX(ctx context.Context, key string, ttl time.Duration, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return f.setErr
	}
	f.data[key] = value
	return nil
}

func (f *fakeRemote) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.delErr != nil {
		return f.delErr
	}
	delete(f.data, key)
	return nil
}

func (f *fakeRemote) FlushDB(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.flushErr != nil {
		return f.flushErr
	}
	f.data = make(map[string][]byte)
	return nil
}

func (f *fakeRemote) stored(key string) ([]byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, found := f.data[key]
	return data, found
}

var errRemoteDown = apperrors.ConnectionError("redis ping failed", nil)

func newRedisRemote(t *testing.T, mr *miniredis.Miniredis) *redis.Client {
	t.Helper()

	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	client, err := redis.NewClient(&redis.Config{Host: mr.Host(), Port: port, Timeout: time.Second})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return client
}

func newBufferLogger(t *testing.T) (logging.Logger, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer
	logger, err := logging.NewZapLogger(logging.LogConfig{Level: logging.DebugLevel, Output: &buf})
	require.NoError(t, err)
	return logger, &buf
}

func newTestCache[V any](t *testing.T, remote Remote, mutate ...func(*Config)) (*TieredCache[V], *bytes.Buffer) {
	t.Helper()

	config := DefaultConfig()
	config.Dir = t.TempDir()
	for _, m := range mutate {
		m(&config)
	}

	logger, buf := newBufferLogger(t)
	c, err := New[V](config, remote, JSONCodec[V]{}, logger)
	require.NoError(t, err)
	return c, buf
}
