package redis

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "tiercache/internal/common/errors"
)

func setupTestRedis(t *testing.T) (*Client, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)

	client, err := NewClient(&Config{
		Host:    mr.Host(),
		Port:    mustPort(t, mr),
		Timeout: time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return client, mr
}

func mustPort(t *testing.T, mr *miniredis.Miniredis) int {
	t.Helper()
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)
	return port
}

func TestNewClient(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		client, err := NewClient(nil)
		assert.Error(t, err)
		assert.Nil(t, client)
		assert.True(t, apperrors.IsType(err, apperrors.ErrTypeConfig))
	})

	t.Run("sets defaults", func(t *testing.T) {
		config := &Config{}
		client, err := NewClient(config)
		require.NoError(t, err)
		defer client.Close()

		assert.Equal(t, "localhost", config.Host)
		assert.Equal(t, 6379, config.Port)
		assert.Equal(t, 10, config.PoolSize)
		assert.Equal(t, 500*time.Millisecond, config.Timeout)
		assert.Equal(t, "localhost:6379", client.Address())
	})

	t.Run("unreachable server does not fail construction", func(t *testing.T) {
		client, err := NewClient(&Config{Host: "127.0.0.1", Port: 1, Timeout: 100 * time.Millisecond})
		require.NoError(t, err)
		defer client.Close()

		err = client.Ping(context.Background())
		assert.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrTypeConnection) ||
			apperrors.IsType(err, apperrors.ErrTypeTimeout))
	})
}

func TestClient_Ping(t *testing.T) {
	client, mr := setupTestRedis(t)
	ctx := context.Background()

	assert.NoError(t, client.Ping(ctx))

	mr.Close()
	assert.Error(t, client.Ping(ctx))
}

func TestClient_KeyValue(t *testing.T) {
	client, mr := setupTestRedis(t)
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		data, found, err := client.Get(ctx, "absent")
		assert.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, data)
	})

	t.Run("setex then get", func(t *testing.T) {
		require.NoError(t, client.SetEX(ctx, "foo", time.Hour, []byte(`{"bar":123}`)))

		data, found, err := client.Get(ctx, "foo")
		require.NoError(t, err)
		assert.True(t, found)
		assert.JSONEq(t, `{"bar":123}`, string(data))
		assert.Equal(t, time.Hour, mr.TTL("foo"))
	})

	t.Run("expiry", func(t *testing.T) {
		require.NoError(t, client.SetEX(ctx, "short", 2*time.Second, []byte("1")))
		mr.FastForward(3 * time.Second)

		_, found, err := client.Get(ctx, "short")
		assert.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, client.SetEX(ctx, "gone", time.Hour, []byte("1")))
		require.NoError(t, client.Delete(ctx, "gone"))
		assert.False(t, mr.Exists("gone"))

		assert.NoError(t, client.Delete(ctx, "never-existed"))
	})

	t.Run("flushdb", func(t *testing.T) {
		require.NoError(t, mr.Set("other-subsystem", "x"))
		require.NoError(t, client.SetEX(ctx, "mine", time.Hour, []byte("1")))

		require.NoError(t, client.FlushDB(ctx))
		assert.Empty(t, mr.Keys())
	})
}

func TestClient_ServerErrors(t *testing.T) {
	client, mr := setupTestRedis(t)
	ctx := context.Background()

	mr.SetError("LOADING server is loading")
	defer mr.SetError("")

	_, _, err := client.Get(ctx, "foo")
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeConnection))

	assert.Error(t, client.SetEX(ctx, "foo", time.Minute, []byte("1")))
	assert.Error(t, client.Delete(ctx, "foo"))
	assert.Error(t, client.FlushDB(ctx))
}

func TestConfig_Address(t *testing.T) {
	assert.Equal(t, "cache.internal:6380", (&Config{Host: "cache.internal", Port: 6380}).Address())
	assert.Equal(t, "[::1]:6379", (&Config{Host: "::1", Port: 6379}).Address())
}
