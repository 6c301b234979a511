package cache

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "tiercache/internal/common/errors"
	"tiercache/internal/common/logging"
)

func TestJSONCodec(t *testing.T) {
	codec := JSONCodec[report]{}

	data, err := codec.Marshal(report{Name: "x", Count: 2})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"x","count":2}`, string(data))

	value, err := codec.Unmarshal([]byte(`{"name":"y","count":3,"tags":["t"]}`))
	require.NoError(t, err)
	assert.Equal(t, report{Name: "y", Count: 3, Tags: []string{"t"}}, value)

	_, err = codec.Unmarshal([]byte(`{"name":`))
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeSerialization))

	_, err = JSONCodec[any]{}.Marshal(func() {})
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeSerialization))
}

func TestStatus_String(t *testing.T) {
	tests := map[Status]string{
		StatusHit:         "hit",
		StatusMiss:        "miss",
		StatusOK:          "ok",
		StatusUnavailable: "unavailable",
		StatusFailed:      "failed",
		Status(42):        "unknown",
	}
	for status, want := range tests {
		assert.Equal(t, want, status.String())
	}
}

func TestMemoryTier(t *testing.T) {
	m := newMemoryTier[string](2, time.Hour, logging.NewNopLogger())

	assert.Equal(t, StatusMiss, m.get("a").Status)

	m.set("a", payload[string]{value: "1"})
	r := m.get("a")
	assert.Equal(t, StatusHit, r.Status)
	assert.Equal(t, tierMemory, r.Tier)
	assert.Equal(t, "1", r.Value)

	m.set("a", payload[string]{value: "2"})
	assert.Equal(t, "2", m.get("a").Value)
	assert.Equal(t, 1, m.size())

	assert.Equal(t, StatusOK, m.delete("a").Status)
	assert.Equal(t, StatusMiss, m.delete("a").Status)

	m.set("a", payload[string]{value: "1"})
	m.set("b", payload[string]{value: "2"})
	assert.Equal(t, StatusOK, m.clear().Status)
	assert.Equal(t, 0, m.size())
}

func TestMemoryTier_Expiry(t *testing.T) {
	m := newMemoryTier[string](10, 30*time.Millisecond, logging.NewNopLogger())

	m.set("a", payload[string]{value: "1"})
	assert.Equal(t, StatusHit, m.get("a").Status)

	assert.Eventually(t, func() bool {
		return m.get("a").Status == StatusMiss
	}, time.Second, 5*time.Millisecond)
}

func TestFileTier(t *testing.T) {
	dir := t.TempDir()
	f, err := newFileTier[report](dir, JSONCodec[report]{})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "foo.json"), f.path("foo"))
	assert.Equal(t, StatusMiss, f.get("foo").Status)
	assert.Equal(t, StatusMiss, f.delete("foo").Status)

	r := f.set("foo", payload[report]{data: []byte(`{"name":"x"}`)})
	assert.Equal(t, StatusOK, r.Status)

	r = f.get("foo")
	assert.Equal(t, StatusHit, r.Status)
	assert.Equal(t, report{Name: "x"}, r.Value)

	r = f.set("bar", payload[report]{encErr: apperrors.SerializationError("bad", nil)})
	assert.Equal(t, StatusFailed, r.Status)
	assert.NoFileExists(t, f.path("bar"))

	assert.Equal(t, StatusOK, f.delete("foo").Status)
	assert.NoFileExists(t, f.path("foo"))
}

func TestFileTier_Failures(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced")
	}

	dir := t.TempDir()
	f, err := newFileTier[report](dir, JSONCodec[report]{})
	require.NoError(t, err)

	require.NoError(t, os.Chmod(dir, 0o500))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	r := f.set("foo", payload[report]{data: []byte(`{}`)})
	assert.Equal(t, StatusFailed, r.Status)
	assert.True(t, apperrors.IsType(r.Err, apperrors.ErrTypeStorage))
}

func TestFileTier_ClearMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	f, err := newFileTier[report](dir, JSONCodec[report]{})
	require.NoError(t, err)

	require.NoError(t, os.RemoveAll(dir))

	r := f.clear()
	assert.Equal(t, StatusFailed, r.Status)
	assert.True(t, apperrors.IsType(r.Err, apperrors.ErrTypeStorage))
}
