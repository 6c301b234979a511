package cache

import (
	apperrors "tiercache/internal/common/errors"
	"tiercache/internal/common/logging"
)

// TieredCache spreads values of type V over a remote store, a bounded
// in-memory map and a fallback directory. It is safe for concurrent use, but
// tier updates are not atomic as a group: a concurrent reader may see a Set
// applied to some tiers and not yet to others.
type TieredCache[V any] struct {
	remote *remoteTier[V]
	memory *memoryTier[V]
	files  *fileTier[V]

	// lookup order
	tiers []tier[V]

	codec  Codec[V]
	logger logging.Logger
}

// New creates the fallback directory and returns a cache over it. remote may
// be nil, in which case the remote tier is always skipped. A nil logger
// discards all output.
func New[V any](config Config, remote Remote, codec Codec[V], logger logging.Logger) (*TieredCache[V], error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if codec == nil {
		return nil, apperrors.ConfigError("cache codec is required")
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	files, err := newFileTier(config.Dir, codec)
	if err != nil {
		return nil, err
	}

	c := &TieredCache[V]{
		remote: &remoteTier[V]{remote: remote, codec: codec, ttl: config.TTL, logger: logger},
		memory: newMemoryTier[V](config.MaxEntries, config.TTL, logger),
		files:  files,
		codec:  codec,
		logger: logger,
	}
	c.tiers = []tier[V]{c.remote, c.memory, c.files}

	logger.Info("tiered cache initialized",
		logging.Bool("remote_configured", remote != nil),
		logging.String("fallback_dir", config.Dir),
		logging.Duration("ttl", config.TTL),
		logging.Int("max_entries", config.MaxEntries),
	)

	return c, nil
}

// MustNew is like New but panics on error
func MustNew[V any](config Config, remote Remote, codec Codec[V], logger logging.Logger) *TieredCache[V] {
	c, err := New(config, remote, codec, logger)
	if err != nil {
		panic(err)
	}
	return c
}

// IsRemoteAvailable pings the remote store. Errors are logged and reported as
// false.
func (c *TieredCache[V]) IsRemoteAvailable() bool {
	return c.remote.available()
}

// Get returns the value from the first tier that holds key: remote, then
// memory, then file. Tier failures are logged and skipped. The boolean is
// false when no tier produced the key, which includes the case where every
// tier failed.
func (c *TieredCache[V]) Get(key string) (V, bool) {
	var zero V
	if !c.validKey(key) {
		return zero, false
	}

	for _, t := range c.tiers {
		r := t.get(key)
		switch r.Status {
		case StatusHit:
			c.logger.Debug("cache hit", logging.String("key", key), logging.String("tier", r.Tier))
			return r.Value, true
		case StatusFailed:
			c.logger.Error("cache read failed", r.Err, logging.String("key", key), logging.String("tier", r.Tier))
		}
	}

	c.logger.Debug("cache miss", logging.String("key", key))
	return zero, false
}

// Exists reports whether Get would find key.
func (c *TieredCache[V]) Exists(key string) bool {
	_, found := c.Get(key)
	return found
}

// Set writes value to every tier. The memory tier always accepts it; the
// remote and file tiers need the value to be encodable. Failures are logged.
func (c *TieredCache[V]) Set(key string, value V) {
	if !c.validKey(key) {
		return
	}

	p := payload[V]{value: value}
	p.data, p.encErr = c.codec.Marshal(value)

	for _, t := range c.tiers {
		c.logResult("cache set", key, t.set(key, p))
	}
}

// Delete removes key from every tier. A tier that does not hold the key is
// not an error.
func (c *TieredCache[V]) Delete(key string) {
	if !c.validKey(key) {
		return
	}

	for _, t := range c.tiers {
		c.logResult("cache delete", key, t.delete(key))
	}
}

// Clear empties every tier. This flushes the whole remote logical database
// and removes every regular file in the fallback directory, including entries
// written by anyone else sharing them.
func (c *TieredCache[V]) Clear() {
	for _, t := range c.tiers {
		c.logResult("cache clear", "", t.clear())
	}
}

func (c *TieredCache[V]) logResult(op, key string, r Result[V]) {
	fields := []logging.Field{logging.String("tier", r.Tier)}
	if key != "" {
		fields = append(fields, logging.String("key", key))
	}

	switch r.Status {
	case StatusOK:
		c.logger.Debug(op, fields...)
	case StatusFailed:
		c.logger.Error(op+" failed", r.Err, fields...)
	}
}

func (c *TieredCache[V]) validKey(key string) bool {
	if key == "" {
		c.logger.Error("invalid cache key", apperrors.ValidationError("key must not be empty"))
		return false
	}
	return true
}
