package cache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"tiercache/internal/common/logging"
)

const tierMemory = "memory"

// memoryTier keeps decoded values in a bounded LRU. Entries expire ttl after
// their last write; once maxEntries is exceeded the least recently used entry
// (read or written) is evicted. The LRU does its own locking.
type memoryTier[V any] struct {
	lru *expirable.LRU[string, V]
}

func newMemoryTier[V any](maxEntries int, ttl time.Duration, logger logging.Logger) *memoryTier[V] {
	onEvict := func(key string, _ V) {
		logger.Debug("memory entry dropped", logging.String("key", key))
	}
	return &memoryTier[V]{
		lru: expirable.NewLRU[string, V](maxEntries, onEvict, ttl),
	}
}

func (m *memoryTier[V]) name() string { return tierMemory }

func (m *memoryTier[V]) get(key string) Result[V] {
	if value, found := m.lru.Get(key); found {
		return resultHit(tierMemory, value)
	}
	return resultMiss[V](tierMemory)
}

// set stores the value even when it could not be encoded for the other tiers.
func (m *memoryTier[V]) set(key string, p payload[V]) Result[V] {
	m.lru.Add(key, p.value)
	return resultOK[V](tierMemory)
}

func (m *memoryTier[V]) delete(key string) Result[V] {
	if !m.lru.Remove(key) {
		return resultMiss[V](tierMemory)
	}
	return resultOK[V](tierMemory)
}

func (m *memoryTier[V]) clear() Result[V] {
	m.lru.Purge()
	return resultOK[V](tierMemory)
}

func (m *memoryTier[V]) size() int {
	return m.lru.Len()
}
