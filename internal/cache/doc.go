// Package cache provides TieredCache, a key/value cache spread over three
// storage tiers consulted in a fixed order:
//
//  1. Remote - a Redis server reached through the Remote interface. It may be
//     down; every remote operation is preceded by a PING.
//  2. Memory - a bounded, least-recently-used map with a uniform TTL
//     (github.com/hashicorp/golang-lru/v2/expirable).
//  3. File - one file per key in a fallback directory. Files never expire.
//
// Reads return the first hit. Writes and deletes go to every reachable tier
// independently; a failing tier is logged and skipped, never reported to the
// caller. A lower-tier hit is not copied back into higher tiers.
//
// Usage:
//
//	remote, _ := redis.NewClient(&redis.Config{Host: "localhost", Port: 6379})
//	c, err := cache.New[Report](cache.DefaultConfig(), remote, cache.JSONCodec[Report]{}, logger)
//	if err != nil {
//		return err
//	}
//	c.Set("daily", report)
//	if r, ok := c.Get("daily"); ok {
//		...
//	}
package cache
