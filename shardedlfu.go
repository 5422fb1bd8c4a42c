// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package concx

import (
	"fmt"

	xxhash "github.com/cespare/xxhash/v2"
)

// ShardedLFU spreads an LFU cache over a power-of-two number of
// independently locked shards to cut mutex contention. Each shard is a
// plain [LFU] with an equal slice of the total capacity; the shard for
// a key is chosen by hash, so eviction pressure is per shard rather
// than global.
type ShardedLFU[K comparable, V any] struct {
	shards []*LFU[K, V]
	mask   uint64
	hash   hasher[K]
}

// NewShardedLFU creates a sharded cache of the given total capacity.
// shardCount rounds up to the next power of 2 (minimum 2). Capacity is
// divided evenly across shards; any remainder goes to the first shard.
func NewShardedLFU[K comparable, V any](capacity, shardCount int) *ShardedLFU[K, V] {
	if capacity < 0 {
		panic("concx: LFU capacity must not be negative")
	}
	n := roundToPow2(shardCount)
	c := &ShardedLFU[K, V]{
		shards: make([]*LFU[K, V], n),
		mask:   uint64(n - 1),
	}
	per := capacity / n
	rest := capacity % n
	for i := range c.shards {
		shardCap := per
		if i == 0 {
			shardCap += rest
		}
		c.shards[i] = NewLFU[K, V](shardCap)
	}
	return c
}

// Get returns a handle to the value stored under k, promoting the
// entry inside its shard. Returns (nil, false) on a miss.
func (c *ShardedLFU[K, V]) Get(k K) (*V, bool) {
	return c.shard(k).Get(k)
}

// GetCopy returns a copy of the value stored under k.
func (c *ShardedLFU[K, V]) GetCopy(k K) (V, bool) {
	return c.shard(k).GetCopy(k)
}

// GetLocked returns a locked handle from k's shard; only that shard
// stays locked until Release.
func (c *ShardedLFU[K, V]) GetLocked(k K) *LockedValue[K, V] {
	return c.shard(k).GetLocked(k)
}

// Put stores a copy of v under k in k's shard.
func (c *ShardedLFU[K, V]) Put(k K, v V) {
	c.shard(k).Put(k, v)
}

// PutHandle stores the value handle h under k. Nil handles are no-ops.
func (c *ShardedLFU[K, V]) PutHandle(k K, h *V) {
	c.shard(k).PutHandle(k, h)
}

// Len returns the total number of entries across all shards.
func (c *ShardedLFU[K, V]) Len() int {
	n := 0
	for _, s := range c.shards {
		n += s.Len()
	}
	return n
}

// Capacity returns the total capacity across all shards.
func (c *ShardedLFU[K, V]) Capacity() int {
	n := 0
	for _, s := range c.shards {
		n += s.Capacity()
	}
	return n
}

// Shards returns the number of shards.
func (c *ShardedLFU[K, V]) Shards() int {
	return len(c.shards)
}

func (c *ShardedLFU[K, V]) shard(k K) *LFU[K, V] {
	return c.shards[c.hash.sum(k)&c.mask]
}

const (
	// Fibonacci multipliers for integer key mixing.
	gratio32 = 0x9E3779B9
	gratio64 = 0x9E3779B97F4A7C15
)

// hasher provides type-specific hash functions for shard selection.
// String keys use xxHash64, integers use multiplicative hashing, and
// other types fall back to their string representation.
type hasher[K comparable] struct{}

func (hasher[K]) sum(key K) uint64 {
	switch k := any(key).(type) {
	case string:
		return xxhash.Sum64String(k)
	case int:
		return uint64(k) * gratio64
	case int32:
		return uint64(k) * gratio32
	case int64:
		return uint64(k) * gratio64
	case uint:
		return uint64(k) * gratio64
	case uint32:
		return uint64(k) * gratio32
	case uint64:
		return k * gratio64
	default:
		return xxhash.Sum64String(fmt.Sprintf("%v", k))
	}
}
