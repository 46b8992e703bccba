// Copyright 2026 The kvresp Authors
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package store implements the backend's concurrent containers: a
// shard-striped map keyed by xxhash of the key, so independent keys never
// contend on the same mutex. Every per-key container (kv, hkv, skv) is
// built on top of the same shardMap primitive.
package store

import (
	"sync"

	"github.com/cespare/xxhash/v2"
)

// shardMap partitions a string-keyed map across a fixed number of
// independently locked buckets, selecting a bucket by hashing the key
// rather than locking the whole map on every access.
type shardMap[V any] struct {
	buckets []*bucket[V]
	mask    uint64
}

type bucket[V any] struct {
	mu   sync.Mutex
	data map[string]V
}

// newShardMap builds a shardMap with shards buckets. shards is rounded up
// to the next power of two so bucket selection is a mask, not a modulo.
func newShardMap[V any](shards int) *shardMap[V] {
	n := nextPowerOfTwo(shards)
	sm := &shardMap[V]{
		buckets: make([]*bucket[V], n),
		mask:    uint64(n - 1),
	}
	for i := range sm.buckets {
		sm.buckets[i] = &bucket[V]{data: make(map[string]V)}
	}
	return sm
}

func nextPowerOfTwo(n int) int {
	if n < 1 {
		n = 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

func (sm *shardMap[V]) bucketFor(key string) *bucket[V] {
	h := xxhash.Sum64String(key)
	return sm.buckets[h&sm.mask]
}

// Do runs fn with the bucket owning key locked, giving fn direct,
// exclusive access to that bucket's map. Every composite operation
// (read-modify-write, or multi-member mutation) goes through Do so it is
// atomic with respect to other operations on the same key, per spec: a
// single sadd/hset/set is one critical section.
func (sm *shardMap[V]) Do(key string, fn func(m map[string]V)) {
	b := sm.bucketFor(key)
	b.mu.Lock()
	defer b.mu.Unlock()
	fn(b.data)
}
