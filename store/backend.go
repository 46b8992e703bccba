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

package store

import (
	"github.com/kvresp/kvresp/common"
	"github.com/kvresp/kvresp/resp"
)

// Backend owns the three independently lockable containers shared across
// every connection: kv (string -> Frame), hkv (string -> field -> Frame)
// and skv (string -> ordered set of byte-sequence members). It is created
// once at listener startup and outlives every connection.
type Backend struct {
	kv  *shardMap[resp.Frame]
	hkv *shardMap[map[string]resp.Frame]
	skv *shardMap[*orderedSet]
}

// New builds a Backend with the given number of shards per container,
// primarily for tests that want to force collisions.
func New(shards int) *Backend {
	return &Backend{
		kv:  newShardMap[resp.Frame](shards),
		hkv: newShardMap[map[string]resp.Frame](shards),
		skv: newShardMap[*orderedSet](shards),
	}
}

// NewBackend builds a production Backend sized by common.Concurrency(),
// the same coreNums*2 factor the rest of the ambient stack uses to size
// worker fan-out.
func NewBackend() *Backend {
	return New(common.Concurrency())
}

// Get returns the Frame stored at key, if any.
func (b *Backend) Get(key string) (resp.Frame, bool) {
	var (
		v  resp.Frame
		ok bool
	)
	b.kv.Do(key, func(m map[string]resp.Frame) {
		v, ok = m[key]
	})
	return v, ok
}

// Set overwrites the Frame stored at key.
func (b *Backend) Set(key string, value resp.Frame) {
	b.kv.Do(key, func(m map[string]resp.Frame) {
		m[key] = value
	})
}

// HGet returns the Frame stored at field within the hash at key.
func (b *Backend) HGet(key, field string) (resp.Frame, bool) {
	var (
		v  resp.Frame
		ok bool
	)
	b.hkv.Do(key, func(m map[string]map[string]resp.Frame) {
		h, exists := m[key]
		if !exists {
			return
		}
		v, ok = h[field]
	})
	return v, ok
}

// HSet sets field within the hash at key, creating the hash if missing.
func (b *Backend) HSet(key, field string, value resp.Frame) {
	b.hkv.Do(key, func(m map[string]map[string]resp.Frame) {
		h, exists := m[key]
		if !exists {
			h = make(map[string]resp.Frame)
			m[key] = h
		}
		h[field] = value
	})
}

// HGetAll returns a snapshot of every field in the hash at key. Mutations
// made after this call do not affect the returned Map: the copy happens
// entirely while the shard is locked.
func (b *Backend) HGetAll(key string) resp.Map {
	result := resp.NewMap()
	b.hkv.Do(key, func(m map[string]map[string]resp.Frame) {
		h, exists := m[key]
		if !exists {
			return
		}
		for field, v := range h {
			result.Set(field, v)
		}
	})
	return result
}

// HMGet returns a snapshot Map containing only the requested fields that
// are actually present in the hash at key; missing fields are omitted
// rather than represented as null entries.
func (b *Backend) HMGet(key string, fields []string) resp.Map {
	result := resp.NewMap()
	b.hkv.Do(key, func(m map[string]map[string]resp.Frame) {
		h, exists := m[key]
		if !exists {
			return
		}
		for _, f := range fields {
			if v, ok := h[f]; ok {
				result.Set(f, v)
			}
		}
	})
	return result
}

// SAdd inserts members into the set at key and returns how many of them
// were not already present. The whole batch is one critical section, so
// a concurrent SAdd on the same key can never interleave member-by-member.
func (b *Backend) SAdd(key string, members [][]byte) int64 {
	var added int64
	b.skv.Do(key, func(m map[string]*orderedSet) {
		s, exists := m[key]
		if !exists {
			s = &orderedSet{}
			m[key] = s
		}
		strs := make([]string, len(members))
		for i, mem := range members {
			strs[i] = string(mem)
		}
		added = s.add(strs...)
	})
	return added
}

// SIsMember reports whether member belongs to the set at key: 1 if
// present, 0 otherwise (including when key itself is absent).
func (b *Backend) SIsMember(key string, member []byte) int64 {
	var present bool
	b.skv.Do(key, func(m map[string]*orderedSet) {
		s, exists := m[key]
		if !exists {
			return
		}
		present = s.has(string(member))
	})
	if present {
		return 1
	}
	return 0
}
