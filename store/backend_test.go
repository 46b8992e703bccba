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
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kvresp/kvresp/resp"
)

func TestBackend_GetSet(t *testing.T) {
	b := New(4)

	_, ok := b.Get("missing")
	assert.False(t, ok)

	b.Set("k", resp.NewBulkString([]byte("v1")))
	v, ok := b.Get("k")
	require.True(t, ok)
	assert.True(t, resp.Equal(resp.NewBulkString([]byte("v1")), v))

	b.Set("k", resp.NewBulkString([]byte("v2")))
	v, ok = b.Get("k")
	require.True(t, ok)
	assert.True(t, resp.Equal(resp.NewBulkString([]byte("v2")), v))
}

func TestBackend_HGetHSet(t *testing.T) {
	b := New(4)

	_, ok := b.HGet("h", "f")
	assert.False(t, ok)

	b.HSet("h", "f1", resp.Integer(1))
	b.HSet("h", "f2", resp.Integer(2))

	v, ok := b.HGet("h", "f1")
	require.True(t, ok)
	assert.Equal(t, resp.Integer(1), v)

	_, ok = b.HGet("h", "nope")
	assert.False(t, ok)
}

func TestBackend_HGetAll(t *testing.T) {
	b := New(4)
	b.HSet("h", "a", resp.Integer(1))
	b.HSet("h", "b", resp.Integer(2))

	all := b.HGetAll("h")
	assert.Equal(t, 2, all.Len())
	va, ok := all.Get("a")
	require.True(t, ok)
	assert.Equal(t, resp.Integer(1), va)
	vb, ok := all.Get("b")
	require.True(t, ok)
	assert.Equal(t, resp.Integer(2), vb)

	empty := b.HGetAll("missing")
	assert.Equal(t, 0, empty.Len())
}

func TestBackend_HMGet(t *testing.T) {
	b := New(4)
	b.HSet("h", "a", resp.Integer(1))
	b.HSet("h", "b", resp.Integer(2))

	got := b.HMGet("h", []string{"a", "missing", "b"})
	assert.Equal(t, 2, got.Len())
	_, ok := got.Get("missing")
	assert.False(t, ok)
}

func TestBackend_SAdd(t *testing.T) {
	b := New(4)

	added := b.SAdd("s", [][]byte{[]byte("one"), []byte("two")})
	assert.Equal(t, int64(2), added)

	added = b.SAdd("s", [][]byte{[]byte("one"), []byte("two")})
	assert.Equal(t, int64(0), added)

	added = b.SAdd("s", [][]byte{[]byte("two"), []byte("three")})
	assert.Equal(t, int64(1), added)
}

func TestBackend_SIsMember(t *testing.T) {
	b := New(4)

	assert.Equal(t, int64(0), b.SIsMember("missing", []byte("x")))

	b.SAdd("s", [][]byte{[]byte("x")})
	assert.Equal(t, int64(1), b.SIsMember("s", []byte("x")))
	assert.Equal(t, int64(0), b.SIsMember("s", []byte("y")))
}

func TestBackend_ConcurrentDistinctKeys(t *testing.T) {
	b := New(8)
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := string(rune('a' + i%26))
			b.SAdd(key, [][]byte{{byte(i)}})
		}(i)
	}
	wg.Wait()
}
