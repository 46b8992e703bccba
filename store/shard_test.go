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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextPowerOfTwo(t *testing.T) {
	cases := map[int]int{0: 1, 1: 1, 2: 2, 3: 4, 4: 4, 5: 8, 17: 32}
	for in, want := range cases {
		assert.Equal(t, want, nextPowerOfTwo(in))
	}
}

func TestShardMap_DoIsolatesKeys(t *testing.T) {
	sm := newShardMap[int](4)

	sm.Do("a", func(m map[string]int) { m["a"] = 1 })
	sm.Do("b", func(m map[string]int) { m["b"] = 2 })

	var a, b int
	sm.Do("a", func(m map[string]int) { a = m["a"] })
	sm.Do("b", func(m map[string]int) { b = m["b"] })

	assert.Equal(t, 1, a)
	assert.Equal(t, 2, b)
}

func TestShardMap_SameKeySameBucket(t *testing.T) {
	sm := newShardMap[int](16)
	assert.Same(t, sm.bucketFor("repeat"), sm.bucketFor("repeat"))
}
