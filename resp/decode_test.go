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

package resp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Frame
		n     int
	}{
		{name: "simple string", input: "+OK\r\n", want: SimpleString("OK"), n: 5},
		{name: "simple error", input: "-ERR oops\r\n", want: SimpleError("ERR oops"), n: 11},
		{name: "integer", input: ":1000\r\n", want: Integer(1000), n: 7},
		{name: "negative integer", input: ":-7\r\n", want: Integer(-7), n: 5},
		{name: "null bulk string", input: "$-1\r\n", want: NullBulkString(), n: 5},
		{name: "empty bulk string", input: "$0\r\n\r\n", want: NewBulkString([]byte{}), n: 6},
		{name: "bulk string", input: "$5\r\nhello\r\n", want: NewBulkString([]byte("hello")), n: 11},
		{name: "null array", input: "*-1\r\n", want: NullArray(), n: 5},
		{name: "empty array", input: "*0\r\n", want: NewArray(), n: 4},
		{
			name:  "nested array",
			input: "*2\r\n:1\r\n:2\r\n",
			want:  NewArray(Integer(1), Integer(2)),
			n:     12,
		},
		{name: "null", input: "_\r\n", want: Null{}, n: 3},
		{name: "boolean true", input: "#t\r\n", want: Boolean(true), n: 4},
		{name: "boolean false", input: "#f\r\n", want: Boolean(false), n: 4},
		{name: "double", input: ",+3.14\r\n", want: Double(3.14), n: 8},
		{name: "double inf", input: ",inf\r\n", want: Double(math.Inf(1)), n: 6},
		{name: "double -inf", input: ",-inf\r\n", want: Double(math.Inf(-1)), n: 7},
		{
			name:  "set dedups preserving first-seen order",
			input: "~3\r\n:1\r\n:2\r\n:1\r\n",
			want:  NewSet(Integer(1), Integer(2)),
			n:     16,
		},
		{name: "empty set", input: "~0\r\n", want: SetFrame{}, n: 4},
		{
			name:  "map",
			input: "%1\r\n+field\r\n$5\r\nvalue\r\n",
			want: func() Frame {
				m := NewMap()
				m.Set("field", NewBulkString([]byte("value")))
				return m
			}(),
			n: 23,
		},
		{name: "empty map", input: "%0\r\n", want: NewMap(), n: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, n, err := Decode([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.n, n)
			assert.True(t, Equal(tt.want, got), "got %#v, want %#v", got, tt.want)
		})
	}
}

func TestDecode_NaNEqualsNaN(t *testing.T) {
	got, _, err := Decode([]byte(",nan\r\n"))
	require.NoError(t, err)
	assert.True(t, Equal(Double(math.NaN()), got))
}

func TestDecode_DoesNotOverRead(t *testing.T) {
	got, n, err := Decode([]byte("+OK\r\n+NEXT\r\n"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, SimpleString("OK"), got)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "map key must be simple string", input: "%1\r\n:1\r\n:2\r\n"},
		{name: "unknown prefix", input: "!nope\r\n"},
		{name: "simple string with embedded LF", input: "+o\nk\r\n"},
		{name: "bad boolean body", input: "#x\r\n"},
		{name: "bad double body", input: ",notanumber\r\n"},
		{name: "integer overflow", input: ":99999999999999999999\r\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Decode([]byte(tt.input))
			assert.True(t, IsInvalidFrame(err), "expected InvalidFrameError, got %v", err)
		})
	}
}

func TestDecode_NotCompleted(t *testing.T) {
	_, _, err := Decode([]byte("$5\r\nhel"))
	assert.True(t, IsNotCompleted(err))
}
