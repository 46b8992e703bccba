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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpectLength(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr error // nil means "no error", else compared with errors.Is/As helpers below
	}{
		{name: "simple string", input: "+OK\r\n", want: 5},
		{name: "simple error", input: "-ERR oops\r\n", want: 11},
		{name: "integer", input: ":1000\r\n", want: 7},
		{name: "null bulk string", input: "$-1\r\n", want: 5},
		{name: "empty bulk string", input: "$0\r\n\r\n", want: 6},
		{name: "bulk string", input: "$5\r\nhello\r\n", want: 11},
		{name: "null array", input: "*-1\r\n", want: 5},
		{name: "empty array", input: "*0\r\n", want: 4},
		{name: "nested array", input: "*2\r\n:1\r\n:2\r\n", want: 12},
		{name: "empty set", input: "~0\r\n", want: 4},
		{name: "set", input: "~2\r\n:1\r\n:2\r\n", want: 12},
		{name: "empty map", input: "%0\r\n", want: 4},
		{name: "map", input: "%1\r\n+k\r\n:1\r\n", want: 12},
		{name: "boolean true", input: "#t\r\n", want: 4},
		{name: "boolean false", input: "#f\r\n", want: 4},
		{name: "null", input: "_\r\n", want: 3},
		{name: "double", input: ",3.14\r\n", want: 7},

		{name: "incomplete line", input: "+OK", wantErr: ErrNotCompleted},
		{name: "incomplete bulk string body", input: "$5\r\nhel", wantErr: ErrNotCompleted},
		{name: "incomplete bulk string terminator", input: "$5\r\nhello", wantErr: ErrNotCompleted},
		{name: "incomplete nested element", input: "*2\r\n:1\r\n", wantErr: ErrNotCompleted},

		{name: "bad bulk string length", input: "$-2\r\n", wantErr: errInvalidFrameSentinel},
		{name: "bad array length", input: "*-2\r\n", wantErr: errInvalidFrameSentinel},
		{name: "negative map entry count", input: "%-1\r\n", wantErr: errInvalidFrameSentinel},
		{name: "unknown prefix", input: "!nope\r\n", wantErr: errInvalidFrameSentinel},
		{name: "empty frame", input: "\r\n", wantErr: errInvalidFrameSentinel},
		{name: "non-numeric length", input: "$x\r\n", wantErr: errInvalidFrameSentinel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := ExpectLength([]byte(tt.input))
			switch tt.wantErr {
			case nil:
				assert.NoError(t, err)
				assert.Equal(t, tt.want, n)
			case ErrNotCompleted:
				assert.True(t, IsNotCompleted(err), "expected ErrNotCompleted, got %v", err)
			case errInvalidFrameSentinel:
				assert.True(t, IsInvalidFrame(err), "expected InvalidFrameError, got %v", err)
			}
		})
	}
}

// errInvalidFrameSentinel is a local marker distinguishing "any
// InvalidFrameError" from the exact ErrNotCompleted value in the table
// above; it is never returned by production code.
var errInvalidFrameSentinel = &InvalidFrameError{Reason: "sentinel"}

func TestExpectLength_ByteExactness(t *testing.T) {
	// A trailing byte beyond the frame must not be consumed: ExpectLength
	// reports only the first frame's length even when more data follows,
	// which is what lets the connection loop pipeline requests.
	n, err := ExpectLength([]byte("+OK\r\n+ANOTHER\r\n"))
	assert.NoError(t, err)
	assert.Equal(t, 5, n)
}
