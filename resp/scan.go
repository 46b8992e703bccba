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

import "bytes"

// crlf is the two-byte record terminator every RESP frame ends a line
// with. Unlike a generic line-oriented scanner, a bare
// "\n" with no preceding "\r" is not a terminator here: it is itself
// part of an incomplete line, since the wire contract only ever emits
// the pair together.
var crlf = []byte("\r\n")

// lineCursor walks CRLF-terminated lines at the head of a byte slice
// without copying. It is the length-scanning counterpart to decode: it
// only ever reports where a line ends, never materializes anything.
type lineCursor struct {
	b []byte
	r int // bytes already consumed
}

func newLineCursor(b []byte) *lineCursor {
	return &lineCursor{b: b}
}

// next returns the next line (excluding the CRLF) and advances past it,
// or reports that the remaining bytes don't yet contain a full line.
func (c *lineCursor) next() (line []byte, ok bool) {
	rest := c.b[c.r:]
	idx := bytes.Index(rest, crlf)
	if idx < 0 {
		return nil, false
	}
	line = rest[:idx]
	c.r += idx + len(crlf)
	return line, true
}

// consumed returns how many bytes of the original slice have been
// walked past so far.
func (c *lineCursor) consumed() int { return c.r }

// remaining returns the bytes not yet walked past.
func (c *lineCursor) remaining() []byte { return c.b[c.r:] }

// skip advances past n raw bytes (used to jump over a bulk string body
// without materializing it during length-scanning).
func (c *lineCursor) skip(n int) bool {
	if len(c.b)-c.r < n {
		return false
	}
	c.r += n
	return true
}

// literalCRLF consumes exactly the two bytes "\r\n" at the cursor. Unlike
// next(), it never searches: a bulk string payload can legitimately
// contain byte pairs that look like a terminator, so the only safe way to
// find the real one after skip(n) has already moved past the payload is
// to check the two bytes sitting right here.
func (c *lineCursor) literalCRLF() error {
	rest := c.remaining()
	if len(rest) < 2 {
		return ErrNotCompleted
	}
	if rest[0] != '\r' || rest[1] != '\n' {
		return newInvalidFrame("bulk string missing trailing CRLF")
	}
	c.r += 2
	return nil
}
