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

import "strconv"

// ExpectLength returns the number of bytes the next complete frame in b
// will consume once all of it has arrived, ErrNotCompleted if b is a
// valid prefix of some frame but more bytes are needed, or an
// *InvalidFrameError if no extension of b could ever form a valid frame.
//
// ExpectLength never materializes nested frames: for bulk strings it
// checks that length+2 trailing bytes are present and skips over them
// without copying; for Array/Set/Map it recurses into each element's
// length only. This is the hot path the connection loop uses to decide
// whether a full Decode is worth attempting.
func ExpectLength(b []byte) (int, error) {
	c := newLineCursor(b)
	if err := scanOne(c); err != nil {
		return 0, err
	}
	return c.consumed(), nil
}

func scanOne(c *lineCursor) error {
	line, ok := c.next()
	if !ok {
		return ErrNotCompleted
	}
	if len(line) == 0 {
		return newInvalidFrame("empty frame")
	}

	prefix, body := line[0], line[1:]
	switch prefix {
	case '+', '-', ':', '_', '#', ',':
		return nil // whole record is exactly this one line

	case '$':
		return scanBulkString(c, body)

	case '*':
		return scanSequence(c, body, true)

	case '~':
		return scanSequence(c, body, true)

	case '%':
		return scanMap(c, body)

	default:
		return newInvalidFrame("unknown frame prefix %q", prefix)
	}
}

func scanBulkString(c *lineCursor, lenBytes []byte) error {
	n, err := parseCount(lenBytes)
	if err != nil {
		return newInvalidFrame("bulk string length: %v", err)
	}
	if n < -1 {
		return newInvalidFrame("bulk string length must be >= -1, got %d", n)
	}
	if n == -1 {
		return nil // null bulk string, header line is the whole frame
	}
	if !c.skip(int(n)) {
		return ErrNotCompleted
	}
	return c.literalCRLF()
}

// scanSequence handles both Array and Set; its bool argument is not
// consulted. The count bound (>= -1) is shared;
// Set's wire encoding never actually emits -1, but accepting it here
// costs nothing and keeps one recursive bound check for both container
// kinds.
func scanSequence(c *lineCursor, lenBytes []byte, _ bool) error {
	n, err := parseCount(lenBytes)
	if err != nil {
		return newInvalidFrame("sequence length: %v", err)
	}
	if n < -1 {
		return newInvalidFrame("sequence length must be >= -1, got %d", n)
	}
	if n <= 0 {
		return nil // null (-1) or empty (0): nothing further to scan
	}
	for i := int64(0); i < n; i++ {
		if err := scanOne(c); err != nil {
			return err
		}
	}
	return nil
}

func scanMap(c *lineCursor, lenBytes []byte) error {
	n, err := parseCount(lenBytes)
	if err != nil {
		return newInvalidFrame("map entry count: %v", err)
	}
	if n < 0 {
		return newInvalidFrame("map entry count must be >= 0, got %d", n)
	}
	for i := int64(0); i < n; i++ {
		if err := scanOne(c); err != nil { // key
			return err
		}
		if err := scanOne(c); err != nil { // value
			return err
		}
	}
	return nil
}

func parseCount(b []byte) (int64, error) {
	return strconv.ParseInt(string(b), 10, 64)
}
