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
	"bytes"
	"strconv"
)

// Decode consumes one frame from the head of b and returns it along with
// the number of bytes consumed. It never consumes more than ExpectLength
// reports for the same prefix, and on
// ErrNotCompleted or an *InvalidFrameError it consumes nothing: the
// caller's buffer is left untouched so a retry after more bytes arrive
// (or a close, for InvalidFrame) is always safe.
func Decode(b []byte) (Frame, int, error) {
	n, err := ExpectLength(b)
	if err != nil {
		return nil, 0, err
	}

	c := newLineCursor(b[:n])
	f, err := decodeOne(c)
	if err != nil {
		return nil, 0, err
	}
	return f, n, nil
}

func decodeOne(c *lineCursor) (Frame, error) {
	line, ok := c.next()
	if !ok {
		return nil, newInvalidFrame("truncated frame")
	}
	if len(line) == 0 {
		return nil, newInvalidFrame("empty frame")
	}

	prefix, body := line[0], line[1:]
	switch prefix {
	case '+':
		if err := validateSimpleBody(body); err != nil {
			return nil, err
		}
		return SimpleString(body), nil

	case '-':
		if err := validateSimpleBody(body); err != nil {
			return nil, err
		}
		return SimpleError(body), nil

	case ':':
		n, err := strconv.ParseInt(string(body), 10, 64)
		if err != nil {
			return nil, newInvalidFrame("integer: %v", err)
		}
		return Integer(n), nil

	case '$':
		return decodeBulkString(c, body)

	case '*':
		return decodeArray(c, body)

	case '~':
		return decodeSet(c, body)

	case '%':
		return decodeMap(c, body)

	case '_':
		if len(body) != 0 {
			return nil, newInvalidFrame("null frame must have an empty body")
		}
		return Null{}, nil

	case '#':
		switch string(body) {
		case "t":
			return Boolean(true), nil
		case "f":
			return Boolean(false), nil
		default:
			return nil, newInvalidFrame("invalid boolean body %q", body)
		}

	case ',':
		f, err := strconv.ParseFloat(string(body), 64)
		if err != nil {
			return nil, newInvalidFrame("double: %v", err)
		}
		return Double(f), nil

	default:
		return nil, newInvalidFrame("unknown frame prefix %q", prefix)
	}
}

func validateSimpleBody(body []byte) error {
	if bytes.ContainsAny(body, "\r\n") {
		return newInvalidFrame("simple frame body must not contain CR or LF")
	}
	return nil
}

func decodeBulkString(c *lineCursor, lenBytes []byte) (Frame, error) {
	n, err := parseCount(lenBytes)
	if err != nil {
		return nil, newInvalidFrame("bulk string length: %v", err)
	}
	if n < -1 {
		return nil, newInvalidFrame("bulk string length must be >= -1, got %d", n)
	}
	if n == -1 {
		return NullBulkString(), nil
	}

	raw := c.remaining()
	if int64(len(raw)) < n {
		return nil, newInvalidFrame("truncated bulk string")
	}
	data := append([]byte(nil), raw[:n]...)
	c.skip(int(n))
	if err := c.literalCRLF(); err != nil {
		return nil, err
	}
	return NewBulkString(data), nil
}

func decodeArray(c *lineCursor, lenBytes []byte) (Frame, error) {
	n, err := parseCount(lenBytes)
	if err != nil {
		return nil, newInvalidFrame("array length: %v", err)
	}
	if n < -1 {
		return nil, newInvalidFrame("array length must be >= -1, got %d", n)
	}
	if n == -1 {
		return NullArray(), nil
	}

	items := make([]Frame, 0, n)
	for i := int64(0); i < n; i++ {
		f, err := decodeOne(c)
		if err != nil {
			return nil, err
		}
		items = append(items, f)
	}
	return Array{Items: items, Valid: true}, nil
}

// decodeSet decodes a Set frame, silently dropping later duplicates of an
// already-seen element and preserving first-seen order. A -1 length has no
// representation in the Frame model (Set has no null variant); it decodes
// to an empty Set, the same as a 0 length.
func decodeSet(c *lineCursor, lenBytes []byte) (Frame, error) {
	n, err := parseCount(lenBytes)
	if err != nil {
		return nil, newInvalidFrame("set length: %v", err)
	}
	if n < -1 {
		return nil, newInvalidFrame("set length must be >= -1, got %d", n)
	}
	if n <= 0 {
		return SetFrame{}, nil
	}

	items := make([]Frame, 0, n)
	seen := make(map[string]struct{}, n)
	for i := int64(0); i < n; i++ {
		f, err := decodeOne(c)
		if err != nil {
			return nil, err
		}
		key := string(Encode(f))
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		items = append(items, f)
	}
	return SetFrame{Items: items}, nil
}

func decodeMap(c *lineCursor, lenBytes []byte) (Frame, error) {
	n, err := parseCount(lenBytes)
	if err != nil {
		return nil, newInvalidFrame("map entry count: %v", err)
	}
	if n < 0 {
		return nil, newInvalidFrame("map entry count must be >= 0, got %d", n)
	}

	m := Map{}
	for i := int64(0); i < n; i++ {
		kf, err := decodeOne(c)
		if err != nil {
			return nil, err
		}
		key, ok := kf.(SimpleString)
		if !ok {
			return nil, newInvalidFrame("map key must be a SimpleString")
		}
		vf, err := decodeOne(c)
		if err != nil {
			return nil, err
		}
		m.Set(string(key), vf)
	}
	return m, nil
}
