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
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Encode renders f in its wire form. It never fails: every Frame value
// constructed through this package's exported constructors is guaranteed
// encodable, and Decode never produces one that isn't.
func Encode(f Frame) []byte {
	var buf []byte
	return appendFrame(buf, f)
}

func appendFrame(buf []byte, f Frame) []byte {
	switch v := f.(type) {
	case SimpleString:
		buf = append(buf, '+')
		buf = append(buf, v...)
		return append(buf, crlf...)

	case SimpleError:
		buf = append(buf, '-')
		buf = append(buf, v...)
		return append(buf, crlf...)

	case Integer:
		buf = append(buf, ':')
		buf = strconv.AppendInt(buf, int64(v), 10)
		return append(buf, crlf...)

	case BulkString:
		if !v.Valid {
			return append(buf, "$-1\r\n"...)
		}
		buf = append(buf, '$')
		buf = strconv.AppendInt(buf, int64(len(v.Data)), 10)
		buf = append(buf, crlf...)
		buf = append(buf, v.Data...)
		return append(buf, crlf...)

	case Array:
		if !v.Valid {
			return append(buf, "*-1\r\n"...)
		}
		buf = append(buf, '*')
		buf = strconv.AppendInt(buf, int64(len(v.Items)), 10)
		buf = append(buf, crlf...)
		for _, it := range v.Items {
			buf = appendFrame(buf, it)
		}
		return buf

	case Null:
		return append(buf, "_\r\n"...)

	case Boolean:
		if v {
			return append(buf, "#t\r\n"...)
		}
		return append(buf, "#f\r\n"...)

	case Double:
		buf = append(buf, ',')
		buf = append(buf, encodeDouble(float64(v))...)
		return append(buf, crlf...)

	case Map:
		buf = append(buf, '%')
		buf = strconv.AppendInt(buf, int64(v.Len()), 10)
		buf = append(buf, crlf...)
		for _, e := range v.Entries {
			buf = appendFrame(buf, SimpleString(e.Key))
			buf = appendFrame(buf, e.Value)
		}
		return buf

	case SetFrame:
		buf = append(buf, '~')
		buf = strconv.AppendInt(buf, int64(len(v.Items)), 10)
		buf = append(buf, crlf...)
		for _, it := range v.Items {
			buf = appendFrame(buf, it)
		}
		return buf

	default:
		panic(fmt.Sprintf("resp: unhandled frame type %T in Encode", f))
	}
}

// encodeDouble renders a double body: inf/-inf/nan for
// the non-finite cases, otherwise a lowercase decimal with a leading sign,
// switching to scientific notation once the magnitude is large or small
// enough that a plain decimal would be unwieldy.
func encodeDouble(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	abs := math.Abs(f)
	var s string
	if abs != 0 && (abs > 1e8 || abs < 1e-8) {
		s = strconv.FormatFloat(f, 'e', -1, 64)
	} else {
		s = strconv.FormatFloat(f, 'f', -1, 64)
	}
	s = strings.ToLower(s)
	if f >= 0 && !strings.HasPrefix(s, "+") {
		s = "+" + s
	}
	return s
}
