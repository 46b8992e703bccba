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
	"github.com/pkg/errors"
)

// ErrNotCompleted signals that a byte slice is a valid prefix of some
// frame but more bytes are needed. It is an internal signal between the
// length scanner, the decoder, and the connection loop; it must never
// reach the client.
var ErrNotCompleted = errors.New("resp: not completed")

// InvalidFrameError means no extension of the scanned bytes could ever
// form a valid frame: the stream is out of sync and the connection
// owning it must be closed.
type InvalidFrameError struct {
	Reason string
}

func (e *InvalidFrameError) Error() string {
	return "resp: invalid frame: " + e.Reason
}

func newInvalidFrame(format string, args ...any) error {
	return &InvalidFrameError{Reason: errors.Errorf(format, args...).Error()}
}

// IsNotCompleted reports whether err is (or wraps) ErrNotCompleted.
func IsNotCompleted(err error) bool {
	return errors.Is(err, ErrNotCompleted)
}

// IsInvalidFrame reports whether err is (or wraps) an *InvalidFrameError.
func IsInvalidFrame(err error) bool {
	var target *InvalidFrameError
	return errors.As(err, &target)
}
