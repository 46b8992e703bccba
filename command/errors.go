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

package command

import "github.com/pkg/errors"

// InvalidCommandError means the frame was not a well-formed command
// invocation at all: not an Array, an empty Array, or an unknown verb.
// The connection stays open on this error; the caller writes a
// SimpleError reply and keeps reading.
type InvalidCommandError struct {
	Reason string
}

func (e *InvalidCommandError) Error() string {
	return "invalid command: " + e.Reason
}

func newInvalidCommand(format string, args ...any) error {
	return &InvalidCommandError{Reason: errors.Errorf(format, args...).Error()}
}

// InvalidArgumentError means the verb was recognized but an argument
// didn't fit its slot: wrong arity, a non-BulkString in a key/field
// position, or a key/field that isn't valid UTF-8. Connection stays open.
type InvalidArgumentError struct {
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return "invalid argument: " + e.Reason
}

func newInvalidArgument(format string, args ...any) error {
	return &InvalidArgumentError{Reason: errors.Errorf(format, args...).Error()}
}

// IsInvalidCommand reports whether err is an *InvalidCommandError.
func IsInvalidCommand(err error) bool {
	var target *InvalidCommandError
	return errors.As(err, &target)
}

// IsInvalidArgument reports whether err is an *InvalidArgumentError.
func IsInvalidArgument(err error) bool {
	var target *InvalidArgumentError
	return errors.As(err, &target)
}
