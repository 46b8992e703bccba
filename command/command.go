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

// Package command turns a decoded RESP Array frame into a validated,
// typed request, and executes it against a store.Backend. Command is a
// closed sum type in the same style as resp.Frame: every concrete request
// type carries an unexported marker, so no type outside this package can
// be a Command. Go does not check type switches for exhaustiveness: a case
// missing from Execute reaches its default branch, which panics.
package command

import "github.com/kvresp/kvresp/resp"

// Command is one validated client request.
type Command interface {
	isCommand()
}

// Get is GET key.
type Get struct{ Key string }

// Set is SET key value.
type Set struct {
	Key   string
	Value resp.Frame
}

// HGet is HGET key field.
type HGet struct{ Key, Field string }

// HSet is HSET key field value.
type HSet struct {
	Key, Field string
	Value      resp.Frame
}

// HGetAll is HGETALL key.
type HGetAll struct{ Key string }

// HMGet is HMGET key field [field ...].
type HMGet struct {
	Key    string
	Fields []string
}

// Echo is ECHO message.
type Echo struct{ Message string }

// SAdd is SADD key member [member ...]. Members are opaque byte
// sequences, not necessarily valid UTF-8.
type SAdd struct {
	Key     string
	Members [][]byte
}

// SIsMember is SISMEMBER key member.
type SIsMember struct {
	Key    string
	Member []byte
}

func (Get) isCommand()       {}
func (Set) isCommand()       {}
func (HGet) isCommand()      {}
func (HSet) isCommand()      {}
func (HGetAll) isCommand()   {}
func (HMGet) isCommand()     {}
func (Echo) isCommand()      {}
func (SAdd) isCommand()      {}
func (SIsMember) isCommand() {}
