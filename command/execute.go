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

import (
	"fmt"

	"github.com/kvresp/kvresp/resp"
	"github.com/kvresp/kvresp/store"
)

// Execute runs cmd against backend and returns the reply frame. It is
// total: every valid Command produces a frame, never an error — semantic
// outcomes like a missing key are represented in the reply shape itself
// (Null, an empty Map, Integer(0)), not as a Go error.
func Execute(cmd Command, backend *store.Backend) resp.Frame {
	switch c := cmd.(type) {
	case Get:
		v, ok := backend.Get(c.Key)
		if !ok {
			return resp.Null{}
		}
		return v

	case Set:
		backend.Set(c.Key, c.Value)
		return resp.SimpleString("OK")

	case HGet:
		v, ok := backend.HGet(c.Key, c.Field)
		if !ok {
			return resp.Null{}
		}
		return v

	case HSet:
		backend.HSet(c.Key, c.Field, c.Value)
		return resp.SimpleString("OK")

	case HGetAll:
		return backend.HGetAll(c.Key)

	case HMGet:
		return backend.HMGet(c.Key, c.Fields)

	case Echo:
		return resp.SimpleString(c.Message)

	case SAdd:
		return resp.Integer(backend.SAdd(c.Key, c.Members))

	case SIsMember:
		return resp.Integer(backend.SIsMember(c.Key, c.Member))

	default:
		panic(fmt.Sprintf("command: unhandled command type %T in Execute", cmd))
	}
}
