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
	"strings"
	"unicode/utf8"

	"github.com/kvresp/kvresp/resp"
)

// Parse converts a decoded Array frame into a Command. The first element
// must be a BulkString whose value, uppercased, names a known verb;
// everything after it is validated against that verb's arity and
// argument shapes. It never returns a (nil, nil) pair.
func Parse(f resp.Frame) (Command, error) {
	arr, ok := f.(resp.Array)
	if !ok || !arr.Valid {
		return nil, newInvalidCommand("expected an array frame")
	}
	if len(arr.Items) == 0 {
		return nil, newInvalidCommand("empty command array")
	}

	verbBulk, ok := arr.Items[0].(resp.BulkString)
	if !ok || !verbBulk.Valid {
		return nil, newInvalidCommand("command verb must be a bulk string")
	}
	verb := strings.ToUpper(string(verbBulk.Data))
	args := arr.Items[1:]

	switch verb {
	case "GET":
		if len(args) != 1 {
			return nil, newInvalidArgument("GET requires 1 argument, got %d", len(args))
		}
		key, err := bulkText(args[0], "key")
		if err != nil {
			return nil, err
		}
		return Get{Key: key}, nil

	case "SET":
		if len(args) != 2 {
			return nil, newInvalidArgument("SET requires 2 arguments, got %d", len(args))
		}
		key, err := bulkText(args[0], "key")
		if err != nil {
			return nil, err
		}
		return Set{Key: key, Value: args[1]}, nil

	case "HGET":
		if len(args) != 2 {
			return nil, newInvalidArgument("HGET requires 2 arguments, got %d", len(args))
		}
		key, err := bulkText(args[0], "key")
		if err != nil {
			return nil, err
		}
		field, err := bulkText(args[1], "field")
		if err != nil {
			return nil, err
		}
		return HGet{Key: key, Field: field}, nil

	case "HSET":
		if len(args) != 3 {
			return nil, newInvalidArgument("HSET requires 3 arguments, got %d", len(args))
		}
		key, err := bulkText(args[0], "key")
		if err != nil {
			return nil, err
		}
		field, err := bulkText(args[1], "field")
		if err != nil {
			return nil, err
		}
		return HSet{Key: key, Field: field, Value: args[2]}, nil

	case "HGETALL":
		if len(args) != 1 {
			return nil, newInvalidArgument("HGETALL requires 1 argument, got %d", len(args))
		}
		key, err := bulkText(args[0], "key")
		if err != nil {
			return nil, err
		}
		return HGetAll{Key: key}, nil

	case "HMGET":
		if len(args) < 2 {
			return nil, newInvalidArgument("HMGET requires a key and at least 1 field")
		}
		key, err := bulkText(args[0], "key")
		if err != nil {
			return nil, err
		}
		fields := make([]string, 0, len(args)-1)
		for _, a := range args[1:] {
			field, err := bulkText(a, "field")
			if err != nil {
				return nil, err
			}
			fields = append(fields, field)
		}
		return HMGet{Key: key, Fields: fields}, nil

	case "ECHO":
		if len(args) != 1 {
			return nil, newInvalidArgument("ECHO requires 1 argument, got %d", len(args))
		}
		message, err := bulkText(args[0], "message")
		if err != nil {
			return nil, err
		}
		return Echo{Message: message}, nil

	case "SADD":
		if len(args) < 2 {
			return nil, newInvalidArgument("SADD requires a key and at least 1 member")
		}
		key, err := bulkText(args[0], "key")
		if err != nil {
			return nil, err
		}
		members := make([][]byte, 0, len(args)-1)
		for _, a := range args[1:] {
			member, err := bulkBytes(a, "member")
			if err != nil {
				return nil, err
			}
			members = append(members, member)
		}
		return SAdd{Key: key, Members: members}, nil

	case "SISMEMBER":
		if len(args) != 2 {
			return nil, newInvalidArgument("SISMEMBER requires 2 arguments, got %d", len(args))
		}
		key, err := bulkText(args[0], "key")
		if err != nil {
			return nil, err
		}
		member, err := bulkBytes(args[1], "member")
		if err != nil {
			return nil, err
		}
		return SIsMember{Key: key, Member: member}, nil

	default:
		return nil, newInvalidCommand("unknown command %q", verb)
	}
}

// bulkText extracts a key/field-shaped argument: must be a non-null
// BulkString holding valid UTF-8.
func bulkText(f resp.Frame, slot string) (string, error) {
	data, err := bulkBytes(f, slot)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", newInvalidArgument("%s must be valid UTF-8", slot)
	}
	return string(data), nil
}

// bulkBytes extracts a member-shaped argument: must be a non-null
// BulkString, with no UTF-8 constraint (set members are opaque bytes).
func bulkBytes(f resp.Frame, slot string) ([]byte, error) {
	bs, ok := f.(resp.BulkString)
	if !ok || !bs.Valid {
		return nil, newInvalidArgument("%s must be a bulk string", slot)
	}
	return bs.Data, nil
}
