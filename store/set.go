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

package store

// orderedSet is the skv container's element type: an insertion-ordered,
// duplicate-free sequence of opaque byte-sequence members.
type orderedSet struct {
	order []string
	index map[string]struct{}
}

// add inserts members not already present, preserving the order members
// were given in (and, across calls, the order they first appeared). It
// returns the count of members that were actually new, which is exactly
// SADD's reply value.
func (s *orderedSet) add(members ...string) int64 {
	if s.index == nil {
		s.index = make(map[string]struct{}, len(members))
	}
	var added int64
	for _, m := range members {
		if _, ok := s.index[m]; ok {
			continue
		}
		s.index[m] = struct{}{}
		s.order = append(s.order, m)
		added++
	}
	return added
}

func (s *orderedSet) has(member string) bool {
	_, ok := s.index[member]
	return ok
}
