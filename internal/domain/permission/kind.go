// Package permission holds the API permission model: the finite set of
// permission kinds, the role catalog that maps role names to kinds, the
// grant scopes, and the resolver that computes a user's permissions from
// role bindings and direct grants.
package permission

import (
	"fmt"
	"sort"
)

// Kind is one of the finite API permission kinds.
type Kind string

const (
	KindReadMetadata     Kind = "read_metadata"
	KindReadEnrollments  Kind = "read_enrollments"
	KindWriteEnrollments Kind = "write_enrollments"
	KindReadReports      Kind = "read_reports"
)

var allKinds = map[Kind]bool{
	KindReadMetadata:     true,
	KindReadEnrollments:  true,
	KindWriteEnrollments: true,
	KindReadReports:      true,
}

// ParseKind validates a raw string against the known permission kinds.
func ParseKind(raw string) (Kind, error) {
	k := Kind(raw)
	if !allKinds[k] {
		return "", fmt.Errorf("unknown permission kind: %q", raw)
	}
	return k, nil
}

func (k Kind) String() string {
	return string(k)
}

// Set is an unordered set of permission kinds.
type Set map[Kind]struct{}

func NewSet(kinds ...Kind) Set {
	s := make(Set, len(kinds))
	for _, k := range kinds {
		s[k] = struct{}{}
	}
	return s
}

func (s Set) Add(k Kind) {
	s[k] = struct{}{}
}

func (s Set) Contains(k Kind) bool {
	_, ok := s[k]
	return ok
}

// Union merges other into s and returns s.
func (s Set) Union(other Set) Set {
	for k := range other {
		s[k] = struct{}{}
	}
	return s
}

func (s Set) Remove(k Kind) {
	delete(s, k)
}

func (s Set) Len() int {
	return len(s)
}

// Clone returns an independent copy of the set.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for k := range s {
		out[k] = struct{}{}
	}
	return out
}

func (s Set) Equal(other Set) bool {
	if len(s) != len(other) {
		return false
	}
	for k := range s {
		if !other.Contains(k) {
			return false
		}
	}
	return true
}

// Kinds returns the members in lexical order, for stable output.
func (s Set) Kinds() []Kind {
	out := make([]Kind, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Strings returns the members in lexical order as plain strings.
func (s Set) Strings() []string {
	kinds := s.Kinds()
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = string(k)
	}
	return out
}
