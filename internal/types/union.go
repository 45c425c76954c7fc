package types

import (
	"sort"
	"strings"
)

// UnionType represents "one of several possible types". Construct only via
// Union(), which maintains the invariants: at least two members, no nested
// unions, no duplicates, members sorted by canonical rendering.
type UnionType struct {
	Members []Type
}

func (u *UnionType) String() string {
	parts := make([]string, len(u.Members))
	for i, m := range u.Members {
		parts[i] = m.String()
	}
	return strings.Join(parts, "|")
}

func (u *UnionType) isType() {}

// Equals is order-insensitive set equality; members are kept sorted, so a
// pairwise walk suffices.
func (u *UnionType) Equals(other Type) bool {
	o, ok := other.(*UnionType)
	if !ok || len(u.Members) != len(o.Members) {
		return false
	}
	for i := range u.Members {
		if !u.Members[i].Equals(o.Members[i]) {
			return false
		}
	}
	return true
}

// Union builds a normalized union: nested unions are flattened, duplicates
// collapse, never-members vanish. An empty result is never, a single member
// is returned unwrapped, and any unknown member absorbs the whole union.
func Union(members ...Type) Type {
	flat := make([]Type, 0, len(members))
	for _, m := range members {
		flat = appendFlattened(flat, m)
	}

	dedup := make([]Type, 0, len(flat))
	for _, m := range flat {
		if IsNever(m) {
			continue
		}
		if IsUnknown(m) {
			return Unknown
		}
		duplicate := false
		for _, seen := range dedup {
			if seen.Equals(m) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			dedup = append(dedup, m)
		}
	}

	switch len(dedup) {
	case 0:
		return Never
	case 1:
		return dedup[0]
	}

	sort.SliceStable(dedup, func(i, j int) bool {
		return dedup[i].String() < dedup[j].String()
	})
	return &UnionType{Members: dedup}
}

func appendFlattened(into []Type, t Type) []Type {
	if t == nil {
		return into
	}
	if u, ok := t.(*UnionType); ok {
		for _, m := range u.Members {
			into = appendFlattened(into, m)
		}
		return into
	}
	return append(into, t)
}

// Members returns t's union members, or t itself as a one-element slice.
func Members(t Type) []Type {
	if u, ok := t.(*UnionType); ok {
		return u.Members
	}
	return []Type{t}
}

// FilterMembers rebuilds t keeping only members for which keep returns true.
func FilterMembers(t Type, keep func(Type) bool) Type {
	members := Members(t)
	kept := make([]Type, 0, len(members))
	for _, m := range members {
		if keep(m) {
			kept = append(kept, m)
		}
	}
	return Union(kept...)
}

// ContainsMember reports whether any member of t satisfies pred.
func ContainsMember(t Type, pred func(Type) bool) bool {
	for _, m := range Members(t) {
		if pred(m) {
			return true
		}
	}
	return false
}
