// Package aggregate groups flat relational rows into ordered parent/children
// view models.
//
// Every screen that receives rows of the form "child + redundant copy of its
// parent" (recipe lines, order line items, permissions) goes through By, so
// ordering and fallback rules are the same everywhere:
//
//   - groups appear in the order their key is first seen;
//   - children keep their relative input order;
//   - an empty key lands in a single fallback group;
//   - the first summary seen for a key wins.
package aggregate

import "strings"

// Unassigned is the fallback key used when a record carries no parent key and
// the caller did not choose another one.
const Unassigned = "unassigned"

// Group is one parent with its children.
type Group[S, C any] struct {
	Key      string `json:"key"`
	Summary  S      `json:"summary"`
	Children []C    `json:"children"`
}

// Accessors tell By how to read a record. Any accessor may be nil: a nil Key
// sends every record to the fallback group, nil Summary and Child produce zero
// values.
type Accessors[R, S, C any] struct {
	Key     func(R) string
	Summary func(R) S
	Child   func(R) C
	// Fallback replaces Unassigned as the key for records with an empty key.
	Fallback string
}

func (a Accessors[R, S, C]) fallback() string {
	if f := strings.TrimSpace(a.Fallback); f != "" {
		return f
	}
	return Unassigned
}

func (a Accessors[R, S, C]) key(r R) string {
	if a.Key == nil {
		return a.fallback()
	}
	k := strings.TrimSpace(a.Key(r))
	if k == "" {
		return a.fallback()
	}
	return k
}

// By groups records. The result is never nil.
func By[R, S, C any](records []R, acc Accessors[R, S, C]) []Group[S, C] {
	out := make([]Group[S, C], 0)
	if len(records) == 0 {
		return out
	}
	index := make(map[string]int, len(records))
	for _, r := range records {
		k := acc.key(r)
		i, seen := index[k]
		if !seen {
			var summary S
			if acc.Summary != nil {
				summary = acc.Summary(r)
			}
			out = append(out, Group[S, C]{Key: k, Summary: summary, Children: make([]C, 0, 1)})
			i = len(out) - 1
			index[k] = i
		}
		var child C
		if acc.Child != nil {
			child = acc.Child(r)
		}
		out[i].Children = append(out[i].Children, child)
	}
	return out
}

// Flatten concatenates the children of each group in group order.
func Flatten[S, C any](groups []Group[S, C]) []C {
	n := 0
	for _, g := range groups {
		n += len(g.Children)
	}
	out := make([]C, 0, n)
	for _, g := range groups {
		out = append(out, g.Children...)
	}
	return out
}

// Keys returns the group keys in order.
func Keys[S, C any](groups []Group[S, C]) []string {
	out := make([]string, 0, len(groups))
	for _, g := range groups {
		out = append(out, g.Key)
	}
	return out
}
