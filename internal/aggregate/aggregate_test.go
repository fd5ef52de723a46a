package aggregate

import (
	"reflect"
	"testing"
)

type row struct {
	key    string
	parent string
	child  string
}

func rowAccessors() Accessors[row, string, string] {
	return Accessors[row, string, string]{
		Key:     func(r row) string { return r.key },
		Summary: func(r row) string { return r.parent },
		Child:   func(r row) string { return r.child },
	}
}

func TestByGroupsInFirstSeenOrder(t *testing.T) {
	in := []row{
		{key: "A", parent: "alpha", child: "x1"},
		{key: "B", parent: "beta", child: "y1"},
		{key: "A", parent: "alpha", child: "x2"},
	}
	got := By(in, rowAccessors())
	want := []Group[string, string]{
		{Key: "A", Summary: "alpha", Children: []string{"x1", "x2"}},
		{Key: "B", Summary: "beta", Children: []string{"y1"}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("By: got=%+v want=%+v", got, want)
	}
}

func TestByEmptyInput(t *testing.T) {
	for name, in := range map[string][]row{"nil": nil, "empty": {}} {
		got := By(in, rowAccessors())
		if got == nil {
			t.Fatalf("%s: got nil, want empty slice", name)
		}
		if len(got) != 0 {
			t.Fatalf("%s: len=%d want 0", name, len(got))
		}
	}
}

func TestByFallbackKey(t *testing.T) {
	in := []row{
		{key: "", child: "a"},
		{key: "  ", child: "b"},
		{key: "K", child: "c"},
	}

	got := By(in, rowAccessors())
	if keys := Keys(got); !reflect.DeepEqual(keys, []string{Unassigned, "K"}) {
		t.Fatalf("keys: got=%v", keys)
	}
	if !reflect.DeepEqual(got[0].Children, []string{"a", "b"}) {
		t.Fatalf("unassigned children: got=%v", got[0].Children)
	}

	acc := rowAccessors()
	acc.Fallback = "Other Items"
	got = By(in, acc)
	if got[0].Key != "Other Items" {
		t.Fatalf("custom fallback: got=%q", got[0].Key)
	}
}

func TestByFirstSummaryWins(t *testing.T) {
	in := []row{
		{key: "A", parent: "first", child: "1"},
		{key: "A", parent: "second", child: "2"},
	}
	got := By(in, rowAccessors())
	if len(got) != 1 {
		t.Fatalf("groups: got=%d want 1", len(got))
	}
	if got[0].Summary != "first" {
		t.Fatalf("summary: got=%q want %q", got[0].Summary, "first")
	}
}

func TestByNilAccessors(t *testing.T) {
	in := []row{{key: "A"}, {key: "B"}}
	got := By(in, Accessors[row, string, string]{})
	if len(got) != 1 || got[0].Key != Unassigned {
		t.Fatalf("nil key accessor: got=%+v", got)
	}
	if len(got[0].Children) != 2 {
		t.Fatalf("children: got=%d want 2", len(got[0].Children))
	}
}

func TestByProperties(t *testing.T) {
	cases := [][]row{
		{{key: "A", child: "1"}},
		{{key: "A", child: "1"}, {key: "B", child: "2"}, {key: "C", child: "3"}},
		{{key: "B", child: "1"}, {key: "", child: "2"}, {key: "B", child: "3"}, {key: "A", child: "4"}, {key: "", child: "5"}},
		{{key: "A", child: "1"}, {key: "A", child: "2"}, {key: "A", child: "3"}},
	}
	for i, in := range cases {
		acc := rowAccessors()
		groups := By(in, acc)

		distinct := map[string]struct{}{}
		for _, r := range in {
			distinct[acc.key(r)] = struct{}{}
		}
		if len(groups) != len(distinct) {
			t.Fatalf("case %d: groups=%d distinct=%d", i, len(groups), len(distinct))
		}

		// Flattened output must equal a stable partition of the input by
		// first-seen key.
		var want []string
		for _, k := range Keys(groups) {
			for _, r := range in {
				if acc.key(r) == k {
					want = append(want, r.child)
				}
			}
		}
		if got := Flatten(groups); !reflect.DeepEqual(got, want) {
			t.Fatalf("case %d: flatten got=%v want=%v", i, got, want)
		}

		// Regrouping the flattened rows reproduces the grouping.
		var flat []row
		for _, g := range groups {
			for _, c := range g.Children {
				flat = append(flat, row{key: g.Key, parent: g.Summary, child: c})
			}
		}
		if again := By(flat, acc); !reflect.DeepEqual(again, groups) {
			t.Fatalf("case %d: regroup got=%+v want=%+v", i, again, groups)
		}
	}
}
