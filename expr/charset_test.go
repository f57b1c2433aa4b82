package expr

import "testing"

func set(ranges ...RuneRange) CharSet {
	return NewCharSet(ranges...)
}

func TestCharSetContains(t *testing.T) {
	cs := set(RuneRange{'0', '9'}, RuneRange{'a', 'f'})
	for _, c := range "0159af" {
		if !cs.Contains(c) {
			t.Errorf("Contains(%q) = false, want true", c)
		}
	}
	for _, c := range "/:`g A" {
		if cs.Contains(c) {
			t.Errorf("Contains(%q) = true, want false", c)
		}
	}
}

func TestCharSetUnionMergesAdjacent(t *testing.T) {
	cs := set(RuneRange{'a', 'f'}).Union(set(RuneRange{'g', 'z'}))
	if got := len(cs.Ranges()); got != 1 {
		t.Fatalf("adjacent ranges not merged: %d ranges %v", got, cs.Ranges())
	}
	if r := cs.Ranges()[0]; r.Lo != 'a' || r.Hi != 'z' {
		t.Errorf("merged range = %v, want a-z", r)
	}
}

func TestCharSetUnionOverlap(t *testing.T) {
	cs := set(RuneRange{'a', 'm'}).Union(set(RuneRange{'h', 'z'}, RuneRange{'0', '3'}))
	want := set(RuneRange{'0', '3'}, RuneRange{'a', 'z'})
	if !cs.Equal(want) {
		t.Errorf("union = %v, want %v", cs, want)
	}
}

func TestCharSetIntersect(t *testing.T) {
	tests := []struct {
		name string
		a, b CharSet
		want CharSet
	}{
		{"disjoint", set(RuneRange{'a', 'f'}), set(RuneRange{'x', 'z'}), CharSet{}},
		{"overlap", set(RuneRange{'a', 'm'}), set(RuneRange{'h', 'z'}), set(RuneRange{'h', 'm'})},
		{"contained", set(RuneRange{'a', 'z'}), set(RuneRange{'c', 'e'}), set(RuneRange{'c', 'e'})},
		{"multi", set(RuneRange{'0', '9'}, RuneRange{'a', 'z'}), set(RuneRange{'5', 'c'}), set(RuneRange{'5', '9'}, RuneRange{'a', 'c'})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Intersect(tt.b); !got.Equal(tt.want) {
				t.Errorf("%v ∩ %v = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestCharSetDiff(t *testing.T) {
	tests := []struct {
		name string
		a, b CharSet
		want CharSet
	}{
		{"disjoint", set(RuneRange{'a', 'f'}), set(RuneRange{'x', 'z'}), set(RuneRange{'a', 'f'})},
		{"split", set(RuneRange{'a', 'z'}), set(RuneRange{'h', 'm'}), set(RuneRange{'a', 'g'}, RuneRange{'n', 'z'})},
		{"all", set(RuneRange{'a', 'f'}), set(RuneRange{'a', 'f'}), CharSet{}},
		{"left edge", set(RuneRange{'a', 'z'}), set(RuneRange{'a', 'c'}), set(RuneRange{'d', 'z'})},
		{"right edge", set(RuneRange{'a', 'z'}), set(RuneRange{'x', 'z'}), set(RuneRange{'a', 'w'})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Diff(tt.b); !got.Equal(tt.want) {
				t.Errorf("%v ∖ %v = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestCharSetLen(t *testing.T) {
	cs := set(RuneRange{'0', '9'}, RuneRange{'a', 'a'})
	if got := cs.Len(); got != 11 {
		t.Errorf("Len = %d, want 11", got)
	}
	if !EmptyCharSet().IsEmpty() {
		t.Error("EmptyCharSet not empty")
	}
}

func TestCharSetAppendRunes(t *testing.T) {
	got := string(set(RuneRange{'a', 'c'}, RuneRange{'x', 'x'}).AppendRunes(nil))
	if got != "abcx" {
		t.Errorf("AppendRunes = %q, want %q", got, "abcx")
	}
}
