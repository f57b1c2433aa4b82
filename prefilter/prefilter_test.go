package prefilter

import (
	"testing"

	"github.com/jclyne/pattern-scanner/expr"
	"github.com/jclyne/pattern-scanner/syntax"
)

func vectorOf(t *testing.T, patterns ...string) expr.Vector {
	t.Helper()
	var v expr.Vector
	for _, p := range patterns {
		e, err := syntax.Parse(p)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", p, err)
		}
		v = append(v, e)
	}
	return v
}

func TestFromVectorLiterals(t *testing.T) {
	p := FromVector(vectorOf(t, "foo", "bar|baz"))
	if p == nil {
		t.Fatal("literal patterns produced no prefilter")
	}
	if got := len(p.Literals()); got != 3 {
		t.Fatalf("literal set = %v, want foo/bar/baz", p.Literals())
	}

	tests := []struct {
		input string
		want  bool
	}{
		{"say foo here", true},
		{"barely", true},
		{"bazinga", true},
		{"nothing relevant", false},
		{"", false},
		{"fo ba", false},
	}
	for _, tt := range tests {
		if got := p.CanMatch([]byte(tt.input)); got != tt.want {
			t.Errorf("CanMatch(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestFromVectorClassPrefix(t *testing.T) {
	p := FromVector(vectorOf(t, "4[0-9]{3}"))
	if p == nil {
		t.Fatal("class-tailed literal produced no prefilter")
	}
	if !p.CanMatch([]byte("card 4711")) {
		t.Error("CanMatch missed 47")
	}
	if p.CanMatch([]byte("no digits after four: 4x")) {
		t.Error("CanMatch matched without a 4-digit pair")
	}
}

func TestFromVectorUnfilterable(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
	}{
		{"leading any", []string{".x"}},
		{"leading star", []string{"a*b", "foo"}},
		{"leading class complement", []string{"[^a]b"}},
		{"nullable pattern", []string{"a?"}},
		{"empty vector", nil},
		{"wide class", []string{"[[:print:]]x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if p := FromVector(vectorOf(t, tt.patterns...)); p != nil {
				t.Errorf("FromVector = %v, want nil", p.Literals())
			}
		})
	}
}

func TestFromVectorNullableHeadUnionsTail(t *testing.T) {
	// (x|ε)ab can start with x or a.
	p := FromVector(vectorOf(t, "x?ab"))
	if p == nil {
		t.Fatal("optional head produced no prefilter")
	}
	if !p.CanMatch([]byte("xab")) || !p.CanMatch([]byte("...ab...")) {
		t.Error("CanMatch missed a required prefix")
	}
	if p.CanMatch([]byte("zzz")) {
		t.Error("CanMatch matched with no prefix present")
	}
}
