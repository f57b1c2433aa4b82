package syntax

import (
	"errors"
	"testing"

	"github.com/jclyne/pattern-scanner/expr"
)

func matches(e *expr.Expr, input string) bool {
	for _, c := range input {
		e = e.Derive(c)
	}
	return e.Nullable()
}

func TestParseMembership(t *testing.T) {
	tests := []struct {
		pattern string
		yes     []string
		no      []string
	}{
		{"abc", []string{"abc"}, []string{"", "ab", "abcd"}},
		{"a|b|c", []string{"a", "b", "c"}, []string{"", "ab"}},
		{"ab*", []string{"a", "ab", "abbb"}, []string{"", "b", "ba"}},
		{"ab+", []string{"ab", "abb"}, []string{"a", "b"}},
		{"ab?", []string{"a", "ab"}, []string{"", "abb"}},
		{"(ab)+", []string{"ab", "abab"}, []string{"", "a", "aba"}},
		{".", []string{"a", "%"}, []string{"", "ab"}},
		{"a.c", []string{"abc", "axc"}, []string{"ac", "abxc"}},
		{"[abc]", []string{"a", "b", "c"}, []string{"", "d"}},
		{"[a-c]x", []string{"ax", "cx"}, []string{"dx", "x"}},
		{"[^abc]", []string{"d", "z", "0"}, []string{"a", "b", "c", ""}},
		{"[0-9]{3}", []string{"123", "000"}, []string{"12", "1234", "abc"}},
		{"[0-9]{1,3}", []string{"1", "12", "123"}, []string{"", "1234"}},
		{"x{2}", []string{"xx"}, []string{"x", "xxx"}},
		{`\d\d`, []string{"42"}, []string{"4", "4x"}},
		{`\D`, []string{"x", "-"}, []string{"0", "9", ""}},
		{`\s`, []string{" ", "\t", "\n"}, []string{"x", ""}},
		{`\S`, []string{"x", "0"}, []string{" ", "\t", ""}},
		{`\w+`, []string{"a", "foo_9"}, []string{"", "a b", "-"}},
		{`\a`, []string{"q", "Z"}, []string{"0", "_", ""}},
		{`\x`, []string{"0", "9", "a", "F"}, []string{"g", "-"}},
		{"[[:digit:]]", []string{"7"}, []string{"x", ""}},
		{"[[:upper:][:digit:]]", []string{"A", "7"}, []string{"a", ""}},
		{"[[:alpha:]]{2}", []string{"ab", "XY"}, []string{"a1", "a"}},
		{`a\.b`, []string{"a.b"}, []string{"axb"}},
		{`\n`, []string{"\n"}, []string{"n", " "}},
		{`\\`, []string{`\`}, []string{"", "x"}},
		{"1[^13]", []string{"12", "1x"}, []string{"11", "13", "1"}},
		{"", []string{""}, []string{"a"}},
		{"()", []string{""}, []string{"a"}},
		{"[a-z]{-}[aeiou]", []string{"b", "z"}, []string{"a", "e", "u", "A"}},
		{"[a-c]{+}[x-z]", []string{"a", "y"}, []string{"d", "w"}},
		{"[^a-z]{-}[0-9]", []string{"A", "-"}, []string{"a", "5"}},
		{"[^abc]{+}[b]", []string{"b", "x"}, []string{"a", "c"}},
		{`\d{-}[0-4]`, []string{"5", "9"}, []string{"0", "4", "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			e, err := Parse(tt.pattern)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.pattern, err)
			}
			for _, s := range tt.yes {
				if !matches(e, s) {
					t.Errorf("%q should match %q", tt.pattern, s)
				}
			}
			for _, s := range tt.no {
				if matches(e, s) {
					t.Errorf("%q should not match %q", tt.pattern, s)
				}
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
	}{
		{"unbalanced group", "(ab"},
		{"stray close", "ab)"},
		{"unclosed class", "[abc"},
		{"dangling star", "*a"},
		{"dangling plus", "+"},
		{"trailing backslash", `ab\`},
		{"bad posix name", "[[:bogus:]]"},
		{"unterminated posix", "[[:digit]"},
		{"bad repetition", "a{,3}"},
		{"unclosed repetition", "a{2"},
		{"inverted repetition", "a{3,2}"},
		{"huge repetition", "a{100000}"},
		{"set op on non-class", "(ab){-}[cd]"},
		{"set op missing operand", "[ab]{-}(cd)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.pattern); err == nil {
				t.Errorf("Parse(%q) succeeded, want error", tt.pattern)
			}
		})
	}
}

func TestParseRangeErrors(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
	}{
		{"inverted range", "[z-a]"},
		{"empty range", "[a-a]"},
		{"class as low endpoint", `[\d-z]`},
		{"class as high endpoint", `[a-\d]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.pattern)
			var rangeErr *RangeError
			if !errors.As(err, &rangeErr) {
				t.Errorf("Parse(%q) = %v, want *RangeError", tt.pattern, err)
			}
		})
	}
}

func TestParseErrorPosition(t *testing.T) {
	_, err := Parse("ab(cd")
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("want *ParseError, got %v", err)
	}
	if parseErr.Pattern != "ab(cd" {
		t.Errorf("error pattern = %q", parseErr.Pattern)
	}
}

func TestParseLiteralBrackets(t *testing.T) {
	// ']' is a literal as the first class member; '-' is a literal at the
	// class edge.
	tests := []struct {
		pattern string
		yes     []string
		no      []string
	}{
		{"[]a]", []string{"]", "a"}, []string{"x"}},
		{"[a-]", []string{"a", "-"}, []string{"b"}},
		{"[-a]", []string{"a", "-"}, []string{"b"}},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			e, err := Parse(tt.pattern)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.pattern, err)
			}
			for _, s := range tt.yes {
				if !matches(e, s) {
					t.Errorf("%q should match %q", tt.pattern, s)
				}
			}
			for _, s := range tt.no {
				if matches(e, s) {
					t.Errorf("%q should not match %q", tt.pattern, s)
				}
			}
		})
	}
}
