// Package prefilter builds a multi-literal pre-scan for a pattern vector.
//
// When every pattern in the vector is guaranteed to begin with one of a
// small set of literals, an Aho-Corasick automaton over those literals can
// reject inputs wholesale without ever driving the DFA. Patterns that can
// start with an arbitrary character (classes under complement, leading
// stars, Any) disable the prefilter.
package prefilter

import (
	"github.com/coregx/ahocorasick"

	"github.com/jclyne/pattern-scanner/expr"
)

const (
	// maxLiterals bounds the literal set; beyond it the automaton stops
	// paying for itself.
	maxLiterals = 64

	// maxLiteralLen bounds individual literal growth during concatenation
	// crossing.
	maxLiteralLen = 16
)

// Prefilter answers "can this input contain any match at all" using the
// required literal prefixes of the pattern vector.
type Prefilter struct {
	automaton *ahocorasick.Automaton
	literals  []string
}

// FromVector extracts required literal prefixes from every coordinate and
// builds the automaton. It returns nil when any coordinate has no required
// prefix or the literal set grows past its cap; callers fall back to the
// plain DFA scan.
func FromVector(vector expr.Vector) *Prefilter {
	if len(vector) == 0 {
		return nil
	}
	seen := make(map[string]bool)
	var all []string
	for _, e := range vector {
		if e.Nullable() {
			// A nullable pattern matches the empty string at every
			// position; no literal is required.
			return nil
		}
		set := prefixes(e)
		if !set.ok || len(set.lits) == 0 {
			return nil
		}
		for _, lit := range set.lits {
			if lit == "" {
				return nil
			}
			if !seen[lit] {
				seen[lit] = true
				all = append(all, lit)
			}
		}
		if len(all) > maxLiterals {
			return nil
		}
	}

	builder := ahocorasick.NewBuilder()
	for _, lit := range all {
		builder.AddPattern([]byte(lit))
	}
	automaton, err := builder.Build()
	if err != nil {
		return nil
	}
	return &Prefilter{automaton: automaton, literals: all}
}

// CanMatch reports whether data contains at least one required literal.
// A false result proves no pattern can match anywhere in data.
func (p *Prefilter) CanMatch(data []byte) bool {
	return p.automaton.IsMatch(data)
}

// Literals returns the extracted literal set, for diagnostics.
func (p *Prefilter) Literals() []string {
	return p.literals
}

// litSet is a set of literal prefixes for an expression. ok means every
// string of the language starts with one of the literals; exact
// additionally means the literals are the whole language.
type litSet struct {
	lits  []string
	exact bool
	ok    bool
}

var noPrefix = litSet{}

// prefixes computes required literal prefixes bottom-up.
func prefixes(e *expr.Expr) litSet {
	switch e.Op() {
	case expr.OpEmptyString:
		// Only the empty string; contributes no literal of its own but
		// does not invalidate an enclosing union.
		return litSet{exact: true, ok: true}
	case expr.OpSymbol:
		return litSet{lits: []string{string(e.Rune())}, exact: true, ok: true}
	case expr.OpConcat:
		sub := e.Operands()
		head := prefixes(sub[0])
		if !head.ok {
			return noPrefix
		}
		if sub[0].Nullable() {
			// The first operand may match empty, so a prefix can come from
			// either side.
			tail := prefixes(sub[1])
			if !tail.ok {
				return noPrefix
			}
			return litSet{lits: unionLits(head.lits, tail.lits), ok: true}
		}
		if head.exact && !sub[1].Nullable() {
			// The head is a finite set of full literals and the tail always
			// consumes input; extend into the tail for longer, more
			// selective prefixes.
			tail := prefixes(sub[1])
			if tail.ok {
				if crossed, ok := crossLits(head.lits, tail.lits); ok {
					return litSet{lits: crossed, exact: tail.exact, ok: true}
				}
			}
		}
		return litSet{lits: head.lits, ok: true}
	case expr.OpOr:
		sub := e.Operands()
		l, r := prefixes(sub[0]), prefixes(sub[1])
		if !l.ok || !r.ok {
			return noPrefix
		}
		return litSet{lits: unionLits(l.lits, r.lits), exact: l.exact && r.exact, ok: true}
	case expr.OpAnd:
		// A match is in both languages; either side's required prefixes
		// apply.
		sub := e.Operands()
		if l := prefixes(sub[0]); l.ok {
			return litSet{lits: l.lits, ok: true}
		}
		if r := prefixes(sub[1]); r.ok {
			return litSet{lits: r.lits, ok: true}
		}
		return noPrefix
	default:
		// EmptySet, Any, Star, Not: no required prefix.
		return noPrefix
	}
}

func unionLits(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	var out []string
	for _, s := range a {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	for _, s := range b {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// crossLits concatenates every head literal with every tail literal,
// refusing combinations that overflow the caps.
func crossLits(heads, tails []string) ([]string, bool) {
	if len(heads)*len(tails) > maxLiterals {
		return nil, false
	}
	out := make([]string, 0, len(heads)*len(tails))
	for _, h := range heads {
		for _, t := range tails {
			lit := h + t
			if len(lit) > maxLiteralLen {
				return nil, false
			}
			out = append(out, lit)
		}
	}
	return out, true
}
