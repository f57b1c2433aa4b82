// Package syntax parses the scanner's POSIX-like pattern syntax into the
// expression algebra.
//
// Supported syntax: alternation `|`, grouping `()`, postfix `* + ?`,
// counted repetition `{m}` and `{m,n}`, `.` for any character, bracket
// classes with negation and ranges, the POSIX class names ([:digit:],
// [:alpha:], ...) and their shorthand escapes (\d, \w, \s, ...), class set
// difference `{-}` and union `{+}`, and the control escapes \b \f \n \r \t.
//
// Character classes are lowered to the pure algebra: a positive class
// becomes an alternation of symbols and a negated class becomes the
// intersection of Any with the complement of that alternation.
package syntax

import (
	"fmt"

	"github.com/jclyne/pattern-scanner/expr"
)

// maxRepeat bounds counted repetition so a typo cannot explode the
// expression tree.
const maxRepeat = 1000

// Parse compiles a pattern into an expression. It returns *ParseError for
// malformed syntax and *RangeError for invalid bracket ranges.
func Parse(pattern string) (*expr.Expr, error) {
	p := &parser{pattern: pattern, src: []rune(pattern)}
	e, err := p.alternation()
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.src) {
		return nil, p.errf("unexpected %q", string(p.src[p.pos]))
	}
	return e, nil
}

// classVal is a character class before lowering: a rune set, possibly
// negated. Keeping the negation symbolic lets the set operators stay closed
// without enumerating complements.
type classVal struct {
	neg bool
	set expr.CharSet
}

func lowerClass(cv classVal) *expr.Expr {
	syms := expr.EmptySet
	for _, c := range cv.set.AppendRunes(nil) {
		syms = expr.Or(syms, expr.Sym(c))
	}
	if !cv.neg {
		return syms
	}
	return expr.And(expr.Any, expr.Not(syms))
}

type parser struct {
	pattern string
	src     []rune
	pos     int
}

func (p *parser) errf(format string, args ...interface{}) error {
	return &ParseError{Pattern: p.pattern, Pos: p.pos, Message: fmt.Sprintf(format, args...)}
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *parser) peek() rune {
	return p.src[p.pos]
}

func (p *parser) peekAt(off int) (rune, bool) {
	if p.pos+off >= len(p.src) {
		return 0, false
	}
	return p.src[p.pos+off], true
}

func (p *parser) next() rune {
	c := p.src[p.pos]
	p.pos++
	return c
}

func (p *parser) alternation() (*expr.Expr, error) {
	e, err := p.concat()
	if err != nil {
		return nil, err
	}
	for !p.eof() && p.peek() == '|' {
		p.next()
		rhs, err := p.concat()
		if err != nil {
			return nil, err
		}
		e = expr.Or(e, rhs)
	}
	return e, nil
}

func (p *parser) concat() (*expr.Expr, error) {
	e := expr.EmptyString
	for !p.eof() && p.peek() != '|' && p.peek() != ')' {
		t, err := p.term()
		if err != nil {
			return nil, err
		}
		e = expr.Concat(e, t)
	}
	return e, nil
}

// term parses one atom with its class set operators and postfix repetition
// operators applied.
func (p *parser) term() (*expr.Expr, error) {
	e, cls, err := p.atom()
	if err != nil {
		return nil, err
	}

	for cls != nil {
		op, ok := p.peekSetOp()
		if !ok {
			break
		}
		p.pos += 3 // consume {-} or {+}
		_, rhs, err := p.atom()
		if err != nil {
			return nil, err
		}
		if rhs == nil {
			return nil, p.errf("right operand of {%c} is not a character class", op)
		}
		combined := combineClass(*cls, op, *rhs)
		cls = &combined
	}
	if cls != nil {
		e = lowerClass(*cls)
	}

	for !p.eof() {
		switch p.peek() {
		case '*':
			p.next()
			e = expr.Star(e)
		case '+':
			p.next()
			e = expr.Concat(e, expr.Star(e))
		case '?':
			p.next()
			e = expr.Or(e, expr.EmptyString)
		case '{':
			if _, ok := p.peekSetOp(); ok {
				return nil, p.errf("set operator applied to a non-class expression")
			}
			var err error
			e, err = p.repetition(e)
			if err != nil {
				return nil, err
			}
		default:
			return e, nil
		}
	}
	return e, nil
}

func (p *parser) peekSetOp() (rune, bool) {
	if c, ok := p.peekAt(0); !ok || c != '{' {
		return 0, false
	}
	op, ok := p.peekAt(1)
	if !ok || (op != '-' && op != '+') {
		return 0, false
	}
	if c, ok := p.peekAt(2); !ok || c != '}' {
		return 0, false
	}
	return op, true
}

// repetition parses {m} or {m,n} and expands it structurally: the mandatory
// part as m copies, the optional tail as n-m copies of (e|ε).
func (p *parser) repetition(e *expr.Expr) (*expr.Expr, error) {
	p.next() // '{'
	m, err := p.number()
	if err != nil {
		return nil, err
	}
	n := m
	if !p.eof() && p.peek() == ',' {
		p.next()
		n, err = p.number()
		if err != nil {
			return nil, err
		}
	}
	if p.eof() || p.peek() != '}' {
		return nil, p.errf("missing '}' in repetition")
	}
	p.next()
	if n < m {
		return nil, p.errf("invalid repetition bound {%d,%d}", m, n)
	}

	out := expr.EmptyString
	for i := 0; i < m; i++ {
		out = expr.Concat(out, e)
	}
	opt := expr.Or(e, expr.EmptyString)
	for i := m; i < n; i++ {
		out = expr.Concat(out, opt)
	}
	return out, nil
}

func (p *parser) number() (int, error) {
	if p.eof() || p.peek() < '0' || p.peek() > '9' {
		return 0, p.errf("expected a number in repetition")
	}
	n := 0
	for !p.eof() && p.peek() >= '0' && p.peek() <= '9' {
		n = n*10 + int(p.next()-'0')
		if n > maxRepeat {
			return 0, p.errf("repetition bound exceeds %d", maxRepeat)
		}
	}
	return n, nil
}

// atom parses a single grouping, class, escape or literal. Exactly one of
// the returned expression and class is non-nil.
func (p *parser) atom() (*expr.Expr, *classVal, error) {
	if p.eof() {
		return nil, nil, p.errf("unexpected end of pattern")
	}
	switch c := p.peek(); c {
	case '(':
		p.next()
		e, err := p.alternation()
		if err != nil {
			return nil, nil, err
		}
		if p.eof() || p.peek() != ')' {
			return nil, nil, p.errf("missing ')'")
		}
		p.next()
		return e, nil, nil
	case '.':
		p.next()
		return expr.Any, nil, nil
	case '[':
		cv, err := p.bracket()
		if err != nil {
			return nil, nil, err
		}
		return nil, cv, nil
	case '\\':
		p.next()
		lit, cls, err := p.escape()
		if err != nil {
			return nil, nil, err
		}
		if cls != nil {
			return nil, cls, nil
		}
		return expr.Sym(lit), nil, nil
	case '*', '+', '?':
		return nil, nil, p.errf("repetition operator %q with nothing to repeat", string(c))
	case '{':
		return nil, nil, p.errf("unexpected '{'")
	default:
		p.next()
		return expr.Sym(c), nil, nil
	}
}

// escape handles the character after a backslash: a control escape, a
// shorthand class, or a meta-escape of the character itself.
func (p *parser) escape() (rune, *classVal, error) {
	if p.eof() {
		return 0, nil, p.errf("trailing backslash")
	}
	c := p.next()
	if lit, ok := controlEscapes[c]; ok {
		return lit, nil, nil
	}
	if sh, ok := shorthandClasses[c]; ok {
		return 0, &classVal{neg: sh.neg, set: posixClasses[sh.name]}, nil
	}
	return c, nil, nil
}

// bracket parses a [...] class including negation, ranges, POSIX names and
// escapes.
func (p *parser) bracket() (*classVal, error) {
	start := p.pos
	p.next() // '['
	cv := &classVal{}
	if !p.eof() && p.peek() == '^' {
		p.next()
		cv.neg = true
	}

	first := true
	for {
		if p.eof() {
			p.pos = start
			return nil, p.errf("missing closing ']'")
		}
		if p.peek() == ']' && !first {
			p.next()
			return cv, nil
		}
		first = false

		// POSIX class name, e.g. [:digit:].
		if c, _ := p.peekAt(0); c == '[' {
			if c2, ok := p.peekAt(1); ok && c2 == ':' {
				set, err := p.posixName()
				if err != nil {
					return nil, err
				}
				cv.set = cv.set.Union(set)
				continue
			}
		}

		lo, loSet, err := p.classItem()
		if err != nil {
			return nil, err
		}
		if loSet != nil {
			// A class escape inside a bracket unions in; it cannot be a
			// range endpoint.
			if p.rangeFollows() {
				return nil, &RangeError{Pattern: p.pattern, Pos: p.pos,
					Message: "range endpoint is not a literal symbol"}
			}
			if loSet.neg {
				return nil, p.errf("negated class escape inside brackets")
			}
			cv.set = cv.set.Union(loSet.set)
			continue
		}

		if !p.rangeFollows() {
			cv.set = cv.set.Union(expr.SingleChar(lo))
			continue
		}
		p.next() // '-'
		hiPos := p.pos
		hi, hiSet, err := p.classItem()
		if err != nil {
			return nil, err
		}
		if hiSet != nil {
			return nil, &RangeError{Pattern: p.pattern, Pos: hiPos,
				Message: "range endpoint is not a literal symbol"}
		}
		if hi <= lo {
			return nil, &RangeError{Pattern: p.pattern, Pos: hiPos, Lo: lo, Hi: hi,
				Message: fmt.Sprintf("range %q-%q is empty", string(lo), string(hi))}
		}
		cv.set = cv.set.Union(expr.NewCharSet(expr.RuneRange{Lo: lo, Hi: hi}))
	}
}

// rangeFollows reports whether the next runes begin a range body: a '-'
// that is not the final character before ']'.
func (p *parser) rangeFollows() bool {
	if c, ok := p.peekAt(0); !ok || c != '-' {
		return false
	}
	c, ok := p.peekAt(1)
	return ok && c != ']'
}

// classItem parses one bracket item: a literal, an escaped literal, or a
// shorthand class.
func (p *parser) classItem() (rune, *classVal, error) {
	c := p.next()
	if c != '\\' {
		return c, nil, nil
	}
	lit, cls, err := p.escape()
	if err != nil {
		return 0, nil, err
	}
	return lit, cls, nil
}

// posixName parses [:name:] inside a bracket class.
func (p *parser) posixName() (expr.CharSet, error) {
	start := p.pos
	p.pos += 2 // consume '[:'
	nameStart := p.pos
	for !p.eof() && p.peek() != ':' {
		p.pos++
	}
	name := string(p.src[nameStart:p.pos])
	if p.eof() {
		p.pos = start
		return expr.CharSet{}, p.errf("unterminated POSIX class")
	}
	p.next() // ':'
	if p.eof() || p.peek() != ']' {
		p.pos = start
		return expr.CharSet{}, p.errf("unterminated POSIX class")
	}
	p.next() // ']'
	set, ok := posixClasses[name]
	if !ok {
		p.pos = start
		return expr.CharSet{}, p.errf("unknown POSIX class [:%s:]", name)
	}
	return set, nil
}

// combineClass applies a set operator to two classes. Negation is kept
// symbolic so the operators stay closed:
//
//	A  {-} B  = A ∖ B          A  {+} B  = A ∪ B
//	¬A {-} B  = ¬(A ∪ B)       ¬A {+} B  = ¬(A ∖ B)
//	A  {-} ¬B = A ∩ B          A  {+} ¬B = ¬(B ∖ A)
//	¬A {-} ¬B = B ∖ A          ¬A {+} ¬B = ¬(A ∩ B)
func combineClass(a classVal, op rune, b classVal) classVal {
	diff := op == '-'
	switch {
	case !a.neg && !b.neg:
		if diff {
			return classVal{set: a.set.Diff(b.set)}
		}
		return classVal{set: a.set.Union(b.set)}
	case a.neg && !b.neg:
		if diff {
			return classVal{neg: true, set: a.set.Union(b.set)}
		}
		return classVal{neg: true, set: a.set.Diff(b.set)}
	case !a.neg && b.neg:
		if diff {
			return classVal{set: a.set.Intersect(b.set)}
		}
		return classVal{neg: true, set: b.set.Diff(a.set)}
	default:
		if diff {
			return classVal{set: b.set.Diff(a.set)}
		}
		return classVal{neg: true, set: a.set.Intersect(b.set)}
	}
}
