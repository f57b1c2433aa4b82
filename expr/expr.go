// Package expr implements the regular-expression algebra the scanner engine
// is built on.
//
// Expressions are immutable values constructed exclusively through the smart
// constructors in this package. The constructors normalize eagerly: unit and
// zero laws for concatenation, idempotence and unit/zero laws for union and
// intersection, star and double-negation collapse, and a canonical operand
// order for the commutative operators. Two expressions that are equal under
// the algebraic laws therefore carry the same canonical key, so expression
// equality (and with it derivative equivalence) is a plain string compare.
// This is what keeps the DFA state space finite: every state is identified
// by the canonical key of its source expression vector.
//
// The derivative operator comes in two forms: Derive computes the Brzozowski
// derivative with respect to a single rune, and DeriveClasses partitions the
// whole alphabet into finitely many classes with distinct successors.
package expr

import (
	"hash/fnv"
	"sort"
	"strconv"
	"strings"
)

// Op discriminates the expression variants.
type Op uint8

const (
	// OpEmptySet matches no string at all.
	OpEmptySet Op = iota
	// OpEmptyString matches only the empty input.
	OpEmptyString
	// OpAny matches exactly one arbitrary rune.
	OpAny
	// OpSymbol matches exactly one specific rune.
	OpSymbol
	// OpConcat matches the concatenation of its two operands.
	OpConcat
	// OpOr matches either operand.
	OpOr
	// OpAnd matches strings in both operands.
	OpAnd
	// OpStar matches zero or more repetitions of its operand.
	OpStar
	// OpNot matches every string its operand does not.
	OpNot
)

// Expr is an immutable regular expression in canonical form.
//
// All values are created by the package-level constructors; the zero value
// is not a valid expression. Expressions may be shared freely across
// goroutines.
type Expr struct {
	op  Op
	ch  rune    // OpSymbol only
	sub []*Expr // operands: 1 for Star/Not, 2 for Concat/Or/And

	key      string // canonical encoding, computed at construction
	nullable bool
	final    bool
}

// Process-wide sentinels. These are the only instances of their variants
// produced by the constructors.
var (
	// EmptySet matches no string; the canonical dead expression.
	EmptySet = &Expr{op: OpEmptySet, key: "0", final: true}

	// EmptyString matches only the empty input.
	EmptyString = &Expr{op: OpEmptyString, key: "e", nullable: true}

	// Any matches exactly one arbitrary rune.
	Any = &Expr{op: OpAny, key: "."}
)

// Sym returns the expression matching exactly the rune c.
func Sym(c rune) *Expr {
	return &Expr{
		op:  OpSymbol,
		ch:  c,
		key: "c" + strconv.FormatInt(int64(c), 10) + ";",
	}
}

// Concat returns the concatenation r·s in canonical form.
//
// Rewrites: ∅·r = r·∅ = ∅, ε·r = r·ε = r. Nested concatenations are
// right-leaned so associativity holds syntactically.
func Concat(r, s *Expr) *Expr {
	if r == EmptySet || s == EmptySet {
		return EmptySet
	}
	if r == EmptyString {
		return s
	}
	if s == EmptyString {
		return r
	}
	// Right-lean: (a·b)·c becomes a·(b·c).
	if r.op == OpConcat {
		return Concat(r.sub[0], Concat(r.sub[1], s))
	}
	return &Expr{
		op:       OpConcat,
		sub:      []*Expr{r, s},
		key:      "C(" + r.key + s.key + ")",
		nullable: r.nullable && s.nullable,
		final:    r.final && s.final,
	}
}

// ConcatAll folds Concat over exprs left to right. An empty argument list
// yields EmptyString.
func ConcatAll(exprs ...*Expr) *Expr {
	out := EmptyString
	for i := len(exprs) - 1; i >= 0; i-- {
		out = Concat(exprs[i], out)
	}
	return out
}

// Or returns the alternation r∨s in canonical form.
//
// Rewrites: r∨r = r, ∅∨r = r, ¬∅∨r = ¬∅. Operands are flattened across
// nesting, deduplicated and sorted, so commutativity and associativity hold
// syntactically.
func Or(r, s *Expr) *Expr {
	return buildSet(OpOr, r, s)
}

// OrAll folds Or over exprs. An empty argument list yields EmptySet.
func OrAll(exprs ...*Expr) *Expr {
	out := EmptySet
	for _, e := range exprs {
		out = Or(out, e)
	}
	return out
}

// And returns the intersection r∧s in canonical form.
//
// Rewrites: r∧r = r, ∅∧r = ∅, ¬∅∧r = r. Operand ordering as for Or.
func And(r, s *Expr) *Expr {
	return buildSet(OpAnd, r, s)
}

// Star returns the Kleene closure r* in canonical form.
//
// Rewrites: (r*)* = r*, ε* = ∅* = ε.
func Star(r *Expr) *Expr {
	if r == EmptySet || r == EmptyString {
		return EmptyString
	}
	if r.op == OpStar {
		return r
	}
	return &Expr{
		op:       OpStar,
		sub:      []*Expr{r},
		key:      "S(" + r.key + ")",
		nullable: true,
		final:    r.final,
	}
}

// Not returns the complement ¬r in canonical form.
//
// Rewrites: ¬¬r = r.
func Not(r *Expr) *Expr {
	if r.op == OpNot {
		return r.sub[0]
	}
	return &Expr{
		op:       OpNot,
		sub:      []*Expr{r},
		key:      "N(" + r.key + ")",
		nullable: !r.nullable,
		final:    r.final,
	}
}

// IsUniversal returns true if r is ¬∅, the expression accepting every
// string.
func (r *Expr) IsUniversal() bool {
	return r.op == OpNot && r.sub[0] == EmptySet
}

// buildSet constructs the commutative operators. Operands of the same op
// are flattened, deduplicated by key, sorted, and the identity/annihilator
// laws applied before the canonical right-leaning tree is rebuilt.
func buildSet(op Op, r, s *Expr) *Expr {
	ops := make([]*Expr, 0, 4)
	ops = flattenInto(ops, op, r)
	ops = flattenInto(ops, op, s)

	seen := make(map[string]bool, len(ops))
	kept := ops[:0]
	for _, e := range ops {
		if op == OpOr {
			if e == EmptySet {
				continue // ∅ ∨ r = r
			}
			if e.IsUniversal() {
				return Not(EmptySet) // ¬∅ ∨ r = ¬∅
			}
		} else {
			if e == EmptySet {
				return EmptySet // ∅ ∧ r = ∅
			}
			if e.IsUniversal() {
				continue // ¬∅ ∧ r = r
			}
		}
		if seen[e.key] {
			continue // r ∨ r = r, r ∧ r = r
		}
		seen[e.key] = true
		kept = append(kept, e)
	}

	switch len(kept) {
	case 0:
		if op == OpOr {
			return EmptySet
		}
		return Not(EmptySet)
	case 1:
		return kept[0]
	}

	sort.Slice(kept, func(i, j int) bool { return kept[i].key < kept[j].key })

	out := kept[len(kept)-1]
	for i := len(kept) - 2; i >= 0; i-- {
		out = newSetNode(op, kept[i], out)
	}
	return out
}

func newSetNode(op Op, r, s *Expr) *Expr {
	e := &Expr{op: op, sub: []*Expr{r, s}}
	if op == OpOr {
		e.key = "U(" + r.key + s.key + ")"
		e.nullable = r.nullable || s.nullable
	} else {
		e.key = "I(" + r.key + s.key + ")"
		e.nullable = r.nullable && s.nullable
	}
	e.final = r.final && s.final
	return e
}

func flattenInto(dst []*Expr, op Op, e *Expr) []*Expr {
	if e.op == op {
		dst = flattenInto(dst, op, e.sub[0])
		return flattenInto(dst, op, e.sub[1])
	}
	return append(dst, e)
}

// Op returns the variant discriminator.
func (r *Expr) Op() Op {
	return r.op
}

// Rune returns the rune of a Symbol expression. Undefined for other
// variants.
func (r *Expr) Rune() rune {
	return r.ch
}

// Operands returns the operand slice. Callers must not modify it.
func (r *Expr) Operands() []*Expr {
	return r.sub
}

// Nullable returns true if r matches the empty string.
func (r *Expr) Nullable() bool {
	return r.nullable
}

// Final returns true if no further input can change r's acceptance
// decision.
func (r *Expr) Final() bool {
	return r.final
}

// Key returns the canonical encoding of r. Two expressions are equal under
// the algebraic laws iff their keys are equal.
func (r *Expr) Key() string {
	return r.key
}

// Equal reports algebraic equality, including the commutative and
// associative rotations of Or, And and Concat.
func (r *Expr) Equal(s *Expr) bool {
	return r == s || r.key == s.key
}

// Hash returns a 64-bit hash consistent with Equal.
func (r *Expr) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(r.key))
	return h.Sum64()
}

// String renders r in a regex-like debug syntax.
func (r *Expr) String() string {
	var sb strings.Builder
	r.render(&sb)
	return sb.String()
}

func (r *Expr) render(sb *strings.Builder) {
	switch r.op {
	case OpEmptySet:
		sb.WriteString("∅")
	case OpEmptyString:
		sb.WriteString("ε")
	case OpAny:
		sb.WriteByte('.')
	case OpSymbol:
		switch r.ch {
		case '(', ')', '[', ']', '{', '}', '|', '*', '+', '?', '.', '\\':
			sb.WriteByte('\\')
			sb.WriteRune(r.ch)
		default:
			sb.WriteRune(r.ch)
		}
	case OpConcat:
		r.sub[0].renderSub(sb)
		r.sub[1].renderSub(sb)
	case OpOr:
		r.sub[0].renderSub(sb)
		sb.WriteByte('|')
		r.sub[1].renderSub(sb)
	case OpAnd:
		r.sub[0].renderSub(sb)
		sb.WriteByte('&')
		r.sub[1].renderSub(sb)
	case OpStar:
		r.sub[0].renderSub(sb)
		sb.WriteByte('*')
	case OpNot:
		sb.WriteByte('!')
		r.sub[0].renderSub(sb)
	}
}

func (r *Expr) renderSub(sb *strings.Builder) {
	if len(r.sub) == 2 || r.op == OpStar || r.op == OpNot {
		sb.WriteByte('(')
		r.render(sb)
		sb.WriteByte(')')
		return
	}
	r.render(sb)
}
