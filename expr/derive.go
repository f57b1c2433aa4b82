package expr

// Class is one alphabet partition of a derivation map: every rune in Set
// has Succ as its derivative.
type Class struct {
	Succ *Expr
	Set  CharSet
}

// DerivMap is the partitioned derivative of an expression: a finite list of
// classes with pairwise-disjoint character sets, plus the Default successor
// for every rune not covered by any class.
type DerivMap struct {
	Classes []Class
	Default *Expr
}

// Lookup returns the derivative for c: the successor of the class whose set
// contains c, or Default.
func (m *DerivMap) Lookup(c rune) *Expr {
	for _, cl := range m.Classes {
		if cl.Set.Contains(c) {
			return cl.Succ
		}
	}
	return m.Default
}

// Derive returns the Brzozowski derivative of r with respect to c.
func (r *Expr) Derive(c rune) *Expr {
	switch r.op {
	case OpEmptySet, OpEmptyString:
		return EmptySet
	case OpAny:
		return EmptyString
	case OpSymbol:
		if r.ch == c {
			return EmptyString
		}
		return EmptySet
	case OpConcat:
		head := Concat(r.sub[0].Derive(c), r.sub[1])
		if r.sub[0].nullable {
			return Or(head, r.sub[1].Derive(c))
		}
		return head
	case OpOr:
		return Or(r.sub[0].Derive(c), r.sub[1].Derive(c))
	case OpAnd:
		return And(r.sub[0].Derive(c), r.sub[1].Derive(c))
	case OpStar:
		return Concat(r.sub[0].Derive(c), r)
	case OpNot:
		return Not(r.sub[0].Derive(c))
	}
	return EmptySet
}

// DeriveClasses returns the partitioned derivative of r: a finite
// classification of the entire alphabet such that
// r.Derive(c) == r.DeriveClasses().Lookup(c) for every rune c.
func (r *Expr) DeriveClasses() *DerivMap {
	switch r.op {
	case OpEmptySet, OpEmptyString:
		return &DerivMap{Default: EmptySet}
	case OpAny:
		return &DerivMap{Default: EmptyString}
	case OpSymbol:
		return &DerivMap{
			Classes: []Class{{Succ: EmptyString, Set: SingleChar(r.ch)}},
			Default: EmptySet,
		}
	case OpConcat:
		head := mapSucc(r.sub[0].DeriveClasses(), func(d *Expr) *Expr {
			return Concat(d, r.sub[1])
		})
		if !r.sub[0].nullable {
			return normalizeMap(head)
		}
		return crossMaps(head, r.sub[1].DeriveClasses(), Or)
	case OpOr:
		return crossMaps(r.sub[0].DeriveClasses(), r.sub[1].DeriveClasses(), Or)
	case OpAnd:
		return crossMaps(r.sub[0].DeriveClasses(), r.sub[1].DeriveClasses(), And)
	case OpStar:
		return normalizeMap(mapSucc(r.sub[0].DeriveClasses(), func(d *Expr) *Expr {
			return Concat(d, r)
		}))
	case OpNot:
		return normalizeMap(mapSucc(r.sub[0].DeriveClasses(), Not))
	}
	return &DerivMap{Default: EmptySet}
}

// mapSucc applies f to every successor of m, default included.
func mapSucc(m *DerivMap, f func(*Expr) *Expr) *DerivMap {
	out := &DerivMap{
		Classes: make([]Class, 0, len(m.Classes)),
		Default: f(m.Default),
	}
	for _, cl := range m.Classes {
		out.Classes = append(out.Classes, Class{Succ: f(cl.Succ), Set: cl.Set})
	}
	return out
}

// crossMaps combines two derivation maps with the pairwise
// intersect-then-difference algorithm:
//
//  1. every pair of classes contributes comb(a,b) on the intersection of
//     their sets,
//  2. the part of each left class not covered by any right class pairs with
//     the right default, and symmetrically,
//  3. the default is comb of the two defaults.
//
// The result is normalized: classes whose successor equals the default are
// folded away and classes with equal successors are merged.
func crossMaps(ma, mb *DerivMap, comb func(a, b *Expr) *Expr) *DerivMap {
	out := &DerivMap{Default: comb(ma.Default, mb.Default)}

	var aCovered, bCovered CharSet
	for _, b := range mb.Classes {
		bCovered = bCovered.Union(b.Set)
	}
	for _, a := range ma.Classes {
		aCovered = aCovered.Union(a.Set)
	}

	for _, a := range ma.Classes {
		for _, b := range mb.Classes {
			common := a.Set.Intersect(b.Set)
			if common.IsEmpty() {
				continue
			}
			out.Classes = append(out.Classes, Class{Succ: comb(a.Succ, b.Succ), Set: common})
		}
		rest := a.Set.Diff(bCovered)
		if !rest.IsEmpty() {
			out.Classes = append(out.Classes, Class{Succ: comb(a.Succ, mb.Default), Set: rest})
		}
	}
	for _, b := range mb.Classes {
		rest := b.Set.Diff(aCovered)
		if !rest.IsEmpty() {
			out.Classes = append(out.Classes, Class{Succ: comb(ma.Default, b.Succ), Set: rest})
		}
	}
	return normalizeMap(out)
}

// normalizeMap merges classes that share a successor and drops classes whose
// successor equals the default, keeping the map minimal.
func normalizeMap(m *DerivMap) *DerivMap {
	out := &DerivMap{Default: m.Default}
	index := make(map[string]int, len(m.Classes))
	for _, cl := range m.Classes {
		if cl.Set.IsEmpty() || cl.Succ.key == m.Default.key {
			continue
		}
		if i, ok := index[cl.Succ.key]; ok {
			out.Classes[i].Set = out.Classes[i].Set.Union(cl.Set)
			continue
		}
		index[cl.Succ.key] = len(out.Classes)
		out.Classes = append(out.Classes, Class{Succ: cl.Succ, Set: cl.Set})
	}
	return out
}
