package expr

import "strings"

// Vector is an ordered tuple of expressions tracked in lockstep by one DFA.
//
// Order is semantically significant: coordinate i corresponds to pattern i,
// and two vectors are equal only when they agree coordinate by coordinate.
type Vector []*Expr

// Nullable returns true if any coordinate matches the empty string.
func (v Vector) Nullable() bool {
	for _, e := range v {
		if e.nullable {
			return true
		}
	}
	return false
}

// Final returns true if every coordinate's acceptance decision is settled.
// The empty vector is final.
func (v Vector) Final() bool {
	for _, e := range v {
		if !e.final {
			return false
		}
	}
	return true
}

// Key returns the canonical encoding of the vector, the concatenation of
// the coordinate keys, each followed by a '|' separator.
func (v Vector) Key() string {
	var sb strings.Builder
	for _, e := range v {
		sb.WriteString(e.key)
		sb.WriteByte('|')
	}
	return sb.String()
}

// Equal reports positional equality of the two vectors.
func (v Vector) Equal(w Vector) bool {
	if len(v) != len(w) {
		return false
	}
	for i, e := range v {
		if !e.Equal(w[i]) {
			return false
		}
	}
	return true
}

// Derive returns the coordinate-wise derivative with respect to c.
func (v Vector) Derive(c rune) Vector {
	out := make(Vector, len(v))
	for i, e := range v {
		out[i] = e.Derive(c)
	}
	return out
}

// VectorClass is one alphabet partition of a vector derivation map.
type VectorClass struct {
	Succ Vector
	Set  CharSet
}

// VectorDerivMap is the partitioned derivative of a vector, built by
// cross-combining the coordinate maps.
type VectorDerivMap struct {
	Classes []VectorClass
	Default Vector
}

// Lookup returns the successor vector for c.
func (m *VectorDerivMap) Lookup(c rune) Vector {
	for _, cl := range m.Classes {
		if cl.Set.Contains(c) {
			return cl.Succ
		}
	}
	return m.Default
}

// DeriveClasses returns the partitioned derivative of the vector. The
// coordinate maps are folded together with the same intersect-then-difference
// combination used for binary operators, extending the successor tuple one
// coordinate at a time.
func (v Vector) DeriveClasses() *VectorDerivMap {
	acc := &VectorDerivMap{Default: Vector{}}
	for _, e := range v {
		acc = crossVector(acc, e.DeriveClasses())
	}
	return acc
}

func crossVector(ma *VectorDerivMap, mb *DerivMap) *VectorDerivMap {
	out := &VectorDerivMap{Default: extend(ma.Default, mb.Default)}

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
			out.Classes = append(out.Classes, VectorClass{Succ: extend(a.Succ, b.Succ), Set: common})
		}
		rest := a.Set.Diff(bCovered)
		if !rest.IsEmpty() {
			out.Classes = append(out.Classes, VectorClass{Succ: extend(a.Succ, mb.Default), Set: rest})
		}
	}
	for _, b := range mb.Classes {
		rest := b.Set.Diff(aCovered)
		if !rest.IsEmpty() {
			out.Classes = append(out.Classes, VectorClass{Succ: extend(ma.Default, b.Succ), Set: rest})
		}
	}
	return normalizeVectorMap(out)
}

func extend(v Vector, e *Expr) Vector {
	out := make(Vector, len(v)+1)
	copy(out, v)
	out[len(v)] = e
	return out
}

func normalizeVectorMap(m *VectorDerivMap) *VectorDerivMap {
	out := &VectorDerivMap{Default: m.Default}
	defaultKey := m.Default.Key()
	index := make(map[string]int, len(m.Classes))
	for _, cl := range m.Classes {
		if cl.Set.IsEmpty() {
			continue
		}
		key := cl.Succ.Key()
		if key == defaultKey {
			continue
		}
		if i, ok := index[key]; ok {
			out.Classes[i].Set = out.Classes[i].Set.Union(cl.Set)
			continue
		}
		index[key] = len(out.Classes)
		out.Classes = append(out.Classes, VectorClass{Succ: cl.Succ, Set: cl.Set})
	}
	return out
}
