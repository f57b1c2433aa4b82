package expr

import "testing"

func TestVectorNullableFinal(t *testing.T) {
	a := Sym('a')
	tests := []struct {
		name         string
		v            Vector
		wantNullable bool
		wantFinal    bool
	}{
		{"empty vector", Vector{}, false, true},
		{"live", Vector{a, Star(a)}, true, false},
		{"all dead", Vector{EmptySet, EmptySet}, false, true},
		{"one dead", Vector{EmptySet, a}, false, false},
		{"accepting dead mix", Vector{EmptyString, EmptySet}, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Nullable(); got != tt.wantNullable {
				t.Errorf("Nullable = %v, want %v", got, tt.wantNullable)
			}
			if got := tt.v.Final(); got != tt.wantFinal {
				t.Errorf("Final = %v, want %v", got, tt.wantFinal)
			}
		})
	}
}

func TestVectorEqualIsPositional(t *testing.T) {
	a, b := Sym('a'), Sym('b')
	if !(Vector{a, b}).Equal(Vector{a, b}) {
		t.Error("identical vectors not equal")
	}
	if (Vector{a, b}).Equal(Vector{b, a}) {
		t.Error("swapped vectors compare equal")
	}
	if (Vector{a}).Equal(Vector{a, a}) {
		t.Error("vectors of different lengths compare equal")
	}
	if (Vector{a, b}).Key() == (Vector{b, a}).Key() {
		t.Error("swapped vectors share a key")
	}
}

func TestVectorDeriveAgreement(t *testing.T) {
	a, b := Sym('a'), Sym('b')
	v := Vector{
		Concat(a, b),
		Star(Or(a, b)),
		And(Any, Not(a)),
	}
	m := v.DeriveClasses()
	for _, c := range "abcxyz 01" {
		want := v.Derive(c)
		got := m.Lookup(c)
		if !got.Equal(want) {
			t.Errorf("vector deriveMap lookup(%q) = %v, want %v", c, got, want)
		}
	}
}

func TestVectorDeriveMapStructure(t *testing.T) {
	v := Vector{Sym('a'), Sym('b')}
	m := v.DeriveClasses()
	for i, ci := range m.Classes {
		if len(ci.Succ) != len(v) {
			t.Errorf("class %d successor has %d coordinates, want %d", i, len(ci.Succ), len(v))
		}
		for j := i + 1; j < len(m.Classes); j++ {
			if !ci.Set.Intersect(m.Classes[j].Set).IsEmpty() {
				t.Errorf("classes %d and %d overlap", i, j)
			}
		}
	}
	if len(m.Default) != len(v) {
		t.Errorf("default successor has %d coordinates, want %d", len(m.Default), len(v))
	}

	// 'a' advances the first coordinate only.
	succ := m.Lookup('a')
	if !succ[0].Equal(EmptyString) || succ[1] != EmptySet {
		t.Errorf("lookup('a') = %v, want [ε ∅]", succ)
	}
}

func TestEmptyVectorDeriveMap(t *testing.T) {
	m := (Vector{}).DeriveClasses()
	if len(m.Classes) != 0 || len(m.Default) != 0 {
		t.Errorf("empty vector map = %d classes, default len %d", len(m.Classes), len(m.Default))
	}
}
