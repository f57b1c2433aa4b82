// Package dfa compiles expression vectors into deterministic finite
// automata and provides the passive runtime the scanner drives.
//
// The compiler closes the vector space under partitioned derivation with an
// explicit worklist. Because expressions are canonical, equivalent successor
// vectors share a key and the state table stays finite. States keep their
// transitions as sorted rune-interval entries plus a default next-state, so
// wide character classes cost one entry instead of one per rune.
package dfa

import (
	"github.com/jclyne/pattern-scanner/expr"
)

// StateID identifies a DFA state. The start state is always 0.
type StateID uint32

const (
	// StartState is the id of the initial state.
	StartState StateID = 0

	// InvalidState marks an invalid or uninitialized state id.
	InvalidState StateID = 0xFFFFFFFF
)

// rangeTransition routes the runes in [Lo, Hi] to Next.
type rangeTransition struct {
	Lo, Hi rune
	Next   StateID
}

// State is a single DFA state: an accepting bit, a final bit, the
// exceptional transitions as sorted disjoint rune ranges, and the default
// next-state for every other rune.
type State struct {
	id        StateID
	accepting bool
	final     bool
	trans     []rangeTransition
	def       StateID
}

// ID returns the state's identifier.
func (s *State) ID() StateID {
	return s.id
}

// Accepting returns true if the state's source vector is nullable.
func (s *State) Accepting() bool {
	return s.accepting
}

// Final returns true if the state's source vector is final: no further
// input can change its acceptance decision.
func (s *State) Final() bool {
	return s.final
}

// Next returns the successor state for c.
func (s *State) Next(c rune) StateID {
	lo, hi := 0, len(s.trans)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		t := s.trans[mid]
		switch {
		case c < t.Lo:
			hi = mid - 1
		case c > t.Hi:
			lo = mid + 1
		default:
			return t.Next
		}
	}
	return s.def
}

// TransitionCount returns the number of exceptional range transitions.
func (s *State) TransitionCount() int {
	return len(s.trans)
}

// DFA is a compiled automaton. It is immutable after compilation and safe
// for concurrent use.
type DFA struct {
	states []*State
}

// Start returns the start state id.
func (d *DFA) Start() StateID {
	return StartState
}

// Step returns the successor of state id on rune c.
func (d *DFA) Step(id StateID, c rune) StateID {
	return d.states[id].Next(c)
}

// StateAt returns the state with the given id, or nil if the id is out of
// range.
func (d *DFA) StateAt(id StateID) *State {
	if int(id) >= len(d.states) {
		return nil
	}
	return d.states[id]
}

// Len returns the number of states.
func (d *DFA) Len() int {
	return len(d.states)
}

// Matches walks input from the start state and reports whether the state
// reached at the end of input is accepting.
func (d *DFA) Matches(input string) bool {
	id := StartState
	for _, c := range input {
		id = d.Step(id, c)
	}
	return d.states[id].accepting
}

// Stats summarizes a compiled automaton.
type Stats struct {
	States    int
	Accepting int
	Final     int
}

// Stats returns state counts for the automaton.
func (d *DFA) Stats() Stats {
	st := Stats{States: len(d.states)}
	for _, s := range d.states {
		if s.accepting {
			st.Accepting++
		}
		if s.final {
			st.Final++
		}
	}
	return st
}

// appendRangeTransitions converts a charset into range transitions
// targeting next.
func appendRangeTransitions(dst []rangeTransition, set expr.CharSet, next StateID) []rangeTransition {
	for _, r := range set.Ranges() {
		dst = append(dst, rangeTransition{Lo: r.Lo, Hi: r.Hi, Next: next})
	}
	return dst
}
