package dfa

import (
	"sort"

	"github.com/jclyne/pattern-scanner/expr"
)

// OnState is invoked exactly once per state, in creation order, at the
// moment the state's id is assigned and before its transitions are filled.
// The callback receives only the identity and the source vector; the state's
// transitions must not be inspected from it.
type OnState func(id StateID, source expr.Vector)

// compiler explores the vector space with an explicit worklist, assigning
// each unique vector an integer state id.
type compiler struct {
	states  []*State
	sources []expr.Vector
	index   map[string]StateID // canonical vector key → id
	onState OnState
}

// Compile builds the automaton for the given initial vector. The optional
// onState callback observes state creation (see OnState).
//
// Compilation of the empty vector yields a single non-accepting final state
// that loops to itself.
func Compile(init expr.Vector, onState OnState) *DFA {
	c := &compiler{
		index:   make(map[string]StateID),
		onState: onState,
	}

	c.intern(init)
	for next := 0; next < len(c.states); next++ {
		c.fill(StateID(next))
	}

	return &DFA{states: c.states}
}

// intern returns the id for the vector, creating (and notifying) a new
// state if the vector has not been seen.
func (c *compiler) intern(v expr.Vector) StateID {
	key := v.Key()
	if id, ok := c.index[key]; ok {
		return id
	}
	id := StateID(len(c.states))
	st := &State{
		id:        id,
		accepting: v.Nullable(),
		final:     v.Final(),
		def:       InvalidState,
	}
	c.states = append(c.states, st)
	c.sources = append(c.sources, v)
	c.index[key] = id
	if c.onState != nil {
		c.onState(id, v)
	}
	return id
}

// fill materializes the transition table of one state from its vector's
// partitioned derivative.
func (c *compiler) fill(id StateID) {
	m := c.sources[id].DeriveClasses()

	st := c.states[id]
	for _, cl := range m.Classes {
		succ := c.intern(cl.Succ)
		st.trans = appendRangeTransitions(st.trans, cl.Set, succ)
	}
	st.def = c.intern(m.Default)

	// Classes are disjoint, so ranges never overlap; sort for binary search.
	sort.Slice(st.trans, func(i, j int) bool { return st.trans[i].Lo < st.trans[j].Lo })
}
