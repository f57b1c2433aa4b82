// Package patscan is a multi-pattern text scanner built on
// regular-expression derivatives.
//
// A vector of named patterns compiles into a single DFA whose states are
// equivalence classes of derivative vectors. Scanners stream runes through
// that DFA and emit the longest match at each position, with ties broken in
// favor of the earliest-declared pattern.
//
// Basic usage:
//
//	ctxt := patscan.NewContext([]patscan.Pattern{
//	    {ID: patscan.PatternID{Major: 1, Minor: 1}, Name: "ssn",
//	        Regex: `[[:digit:]]{3}[ -][[:digit:]]{2}[ -][[:digit:]]{4}`},
//	})
//	sc := ctxt.NewScanner()
//	matches := sc.Update("my ssn is 444-42-1234")
//	matches = append(matches, sc.Complete()...)
//
// Contexts are immutable and may be shared across goroutines; each
// goroutine owns its scanner.
package patscan

import (
	"github.com/projectdiscovery/gologger"

	"github.com/jclyne/pattern-scanner/dfa"
	"github.com/jclyne/pattern-scanner/expr"
	"github.com/jclyne/pattern-scanner/prefilter"
	"github.com/jclyne/pattern-scanner/syntax"
)

// ScannerCtxt bundles a compiled automaton with the state→pattern index.
// It is created once and reused across any number of scanner instances.
type ScannerCtxt struct {
	dfa      *dfa.DFA
	index    map[dfa.StateID][]Pattern
	patterns []Pattern // patterns that survived parsing, in declaration order
	pre      *prefilter.Prefilter
}

// NewContext compiles the given patterns into a scanner context.
//
// Each pattern's regex is parsed in declaration order; a pattern whose
// regex fails to parse is logged and skipped, and compilation proceeds with
// the survivors. The state→pattern index records, for every accepting
// state, the patterns whose vector coordinate is nullable there, in
// declaration order.
//
// An empty pattern list yields a context whose scanner never matches.
func NewContext(patterns []Pattern) *ScannerCtxt {
	var (
		vector   expr.Vector
		compiled []Pattern
	)
	for _, p := range patterns {
		e, err := syntax.Parse(p.Regex)
		if err != nil {
			gologger.Error().Msgf("skipping pattern %s (%s): %v", p.ID, p.Name, err)
			continue
		}
		vector = append(vector, e)
		compiled = append(compiled, p)
	}

	ctxt := &ScannerCtxt{
		index:    make(map[dfa.StateID][]Pattern),
		patterns: compiled,
	}
	ctxt.dfa = dfa.Compile(vector, func(id dfa.StateID, source expr.Vector) {
		for i, coord := range source {
			if coord.Nullable() {
				ctxt.index[id] = append(ctxt.index[id], compiled[i])
			}
		}
	})
	ctxt.pre = prefilter.FromVector(vector)
	return ctxt
}

// Patterns returns the patterns that survived compilation, in declaration
// order. Callers must not modify the returned slice.
func (ctxt *ScannerCtxt) Patterns() []Pattern {
	return ctxt.patterns
}

// DFA exposes the compiled automaton, e.g. for DOT export.
func (ctxt *ScannerCtxt) DFA() *dfa.DFA {
	return ctxt.dfa
}

// NewScanner creates a scanner bound to this context, positioned at offset
// zero with empty buffers.
func (ctxt *ScannerCtxt) NewScanner() *Scanner {
	return &Scanner{
		ctxt:  ctxt,
		state: ctxt.dfa.Start(),
	}
}

// ScanBytes runs a one-shot scan over data with a fresh scanner. When the
// context carries a literal prefilter and data cannot contain any of the
// required literals, the DFA is never driven.
func (ctxt *ScannerCtxt) ScanBytes(data []byte) []Match {
	if ctxt.pre != nil && !ctxt.pre.CanMatch(data) {
		return nil
	}
	sc := ctxt.NewScanner()
	matches := sc.Update(string(data))
	return append(matches, sc.Complete()...)
}
