package patscan

import (
	"github.com/projectdiscovery/gologger"

	"github.com/jclyne/pattern-scanner/dfa"
)

// candidate is one buffered acceptance: the accepting state and the length
// of the scan-buffer prefix that reached it. The candidate stack grows with
// the scan, so the top entry is always the longest match so far.
type candidate struct {
	state  dfa.StateID
	length int
}

// Scanner streams runes through a context's DFA and emits matches under
// longest-match, earliest-pattern-wins semantics.
//
// A scanner owns mutable buffers and is not safe for concurrent use; build
// one scanner per goroutine from a shared context.
type Scanner struct {
	ctxt     *ScannerCtxt
	state    dfa.StateID
	scanBuf  []rune      // runes consumed since the last advance point
	matchBuf []candidate // buffered acceptances, top = longest
	pos      int         // absolute rune offset of scanBuf[0]
}

// Update feeds text into the scanner rune by rune and returns the matches
// resolved so far, in input order. Matches that span the end of text remain
// buffered until more input arrives or Complete is called.
func (s *Scanner) Update(text string) []Match {
	var out []Match
	for _, c := range text {
		out = append(out, s.UpdateRune(c)...)
	}
	return out
}

// UpdateRune feeds a single rune and returns zero or more resolved matches.
func (s *Scanner) UpdateRune(c rune) []Match {
	s.scanBuf = append(s.scanBuf, c)
	s.state = s.ctxt.dfa.Step(s.state, c)
	st := s.ctxt.dfa.StateAt(s.state)
	if st.Accepting() {
		s.matchBuf = append(s.matchBuf, candidate{state: s.state, length: len(s.scanBuf)})
	}
	if !st.Final() {
		return nil
	}

	// The DFA can no longer change its decision: resolve the buffered match
	// first, then rescan whatever the advance left behind.
	var out []Match
	if m, ignored, ok := s.resolve(); ok {
		if !ignored {
			out = append(out, m)
		}
	} else {
		s.advance(1)
	}
	return append(out, s.rescan(false)...)
}

// Complete flushes the scanner once the caller has no more input: buffered
// candidates are forced out and the remaining buffer is drained. The
// scanner should be Reset or discarded afterwards.
func (s *Scanner) Complete() []Match {
	var out []Match
	for len(s.scanBuf) > 0 {
		if m, ignored, ok := s.resolve(); ok {
			if !ignored {
				out = append(out, m)
			}
		} else {
			s.advance(1)
		}
		out = append(out, s.rescan(true)...)
	}
	return out
}

// Reset returns the scanner to its initial state: empty buffers, start
// state, position zero.
func (s *Scanner) Reset() {
	s.state = s.ctxt.dfa.Start()
	s.scanBuf = nil
	s.matchBuf = s.matchBuf[:0]
	s.pos = 0
}

// Pos returns the absolute rune offset of the next uncommitted character.
func (s *Scanner) Pos() int {
	return s.pos
}

// rescan re-feeds the scan buffer through the DFA from the start state,
// resolving further matches until the buffer empties or the DFA is left
// live awaiting input. With atEOF set, an exhausted buffer forces advance
// by the best buffered match or a single character until nothing remains.
func (s *Scanner) rescan(atEOF bool) []Match {
	var out []Match
outer:
	for len(s.scanBuf) > 0 {
		s.state = s.ctxt.dfa.Start()
		s.matchBuf = s.matchBuf[:0]
		for i := 0; i < len(s.scanBuf); i++ {
			s.state = s.ctxt.dfa.Step(s.state, s.scanBuf[i])
			st := s.ctxt.dfa.StateAt(s.state)
			if st.Accepting() {
				s.matchBuf = append(s.matchBuf, candidate{state: s.state, length: i + 1})
			}
			if st.Final() {
				if m, ignored, ok := s.resolve(); ok {
					if !ignored {
						out = append(out, m)
					}
				} else {
					s.advance(1)
				}
				continue outer
			}
		}
		// Buffer exhausted with the DFA live.
		if !atEOF {
			return out
		}
		if m, ignored, ok := s.resolve(); ok {
			if !ignored {
				out = append(out, m)
			}
		} else {
			s.advance(1)
		}
	}
	return out
}

// resolve backtracks through the candidate stack from the longest entry
// down, picks the earliest-declared pattern of the first resolvable state,
// advances past the matched prefix, and returns the match. The ignored
// result reports whether the winning pattern is a suppress-pattern.
func (s *Scanner) resolve() (m Match, ignored, ok bool) {
	for i := len(s.matchBuf) - 1; i >= 0; i-- {
		cand := s.matchBuf[i]
		pats, present := s.ctxt.index[cand.state]
		if !present {
			gologger.Error().Msgf("scanner: accepting state %d has no pattern index entry", cand.state)
			continue
		}
		if len(pats) == 0 {
			continue
		}
		if cand.length < 1 {
			gologger.Error().Msgf("scanner: zero-length match candidate in state %d", cand.state)
			continue
		}
		p := pats[0]
		m = Match{
			ID:   p.ID,
			Name: p.Name,
			Pos:  s.pos,
			Text: string(s.scanBuf[:cand.length]),
		}
		s.advance(cand.length)
		return m, p.Ignore, true
	}
	return Match{}, false, false
}

// advance commits n runes: the scan buffer is trimmed from the left (a
// reslice, so committed runes are not copied), the candidate stack is
// cleared, the DFA returns to its start state, and the absolute position
// moves forward.
func (s *Scanner) advance(n int) {
	s.pos += n
	s.scanBuf = s.scanBuf[n:]
	s.matchBuf = s.matchBuf[:0]
	s.state = s.ctxt.dfa.Start()
}
