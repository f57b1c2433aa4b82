package dfa

import "errors"

// ErrBadImage reports a structurally invalid automaton image.
var ErrBadImage = errors.New("dfa: invalid automaton image")

// RangeImage is the serializable form of one range transition.
type RangeImage struct {
	Lo, Hi rune
	Next   uint32
}

// StateImage is the serializable form of one state.
type StateImage struct {
	Accepting bool
	Final     bool
	Trans     []RangeImage
	Default   uint32
}

// Image is the serializable form of a compiled automaton. State ids are
// positional; state 0 is the start state.
type Image struct {
	States []StateImage
}

// Snapshot converts the automaton into its serializable image.
func (d *DFA) Snapshot() *Image {
	img := &Image{States: make([]StateImage, len(d.states))}
	for i, s := range d.states {
		si := StateImage{
			Accepting: s.accepting,
			Final:     s.final,
			Default:   uint32(s.def),
			Trans:     make([]RangeImage, len(s.trans)),
		}
		for j, t := range s.trans {
			si.Trans[j] = RangeImage{Lo: t.Lo, Hi: t.Hi, Next: uint32(t.Next)}
		}
		img.States[i] = si
	}
	return img
}

// FromImage reconstructs an automaton from its image, validating that every
// referenced state id exists.
func FromImage(img *Image) (*DFA, error) {
	if len(img.States) == 0 {
		return nil, ErrBadImage
	}
	n := uint32(len(img.States))
	states := make([]*State, n)
	for i, si := range img.States {
		if si.Default >= n {
			return nil, ErrBadImage
		}
		st := &State{
			id:        StateID(i),
			accepting: si.Accepting,
			final:     si.Final,
			def:       StateID(si.Default),
			trans:     make([]rangeTransition, len(si.Trans)),
		}
		for j, t := range si.Trans {
			if t.Next >= n || t.Hi < t.Lo {
				return nil, ErrBadImage
			}
			st.trans[j] = rangeTransition{Lo: t.Lo, Hi: t.Hi, Next: StateID(t.Next)}
		}
		states[i] = st
	}
	return &DFA{states: states}, nil
}
