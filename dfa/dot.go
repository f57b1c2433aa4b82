package dfa

import (
	"fmt"
	"io"
	"strings"
	"unicode"
)

// WriteDot renders the automaton's state graph in Graphviz DOT syntax.
// Accepting states draw as double circles, final states are filled, and the
// default transition of each state is a dashed edge labelled "*".
func WriteDot(w io.Writer, d *DFA) error {
	if _, err := fmt.Fprintln(w, "digraph dfa {"); err != nil {
		return err
	}
	fmt.Fprintln(w, "\trankdir=LR;")
	fmt.Fprintln(w, "\tnode [shape=circle];")

	for _, s := range d.states {
		attrs := []string{fmt.Sprintf("label=\"%d\"", s.id)}
		if s.accepting {
			attrs = append(attrs, "shape=doublecircle")
		}
		if s.final {
			attrs = append(attrs, "style=filled", "fillcolor=gray85")
		}
		if _, err := fmt.Fprintf(w, "\ts%d [%s];\n", s.id, strings.Join(attrs, ",")); err != nil {
			return err
		}
	}

	fmt.Fprintf(w, "\tstart [shape=point];\n\tstart -> s%d;\n", StartState)

	for _, s := range d.states {
		// Group ranges by target so each edge carries one compact label.
		byTarget := make(map[StateID][]rangeTransition)
		for _, t := range s.trans {
			byTarget[t.Next] = append(byTarget[t.Next], t)
		}
		for next, ranges := range byTarget {
			if _, err := fmt.Fprintf(w, "\ts%d -> s%d [label=%q];\n", s.id, next, rangeLabel(ranges)); err != nil {
				return err
			}
		}
		if s.def != InvalidState {
			if _, err := fmt.Fprintf(w, "\ts%d -> s%d [label=\"*\",style=dashed];\n", s.id, s.def); err != nil {
				return err
			}
		}
	}

	_, err := fmt.Fprintln(w, "}")
	return err
}

func rangeLabel(ranges []rangeTransition) string {
	var sb strings.Builder
	for i, r := range ranges {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if r.Lo == r.Hi {
			sb.WriteString(dotRune(r.Lo))
		} else {
			sb.WriteString(dotRune(r.Lo))
			sb.WriteByte('-')
			sb.WriteString(dotRune(r.Hi))
		}
	}
	return sb.String()
}

func dotRune(c rune) string {
	if c > unicode.MaxASCII || !unicode.IsPrint(c) {
		return fmt.Sprintf("\\x{%x}", c)
	}
	if c == ' ' {
		return "␣"
	}
	return string(c)
}
