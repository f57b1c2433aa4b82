package patscan

import "fmt"

// PatternID identifies a pattern as a (major, minor) pair. The major
// component comes from the pattern definition; the minor disambiguates
// boundary expansions of a single definition.
type PatternID struct {
	Major int
	Minor int
}

// String renders the id as "major.minor".
func (id PatternID) String() string {
	return fmt.Sprintf("%d.%d", id.Major, id.Minor)
}

// Pattern is one named regular expression tracked by a scanner context.
//
// Ignore marks a suppress-pattern: its matches are consumed silently, which
// masks longer well-formed inputs that a shorter pattern would otherwise
// report.
type Pattern struct {
	ID     PatternID
	Name   string
	Regex  string
	Ignore bool
}

// Match is one scanner result: the pattern that matched, the absolute rune
// offset at which the matched text began, and the text itself.
type Match struct {
	ID   PatternID
	Name string
	Pos  int
	Text string
}

// String renders the match for diagnostics.
func (m Match) String() string {
	return fmt.Sprintf("%s %q at %d (%s)", m.ID, m.Text, m.Pos, m.Name)
}
