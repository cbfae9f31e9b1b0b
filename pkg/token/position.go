package token

import "fmt"

// Pos is an absolute character offset into the input (0-based).
// It counts runes, not bytes, and only ever grows as input is consumed.
type Pos int

// LineCol is a human-facing location derived from a Pos.
type LineCol struct {
	Line   int // 1-based line number
	Column int // 1-based column number
}

// IsValid returns true if the location is valid (line > 0).
func (lc LineCol) IsValid() bool {
	return lc.Line > 0 && lc.Column > 0
}

func (lc LineCol) String() string {
	return fmt.Sprintf("%d:%d", lc.Line, lc.Column)
}

// Span represents the half-open range [Start, End) of input a token occupies.
type Span struct {
	Start Pos
	End   Pos
}

// NewSpan returns a span between two positions, swapping them if needed
// so that End >= Start always holds.
func NewSpan(start, end Pos) Span {
	if end < start {
		start, end = end, start
	}
	return Span{Start: start, End: end}
}

// Len returns the number of characters covered by the span.
func (s Span) Len() int {
	return int(s.End - s.Start)
}

// IsEmpty returns true if the span covers no characters.
func (s Span) IsEmpty() bool {
	return s.End == s.Start
}

// Contains returns true if the span contains the given position.
func (s Span) Contains(p Pos) bool {
	return p >= s.Start && p < s.End
}

// Join returns the smallest span covering both s and other.
// Parsers use it to derive a node's span from its children.
func (s Span) Join(other Span) Span {
	out := s
	if other.Start < out.Start {
		out.Start = other.Start
	}
	if other.End > out.End {
		out.End = other.End
	}
	return out
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}
