// Package token defines the token kinds and source positions produced by the lexer.
package token

import (
	"fmt"
	"strconv"
)

// Kind represents the class of a lexical token.
type Kind int

const (
	Num      Kind = iota // 1, 2.5, .5
	Symbol               // identifier
	OpenPar              // (
	ClosePar             // )
	Equal                // =
	Plus                 // +
	Minus                // -
	Star                 // *
	Slash                // /
	Percent              // %
	Comma                // ,
	NewLine              // \n
	Space                // run of whitespace other than \n
	Comment              // # up to end of line

	maxKind
)

var kindNames = [...]string{
	Num:      "Num",
	Symbol:   "Symbol",
	OpenPar:  "OpenPar",
	ClosePar: "ClosePar",
	Equal:    "Equal",
	Plus:     "Plus",
	Minus:    "Minus",
	Star:     "Star",
	Slash:    "Slash",
	Percent:  "Percent",
	Comma:    "Comma",
	NewLine:  "NewLine",
	Space:    "Space",
	Comment:  "Comment",
}

// String returns the variant name of the kind.
func (k Kind) String() string {
	if k >= 0 && k < maxKind {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsTrivia returns true for kinds a parser usually discards.
func (k Kind) IsTrivia() bool {
	return k == Space || k == Comment
}

// IsOperator returns true if the kind is a single-character operator.
func (k Kind) IsOperator() bool {
	return k >= Equal && k <= Percent
}

// Kinds returns every token kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, maxKind)
	for k := Num; k < maxKind; k++ {
		out = append(out, k)
	}
	return out
}

// ParseKind returns the kind with the given variant name.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return 0, false
}

// Token is a classified run of input with its source span.
//
// Num holds the value of Num tokens. Text holds the identifier of Symbol
// tokens and the comment body (without '#') of Comment tokens.
type Token struct {
	Kind Kind
	Num  float64
	Text string
	Span Span
}

// Value returns the payload of the token as display text, or "" for
// kinds that carry none.
func (t Token) Value() string {
	switch t.Kind {
	case Num:
		return strconv.FormatFloat(t.Num, 'g', -1, 64)
	case Symbol, Comment:
		return t.Text
	default:
		return ""
	}
}

func (t Token) String() string {
	switch t.Kind {
	case Num:
		return fmt.Sprintf("Num(%s)", t.Value())
	case Symbol, Comment:
		return fmt.Sprintf("%s(%q)", t.Kind, t.Text)
	default:
		return t.Kind.String()
	}
}
