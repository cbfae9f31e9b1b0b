// Package format rewrites expression source with canonical spacing.
//
// Formatting works on the token stream, so it needs no parse: operators
// get one space on each side, unary signs bind to their operand, calls and
// parentheses are tight, commas are followed by a space and comments are
// kept on their line. The text of each number and symbol token is copied
// from the source as written; adjacent tokens are still spaced by kind, so
// "1e3" (a number followed by a symbol) prints as "1 e3".
package format

import (
	"bytes"
	"strings"

	"github.com/leapstack-labs/exprlex/pkg/token"
)

// maxBlankLines is the longest run of empty lines kept in the output.
const maxBlankLines = 1

// Printer accumulates formatted output one token at a time.
type Printer struct {
	src         []rune
	output      *bytes.Buffer
	atLineStart bool
	blankLines  int

	prev      token.Kind // last significant token on the line
	prevUnary bool
	hasPrev   bool
}

func newPrinter(src []rune) *Printer {
	return &Printer{
		src:         src,
		output:      &bytes.Buffer{},
		atLineStart: true,
	}
}

// String returns the formatted output with exactly one trailing newline,
// or "" when nothing was printed.
func (p *Printer) String() string {
	out := strings.TrimRight(p.output.String(), "\n")
	if out == "" {
		return ""
	}
	return out + "\n"
}

func (p *Printer) write(s string) {
	p.output.WriteString(s)
	p.atLineStart = false
	p.blankLines = 0
}

func (p *Printer) writeln() {
	if p.atLineStart {
		if p.blankLines >= maxBlankLines || p.output.Len() == 0 {
			return
		}
		p.blankLines++
	}
	p.output.WriteByte('\n')
	p.atLineStart = true
	p.hasPrev = false
}

func (p *Printer) space() {
	p.output.WriteByte(' ')
}

// text returns the source text a token covers.
func (p *Printer) text(tok token.Token) string {
	return string(p.src[tok.Span.Start:tok.Span.End])
}

// print emits one token. Space tokens are dropped; spacing is derived
// from the neighbouring tokens instead.
func (p *Printer) print(tok token.Token) {
	switch tok.Kind {
	case token.Space:
		return
	case token.NewLine:
		p.writeln()
		return
	case token.Comment:
		if !p.atLineStart {
			p.space()
		}
		p.write(p.text(tok))
		return
	}

	unary := p.isUnary(tok.Kind)
	if p.needsSpace(tok.Kind) {
		p.space()
	}
	p.write(p.text(tok))

	p.prev = tok.Kind
	p.prevUnary = unary
	p.hasPrev = true
}

// isUnary reports whether a sign token at this point prefixes an operand
// rather than joining two.
func (p *Printer) isUnary(k token.Kind) bool {
	if k != token.Plus && k != token.Minus {
		return false
	}
	if !p.hasPrev {
		return true
	}
	switch p.prev {
	case token.OpenPar, token.Comma:
		return true
	}
	return p.prev.IsOperator()
}

func (p *Printer) needsSpace(k token.Kind) bool {
	if p.atLineStart || !p.hasPrev {
		return false
	}
	switch {
	case p.prev == token.OpenPar:
		return false
	case k == token.ClosePar || k == token.Comma:
		return false
	case k == token.OpenPar && p.prev == token.Symbol:
		return false
	case p.prevUnary:
		return false
	}
	return true
}
