package lexer

import (
	"bufio"
	"errors"
	"io"
	"sort"
	"strings"

	"github.com/leapstack-labs/exprlex/pkg/token"
)

// Cursor presents a rune source one character at a time, tracking the
// absolute position and allowing a single character of pushback.
//
// The source is read strictly forward and only once, so line starts are
// recorded as newlines are first read. That keeps LineCol correct for
// streams that cannot be replayed.
type Cursor struct {
	src  io.RuneReader
	pos  token.Pos // offset of the rune Next returns next
	done bool
	err  error

	pending    rune
	hasPending bool

	lineStarts []token.Pos // lineStarts[i] is the offset where line i+1 begins
}

// NewCursor creates a Cursor reading from src.
func NewCursor(src io.RuneReader) *Cursor {
	return &Cursor{
		src:        src,
		lineStarts: []token.Pos{0},
	}
}

// NewReaderCursor creates a Cursor over a stream, buffering it when it
// cannot already be read rune by rune.
func NewReaderCursor(r io.Reader) *Cursor {
	rr, ok := r.(io.RuneReader)
	if !ok {
		rr = bufio.NewReader(r)
	}
	return NewCursor(rr)
}

// NewStringCursor creates a Cursor over an in-memory string.
func NewStringCursor(s string) *Cursor {
	return NewCursor(strings.NewReader(s))
}

// Next returns the next character. A pushed-back character is returned
// first. The second result is false once the source is exhausted.
func (c *Cursor) Next() (rune, bool) {
	if c.hasPending {
		c.hasPending = false
		c.pos++
		return c.pending, true
	}
	if c.done {
		return 0, false
	}

	r, _, err := c.src.ReadRune()
	if err != nil {
		c.done = true
		if !errors.Is(err, io.EOF) {
			c.err = err
		}
		return 0, false
	}

	c.pos++
	if r == '\n' {
		c.lineStarts = append(c.lineStarts, c.pos)
	}
	return r, true
}

// PutBack stores r so that the next call to Next returns it again.
// Only one slot exists: calling PutBack twice without an intervening
// Next is a programming error and panics.
func (c *Cursor) PutBack(r rune) {
	if c.hasPending {
		panic("lexer: PutBack called with a character already pending")
	}
	c.pending = r
	c.hasPending = true
	c.pos--
}

// Pos returns the offset of the character Next will return, or the end
// offset once the source is exhausted.
func (c *Cursor) Pos() token.Pos {
	return c.pos
}

// LineCol maps an offset to a 1-based line and column. It is defined for
// any offset at or before the read frontier.
func (c *Cursor) LineCol(p token.Pos) token.LineCol {
	if p < 0 {
		p = 0
	}
	// index of the last line start <= p
	i := sort.Search(len(c.lineStarts), func(i int) bool {
		return c.lineStarts[i] > p
	}) - 1
	return token.LineCol{
		Line:   i + 1,
		Column: int(p-c.lineStarts[i]) + 1,
	}
}

// Err returns the first read error other than io.EOF, if any.
func (c *Cursor) Err() error {
	return c.err
}
