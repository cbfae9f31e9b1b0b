package lexer

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/leapstack-labs/exprlex/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorNextAdvances(t *testing.T) {
	c := NewStringCursor("ab")

	assert.Equal(t, token.Pos(0), c.Pos())
	r, ok := c.Next()
	require.True(t, ok)
	assert.Equal(t, 'a', r)
	assert.Equal(t, token.Pos(1), c.Pos())

	r, ok = c.Next()
	require.True(t, ok)
	assert.Equal(t, 'b', r)
	assert.Equal(t, token.Pos(2), c.Pos())

	_, ok = c.Next()
	assert.False(t, ok)
	assert.Equal(t, token.Pos(2), c.Pos(), "end offset stays put once exhausted")
	assert.NoError(t, c.Err())
}

func TestCursorPutBack(t *testing.T) {
	c := NewStringCursor("xy")

	r, _ := c.Next()
	c.PutBack(r)
	assert.Equal(t, token.Pos(0), c.Pos(), "pushed-back character is unconsumed")

	r, ok := c.Next()
	require.True(t, ok)
	assert.Equal(t, 'x', r)
	assert.Equal(t, token.Pos(1), c.Pos())

	r, ok = c.Next()
	require.True(t, ok)
	assert.Equal(t, 'y', r)
}

func TestCursorPutBackAtEnd(t *testing.T) {
	c := NewStringCursor("z")
	r, _ := c.Next()
	_, ok := c.Next()
	require.False(t, ok)

	c.PutBack(r)
	r, ok = c.Next()
	require.True(t, ok, "pending character is replayed even after the source is exhausted")
	assert.Equal(t, 'z', r)
}

func TestCursorDoublePutBackPanics(t *testing.T) {
	c := NewStringCursor("ab")
	a, _ := c.Next()
	b, _ := c.Next()
	c.PutBack(b)

	assert.Panics(t, func() { c.PutBack(a) })
}

func TestCursorMultibyte(t *testing.T) {
	c := NewStringCursor("é+")
	r, ok := c.Next()
	require.True(t, ok)
	assert.Equal(t, 'é', r)
	assert.Equal(t, token.Pos(1), c.Pos(), "positions count characters, not bytes")
}

func TestCursorLineCol(t *testing.T) {
	c := NewStringCursor("ab\ncd\n\nef")
	for {
		if _, ok := c.Next(); !ok {
			break
		}
	}

	tests := []struct {
		pos  token.Pos
		want token.LineCol
	}{
		{0, token.LineCol{Line: 1, Column: 1}},
		{1, token.LineCol{Line: 1, Column: 2}},
		{2, token.LineCol{Line: 1, Column: 3}}, // the newline itself
		{3, token.LineCol{Line: 2, Column: 1}},
		{5, token.LineCol{Line: 2, Column: 3}},
		{6, token.LineCol{Line: 3, Column: 1}},
		{7, token.LineCol{Line: 4, Column: 1}},
		{9, token.LineCol{Line: 4, Column: 3}}, // end of input
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, c.LineCol(tt.pos), "pos %d", tt.pos)
	}
}

func TestCursorLineColUnaffectedByPushback(t *testing.T) {
	c := NewStringCursor("a\nb")
	c.Next()
	nl, _ := c.Next()
	c.PutBack(nl)
	c.Next()
	c.Next()

	assert.Equal(t, token.LineCol{Line: 2, Column: 1}, c.LineCol(2))
	assert.Len(t, c.lineStarts, 2, "a replayed newline is not recorded twice")
}

func TestCursorReadError(t *testing.T) {
	boom := errors.New("boom")
	src := bufio.NewReader(io.MultiReader(strings.NewReader("a"), iotest.ErrReader(boom)))
	c := NewCursor(src)

	r, ok := c.Next()
	require.True(t, ok)
	assert.Equal(t, 'a', r)

	_, ok = c.Next()
	assert.False(t, ok)
	assert.ErrorIs(t, c.Err(), boom)
}
