// Package lexer turns expression source text into tokens.
//
// A Tokenizer pulls characters from a Cursor and classifies one maximal
// run of input per call to Next. Tokens are produced on demand; nothing is
// read ahead beyond the single character a run needs to find its end.
package lexer

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"strconv"
	"strings"

	"github.com/leapstack-labs/exprlex/pkg/token"
)

// Tokenizer classifies characters from a Cursor into tokens.
// It is single-pass and cannot be restarted.
type Tokenizer struct {
	cursor *Cursor
	buf    strings.Builder // text of the run being scanned

	skipTrivia bool
	logger     *slog.Logger
}

// Option configures a Tokenizer.
type Option func(*Tokenizer)

// WithSkipTrivia makes Next drop Space and Comment tokens.
func WithSkipTrivia() Option {
	return func(t *Tokenizer) {
		t.skipTrivia = true
	}
}

// WithLogger logs every classified token at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tokenizer) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// New creates a Tokenizer reading from c.
func New(c *Cursor, opts ...Option) *Tokenizer {
	t := &Tokenizer{
		cursor: c,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// NewFromString creates a Tokenizer over an in-memory string.
func NewFromString(src string, opts ...Option) *Tokenizer {
	return New(NewStringCursor(src), opts...)
}

// NewFromReader creates a Tokenizer over a stream, buffering it as needed.
func NewFromReader(r io.Reader, opts ...Option) *Tokenizer {
	return New(NewReaderCursor(r), opts...)
}

// Next returns the next token. It returns io.EOF once the input is
// exhausted and an Error when the next run of input is not a valid token.
//
// Next does not recover from errors on its own. Calling it again after an
// error resumes right after the characters the failed step consumed.
func (t *Tokenizer) Next() (token.Token, error) {
	for {
		tok, err := t.scan()
		if err != nil {
			return token.Token{}, err
		}
		if t.skipTrivia && tok.Kind.IsTrivia() {
			continue
		}
		t.logger.Debug("token",
			slog.String("kind", tok.Kind.String()),
			slog.String("value", tok.Value()),
			slog.Int("start", int(tok.Span.Start)),
			slog.Int("end", int(tok.Span.End)))
		return tok, nil
	}
}

// All returns the remaining tokens as a sequence. Lexical errors are
// yielded in place and the sequence continues if the consumer keeps
// ranging; it ends at the end of input or on a read failure.
func (t *Tokenizer) All() iter.Seq2[token.Token, error] {
	return func(yield func(token.Token, error) bool) {
		for {
			tok, err := t.Next()
			if err == io.EOF {
				return
			}
			if !yield(tok, err) {
				return
			}
			if err != nil && !IsLexical(err) {
				return
			}
		}
	}
}

// LineCol resolves a position previously reported by this Tokenizer.
func (t *Tokenizer) LineCol(p token.Pos) token.LineCol {
	return t.cursor.LineCol(p)
}

// Tokenize returns all tokens of src. On a lexical error it returns the
// tokens scanned before it together with the error.
func Tokenize(src string, opts ...Option) ([]token.Token, error) {
	t := NewFromString(src, opts...)
	var tokens []token.Token
	for {
		tok, err := t.Next()
		if err == io.EOF {
			return tokens, nil
		}
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
	}
}

// scan classifies one run of input, trivia included.
func (t *Tokenizer) scan() (token.Token, error) {
	start := t.cursor.Pos()

	c, ok := t.cursor.Next()
	if !ok {
		if err := t.cursor.Err(); err != nil {
			return token.Token{}, fmt.Errorf("failed to read input: %w", err)
		}
		return token.Token{}, io.EOF
	}

	tok := token.Token{}
	switch c {
	case '(':
		tok.Kind = token.OpenPar
	case ')':
		tok.Kind = token.ClosePar
	case '=':
		tok.Kind = token.Equal
	case '+':
		tok.Kind = token.Plus
	case '-':
		tok.Kind = token.Minus
	case '*':
		tok.Kind = token.Star
	case '/':
		tok.Kind = token.Slash
	case '%':
		tok.Kind = token.Percent
	case ',':
		tok.Kind = token.Comma
	case '\n':
		tok.Kind = token.NewLine
	case '#':
		t.buf.Reset()
		t.readWhile(isCommentChar, true)
		tok.Kind = token.Comment
		tok.Text = t.buf.String()
	default:
		switch {
		case isDigit(c) || c == '.':
			n, err := t.readNumber(start, c)
			if err != nil {
				return token.Token{}, err
			}
			tok.Kind = token.Num
			tok.Num = n
		case isLetter(c) || c == '_':
			t.buf.Reset()
			t.buf.WriteRune(c)
			t.readWhile(isSymbolChar, true)
			tok.Kind = token.Symbol
			tok.Text = t.buf.String()
		case isSpace(c):
			t.readWhile(isSpace, false)
			tok.Kind = token.Space
		default:
			return token.Token{}, &InvalidCharError{
				Pos:     start,
				LineCol: t.cursor.LineCol(start),
				Char:    c,
			}
		}
	}

	tok.Span = token.Span{Start: start, End: t.cursor.Pos()}
	return tok, nil
}

// readWhile consumes the maximal run of characters matching in, appending
// them to the scratch buffer when keep is set. The first character that
// does not match is pushed back.
func (t *Tokenizer) readWhile(in func(rune) bool, keep bool) {
	for {
		c, ok := t.cursor.Next()
		if !ok {
			return
		}
		if !in(c) {
			t.cursor.PutBack(c)
			return
		}
		if keep {
			t.buf.WriteRune(c)
		}
	}
}

// readNumber scans a digit/dot run starting with first and parses it.
// Validity is left entirely to the float parser, so "1..2" and "." are
// scanned as one run and rejected as a whole.
func (t *Tokenizer) readNumber(start token.Pos, first rune) (float64, error) {
	t.buf.Reset()
	t.buf.WriteRune(first)
	t.readWhile(isNumberChar, true)

	text := t.buf.String()
	n, err := strconv.ParseFloat(text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, &InvalidNumError{
			Pos:     start,
			LineCol: t.cursor.LineCol(start),
			Text:    text,
			Err:     err,
		}
	}
	// out of range runs saturate to +Inf
	return n, nil
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isLetter(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNumberChar(c rune) bool {
	return isDigit(c) || c == '.'
}

func isSymbolChar(c rune) bool {
	return isLetter(c) || isDigit(c) || c == '_'
}

func isCommentChar(c rune) bool {
	return c != '\n'
}

// isSpace matches ASCII whitespace except the newline, which is a token
// of its own.
func isSpace(c rune) bool {
	switch c {
	case ' ', '\t', '\r', '\f':
		return true
	}
	return false
}
