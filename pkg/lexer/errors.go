package lexer

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/leapstack-labs/exprlex/pkg/token"
)

// Sentinels matched by the lexical error types via errors.Is.
var (
	ErrInvalidChar = errors.New("invalid character")
	ErrInvalidNum  = errors.New("invalid number")
)

// Error is implemented by every lexical error.
type Error interface {
	error
	// Position returns the offset where the offending input starts.
	Position() token.Pos
	// Location returns the line and column of Position.
	Location() token.LineCol
}

// InvalidCharError reports a character outside every token class.
type InvalidCharError struct {
	Pos     token.Pos
	LineCol token.LineCol
	Char    rune
}

func (e *InvalidCharError) Error() string {
	return fmt.Sprintf("Invalid character '%c' at %s", e.Char, e.LineCol)
}

// Position implements Error.
func (e *InvalidCharError) Position() token.Pos { return e.Pos }

// Location implements Error.
func (e *InvalidCharError) Location() token.LineCol { return e.LineCol }

// Is reports whether target is ErrInvalidChar.
func (e *InvalidCharError) Is(target error) bool { return target == ErrInvalidChar }

// InvalidNumError reports a digit/dot run that is not a valid float.
type InvalidNumError struct {
	Pos     token.Pos
	LineCol token.LineCol
	Text    string
	Err     error // underlying *strconv.NumError
}

func (e *InvalidNumError) Error() string {
	return fmt.Sprintf("Invalid number '%s' (%s) at %s", e.Text, reason(e.Err), e.LineCol)
}

// Position implements Error.
func (e *InvalidNumError) Position() token.Pos { return e.Pos }

// Location implements Error.
func (e *InvalidNumError) Location() token.LineCol { return e.LineCol }

// Is reports whether target is ErrInvalidNum.
func (e *InvalidNumError) Is(target error) bool { return target == ErrInvalidNum }

func (e *InvalidNumError) Unwrap() error { return e.Err }

// IsLexical returns true if err is (or wraps) a lexical error, as opposed
// to an I/O failure of the underlying source.
func IsLexical(err error) bool {
	var lexErr Error
	return errors.As(err, &lexErr)
}

// reason strips the "strconv.ParseFloat: parsing ..." prefix so only the
// failure itself ends up in the diagnostic.
func reason(err error) string {
	var numErr *strconv.NumError
	if errors.As(err, &numErr) && numErr.Err != nil {
		return numErr.Err.Error()
	}
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}
