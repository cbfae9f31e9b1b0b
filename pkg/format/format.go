package format

import (
	"io"

	"github.com/leapstack-labs/exprlex/pkg/lexer"
)

// Source formats expression source. Input with a lexical error is not
// formatted; the first error is returned instead.
func Source(src string) (string, error) {
	p := newPrinter([]rune(src))
	tz := lexer.NewFromString(src)
	for {
		tok, err := tz.Next()
		if err == io.EOF {
			return p.String(), nil
		}
		if err != nil {
			return "", err
		}
		p.print(tok)
	}
}

// IsFormatted reports whether src is already in canonical form.
func IsFormatted(src string) (bool, error) {
	out, err := Source(src)
	if err != nil {
		return false, err
	}
	return out == src, nil
}
