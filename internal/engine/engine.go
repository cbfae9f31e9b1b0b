// Package engine drives the tokenizer over files and streams for the CLI.
// It owns the consumer-side policies the lexer leaves open: whether trivia
// is kept and whether a lexical error ends the input or is skipped.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/leapstack-labs/exprlex/pkg/lexer"
	"github.com/leapstack-labs/exprlex/pkg/token"
	"golang.org/x/sync/errgroup"
)

// StdinName is the display name (and path argument) for standard input.
const StdinName = "-"

// Config holds engine configuration.
type Config struct {
	// SkipTrivia drops Space and Comment tokens.
	SkipTrivia bool
	// SkipErrors keeps tokenizing past lexical errors instead of stopping at the first.
	SkipErrors bool
	// Workers bounds how many files are tokenized at once (minimum 1).
	Workers int
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
	// Stdin is read for the StdinName path (optional, uses os.Stdin if nil)
	Stdin io.Reader
}

// Engine tokenizes inputs according to its Config.
type Engine struct {
	skipTrivia bool
	skipErrors bool
	workers    int
	logger     *slog.Logger
	stdin      io.Reader
}

// New creates a new engine.
func New(cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	stdin := cfg.Stdin
	if stdin == nil {
		stdin = os.Stdin
	}
	return &Engine{
		skipTrivia: cfg.SkipTrivia,
		skipErrors: cfg.SkipErrors,
		workers:    workers,
		logger:     logger,
		stdin:      stdin,
	}
}

// Diagnostic is a lexical error resolved to a source location.
type Diagnostic struct {
	Pos     token.Pos
	LineCol token.LineCol
	Message string
	Err     error
}

// Result is the outcome of tokenizing one input.
type Result struct {
	Name        string
	Tokens      []token.Token
	LineCols    []token.LineCol // start location of each token
	Diagnostics []Diagnostic
}

// HasErrors returns true if any lexical error was found.
func (r *Result) HasErrors() bool {
	return len(r.Diagnostics) > 0
}

// ScanString tokenizes an in-memory source.
func (e *Engine) ScanString(name, src string) (*Result, error) {
	return e.scan(name, lexer.NewStringCursor(src))
}

// ScanReader tokenizes a stream.
func (e *Engine) ScanReader(name string, r io.Reader) (*Result, error) {
	return e.scan(name, lexer.NewReaderCursor(r))
}

// ScanFile tokenizes the file at path, or standard input for StdinName.
func (e *Engine) ScanFile(path string) (*Result, error) {
	if path == StdinName {
		return e.ScanReader(path, e.stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	return e.ScanReader(path, f)
}

// ScanFiles tokenizes several files concurrently. Results keep the order
// of paths. Lexical errors are reported in the results; only I/O failures
// and cancellation abort the batch.
func (e *Engine) ScanFiles(ctx context.Context, paths []string) ([]*Result, error) {
	results := make([]*Result, len(paths))

	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(e.workers)
	for i, path := range paths {
		eg.Go(func() error {
			if err := egctx.Err(); err != nil {
				return err
			}
			res, err := e.ScanFile(path)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (e *Engine) scan(name string, c *lexer.Cursor) (*Result, error) {
	var opts []lexer.Option
	if e.skipTrivia {
		opts = append(opts, lexer.WithSkipTrivia())
	}
	opts = append(opts, lexer.WithLogger(e.logger.With("input", name)))
	tz := lexer.New(c, opts...)

	res := &Result{Name: name}
	for tok, err := range tz.All() {
		if err != nil {
			var lexErr lexer.Error
			if !errors.As(err, &lexErr) {
				return nil, fmt.Errorf("failed to tokenize %s: %w", name, err)
			}
			res.Diagnostics = append(res.Diagnostics, Diagnostic{
				Pos:     lexErr.Position(),
				LineCol: lexErr.Location(),
				Message: lexErr.Error(),
				Err:     lexErr,
			})
			if !e.skipErrors {
				break
			}
			continue
		}
		res.Tokens = append(res.Tokens, tok)
		res.LineCols = append(res.LineCols, tz.LineCol(tok.Span.Start))
	}

	e.logger.Debug("scanned input",
		"input", name,
		"tokens", len(res.Tokens),
		"errors", len(res.Diagnostics))
	return res, nil
}
