package commands

import (
	"errors"
	"fmt"
	"os/signal"
	"slices"
	"strconv"
	"strings"
	"syscall"

	"github.com/leapstack-labs/exprlex/internal/cli/output"
	"github.com/leapstack-labs/exprlex/internal/engine"
	"github.com/leapstack-labs/exprlex/pkg/lexer"
	"github.com/leapstack-labs/exprlex/pkg/token"
	"github.com/spf13/cobra"
)

// ErrLexical is returned by commands that found lexical errors, so the
// process exits non-zero after the results were rendered.
var ErrLexical = errors.New("lexical errors found")

// TokenizeOptions holds options for the tokenize command.
type TokenizeOptions struct {
	Watch bool
}

// NewTokenizeCommand creates the tokenize command.
func NewTokenizeCommand() *cobra.Command {
	opts := &TokenizeOptions{}
	cmd := &cobra.Command{
		Use:     "tokenize [file...]",
		Aliases: []string{"lex"},
		Short:   "Print the tokens of expression files",
		Long: `Tokenize expression files and print every token with its span and location.

Reads standard input when no file is given or a file is "-".
Files are tokenized concurrently; output keeps the argument order.

Lexical errors either end a file (--on-error stop, the default) or are
reported and skipped (--on-error skip). The command exits non-zero when
any lexical error was found.`,
		Example: `  # Tokenize a file
  exprlex tokenize calc.expr

  # Tokenize stdin, dropping spaces and comments
  echo 'y = f(x) * 2' | exprlex tokenize --skip-trivia

  # Keep going past errors and emit JSON
  exprlex tokenize --on-error skip -o json a.expr b.expr

  # Re-tokenize whenever the file changes
  exprlex tokenize --watch calc.expr`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokenize(cmd, args, opts)
		},
	}

	cmd.Flags().Bool("skip-trivia", false, "Drop space and comment tokens")
	cmd.Flags().String("on-error", "", "Lexical error policy: stop, skip (default from config: stop)")
	cmd.Flags().Int("workers", 0, "Files tokenized in parallel (default from config: 4)")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Re-tokenize files when they change")

	_ = cmd.RegisterFlagCompletionFunc("on-error", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"stop", "skip"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runTokenize(cmd *cobra.Command, args []string, opts *TokenizeOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer
	paths := inputPaths(args)

	if opts.Watch {
		if slices.Contains(paths, engine.StdinName) {
			return fmt.Errorf("--watch needs file arguments, not standard input")
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		// Initial pass before waiting for changes
		results, err := cmdCtx.Engine.ScanFiles(ctx, paths)
		if err != nil {
			return err
		}
		renderTokenizeResults(r, results)

		r.Println(r.Styles().Muted.Render("Watching for changes (Ctrl+C to stop)"))
		return cmdCtx.Engine.Watch(ctx, paths, cmdCtx.Cfg.WatchDebounce, func(res *engine.Result) {
			renderTokenizeResults(r, []*engine.Result{res})
		})
	}

	results, err := cmdCtx.Engine.ScanFiles(cmd.Context(), paths)
	if err != nil {
		return err
	}

	if renderTokenizeResults(r, results) {
		return ErrLexical
	}
	return nil
}

// inputPaths defaults to standard input when no file is given.
func inputPaths(args []string) []string {
	if len(args) == 0 {
		return []string{engine.StdinName}
	}
	return args
}

// renderTokenizeResults renders results in the renderer's mode and reports
// whether any lexical error was found.
func renderTokenizeResults(r *output.Renderer, results []*engine.Result) bool {
	out := output.TokenizeOutput{Files: toFileResults(results, true)}
	out.Summary = summarize(results)

	if ok, err := r.Structured(out); ok {
		if err != nil {
			r.Error(fmt.Sprintf("failed to write output: %v", err))
		}
		return out.Summary.Errors > 0
	}

	styles := r.Styles()
	for _, res := range results {
		r.Header(2, res.Name)
		if len(res.Tokens) > 0 {
			r.Table([]string{"#", "Kind", "Value", "Span", "Line:Col"}, tokenRows(res))
		} else {
			r.Println(styles.Muted.Render("(no tokens)"))
		}
		for _, d := range res.Diagnostics {
			r.Error(fmt.Sprintf("%s: %s", res.Name, d.Message))
		}
		r.Println("")
	}
	r.Println(styles.Muted.Render(fmt.Sprintf("%d tokens, %d errors in %d files",
		out.Summary.Tokens, out.Summary.Errors, out.Summary.Files)))

	return out.Summary.Errors > 0
}

func tokenRows(res *engine.Result) [][]string {
	rows := make([][]string, len(res.Tokens))
	for i, tok := range res.Tokens {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			tok.Kind.String(),
			displayValue(tok),
			tok.Span.String(),
			res.LineCols[i].String(),
		}
	}
	return rows
}

// displayValue makes whitespace-only values visible in tables.
func displayValue(tok token.Token) string {
	switch tok.Kind {
	case token.NewLine:
		return `\n`
	case token.Space:
		return strings.Repeat("·", tok.Span.Len())
	}
	return tok.Value()
}

func toFileResults(results []*engine.Result, withTokens bool) []output.FileResult {
	files := make([]output.FileResult, 0, len(results))
	for _, res := range results {
		fr := output.FileResult{File: res.Name}
		if withTokens {
			for i, tok := range res.Tokens {
				fr.Tokens = append(fr.Tokens, output.TokenRecord{
					Kind:   tok.Kind.String(),
					Value:  tok.Value(),
					Start:  int(tok.Span.Start),
					End:    int(tok.Span.End),
					Line:   res.LineCols[i].Line,
					Column: res.LineCols[i].Column,
				})
			}
		}
		for _, d := range res.Diagnostics {
			fr.Diagnostics = append(fr.Diagnostics, output.DiagnosticRecord{
				Kind:    diagnosticKind(d.Err),
				Message: d.Message,
				Offset:  int(d.Pos),
				Line:    d.LineCol.Line,
				Column:  d.LineCol.Column,
			})
		}
		files = append(files, fr)
	}
	return files
}

func diagnosticKind(err error) string {
	switch {
	case errors.Is(err, lexer.ErrInvalidChar):
		return "invalid_char"
	case errors.Is(err, lexer.ErrInvalidNum):
		return "invalid_num"
	}
	return "unknown"
}

func summarize(results []*engine.Result) output.Summary {
	s := output.Summary{Files: len(results)}
	for _, res := range results {
		s.Tokens += len(res.Tokens)
		s.Errors += len(res.Diagnostics)
	}
	return s
}
