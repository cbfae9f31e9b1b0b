package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/chzyer/readline"
	"github.com/leapstack-labs/exprlex/internal/cli/config"
	"github.com/leapstack-labs/exprlex/internal/cli/output"
	"github.com/leapstack-labs/exprlex/internal/engine"
	"github.com/spf13/cobra"
)

// replName is the input name used for lines typed into the REPL.
const replName = "<repl>"

// NewREPLCommand creates the repl command.
func NewREPLCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Tokenize expressions interactively",
		Long: `Start an interactive session that tokenizes each line as it is entered.

History is kept in the file named by repl.history_file.
Type .help for the available dot commands.`,
		Args: cobra.NoArgs,
		RunE: runREPL,
	}
}

func runREPL(cmd *cobra.Command, _ []string) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          cfg.REPL.Prompt,
		HistoryFile:     cfg.REPL.HistoryFile,
		AutoComplete:    newDotCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
		Stdin:           io.NopCloser(cmd.InOrStdin()),
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	sess := newREPLSession(cmdCtx.Renderer, cmdCtx.Logger, cfg)

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "exprlex REPL")
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(cmd.OutOrStdout())

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		if sess.handleLine(line) {
			return nil
		}
	}
}

// replSession holds the state of one REPL run, independent of line editing.
type replSession struct {
	r          *output.Renderer
	logger     *slog.Logger
	skipTrivia bool
	skipErrors bool
}

func newREPLSession(r *output.Renderer, logger *slog.Logger, cfg *config.Config) *replSession {
	return &replSession{
		r:          r,
		logger:     logger,
		skipTrivia: cfg.SkipTrivia,
		skipErrors: cfg.OnError == config.OnErrorSkip,
	}
}

// handleLine evaluates one input line and returns true when the session
// should end.
func (s *replSession) handleLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	if isDotCommand(trimmed) {
		return s.handleDotCommand(trimmed)
	}
	s.eval(line)
	return false
}

// isDotCommand reports whether line names a REPL command. A dot followed
// by anything but a letter starts a number, as in ".5 + 1".
func isDotCommand(line string) bool {
	rest, ok := strings.CutPrefix(line, ".")
	if !ok || rest == "" {
		return false
	}
	r, _ := utf8.DecodeRuneInString(rest)
	return unicode.IsLetter(r)
}

func (s *replSession) handleDotCommand(line string) bool {
	command := strings.ToLower(strings.Fields(line)[0])

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printREPLHelp(s.r.Writer())

	case ".trivia":
		s.skipTrivia = !s.skipTrivia
		s.r.Printf("trivia %s\n", onOff(!s.skipTrivia))

	case ".errors":
		s.skipErrors = !s.skipErrors
		policy := config.OnErrorStop
		if s.skipErrors {
			policy = config.OnErrorSkip
		}
		s.r.Printf("on error: %s\n", policy)

	default:
		s.r.Error(fmt.Sprintf("Unknown command: %s (type .help for commands)", command))
	}
	return false
}

// eval tokenizes line, including its terminating newline, and prints the
// tokens compactly.
func (s *replSession) eval(line string) {
	eng := engine.New(engine.Config{
		SkipTrivia: s.skipTrivia,
		SkipErrors: s.skipErrors,
		Logger:     s.logger,
	})
	res, err := eng.ScanString(replName, line+"\n")
	if err != nil {
		s.r.Error(err.Error())
		return
	}

	if ok, err := s.r.Structured(toFileResults([]*engine.Result{res}, true)[0]); ok {
		if err != nil {
			s.r.Error(fmt.Sprintf("failed to write output: %v", err))
		}
		return
	}

	styles := s.r.Styles()
	parts := make([]string, len(res.Tokens))
	for i, tok := range res.Tokens {
		parts[i] = styles.Kind.Render(tok.String())
	}
	if len(parts) > 0 {
		s.r.Println(strings.Join(parts, " "))
	}
	for _, d := range res.Diagnostics {
		s.r.Error(d.Message)
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  .help           Show this help message
  .trivia         Toggle space and comment tokens
  .errors         Toggle stopping at the first lexical error
  .quit / .exit   Exit the REPL

Tips:
  - Each line is tokenized on its own, newline included
  - Use arrow keys to navigate history
`
	_, _ = fmt.Fprintln(w, help)
}

// newDotCompleter creates a readline completer for dot commands.
func newDotCompleter() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem(".help"),
		readline.PcItem(".trivia"),
		readline.PcItem(".errors"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
}
