package commands

import (
	"fmt"

	"github.com/leapstack-labs/exprlex/internal/cli/output"
	"github.com/leapstack-labs/exprlex/internal/engine"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [file...]",
		Short: "Report lexical errors in expression files",
		Long: `Check expression files for lexical errors without printing tokens.

Each error is printed as file:line:col: message. With the default
error policy (stop) only the first error of each file is reported;
--on-error skip reports all of them. Exits non-zero on any error.`,
		Example: `  # Check all expression files
  exprlex check *.expr

  # Report every error, as JSON
  exprlex check --on-error skip -o json calc.expr`,
		RunE: runCheck,
	}

	cmd.Flags().String("on-error", "", "Lexical error policy: stop, skip (default from config: stop)")
	cmd.Flags().Int("workers", 0, "Files checked in parallel (default from config: 4)")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	cmdCtx := NewCommandContext(cmd)

	results, err := cmdCtx.Engine.ScanFiles(cmd.Context(), inputPaths(args))
	if err != nil {
		return err
	}

	if renderCheckResults(cmdCtx.Renderer, results, cmdCtx.Cfg.OnError) {
		return ErrLexical
	}
	return nil
}

// renderCheckResults renders diagnostics only and reports whether any
// were found.
func renderCheckResults(r *output.Renderer, results []*engine.Result, policy string) bool {
	out := output.CheckOutput{Files: toFileResults(results, false)}
	out.Summary = summarize(results)

	if ok, err := r.Structured(out); ok {
		if err != nil {
			r.Error(fmt.Sprintf("failed to write output: %v", err))
		}
		return out.Summary.Errors > 0
	}

	styles := r.Styles()
	for _, res := range results {
		for _, d := range res.Diagnostics {
			r.Printf("%s: %s\n",
				styles.Bold.Render(fmt.Sprintf("%s:%s", res.Name, d.LineCol)),
				styles.Error.Render(d.Message))
		}
	}

	if out.Summary.Errors == 0 {
		r.Success(fmt.Sprintf("%d files ok", out.Summary.Files))
		return false
	}

	titleCaser := cases.Title(language.English)
	r.Println(styles.Muted.Render(fmt.Sprintf("%d errors in %d files (policy: %s)",
		out.Summary.Errors, out.Summary.Files, titleCaser.String(policy))))
	return true
}
