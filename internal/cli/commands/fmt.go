package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/leapstack-labs/exprlex/internal/engine"
	"github.com/leapstack-labs/exprlex/pkg/format"
	"github.com/spf13/cobra"
)

// ErrNotFormatted is returned by fmt --check when a file would change.
var ErrNotFormatted = errors.New("files are not formatted")

// FmtOptions holds options for the fmt command.
type FmtOptions struct {
	Write bool
	Check bool
}

// NewFmtCommand creates the fmt command.
func NewFmtCommand() *cobra.Command {
	opts := &FmtOptions{}
	cmd := &cobra.Command{
		Use:   "fmt [file...]",
		Short: "Rewrite expression files with canonical spacing",
		Long: `Format expression files: one space around binary operators, unary signs
attached to their operand, tight calls and parentheses, a space after each
comma and at most one blank line in a row. Number text is kept as written.

Reads standard input and prints the result when no file is given.`,
		Example: `  # Print the formatted file
  exprlex fmt calc.expr

  # Format files in place
  exprlex fmt -w *.expr

  # Fail if any file is not formatted
  exprlex fmt --check *.expr`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Write, "write", "w", false, "Write the result back to each file")
	cmd.Flags().BoolVar(&opts.Check, "check", false, "List files that are not formatted and exit non-zero")

	return cmd
}

func runFmt(cmd *cobra.Command, args []string, opts *FmtOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	if opts.Write && opts.Check {
		return fmt.Errorf("--write and --check cannot be used together")
	}

	paths := inputPaths(args)
	unformatted := 0
	for _, path := range paths {
		if opts.Write && path == engine.StdinName {
			return fmt.Errorf("--write needs file arguments, not standard input")
		}

		src, err := readSource(cmd, path)
		if err != nil {
			return err
		}

		out, err := format.Source(src)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		switch {
		case opts.Check:
			if out != src {
				unformatted++
				r.Println(path)
			}
		case opts.Write:
			if out == src {
				continue
			}
			if err := os.WriteFile(path, []byte(out), 0600); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			cmdCtx.Logger.Debug("formatted file", "path", path)
		default:
			r.Printf("%s", out)
		}
	}

	if unformatted > 0 {
		return ErrNotFormatted
	}
	return nil
}

func readSource(cmd *cobra.Command, path string) (string, error) {
	if path == engine.StdinName {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read standard input: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}
