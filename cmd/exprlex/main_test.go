// Package main provides tests for the exprlex CLI.
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leapstack-labs/exprlex/internal/cli"
	"github.com/leapstack-labs/exprlex/internal/cli/commands"
	"github.com/leapstack-labs/exprlex/internal/cli/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	config.ResetConfig()

	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

func TestVersionCommand(t *testing.T) {
	t.Chdir(t.TempDir())

	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "exprlex v")
}

func TestHelpCommand(t *testing.T) {
	out, err := run(t, "", "--help")
	require.NoError(t, err)

	for _, expected := range []string{"tokenize", "check", "fmt", "repl", "version", "completion"} {
		assert.Contains(t, out, expected, "help output should list %q", expected)
	}
}

func TestTokenizeCommand(t *testing.T) {
	t.Chdir(t.TempDir())

	out, err := run(t, "x = 3.5 * (y - 1) % 2\n", "tokenize", "--skip-trivia")
	require.NoError(t, err)
	assert.Contains(t, out, "Percent")
	assert.Contains(t, out, "3.5")
	assert.Contains(t, out, "12 tokens, 0 errors in 1 files")
}

func TestTokenizeCommand_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "exprlex.yaml"),
		[]byte("output: json\nskip_trivia: true\n"), 0600))
	t.Chdir(dir)

	out, err := run(t, "a b", "tokenize")
	require.NoError(t, err)
	assert.Contains(t, out, `"kind": "Symbol"`)
	assert.NotContains(t, out, `"kind": "Space"`)
}

func TestTokenizeCommand_Verbose(t *testing.T) {
	t.Chdir(t.TempDir())

	out, err := run(t, "a", "tokenize", "-v")
	require.NoError(t, err)
	assert.Contains(t, out, "level=DEBUG msg=token input=- kind=Symbol")
	assert.Contains(t, out, "msg=\"scanned input\"")
}

func TestCheckCommand_LexicalError(t *testing.T) {
	t.Chdir(t.TempDir())

	out, err := run(t, "1 + #ok\n2 @ 3", "check")
	require.ErrorIs(t, err, commands.ErrLexical)
	assert.Contains(t, out, "-:2:3: Invalid character '@' at 2:3")
}

func TestCompletionCommand(t *testing.T) {
	shells := []string{"bash", "zsh", "fish", "powershell"}

	for _, shell := range shells {
		t.Run(shell, func(t *testing.T) {
			out, err := run(t, "", "completion", shell)
			require.NoError(t, err)
			assert.Contains(t, out, "exprlex")
		})
	}
}

func TestUnknownCommand(t *testing.T) {
	_, err := run(t, "", "unknown-command")
	assert.Error(t, err, "unknown command should return an error")
}

func TestMain(m *testing.M) {
	os.Exit(m.Run())
}
