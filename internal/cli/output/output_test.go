package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func newTestRenderer(mode Mode, isTTY bool) (*Renderer, *bytes.Buffer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return NewRendererWithTTY(out, errOut, isTTY, mode), out, errOut
}

func TestEffectiveMode(t *testing.T) {
	tests := []struct {
		name  string
		mode  Mode
		isTTY bool
		want  Mode
	}{
		{"auto on terminal", ModeAuto, true, ModeText},
		{"auto piped", ModeAuto, false, ModeMarkdown},
		{"empty is auto", "", false, ModeMarkdown},
		{"explicit text piped", ModeText, false, ModeText},
		{"explicit json on terminal", ModeJSON, true, ModeJSON},
		{"explicit yaml", ModeYAML, false, ModeYAML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _, _ := newTestRenderer(tt.mode, tt.isTTY)
			assert.Equal(t, tt.want, r.EffectiveMode())
		})
	}
}

func TestNewRenderer_BufferIsNotTTY(t *testing.T) {
	r := NewRenderer(&bytes.Buffer{}, &bytes.Buffer{}, ModeAuto)
	assert.False(t, r.IsTTY())
	assert.Equal(t, ModeMarkdown, r.EffectiveMode())
}

func TestHeader(t *testing.T) {
	r, out, _ := newTestRenderer(ModeMarkdown, false)
	r.Header(2, "Tokens")
	assert.Equal(t, "## Tokens\n\n", out.String())

	r, out, _ = newTestRenderer(ModeText, false)
	r.Header(1, "Tokens")
	assert.Equal(t, "Tokens\n", out.String(), "non-terminal text output carries no styling")
}

func TestMessages(t *testing.T) {
	r, out, errOut := newTestRenderer(ModeText, false)
	r.Success("done")
	r.Warning("careful")
	r.Error("failed")

	assert.Equal(t, "✓ done\n", out.String())
	assert.Contains(t, errOut.String(), "! careful\n")
	assert.Contains(t, errOut.String(), "✗ failed\n")
}

func TestTable(t *testing.T) {
	header := []string{"Kind", "Value"}
	rows := [][]string{{"Num", "1"}, {"Symbol", "x"}}

	t.Run("text", func(t *testing.T) {
		r, out, _ := newTestRenderer(ModeText, true)
		r.Table(header, rows)
		assert.Contains(t, out.String(), "┌")
		assert.Contains(t, out.String(), "Symbol")
	})

	t.Run("markdown", func(t *testing.T) {
		r, out, _ := newTestRenderer(ModeMarkdown, false)
		r.Table(header, rows)
		assert.Contains(t, out.String(), "| Num")
		assert.NotContains(t, out.String(), "┌")
	})
}

func TestStructured(t *testing.T) {
	result := TokenizeOutput{
		Files: []FileResult{{
			File:   "a.expr",
			Tokens: []TokenRecord{{Kind: "Num", Value: "1", Start: 0, End: 1, Line: 1, Column: 1}},
		}},
		Summary: Summary{Files: 1, Tokens: 1},
	}

	t.Run("json", func(t *testing.T) {
		r, out, _ := newTestRenderer(ModeJSON, false)
		ok, err := r.Structured(result)
		require.NoError(t, err)
		assert.True(t, ok)

		var decoded TokenizeOutput
		require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
		assert.Equal(t, result, decoded)
	})

	t.Run("yaml", func(t *testing.T) {
		r, out, _ := newTestRenderer(ModeYAML, false)
		ok, err := r.Structured(result)
		require.NoError(t, err)
		assert.True(t, ok)

		var decoded TokenizeOutput
		require.NoError(t, yaml.Unmarshal(out.Bytes(), &decoded))
		assert.Equal(t, result, decoded)
	})

	t.Run("text is not structured", func(t *testing.T) {
		r, out, _ := newTestRenderer(ModeText, false)
		ok, err := r.Structured(result)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, out.String())
	})
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "# Title", FormatHeader(1, "Title"))
	assert.Equal(t, "### Title", FormatHeader(3, "Title"))
	assert.Equal(t, "# Title", FormatHeader(0, "Title"))
	assert.Equal(t, "- **Files**: 2", FormatKeyValue("Files", "2"))
}
