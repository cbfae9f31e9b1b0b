package format

import (
	"testing"

	"github.com/leapstack-labs/exprlex/pkg/lexer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "binary operators",
			input:    "x=1+2*3",
			expected: "x = 1 + 2 * 3\n",
		},
		{
			name:     "collapses spacing",
			input:    "y   =\t a  %  b",
			expected: "y = a % b\n",
		},
		{
			name:     "call arguments",
			input:    "f ( x ,y,  2 )",
			expected: "f(x, y, 2)\n",
		},
		{
			name:     "unary signs",
			input:    "y = - x * -(a) + f(-1, +2)",
			expected: "y = -x * -(a) + f(-1, +2)\n",
		},
		{
			name:     "unary at line start",
			input:    "-x - y",
			expected: "-x - y\n",
		},
		{
			name:     "number text kept verbatim",
			input:    "a = 1.50 + .5 + 007",
			expected: "a = 1.50 + .5 + 007\n",
		},
		{
			name:     "number then symbol stay separate tokens",
			input:    "a = 1e3 + 2x",
			expected: "a = 1 e3 + 2 x\n",
		},
		{
			name:     "trailing comment",
			input:    "x = 1   # one",
			expected: "x = 1 # one\n",
		},
		{
			name:     "comment line",
			input:    "# header\nx=1\n",
			expected: "# header\nx = 1\n",
		},
		{
			name:     "blank lines collapse to one",
			input:    "\n\na\n\n\n\nb\n\n",
			expected: "a\n\nb\n",
		},
		{
			name:     "crlf line endings",
			input:    "a=1\r\nb=2\r\n",
			expected: "a = 1\nb = 2\n",
		},
		{
			name:     "empty input",
			input:    "  \n\n",
			expected: "",
		},
		{
			name:     "nested parentheses",
			input:    "( (a+b) )*c",
			expected: "((a + b)) * c\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Source(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSource_Idempotent(t *testing.T) {
	inputs := []string{
		"y=f(x,-2)*3 # c\n\n\nz=-y",
		"a + b - -c",
		"g( h( 1 ),2 )",
	}
	for _, input := range inputs {
		once, err := Source(input)
		require.NoError(t, err)
		twice, err := Source(once)
		require.NoError(t, err)
		assert.Equal(t, once, twice, "formatting %q twice should not change it", input)

		ok, err := IsFormatted(once)
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestSource_LexicalError(t *testing.T) {
	_, err := Source("x = 1 $ 2")
	require.Error(t, err)
	assert.ErrorIs(t, err, lexer.ErrInvalidChar)

	ok, err := IsFormatted("1..2")
	assert.False(t, ok)
	assert.ErrorIs(t, err, lexer.ErrInvalidNum)
}
