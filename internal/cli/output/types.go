package output

// TokenRecord is the structured form of one token.
type TokenRecord struct {
	Kind   string `json:"kind" yaml:"kind"`
	Value  string `json:"value,omitempty" yaml:"value,omitempty"`
	Start  int    `json:"start" yaml:"start"`
	End    int    `json:"end" yaml:"end"`
	Line   int    `json:"line" yaml:"line"`
	Column int    `json:"column" yaml:"column"`
}

// DiagnosticRecord is the structured form of one lexical error.
type DiagnosticRecord struct {
	Kind    string `json:"kind" yaml:"kind"`
	Message string `json:"message" yaml:"message"`
	Offset  int    `json:"offset" yaml:"offset"`
	Line    int    `json:"line" yaml:"line"`
	Column  int    `json:"column" yaml:"column"`
}

// FileResult holds the tokens and errors of one input.
type FileResult struct {
	File        string             `json:"file" yaml:"file"`
	Tokens      []TokenRecord      `json:"tokens,omitempty" yaml:"tokens,omitempty"`
	Diagnostics []DiagnosticRecord `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

// TokenizeOutput is the structured output of the tokenize command.
type TokenizeOutput struct {
	Files   []FileResult `json:"files" yaml:"files"`
	Summary Summary      `json:"summary" yaml:"summary"`
}

// CheckOutput is the structured output of the check command.
type CheckOutput struct {
	Files   []FileResult `json:"files" yaml:"files"`
	Summary Summary      `json:"summary" yaml:"summary"`
}

// Summary counts what a run produced.
type Summary struct {
	Files  int `json:"files" yaml:"files"`
	Tokens int `json:"tokens" yaml:"tokens"`
	Errors int `json:"errors" yaml:"errors"`
}
