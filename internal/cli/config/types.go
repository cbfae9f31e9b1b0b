// Package config provides configuration management for the exprlex CLI.
package config

import "time"

// Config holds all CLI configuration options.
type Config struct {
	OutputFormat  string        `koanf:"output"`
	Verbose       bool          `koanf:"verbose"`
	SkipTrivia    bool          `koanf:"skip_trivia"`
	OnError       string        `koanf:"on_error"`
	Workers       int           `koanf:"workers"`
	WatchDebounce time.Duration `koanf:"watch_debounce"`
	REPL          REPLConfig    `koanf:"repl"`

	// ProjectRoot is the directory relative paths are resolved against.
	ProjectRoot string `koanf:"-"`
}

// REPLConfig holds configuration for the interactive tokenizer.
type REPLConfig struct {
	Prompt      string `koanf:"prompt"`
	HistoryFile string `koanf:"history_file"`
}

// Error policies for lexical errors.
const (
	OnErrorStop = "stop" // first error ends the input
	OnErrorSkip = "skip" // report the error and keep pulling tokens
)

// Default configuration values.
const (
	DefaultOutput        = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultOnError       = OnErrorStop
	DefaultWorkers       = 4
	DefaultWatchDebounce = 100 * time.Millisecond
	DefaultPrompt        = "exprlex> "
	DefaultHistoryFile   = ".exprlex_history"

	// ConfigFileName is the name of the config file.
	ConfigFileName = "exprlex.yaml"
	// ConfigFileNameAlt is the alternate name of the config file.
	ConfigFileNameAlt = "exprlex.yml"
)

// Default returns a Config populated with default values.
func Default() *Config {
	return &Config{
		OutputFormat:  DefaultOutput,
		OnError:       DefaultOnError,
		Workers:       DefaultWorkers,
		WatchDebounce: DefaultWatchDebounce,
		REPL: REPLConfig{
			Prompt:      DefaultPrompt,
			HistoryFile: DefaultHistoryFile,
		},
	}
}
