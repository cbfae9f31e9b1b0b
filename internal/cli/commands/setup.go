package commands

import (
	"log/slog"

	"github.com/leapstack-labs/exprlex/internal/cli/config"
	"github.com/leapstack-labs/exprlex/internal/cli/output"
	"github.com/leapstack-labs/exprlex/internal/engine"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Engine   *engine.Engine
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext with an engine and renderer
// built from the loaded configuration.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	eng := engine.New(engine.Config{
		SkipTrivia: cfg.SkipTrivia,
		SkipErrors: cfg.OnError == config.OnErrorSkip,
		Workers:    cfg.Workers,
		Logger:     logger,
		Stdin:      cmd.InOrStdin(),
	})

	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Engine:   eng,
		Renderer: r,
	}
}

// getConfig returns the current configuration, or defaults when the
// command runs without the root command's config loading (as in tests).
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return config.Default()
}
