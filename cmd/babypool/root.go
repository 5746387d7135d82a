package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okian/babypool/internal/config"
	"github.com/okian/babypool/pkg/logger"
)

// cli carries state shared by subcommands once the root has loaded config.
type cli struct {
	cfg *config.Config
	log logger.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:   "babypool",
		Short: "Score a baby-prediction pool",
		Long: `Score every participant of a baby-prediction pool against the actual
outcome. Fields everyone got right count for little; hard fields count more.

Configuration is read from BABYPOOL_CONFIG (YAML), a .env file and the
environment. The outcome comes from ACTUAL_FIRST_NAME ... ACTUAL_FAINT.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd)
		},
	}
	root.AddCommand(newScoreCmd(c), newServeCmd(c))
	return root
}

func (c *cli) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Logs go to stderr so stdout stays usable for results.
	if err := logger.Init(
		logger.WithWriter(cmd.ErrOrStderr()),
		logger.WithFormat(logger.Format(cfg.LogFormat)),
	); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	c.log = logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		c.log.Warn(cmd.Context(), "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	c.cfg = cfg
	return nil
}
