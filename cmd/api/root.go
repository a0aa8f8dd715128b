package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dietlog/dietlog-go/internal/config"
	"github.com/dietlog/dietlog-go/internal/logging"
)

// commandContext carries the configuration loaded once by the root command.
type commandContext struct {
	envFile string
	cfg     config.Config
}

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "dietlog",
		Short:         "Diet tracking API server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return ctx.load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), ctx.cfg)
		},
	}

	rootCmd.PersistentFlags().StringVar(&ctx.envFile, "env-file", ".env", "Optional dotenv file to load before reading the environment")

	rootCmd.AddCommand(newServeCommand(ctx))
	rootCmd.AddCommand(newMigrateCommand(ctx))

	return rootCmd
}

func (c *commandContext) load() error {
	envErr := godotenv.Load(c.envFile)

	c.cfg = config.Load()
	slog.SetDefault(logging.New(c.cfg.LogLevel, c.cfg.LogFormat, os.Stderr))

	if envErr != nil {
		slog.Debug("no env file loaded, using environment variables", "path", c.envFile)
	}

	return c.cfg.Validate()
}
