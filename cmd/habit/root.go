package main

import (
	"fmt"

	"github.com/sandeepkv93/habitd/internal/commands"
	"github.com/sandeepkv93/habitd/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Version is the current habit CLI version.
var Version = "0.1.0"

type cli struct {
	storagePath string
	verbose     bool

	logger  *zap.Logger
	service *commands.Service
}

func newRootCmd() *cobra.Command {
	app := &cli{}
	root := &cobra.Command{
		Use:           "habit",
		Short:         "Habit Tracker CLI",
		Long:          "Track daily habits in a local JSON file. HABIT_STORAGE selects the file (default habits.json).",
		Version:       Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.logger != nil {
				_ = app.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVarP(&app.storagePath, "file", "f", "", "habit file path (overrides HABIT_STORAGE)")
	root.PersistentFlags().BoolVar(&app.verbose, "verbose", false, "enable debug logging")

	root.AddCommand(
		app.addCmd(),
		app.listCmd(),
		app.completeCmd(),
		app.removeCmd(),
		app.editCmd(),
		app.showCmd(),
		app.exportCmd(),
		app.tuiCmd(),
	)
	return root
}

func (c *cli) setup(cmd *cobra.Command) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	if c.storagePath != "" {
		cfg.StoragePath = c.storagePath
	}
	if c.verbose {
		cfg.Verbose = true
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if cfg.Verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := zcfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	c.logger = logger
	c.service = commands.NewService(cfg.StoragePath, logger)
	logger.Debug("habit store configured", zap.String("path", cfg.StoragePath))
	return nil
}
