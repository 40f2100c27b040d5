package main

import (
	"fmt"

	"github.com/liliang-cn/closet/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "closet",
		Short:        "Wardrobe service: store, filter, sort and summarize clothing items",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")

	loadConfig := func() (*config.Config, error) {
		return config.Load(configPath)
	}

	root.AddCommand(
		newServeCmd(loadConfig),
		newImportCmd(loadConfig),
		newReportCmd(),
	)
	return root
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid logging.level %q: %w", cfg.Level, err)
	}

	zcfg := zap.NewProductionConfig()
	if cfg.Development {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}
