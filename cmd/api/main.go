package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"Lee_Blog/internal/config"
)

var configPath string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "blog",
		Short:         "Blog API: posts, comments and reactions",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", os.Getenv("BLOG_CONFIG"), "path to YAML config file")

	root.AddCommand(newServeCmd(), newCheckOrphansCmd())
	return root
}

// loadConfig 读配置并装好默认 logger
func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}))
	slog.SetDefault(logger)
	return cfg, logger, nil
}
