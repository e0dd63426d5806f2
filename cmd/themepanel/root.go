// Package main provides the CLI entrypoint for themepanel.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/themepanel/internal/config"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	gitCommit = "unknown"
	buildTime = "unknown"
)

// Global configuration and state
var (
	cfg        *config.Config
	globalOpts struct {
		verbose      bool
		configPath   string
		documentPath string
		kind         string
	}
	logger *slog.Logger
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "themepanel",
	Short: "Theme and app settings editor",
	Long: `themepanel edits theme and mobile app settings documents.

A document is a nested JSON, YAML or TOML file addressed with dot paths such
as styles.brandPrimary. Colour values can be converted between hex and HSL,
brand colours get derived light/dark variants, and themes export as CSS
custom properties.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildTime),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger()

		var err error
		cfg, err = config.LoadConfig(globalOpts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if globalOpts.kind != "" {
			cfg.Document.Kind = config.Kind(globalOpts.kind)
			if err := cfg.Validate(); err != nil {
				return err
			}
		}

		logger.Debug("configuration loaded", "kind", cfg.Document.Kind, "config", globalOpts.configPath)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/themepanel/config.toml)")
	rootCmd.PersistentFlags().StringVarP(&globalOpts.documentPath, "document", "d", "",
		"Path to the document (default: ~/.local/share/themepanel/document.yaml)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.kind, "kind", "",
		"Document kind: theme or settings (default from config)")
}

// setupLogger configures the global slog logger.
func setupLogger() {
	level := slog.LevelWarn
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Log to stderr so stdout is clean for output
	handler := slog.NewTextHandler(os.Stderr, opts)
	logger = slog.New(handler)
	slog.SetDefault(logger)
}
