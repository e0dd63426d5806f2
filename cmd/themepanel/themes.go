package main

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/themepanel/internal/config"
	"github.com/jmylchreest/themepanel/internal/output"
	"github.com/jmylchreest/themepanel/internal/settings"
	"github.com/jmylchreest/themepanel/internal/store"
	"github.com/jmylchreest/themepanel/internal/theme"
	"github.com/jmylchreest/themepanel/internal/tree"
)

var themesOpts struct {
	format    string
	themesDir string
}

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List bundled and user themes",
	Long: `List the bundled themes and the themes in the user themes directory
(~/.config/themepanel/themes). A user theme with a bundled name overrides it.`,
	Args: cobra.NoArgs,
	RunE: runThemes,
}

var initOpts struct {
	force bool
}

var initCmd = &cobra.Command{
	Use:   "init [theme]",
	Short: "Write a theme to the document",
	Long: `Write a resolved theme to the document path as a starting point.

Without a theme name, theme documents start from the configured theme and
settings documents start from the bundled settings defaults. An existing
document is only replaced with --force.

Examples:
  themepanel init
  themepanel init midnight -d brand.yaml
  themepanel --kind settings init -d app.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(themesCmd)
	rootCmd.AddCommand(initCmd)

	for _, c := range []*cobra.Command{themesCmd, initCmd} {
		c.Flags().StringVar(&themesOpts.themesDir, "themes-dir", "",
			"User themes directory (default: ~/.config/themepanel/themes)")
	}
	themesCmd.Flags().StringVarP(&themesOpts.format, "format", "f", "plain",
		"Output format (plain, json, yaml)")
	initCmd.Flags().BoolVar(&initOpts.force, "force", false,
		"Replace an existing document")
}

func runThemes(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(themesOpts.format)
	if err != nil {
		return err
	}

	themes := theme.NewLoader(themesOpts.themesDir, logger).ListThemes()
	w := cmd.OutOrStdout()

	if format != output.FormatPlain {
		return output.NewFormatter(format, output.DefaultFormatterOptions()).FormatValue(w, themes)
	}

	for _, t := range themes {
		source := "bundled"
		if !t.IsBundled {
			source = t.Path
		}
		marker := " "
		if t.IsDefault {
			marker = "*"
		}
		if _, err := fmt.Fprintf(w, "%s %-12s %s\n", marker, t.Name, source); err != nil {
			return err
		}
	}
	return nil
}

func runInit(cmd *cobra.Command, args []string) error {
	docPath, err := documentFile()
	if err != nil {
		return err
	}

	if _, err := os.Stat(docPath); err == nil && !initOpts.force {
		return fmt.Errorf("%s already exists, use --force to replace it", docPath)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	doc, name, err := initialDocument(args)
	if err != nil {
		return err
	}

	if err := store.SaveDocument(docPath, doc); err != nil {
		return err
	}

	logger.Info("initialised document", "path", docPath, "from", name)
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s from %s\n", docPath, name)
	return err
}

// initialDocument picks the document init writes and names its source.
func initialDocument(args []string) (tree.Tree, string, error) {
	if len(args) == 0 && cfg.Document.Kind == config.KindSettings {
		return settings.Defaults(), theme.MobileThemeName, nil
	}

	name := cfg.Document.Theme
	if len(args) == 1 {
		name = args[0]
	}

	loader := theme.NewLoader(themesOpts.themesDir, logger)
	known := slices.ContainsFunc(loader.ListThemes(), func(t theme.ThemeInfo) bool {
		return t.Name == name
	})
	if !known {
		return nil, "", fmt.Errorf("unknown theme %q, see themepanel themes", name)
	}

	t, err := loader.LoadTheme(name)
	if err != nil {
		return nil, "", err
	}
	return t.Doc, name, nil
}
