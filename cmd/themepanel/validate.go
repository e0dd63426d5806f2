package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/themepanel/internal/config"
	"github.com/jmylchreest/themepanel/internal/settings"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the document for problems",
	Long: `Check the document and print one line per problem.

Settings documents are checked against the settings schema (required paths,
colours, opacities, sizes, booleans, URLs). Theme documents are checked for
malformed hex colours after extends are applied. Exits with status 1 when
any problem is found.`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	doc, path, err := loadDocument()
	if err != nil {
		return err
	}

	var problems []settings.Problem
	if cfg.Document.Kind == config.KindSettings {
		problems = settings.Validate(doc)
	} else {
		problems = settings.ValidateColours(resolveDocument(doc, path))
	}

	w := cmd.OutOrStdout()
	for _, p := range problems {
		fmt.Fprintln(w, p.String())
	}
	if len(problems) > 0 {
		return fmt.Errorf("%d problem(s) in %s", len(problems), path)
	}

	_, err = fmt.Fprintf(w, "%s: ok\n", path)
	return err
}
