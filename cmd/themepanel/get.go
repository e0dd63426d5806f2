package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/themepanel/internal/output"
	"github.com/jmylchreest/themepanel/internal/tree"
)

var getOpts struct {
	format   string
	resolved bool
}

var getCmd = &cobra.Command{
	Use:   "get <path>",
	Short: "Print the value at a dot path",
	Long: `Print the value stored at a dot path.

A mapping prints as its leaves. A missing path fails with suggestions of
similar existing paths.

Examples:
  themepanel get styles.brandPrimary
  themepanel get styles --format json
  themepanel get styles.background --resolved`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

var listOpts struct {
	format   string
	resolved bool
	template string
}

var listCmd = &cobra.Command{
	Use:   "list [prefix]",
	Short: "List every leaf path and value",
	Long: `List every leaf in the document, sorted by path, optionally limited to
paths under a prefix.

Examples:
  themepanel list
  themepanel list styles --format yaml
  themepanel list --template '{{.Path}}: {{scalar .Value}}'`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(listCmd)

	getCmd.Flags().StringVarP(&getOpts.format, "format", "f", "plain",
		"Output format (plain, json, yaml)")
	getCmd.Flags().BoolVar(&getOpts.resolved, "resolved", false,
		"Read from the document with extends applied")

	listCmd.Flags().StringVarP(&listOpts.format, "format", "f", "plain",
		"Output format (plain, json, yaml)")
	listCmd.Flags().BoolVar(&listOpts.resolved, "resolved", false,
		"List the document with extends applied")
	listCmd.Flags().StringVar(&listOpts.template, "template", "",
		"Custom Go template for plain output ({{.Index}}, {{.Path}}, {{.Value}})")
}

func runGet(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(getOpts.format)
	if err != nil {
		return err
	}

	doc, path, err := loadDocument()
	if err != nil {
		return err
	}
	if getOpts.resolved {
		doc = resolveDocument(doc, path)
	}

	v, ok := tree.Get(doc, args[0])
	if !ok {
		return notFound(doc, args[0])
	}

	formatter := output.NewFormatter(format, output.DefaultFormatterOptions())
	return formatter.FormatValue(cmd.OutOrStdout(), v)
}

func runList(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(listOpts.format)
	if err != nil {
		return err
	}

	doc, path, err := loadDocument()
	if err != nil {
		return err
	}
	if listOpts.resolved {
		doc = resolveDocument(doc, path)
	}

	leaves := tree.Leaves(doc)
	if len(args) == 1 && args[0] != "" {
		leaves = underPrefix(leaves, args[0])
	}

	opts := output.DefaultFormatterOptions()
	opts.Template = listOpts.template
	return output.NewFormatter(format, opts).FormatLeaves(cmd.OutOrStdout(), leaves)
}

// underPrefix keeps leaves at or below prefix.
func underPrefix(leaves []tree.Leaf, prefix string) []tree.Leaf {
	var out []tree.Leaf
	for _, l := range leaves {
		if l.Path == prefix || strings.HasPrefix(l.Path, prefix+tree.Separator) {
			out = append(out, l)
		}
	}
	return out
}
