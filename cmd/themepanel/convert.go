package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/themepanel/internal/colour"
	"github.com/jmylchreest/themepanel/internal/output"
)

var convertOpts struct {
	format string
	adjust float64
}

var convertCmd = &cobra.Command{
	Use:   "convert <colour>",
	Short: "Convert a colour between hex and HSL",
	Long: `Convert a colour between hex and HSL and print both forms.

Hex accepts six digits with or without '#'. HSL accepts "hsl(210, 50%, 40%)"
or "210,50,40".

Examples:
  themepanel convert '#336699'
  themepanel convert 'hsl(30, 100%, 50%)'
  themepanel convert 336699 --adjust 15 --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVarP(&convertOpts.format, "format", "f", "plain",
		"Output format (plain, json, yaml)")
	convertCmd.Flags().Float64Var(&convertOpts.adjust, "adjust", 0,
		"Shift lightness by this many percentage points")
}

// conversion is a colour in every notation convert prints.
type conversion struct {
	Hex string       `json:"hex" yaml:"hex"`
	HSL colour.HSL   `json:"hsl" yaml:"hsl"`
	RGB colour.RGB   `json:"rgb" yaml:"rgb"`
	CSS string       `json:"css" yaml:"css"`
	On  contrastPair `json:"contrast" yaml:"contrast"`
}

type contrastPair struct {
	White float64 `json:"white" yaml:"white"`
	Black float64 `json:"black" yaml:"black"`
}

func runConvert(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(convertOpts.format)
	if err != nil {
		return err
	}

	hex, err := parseColour(args[0])
	if err != nil {
		return err
	}
	if convertOpts.adjust != 0 {
		hex = colour.AdjustLightness(hex, convertOpts.adjust)
	}

	c := describeColour(hex)
	w := cmd.OutOrStdout()

	if format != output.FormatPlain {
		return output.NewFormatter(format, output.DefaultFormatterOptions()).FormatValue(w, c)
	}

	_, err = fmt.Fprintf(w, "hex: %s\nhsl: %s\nrgb: %d, %d, %d\ncontrast: %.2f on white, %.2f on black\n",
		c.Hex, c.CSS, c.RGB.R, c.RGB.G, c.RGB.B, c.On.White, c.On.Black)
	return err
}

// parseColour accepts hex or HSL text and returns "#rrggbb".
func parseColour(text string) (string, error) {
	t := strings.TrimSpace(text)
	if _, ok := colour.ParseRGB(t); ok {
		return strings.ToLower(colour.NormalizeHex(t)), nil
	}

	hsl, err := colour.ParseHSL(t)
	if err != nil {
		return "", fmt.Errorf("%q is neither a hex nor an HSL colour: %w", text, err)
	}
	return hsl.Hex(), nil
}

func describeColour(hex string) conversion {
	rgb, _ := colour.ParseRGB(hex)
	hsl := colour.HexToHSL(hex)
	return conversion{
		Hex: hex,
		HSL: hsl.Rounded(),
		RGB: rgb,
		CSS: hsl.String(),
		On: contrastPair{
			White: colour.ContrastRatio(hex, "#ffffff"),
			Black: colour.ContrastRatio(hex, "#000000"),
		},
	}
}
