package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/themepanel/internal/colour"
	"github.com/jmylchreest/themepanel/internal/tree"
)

var (
	pathStyle = lipgloss.NewStyle().Width(32)
	hslStyle  = lipgloss.NewStyle().Faint(true)
)

// ColourLeaves filters leaves down to "#rrggbb" colour strings.
func ColourLeaves(leaves []tree.Leaf) []tree.Leaf {
	var out []tree.Leaf
	for _, l := range leaves {
		if s, ok := l.Value.(string); ok && colour.IsValidHex(s) {
			out = append(out, l)
		}
	}
	return out
}

// Swatch renders hex as a coloured block labelled in a readable foreground.
func Swatch(hex string) string {
	hex = colour.NormalizeHex(hex)
	return lipgloss.NewStyle().
		Background(lipgloss.Color(hex)).
		Foreground(lipgloss.Color(colour.ReadableForeground(hex))).
		Padding(0, 1).
		Render(hex)
}

// Swatches renders one line per colour leaf: swatch, path and HSL.
// Leaves that are not colours are skipped.
func Swatches(leaves []tree.Leaf) string {
	var sb strings.Builder
	for _, l := range ColourLeaves(leaves) {
		hex := l.Value.(string)
		sb.WriteString(Swatch(hex))
		sb.WriteString("  ")
		sb.WriteString(pathStyle.Render(l.Path))
		sb.WriteString(hslStyle.Render(colour.HexToHSL(hex).String()))
		sb.WriteString("\n")
	}
	return sb.String()
}
