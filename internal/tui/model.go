// Package tui provides the BubbleTea-based colour editor.
package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/themepanel/internal/colour"
	"github.com/jmylchreest/themepanel/internal/field"
)

// Mode represents the current UI mode.
type Mode int

const (
	ModeSliders Mode = iota
	ModeInput
)

// Channel is the HSL component selected for adjustment.
type Channel int

const (
	ChannelHue Channel = iota
	ChannelSaturation
	ChannelLightness
	channelCount
)

func (c Channel) String() string {
	switch c {
	case ChannelHue:
		return "Hue"
	case ChannelSaturation:
		return "Saturation"
	default:
		return "Lightness"
	}
}

const (
	sliderWidth = 36
	bigFactor   = 5
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Width(12)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true).Width(12)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	trackStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Options configures the editor.
type Options struct {
	Path    string  // Document path being edited, shown in the title
	HueStep float64 // Degrees per hue step
	Step    float64 // Percentage points per saturation/lightness step
}

// Model is the colour editor model.
type Model struct {
	opts    Options
	field   *field.ColorField
	initial string

	mode    Mode
	channel Channel
	input   textinput.Model
	help    help.Model
	keys    KeyMap

	width    int
	done     bool
	accepted bool
}

// New creates an editor for the colour initial.
func New(initial string, opts Options) Model {
	if opts.HueStep <= 0 {
		opts.HueStep = 5
	}
	if opts.Step <= 0 {
		opts.Step = 2
	}

	f := field.NewColorField(initial)

	input := textinput.New()
	input.Prompt = "Hex: "
	input.Placeholder = "#rrggbb"
	input.CharLimit = 7
	input.SetValue(f.Value())

	return Model{
		opts:    opts,
		field:   f,
		initial: f.Value(),
		mode:    ModeSliders,
		input:   input,
		help:    help.New(),
		keys:    DefaultKeyMap(),
	}
}

// Init initializes the editor.
func (m Model) Init() tea.Cmd {
	return nil
}

// Result returns the accepted colour. ok is false when the editor was
// cancelled or has not finished.
func (m Model) Result() (string, bool) {
	if !m.accepted {
		return "", false
	}
	return m.field.Value(), true
}

// Value returns the colour currently shown.
func (m Model) Value() string {
	return m.field.Value()
}

// Mode returns the current UI mode.
func (m Model) Mode() Mode {
	return m.mode
}

// Channel returns the selected slider.
func (m Model) Channel() Channel {
	return m.channel
}

// HSL returns the picker state.
func (m Model) HSL() colour.HSL {
	return m.field.HSL()
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil
	}

	if m.mode == ModeInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey handles key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Cancel):
		m.done = true
		m.accepted = false
		return m, tea.Quit
	case key.Matches(msg, m.keys.Accept):
		m.done = true
		m.accepted = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Toggle):
		return m.toggleMode()
	}

	if m.mode == ModeInput {
		return m.handleInputKey(msg)
	}
	return m.handleSliderKey(msg), nil
}

func (m Model) toggleMode() (tea.Model, tea.Cmd) {
	if m.mode == ModeInput {
		m.mode = ModeSliders
		m.input.Blur()
		m.input.SetValue(m.field.Value())
		m.keys.Toggle.SetHelp("tab", "hex input")
		return m, nil
	}

	m.mode = ModeInput
	m.input.SetValue(m.field.Value())
	m.input.CursorEnd()
	m.keys.Toggle.SetHelp("tab", "sliders")
	return m, m.input.Focus()
}

// handleInputKey passes keys to the hex input and lets the field follow.
func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.field.SetHex(m.input.Value())
	return m, cmd
}

// handleSliderKey handles keys in slider mode.
func (m Model) handleSliderKey(msg tea.KeyMsg) Model {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Up):
		m.channel = (m.channel + channelCount - 1) % channelCount
	case key.Matches(msg, m.keys.Down):
		m.channel = (m.channel + 1) % channelCount
	case key.Matches(msg, m.keys.Decrease):
		m.nudge(-1)
	case key.Matches(msg, m.keys.Increase):
		m.nudge(1)
	case key.Matches(msg, m.keys.DecreaseBig):
		m.nudge(-bigFactor)
	case key.Matches(msg, m.keys.IncreaseBig):
		m.nudge(bigFactor)
	case key.Matches(msg, m.keys.Reset):
		m.field.SetHex(m.initial)
	}
	m.input.SetValue(m.field.Value())
	return m
}

func (m Model) nudge(steps float64) {
	switch m.channel {
	case ChannelHue:
		m.field.Nudge(steps*m.opts.HueStep, 0, 0)
	case ChannelSaturation:
		m.field.Nudge(0, steps*m.opts.Step, 0)
	case ChannelLightness:
		m.field.Nudge(0, 0, steps*m.opts.Step)
	}
}

// View renders the editor.
func (m Model) View() string {
	if m.done {
		return ""
	}

	var sb strings.Builder

	title := "Colour"
	if m.opts.Path != "" {
		title = m.opts.Path
	}
	sb.WriteString(titleStyle.Render(title) + "\n\n")

	sb.WriteString(m.swatch() + "\n\n")

	hsl := m.field.HSL()
	sb.WriteString(m.slider(ChannelHue, hsl.H, 360, "°") + "\n")
	sb.WriteString(m.slider(ChannelSaturation, hsl.S, 100, "%") + "\n")
	sb.WriteString(m.slider(ChannelLightness, hsl.L, 100, "%") + "\n\n")

	sb.WriteString(m.input.View())
	if m.mode == ModeInput && !m.field.Valid() {
		sb.WriteString("  " + errorStyle.Render("incomplete, keeping "+m.field.Value()))
	}
	sb.WriteString("\n\n")

	sb.WriteString(m.help.View(m.keys))
	return sb.String()
}

func (m Model) swatch() string {
	hex := m.field.Value()
	block := lipgloss.NewStyle().
		Background(lipgloss.Color(hex)).
		Foreground(lipgloss.Color(colour.ReadableForeground(hex))).
		Padding(1, 4).
		Render(hex)
	info := fmt.Sprintf("%s\ncontrast on white %.2f\ncontrast on black %.2f",
		m.field.HSL().String(),
		colour.ContrastRatio(hex, "#ffffff"),
		colour.ContrastRatio(hex, "#000000"))
	return lipgloss.JoinHorizontal(lipgloss.Center, block, "  ", info)
}

// slider renders one channel as a track with a marker.
func (m Model) slider(c Channel, value, limit float64, unit string) string {
	label := labelStyle.Render(c.String())
	if m.mode == ModeSliders && c == m.channel {
		label = selectedStyle.Render("> " + c.String())
	}

	pos := int(math.Round(value / limit * float64(sliderWidth-1)))
	pos = min(max(pos, 0), sliderWidth-1)
	track := strings.Repeat("─", pos) + "●" + strings.Repeat("─", sliderWidth-1-pos)

	return fmt.Sprintf("%s %s %3.0f%s", label, trackStyle.Render(track), value, unit)
}

// Run starts the editor on initial and returns the accepted colour.
// ok is false when the user cancelled.
func Run(initial string, opts Options) (string, bool, error) {
	p := tea.NewProgram(New(initial, opts))

	final, err := p.Run()
	if err != nil {
		return "", false, err
	}

	m, ok := final.(Model)
	if !ok {
		return "", false, nil
	}
	value, accepted := m.Result()
	return value, accepted, nil
}
