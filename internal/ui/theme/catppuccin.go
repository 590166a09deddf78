package theme

import "github.com/charmbracelet/lipgloss"

const (
	Dark  = "dark"
	Light = "light"
)

// flavor is one catppuccin palette.
type flavor struct {
	base, mantle, surface0, surface1      lipgloss.Color
	text, subtext0                        lipgloss.Color
	lavender, sapphire, green, peach, red lipgloss.Color
}

var (
	mocha = flavor{
		base: "#1e1e2e", mantle: "#181825", surface0: "#313244", surface1: "#45475a",
		text: "#cdd6f4", subtext0: "#a6adc8",
		lavender: "#b4befe", sapphire: "#74c7ec", green: "#a6e3a1", peach: "#fab387", red: "#f38ba8",
	}
	latte = flavor{
		base: "#eff1f5", mantle: "#e6e9ef", surface0: "#ccd0da", surface1: "#bcc0cc",
		text: "#4c4f69", subtext0: "#6c6f85",
		lavender: "#7287fd", sapphire: "#209fb5", green: "#40a02b", peach: "#fe640b", red: "#d20f39",
	}
)

var (
	Base     lipgloss.Color
	Mantle   lipgloss.Color
	Surface0 lipgloss.Color
	Surface1 lipgloss.Color
	Text     lipgloss.Color
	Subtext0 lipgloss.Color
	Lavender lipgloss.Color
	Sapphire lipgloss.Color
	Green    lipgloss.Color
	Peach    lipgloss.Color
	Red      lipgloss.Color

	Pane       lipgloss.Style
	PaneActive lipgloss.Style
	Overlay    lipgloss.Style
	Title      lipgloss.Style
	Muted      lipgloss.Style
	Hot        lipgloss.Style
	Good       lipgloss.Style
	Bad        lipgloss.Style

	current string
)

func init() { Use(Dark) }

// Use switches every exported color and style. Views read them at render
// time, so the next View call picks the new flavor up.
func Use(name string) {
	f := mocha
	current = Dark
	if name == Light {
		f = latte
		current = Light
	}
	Base, Mantle, Surface0, Surface1 = f.base, f.mantle, f.surface0, f.surface1
	Text, Subtext0 = f.text, f.subtext0
	Lavender, Sapphire, Green, Peach, Red = f.lavender, f.sapphire, f.green, f.peach, f.red

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Foreground(Text).
		Padding(0, 1)
	PaneActive = Pane.BorderForeground(Lavender)
	Overlay = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Peach).
		Background(Mantle).
		Foreground(Text).
		Padding(0, 1)

	Title = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Subtext0)
	Hot = lipgloss.NewStyle().Foreground(Peach).Bold(true)
	Good = lipgloss.NewStyle().Foreground(Green)
	Bad = lipgloss.NewStyle().Foreground(Red)
}

func Current() string { return current }

// Markdown is the glamour style matching the active flavor.
func Markdown() string {
	if current == Light {
		return "light"
	}
	return "dark"
}
