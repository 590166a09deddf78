package theme_test

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"

	"lifeos/internal/ui/theme"
)

func TestUseSwitchesFlavor(t *testing.T) {
	theme.Use(theme.Light)
	require.Equal(t, theme.Light, theme.Current())
	require.Equal(t, "light", theme.Markdown())
	require.EqualValues(t, "#eff1f5", theme.Base)
	require.Equal(t, lipgloss.TerminalColor(theme.Peach), theme.Overlay.GetBorderTopForeground())

	theme.Use("anything else")
	require.Equal(t, theme.Dark, theme.Current())
	require.EqualValues(t, "#1e1e2e", theme.Base)
	require.Equal(t, lipgloss.TerminalColor(lipgloss.Color("#fab387")), theme.Overlay.GetBorderTopForeground())
}
