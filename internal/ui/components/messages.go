package components

import tea "github.com/charmbracelet/bubbletea"

// BoardChangedMsg tells every view that board state (tasks, niches, profile)
// may have moved and cached renderings should be rebuilt.
type BoardChangedMsg struct{}

func BoardChanged() tea.Msg { return BoardChangedMsg{} }

// CueMsg asks the shell to play feedback for a sound event.
type CueMsg struct{ Event string }

func Cue(event string) tea.Cmd {
	return func() tea.Msg { return CueMsg{Event: event} }
}
