package components

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"lifeos/internal/ui/theme"
)

const ToastTTL = 3 * time.Second

type ToastKind int

const (
	ToastInfo ToastKind = iota
	ToastSuccess
	ToastFailure
)

// ToastMsg asks the shell to show a transient notice.
type ToastMsg struct {
	Kind ToastKind
	Text string
}

func Notify(kind ToastKind, text string) tea.Cmd {
	return func() tea.Msg { return ToastMsg{Kind: kind, Text: text} }
}

// Fail is Notify for an error; a nil error yields no command.
func Fail(prefix string, err error) tea.Cmd {
	if err == nil {
		return nil
	}
	return Notify(ToastFailure, prefix+": "+err.Error())
}

type toastExpiredMsg struct{ seq int }

// Toast shows the latest notice until it expires. A newer notice resets the
// timer.
type Toast struct {
	kind ToastKind
	text string
	seq  int
}

func (t Toast) Show(msg ToastMsg) (Toast, tea.Cmd) {
	t.seq++
	t.kind = msg.Kind
	t.text = msg.Text
	seq := t.seq
	return t, tea.Tick(ToastTTL, func(time.Time) tea.Msg { return toastExpiredMsg{seq: seq} })
}

func (t Toast) Update(msg tea.Msg) Toast {
	if msg, ok := msg.(toastExpiredMsg); ok && msg.seq == t.seq {
		t.text = ""
	}
	return t
}

func (t Toast) Active() bool { return t.text != "" }

func (t Toast) View() string {
	switch {
	case t.text == "":
		return ""
	case t.kind == ToastSuccess:
		return theme.Good.Render("✓ " + t.text)
	case t.kind == ToastFailure:
		return theme.Bad.Render("✗ " + t.text)
	default:
		return theme.Hot.Render("• " + t.text)
	}
}
