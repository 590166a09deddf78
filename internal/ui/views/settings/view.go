package settings

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	boarddto "lifeos/internal/modules/board/dto"
	systemdto "lifeos/internal/modules/system/dto"
	"lifeos/internal/platform/i18n"
	"lifeos/internal/ui/components"
	"lifeos/internal/ui/theme"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type BoardPort interface {
	Snapshot() boarddto.BoardOutput
	Refresh(ctx context.Context, quiet bool) error
	CreateNiche(ctx context.Context, input boarddto.NicheInput) (boarddto.NicheOutput, error)
	DeleteNiche(ctx context.Context, id int64) error
	LinkTelegram(ctx context.Context, chatID string) (boarddto.ProfileOutput, error)
	Stats(ctx context.Context) (boarddto.StatsOutput, error)
}

type SystemPort interface {
	Reset(ctx context.Context, confirm string) (string, error)
	Health(ctx context.Context, verify bool) (systemdto.HealthOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

// ToggleThemeMsg and ToggleLangMsg are handled by the shell, which owns the
// preference store.
type ToggleThemeMsg struct{}

type ToggleLangMsg struct{}

type nicheSavedMsg struct {
	niche boarddto.NicheOutput
	err   error
}

type nicheDeletedMsg struct {
	name string
	err  error
}

type linkedMsg struct {
	chatID string
	err    error
}

type healthMsg struct {
	out systemdto.HealthOutput
	err error
}

type statsMsg struct {
	out boarddto.StatsOutput
	err error
}

type resetMsg struct {
	status string
	err    error
}

// ─── model ───────────────────────────────────────────────────────────────────

type inputMode int

const (
	modeNone inputMode = iota
	modeNiche
	modeTelegram
	modeReset
)

type Model struct {
	ctx    context.Context
	board  BoardPort
	system SystemPort
	lang   i18n.Lang
	// hostChatID prefills the Telegram link when running inside Telegram.
	hostChatID string

	cursor        int
	confirmDelete bool
	mode          inputMode
	input         textinput.Model
	health        *systemdto.HealthOutput
	stats         *boarddto.StatsOutput
	width         int
	height        int
}

func New(ctx context.Context, board BoardPort, system SystemPort, lang i18n.Lang, hostChatID string) Model {
	ti := textinput.New()
	ti.CharLimit = 80
	return Model{ctx: ctx, board: board, system: system, lang: lang, hostChatID: hostChatID, input: ti}
}

func (m *Model) SetLang(lang i18n.Lang) { m.lang = lang }

func (m Model) Editing() bool { return m.mode != modeNone }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width/2-8, 10)

	case components.BoardChangedMsg:
		m.clampCursor()

	case nicheSavedMsg:
		if msg.err != nil {
			return m, components.Fail("niche", msg.err)
		}
		return m, tea.Batch(components.Notify(components.ToastSuccess, "niche added: "+msg.niche.Name), components.BoardChanged)

	case nicheDeletedMsg:
		m.clampCursor()
		if msg.err != nil {
			return m, components.Fail("delete niche", msg.err)
		}
		return m, tea.Batch(components.Notify(components.ToastInfo, "niche deleted: "+msg.name), components.Cue("delete"), components.BoardChanged)

	case linkedMsg:
		if msg.err != nil {
			return m, components.Fail("telegram", msg.err)
		}
		return m, tea.Batch(components.Notify(components.ToastSuccess, "telegram linked: "+msg.chatID), components.BoardChanged)

	case healthMsg:
		if msg.err != nil {
			return m, components.Fail("health", msg.err)
		}
		m.health = &msg.out

	case statsMsg:
		if msg.err != nil {
			return m, components.Fail("stats", msg.err)
		}
		m.stats = &msg.out

	case resetMsg:
		if msg.err != nil {
			return m, components.Fail("reset", msg.err)
		}
		board, ctx := m.board, m.ctx
		return m, tea.Batch(components.Notify(components.ToastInfo, msg.status), func() tea.Msg {
			_ = board.Refresh(ctx, false)
			return components.BoardChangedMsg{}
		})

	case tea.KeyMsg:
		if m.mode != modeNone {
			return m.updateInput(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	niches := m.board.Snapshot().Niches
	if m.confirmDelete {
		m.confirmDelete = false
		if msg.String() == "y" && m.cursor < len(niches) {
			n := niches[m.cursor]
			board, ctx := m.board, m.ctx
			return m, func() tea.Msg { return nicheDeletedMsg{name: n.Name, err: board.DeleteNiche(ctx, n.ID)} }
		}
		return m, nil
	}
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(niches)-1 {
			m.cursor++
		}
	case "a":
		return m, m.open(modeNiche, "", "niche name")
	case "d":
		if m.cursor < len(niches) {
			m.confirmDelete = true
		}
	case "t":
		return m, func() tea.Msg { return ToggleThemeMsg{} }
	case "L":
		return m, func() tea.Msg { return ToggleLangMsg{} }
	case "g":
		current := m.board.Snapshot().Profile.TelegramChatID
		if current == "" {
			current = m.hostChatID
		}
		return m, m.open(modeTelegram, current, "telegram chat id")
	case "H":
		system, ctx := m.system, m.ctx
		return m, func() tea.Msg {
			out, err := system.Health(ctx, true)
			return healthMsg{out: out, err: err}
		}
	case "s":
		board, ctx := m.board, m.ctx
		return m, func() tea.Msg {
			out, err := board.Stats(ctx)
			return statsMsg{out: out, err: err}
		}
	case "R":
		return m, m.open(modeReset, "", "RESET")
	}
	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.close()
		return m, nil
	case "enter":
		value := strings.TrimSpace(m.input.Value())
		mode := m.mode
		m.close()
		board, system, ctx := m.board, m.system, m.ctx
		switch mode {
		case modeNiche:
			return m, func() tea.Msg {
				n, err := board.CreateNiche(ctx, boarddto.NicheInput{Name: value})
				return nicheSavedMsg{niche: n, err: err}
			}
		case modeTelegram:
			return m, func() tea.Msg {
				_, err := board.LinkTelegram(ctx, value)
				return linkedMsg{chatID: value, err: err}
			}
		case modeReset:
			return m, func() tea.Msg {
				status, err := system.Reset(ctx, value)
				return resetMsg{status: status, err: err}
			}
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) open(mode inputMode, value, placeholder string) tea.Cmd {
	m.mode = mode
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *Model) close() {
	m.mode = modeNone
	m.input.Blur()
	m.input.SetValue("")
}

func (m *Model) clampCursor() {
	if n := len(m.board.Snapshot().Niches); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	snap := m.board.Snapshot()

	var left strings.Builder
	left.WriteString(theme.Title.Render(m.lang.T("settings.niches")) + "\n\n")
	for i, n := range snap.Niches {
		line := fmt.Sprintf("%s %s", n.Glyph, n.Name)
		if i == m.cursor {
			line = theme.Hot.Render("› " + line)
			if m.confirmDelete {
				line += theme.Bad.Render("  delete? y/n")
			}
		} else {
			line = "  " + line
		}
		left.WriteString(line + "\n")
	}
	left.WriteString("\n" + theme.Muted.Render("a: add  d: delete"))
	if m.mode == modeNiche {
		left.WriteString("\n\n" + m.input.View())
	}

	var right strings.Builder
	right.WriteString(theme.Title.Render(m.lang.T("settings.theme")) + "  " + theme.Current() + theme.Muted.Render("  (t)") + "\n")
	right.WriteString(theme.Title.Render(m.lang.T("settings.language")) + "  " + string(m.lang) + theme.Muted.Render("  (L)") + "\n\n")

	right.WriteString(theme.Title.Render(m.lang.T("settings.telegram")) + "  ")
	if chat := snap.Profile.TelegramChatID; chat != "" {
		right.WriteString(theme.Good.Render(chat))
	} else {
		right.WriteString(theme.Muted.Render("not linked"))
	}
	right.WriteString(theme.Muted.Render("  (g)") + "\n")
	if m.mode == modeTelegram {
		right.WriteString(m.input.View() + "\n")
	}

	if m.stats != nil {
		s := m.stats
		right.WriteString(fmt.Sprintf("\n%s  %d/%d today (%.0f%%), %d in 7 days, streak %d\n",
			theme.Title.Render("Stats"), s.CompletedToday, s.TotalActiveToday, s.CompletionRateToday*100, s.CompletedLast7Days, s.Streak))
	} else {
		right.WriteString("\n" + theme.Muted.Render("s: stats") + "\n")
	}

	right.WriteString("\n" + theme.Title.Render("Health") + theme.Muted.Render("  (H)") + "\n")
	if m.health != nil {
		for _, c := range m.health.Credentials {
			mark := theme.Good.Render("●")
			if !c.OK {
				mark = theme.Bad.Render("●")
			}
			state := c.State
			if c.Verified != "" {
				state += " / " + c.Verified
			}
			right.WriteString(fmt.Sprintf("%s %-9s %s\n", mark, c.Name, theme.Muted.Render(state)))
		}
	}

	right.WriteString("\n" + theme.Bad.Render(m.lang.T("settings.reset")) + theme.Muted.Render("  (R)") + "\n")
	if m.mode == modeReset {
		right.WriteString(m.input.View() + "\n")
	}

	half := m.width / 2
	return lipgloss.JoinHorizontal(lipgloss.Top,
		theme.Pane.Width(max(half-2, 20)).Render(left.String()),
		theme.Pane.Width(max(m.width-half-2, 20)).Render(right.String()))
}
