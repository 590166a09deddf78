package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"

	opsdto "lifeos/internal/modules/ops/dto"
	"lifeos/internal/platform/i18n"
	"lifeos/internal/ui/components"
	"lifeos/internal/ui/theme"
)

type OpsPort interface {
	Windows(ctx context.Context) (opsdto.ScheduleOutput, error)
	Notify(ctx context.Context, deepLink string) (opsdto.NoticeOutput, error)
	Models(ctx context.Context) ([]opsdto.ModelOutput, error)
	PatchModel(ctx context.Context, id int64, patch opsdto.ModelPatchInput) (opsdto.ModelOutput, error)
	Accounts(ctx context.Context) ([]opsdto.AccountOutput, error)
	PatchAccount(ctx context.Context, id int64, patch opsdto.AccountPatchInput) (opsdto.AccountOutput, error)
}

type loadedMsg struct {
	schedule opsdto.ScheduleOutput
	models   []opsdto.ModelOutput
	accounts []opsdto.AccountOutput
	err      error
}

type modelSavedMsg struct {
	model opsdto.ModelOutput
	err   error
}

type accountSavedMsg struct {
	account opsdto.AccountOutput
	err     error
}

type notifiedMsg struct {
	out opsdto.NoticeOutput
	err error
}

type section int

const (
	sectionModels section = iota
	sectionAccounts
)

type Model struct {
	ctx  context.Context
	port OpsPort
	lang i18n.Lang

	schedule opsdto.ScheduleOutput
	models   []opsdto.ModelOutput
	accounts []opsdto.AccountOutput
	loaded   bool

	section section
	cursor  int
	status  textinput.Model
	bar     progress.Model
	width   int
	height  int
}

func New(ctx context.Context, port OpsPort, lang i18n.Lang) Model {
	ti := textinput.New()
	ti.Placeholder = "status"
	ti.CharLimit = 24
	bar := progress.New(progress.WithSolidFill(string(theme.Peach)), progress.WithoutPercentage())
	bar.Width = 20
	return Model{ctx: ctx, port: port, lang: lang, status: ti, bar: bar}
}

func (m *Model) SetLang(lang i18n.Lang) { m.lang = lang }

func (m Model) Editing() bool { return m.status.Focused() }

// Init defers loading until the tab is first shown.
func (m Model) Init() tea.Cmd { return nil }

// Activate loads the dashboard the first time the tab is opened.
func (m Model) Activate() tea.Cmd {
	if m.loaded {
		return nil
	}
	return m.loadCmd()
}

func (m Model) loadCmd() tea.Cmd {
	port, ctx := m.port, m.ctx
	return func() tea.Msg {
		var out loadedMsg
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) { out.schedule, err = port.Windows(gctx); return })
		g.Go(func() (err error) { out.models, err = port.Models(gctx); return })
		g.Go(func() (err error) { out.accounts, err = port.Accounts(gctx); return })
		out.err = g.Wait()
		return out
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case loadedMsg:
		if msg.err != nil {
			return m, components.Fail("command", msg.err)
		}
		m.loaded = true
		m.schedule, m.models, m.accounts = msg.schedule, msg.models, msg.accounts
		m.clamp()

	case modelSavedMsg:
		if msg.err != nil {
			return m, components.Fail("model", msg.err)
		}
		for i := range m.models {
			if m.models[i].ID == msg.model.ID {
				m.models[i] = msg.model
			}
		}
		return m, components.Notify(components.ToastSuccess, fmt.Sprintf("%s: %d%% %s", msg.model.Name, msg.model.Progress, msg.model.Status))

	case accountSavedMsg:
		if msg.err != nil {
			return m, components.Fail("account", msg.err)
		}
		for i := range m.accounts {
			if m.accounts[i].ID == msg.account.ID {
				m.accounts[i] = msg.account
			}
		}
		return m, components.Notify(components.ToastSuccess, fmt.Sprintf("%s: %d accounts", msg.account.Platform, msg.account.Accounts))

	case notifiedMsg:
		if msg.err != nil {
			return m, components.Fail("notify", msg.err)
		}
		if !msg.out.Sent {
			return m, components.Notify(components.ToastFailure, "alert not sent: "+msg.out.Window.Label)
		}
		return m, components.Notify(components.ToastSuccess, "alert sent: "+msg.out.Window.Label)

	case tea.KeyMsg:
		if m.status.Focused() {
			return m.updateStatus(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "r":
		return m, m.loadCmd()
	case "n":
		port, ctx := m.port, m.ctx
		return m, func() tea.Msg {
			out, err := port.Notify(ctx, "")
			return notifiedMsg{out: out, err: err}
		}
	case "left", "right", "h", "l":
		m.section = 1 - m.section
		m.clamp()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < m.rows()-1 {
			m.cursor++
		}
	case "+", "=":
		return m, m.adjust(1)
	case "-":
		return m, m.adjust(-1)
	case "s":
		if m.rows() > 0 {
			return m, m.status.Focus()
		}
	}
	return m, nil
}

func (m Model) updateStatus(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.status.Blur()
		m.status.SetValue("")
		return m, nil
	case "enter":
		value := strings.TrimSpace(m.status.Value())
		m.status.Blur()
		m.status.SetValue("")
		return m, m.patch(nil, &value)
	}
	var cmd tea.Cmd
	m.status, cmd = m.status.Update(msg)
	return m, cmd
}

// adjust moves model progress by 10 points or an account count by one.
// Out-of-range values are rejected by the usecase before any request.
func (m Model) adjust(dir int) tea.Cmd {
	if m.rows() == 0 {
		return nil
	}
	var v int
	if m.section == sectionModels {
		v = m.models[m.cursor].Progress + dir*10
	} else {
		v = m.accounts[m.cursor].Accounts + dir
	}
	return m.patch(&v, nil)
}

func (m Model) patch(value *int, status *string) tea.Cmd {
	if m.rows() == 0 {
		return nil
	}
	port, ctx := m.port, m.ctx
	if m.section == sectionModels {
		id := m.models[m.cursor].ID
		return func() tea.Msg {
			out, err := port.PatchModel(ctx, id, opsdto.ModelPatchInput{Progress: value, Status: status})
			return modelSavedMsg{model: out, err: err}
		}
	}
	id := m.accounts[m.cursor].ID
	return func() tea.Msg {
		out, err := port.PatchAccount(ctx, id, opsdto.AccountPatchInput{Accounts: value, Status: status})
		return accountSavedMsg{account: out, err: err}
	}
}

func (m Model) rows() int {
	if m.section == sectionModels {
		return len(m.models)
	}
	return len(m.accounts)
}

func (m *Model) clamp() {
	if m.cursor >= m.rows() {
		m.cursor = max(m.rows()-1, 0)
	}
}

func (m Model) View() string {
	if !m.loaded {
		return theme.Muted.Render("loading command center… (r to retry)")
	}

	var windows strings.Builder
	windows.WriteString(theme.Title.Render(m.lang.T("command.windows")) + theme.Muted.Render("  "+m.schedule.Timezone) + "\n\n")
	for _, w := range m.schedule.Windows {
		phase := theme.Muted.Render(w.Phase)
		switch w.Phase {
		case "live":
			phase = theme.Good.Render(w.Phase)
		case "alert":
			phase = theme.Hot.Render(w.Phase)
		}
		windows.WriteString(fmt.Sprintf("%-12s %s–%s  alert %s  %s\n",
			w.Label, w.Start.Format("Mon 15:04"), w.End.Format("15:04"), w.AlertAt.Format("15:04"), phase))
	}
	windows.WriteString("\n" + theme.Muted.Render("n: send alert for next window"))

	var models strings.Builder
	models.WriteString(m.sectionTitle(sectionModels, m.lang.T("command.models")) + "\n\n")
	for i, md := range m.models {
		row := fmt.Sprintf("%-12s %-10s %s %3d%%  %s", md.Name, md.Archetype, m.bar.ViewAs(float64(md.Progress)/100), md.Progress, md.Status)
		models.WriteString(m.row(sectionModels, i, row) + "\n")
	}

	var accounts strings.Builder
	accounts.WriteString(m.sectionTitle(sectionAccounts, m.lang.T("command.accounts")) + "\n\n")
	for i, a := range m.accounts {
		row := fmt.Sprintf("%-12s %4d  %s", a.Platform, a.Accounts, a.Status)
		accounts.WriteString(m.row(sectionAccounts, i, row) + "\n")
	}

	help := theme.Muted.Render("←/→ section  +/- adjust  s: status  r: reload")
	if m.status.Focused() {
		help = m.status.View()
	}

	half := m.width / 2
	matrices := lipgloss.JoinHorizontal(lipgloss.Top,
		theme.Pane.Width(max(half-2, 20)).Render(models.String()),
		theme.Pane.Width(max(m.width-half-2, 20)).Render(accounts.String()))
	return lipgloss.JoinVertical(lipgloss.Left,
		theme.Pane.Width(max(m.width-2, 20)).Render(windows.String()), matrices, help)
}

func (m Model) sectionTitle(s section, title string) string {
	if s == m.section {
		return theme.Hot.Render(title)
	}
	return theme.Title.Render(title)
}

func (m Model) row(s section, i int, text string) string {
	if s == m.section && i == m.cursor {
		return theme.Hot.Render("› ") + text
	}
	return "  " + text
}
