package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	assistantdto "lifeos/internal/modules/assistant/dto"
	boarddto "lifeos/internal/modules/board/dto"
	imagingdto "lifeos/internal/modules/imaging/dto"
	opsdto "lifeos/internal/modules/ops/dto"
	shopdto "lifeos/internal/modules/shop/dto"
	systemdto "lifeos/internal/modules/system/dto"
	"lifeos/internal/platform/i18n"
	"lifeos/internal/platform/prefs"
	"lifeos/internal/ui/components"
	"lifeos/internal/ui/theme"
	commandview "lifeos/internal/ui/views/command"
	focusview "lifeos/internal/ui/views/focus"
	labview "lifeos/internal/ui/views/lab"
	settingsview "lifeos/internal/ui/views/settings"
	shopview "lifeos/internal/ui/views/shop"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Sub-view ports are defined in their own packages; these are the union the
// shell needs to build them plus what it calls itself.

type boardPort interface {
	focusview.BoardPort
	Refresh(ctx context.Context, quiet bool) error
	CreateNiche(ctx context.Context, input boarddto.NicheInput) (boarddto.NicheOutput, error)
	DeleteNiche(ctx context.Context, id int64) error
	LinkTelegram(ctx context.Context, chatID string) (boarddto.ProfileOutput, error)
	Stats(ctx context.Context) (boarddto.StatsOutput, error)
}

type shopPort interface {
	Items() []shopdto.ItemOutput
	Achievements() []shopdto.AchievementOutput
	Purchase(ctx context.Context, key string) (shopdto.PurchaseOutput, error)
}

type assistantPort interface {
	DailySummary(ctx context.Context) (assistantdto.TextOutput, error)
	Hooks(ctx context.Context, modelName string) (assistantdto.TextOutput, error)
	Plan(ctx context.Context, brief string) (assistantdto.TextOutput, error)
}

type imagingPort interface {
	Magic(ctx context.Context, input imagingdto.TransformInput) (imagingdto.TransformOutput, error)
	FaceSwap(ctx context.Context, input imagingdto.TransformInput) (imagingdto.TransformOutput, error)
	Modes() []string
}

type opsPort interface {
	Windows(ctx context.Context) (opsdto.ScheduleOutput, error)
	Notify(ctx context.Context, deepLink string) (opsdto.NoticeOutput, error)
	Models(ctx context.Context) ([]opsdto.ModelOutput, error)
	PatchModel(ctx context.Context, id int64, patch opsdto.ModelPatchInput) (opsdto.ModelOutput, error)
	Accounts(ctx context.Context) ([]opsdto.AccountOutput, error)
	PatchAccount(ctx context.Context, id int64, patch opsdto.AccountPatchInput) (opsdto.AccountOutput, error)
}

type systemPort interface {
	Reset(ctx context.Context, confirm string) (string, error)
	Health(ctx context.Context, verify bool) (systemdto.HealthOutput, error)
}

type feedbackPort interface {
	Dictate(ctx context.Context, draft string) (string, error)
	Cue(ctx context.Context, event string)
}

type prefsPort interface {
	Set(ctx context.Context, key, value string) error
}

// hostKeys routes host chrome buttons that were mapped onto keys.
type hostKeys interface {
	Dispatch(key string) bool
	MainLabel() string
}

// Deps is everything the shell is built from. Feedback, Prefs and Host may
// be nil.
type Deps struct {
	Board     boardPort
	Shop      shopPort
	Assistant assistantPort
	Imaging   imagingPort
	Ops       opsPort
	System    systemPort
	Feedback  feedbackPort
	Prefs     prefsPort
	Host      hostKeys

	Lang            i18n.Lang
	HostChatID      string
	RefreshInterval time.Duration
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabFocus tabID = iota
	tabShop
	tabSettings
	tabLab
	tabCommand
	tabCount
)

var tabKeys = [tabCount]string{"tab.focus", "tab.shop", "tab.settings", "tab.lab", "tab.command"}

// ─── async messages ──────────────────────────────────────────────────────────

type refreshTickMsg struct{}

type refreshedMsg struct{ err error }

// BackMsg returns to the Focus tab, typically from the host back button.
type BackMsg struct{}

// ─── key bindings ────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Toggle  key.Binding
	Add     key.Binding
	Edit    key.Binding
	Delete  key.Binding
	Magic   key.Binding
	Break   key.Binding
	Voice   key.Binding
	Niche   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Toggle:  key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "done / undo")),
		Add:     key.NewBinding(key.WithKeys("a", "ctrl+n"), key.WithHelp("a/ctrl+n", "add task")),
		Edit:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Magic:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "magic draft")),
		Break:   key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "break down goal")),
		Voice:   key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "voice")),
		Niche:   key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "niche filter")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Add, k.Edit, k.Delete},
		{k.Magic, k.Break, k.Voice, k.Niche},
		{k.Tab, k.Help, k.Palette, k.Quit},
	}
}

var paletteHints = []string{
	"task:add <title>",
	"task:draft <text>",
	"task:breakdown <goal>",
	"niche:add <name>",
	"shop:buy <key>",
	"lab:hooks <model>",
	"lab:plan <brief>",
	"lab:summary",
	"lab:magic <path> [out]",
	"lab:faceswap <path> [out]",
	"ops:notify [deep-link]",
	"theme:toggle",
	"lang:toggle",
	"refresh",
	"quit",
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the gamification
// header, quiet refresh, toasts, the help overlay and the command palette.
type Model struct {
	ctx  context.Context
	deps Deps
	lang i18n.Lang

	focusView    focusview.Model
	shopView     shopview.Model
	settingsView settingsview.Model
	labView      labview.Model
	commandView  commandview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	toast     components.Toast
	xpBar     progress.Model
	width     int
	height    int
}

func NewModel(ctx context.Context, deps Deps) Model {
	lang := deps.Lang
	if lang == "" {
		lang = i18n.EN
	}
	var speech focusview.SpeechPort
	if deps.Feedback != nil {
		speech = deps.Feedback
	}
	return Model{
		ctx:          ctx,
		deps:         deps,
		lang:         lang,
		focusView:    focusview.New(ctx, deps.Board, speech, lang),
		shopView:     shopview.New(ctx, deps.Shop, lang),
		settingsView: settingsview.New(ctx, deps.Board, deps.System, lang, deps.HostChatID),
		labView:      labview.New(ctx, deps.Assistant, deps.Imaging, lang),
		commandView:  commandview.New(ctx, deps.Ops, lang),
		activeTab:    tabFocus,
		keys:         defaultKeys(),
		help:         help.New(),
		palette:      components.NewPalette(paletteHints),
		xpBar:        newXPBar(24),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.focusView.Init(), m.commandView.Init(), m.scheduleRefresh())
}

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// The palette intercepts all input while open.
	if _, isKey := msg.(tea.KeyMsg); isKey && m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.xpBar.Width = max(min(m.width/4, 30), 10)
		return m, m.broadcast(tea.WindowSizeMsg{Width: m.width, Height: m.contentHeight()})

	case refreshTickMsg:
		board, ctx := m.deps.Board, m.ctx
		return m, func() tea.Msg { return refreshedMsg{err: board.Refresh(ctx, true)} }

	case refreshedMsg:
		return m, tea.Batch(m.broadcast(components.BoardChangedMsg{}), m.scheduleRefresh())

	case components.ToastMsg:
		var cmd tea.Cmd
		m.toast, cmd = m.toast.Show(msg)
		return m, cmd

	case components.CueMsg:
		if m.deps.Feedback == nil {
			return m, nil
		}
		fb, ctx, event := m.deps.Feedback, m.ctx, msg.Event
		return m, func() tea.Msg { fb.Cue(ctx, event); return nil }

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		return m, nil

	case settingsview.ToggleThemeMsg:
		next := theme.Dark
		if theme.Current() == theme.Dark {
			next = theme.Light
		}
		theme.Use(next)
		m.xpBar = newXPBar(m.xpBar.Width)
		return m, m.savePref(prefs.KeyTheme, next)

	case settingsview.ToggleLangMsg:
		m.setLang(m.lang.Toggle())
		return m, m.savePref(prefs.KeyLanguage, string(m.lang))

	case BackMsg:
		m.activeTab = tabFocus
		return m, nil

	case focusview.AddTaskMsg:
		m.activeTab = tabFocus
		var cmd tea.Cmd
		m.focusView, cmd = m.focusView.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	m.toast = m.toast.Update(msg)
	return m, m.broadcast(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.showHelp {
		if msg.String() == "?" || msg.String() == "esc" {
			m.showHelp = false
		}
		return m, nil
	}

	// Yield to the active view while it owns the keyboard.
	if !m.activeEditing() {
		if m.deps.Host != nil && m.deps.Host.Dispatch(msg.String()) {
			return m, nil
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "tab":
			return m, m.switchTab((m.activeTab + 1) % tabCount)
		case "shift+tab":
			return m, m.switchTab((m.activeTab + tabCount - 1) % tabCount)
		case "?":
			m.showHelp = true
			return m, nil
		case ":":
			return m, m.palette.Open()
		}
	}

	var cmd tea.Cmd
	switch m.activeTab {
	case tabFocus:
		m.focusView, cmd = m.focusView.Update(msg)
	case tabShop:
		m.shopView, cmd = m.shopView.Update(msg)
	case tabSettings:
		m.settingsView, cmd = m.settingsView.Update(msg)
	case tabLab:
		m.labView, cmd = m.labView.Update(msg)
	case tabCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	}
	return m, cmd
}

// broadcast hands a non-key message to every view so async results reach
// the view that asked for them even after a tab switch.
func (m *Model) broadcast(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, 5)
	m.focusView, cmds[0] = m.focusView.Update(msg)
	m.shopView, cmds[1] = m.shopView.Update(msg)
	m.settingsView, cmds[2] = m.settingsView.Update(msg)
	m.labView, cmds[3] = m.labView.Update(msg)
	m.commandView, cmds[4] = m.commandView.Update(msg)
	return tea.Batch(cmds...)
}

func (m *Model) switchTab(t tabID) tea.Cmd {
	m.activeTab = t
	if t == tabCommand {
		return m.commandView.Activate()
	}
	return nil
}

func (m Model) activeEditing() bool {
	switch m.activeTab {
	case tabFocus:
		return m.focusView.Editing()
	case tabSettings:
		return m.settingsView.Editing()
	case tabLab:
		return m.labView.Editing()
	case tabCommand:
		return m.commandView.Editing()
	}
	return false
}

func (m *Model) setLang(lang i18n.Lang) {
	m.lang = lang
	m.focusView.SetLang(lang)
	m.shopView.SetLang(lang)
	m.settingsView.SetLang(lang)
	m.labView.SetLang(lang)
	m.commandView.SetLang(lang)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	header := m.renderHeader()
	statusBar := m.renderStatusBar()
	contentH := m.contentHeight()

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = lipgloss.NewStyle().Height(contentH).MaxHeight(contentH).Render(m.activeView())
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

func (m Model) contentHeight() int {
	return max(m.height-4, 1)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabFocus:
		return m.focusView.View()
	case tabShop:
		return m.shopView.View()
	case tabSettings:
		return m.settingsView.View()
	case tabLab:
		return m.labView.View()
	case tabCommand:
		return m.commandView.View()
	}
	return ""
}

func (m Model) renderHeader() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := m.lang.T(tabKeys[i])
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	tabs := "Life OS  " + strings.Join(parts, theme.Muted.Render("│"))

	snap := m.deps.Board.Snapshot()
	var stats string
	if snap.HasProfile {
		p := snap.Profile
		stats = fmt.Sprintf("%s %d %s %d/%d XP  🔥 %d %s",
			m.lang.T("header.level"), p.Level, m.xpBar.ViewAs(p.Progress), p.XP, max(p.Level, 1)*100, p.Streak, m.lang.T("header.streak"))
	}
	gap := max(m.width-lipgloss.Width(tabs)-lipgloss.Width(stats), 1)
	bar := tabs + strings.Repeat(" ", gap) + stats
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.toast.View()
	if left == "" {
		left = theme.Muted.Render(m.lang.T("status.ready"))
		if synced := m.deps.Board.Snapshot().SyncedAt; !synced.IsZero() {
			left = theme.Muted.Render(m.lang.T("status.synced") + " " + synced.Local().Format("15:04:05"))
		}
	}
	hints := "?:help  tab:switch  :::palette  q:quit"
	if m.deps.Host != nil {
		if label := m.deps.Host.MainLabel(); label != "" {
			hints = "ctrl+n:" + label + "  " + hints
		}
	}
	right := theme.Muted.Render(hints)
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ───────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	name, arg, _ := strings.Cut(strings.TrimSpace(input), " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case "task:add", "task:draft", "task:breakdown":
		m.activeTab = tabFocus
		kind := map[string]string{"task:add": "add", "task:draft": "magic", "task:breakdown": "breakdown"}[name]
		var cmd tea.Cmd
		m.focusView, cmd = m.focusView.Update(focusview.SubmitMsg{Kind: kind, Text: arg})
		return m, cmd

	case "niche:add":
		board, ctx := m.deps.Board, m.ctx
		return m, func() tea.Msg {
			n, err := board.CreateNiche(ctx, boarddto.NicheInput{Name: arg})
			if err != nil {
				return components.ToastMsg{Kind: components.ToastFailure, Text: "niche: " + err.Error()}
			}
			return tea.BatchMsg{components.Notify(components.ToastSuccess, "niche added: "+n.Name), components.BoardChanged}
		}

	case "shop:buy":
		m.activeTab = tabShop
		shop, ctx := m.deps.Shop, m.ctx
		return m, func() tea.Msg {
			out, err := shop.Purchase(ctx, arg)
			if err != nil {
				return components.ToastMsg{Kind: components.ToastFailure, Text: "purchase: " + err.Error()}
			}
			return tea.BatchMsg{
				components.Notify(components.ToastSuccess, fmt.Sprintf("bought %s, %d XP left", out.Item.Title, out.XP)),
				components.Cue("success"),
				components.BoardChanged,
			}
		}

	case "lab:hooks", "lab:plan", "lab:summary", "lab:magic", "lab:faceswap":
		m.activeTab = tabLab
		var cmd tea.Cmd
		m.labView, cmd = m.labView.Update(labview.RunMsg{Tool: strings.TrimPrefix(name, "lab:"), Arg: arg})
		return m, cmd

	case "ops:notify":
		ops, ctx := m.deps.Ops, m.ctx
		return m, func() tea.Msg {
			out, err := ops.Notify(ctx, arg)
			if err != nil {
				return components.ToastMsg{Kind: components.ToastFailure, Text: "notify: " + err.Error()}
			}
			return components.ToastMsg{Kind: components.ToastSuccess, Text: fmt.Sprintf("alert for %s sent: %t", out.Window.Label, out.Sent)}
		}

	case "theme:toggle":
		return m.Update(settingsview.ToggleThemeMsg{})

	case "lang:toggle":
		return m.Update(settingsview.ToggleLangMsg{})

	case "refresh":
		board, ctx := m.deps.Board, m.ctx
		return m, func() tea.Msg {
			if err := board.Refresh(ctx, false); err != nil {
				return components.ToastMsg{Kind: components.ToastFailure, Text: "refresh: " + err.Error()}
			}
			return components.BoardChangedMsg{}
		}

	case "quit":
		return m, tea.Quit
	}
	return m, components.Notify(components.ToastFailure, "unknown command: "+name)
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func newXPBar(width int) progress.Model {
	bar := progress.New(progress.WithSolidFill(string(theme.Peach)), progress.WithoutPercentage())
	bar.Width = width
	return bar
}

// ─── async commands ──────────────────────────────────────────────────────────

func (m Model) scheduleRefresh() tea.Cmd {
	if m.deps.RefreshInterval <= 0 {
		return nil
	}
	return tea.Tick(m.deps.RefreshInterval, func(time.Time) tea.Msg { return refreshTickMsg{} })
}

func (m Model) savePref(key, value string) tea.Cmd {
	if m.deps.Prefs == nil {
		return nil
	}
	store, ctx := m.deps.Prefs, m.ctx
	return func() tea.Msg {
		if err := store.Set(ctx, key, value); err != nil {
			return components.ToastMsg{Kind: components.ToastFailure, Text: "save preference: " + err.Error()}
		}
		return nil
	}
}
