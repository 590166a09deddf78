package focus

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	boarddto "lifeos/internal/modules/board/dto"
	apperrors "lifeos/internal/platform/errors"
	"lifeos/internal/platform/i18n"
	"lifeos/internal/ui/components"
	"lifeos/internal/ui/theme"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type BoardPort interface {
	Load(ctx context.Context) error
	Snapshot() boarddto.BoardOutput
	BeginToggle(taskID int64) (boarddto.PendingOp, error)
	CommitToggle(ctx context.Context, op boarddto.PendingOp) (boarddto.ToggleOutput, error)
	BeginDelete(taskID int64) (boarddto.PendingOp, error)
	CommitDelete(ctx context.Context, op boarddto.PendingOp) error
	CreateTask(ctx context.Context, input boarddto.TaskInput) (boarddto.TaskOutput, error)
	EditTask(ctx context.Context, id int64, input boarddto.TaskInput) (boarddto.TaskOutput, error)
	MagicDraft(ctx context.Context, text string) (boarddto.DraftOutput, error)
	BreakDown(ctx context.Context, goal string) (boarddto.BreakdownOutput, error)
}

// SpeechPort may be nil when no transcriber is wired.
type SpeechPort interface {
	Dictate(ctx context.Context, draft string) (string, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type loadedMsg struct{ err error }

type toggledMsg struct {
	out boarddto.ToggleOutput
	err error
}

type deletedMsg struct {
	title string
	err   error
}

type savedMsg struct {
	task    boarddto.TaskOutput
	editing bool
	err     error
}

type draftedMsg struct {
	draft boarddto.DraftOutput
	err   error
}

type brokenDownMsg struct {
	out boarddto.BreakdownOutput
	err error
}

type dictatedMsg struct {
	text string
	err  error
}

// AddTaskMsg opens the add-task input, typically from the host main button.
type AddTaskMsg struct{}

// SubmitMsg runs an add, magic draft or breakdown without the input form.
type SubmitMsg struct {
	Kind string // "add", "magic" or "breakdown"
	Text string
}

// ─── list item ───────────────────────────────────────────────────────────────

type taskItem struct {
	task boarddto.TaskOutput
}

func (i taskItem) Title() string {
	box := "[ ]"
	if i.task.IsDoneToday {
		box = "[x]"
	}
	return box + " " + i.task.Title
}

func (i taskItem) Description() string {
	parts := []string{}
	if i.task.NicheName != "" {
		parts = append(parts, strings.TrimSpace(i.task.Glyph+" "+i.task.NicheName))
	}
	if i.task.Recurring {
		parts = append(parts, "↻")
	}
	if i.task.ScheduledTime != "" {
		parts = append(parts, i.task.ScheduledTime)
	}
	return strings.Join(parts, " · ")
}

func (i taskItem) FilterValue() string { return i.task.Title }

// ─── model ───────────────────────────────────────────────────────────────────

type inputMode int

const (
	modeBrowse inputMode = iota
	modeAdd
	modeEdit
	modeMagic
	modeBreakdown
)

type Model struct {
	ctx    context.Context
	board  BoardPort
	speech SpeechPort
	lang   i18n.Lang

	list      list.Model
	input     textinput.Model
	spinner   spinner.Model
	mode      inputMode
	recurring bool
	editID    int64

	// nicheIdx 0 means all niches; otherwise Niches[nicheIdx-1].
	nicheIdx   int
	draftNiche int64
	busy       bool
	width      int
	height     int
}

func New(ctx context.Context, board BoardPort, speech SpeechPort, lang i18n.Lang) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	ti := textinput.New()
	ti.CharLimit = 200

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	m := Model{ctx: ctx, board: board, speech: speech, list: l, input: ti, spinner: sp}
	m.SetLang(lang)
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.spinner.Tick)
}

func (m *Model) SetLang(lang i18n.Lang) {
	m.lang = lang
	m.list.Title = lang.T("focus.today")
}

// Editing reports whether keystrokes belong to a text input.
func (m Model) Editing() bool {
	return m.mode != modeBrowse || m.list.FilterState() == list.Filtering
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case loadedMsg:
		m.rebuild()
		return m, components.BoardChanged

	case components.BoardChangedMsg:
		m.rebuild()
		return m, nil

	case toggledMsg:
		m.rebuild()
		if msg.err != nil {
			return m, tea.Batch(components.Fail("toggle", msg.err), components.BoardChanged)
		}
		switch {
		case msg.out.LevelUp:
			return m, tea.Batch(components.Cue("level-up"), components.BoardChanged,
				components.Notify(components.ToastSuccess, fmt.Sprintf("Level up! %s %d", m.lang.T("header.level"), msg.out.Profile.Level)))
		case msg.out.Status == "done":
			return m, tea.Batch(components.Cue("success"), components.BoardChanged)
		}
		return m, components.BoardChanged

	case deletedMsg:
		m.rebuild()
		if msg.err != nil {
			return m, tea.Batch(components.Fail("delete", msg.err), components.BoardChanged)
		}
		return m, tea.Batch(components.Cue("delete"), components.Notify(components.ToastInfo, "deleted: "+msg.title))

	case savedMsg:
		m.busy = false
		if msg.err != nil {
			return m, components.Fail("save", msg.err)
		}
		m.rebuild()
		verb := "added: "
		if msg.editing {
			verb = "updated: "
		}
		return m, tea.Batch(components.Notify(components.ToastSuccess, verb+msg.task.Title), components.BoardChanged)

	case draftedMsg:
		m.busy = false
		if msg.err != nil {
			return m, components.Fail("magic", msg.err)
		}
		m.recurring = msg.draft.Recurring
		m.draftNiche = msg.draft.NicheID
		cmd := m.openInput(modeAdd, msg.draft.Title)
		note := "suggested niche not found"
		if msg.draft.Matched {
			note = "niche: " + msg.draft.NicheName
		}
		return m, tea.Batch(cmd, components.Notify(components.ToastInfo, note))

	case brokenDownMsg:
		m.busy = false
		m.rebuild()
		text := fmt.Sprintf("created %d/%d subtasks", len(msg.out.Created), msg.out.Total)
		if msg.err != nil {
			return m, tea.Batch(components.Notify(components.ToastFailure, text+": "+msg.err.Error()), components.BoardChanged)
		}
		return m, tea.Batch(components.Notify(components.ToastSuccess, text), components.BoardChanged)

	case dictatedMsg:
		m.busy = false
		if msg.err != nil {
			if errors.Is(msg.err, apperrors.ErrUnsupported) {
				return m, components.Notify(components.ToastInfo, m.lang.T("speech.unsupported"))
			}
			return m, components.Fail("voice", msg.err)
		}
		if m.mode == modeBrowse {
			return m, m.openInput(modeAdd, msg.text)
		}
		m.input.SetValue(msg.text)
		m.input.CursorEnd()
		return m, nil

	case AddTaskMsg:
		if m.mode == modeBrowse {
			m.recurring = false
			m.draftNiche = 0
			return m, m.openInput(modeAdd, "")
		}
		return m, nil

	case SubmitMsg:
		mode, ok := map[string]inputMode{"add": modeAdd, "magic": modeMagic, "breakdown": modeBreakdown}[msg.Kind]
		if !ok || m.busy {
			return m, nil
		}
		m.recurring = false
		m.draftNiche = 0
		return m, m.submit(mode, msg.Text)

	case tea.KeyMsg:
		if m.mode != modeBrowse {
			return m.updateInput(msg)
		}
		if m.list.FilterState() != list.Filtering {
			if cmd, handled := m.handleKey(msg); handled {
				return m, cmd
			}
		}
	}

	if !m.loading() {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	snap := m.board.Snapshot()
	switch msg.String() {
	case "r":
		if snap.Err != "" {
			return m.loadCmd(), true
		}
	case " ", "space", "enter":
		if item, ok := m.list.SelectedItem().(taskItem); ok {
			return m.toggle(item.task.ID), true
		}
	case "d", "delete":
		if item, ok := m.list.SelectedItem().(taskItem); ok {
			return m.remove(item.task), true
		}
	case "a":
		m.recurring = false
		m.draftNiche = 0
		return m.openInput(modeAdd, ""), true
	case "e":
		if item, ok := m.list.SelectedItem().(taskItem); ok {
			m.editID = item.task.ID
			m.recurring = item.task.Recurring
			m.draftNiche = item.task.NicheID
			return m.openInput(modeEdit, item.task.Title), true
		}
	case "m":
		return m.openInput(modeMagic, ""), true
	case "b":
		return m.openInput(modeBreakdown, ""), true
	case "v":
		return m.dictate(), true
	case "left", "h":
		if n := len(snap.Niches); n > 0 {
			m.nicheIdx = (m.nicheIdx + n) % (n + 1)
			m.rebuild()
		}
		return nil, true
	case "right", "l":
		if n := len(snap.Niches); n > 0 {
			m.nicheIdx = (m.nicheIdx + 1) % (n + 1)
			m.rebuild()
		}
		return nil, true
	}
	return nil, false
}

func (m Model) updateInput(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeInput()
		return m, nil
	case "ctrl+r":
		m.recurring = !m.recurring
		return m, nil
	case "ctrl+s":
		return m, m.dictate()
	case "enter":
		if m.busy {
			return m, nil
		}
		value := m.input.Value()
		mode := m.mode
		m.closeInput()
		return m, m.submit(mode, value)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) submit(mode inputMode, value string) tea.Cmd {
	board, ctx := m.board, m.ctx
	recurring := m.recurring
	input := boarddto.TaskInput{Title: value, NicheID: m.currentNicheID(), Recurring: &recurring}
	if m.draftNiche != 0 {
		input.NicheID = m.draftNiche
	}
	switch mode {
	case modeAdd:
		if strings.TrimSpace(value) == "" {
			return components.Notify(components.ToastFailure, "title is required")
		}
		m.busy = true
		return func() tea.Msg {
			task, err := board.CreateTask(ctx, input)
			return savedMsg{task: task, err: err}
		}
	case modeEdit:
		id := m.editID
		for _, t := range board.Snapshot().Tasks {
			if t.ID == id {
				input.Description = t.Description
				input.ScheduledTime = t.ScheduledTime
			}
		}
		m.busy = true
		return func() tea.Msg {
			task, err := board.EditTask(ctx, id, input)
			return savedMsg{task: task, editing: true, err: err}
		}
	case modeMagic:
		m.busy = true
		return func() tea.Msg {
			d, err := board.MagicDraft(ctx, value)
			return draftedMsg{draft: d, err: err}
		}
	case modeBreakdown:
		m.busy = true
		return tea.Batch(components.Notify(components.ToastInfo, "breaking down…"), func() tea.Msg {
			out, err := board.BreakDown(ctx, value)
			return brokenDownMsg{out: out, err: err}
		})
	}
	return nil
}

// toggle applies the change before returning; the network call runs in the
// returned command.
func (m *Model) toggle(id int64) tea.Cmd {
	op, err := m.board.BeginToggle(id)
	if err != nil {
		return components.Fail("toggle", err)
	}
	m.rebuild()
	board, ctx := m.board, m.ctx
	return func() tea.Msg {
		out, err := board.CommitToggle(ctx, op)
		return toggledMsg{out: out, err: err}
	}
}

func (m *Model) remove(task boarddto.TaskOutput) tea.Cmd {
	op, err := m.board.BeginDelete(task.ID)
	if err != nil {
		return components.Fail("delete", err)
	}
	m.rebuild()
	board, ctx := m.board, m.ctx
	return func() tea.Msg {
		return deletedMsg{title: task.Title, err: board.CommitDelete(ctx, op)}
	}
}

func (m *Model) dictate() tea.Cmd {
	if m.speech == nil {
		return components.Notify(components.ToastInfo, m.lang.T("speech.unsupported"))
	}
	m.busy = true
	speech, ctx, draft := m.speech, m.ctx, m.input.Value()
	if m.mode == modeBrowse {
		draft = ""
	}
	return tea.Batch(components.Notify(components.ToastInfo, "listening…"), func() tea.Msg {
		text, err := speech.Dictate(ctx, draft)
		return dictatedMsg{text: text, err: err}
	})
}

func (m *Model) openInput(mode inputMode, value string) tea.Cmd {
	m.mode = mode
	switch mode {
	case modeMagic:
		m.input.Placeholder = "describe the task in your own words"
	case modeBreakdown:
		m.input.Placeholder = m.lang.T("focus.breakdown")
	default:
		m.input.Placeholder = m.lang.T("focus.add")
	}
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *Model) closeInput() {
	m.mode = modeBrowse
	m.input.Blur()
	m.input.SetValue("")
}

func (m Model) loadCmd() tea.Cmd {
	board, ctx := m.board, m.ctx
	return func() tea.Msg { return loadedMsg{err: board.Load(ctx)} }
}

func (m Model) loading() bool {
	snap := m.board.Snapshot()
	return snap.Loading && len(snap.Tasks) == 0
}

func (m Model) currentNicheID() int64 {
	niches := m.board.Snapshot().Niches
	if m.nicheIdx == 0 || m.nicheIdx > len(niches) {
		return 0
	}
	return niches[m.nicheIdx-1].ID
}

// rebuild refreshes list items from the board snapshot, keeping the cursor.
func (m *Model) rebuild() {
	snap := m.board.Snapshot()
	if m.nicheIdx > len(snap.Niches) {
		m.nicheIdx = 0
	}
	filter := m.currentNicheID()
	items := make([]list.Item, 0, len(snap.Tasks))
	for _, t := range snap.Tasks {
		if filter != 0 && t.NicheID != filter {
			continue
		}
		items = append(items, taskItem{task: t})
	}
	idx := m.list.Index()
	m.list.SetItems(items)
	if idx >= len(items) {
		idx = len(items) - 1
	}
	if idx >= 0 {
		m.list.Select(idx)
	}
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	snap := m.board.Snapshot()
	if snap.Loading && len(snap.Tasks) == 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" "+m.lang.T("focus.loading"))
	}
	if snap.Err != "" && len(snap.Tasks) == 0 && len(snap.Niches) == 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			theme.Bad.Render(snap.Err)+"\n\n"+theme.Muted.Render(m.lang.T("focus.retry")))
	}

	nicheW := m.width / 4
	taskW := m.width - nicheW

	var body string
	if len(m.list.Items()) == 0 && m.list.FilterState() == list.Unfiltered {
		body = theme.Title.Render(m.list.Title) + "\n\n" + theme.Muted.Render(m.lang.T("focus.empty"))
	} else {
		body = m.list.View()
	}
	if m.mode != modeBrowse {
		body = m.renderInput() + "\n\n" + body
	}
	if snap.Err != "" {
		body = theme.Bad.Render("! "+snap.Err) + theme.Muted.Render("  (r: retry)") + "\n" + body
	}

	nichePane := lipgloss.NewStyle().Width(nicheW).Height(m.height).Render(m.renderNiches(snap.Niches))
	taskPane := lipgloss.NewStyle().Width(taskW).Height(m.height).Render(body)
	return lipgloss.JoinHorizontal(lipgloss.Top, nichePane, taskPane)
}

func (m Model) renderNiches(niches []boarddto.NicheOutput) string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(m.lang.T("focus.niches")) + "\n\n")
	line := func(active bool, label string) {
		if active {
			sb.WriteString(theme.Hot.Render("› "+label) + "\n")
			return
		}
		sb.WriteString("  " + label + "\n")
	}
	line(m.nicheIdx == 0, "all")
	for i, n := range niches {
		label := strings.TrimSpace(n.Glyph + " " + n.Name)
		if n.Color != "" {
			label = lipgloss.NewStyle().Foreground(lipgloss.Color(n.Color)).Render(label)
		}
		line(m.nicheIdx == i+1, label)
	}
	sb.WriteString("\n" + theme.Muted.Render("←/→ filter"))
	return sb.String()
}

func (m Model) renderInput() string {
	label := "new task"
	switch m.mode {
	case modeEdit:
		label = "edit task"
	case modeMagic:
		label = "magic draft"
	case modeBreakdown:
		label = "break down goal"
	}
	flags := ""
	if m.mode == modeAdd || m.mode == modeEdit {
		box := "[ ]"
		if m.recurring {
			box = "[x]"
		}
		flags = "  " + theme.Muted.Render(box+" "+m.lang.T("focus.recurring")+" (ctrl+r)")
	}
	hint := theme.Muted.Render("enter: save  esc: cancel  ctrl+s: voice")
	if m.busy {
		hint = m.spinner.View() + " working…"
	}
	return theme.PaneActive.Width(max(m.width*3/4-4, 20)).Render(
		theme.Title.Render(label) + flags + "\n" + m.input.View() + "\n" + hint)
}

func (m *Model) resize() {
	taskW := m.width - m.width/4
	m.list.SetSize(taskW, m.height)
	m.input.Width = max(taskW-10, 10)
}
