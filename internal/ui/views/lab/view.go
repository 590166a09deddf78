package lab

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	assistantdto "lifeos/internal/modules/assistant/dto"
	imagingdto "lifeos/internal/modules/imaging/dto"
	"lifeos/internal/platform/i18n"
	"lifeos/internal/platform/markdown"
	"lifeos/internal/ui/components"
	"lifeos/internal/ui/theme"
)

type AssistantPort interface {
	DailySummary(ctx context.Context) (assistantdto.TextOutput, error)
	Hooks(ctx context.Context, modelName string) (assistantdto.TextOutput, error)
	Plan(ctx context.Context, brief string) (assistantdto.TextOutput, error)
}

type ImagingPort interface {
	Magic(ctx context.Context, input imagingdto.TransformInput) (imagingdto.TransformOutput, error)
	FaceSwap(ctx context.Context, input imagingdto.TransformInput) (imagingdto.TransformOutput, error)
	Modes() []string
}

type tool int

const (
	toolHooks tool = iota
	toolPlan
	toolSummary
	toolMagic
	toolFaceSwap
	toolCount
)

func (t tool) label(lang i18n.Lang) string {
	switch t {
	case toolHooks:
		return lang.T("lab.hooks")
	case toolPlan:
		return lang.T("lab.plan")
	case toolSummary:
		return lang.T("lab.summary")
	case toolMagic:
		return "Magic"
	default:
		return "Face swap"
	}
}

type textMsg struct {
	out assistantdto.TextOutput
	err error
}

type imageMsg struct {
	out imagingdto.TransformOutput
	err error
}

// RunMsg starts a tool from outside the view (the command palette).
type RunMsg struct {
	Tool string
	Arg  string
}

type Model struct {
	ctx       context.Context
	assistant AssistantPort
	imaging   ImagingPort
	lang      i18n.Lang

	active  tool
	modeIdx int
	input   textinput.Model
	output  viewport.Model
	spinner spinner.Model
	busy    bool
	width   int
	height  int
}

func New(ctx context.Context, assistant AssistantPort, imaging ImagingPort, lang i18n.Lang) Model {
	ti := textinput.New()
	ti.CharLimit = 500
	vp := viewport.New(0, 0)
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	m := Model{ctx: ctx, assistant: assistant, imaging: imaging, lang: lang, input: ti, output: vp, spinner: sp}
	m.selectTool(toolHooks)
	return m
}

func (m *Model) SetLang(lang i18n.Lang) { m.lang = lang }

// Editing is true while the argument input has focus.
func (m Model) Editing() bool { return m.input.Focused() }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-30, 10)
		m.output.Width = max(msg.Width-4, 10)
		m.output.Height = max(msg.Height-8, 3)

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case textMsg:
		m.busy = false
		if msg.err != nil {
			return m, components.Fail(m.active.label(m.lang), msg.err)
		}
		m.show(msg.out.Markdown)
		return m, nil

	case imageMsg:
		m.busy = false
		if msg.err != nil {
			return m, components.Fail("image", msg.err)
		}
		m.show(imageMarkdown(msg.out))
		return m, components.Notify(components.ToastSuccess, "image processed")

	case RunMsg:
		for t := tool(0); t < toolCount; t++ {
			if strings.EqualFold(msg.Tool, toolName(t)) {
				m.selectTool(t)
				return m.run(msg.Arg)
			}
		}
		return m, components.Notify(components.ToastFailure, "unknown lab tool: "+msg.Tool)

	case tea.KeyMsg:
		if m.input.Focused() {
			switch msg.String() {
			case "enter":
				value := m.input.Value()
				m.input.Blur()
				return m.run(value)
			case "esc":
				m.input.Blur()
				return m, nil
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "1", "2", "3", "4", "5":
			m.selectTool(tool(msg.String()[0] - '1'))
			return m, nil
		case "i", "enter":
			if m.active == toolSummary {
				return m.run("")
			}
			return m, m.input.Focus()
		case "M":
			if modes := m.imaging.Modes(); len(modes) > 0 {
				m.modeIdx = (m.modeIdx + 1) % len(modes)
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.output, cmd = m.output.Update(msg)
		return m, cmd
	}
	return m, nil
}

func toolName(t tool) string {
	return [...]string{"hooks", "plan", "summary", "magic", "faceswap"}[t]
}

func (m *Model) selectTool(t tool) {
	m.active = t
	m.input.SetValue("")
	switch t {
	case toolHooks:
		m.input.Placeholder = "model name"
	case toolPlan:
		m.input.Placeholder = "what do you want to achieve?"
	case toolMagic, toolFaceSwap:
		m.input.Placeholder = m.lang.T("lab.image") + " [output file]"
	default:
		m.input.Placeholder = ""
	}
}

func (m Model) mode() string {
	modes := m.imaging.Modes()
	if len(modes) == 0 {
		return ""
	}
	return modes[m.modeIdx%len(modes)]
}

func (m Model) run(arg string) (Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	m.busy = true
	ctx, assistant, imaging := m.ctx, m.assistant, m.imaging
	var job tea.Cmd
	switch m.active {
	case toolHooks:
		job = func() tea.Msg { out, err := assistant.Hooks(ctx, arg); return textMsg{out, err} }
	case toolPlan:
		job = func() tea.Msg { out, err := assistant.Plan(ctx, arg); return textMsg{out, err} }
	case toolSummary:
		job = func() tea.Msg { out, err := assistant.DailySummary(ctx); return textMsg{out, err} }
	case toolMagic, toolFaceSwap:
		fields := strings.Fields(arg)
		in := imagingdto.TransformInput{Mode: m.mode()}
		if len(fields) > 0 {
			in.Path = fields[0]
		}
		if len(fields) > 1 {
			in.Out = fields[1]
		}
		if m.active == toolMagic {
			job = func() tea.Msg { out, err := imaging.Magic(ctx, in); return imageMsg{out, err} }
		} else {
			job = func() tea.Msg { out, err := imaging.FaceSwap(ctx, in); return imageMsg{out, err} }
		}
	}
	return m, tea.Batch(job, m.spinner.Tick)
}

func (m *Model) show(md string) {
	r := markdown.NewRenderer(theme.Markdown(), m.output.Width)
	m.output.SetContent(r.RenderOrRaw(md))
	m.output.GotoTop()
}

func imageMarkdown(out imagingdto.TransformOutput) string {
	switch {
	case out.SavedTo != "":
		return fmt.Sprintf("Saved result to `%s`.", out.SavedTo)
	case out.DataURI:
		return fmt.Sprintf("Received an image (%d bytes encoded). Pass an output file after the path to save it.", len(out.Result))
	}
	return out.Result
}

func (m Model) View() string {
	tabs := make([]string, toolCount)
	for t := tool(0); t < toolCount; t++ {
		label := fmt.Sprintf("%d %s", t+1, t.label(m.lang))
		if t == m.active {
			tabs[t] = theme.Hot.Render(label)
		} else {
			tabs[t] = theme.Muted.Render(label)
		}
	}
	head := strings.Join(tabs, theme.Muted.Render("  │  "))

	var line string
	switch {
	case m.busy:
		line = m.spinner.View() + " working…"
	case m.active == toolSummary:
		line = theme.Muted.Render("enter: generate today's summary")
	default:
		line = m.input.View()
		if !m.input.Focused() {
			line = theme.Muted.Render("i: edit input  enter: run")
		}
	}
	if m.active == toolMagic {
		line += theme.Muted.Render("   mode: ") + theme.Title.Render(m.mode()) + theme.Muted.Render(" (M)")
	}

	out := theme.Pane.Width(max(m.width-2, 10)).Render(m.output.View())
	return lipgloss.JoinVertical(lipgloss.Left, head, "", line, "", out)
}
