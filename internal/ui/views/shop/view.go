package shop

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	shopdto "lifeos/internal/modules/shop/dto"
	apperrors "lifeos/internal/platform/errors"
	"lifeos/internal/platform/i18n"
	"lifeos/internal/ui/components"
	"lifeos/internal/ui/theme"
)

type ShopPort interface {
	Items() []shopdto.ItemOutput
	Achievements() []shopdto.AchievementOutput
	Purchase(ctx context.Context, key string) (shopdto.PurchaseOutput, error)
}

type purchasedMsg struct {
	key string
	out shopdto.PurchaseOutput
	err error
}

// CatalogReloadedMsg is sent by the shell after the config watcher swapped
// the catalog.
type CatalogReloadedMsg struct{}

type Model struct {
	ctx    context.Context
	port   ShopPort
	lang   i18n.Lang
	items  []shopdto.ItemOutput
	achv   []shopdto.AchievementOutput
	cursor int
	buying string
	width  int
	height int
}

func New(ctx context.Context, port ShopPort, lang i18n.Lang) Model {
	m := Model{ctx: ctx, port: port, lang: lang}
	m.reload()
	return m
}

func (m *Model) SetLang(lang i18n.Lang) { m.lang = lang }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case components.BoardChangedMsg, CatalogReloadedMsg:
		m.reload()

	case purchasedMsg:
		m.buying = ""
		m.reload()
		if msg.err != nil {
			return m, tea.Batch(components.Notify(components.ToastFailure, purchaseError(msg.key, msg.err)), components.BoardChanged)
		}
		return m, tea.Batch(
			components.Notify(components.ToastSuccess, fmt.Sprintf("%s %s  −%d XP", msg.out.Item.Icon, msg.out.Item.Title, msg.out.Item.Price)),
			components.Cue("success"),
			components.BoardChanged)

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case "enter", " ":
			return m.buy()
		}
	}
	return m, nil
}

func (m Model) buy() (Model, tea.Cmd) {
	if m.buying != "" || m.cursor >= len(m.items) {
		return m, nil
	}
	item := m.items[m.cursor]
	m.buying = item.Key
	port, ctx := m.port, m.ctx
	return m, func() tea.Msg {
		out, err := port.Purchase(ctx, item.Key)
		return purchasedMsg{key: item.Key, out: out, err: err}
	}
}

func purchaseError(key string, err error) string {
	switch {
	case errors.Is(err, apperrors.ErrAlreadyOwned):
		return "already owned: " + key
	case errors.Is(err, apperrors.ErrInsufficientXP):
		return "not enough XP for " + key
	case errors.Is(err, apperrors.ErrNotFound):
		return "unavailable: " + key
	}
	return "purchase failed: " + err.Error()
}

func (m *Model) reload() {
	m.items = m.port.Items()
	m.achv = m.port.Achievements()
	if m.cursor >= len(m.items) {
		m.cursor = max(len(m.items)-1, 0)
	}
}

func (m Model) View() string {
	var left strings.Builder
	left.WriteString(theme.Title.Render(m.lang.T("shop.title")) + "\n\n")
	for i, it := range m.items {
		line := fmt.Sprintf("%s %-20s %5d XP", it.Icon, it.Title, it.Price)
		switch {
		case it.Owned:
			line = theme.Good.Render(line + "  " + m.lang.T("shop.owned"))
		case !it.Affordable:
			line = theme.Muted.Render(line)
		}
		if m.buying == it.Key {
			line += "  …"
		}
		if i == m.cursor {
			line = theme.Hot.Render("› ") + line
		} else {
			line = "  " + line
		}
		left.WriteString(line + "\n")
	}
	left.WriteString("\n" + theme.Muted.Render("enter: buy"))

	var right strings.Builder
	right.WriteString(theme.Title.Render(m.lang.T("shop.achievements")) + "\n\n")
	for _, a := range m.achv {
		mark := theme.Muted.Render("○")
		title := theme.Muted.Render(a.Title)
		if a.Unlocked {
			mark = theme.Good.Render("●")
			title = a.Icon + " " + a.Title
		}
		right.WriteString(fmt.Sprintf("%s %s  %s\n", mark, title,
			theme.Muted.Render(fmt.Sprintf("%s %d/%d", a.Kind, min(a.Current, a.Threshold), a.Threshold))))
	}

	half := m.width / 2
	return lipgloss.JoinHorizontal(lipgloss.Top,
		theme.Pane.Width(max(half-2, 20)).Render(left.String()),
		theme.Pane.Width(max(m.width-half-2, 20)).Render(right.String()))
}
