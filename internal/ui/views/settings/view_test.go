package settings

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	boardout "lifeos/internal/modules/board/adapter/out"
	boardservice "lifeos/internal/modules/board/service"
	boardusecase "lifeos/internal/modules/board/usecase"
	systemout "lifeos/internal/modules/system/adapter/out"
	systemservice "lifeos/internal/modules/system/service"
	systemusecase "lifeos/internal/modules/system/usecase"
	"lifeos/internal/platform/clock"
	apperrors "lifeos/internal/platform/errors"
	"lifeos/internal/platform/httpapi/apitest"
	"lifeos/internal/platform/i18n"
	"lifeos/internal/platform/id"
	"lifeos/internal/ui/components"
)

func newSettings(t *testing.T, srv *apitest.Server) Model {
	t.Helper()
	srv.JSON(http.MethodGet, "/niches/", http.StatusOK, []map[string]any{{"id": 1, "name": "Work"}})
	srv.JSON(http.MethodGet, "/tasks/profile", http.StatusOK, map[string]any{"level": 1})
	srv.JSON(http.MethodGet, "/tasks/", http.StatusOK, []map[string]any{})
	gw := boardout.NewHTTPGateway(srv.Client())
	board := boardusecase.NewInteractor(boardservice.NewSyncService(boardservice.Deps{
		Niches: gw, Tasks: gw, Profiles: gw,
		Clock: clock.Fixed(time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)),
		IDs:   id.UUID{},
	}))
	require.NoError(t, board.Load(context.Background()))
	system := systemusecase.NewInteractor(systemservice.NewSystemService(
		systemout.NewHTTPGateway(srv.Client(), ""), zap.NewNop()))

	m := New(context.Background(), board, system, i18n.EN, "")
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m
}

func typeText(m Model, text string) Model {
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return m
}

func TestResetNeedsExactPhrase(t *testing.T) {
	t.Parallel()
	for _, typed := range []string{"", "reset", "RESET!", "yes"} {
		srv := apitest.New(t)
		m := newSettings(t, srv)

		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'R'}})
		require.True(t, m.Editing())
		if typed != "" {
			m = typeText(m, typed)
		}
		m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		require.False(t, m.Editing())
		require.NotNil(t, cmd)

		res, ok := cmd().(resetMsg)
		require.True(t, ok)
		require.True(t, errors.Is(res.err, apperrors.ErrConfirmationRequired), typed)

		_, cmd = m.Update(res)
		toast, ok := cmd().(components.ToastMsg)
		require.True(t, ok)
		require.Equal(t, components.ToastFailure, toast.Kind)
		require.Zero(t, srv.Count(http.MethodPost, "/system/reset"), typed)
	}
}

func TestResetWithPhraseWipes(t *testing.T) {
	t.Parallel()
	srv := apitest.New(t)
	srv.JSON(http.MethodPost, "/system/reset", http.StatusOK, map[string]any{"status": "wiped"})
	m := newSettings(t, srv)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'R'}})
	m = typeText(m, "RESET")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	res, ok := cmd().(resetMsg)
	require.True(t, ok)
	require.NoError(t, res.err)
	require.Equal(t, "wiped", res.status)
	require.Equal(t, 1, srv.Count(http.MethodPost, "/system/reset"))
}

func TestEscapeCancelsReset(t *testing.T) {
	t.Parallel()
	srv := apitest.New(t)
	m := newSettings(t, srv)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'R'}})
	m = typeText(m, "RESET")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.Nil(t, cmd)
	require.False(t, m.Editing())
	require.Zero(t, srv.Count(http.MethodPost, "/system/reset"))
}
