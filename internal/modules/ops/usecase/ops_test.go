package usecase_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	opsout "lifeos/internal/modules/ops/adapter/out"
	"lifeos/internal/modules/ops/dto"
	opsin "lifeos/internal/modules/ops/port/in"
	"lifeos/internal/modules/ops/service"
	"lifeos/internal/modules/ops/usecase"
	"lifeos/internal/platform/clock"
	apperrors "lifeos/internal/platform/errors"
	"lifeos/internal/platform/httpapi/apitest"
)

var now = time.Date(2026, 10, 16, 14, 50, 0, 0, time.UTC)

func newOps(srv *apitest.Server) opsin.Usecase {
	return usecase.NewInteractor(service.NewOpsService(opsout.NewHTTPGateway(srv.Client()), clock.Fixed(now)))
}

var morning = map[string]string{
	"label":    "US Morning",
	"start":    "2026-10-16T15:00:00+00:00",
	"end":      "2026-10-16T17:00:00+00:00",
	"alert_at": "2026-10-16T14:45:00+00:00",
}

func TestWindowsCarryPhase(t *testing.T) {
	t.Parallel()
	srv := apitest.New(t)
	srv.JSON(http.MethodGet, "/scheduler/windows", http.StatusOK, map[string]any{
		"timezone": "America/New_York",
		"windows":  []map[string]string{morning},
	})

	out, err := newOps(srv).Windows(context.Background())
	require.NoError(t, err)
	require.Equal(t, "America/New_York", out.Timezone)
	require.Len(t, out.Windows, 1)
	require.Equal(t, "alert", out.Windows[0].Phase)
	require.Equal(t, 15, out.Windows[0].Start.Hour())
}

func TestNotifyPassesDeepLink(t *testing.T) {
	t.Parallel()
	srv := apitest.New(t)
	srv.JSON(http.MethodPost, "/scheduler/notify", http.StatusOK, map[string]any{"sent": true, "window": morning})

	out, err := newOps(srv).Notify(context.Background(), "https://t.me/app?startapp=lab")
	require.NoError(t, err)
	require.True(t, out.Sent)
	require.Equal(t, "US Morning", out.Window.Label)
	require.Equal(t, "https://t.me/app?startapp=lab", srv.Calls()[0].Query.Get("deep_link"))
}

func TestPatchValidationMakesNoCalls(t *testing.T) {
	t.Parallel()
	srv := apitest.New(t)
	uc := newOps(srv)
	over, neg := 120, -3

	_, err := uc.PatchModel(context.Background(), 1, dto.ModelPatchInput{Progress: &over})
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
	_, err = uc.PatchAccount(context.Background(), 1, dto.AccountPatchInput{Accounts: &neg})
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
	_, err = uc.PatchModel(context.Background(), 1, dto.ModelPatchInput{})
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
	require.Empty(t, srv.Calls())
}

func TestPatchModelSendsOnlySetFields(t *testing.T) {
	t.Parallel()
	srv := apitest.New(t)
	srv.JSON(http.MethodPatch, "/models/{id:[0-9]+}", http.StatusOK, map[string]any{
		"id": 4, "name": "Nova", "archetype": "gamer", "progress": 60, "status": "training",
	})
	progress := 60

	m, err := newOps(srv).PatchModel(context.Background(), 4, dto.ModelPatchInput{Progress: &progress})
	require.NoError(t, err)
	require.Equal(t, 60, m.Progress)
	require.Equal(t, "/models/4", srv.Calls()[0].Path)
	require.JSONEq(t, `{"progress":60}`, string(srv.Calls()[0].Body))
}

func TestListsAndServerErrors(t *testing.T) {
	t.Parallel()
	srv := apitest.New(t)
	srv.JSON(http.MethodGet, "/accounts/", http.StatusOK, []map[string]any{
		{"id": 1, "platform": "tiktok", "accounts": 12, "status": "warming"},
	})
	srv.Fail(http.MethodGet, "/models/", http.StatusBadGateway, "upstream down")
	uc := newOps(srv)

	accounts, err := uc.Accounts(context.Background())
	require.NoError(t, err)
	require.Equal(t, []dto.AccountOutput{{ID: 1, Platform: "tiktok", Accounts: 12, Status: "warming"}}, accounts)

	_, err = uc.Models(context.Background())
	require.EqualError(t, err, "models: upstream down")
}
