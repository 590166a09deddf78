package usecase_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	boardout "lifeos/internal/modules/board/adapter/out"
	boardservice "lifeos/internal/modules/board/service"
	boardusecase "lifeos/internal/modules/board/usecase"
	shopout "lifeos/internal/modules/shop/adapter/out"
	shopin "lifeos/internal/modules/shop/port/in"
	"lifeos/internal/modules/shop/service"
	"lifeos/internal/modules/shop/usecase"
	"lifeos/internal/platform/clock"
	"lifeos/internal/platform/config"
	apperrors "lifeos/internal/platform/errors"
	"lifeos/internal/platform/httpapi/apitest"
	"lifeos/internal/platform/id"
)

func profileServer(t *testing.T, profile map[string]any) *apitest.Server {
	t.Helper()
	srv := apitest.New(t)
	srv.JSON(http.MethodGet, "/tasks/profile", http.StatusOK, profile)
	return srv
}

func build(srv *apitest.Server) (*shopout.ConfigCatalog, shopin.Usecase) {
	gw := boardout.NewHTTPGateway(srv.Client())
	board := boardusecase.NewInteractor(boardservice.NewSyncService(boardservice.Deps{
		Niches:   gw,
		Tasks:    gw,
		Profiles: gw,
		Clock:    clock.Fixed(time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)),
		IDs:      id.UUID{},
	}))
	catalog := shopout.NewConfigCatalog(config.DefaultShop())
	return catalog, usecase.NewInteractor(service.NewShopService(catalog, shopout.NewBoardWallet(board), nil))
}

func TestInvalidPurchasesMakeNoNetworkCalls(t *testing.T) {
	t.Parallel()
	srv := profileServer(t, map[string]any{"level": 2, "xp": 120, "streak": 1, "inventory": `["episode"]`})
	_, shop := build(srv)
	require.NoError(t, shop.Refresh(context.Background()))
	before := len(srv.Calls())

	_, err := shop.Purchase(context.Background(), "yacht")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = shop.Purchase(context.Background(), "episode")
	require.ErrorIs(t, err, apperrors.ErrAlreadyOwned)
	_, err = shop.Purchase(context.Background(), "day_off")
	require.ErrorIs(t, err, apperrors.ErrInsufficientXP)

	require.Len(t, srv.Calls(), before)
	for _, it := range shop.Items() {
		if it.Key == "episode" {
			require.True(t, it.Owned)
		}
	}
}

func TestPurchaseBeforeProfileLoadFails(t *testing.T) {
	t.Parallel()
	srv := apitest.New(t)
	_, shop := build(srv)
	_, err := shop.Purchase(context.Background(), "coffee")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	require.Empty(t, srv.Calls())
}

func TestPurchaseSendsOnePatchWithFullState(t *testing.T) {
	t.Parallel()
	srv := profileServer(t, map[string]any{"level": 2, "xp": 120, "inventory": `["episode"]`})
	srv.JSON(http.MethodPatch, "/tasks/profile", http.StatusOK, map[string]any{"level": 2, "xp": 70, "inventory": `["episode","coffee"]`})
	_, shop := build(srv)
	require.NoError(t, shop.Refresh(context.Background()))

	out, err := shop.Purchase(context.Background(), "coffee")
	require.NoError(t, err)
	require.Equal(t, 70, out.XP)
	require.Equal(t, []string{"episode", "coffee"}, out.Inventory)
	require.True(t, out.Item.Owned)

	require.Equal(t, 1, srv.Count(http.MethodPatch, "/tasks/profile"))
	calls := srv.Calls()
	require.JSONEq(t, `{"xp":70,"inventory":"[\"episode\",\"coffee\"]"}`, string(calls[len(calls)-1].Body))
}

func TestPurchaseFailureReconcilesFromServer(t *testing.T) {
	t.Parallel()
	srv := profileServer(t, map[string]any{"level": 2, "xp": 120})
	srv.Fail(http.MethodPatch, "/tasks/profile", http.StatusInternalServerError, "write failed")
	_, shop := build(srv)
	require.NoError(t, shop.Refresh(context.Background()))

	_, err := shop.Purchase(context.Background(), "coffee")
	require.EqualError(t, err, "purchase coffee: patch profile: write failed")
	require.Equal(t, 2, srv.Count(http.MethodGet, "/tasks/profile"))
	for _, it := range shop.Items() {
		require.False(t, it.Owned)
	}
}

func TestAchievementsFollowDisplayedProfile(t *testing.T) {
	t.Parallel()
	srv := profileServer(t, map[string]any{"level": 5, "xp": 0, "streak": 7})
	_, shop := build(srv)
	require.NoError(t, shop.Refresh(context.Background()))

	unlocked := map[string]bool{}
	for _, a := range shop.Achievements() {
		unlocked[a.Key] = a.Unlocked
	}
	require.Equal(t, map[string]bool{
		"streak_3": true, "streak_7": true, "streak_30": false,
		"level_5": true, "level_10": false, "level_25": false,
	}, unlocked)
}

func TestCatalogReload(t *testing.T) {
	t.Parallel()
	catalog, shop := build(apitest.New(t))
	catalog.Reload(config.ShopConfig{Items: []config.ShopItem{{Key: "nap", Title: "Nap", Price: 10}}})

	items := shop.Items()
	require.Len(t, items, 1)
	require.Equal(t, "nap", items[0].Key)
	require.False(t, items[0].Affordable)
	require.Empty(t, shop.Achievements())
}
