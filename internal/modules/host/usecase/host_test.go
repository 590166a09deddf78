package usecase_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	hostout "lifeos/internal/modules/host/adapter/out"
	"lifeos/internal/modules/host/domain"
	"lifeos/internal/modules/host/dto"
	"lifeos/internal/modules/host/service"
	"lifeos/internal/modules/host/usecase"
)

func TestBindRegistersAndReleases(t *testing.T) {
	t.Parallel()
	surface := hostout.NewKeySurface()
	uc := usecase.NewInteractor(service.NewHostService(domain.Context{ColorScheme: domain.SchemeLight}, surface))

	var mains, backs int
	release := uc.Bind(dto.Handlers{MainLabel: "New task", Main: func() { mains++ }, Back: func() { backs++ }})

	ready, expanded := surface.Active()
	require.True(t, ready)
	require.True(t, expanded)
	require.Equal(t, domain.SchemeLight, surface.Scheme())
	require.Equal(t, "New task", surface.MainLabel())

	require.True(t, surface.Dispatch(hostout.MainKey))
	require.True(t, surface.Dispatch(hostout.BackKey))
	require.False(t, surface.Dispatch("q"))

	release()
	release()
	require.False(t, surface.Dispatch(hostout.MainKey))
	require.False(t, surface.Dispatch(hostout.BackKey))
	require.Empty(t, surface.MainLabel())
	require.Equal(t, 1, mains)
	require.Equal(t, 1, backs)
}

func TestNestedBindRestoresOuterHandler(t *testing.T) {
	t.Parallel()
	surface := hostout.NewKeySurface()
	uc := usecase.NewInteractor(service.NewHostService(domain.Context{}, surface))

	var got []string
	outer := uc.Bind(dto.Handlers{Back: func() { got = append(got, "outer") }})
	defer outer()
	func() {
		inner := uc.Bind(dto.Handlers{Back: func() { got = append(got, "inner") }})
		defer inner()
		surface.Dispatch(hostout.BackKey)
	}()
	surface.Dispatch(hostout.BackKey)

	require.Equal(t, []string{"inner", "outer"}, got)
	require.Empty(t, surface.Scheme())
}

func TestContextOutput(t *testing.T) {
	t.Parallel()
	raw := url.Values{"user": {`{"id":99,"first_name":"Lin","username":"lin"}`}}.Encode()
	ctx, err := domain.ParseInitData(raw)
	require.NoError(t, err)

	out := usecase.NewInteractor(service.NewHostService(ctx, hostout.NewKeySurface())).Context()
	require.Equal(t, dto.ContextOutput{Embedded: true, UserID: 99, DisplayName: "Lin", Username: "lin"}, out)
}
