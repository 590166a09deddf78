package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"lifeos/internal/modules/system/domain"
	apperrors "lifeos/internal/platform/errors"
)

func TestConfirmReset(t *testing.T) {
	t.Parallel()
	require.NoError(t, domain.ConfirmReset(" RESET "))
	require.ErrorIs(t, domain.ConfirmReset("reset"), apperrors.ErrConfirmationRequired)
	require.ErrorIs(t, domain.ConfirmReset(""), apperrors.ErrConfirmationRequired)
}

func TestHealthy(t *testing.T) {
	t.Parallel()
	h := domain.Health{Credentials: []domain.Credential{
		{Name: "openai", State: "configured"},
		{Name: "xai", State: "configured", Verified: "ok"},
	}}
	require.True(t, h.Healthy())
	h.Credentials = append(h.Credentials, domain.Credential{Name: "telegram", State: "configured", Verified: "error:401"})
	require.False(t, h.Healthy())
	require.False(t, domain.Health{}.Healthy())
}
