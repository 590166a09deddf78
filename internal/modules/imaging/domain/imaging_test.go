package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"lifeos/internal/modules/imaging/domain"
	apperrors "lifeos/internal/platform/errors"
)

func TestParseMode(t *testing.T) {
	t.Parallel()
	m, err := domain.ParseMode("")
	require.NoError(t, err)
	require.Equal(t, domain.ModeRoast, m)

	m, err = domain.ParseMode(" Caption ")
	require.NoError(t, err)
	require.Equal(t, domain.ModeCaption, m)

	_, err = domain.ParseMode("cyberpunk")
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestResultPayload(t *testing.T) {
	t.Parallel()
	b, err := domain.Result{Text: "data:image/png;base64,aGVsbG8="}.Payload()
	require.NoError(t, err)
	require.Equal(t, "hello", string(b))

	b, err = domain.Result{Text: "nice hat"}.Payload()
	require.NoError(t, err)
	require.Equal(t, "nice hat", string(b))

	_, err = domain.Result{Text: "data:image/png;base64,@@@"}.Payload()
	require.Error(t, err)
}
