package prefs_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"lifeos/internal/platform/prefs"
)

func TestPrefsRoundTripAndSurviveReopen(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nested", "prefs.db")
	ctx := context.Background()

	store, err := prefs.Open(path)
	require.NoError(t, err)

	theme, err := store.Get(ctx, prefs.KeyTheme, prefs.ThemeDark)
	require.NoError(t, err)
	require.Equal(t, prefs.ThemeDark, theme)

	require.NoError(t, store.Set(ctx, prefs.KeyTheme, prefs.ThemeLight))
	require.NoError(t, store.Set(ctx, prefs.KeyLanguage, "ru"))
	require.NoError(t, store.Set(ctx, prefs.KeyLanguage, "en"))
	require.NoError(t, store.Close())

	reopened, err := prefs.Open(path)
	require.NoError(t, err)
	defer reopened.Close()
	theme, err = reopened.Get(ctx, prefs.KeyTheme, prefs.ThemeDark)
	require.NoError(t, err)
	require.Equal(t, prefs.ThemeLight, theme)
	lang, err := reopened.Get(ctx, prefs.KeyLanguage, "ru")
	require.NoError(t, err)
	require.Equal(t, "en", lang)
}
