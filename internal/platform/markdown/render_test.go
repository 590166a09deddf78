package markdown_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"lifeos/internal/platform/markdown"
)

func TestRenderPlainKeepsText(t *testing.T) {
	t.Parallel()
	out, err := markdown.NewRenderer(markdown.StylePlain, 60).Render("# Grade A\n\nSolid day.")
	require.NoError(t, err)
	require.Contains(t, out, "Grade A")
	require.Contains(t, out, "Solid day.")
	require.True(t, strings.HasSuffix(out, "\n"))
}

func TestRenderOrRawFallsBackOnBadStyle(t *testing.T) {
	t.Parallel()
	r := markdown.NewRenderer("/does/not/exist.json", 60)
	require.Equal(t, "plain", r.RenderOrRaw("plain"))
}
