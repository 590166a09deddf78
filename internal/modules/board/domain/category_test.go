package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"lifeos/internal/modules/board/domain"
)

func TestClassify(t *testing.T) {
	t.Parallel()
	cases := map[string]domain.Category{
		"Work":             domain.CategoryWork,
		"Deep work / Job":  domain.CategoryWork,
		"Health & Gym":     domain.CategoryHealth,
		"Здоровье":         domain.CategoryHealth,
		"Финансы":          domain.CategoryFinance,
		"Profit tracking":  domain.CategoryOther,
		"Startup":          domain.CategoryOther,
		"Reading list":     domain.CategoryStudy,
		"Art":              domain.CategoryCreative,
		"Дом и семья":      domain.CategoryHome,
		"Friends":          domain.CategorySocial,
		"":                 domain.CategoryOther,
		"Misc ideas 2026 ": domain.CategoryOther,
	}
	for name, want := range cases {
		require.Equal(t, want, domain.Classify(name), name)
	}
}

func TestCategoryOfPrefersIconKey(t *testing.T) {
	t.Parallel()
	require.Equal(t, domain.CategoryFinance, domain.CategoryOf(domain.Niche{Name: "Work", Icon: "Finance"}))
	require.Equal(t, domain.CategoryWork, domain.CategoryOf(domain.Niche{Name: "Work", Icon: "briefcase"}))
}

func TestMatchNiche(t *testing.T) {
	t.Parallel()
	niches := []domain.Niche{{ID: 1, Name: "Work"}, {ID: 2, Name: "Health"}, {ID: 3, Name: ""}}

	n, ok := domain.MatchNiche("health", niches)
	require.True(t, ok)
	require.Equal(t, int64(2), n.ID)

	n, ok = domain.MatchNiche("Work projects", niches)
	require.True(t, ok)
	require.Equal(t, int64(1), n.ID)

	n, ok = domain.MatchNiche("WOR", niches)
	require.True(t, ok)
	require.Equal(t, int64(1), n.ID)

	_, ok = domain.MatchNiche("Finance", niches)
	require.False(t, ok)
	_, ok = domain.MatchNiche("  ", niches)
	require.False(t, ok)
}

func TestResolveNicheID(t *testing.T) {
	t.Parallel()
	niches := []domain.Niche{{ID: 4}, {ID: 5}}
	require.Equal(t, int64(5), domain.ResolveNicheID(5, niches, 1))
	require.Equal(t, int64(4), domain.ResolveNicheID(0, niches, 1))
	require.Equal(t, int64(1), domain.ResolveNicheID(0, nil, 1))
}
