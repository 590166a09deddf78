package domain

import (
	"strings"
	"unicode"
)

// Category is the fixed classification used to pick a niche icon.
type Category string

const (
	CategoryWork     Category = "work"
	CategoryHealth   Category = "health"
	CategoryStudy    Category = "study"
	CategoryFinance  Category = "finance"
	CategoryHome     Category = "home"
	CategorySocial   Category = "social"
	CategoryCreative Category = "creative"
	CategoryOther    Category = "other"
)

// categoryStems is checked in order against the start of every word in the
// name; the first category with a matching stem wins.
var categoryStems = []struct {
	category Category
	stems    []string
}{
	{CategoryHealth, []string{"health", "sport", "gym", "fitness", "run", "yoga", "здоров", "спорт", "зал", "бег"}},
	{CategoryFinance, []string{"financ", "money", "budget", "invest", "финанс", "деньг", "бюджет", "инвест"}},
	{CategoryStudy, []string{"study", "learn", "read", "book", "course", "school", "учеб", "обуч", "книг", "курс"}},
	{CategoryCreative, []string{"art", "music", "draw", "write", "design", "творч", "музык", "рисов", "дизайн"}},
	{CategoryHome, []string{"home", "house", "clean", "family", "дом", "быт", "уборк", "семь"}},
	{CategorySocial, []string{"friend", "social", "people", "друз", "общен", "соц"}},
	{CategoryWork, []string{"work", "job", "career", "business", "office", "работ", "карьер", "бизнес", "офис"}},
}

// Classify resolves a free-text niche name to a Category.
func Classify(name string) Category {
	words := strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, entry := range categoryStems {
		for _, stem := range entry.stems {
			for _, w := range words {
				if strings.HasPrefix(w, stem) {
					return entry.category
				}
			}
		}
	}
	return CategoryOther
}

// ParseCategory accepts a stored icon key when it names a category.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	switch c {
	case CategoryWork, CategoryHealth, CategoryStudy, CategoryFinance,
		CategoryHome, CategorySocial, CategoryCreative, CategoryOther:
		return c, true
	}
	return "", false
}

// CategoryOf prefers the niche's explicit icon key over name classification.
func CategoryOf(n Niche) Category {
	if c, ok := ParseCategory(n.Icon); ok {
		return c
	}
	return Classify(n.Name)
}

func (c Category) Glyph() string {
	switch c {
	case CategoryWork:
		return "💼"
	case CategoryHealth:
		return "💪"
	case CategoryStudy:
		return "📚"
	case CategoryFinance:
		return "💰"
	case CategoryHome:
		return "🏠"
	case CategorySocial:
		return "🤝"
	case CategoryCreative:
		return "🎨"
	default:
		return "✦"
	}
}

// MatchNiche applies an assistant niche suggestion: case-insensitive substring
// match in either direction against the loaded niche names, first hit wins.
func MatchNiche(suggestion string, niches []Niche) (Niche, bool) {
	s := strings.ToLower(strings.TrimSpace(suggestion))
	if s == "" {
		return Niche{}, false
	}
	for _, n := range niches {
		name := strings.ToLower(strings.TrimSpace(n.Name))
		if name == "" {
			continue
		}
		if strings.Contains(name, s) || strings.Contains(s, name) {
			return n, true
		}
	}
	return Niche{}, false
}

// ResolveNicheID picks the niche for a new task: the explicit selection, else
// the first loaded niche, else fallback.
func ResolveNicheID(selected int64, niches []Niche, fallback int64) int64 {
	if selected > 0 {
		return selected
	}
	if len(niches) > 0 {
		return niches[0].ID
	}
	return fallback
}
