package domain

import (
	"fmt"
	"slices"

	apperrors "lifeos/internal/platform/errors"
)

type Item struct {
	Key   string
	Title string
	Icon  string
	Price int
}

type AchievementKind string

const (
	KindStreak AchievementKind = "streak"
	KindLevel  AchievementKind = "level"
)

type AchievementRule struct {
	Key       string
	Title     string
	Icon      string
	Kind      AchievementKind
	Threshold int
}

// Catalog is the static reward list plus achievement thresholds.
type Catalog struct {
	Items        []Item
	Achievements []AchievementRule
}

func (c Catalog) Find(key string) (Item, bool) {
	for _, it := range c.Items {
		if it.Key == key {
			return it, true
		}
	}
	return Item{}, false
}

// Wallet is the part of the displayed profile the shop reads.
type Wallet struct {
	XP        int
	Level     int
	Streak    int
	Inventory []string
}

func (w Wallet) Owns(key string) bool {
	return slices.Contains(w.Inventory, key)
}

func Affordable(it Item, w Wallet) bool {
	return it.Price <= w.XP
}

// Purchase is a validated debit: the wallet state to persist.
type Purchase struct {
	Item      Item
	XP        int
	Inventory []string
}

// PlanPurchase checks a purchase against the catalog and the wallet. It has
// no side effects; a nil error means the debit may be sent.
func PlanPurchase(c Catalog, w Wallet, key string) (Purchase, error) {
	it, ok := c.Find(key)
	if !ok {
		return Purchase{}, fmt.Errorf("%w: item %q", apperrors.ErrNotFound, key)
	}
	if w.Owns(key) {
		return Purchase{}, fmt.Errorf("%w: %s", apperrors.ErrAlreadyOwned, it.Title)
	}
	if !Affordable(it, w) {
		return Purchase{}, fmt.Errorf("%w: %s costs %d XP, balance %d", apperrors.ErrInsufficientXP, it.Title, it.Price, w.XP)
	}
	inv := append(slices.Clone(w.Inventory), key)
	return Purchase{Item: it, XP: w.XP - it.Price, Inventory: inv}, nil
}

type Achievement struct {
	Rule     AchievementRule
	Current  int
	Unlocked bool
}

// Evaluate gates achievements on the displayed streak and level. Nothing is
// persisted.
func Evaluate(rules []AchievementRule, w Wallet) []Achievement {
	out := make([]Achievement, 0, len(rules))
	for _, r := range rules {
		cur := w.Streak
		if r.Kind == KindLevel {
			cur = w.Level
		}
		out = append(out, Achievement{Rule: r, Current: cur, Unlocked: cur >= r.Threshold})
	}
	return out
}
