package out

import (
	"context"

	"lifeos/internal/modules/shop/domain"
)

type CatalogSource interface {
	Catalog() domain.Catalog
}

// Wallet reads the displayed profile and persists debits through the board.
type Wallet interface {
	Sync(ctx context.Context) error
	Current() (domain.Wallet, bool)
	Debit(ctx context.Context, xp int, inventory []string) (domain.Wallet, error)
}
