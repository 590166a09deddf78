package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"lifeos/internal/modules/shop/domain"
	shopout "lifeos/internal/modules/shop/port/out"
	apperrors "lifeos/internal/platform/errors"
)

type ShopService struct {
	catalog shopout.CatalogSource
	wallet  shopout.Wallet
	logger  *zap.Logger
}

func NewShopService(catalog shopout.CatalogSource, wallet shopout.Wallet, logger *zap.Logger) *ShopService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ShopService{catalog: catalog, wallet: wallet, logger: logger.Named("shop")}
}

func (s *ShopService) Refresh(ctx context.Context) error {
	return s.wallet.Sync(ctx)
}

func (s *ShopService) Catalog() domain.Catalog { return s.catalog.Catalog() }

// Wallet returns the displayed balance, or a zero wallet before the profile
// has loaded.
func (s *ShopService) Wallet() domain.Wallet {
	w, _ := s.wallet.Current()
	return w
}

// Purchase validates locally and only then sends a single debit. Invalid
// requests never reach the network.
func (s *ShopService) Purchase(ctx context.Context, key string) (domain.Purchase, error) {
	w, ok := s.wallet.Current()
	if !ok {
		return domain.Purchase{}, fmt.Errorf("%w: profile not loaded", apperrors.ErrNotFound)
	}
	p, err := domain.PlanPurchase(s.catalog.Catalog(), w, key)
	if err != nil {
		return domain.Purchase{}, err
	}
	saved, err := s.wallet.Debit(ctx, p.XP, p.Inventory)
	if err != nil {
		return domain.Purchase{}, fmt.Errorf("purchase %s: %w", key, err)
	}
	s.logger.Info("item purchased", zap.String("item", key), zap.Int("price", p.Item.Price), zap.Int("xp", saved.XP))
	p.XP = saved.XP
	p.Inventory = saved.Inventory
	return p, nil
}

func (s *ShopService) Achievements() []domain.Achievement {
	return domain.Evaluate(s.catalog.Catalog().Achievements, s.Wallet())
}
