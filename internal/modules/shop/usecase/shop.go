package usecase

import (
	"context"

	"lifeos/internal/modules/shop/domain"
	"lifeos/internal/modules/shop/dto"
	shopin "lifeos/internal/modules/shop/port/in"
	"lifeos/internal/modules/shop/service"
)

type Interactor struct {
	svc *service.ShopService
}

func NewInteractor(svc *service.ShopService) shopin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Refresh(ctx context.Context) error { return i.svc.Refresh(ctx) }

func (i *Interactor) Items() []dto.ItemOutput {
	w := i.svc.Wallet()
	items := i.svc.Catalog().Items
	out := make([]dto.ItemOutput, 0, len(items))
	for _, it := range items {
		out = append(out, itemOutput(it, w))
	}
	return out
}

func (i *Interactor) Achievements() []dto.AchievementOutput {
	list := i.svc.Achievements()
	out := make([]dto.AchievementOutput, 0, len(list))
	for _, a := range list {
		out = append(out, dto.AchievementOutput{
			Key:       a.Rule.Key,
			Title:     a.Rule.Title,
			Icon:      a.Rule.Icon,
			Kind:      string(a.Rule.Kind),
			Threshold: a.Rule.Threshold,
			Current:   a.Current,
			Unlocked:  a.Unlocked,
		})
	}
	return out
}

func (i *Interactor) Purchase(ctx context.Context, key string) (dto.PurchaseOutput, error) {
	p, err := i.svc.Purchase(ctx, key)
	if err != nil {
		return dto.PurchaseOutput{}, err
	}
	w := domain.Wallet{XP: p.XP, Inventory: p.Inventory}
	return dto.PurchaseOutput{Item: itemOutput(p.Item, w), XP: p.XP, Inventory: p.Inventory}, nil
}

func itemOutput(it domain.Item, w domain.Wallet) dto.ItemOutput {
	return dto.ItemOutput{
		Key:        it.Key,
		Title:      it.Title,
		Icon:       it.Icon,
		Price:      it.Price,
		Owned:      w.Owns(it.Key),
		Affordable: domain.Affordable(it, w),
	}
}
