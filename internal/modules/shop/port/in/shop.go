package in

import (
	"context"

	"lifeos/internal/modules/shop/dto"
)

type Usecase interface {
	Refresh(ctx context.Context) error
	Items() []dto.ItemOutput
	Achievements() []dto.AchievementOutput
	Purchase(ctx context.Context, key string) (dto.PurchaseOutput, error)
}
