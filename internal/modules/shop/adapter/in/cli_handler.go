package in

import (
	"context"

	"lifeos/internal/modules/shop/dto"
	shopin "lifeos/internal/modules/shop/port/in"
)

type CLIHandler struct {
	usecase shopin.Usecase
}

func NewCLIHandler(usecase shopin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Items(ctx context.Context) ([]dto.ItemOutput, error) {
	if err := h.usecase.Refresh(ctx); err != nil {
		return nil, err
	}
	return h.usecase.Items(), nil
}

func (h CLIHandler) Buy(ctx context.Context, key string) (dto.PurchaseOutput, error) {
	if err := h.usecase.Refresh(ctx); err != nil {
		return dto.PurchaseOutput{}, err
	}
	return h.usecase.Purchase(ctx, key)
}

func (h CLIHandler) Achievements(ctx context.Context) ([]dto.AchievementOutput, error) {
	if err := h.usecase.Refresh(ctx); err != nil {
		return nil, err
	}
	return h.usecase.Achievements(), nil
}
