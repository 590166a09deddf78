package out

import (
	"context"

	"lifeos/internal/modules/ops/domain"
)

type Gateway interface {
	Windows(ctx context.Context) (domain.Schedule, error)
	Notify(ctx context.Context, deepLink string) (domain.Notice, error)
	Models(ctx context.Context) ([]domain.Model, error)
	PatchModel(ctx context.Context, id int64, patch domain.ModelPatch) (domain.Model, error)
	Accounts(ctx context.Context) ([]domain.Account, error)
	PatchAccount(ctx context.Context, id int64, patch domain.AccountPatch) (domain.Account, error)
}
