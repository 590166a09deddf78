package in

import (
	"context"

	"lifeos/internal/modules/ops/dto"
)

type Usecase interface {
	Windows(ctx context.Context) (dto.ScheduleOutput, error)
	Notify(ctx context.Context, deepLink string) (dto.NoticeOutput, error)
	Models(ctx context.Context) ([]dto.ModelOutput, error)
	PatchModel(ctx context.Context, id int64, patch dto.ModelPatchInput) (dto.ModelOutput, error)
	Accounts(ctx context.Context) ([]dto.AccountOutput, error)
	PatchAccount(ctx context.Context, id int64, patch dto.AccountPatchInput) (dto.AccountOutput, error)
}
