package in

import (
	"context"

	"lifeos/internal/modules/board/dto"
)

type Usecase interface {
	Load(ctx context.Context) error
	Refresh(ctx context.Context, quiet bool) error
	Snapshot() dto.BoardOutput

	BeginToggle(taskID int64) (dto.PendingOp, error)
	CommitToggle(ctx context.Context, op dto.PendingOp) (dto.ToggleOutput, error)
	Toggle(ctx context.Context, taskID int64) (dto.ToggleOutput, error)

	BeginDelete(taskID int64) (dto.PendingOp, error)
	CommitDelete(ctx context.Context, op dto.PendingOp) error

	ListTasks(ctx context.Context, nicheID int64) ([]dto.TaskOutput, error)
	CreateTask(ctx context.Context, input dto.TaskInput) (dto.TaskOutput, error)
	EditTask(ctx context.Context, id int64, input dto.TaskInput) (dto.TaskOutput, error)
	MagicDraft(ctx context.Context, text string) (dto.DraftOutput, error)
	BreakDown(ctx context.Context, goal string) (dto.BreakdownOutput, error)

	CreateNiche(ctx context.Context, input dto.NicheInput) (dto.NicheOutput, error)
	DeleteNiche(ctx context.Context, id int64) error

	RefreshProfile(ctx context.Context) (dto.ProfileOutput, error)
	PatchProfile(ctx context.Context, patch dto.ProfilePatchInput) (dto.ProfileOutput, error)
	LinkTelegram(ctx context.Context, chatID string) (dto.ProfileOutput, error)
	Stats(ctx context.Context) (dto.StatsOutput, error)
}
