package out

import (
	"context"

	"lifeos/internal/modules/board/domain"
)

type NicheGateway interface {
	ListNiches(ctx context.Context) ([]domain.Niche, error)
	CreateNiche(ctx context.Context, draft domain.NicheDraft) (domain.Niche, error)
	DeleteNiche(ctx context.Context, id int64) error
}

type TaskGateway interface {
	// ListTasks filters by niche when nicheID > 0.
	ListTasks(ctx context.Context, nicheID int64) ([]domain.Task, error)
	CreateTask(ctx context.Context, draft domain.TaskDraft) (domain.Task, error)
	UpdateTask(ctx context.Context, id int64, draft domain.TaskDraft) (domain.Task, error)
	DeleteTask(ctx context.Context, id int64) error
	LogTask(ctx context.Context, id int64, status domain.LogStatus, note string) (domain.LogResult, error)
}

type ProfileGateway interface {
	GetProfile(ctx context.Context) (domain.Profile, error)
	PatchProfile(ctx context.Context, patch domain.ProfilePatch) (domain.Profile, error)
	GetStats(ctx context.Context) (domain.Stats, error)
}

// Assistant is the AI collaborator used for task drafting and goal breakdown.
type Assistant interface {
	Parse(ctx context.Context, text string) (domain.Suggestion, error)
	Breakdown(ctx context.Context, goal string) ([]domain.SubtaskSuggestion, error)
}
