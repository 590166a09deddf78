package out

import (
	"context"

	"lifeos/internal/modules/assistant/domain"
)

type Gateway interface {
	Parse(ctx context.Context, text string) (domain.Suggestion, error)
	Breakdown(ctx context.Context, goal string) ([]domain.Subtask, error)
	DailySummary(ctx context.Context) (domain.Summary, error)
	Hooks(ctx context.Context, modelName string) (domain.Hooks, error)
	Plan(ctx context.Context, brief string) (domain.Plan, error)
}
