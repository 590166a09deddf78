package in

import (
	"context"

	"lifeos/internal/modules/assistant/dto"
)

type Usecase interface {
	Parse(ctx context.Context, text string) (dto.SuggestionOutput, error)
	Breakdown(ctx context.Context, goal string) ([]dto.SubtaskOutput, error)
	DailySummary(ctx context.Context) (dto.TextOutput, error)
	Hooks(ctx context.Context, modelName string) (dto.TextOutput, error)
	Plan(ctx context.Context, brief string) (dto.TextOutput, error)
}
