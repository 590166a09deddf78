package in

import (
	"context"

	"lifeos/internal/modules/assistant/dto"
	assistantin "lifeos/internal/modules/assistant/port/in"
	"lifeos/internal/platform/markdown"
)

type CLIHandler struct {
	usecase  assistantin.Usecase
	renderer markdown.Renderer
}

func NewCLIHandler(usecase assistantin.Usecase, renderer markdown.Renderer) CLIHandler {
	return CLIHandler{usecase: usecase, renderer: renderer}
}

func (h CLIHandler) Parse(ctx context.Context, text string) (dto.SuggestionOutput, error) {
	return h.usecase.Parse(ctx, text)
}

func (h CLIHandler) Breakdown(ctx context.Context, goal string) ([]dto.SubtaskOutput, error) {
	return h.usecase.Breakdown(ctx, goal)
}

// DailySummary returns the summary rendered for the terminal.
func (h CLIHandler) DailySummary(ctx context.Context) (string, error) {
	out, err := h.usecase.DailySummary(ctx)
	if err != nil {
		return "", err
	}
	return h.renderer.RenderOrRaw(out.Markdown), nil
}

func (h CLIHandler) Hooks(ctx context.Context, modelName string) (string, error) {
	out, err := h.usecase.Hooks(ctx, modelName)
	if err != nil {
		return "", err
	}
	return h.renderer.RenderOrRaw(out.Markdown), nil
}

func (h CLIHandler) Plan(ctx context.Context, brief string) (string, error) {
	out, err := h.usecase.Plan(ctx, brief)
	if err != nil {
		return "", err
	}
	return h.renderer.RenderOrRaw(out.Markdown), nil
}
