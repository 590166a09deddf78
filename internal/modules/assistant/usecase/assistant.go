package usecase

import (
	"context"

	"lifeos/internal/modules/assistant/dto"
	assistantin "lifeos/internal/modules/assistant/port/in"
	"lifeos/internal/modules/assistant/service"
)

type Interactor struct {
	svc *service.AssistantService
}

func NewInteractor(svc *service.AssistantService) assistantin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Parse(ctx context.Context, text string) (dto.SuggestionOutput, error) {
	s, err := i.svc.Parse(ctx, text)
	if err != nil {
		return dto.SuggestionOutput{}, err
	}
	return dto.SuggestionOutput{
		Title:          s.Title,
		NicheSuggested: s.NicheSuggested,
		IsRecurring:    s.IsRecurring,
		ScheduledTime:  s.ScheduledTime,
		DueDate:        s.DueDate,
	}, nil
}

func (i *Interactor) Breakdown(ctx context.Context, goal string) ([]dto.SubtaskOutput, error) {
	subs, err := i.svc.Breakdown(ctx, goal)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SubtaskOutput, 0, len(subs))
	for _, s := range subs {
		out = append(out, dto.SubtaskOutput{Title: s.Title, Niche: s.Niche})
	}
	return out, nil
}

func (i *Interactor) DailySummary(ctx context.Context) (dto.TextOutput, error) {
	s, err := i.svc.DailySummary(ctx)
	if err != nil {
		return dto.TextOutput{}, err
	}
	return dto.TextOutput{Title: "Daily summary", Grade: s.Grade, Raw: s.Summary, Markdown: s.Markdown()}, nil
}

func (i *Interactor) Hooks(ctx context.Context, modelName string) (dto.TextOutput, error) {
	h, err := i.svc.Hooks(ctx, modelName)
	if err != nil {
		return dto.TextOutput{}, err
	}
	return dto.TextOutput{Title: h.ModelName, Items: h.Hooks, Raw: h.Formatted, Markdown: h.Markdown()}, nil
}

func (i *Interactor) Plan(ctx context.Context, brief string) (dto.TextOutput, error) {
	p, err := i.svc.Plan(ctx, brief)
	if err != nil {
		return dto.TextOutput{}, err
	}
	return dto.TextOutput{Title: p.Brief, Raw: p.Plan, Markdown: p.Markdown()}, nil
}
