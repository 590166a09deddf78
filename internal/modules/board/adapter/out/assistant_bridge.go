package out

import (
	"context"

	assistantin "lifeos/internal/modules/assistant/port/in"
	"lifeos/internal/modules/board/domain"
	boardout "lifeos/internal/modules/board/port/out"
)

// AssistantBridge lets the board ask the assistant module for drafts.
type AssistantBridge struct {
	assistant assistantin.Usecase
}

func NewAssistantBridge(assistant assistantin.Usecase) boardout.Assistant {
	return &AssistantBridge{assistant: assistant}
}

func (a *AssistantBridge) Parse(ctx context.Context, text string) (domain.Suggestion, error) {
	s, err := a.assistant.Parse(ctx, text)
	if err != nil {
		return domain.Suggestion{}, err
	}
	return domain.Suggestion{
		Title:          s.Title,
		NicheSuggested: s.NicheSuggested,
		IsRecurring:    s.IsRecurring,
		ScheduledTime:  s.ScheduledTime,
		DueDate:        s.DueDate,
	}, nil
}

func (a *AssistantBridge) Breakdown(ctx context.Context, goal string) ([]domain.SubtaskSuggestion, error) {
	subs, err := a.assistant.Breakdown(ctx, goal)
	if err != nil {
		return nil, err
	}
	out := make([]domain.SubtaskSuggestion, 0, len(subs))
	for _, s := range subs {
		out = append(out, domain.SubtaskSuggestion{Title: s.Title, Niche: s.Niche})
	}
	return out, nil
}
