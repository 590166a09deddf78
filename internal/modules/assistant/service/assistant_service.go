package service

import (
	"context"
	"fmt"
	"strings"

	"lifeos/internal/modules/assistant/domain"
	assistantout "lifeos/internal/modules/assistant/port/out"
	apperrors "lifeos/internal/platform/errors"
)

type AssistantService struct {
	gateway assistantout.Gateway
}

func NewAssistantService(gateway assistantout.Gateway) *AssistantService {
	return &AssistantService{gateway: gateway}
}

func required(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("%w: %s is required", apperrors.ErrInvalidInput, field)
	}
	return value, nil
}

func (s *AssistantService) Parse(ctx context.Context, text string) (domain.Suggestion, error) {
	text, err := required("text", text)
	if err != nil {
		return domain.Suggestion{}, err
	}
	sug, err := s.gateway.Parse(ctx, text)
	if err != nil {
		return domain.Suggestion{}, fmt.Errorf("parse: %w", err)
	}
	if strings.TrimSpace(sug.Title) == "" {
		sug.Title = text
	}
	return sug, nil
}

// Breakdown returns the suggested subtasks with blank titles dropped.
func (s *AssistantService) Breakdown(ctx context.Context, goal string) ([]domain.Subtask, error) {
	goal, err := required("goal", goal)
	if err != nil {
		return nil, err
	}
	subs, err := s.gateway.Breakdown(ctx, goal)
	if err != nil {
		return nil, fmt.Errorf("breakdown: %w", err)
	}
	out := subs[:0]
	for _, sub := range subs {
		sub.Title = strings.TrimSpace(sub.Title)
		if sub.Title != "" {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (s *AssistantService) DailySummary(ctx context.Context) (domain.Summary, error) {
	sum, err := s.gateway.DailySummary(ctx)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("daily summary: %w", err)
	}
	return sum, nil
}

func (s *AssistantService) Hooks(ctx context.Context, modelName string) (domain.Hooks, error) {
	modelName, err := required("model name", modelName)
	if err != nil {
		return domain.Hooks{}, err
	}
	h, err := s.gateway.Hooks(ctx, modelName)
	if err != nil {
		return domain.Hooks{}, fmt.Errorf("hooks: %w", err)
	}
	return h, nil
}

func (s *AssistantService) Plan(ctx context.Context, brief string) (domain.Plan, error) {
	brief, err := required("brief", brief)
	if err != nil {
		return domain.Plan{}, err
	}
	p, err := s.gateway.Plan(ctx, brief)
	if err != nil {
		return domain.Plan{}, fmt.Errorf("plan: %w", err)
	}
	return p, nil
}
