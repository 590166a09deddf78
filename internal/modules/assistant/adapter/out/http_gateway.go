package out

import (
	"context"
	"net/http"

	"lifeos/internal/modules/assistant/domain"
	assistantout "lifeos/internal/modules/assistant/port/out"
	"lifeos/internal/platform/httpapi"
)

type HTTPGateway struct {
	client *httpapi.Client
}

func NewHTTPGateway(client *httpapi.Client) assistantout.Gateway {
	return &HTTPGateway{client: client}
}

func (g *HTTPGateway) Parse(ctx context.Context, text string) (domain.Suggestion, error) {
	var raw struct {
		Title          string `json:"title"`
		NicheSuggested string `json:"niche_suggested"`
		IsRecurring    bool   `json:"is_recurring"`
		ScheduledTime  string `json:"scheduled_time"`
		DueDate        string `json:"due_date"`
	}
	body := map[string]string{"text": text}
	if err := g.client.Do(ctx, http.MethodPost, "/assistant/parse", nil, body, &raw); err != nil {
		return domain.Suggestion{}, err
	}
	return domain.Suggestion{
		Title:          raw.Title,
		NicheSuggested: raw.NicheSuggested,
		IsRecurring:    raw.IsRecurring,
		ScheduledTime:  raw.ScheduledTime,
		DueDate:        raw.DueDate,
	}, nil
}

func (g *HTTPGateway) Breakdown(ctx context.Context, goal string) ([]domain.Subtask, error) {
	var raw struct {
		Subtasks []struct {
			Title string `json:"title"`
			Niche string `json:"niche"`
		} `json:"subtasks"`
	}
	body := map[string]string{"goal": goal}
	if err := g.client.Do(ctx, http.MethodPost, "/assistant/breakdown", nil, body, &raw); err != nil {
		return nil, err
	}
	out := make([]domain.Subtask, 0, len(raw.Subtasks))
	for _, s := range raw.Subtasks {
		out = append(out, domain.Subtask{Title: s.Title, Niche: s.Niche})
	}
	return out, nil
}

func (g *HTTPGateway) DailySummary(ctx context.Context) (domain.Summary, error) {
	var raw struct {
		Summary string `json:"summary"`
		Grade   string `json:"grade"`
	}
	if err := g.client.Do(ctx, http.MethodGet, "/assistant/daily-summary", nil, nil, &raw); err != nil {
		return domain.Summary{}, err
	}
	return domain.Summary{Summary: raw.Summary, Grade: raw.Grade}, nil
}

func (g *HTTPGateway) Hooks(ctx context.Context, modelName string) (domain.Hooks, error) {
	var raw struct {
		ModelName string   `json:"model_name"`
		Hooks     []string `json:"hooks"`
		Formatted string   `json:"formatted"`
	}
	body := map[string]string{"model_name": modelName}
	if err := g.client.Do(ctx, http.MethodPost, "/marketing/hooks", nil, body, &raw); err != nil {
		return domain.Hooks{}, err
	}
	return domain.Hooks{ModelName: raw.ModelName, Hooks: raw.Hooks, Formatted: raw.Formatted}, nil
}

func (g *HTTPGateway) Plan(ctx context.Context, brief string) (domain.Plan, error) {
	var raw struct {
		Brief     string `json:"brief"`
		Plan      string `json:"plan"`
		Formatted string `json:"formatted"`
	}
	body := map[string]string{"brief": brief}
	if err := g.client.Do(ctx, http.MethodPost, "/planning/brief", nil, body, &raw); err != nil {
		return domain.Plan{}, err
	}
	return domain.Plan{Brief: raw.Brief, Plan: raw.Plan, Formatted: raw.Formatted}, nil
}
