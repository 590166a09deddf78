package out

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"lifeos/internal/modules/ops/domain"
	opsout "lifeos/internal/modules/ops/port/out"
	"lifeos/internal/platform/httpapi"
)

type HTTPGateway struct {
	client *httpapi.Client
}

func NewHTTPGateway(client *httpapi.Client) opsout.Gateway {
	return &HTTPGateway{client: client}
}

type windowPayload struct {
	Label   string    `json:"label"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	AlertAt time.Time `json:"alert_at"`
}

func (w windowPayload) domain() domain.Window {
	return domain.Window{Label: w.Label, Start: w.Start, End: w.End, AlertAt: w.AlertAt}
}

type modelPayload struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Archetype string `json:"archetype"`
	Progress  int    `json:"progress"`
	Status    string `json:"status"`
}

func (m modelPayload) domain() domain.Model {
	return domain.Model{ID: m.ID, Name: m.Name, Archetype: m.Archetype, Progress: m.Progress, Status: m.Status}
}

type accountPayload struct {
	ID       int64  `json:"id"`
	Platform string `json:"platform"`
	Accounts int    `json:"accounts"`
	Status   string `json:"status"`
}

func (a accountPayload) domain() domain.Account {
	return domain.Account{ID: a.ID, Platform: a.Platform, Accounts: a.Accounts, Status: a.Status}
}

func (g *HTTPGateway) Windows(ctx context.Context) (domain.Schedule, error) {
	var out struct {
		Timezone string          `json:"timezone"`
		Windows  []windowPayload `json:"windows"`
	}
	if err := g.client.Do(ctx, http.MethodGet, "/scheduler/windows", nil, nil, &out); err != nil {
		return domain.Schedule{}, err
	}
	s := domain.Schedule{Timezone: out.Timezone, Windows: make([]domain.Window, 0, len(out.Windows))}
	for _, w := range out.Windows {
		s.Windows = append(s.Windows, w.domain())
	}
	return s, nil
}

func (g *HTTPGateway) Notify(ctx context.Context, deepLink string) (domain.Notice, error) {
	var query url.Values
	if deepLink != "" {
		query = url.Values{"deep_link": {deepLink}}
	}
	var out struct {
		Sent   bool          `json:"sent"`
		Window windowPayload `json:"window"`
	}
	if err := g.client.Do(ctx, http.MethodPost, "/scheduler/notify", query, nil, &out); err != nil {
		return domain.Notice{}, err
	}
	return domain.Notice{Sent: out.Sent, Window: out.Window.domain()}, nil
}

func (g *HTTPGateway) Models(ctx context.Context) ([]domain.Model, error) {
	var out []modelPayload
	if err := g.client.Do(ctx, http.MethodGet, "/models/", nil, nil, &out); err != nil {
		return nil, err
	}
	models := make([]domain.Model, 0, len(out))
	for _, m := range out {
		models = append(models, m.domain())
	}
	return models, nil
}

func (g *HTTPGateway) PatchModel(ctx context.Context, id int64, patch domain.ModelPatch) (domain.Model, error) {
	body := struct {
		Progress *int    `json:"progress,omitempty"`
		Status   *string `json:"status,omitempty"`
	}{patch.Progress, patch.Status}
	var out modelPayload
	if err := g.client.Do(ctx, http.MethodPatch, fmt.Sprintf("/models/%d", id), nil, body, &out); err != nil {
		return domain.Model{}, err
	}
	return out.domain(), nil
}

func (g *HTTPGateway) Accounts(ctx context.Context) ([]domain.Account, error) {
	var out []accountPayload
	if err := g.client.Do(ctx, http.MethodGet, "/accounts/", nil, nil, &out); err != nil {
		return nil, err
	}
	accounts := make([]domain.Account, 0, len(out))
	for _, a := range out {
		accounts = append(accounts, a.domain())
	}
	return accounts, nil
}

func (g *HTTPGateway) PatchAccount(ctx context.Context, id int64, patch domain.AccountPatch) (domain.Account, error) {
	body := struct {
		Accounts *int    `json:"accounts,omitempty"`
		Status   *string `json:"status,omitempty"`
	}{patch.Accounts, patch.Status}
	var out accountPayload
	if err := g.client.Do(ctx, http.MethodPatch, fmt.Sprintf("/accounts/%d", id), nil, body, &out); err != nil {
		return domain.Account{}, err
	}
	return out.domain(), nil
}
