package out

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"lifeos/internal/modules/board/domain"
	boardout "lifeos/internal/modules/board/port/out"
	"lifeos/internal/platform/httpapi"
)

// HTTPGateway talks to the niches, tasks and profile endpoints.
type HTTPGateway struct {
	client *httpapi.Client
}

var (
	_ boardout.NicheGateway   = (*HTTPGateway)(nil)
	_ boardout.TaskGateway    = (*HTTPGateway)(nil)
	_ boardout.ProfileGateway = (*HTTPGateway)(nil)
)

func NewHTTPGateway(client *httpapi.Client) *HTTPGateway {
	return &HTTPGateway{client: client}
}

type nicheJSON struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
	IsActive    bool   `json:"is_active"`
}

type taskJSON struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	TaskType      string     `json:"task_type"`
	Frequency     string     `json:"frequency"`
	ScheduledTime string     `json:"scheduled_time"`
	IsArchived    bool       `json:"is_archived"`
	Niche         *nicheJSON `json:"niche"`
	CreatedAt     string     `json:"created_at"`
	IsDoneToday   bool       `json:"is_done_today"`
}

type taskPayload struct {
	Title         string  `json:"title"`
	Description   string  `json:"description,omitempty"`
	NicheID       int64   `json:"niche_id,omitempty"`
	TaskType      *string `json:"task_type,omitempty"`
	IsRecurring   *bool   `json:"is_recurring,omitempty"`
	ScheduledTime string  `json:"scheduled_time,omitempty"`
}

type profileJSON struct {
	Level            int    `json:"level"`
	XP               int    `json:"xp"`
	Streak           int    `json:"streak"`
	LastActivityDate string `json:"last_activity_date"`
	Inventory        string `json:"inventory"`
	Achievements     string `json:"achievements"`
	TelegramChatID   string `json:"telegram_chat_id"`
}

type profilePatchJSON struct {
	XP             *int    `json:"xp,omitempty"`
	Inventory      *string `json:"inventory,omitempty"`
	Achievements   *string `json:"achievements,omitempty"`
	TelegramChatID *string `json:"telegram_chat_id,omitempty"`
}

type logJSON struct {
	Status  string       `json:"status"`
	Profile *profileJSON `json:"profile"`
}

type statsJSON struct {
	CompletedToday      int     `json:"completed_today"`
	TotalActiveToday    int     `json:"total_active_today"`
	CompletionRateToday float64 `json:"completion_rate_today"`
	CompletedLast7Days  int     `json:"completed_last_7_days"`
	Streak              int     `json:"streak"`
}

func (g *HTTPGateway) ListNiches(ctx context.Context) ([]domain.Niche, error) {
	var raw []nicheJSON
	if err := g.client.Do(ctx, http.MethodGet, "/niches/", nil, nil, &raw); err != nil {
		return nil, err
	}
	out := make([]domain.Niche, 0, len(raw))
	for _, n := range raw {
		out = append(out, n.toDomain())
	}
	return out, nil
}

func (g *HTTPGateway) CreateNiche(ctx context.Context, draft domain.NicheDraft) (domain.Niche, error) {
	body := struct {
		Name  string `json:"name"`
		Color string `json:"color,omitempty"`
		Icon  string `json:"icon,omitempty"`
	}{draft.Name, draft.Color, draft.Icon}
	var raw nicheJSON
	if err := g.client.Do(ctx, http.MethodPost, "/niches/", nil, body, &raw); err != nil {
		return domain.Niche{}, err
	}
	return raw.toDomain(), nil
}

func (g *HTTPGateway) DeleteNiche(ctx context.Context, id int64) error {
	return g.client.Do(ctx, http.MethodDelete, "/niches/"+strconv.FormatInt(id, 10), nil, nil, nil)
}

func (g *HTTPGateway) ListTasks(ctx context.Context, nicheID int64) ([]domain.Task, error) {
	var query url.Values
	if nicheID > 0 {
		query = url.Values{"niche_id": {strconv.FormatInt(nicheID, 10)}}
	}
	var raw []taskJSON
	if err := g.client.Do(ctx, http.MethodGet, "/tasks/", query, nil, &raw); err != nil {
		return nil, err
	}
	out := make([]domain.Task, 0, len(raw))
	for _, t := range raw {
		out = append(out, t.toDomain())
	}
	return out, nil
}

func (g *HTTPGateway) CreateTask(ctx context.Context, draft domain.TaskDraft) (domain.Task, error) {
	payload := newTaskPayload(draft)
	if payload.TaskType == nil {
		oneTime := string(domain.TaskOneTime)
		payload.TaskType = &oneTime
	}
	var raw taskJSON
	if err := g.client.Do(ctx, http.MethodPost, "/tasks/", nil, payload, &raw); err != nil {
		return domain.Task{}, err
	}
	return raw.toDomain(), nil
}

func (g *HTTPGateway) UpdateTask(ctx context.Context, id int64, draft domain.TaskDraft) (domain.Task, error) {
	var raw taskJSON
	if err := g.client.Do(ctx, http.MethodPatch, "/tasks/"+strconv.FormatInt(id, 10), nil, newTaskPayload(draft), &raw); err != nil {
		return domain.Task{}, err
	}
	return raw.toDomain(), nil
}

func (g *HTTPGateway) DeleteTask(ctx context.Context, id int64) error {
	return g.client.Do(ctx, http.MethodDelete, "/tasks/"+strconv.FormatInt(id, 10), nil, nil, nil)
}

func (g *HTTPGateway) LogTask(ctx context.Context, id int64, status domain.LogStatus, note string) (domain.LogResult, error) {
	query := url.Values{"status": {string(status)}}
	if note != "" {
		query.Set("note", note)
	}
	var raw logJSON
	path := fmt.Sprintf("/tasks/%d/log", id)
	if err := g.client.Do(ctx, http.MethodPost, path, query, nil, &raw); err != nil {
		return domain.LogResult{}, err
	}
	res := domain.LogResult{Status: raw.Status}
	if raw.Profile != nil {
		p := raw.Profile.toDomain()
		res.Profile = &p
	}
	return res, nil
}

func (g *HTTPGateway) GetProfile(ctx context.Context) (domain.Profile, error) {
	var raw profileJSON
	if err := g.client.Do(ctx, http.MethodGet, "/tasks/profile", nil, nil, &raw); err != nil {
		return domain.Profile{}, err
	}
	return raw.toDomain(), nil
}

func (g *HTTPGateway) PatchProfile(ctx context.Context, patch domain.ProfilePatch) (domain.Profile, error) {
	body := profilePatchJSON{
		XP:             patch.XP,
		Inventory:      patch.Inventory,
		Achievements:   patch.Achievements,
		TelegramChatID: patch.TelegramChatID,
	}
	var raw profileJSON
	if err := g.client.Do(ctx, http.MethodPatch, "/tasks/profile", nil, body, &raw); err != nil {
		return domain.Profile{}, err
	}
	return raw.toDomain(), nil
}

func (g *HTTPGateway) GetStats(ctx context.Context) (domain.Stats, error) {
	var raw statsJSON
	if err := g.client.Do(ctx, http.MethodGet, "/tasks/stats", nil, nil, &raw); err != nil {
		return domain.Stats{}, err
	}
	return domain.Stats{
		CompletedToday:      raw.CompletedToday,
		TotalActiveToday:    raw.TotalActiveToday,
		CompletionRateToday: raw.CompletionRateToday,
		CompletedLast7Days:  raw.CompletedLast7Days,
		Streak:              raw.Streak,
	}, nil
}

// newTaskPayload maps the recurrence flag onto task_type. Without a flag the
// type is left out so an update keeps the stored one.
func newTaskPayload(d domain.TaskDraft) taskPayload {
	p := taskPayload{
		Title:         d.Title,
		Description:   d.Description,
		NicheID:       d.NicheID,
		ScheduledTime: d.ScheduledTime,
	}
	if d.Recurring != nil {
		kind := string(domain.TaskOneTime)
		if *d.Recurring {
			kind = string(domain.TaskRecurring)
		}
		recurring := *d.Recurring
		p.TaskType = &kind
		p.IsRecurring = &recurring
	}
	return p
}

func (n nicheJSON) toDomain() domain.Niche {
	return domain.Niche{
		ID:          n.ID,
		Name:        n.Name,
		Description: n.Description,
		Color:       n.Color,
		Icon:        n.Icon,
		IsActive:    n.IsActive,
	}
}

func (t taskJSON) toDomain() domain.Task {
	out := domain.Task{
		ID:            t.ID,
		Title:         t.Title,
		Description:   t.Description,
		Type:          domain.TaskType(t.TaskType),
		Frequency:     t.Frequency,
		ScheduledTime: t.ScheduledTime,
		IsArchived:    t.IsArchived,
		CreatedAt:     parseTimestamp(t.CreatedAt),
		IsDoneToday:   t.IsDoneToday,
	}
	if !out.Type.IsValid() {
		out.Type = domain.TaskOneTime
	}
	if t.Niche != nil {
		n := t.Niche.toDomain()
		out.Niche = &n
	}
	return out
}

func (p profileJSON) toDomain() domain.Profile {
	return domain.Profile{
		Level:            p.Level,
		XP:               p.XP,
		Streak:           p.Streak,
		LastActivityDate: p.LastActivityDate,
		Inventory:        p.Inventory,
		Achievements:     p.Achievements,
		TelegramChatID:   p.TelegramChatID,
	}
}

// The backend emits naive ISO timestamps; RFC 3339 is accepted as well.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseTimestamp(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
