package usecase_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	assistantout "lifeos/internal/modules/assistant/adapter/out"
	assistantservice "lifeos/internal/modules/assistant/service"
	assistantusecase "lifeos/internal/modules/assistant/usecase"
	boardout "lifeos/internal/modules/board/adapter/out"
	boardin "lifeos/internal/modules/board/port/in"
	"lifeos/internal/modules/board/service"
	"lifeos/internal/modules/board/usecase"
	"lifeos/internal/platform/clock"
	"lifeos/internal/platform/httpapi/apitest"
)

type seqIDs struct {
	mu sync.Mutex
	n  int
}

func (s *seqIDs) New() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("op-%d", s.n)
}

type fakeTask struct {
	ID          int64          `json:"id"`
	Title       string         `json:"title"`
	TaskType    string         `json:"task_type"`
	IsArchived  bool           `json:"is_archived"`
	Niche       map[string]any `json:"niche,omitempty"`
	CreatedAt   string         `json:"created_at"`
	IsDoneToday bool           `json:"is_done_today"`
}

type fakeProfile struct {
	Level        int    `json:"level"`
	XP           int    `json:"xp"`
	Streak       int    `json:"streak"`
	Inventory    string `json:"inventory"`
	Achievements string `json:"achievements"`
}

// backend is a small in-memory stand-in for the Life OS API.
type backend struct {
	*apitest.Server

	mu      sync.Mutex
	niches  []map[string]any
	tasks   []fakeTask
	profile fakeProfile
	nextID  int64
	// creates after this many succeed fail with 500; 0 means never
	createLimit int
	created     int
}

func newBackend(t *testing.T) *backend {
	t.Helper()
	b := &backend{
		Server: apitest.New(t),
		niches: []map[string]any{
			{"id": 1, "name": "Work", "color": "#3b82f6", "icon": "briefcase", "is_active": true},
			{"id": 2, "name": "Health", "color": "#22c55e", "icon": "heart", "is_active": true},
		},
		tasks: []fakeTask{
			{ID: 7, Title: "Write report", TaskType: "one_time", CreatedAt: "2026-10-16T08:00:00"},
			{ID: 8, Title: "Stretch", TaskType: "recurring", CreatedAt: "2026-10-15T08:00:00"},
			{ID: 9, Title: "Read", TaskType: "recurring", IsDoneToday: true, CreatedAt: "2026-10-14T08:00:00"},
		},
		profile: fakeProfile{Level: 2, XP: 150, Streak: 3},
		nextID:  100,
	}
	b.Handle(http.MethodGet, "/niches/", func(w http.ResponseWriter, _ *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		apitest.Write(w, http.StatusOK, b.niches)
	})
	b.Handle(http.MethodGet, "/tasks/profile", func(w http.ResponseWriter, _ *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		apitest.Write(w, http.StatusOK, b.profile)
	})
	b.Handle(http.MethodGet, "/tasks/", func(w http.ResponseWriter, _ *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		apitest.Write(w, http.StatusOK, b.tasks)
	})
	b.Handle(http.MethodPost, "/tasks/", func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Title    string `json:"title"`
			TaskType string `json:"task_type"`
		}
		_ = json.NewDecoder(r.Body).Decode(&in)
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.createLimit > 0 && b.created >= b.createLimit {
			http.Error(w, "db is locked", http.StatusInternalServerError)
			return
		}
		b.created++
		b.nextID++
		task := fakeTask{ID: b.nextID, Title: in.Title, TaskType: in.TaskType, CreatedAt: "2026-10-16T09:00:00"}
		b.tasks = append([]fakeTask{task}, b.tasks...)
		apitest.Write(w, http.StatusOK, task)
	})
	return b
}

// logWith answers task log calls with status and, when set, a profile.
func (b *backend) logWith(profile *fakeProfile) {
	b.Handle(http.MethodPost, "/tasks/{id:[0-9]+}/log", func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]any{"status": r.URL.Query().Get("status")}
		if profile != nil {
			resp["profile"] = profile
		}
		apitest.Write(w, http.StatusOK, resp)
	})
}

func (b *backend) setProfile(p fakeProfile) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.profile = p
}

func ptr[T any](v T) *T { return &v }

func newUsecase(b *backend) boardin.Usecase {
	client := b.Client()
	gateway := boardout.NewHTTPGateway(client)
	assistant := assistantusecase.NewInteractor(assistantservice.NewAssistantService(assistantout.NewHTTPGateway(client)))
	return usecase.NewInteractor(service.NewSyncService(service.Deps{
		Niches:          gateway,
		Tasks:           gateway,
		Profiles:        gateway,
		Assistant:       boardout.NewAssistantBridge(assistant),
		Clock:           clock.Fixed(time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)),
		IDs:             &seqIDs{},
		FallbackNicheID: 1,
	}))
}
