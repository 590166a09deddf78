package usecase_test

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"lifeos/internal/modules/board/dto"
	apperrors "lifeos/internal/platform/errors"
	"lifeos/internal/platform/httpapi/apitest"
)

func taskIDs(b dto.BoardOutput) []int64 {
	out := make([]int64, 0, len(b.Tasks))
	for _, t := range b.Tasks {
		out = append(out, t.ID)
	}
	return out
}

func TestLoadFetchesEverything(t *testing.T) {
	t.Parallel()
	b := newBackend(t)
	uc := newUsecase(b)

	require.NoError(t, uc.Load(context.Background()))
	snap := uc.Snapshot()
	require.False(t, snap.Loading)
	require.Empty(t, snap.Err)
	require.Len(t, snap.Niches, 2)
	require.Equal(t, []int64{7, 8, 9}, taskIDs(snap))
	require.True(t, snap.HasProfile)
	require.InDelta(t, 0.75, snap.Profile.Progress, 1e-9)
	require.Equal(t, "💼", snap.Niches[0].Glyph)
}

func TestToggleOneTimeUsesInlineProfile(t *testing.T) {
	t.Parallel()
	b := newBackend(t)
	b.logWith(&fakeProfile{Level: 2, XP: 160, Streak: 4})
	uc := newUsecase(b)
	require.NoError(t, uc.Load(context.Background()))

	out, err := uc.Toggle(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, "done", out.Status)
	require.Equal(t, 160, out.Profile.XP)
	require.False(t, out.LevelUp)

	snap := uc.Snapshot()
	require.Equal(t, []int64{8, 9}, taskIDs(snap))
	require.Equal(t, 160, snap.Profile.XP)
	require.Equal(t, 4, snap.Profile.Streak)

	require.Equal(t, 1, b.Count(http.MethodPost, "/tasks/7/log"))
	require.Equal(t, 1, b.Count(http.MethodGet, "/tasks/profile"), "inline profile must not trigger a refetch")
	calls := b.Calls()
	require.Equal(t, "done", calls[len(calls)-1].Query.Get("status"))
}

func TestToggleWithoutInlineProfileRefetches(t *testing.T) {
	t.Parallel()
	b := newBackend(t)
	b.logWith(nil)
	uc := newUsecase(b)
	require.NoError(t, uc.Load(context.Background()))
	b.setProfile(fakeProfile{Level: 3, XP: 5, Streak: 4})

	out, err := uc.Toggle(context.Background(), 8)
	require.NoError(t, err)
	require.True(t, out.LevelUp)
	require.Equal(t, 3, uc.Snapshot().Profile.Level)
	require.Equal(t, 2, b.Count(http.MethodGet, "/tasks/profile"))

	snap := uc.Snapshot()
	require.Equal(t, []int64{7, 8, 9}, taskIDs(snap))
	require.True(t, snap.Tasks[1].IsDoneToday)
}

func TestToggleDoneRecurringLogsPending(t *testing.T) {
	t.Parallel()
	b := newBackend(t)
	b.logWith(&fakeProfile{Level: 2, XP: 140})
	uc := newUsecase(b)
	require.NoError(t, uc.Load(context.Background()))

	out, err := uc.Toggle(context.Background(), 9)
	require.NoError(t, err)
	require.Equal(t, "pending", out.Status)
	require.False(t, uc.Snapshot().Tasks[2].IsDoneToday)
	require.Equal(t, 140, uc.Snapshot().Profile.XP)
}

func TestToggleFailureRestoresTask(t *testing.T) {
	t.Parallel()
	b := newBackend(t)
	b.Fail(http.MethodPost, "/tasks/{id:[0-9]+}/log", http.StatusInternalServerError, "log failed")
	uc := newUsecase(b)
	require.NoError(t, uc.Load(context.Background()))

	op, err := uc.BeginToggle(7)
	require.NoError(t, err)
	require.Equal(t, []int64{8, 9}, taskIDs(uc.Snapshot()))

	_, err = uc.CommitToggle(context.Background(), op)
	require.EqualError(t, err, "log task 7: log failed")
	require.Equal(t, []int64{7, 8, 9}, taskIDs(uc.Snapshot()))
	require.Equal(t, 150, uc.Snapshot().Profile.XP)
}

func TestToggleUnknownTaskMakesNoCall(t *testing.T) {
	t.Parallel()
	b := newBackend(t)
	uc := newUsecase(b)
	require.NoError(t, uc.Load(context.Background()))
	before := len(b.Calls())

	_, err := uc.Toggle(context.Background(), 404)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	require.Len(t, b.Calls(), before)
}

func TestCommitWithCancelledContextLeavesStateAlone(t *testing.T) {
	t.Parallel()
	b := newBackend(t)
	b.logWith(&fakeProfile{Level: 9, XP: 1})
	uc := newUsecase(b)
	require.NoError(t, uc.Load(context.Background()))

	op, err := uc.BeginToggle(8)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = uc.CommitToggle(ctx, op)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 2, uc.Snapshot().Profile.Level)
}

func TestCreateTaskRejectsBlankTitleWithoutNetwork(t *testing.T) {
	t.Parallel()
	b := newBackend(t)
	uc := newUsecase(b)

	for _, title := range []string{"", "   ", "\t\n"} {
		_, err := uc.CreateTask(context.Background(), dto.TaskInput{Title: title})
		require.ErrorIs(t, err, apperrors.ErrInvalidInput)
	}
	require.Empty(t, b.Calls())
}

func TestCreateTaskResolvesNicheAndPrepends(t *testing.T) {
	t.Parallel()
	b := newBackend(t)
	uc := newUsecase(b)
	require.NoError(t, uc.Load(context.Background()))

	task, err := uc.CreateTask(context.Background(), dto.TaskInput{Title: "  Call mom  ", Recurring: ptr(true)})
	require.NoError(t, err)
	require.Equal(t, "Call mom", task.Title)
	require.Equal(t, task.ID, uc.Snapshot().Tasks[0].ID)

	calls := b.Calls()
	require.JSONEq(t, `{"title":"Call mom","niche_id":1,"task_type":"recurring","is_recurring":true}`, string(calls[len(calls)-1].Body))
}

func TestCreateTaskFallsBackWithoutNiches(t *testing.T) {
	t.Parallel()
	srv := apitest.New(t)
	srv.JSON(http.MethodPost, "/tasks/", http.StatusOK, map[string]any{"id": 1, "title": "x", "task_type": "one_time"})
	uc := newUsecase(&backend{Server: srv})

	_, err := uc.CreateTask(context.Background(), dto.TaskInput{Title: "x"})
	require.NoError(t, err)
	require.JSONEq(t, `{"title":"x","niche_id":1,"task_type":"one_time","is_recurring":false}`, string(srv.Calls()[0].Body))
}

func TestEditTaskReplacesInPlace(t *testing.T) {
	t.Parallel()
	b := newBackend(t)
	b.Handle(http.MethodPatch, "/tasks/{id:[0-9]+}", func(w http.ResponseWriter, r *http.Request) {
		apitest.Write(w, http.StatusOK, fakeTask{ID: apitest.Var(r, "id"), Title: "Stretch 20m", TaskType: "recurring"})
	})
	uc := newUsecase(b)
	require.NoError(t, uc.Load(context.Background()))

	_, err := uc.EditTask(context.Background(), 8, dto.TaskInput{Title: "Stretch 20m", NicheID: 2, Recurring: ptr(true)})
	require.NoError(t, err)
	require.Equal(t, "Stretch 20m", uc.Snapshot().Tasks[1].Title)
}

func TestEditTaskWithoutRecurrenceKeepsStoredType(t *testing.T) {
	t.Parallel()
	b := newBackend(t)
	b.Handle(http.MethodPatch, "/tasks/{id:[0-9]+}", func(w http.ResponseWriter, r *http.Request) {
		apitest.Write(w, http.StatusOK, fakeTask{ID: apitest.Var(r, "id"), Title: "Stretch 20m", TaskType: "recurring"})
	})
	uc := newUsecase(b)
	require.NoError(t, uc.Load(context.Background()))

	_, err := uc.EditTask(context.Background(), 8, dto.TaskInput{Title: "Stretch 20m", NicheID: 2})
	require.NoError(t, err)
	calls := b.Calls()
	require.JSONEq(t, `{"title":"Stretch 20m","niche_id":2}`, string(calls[len(calls)-1].Body))
}

func TestToggleBeforeProfileLoadIsNoLevelUp(t *testing.T) {
	t.Parallel()
	b := newBackend(t)
	b.logWith(&fakeProfile{Level: 4, XP: 10})
	uc := newUsecase(b)

	task, err := uc.CreateTask(context.Background(), dto.TaskInput{Title: "Ship it"})
	require.NoError(t, err)
	require.False(t, uc.Snapshot().HasProfile)

	out, err := uc.Toggle(context.Background(), task.ID)
	require.NoError(t, err)
	require.Equal(t, 4, out.Profile.Level)
	require.False(t, out.LevelUp)
}

func TestDeleteFailureReinsertsTask(t *testing.T) {
	t.Parallel()
	b := newBackend(t)
	b.Fail(http.MethodDelete, "/tasks/{id:[0-9]+}", http.StatusNotFound, "Task not found")
	uc := newUsecase(b)
	require.NoError(t, uc.Load(context.Background()))

	op, err := uc.BeginDelete(8)
	require.NoError(t, err)
	require.Equal(t, []int64{7, 9}, taskIDs(uc.Snapshot()))
	require.Error(t, uc.CommitDelete(context.Background(), op))
	require.Equal(t, []int64{7, 8, 9}, taskIDs(uc.Snapshot()))
}

func TestMagicDraftMatchesNiche(t *testing.T) {
	t.Parallel()
	b := newBackend(t)
	b.JSON(http.MethodPost, "/assistant/parse", http.StatusOK, map[string]any{
		"title": "Gym session", "niche_suggested": "health", "is_recurring": true, "scheduled_time": "07:30",
	})
	uc := newUsecase(b)
	require.NoError(t, uc.Load(context.Background()))

	d, err := uc.MagicDraft(context.Background(), "gym every morning at 7:30")
	require.NoError(t, err)
	require.True(t, d.Matched)
	require.Equal(t, int64(2), d.NicheID)
	require.True(t, d.Recurring)
	require.Equal(t, "07:30", d.ScheduledTime)
}

func TestMagicDraftUnmatchedLeavesNicheEmpty(t *testing.T) {
	t.Parallel()
	b := newBackend(t)
	b.JSON(http.MethodPost, "/assistant/parse", http.StatusOK, map[string]any{"title": "Nap", "niche_suggested": "Rest"})
	uc := newUsecase(b)
	require.NoError(t, uc.Load(context.Background()))

	d, err := uc.MagicDraft(context.Background(), "nap")
	require.NoError(t, err)
	require.False(t, d.Matched)
	require.Zero(t, d.NicheID)
}

func TestBreakDownCreatesSequentiallyThenRefetchesOnce(t *testing.T) {
	t.Parallel()
	b := newBackend(t)
	b.JSON(http.MethodPost, "/assistant/breakdown", http.StatusOK, map[string]any{
		"subtasks": []map[string]any{
			{"title": "Pick a race", "niche": "Health"},
			{"title": "Buy shoes", "niche": nil},
			{"title": "Plan weeks", "niche": "Work"},
		},
	})
	uc := newUsecase(b)
	require.NoError(t, uc.Load(context.Background()))

	out, err := uc.BreakDown(context.Background(), "run a marathon")
	require.NoError(t, err)
	require.Equal(t, 3, out.Total)
	require.Len(t, out.Created, 3)

	require.Equal(t, 3, b.Count(http.MethodPost, "/tasks/"))
	require.Equal(t, 2, b.Count(http.MethodGet, "/tasks/"), "one load plus exactly one refetch")
	calls := b.Calls()
	require.Equal(t, http.MethodGet, calls[len(calls)-1].Method)
	require.Equal(t, "/tasks/", calls[len(calls)-1].Path)
	require.Len(t, uc.Snapshot().Tasks, 6)
}

func TestBreakDownFailureStillRefetches(t *testing.T) {
	t.Parallel()
	b := newBackend(t)
	b.createLimit = 1
	b.JSON(http.MethodPost, "/assistant/breakdown", http.StatusOK, map[string]any{
		"subtasks": []map[string]any{{"title": "a"}, {"title": "b"}, {"title": "c"}},
	})
	uc := newUsecase(b)
	require.NoError(t, uc.Load(context.Background()))

	out, err := uc.BreakDown(context.Background(), "goal")
	require.Error(t, err)
	require.Contains(t, err.Error(), "db is locked")
	require.Len(t, out.Created, 1)
	require.Equal(t, 2, b.Count(http.MethodPost, "/tasks/"))
	require.Equal(t, 2, b.Count(http.MethodGet, "/tasks/"))
	require.Len(t, uc.Snapshot().Tasks, 4)
}

func TestQuietRefreshFailureKeepsViewStatus(t *testing.T) {
	t.Parallel()
	srv := apitest.New(t)
	srv.Fail(http.MethodGet, "/niches/", http.StatusBadGateway, "upstream down")
	srv.JSON(http.MethodGet, "/tasks/", http.StatusOK, []any{})
	srv.JSON(http.MethodGet, "/tasks/profile", http.StatusOK, fakeProfile{Level: 1})
	uc := newUsecase(&backend{Server: srv})

	require.Error(t, uc.Refresh(context.Background(), true))
	snap := uc.Snapshot()
	require.False(t, snap.Loading)
	require.Empty(t, snap.Err)

	require.Error(t, uc.Load(context.Background()))
	snap = uc.Snapshot()
	require.False(t, snap.Loading)
	require.Equal(t, "upstream down", snap.Err)
}

func TestDeleteNicheRefetchesTasks(t *testing.T) {
	t.Parallel()
	b := newBackend(t)
	b.JSON(http.MethodDelete, "/niches/{id:[0-9]+}", http.StatusOK, map[string]string{"status": "deleted"})
	uc := newUsecase(b)
	require.NoError(t, uc.Load(context.Background()))

	require.NoError(t, uc.DeleteNiche(context.Background(), 2))
	require.Equal(t, 2, b.Count(http.MethodGet, "/tasks/"))
	require.Equal(t, 2, b.Count(http.MethodGet, "/niches/"))
}

func TestCreateNicheClassifiesIcon(t *testing.T) {
	t.Parallel()
	b := newBackend(t)
	b.Handle(http.MethodPost, "/niches/", func(w http.ResponseWriter, _ *http.Request) {
		apitest.Write(w, http.StatusOK, map[string]any{"id": 3, "name": "Budget", "icon": "finance", "color": "#eab308"})
	})
	uc := newUsecase(b)

	_, err := uc.CreateNiche(context.Background(), dto.NicheInput{Name: " "})
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)

	n, err := uc.CreateNiche(context.Background(), dto.NicheInput{Name: "Budget", Color: "#eab308"})
	require.NoError(t, err)
	require.Equal(t, "finance", n.Category)
	require.JSONEq(t, `{"name":"Budget","color":"#eab308","icon":"finance"}`, string(b.Calls()[0].Body))
}

func TestPatchProfileFetchOnFailure(t *testing.T) {
	t.Parallel()
	b := newBackend(t)
	b.Fail(http.MethodPatch, "/tasks/profile", http.StatusInternalServerError, "boom")
	uc := newUsecase(b)
	require.NoError(t, uc.Load(context.Background()))
	b.setProfile(fakeProfile{Level: 2, XP: 175})

	xp := 100
	_, err := uc.PatchProfile(context.Background(), dto.ProfilePatchInput{XP: &xp})
	require.Error(t, err)
	require.Equal(t, 175, uc.Snapshot().Profile.XP)
}

func TestPatchProfileRestoresWhenRefetchFails(t *testing.T) {
	t.Parallel()
	srv := apitest.New(t)
	srv.JSON(http.MethodGet, "/niches/", http.StatusOK, []any{})
	srv.JSON(http.MethodGet, "/tasks/", http.StatusOK, []any{})
	var profileCalls atomic.Int32
	srv.Handle(http.MethodGet, "/tasks/profile", func(w http.ResponseWriter, _ *http.Request) {
		if profileCalls.Add(1) > 1 {
			http.Error(w, "gone", http.StatusBadGateway)
			return
		}
		apitest.Write(w, http.StatusOK, fakeProfile{Level: 2, XP: 150})
	})
	srv.Fail(http.MethodPatch, "/tasks/profile", http.StatusInternalServerError, "boom")
	uc := newUsecase(&backend{Server: srv})
	require.NoError(t, uc.Load(context.Background()))

	xp := 100
	_, err := uc.PatchProfile(context.Background(), dto.ProfilePatchInput{XP: &xp})
	require.Error(t, err)
	require.Equal(t, 150, uc.Snapshot().Profile.XP)
}

func TestLinkTelegramPatchesChatID(t *testing.T) {
	t.Parallel()
	b := newBackend(t)
	b.JSON(http.MethodPatch, "/tasks/profile", http.StatusOK, map[string]any{"level": 2, "xp": 150, "telegram_chat_id": "4242"})
	uc := newUsecase(b)
	require.NoError(t, uc.Load(context.Background()))

	p, err := uc.LinkTelegram(context.Background(), " 4242 ")
	require.NoError(t, err)
	require.Equal(t, "4242", p.TelegramChatID)
	calls := b.Calls()
	require.JSONEq(t, `{"telegram_chat_id":"4242"}`, string(calls[len(calls)-1].Body))
}

func TestStatsAndNicheFilter(t *testing.T) {
	t.Parallel()
	b := newBackend(t)
	b.JSON(http.MethodGet, "/tasks/stats", http.StatusOK, map[string]any{
		"completed_today": 2, "total_active_today": 4, "completion_rate_today": 0.5, "completed_last_7_days": 11, "streak": 3,
	})
	uc := newUsecase(b)

	st, err := uc.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, dto.StatsOutput{CompletedToday: 2, TotalActiveToday: 4, CompletionRateToday: 0.5, CompletedLast7Days: 11, Streak: 3}, st)

	_, err = uc.ListTasks(context.Background(), 2)
	require.NoError(t, err)
	calls := b.Calls()
	require.Equal(t, "2", calls[len(calls)-1].Query.Get("niche_id"))
}
