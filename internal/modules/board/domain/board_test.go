package domain_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"lifeos/internal/modules/board/domain"
	apperrors "lifeos/internal/platform/errors"
)

func seeded() *domain.Board {
	b := domain.NewBoard()
	b.ReplaceNiches([]domain.Niche{{ID: 1, Name: "Work", Color: "#000"}})
	b.ReplaceTasks([]domain.Task{
		{ID: 7, Title: "Write report", Type: domain.TaskOneTime},
		{ID: 8, Title: "Stretch", Type: domain.TaskRecurring},
		{ID: 9, Title: "Read", Type: domain.TaskRecurring, IsDoneToday: true},
	})
	b.ReplaceProfile(domain.Profile{Level: 2, XP: 150})
	return b
}

func titles(s domain.State) []string {
	out := make([]string, 0, len(s.Tasks))
	for _, t := range s.Tasks {
		out = append(out, t.Title)
	}
	return out
}

func TestToggleOneTimeRemovesAndLogsDone(t *testing.T) {
	t.Parallel()
	b := seeded()
	op, err := b.Toggle("op-1", 7)
	require.NoError(t, err)
	require.Equal(t, domain.LogDone, op.Status)
	require.Equal(t, []string{"Stretch", "Read"}, titles(b.Snapshot()))
}

func TestToggleRecurringFlipsInPlaceAndStatusNegatesPreviousFlag(t *testing.T) {
	t.Parallel()
	b := seeded()

	op, err := b.Toggle("op-1", 8)
	require.NoError(t, err)
	require.Equal(t, domain.LogDone, op.Status)

	op, err = b.Toggle("op-2", 9)
	require.NoError(t, err)
	require.Equal(t, domain.LogPending, op.Status)

	s := b.Snapshot()
	require.Len(t, s.Tasks, 3)
	require.True(t, s.Tasks[1].IsDoneToday)
	require.False(t, s.Tasks[2].IsDoneToday)
}

func TestToggleUnknownTask(t *testing.T) {
	t.Parallel()
	_, err := seeded().Toggle("op", 42)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCompensateRestoresRemovedTaskAtOriginalIndex(t *testing.T) {
	t.Parallel()
	b := seeded()
	before := b.Snapshot()

	_, err := b.Toggle("op-1", 8)
	require.NoError(t, err)
	_, err = b.Remove("op-2", 7)
	require.NoError(t, err)

	require.True(t, b.Compensate("op-2"))
	require.True(t, b.Compensate("op-1"))
	if diff := cmp.Diff(before.Tasks, b.Snapshot().Tasks); diff != "" {
		t.Fatalf("tasks after compensation (-want +got):\n%s", diff)
	}
	require.Zero(t, b.Pending())
}

func TestCompensateSkippedWhenSupersededByLaterOp(t *testing.T) {
	t.Parallel()
	b := seeded()
	_, err := b.Toggle("first", 8)
	require.NoError(t, err)
	_, err = b.Toggle("second", 8)
	require.NoError(t, err)

	require.False(t, b.Compensate("first"))
	require.False(t, b.Snapshot().Tasks[1].IsDoneToday)
}

func TestServerRefreshInvalidatesCompensation(t *testing.T) {
	t.Parallel()
	b := seeded()
	_, err := b.Toggle("op", 7)
	require.NoError(t, err)
	b.ReplaceTasks([]domain.Task{{ID: 8, Title: "Stretch", Type: domain.TaskRecurring}})

	require.False(t, b.Compensate("op"))
	require.Equal(t, []string{"Stretch"}, titles(b.Snapshot()))
}

func TestProfilePatchAndRollback(t *testing.T) {
	t.Parallel()
	b := seeded()
	xp := 100
	inv := `["coffee"]`
	_, err := b.PatchProfile("buy", domain.ProfilePatch{XP: &xp, Inventory: &inv})
	require.NoError(t, err)
	require.Equal(t, domain.Profile{Level: 2, XP: 100, Inventory: `["coffee"]`}, b.Snapshot().Profile)

	require.True(t, b.Compensate("buy"))
	require.Equal(t, domain.Profile{Level: 2, XP: 150}, b.Snapshot().Profile)
}

func TestProfilePatchRequiresLoadedProfile(t *testing.T) {
	t.Parallel()
	_, err := domain.NewBoard().PatchProfile("op", domain.ProfilePatch{})
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSnapshotIsIsolatedFromBoard(t *testing.T) {
	t.Parallel()
	b := domain.NewBoard()
	b.ReplaceTasks([]domain.Task{{ID: 1, Title: "A", Niche: &domain.Niche{ID: 1, Name: "Work"}}})
	snap := b.Snapshot()
	snap.Tasks[0].Title = "mutated"
	snap.Tasks[0].Niche.Name = "mutated"
	require.Equal(t, "A", b.Snapshot().Tasks[0].Title)
	require.Equal(t, "Work", b.Snapshot().Tasks[0].Niche.Name)
}

func TestProgressFraction(t *testing.T) {
	t.Parallel()
	require.InDelta(t, 0.75, domain.Profile{Level: 2, XP: 150}.Progress(), 1e-9)
	require.InDelta(t, 1.0, domain.Profile{Level: 1, XP: 400}.Progress(), 1e-9)
	require.InDelta(t, 0.5, domain.Profile{Level: 0, XP: 50}.Progress(), 1e-9)
	require.InDelta(t, 0.0, domain.Profile{Level: 3, XP: -5}.Progress(), 1e-9)
}

func TestInventoryCodec(t *testing.T) {
	t.Parallel()
	require.Nil(t, domain.ParseInventory(""))
	require.Equal(t, []string{"coffee", "day_off"}, domain.ParseInventory(`["coffee","day_off","coffee"]`))
	require.Equal(t, []string{"coffee", "episode"}, domain.ParseInventory("coffee, episode,"))
	require.Equal(t, `["coffee","episode"]`, domain.EncodeInventory([]string{"coffee", " ", "episode"}))
	require.Equal(t, `[]`, domain.EncodeInventory(nil))
}
