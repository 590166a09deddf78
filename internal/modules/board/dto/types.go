package dto

import "time"

type NicheOutput struct {
	ID          int64
	Name        string
	Description string
	Color       string
	Icon        string
	Category    string
	Glyph       string
}

type TaskOutput struct {
	ID            int64
	Title         string
	Description   string
	Type          string
	Recurring     bool
	Frequency     string
	ScheduledTime string
	NicheID       int64
	NicheName     string
	NicheColor    string
	Glyph         string
	CreatedAt     time.Time
	IsDoneToday   bool
}

type ProfileOutput struct {
	Level            int
	XP               int
	Streak           int
	Progress         float64
	LastActivityDate string
	Inventory        []string
	Achievements     string
	TelegramChatID   string
}

type BoardOutput struct {
	Niches     []NicheOutput
	Tasks      []TaskOutput
	Profile    ProfileOutput
	HasProfile bool
	Loading    bool
	Err        string
	SyncedAt   time.Time
}

type StatsOutput struct {
	CompletedToday      int
	TotalActiveToday    int
	CompletionRateToday float64
	CompletedLast7Days  int
	Streak              int
}

// PendingOp identifies an optimistic mutation that still has to be sent.
type PendingOp struct {
	ID     string
	TaskID int64
	Status string
}

type ToggleOutput struct {
	TaskID       int64
	Status       string
	Profile      ProfileOutput
	LevelUp      bool
	ProfileStale bool
}

// TaskInput carries a task's editable fields. Recurring is nil when the
// caller did not specify recurrence.
type TaskInput struct {
	Title         string
	Description   string
	NicheID       int64
	Recurring     *bool
	ScheduledTime string
}

type DraftOutput struct {
	Title         string
	Recurring     bool
	ScheduledTime string
	DueDate       string
	NicheID       int64
	NicheName     string
	Matched       bool
}

type BreakdownOutput struct {
	Created []TaskOutput
	Total   int
}

type NicheInput struct {
	Name  string
	Color string
	Icon  string
}

type ProfilePatchInput struct {
	XP             *int
	Inventory      *string
	Achievements   *string
	TelegramChatID *string
	// InventoryKeys, when non-nil, replaces Inventory with the serialized
	// list.
	InventoryKeys []string
}
