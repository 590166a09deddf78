package domain

import (
	"encoding/json"
	"strings"
	"time"
)

type Niche struct {
	ID          int64
	Name        string
	Description string
	Color       string
	Icon        string
	IsActive    bool
}

type TaskType string

const (
	TaskOneTime   TaskType = "one_time"
	TaskRecurring TaskType = "recurring"
)

func (t TaskType) IsValid() bool {
	return t == TaskOneTime || t == TaskRecurring
}

type Task struct {
	ID            int64
	Title         string
	Description   string
	Type          TaskType
	Frequency     string
	ScheduledTime string
	IsArchived    bool
	Niche         *Niche
	CreatedAt     time.Time
	// IsDoneToday mirrors today's log state on the server. It only changes
	// through a log call or a refetch.
	IsDoneToday bool
}

func (t Task) OneTime() bool { return t.Type != TaskRecurring }

func (t Task) clone() Task {
	if t.Niche != nil {
		n := *t.Niche
		t.Niche = &n
	}
	return t
}

type LogStatus string

const (
	LogDone    LogStatus = "done"
	LogPending LogStatus = "pending"
)

// NextStatus is the status a toggle must log, derived from the flag before
// the toggle was applied.
func NextStatus(doneBefore bool) LogStatus {
	if doneBefore {
		return LogPending
	}
	return LogDone
}

type LogResult struct {
	Status  string
	Profile *Profile
}

type Profile struct {
	Level            int
	XP               int
	Streak           int
	LastActivityDate string
	Inventory        string
	Achievements     string
	TelegramChatID   string
}

// Progress is the header bar fill: xp / (level*100), clamped to [0,1]. It is
// a display heuristic; the server owns the real level thresholds.
func (p Profile) Progress() float64 {
	level := p.Level
	if level < 1 {
		level = 1
	}
	f := float64(p.XP) / float64(level*100)
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

type ProfilePatch struct {
	XP             *int
	Inventory      *string
	Achievements   *string
	TelegramChatID *string
}

func (p ProfilePatch) Empty() bool {
	return p.XP == nil && p.Inventory == nil && p.Achievements == nil && p.TelegramChatID == nil
}

// Apply overlays the set fields of patch onto p.
func (p Profile) Apply(patch ProfilePatch) Profile {
	if patch.XP != nil {
		p.XP = *patch.XP
	}
	if patch.Inventory != nil {
		p.Inventory = *patch.Inventory
	}
	if patch.Achievements != nil {
		p.Achievements = *patch.Achievements
	}
	if patch.TelegramChatID != nil {
		p.TelegramChatID = *patch.TelegramChatID
	}
	return p
}

type Stats struct {
	CompletedToday      int
	TotalActiveToday    int
	CompletionRateToday float64
	CompletedLast7Days  int
	Streak              int
}

type NicheDraft struct {
	Name  string
	Color string
	Icon  string
}

type TaskDraft struct {
	Title         string
	Description   string
	NicheID       int64
	Recurring     *bool
	ScheduledTime string
}

type Suggestion struct {
	Title          string
	NicheSuggested string
	IsRecurring    bool
	ScheduledTime  string
	DueDate        string
}

type SubtaskSuggestion struct {
	Title string
	Niche string
}

// ParseInventory decodes the serialized inventory: a JSON array of keys, or
// the older comma separated form. Blank entries are dropped.
func ParseInventory(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	var keys []string
	if strings.HasPrefix(raw, "[") {
		if err := json.Unmarshal([]byte(raw), &keys); err == nil {
			return compact(keys)
		}
	}
	return compact(strings.Split(raw, ","))
}

func EncodeInventory(keys []string) string {
	keys = compact(keys)
	if keys == nil {
		keys = []string{}
	}
	b, _ := json.Marshal(keys)
	return string(b)
}

func compact(in []string) []string {
	var out []string
	seen := map[string]bool{}
	for _, k := range in {
		k = strings.TrimSpace(k)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}
