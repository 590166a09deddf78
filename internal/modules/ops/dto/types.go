package dto

import "time"

type WindowOutput struct {
	Label   string
	Start   time.Time
	End     time.Time
	AlertAt time.Time
	Phase   string
}

type ScheduleOutput struct {
	Timezone string
	Windows  []WindowOutput
}

type NoticeOutput struct {
	Sent   bool
	Window WindowOutput
}

type ModelOutput struct {
	ID        int64
	Name      string
	Archetype string
	Progress  int
	Status    string
}

type AccountOutput struct {
	ID       int64
	Platform string
	Accounts int
	Status   string
}

type ModelPatchInput struct {
	Progress *int
	Status   *string
}

type AccountPatchInput struct {
	Accounts *int
	Status   *string
}
