package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "lifeos/internal/platform/errors"
)

// Window is a posting window announced by the scheduler.
type Window struct {
	Label   string
	Start   time.Time
	End     time.Time
	AlertAt time.Time
}

// Phase describes where now falls relative to the window.
func (w Window) Phase(now time.Time) string {
	switch {
	case now.Before(w.AlertAt):
		return "upcoming"
	case now.Before(w.Start):
		return "alert"
	case now.Before(w.End):
		return "live"
	default:
		return "closed"
	}
}

type Schedule struct {
	Timezone string
	Windows  []Window
}

// Next returns the first window that has not ended yet.
func (s Schedule) Next(now time.Time) (Window, bool) {
	for _, w := range s.Windows {
		if now.Before(w.End) {
			return w, true
		}
	}
	return Window{}, false
}

type Notice struct {
	Sent   bool
	Window Window
}

type Model struct {
	ID        int64
	Name      string
	Archetype string
	Progress  int
	Status    string
}

type ModelPatch struct {
	Progress *int
	Status   *string
}

func (p ModelPatch) Validate() error {
	if p.Progress == nil && p.Status == nil {
		return fmt.Errorf("%w: nothing to update", apperrors.ErrInvalidInput)
	}
	if p.Progress != nil && (*p.Progress < 0 || *p.Progress > 100) {
		return fmt.Errorf("%w: progress must be within 0..100", apperrors.ErrInvalidInput)
	}
	if p.Status != nil && strings.TrimSpace(*p.Status) == "" {
		return fmt.Errorf("%w: status must not be blank", apperrors.ErrInvalidInput)
	}
	return nil
}

type Account struct {
	ID       int64
	Platform string
	Accounts int
	Status   string
}

type AccountPatch struct {
	Accounts *int
	Status   *string
}

func (p AccountPatch) Validate() error {
	if p.Accounts == nil && p.Status == nil {
		return fmt.Errorf("%w: nothing to update", apperrors.ErrInvalidInput)
	}
	if p.Accounts != nil && *p.Accounts < 0 {
		return fmt.Errorf("%w: accounts must not be negative", apperrors.ErrInvalidInput)
	}
	if p.Status != nil && strings.TrimSpace(*p.Status) == "" {
		return fmt.Errorf("%w: status must not be blank", apperrors.ErrInvalidInput)
	}
	return nil
}
