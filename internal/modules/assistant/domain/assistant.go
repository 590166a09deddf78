package domain

import (
	"fmt"
	"strings"
)

// Suggestion is the assistant's reading of a free-text task.
type Suggestion struct {
	Title          string
	NicheSuggested string
	IsRecurring    bool
	ScheduledTime  string
	DueDate        string
}

type Subtask struct {
	Title string
	Niche string
}

// Summary is the daily debrief. Grade is one of S, A, B, C, D, or a
// placeholder the server uses when the model is unavailable.
type Summary struct {
	Summary string
	Grade   string
}

func (s Summary) Markdown() string {
	grade := strings.TrimSpace(s.Grade)
	if grade == "" {
		grade = "?"
	}
	return fmt.Sprintf("## Grade %s\n\n%s\n", grade, strings.TrimSpace(s.Summary))
}

type Hooks struct {
	ModelName string
	Hooks     []string
	Formatted string
}

func (h Hooks) Markdown() string {
	if strings.TrimSpace(h.Formatted) != "" {
		return fmt.Sprintf("## %s\n\n%s\n", h.ModelName, h.Formatted)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", h.ModelName)
	for i, hook := range h.Hooks {
		fmt.Fprintf(&b, "%d. %s\n", i+1, hook)
	}
	return b.String()
}

type Plan struct {
	Brief     string
	Plan      string
	Formatted string
}

func (p Plan) Markdown() string {
	if strings.TrimSpace(p.Formatted) != "" {
		return p.Formatted
	}
	return p.Plan
}
