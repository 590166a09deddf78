package dto

type SuggestionOutput struct {
	Title          string
	NicheSuggested string
	IsRecurring    bool
	ScheduledTime  string
	DueDate        string
}

type SubtaskOutput struct {
	Title string
	Niche string
}

// TextOutput carries a generated text both raw and as markdown.
type TextOutput struct {
	Title    string
	Grade    string
	Items    []string
	Raw      string
	Markdown string
}
