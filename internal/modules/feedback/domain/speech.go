package domain

import "strings"

// AppendTranscript adds a final transcript to an existing draft.
func AppendTranscript(draft, transcript string) string {
	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		return draft
	}
	draft = strings.TrimRight(draft, " ")
	if draft == "" {
		return transcript
	}
	return draft + " " + transcript
}

// Pattern is a vibration pattern in milliseconds, alternating on/off.
type Pattern []int

var (
	PatternTap    = Pattern{10}
	PatternDouble = Pattern{10, 40, 10}
)
