package in

import (
	"context"

	"lifeos/internal/modules/feedback/dto"
)

type Usecase interface {
	Capabilities() dto.CapabilitiesOutput
	// Dictate records one utterance and appends it to draft.
	Dictate(ctx context.Context, draft string) (string, error)
	Tone(event string) ([]byte, error)
	// Cue plays the sound for event and taps the haptics. Failures are
	// logged, never returned.
	Cue(ctx context.Context, event string)
}
