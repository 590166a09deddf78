package in

import (
	"context"
	"fmt"
	"os"

	"lifeos/internal/modules/feedback/dto"
	feedbackin "lifeos/internal/modules/feedback/port/in"
)

type CLIHandler struct {
	usecase feedbackin.Usecase
}

func NewCLIHandler(usecase feedbackin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Capabilities() dto.CapabilitiesOutput {
	return h.usecase.Capabilities()
}

func (h CLIHandler) Dictate(ctx context.Context) (string, error) {
	return h.usecase.Dictate(ctx, "")
}

// Tone plays event, or writes the WAV to out when out is set.
func (h CLIHandler) Tone(ctx context.Context, event, out string) error {
	wav, err := h.usecase.Tone(event)
	if err != nil {
		return err
	}
	if out == "" {
		h.usecase.Cue(ctx, event)
		return nil
	}
	if err := os.WriteFile(out, wav, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	return nil
}
