package out

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"lifeos/internal/modules/feedback/domain"
	feedbackout "lifeos/internal/modules/feedback/port/out"
	apperrors "lifeos/internal/platform/errors"
)

// CommandPlayer hands the WAV to an external player binary through a temp file.
type CommandPlayer struct {
	argv []string
}

func NewCommandPlayer(command string) feedbackout.Player {
	return &CommandPlayer{argv: strings.Fields(command)}
}

func (p *CommandPlayer) Play(ctx context.Context, wav []byte) error {
	if len(p.argv) == 0 {
		return apperrors.ErrUnsupported
	}
	f, err := os.CreateTemp("", "lifeos-*.wav")
	if err != nil {
		return fmt.Errorf("create temp wav: %w", err)
	}
	defer os.Remove(f.Name())
	if _, err := f.Write(wav); err != nil {
		f.Close()
		return fmt.Errorf("write temp wav: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp wav: %w", err)
	}
	args := append(append([]string{}, p.argv[1:]...), f.Name())
	if err := exec.CommandContext(ctx, p.argv[0], args...).Run(); err != nil {
		return fmt.Errorf("%s: %w", p.argv[0], err)
	}
	return nil
}

// BellPlayer rings the terminal bell instead of playing the waveform.
type BellPlayer struct {
	w io.Writer
}

func NewBellPlayer(w io.Writer) feedbackout.Player {
	return &BellPlayer{w: w}
}

func (p *BellPlayer) Play(_ context.Context, _ []byte) error {
	_, err := io.WriteString(p.w, "\a")
	return err
}

// NopVibrator stands in for haptics on hosts without a vibration motor.
type NopVibrator struct{}

func (NopVibrator) Vibrate(domain.Pattern) error { return apperrors.ErrUnsupported }

func (NopVibrator) Supported() bool { return false }
