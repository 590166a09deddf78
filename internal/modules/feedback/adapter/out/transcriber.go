package out

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	feedbackout "lifeos/internal/modules/feedback/port/out"
	apperrors "lifeos/internal/platform/errors"
)

// CommandTranscriber runs an external speech-to-text program and takes its
// stdout as the final transcript.
type CommandTranscriber struct {
	argv []string
}

func NewCommandTranscriber(command string) feedbackout.Transcriber {
	return &CommandTranscriber{argv: strings.Fields(command)}
}

func (c *CommandTranscriber) Available() bool { return len(c.argv) > 0 }

func (c *CommandTranscriber) Transcribe(ctx context.Context) (string, error) {
	if !c.Available() {
		return "", apperrors.ErrUnsupported
	}
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.argv[0], c.argv[1:]...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%s: %w: %s", c.argv[0], err, msg)
		}
		return "", fmt.Errorf("%s: %w", c.argv[0], err)
	}
	return strings.TrimSpace(stdout.String()), nil
}
