package out

import (
	"context"

	"lifeos/internal/modules/feedback/domain"
)

// Transcriber turns one utterance into final text. Implementations return
// apperrors.ErrUnsupported when speech input is not available at all.
type Transcriber interface {
	Transcribe(ctx context.Context) (string, error)
	Available() bool
}

type Player interface {
	Play(ctx context.Context, wav []byte) error
}

// Vibrator is fire-and-forget.
type Vibrator interface {
	Vibrate(pattern domain.Pattern) error
	Supported() bool
}
