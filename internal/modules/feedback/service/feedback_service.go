package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"lifeos/internal/modules/feedback/domain"
	feedbackout "lifeos/internal/modules/feedback/port/out"
	apperrors "lifeos/internal/platform/errors"
)

type Deps struct {
	Transcriber  feedbackout.Transcriber
	Player       feedbackout.Player
	Vibrator     feedbackout.Vibrator
	AudioEnabled bool
	Logger       *zap.Logger
}

type FeedbackService struct {
	transcriber feedbackout.Transcriber
	player      feedbackout.Player
	vibrator    feedbackout.Vibrator
	audio       bool
	logger      *zap.Logger

	mu    sync.Mutex // guards tones
	tones map[domain.Event][]byte
}

func NewFeedbackService(d Deps) *FeedbackService {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeedbackService{
		transcriber: d.Transcriber,
		player:      d.Player,
		vibrator:    d.Vibrator,
		audio:       d.AudioEnabled && d.Player != nil,
		logger:      logger.Named("feedback"),
		tones:       map[domain.Event][]byte{},
	}
}

func (s *FeedbackService) SpeechAvailable() bool {
	return s.transcriber != nil && s.transcriber.Available()
}

func (s *FeedbackService) AudioAvailable() bool { return s.audio }

func (s *FeedbackService) HapticsAvailable() bool {
	return s.vibrator != nil && s.vibrator.Supported()
}

func (s *FeedbackService) Dictate(ctx context.Context, draft string) (string, error) {
	if !s.SpeechAvailable() {
		return draft, fmt.Errorf("%w: speech input is not configured", apperrors.ErrUnsupported)
	}
	text, err := s.transcriber.Transcribe(ctx)
	if err != nil {
		return draft, fmt.Errorf("transcribe: %w", err)
	}
	return domain.AppendTranscript(draft, text), nil
}

// Tone renders the cue for event once and serves it from memory afterwards.
func (s *FeedbackService) Tone(event domain.Event) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if wav, ok := s.tones[event]; ok {
		return wav, nil
	}
	wav, err := domain.Synthesize(event)
	if err != nil {
		return nil, err
	}
	s.tones[event] = wav
	return wav, nil
}

func (s *FeedbackService) Cue(ctx context.Context, event domain.Event) {
	if s.HapticsAvailable() {
		pattern := domain.PatternTap
		if event == domain.EventLevelUp {
			pattern = domain.PatternDouble
		}
		if err := s.vibrator.Vibrate(pattern); err != nil && !errors.Is(err, apperrors.ErrUnsupported) {
			s.logger.Debug("vibrate failed", zap.Error(err))
		}
	}
	if !s.audio {
		return
	}
	wav, err := s.Tone(event)
	if err != nil {
		s.logger.Debug("synthesize failed", zap.String("event", string(event)), zap.Error(err))
		return
	}
	if err := s.player.Play(ctx, wav); err != nil {
		s.logger.Debug("play failed", zap.String("event", string(event)), zap.Error(err))
	}
}
