package usecase

import (
	"context"

	"lifeos/internal/modules/feedback/domain"
	"lifeos/internal/modules/feedback/dto"
	feedbackin "lifeos/internal/modules/feedback/port/in"
	"lifeos/internal/modules/feedback/service"
)

type Interactor struct {
	svc *service.FeedbackService
}

func NewInteractor(svc *service.FeedbackService) feedbackin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Capabilities() dto.CapabilitiesOutput {
	return dto.CapabilitiesOutput{
		Speech:  i.svc.SpeechAvailable(),
		Audio:   i.svc.AudioAvailable(),
		Haptics: i.svc.HapticsAvailable(),
	}
}

func (i *Interactor) Dictate(ctx context.Context, draft string) (string, error) {
	return i.svc.Dictate(ctx, draft)
}

func (i *Interactor) Tone(event string) ([]byte, error) {
	e, err := domain.ParseEvent(event)
	if err != nil {
		return nil, err
	}
	return i.svc.Tone(e)
}

func (i *Interactor) Cue(ctx context.Context, event string) {
	e, err := domain.ParseEvent(event)
	if err != nil {
		return
	}
	i.svc.Cue(ctx, e)
}
