package usecase

import (
	"context"

	"lifeos/internal/modules/system/dto"
	systemin "lifeos/internal/modules/system/port/in"
	"lifeos/internal/modules/system/service"
)

type Interactor struct {
	svc *service.SystemService
}

func NewInteractor(svc *service.SystemService) systemin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Reset(ctx context.Context, confirm string) (string, error) {
	return i.svc.Reset(ctx, confirm)
}

func (i *Interactor) Health(ctx context.Context, verify bool) (dto.HealthOutput, error) {
	h, err := i.svc.Health(ctx, verify)
	if err != nil {
		return dto.HealthOutput{}, err
	}
	out := dto.HealthOutput{Healthy: h.Healthy(), Credentials: make([]dto.CredentialOutput, 0, len(h.Credentials))}
	for _, c := range h.Credentials {
		out.Credentials = append(out.Credentials, dto.CredentialOutput{Name: c.Name, State: c.State, Verified: c.Verified, OK: c.OK()})
	}
	return out, nil
}
