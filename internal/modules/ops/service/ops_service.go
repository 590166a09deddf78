package service

import (
	"context"
	"fmt"
	"time"

	"lifeos/internal/modules/ops/domain"
	opsout "lifeos/internal/modules/ops/port/out"
	"lifeos/internal/platform/clock"
)

type OpsService struct {
	gateway opsout.Gateway
	clock   clock.Clock
}

func NewOpsService(gateway opsout.Gateway, clock clock.Clock) *OpsService {
	return &OpsService{gateway: gateway, clock: clock}
}

func (s *OpsService) Now() time.Time { return s.clock.Now() }

func (s *OpsService) Windows(ctx context.Context) (domain.Schedule, error) {
	sch, err := s.gateway.Windows(ctx)
	if err != nil {
		return domain.Schedule{}, fmt.Errorf("windows: %w", err)
	}
	return sch, nil
}

func (s *OpsService) Notify(ctx context.Context, deepLink string) (domain.Notice, error) {
	n, err := s.gateway.Notify(ctx, deepLink)
	if err != nil {
		return domain.Notice{}, fmt.Errorf("notify: %w", err)
	}
	return n, nil
}

func (s *OpsService) Models(ctx context.Context) ([]domain.Model, error) {
	m, err := s.gateway.Models(ctx)
	if err != nil {
		return nil, fmt.Errorf("models: %w", err)
	}
	return m, nil
}

func (s *OpsService) PatchModel(ctx context.Context, id int64, patch domain.ModelPatch) (domain.Model, error) {
	if err := patch.Validate(); err != nil {
		return domain.Model{}, err
	}
	m, err := s.gateway.PatchModel(ctx, id, patch)
	if err != nil {
		return domain.Model{}, fmt.Errorf("patch model %d: %w", id, err)
	}
	return m, nil
}

func (s *OpsService) Accounts(ctx context.Context) ([]domain.Account, error) {
	a, err := s.gateway.Accounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("accounts: %w", err)
	}
	return a, nil
}

func (s *OpsService) PatchAccount(ctx context.Context, id int64, patch domain.AccountPatch) (domain.Account, error) {
	if err := patch.Validate(); err != nil {
		return domain.Account{}, err
	}
	a, err := s.gateway.PatchAccount(ctx, id, patch)
	if err != nil {
		return domain.Account{}, fmt.Errorf("patch account %d: %w", id, err)
	}
	return a, nil
}
