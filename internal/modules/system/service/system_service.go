package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"lifeos/internal/modules/system/domain"
	systemout "lifeos/internal/modules/system/port/out"
)

type SystemService struct {
	gateway systemout.Gateway
	logger  *zap.Logger
}

func NewSystemService(gateway systemout.Gateway, logger *zap.Logger) *SystemService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SystemService{gateway: gateway, logger: logger.Named("system")}
}

func (s *SystemService) Reset(ctx context.Context, confirm string) (string, error) {
	if err := domain.ConfirmReset(confirm); err != nil {
		return "", err
	}
	status, err := s.gateway.Reset(ctx)
	if err != nil {
		return "", fmt.Errorf("reset: %w", err)
	}
	s.logger.Warn("backend data wiped", zap.String("status", status))
	return status, nil
}

func (s *SystemService) Health(ctx context.Context, verify bool) (domain.Health, error) {
	h, err := s.gateway.Health(ctx, verify)
	if err != nil {
		return domain.Health{}, fmt.Errorf("health: %w", err)
	}
	return h, nil
}
