package in

import (
	"context"

	"lifeos/internal/modules/system/dto"
)

type Usecase interface {
	// Reset wipes all server data. confirm must be the reset phrase.
	Reset(ctx context.Context, confirm string) (string, error)
	Health(ctx context.Context, verify bool) (dto.HealthOutput, error)
}
