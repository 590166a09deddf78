package out

import (
	"context"

	"lifeos/internal/modules/system/domain"
)

type Gateway interface {
	Reset(ctx context.Context) (string, error)
	Health(ctx context.Context, verify bool) (domain.Health, error)
}
