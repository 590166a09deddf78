package in

import (
	"context"

	"lifeos/internal/modules/imaging/dto"
)

type Usecase interface {
	Magic(ctx context.Context, input dto.TransformInput) (dto.TransformOutput, error)
	FaceSwap(ctx context.Context, input dto.TransformInput) (dto.TransformOutput, error)
	Modes() []string
}
