package out

import (
	"context"

	"lifeos/internal/modules/imaging/domain"
)

type ImageSource interface {
	Open(ctx context.Context, path string) (domain.Image, error)
}

type Transformer interface {
	Magic(ctx context.Context, img domain.Image, mode domain.Mode) (domain.Result, error)
	FaceSwap(ctx context.Context, img domain.Image) (domain.Result, error)
}

type ResultSink interface {
	Save(ctx context.Context, path string, data []byte) error
}
