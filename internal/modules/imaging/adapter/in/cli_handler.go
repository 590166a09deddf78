package in

import (
	"context"

	"lifeos/internal/modules/imaging/dto"
	imagingin "lifeos/internal/modules/imaging/port/in"
)

type CLIHandler struct {
	usecase imagingin.Usecase
}

func NewCLIHandler(usecase imagingin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Magic(ctx context.Context, path, mode, out string) (dto.TransformOutput, error) {
	return h.usecase.Magic(ctx, dto.TransformInput{Path: path, Mode: mode, Out: out})
}

func (h CLIHandler) FaceSwap(ctx context.Context, path, out string) (dto.TransformOutput, error) {
	return h.usecase.FaceSwap(ctx, dto.TransformInput{Path: path, Out: out})
}

func (h CLIHandler) Modes() []string { return h.usecase.Modes() }
