package usecase

import (
	"context"

	"lifeos/internal/modules/imaging/domain"
	"lifeos/internal/modules/imaging/dto"
	imagingin "lifeos/internal/modules/imaging/port/in"
	"lifeos/internal/modules/imaging/service"
)

type Interactor struct {
	svc *service.ImagingService
}

func NewInteractor(svc *service.ImagingService) imagingin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Magic(ctx context.Context, input dto.TransformInput) (dto.TransformOutput, error) {
	res, err := i.svc.Magic(ctx, input.Path, input.Mode)
	if err != nil {
		return dto.TransformOutput{}, err
	}
	return i.finish(ctx, res, input.Out)
}

func (i *Interactor) FaceSwap(ctx context.Context, input dto.TransformInput) (dto.TransformOutput, error) {
	res, err := i.svc.FaceSwap(ctx, input.Path)
	if err != nil {
		return dto.TransformOutput{}, err
	}
	return i.finish(ctx, res, input.Out)
}

func (i *Interactor) finish(ctx context.Context, res domain.Result, out string) (dto.TransformOutput, error) {
	output := dto.TransformOutput{Result: res.Text, DataURI: res.IsDataURI()}
	if out == "" {
		return output, nil
	}
	if err := i.svc.Save(ctx, res, out); err != nil {
		return output, err
	}
	output.SavedTo = out
	return output, nil
}

func (i *Interactor) Modes() []string {
	modes := domain.Modes()
	out := make([]string, 0, len(modes))
	for _, m := range modes {
		out = append(out, string(m))
	}
	return out
}
