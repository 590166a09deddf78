package service

import (
	"context"
	"fmt"
	"strings"

	"lifeos/internal/modules/imaging/domain"
	imagingout "lifeos/internal/modules/imaging/port/out"
	apperrors "lifeos/internal/platform/errors"
)

type ImagingService struct {
	source      imagingout.ImageSource
	transformer imagingout.Transformer
	sink        imagingout.ResultSink
}

func NewImagingService(source imagingout.ImageSource, transformer imagingout.Transformer, sink imagingout.ResultSink) *ImagingService {
	return &ImagingService{source: source, transformer: transformer, sink: sink}
}

func (s *ImagingService) open(ctx context.Context, path string) (domain.Image, error) {
	if strings.TrimSpace(path) == "" {
		return domain.Image{}, fmt.Errorf("%w: image path is required", apperrors.ErrInvalidInput)
	}
	img, err := s.source.Open(ctx, path)
	if err != nil {
		return domain.Image{}, fmt.Errorf("open image: %w", err)
	}
	return img, nil
}

// Magic validates the mode before reading or uploading anything.
func (s *ImagingService) Magic(ctx context.Context, path, mode string) (domain.Result, error) {
	m, err := domain.ParseMode(mode)
	if err != nil {
		return domain.Result{}, err
	}
	img, err := s.open(ctx, path)
	if err != nil {
		return domain.Result{}, err
	}
	res, err := s.transformer.Magic(ctx, img, m)
	if err != nil {
		return domain.Result{}, fmt.Errorf("magic: %w", err)
	}
	return res, nil
}

func (s *ImagingService) FaceSwap(ctx context.Context, path string) (domain.Result, error) {
	img, err := s.open(ctx, path)
	if err != nil {
		return domain.Result{}, err
	}
	res, err := s.transformer.FaceSwap(ctx, img)
	if err != nil {
		return domain.Result{}, fmt.Errorf("faceswap: %w", err)
	}
	return res, nil
}

func (s *ImagingService) Save(ctx context.Context, res domain.Result, path string) error {
	data, err := res.Payload()
	if err != nil {
		return err
	}
	if err := s.sink.Save(ctx, path, data); err != nil {
		return fmt.Errorf("save result: %w", err)
	}
	return nil
}
