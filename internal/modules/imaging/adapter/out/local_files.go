package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"lifeos/internal/modules/imaging/domain"
)

// LocalFiles reads images from and writes results to the local disk.
type LocalFiles struct{}

func NewLocalFiles() *LocalFiles {
	return &LocalFiles{}
}

func (LocalFiles) Open(_ context.Context, path string) (domain.Image, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.Image{}, fmt.Errorf("read image: %w", err)
	}
	return domain.Image{Name: filepath.Base(path), Data: b}, nil
}

func (LocalFiles) Save(_ context.Context, path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}
