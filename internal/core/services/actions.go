package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/meow/internal/core/domain"
	"github.com/custodia-labs/meow/internal/core/ports/driven"
	"github.com/custodia-labs/meow/internal/core/ports/driving"
	"github.com/custodia-labs/meow/internal/logger"
)

// Ensure ResultActionService implements the interface.
var _ driving.ResultActionService = (*ResultActionService)(nil)

// ResultActionService provides actions on search results.
type ResultActionService struct {
	launcher driven.FileLauncher
}

// NewResultActionService creates a new result action service.
func NewResultActionService(launcher driven.FileLauncher) *ResultActionService {
	return &ResultActionService{launcher: launcher}
}

// Open launches the file in the default application.
func (s *ResultActionService) Open(_ context.Context, path string) error {
	local, err := localPath(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(local); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", domain.ErrNotFound, local)
		}
		return fmt.Errorf("stat %s: %w", local, err)
	}
	logger.Debug("Opening %s", local)
	if err := s.launcher.Launch(local); err != nil {
		return fmt.Errorf("open %s: %w", local, err)
	}
	return nil
}

// CopyPath copies the path to the system clipboard.
func (s *ResultActionService) CopyPath(_ context.Context, path string) error {
	local, err := localPath(path)
	if err != nil {
		return err
	}
	if err := s.launcher.CopyText(local); err != nil {
		return fmt.Errorf("copy path: %w", err)
	}
	return nil
}

// localPath strips a file:// prefix and makes path absolute.
func localPath(path string) (string, error) {
	path = strings.TrimPrefix(strings.TrimSpace(path), "file://")
	if path == "" {
		return "", fmt.Errorf("%w: empty path", domain.ErrInvalidInput)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	return abs, nil
}
