package filestorage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yigit/docsystem/internal/pkg/logger"
)

// ErrOutsideBase is returned for paths that resolve outside the storage root
var ErrOutsideBase = errors.New("file path escapes storage directory")

// LocalStorage removes legacy uploads from the local filesystem.
type LocalStorage struct {
	basePath string // The root directory uploads were stored under
}

// NewLocalStorage creates a new LocalStorage instance rooted at basePath.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", abs).Msg("Local storage configured")
	return &LocalStorage{basePath: abs}, nil
}

// resolve maps a stored path (e.g. uploads/syllabi/x.pdf) onto the storage root
func (ls *LocalStorage) resolve(filePath string) (string, error) {
	rel := filepath.Clean(filepath.FromSlash(strings.TrimSpace(filePath)))
	rel = strings.TrimPrefix(rel, string(filepath.Separator))
	if first, rest, ok := strings.Cut(rel, string(filepath.Separator)); ok && first == "uploads" {
		rel = rest
	}
	if rel == "" || rel == "." || rel == "uploads" {
		return "", fmt.Errorf("invalid file path: %s", filePath)
	}

	physical := filepath.Join(ls.basePath, rel)
	if physical != ls.basePath && !strings.HasPrefix(physical, ls.basePath+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideBase, filePath)
	}
	return physical, nil
}

// DeleteFile removes a file from the storage filesystem.
// Returns nil if deletion is successful or if the file doesn't exist.
func (ls *LocalStorage) DeleteFile(filePath string) error {
	if strings.TrimSpace(filePath) == "" {
		return nil // Nothing to delete
	}

	physicalPath, err := ls.resolve(filePath)
	if err != nil {
		return err
	}

	if err := os.Remove(physicalPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
			return nil
		}
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logger.Info().Str("path", physicalPath).Msg("File deleted successfully")
	return nil
}
