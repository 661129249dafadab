package imagestore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/fadinha/embroidery_shop/internal/logging"
)

// Store writes uploaded images under a single directory. Files are keyed by
// UUID rather than the uploaded name, so two uploads sharing a name never
// clobber each other; the original name only contributes its extension.
type Store struct {
	Dir string
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create image dir: %w", err)
	}
	return &Store{Dir: dir}, nil
}

func (s *Store) Store(filename string, data []byte) (string, error) {
	name := uuid.NewString() + strings.ToLower(filepath.Ext(filename))
	path := filepath.Join(s.Dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return path, nil
}

// Delete is best-effort: a missing or locked file is logged and forgotten.
func (s *Store) Delete(ctx context.Context, path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logging.FromContext(ctx).Warn("image_delete_failed", "path", path, "error", err)
	}
}
