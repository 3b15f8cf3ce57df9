package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unstablenet/internal/config"
)

// DiskStore writes uploaded files under a media directory and maps them to
// public URLs served by the router's file server.
type DiskStore struct {
	dir        string
	publicPath string
}

// NewDiskStore creates the media directory if needed and returns a store
// over it.
func NewDiskStore(cfg config.MediaConfig) (*DiskStore, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}
	return &DiskStore{
		dir:        cfg.Dir,
		publicPath: strings.TrimSuffix(cfg.PublicPath, "/"),
	}, nil
}

// Save writes the contents under the given relative path and returns the
// public URL for it. Path traversal outside the media directory is refused.
func (s *DiskStore) Save(path string, contents []byte) (string, error) {
	clean := filepath.ToSlash(filepath.Clean("/" + path))[1:]
	if clean == "" || clean == "." {
		return "", fmt.Errorf("invalid media path %q", path)
	}

	full := filepath.Join(s.dir, filepath.FromSlash(clean))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("failed to create media subdirectory: %w", err)
	}
	if err := os.WriteFile(full, contents, 0o644); err != nil {
		return "", fmt.Errorf("failed to write media file: %w", err)
	}
	return s.publicPath + "/" + clean, nil
}
