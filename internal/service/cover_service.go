package service

import (
	"context"
	"unstablenet/internal/data"
)

// CoverRepository defines the interface for database operations on named
// image slots.
type CoverRepository interface {
	FindByCategoryAndName(ctx context.Context, category, name string) (*data.Cover, error)
	ListByCategory(ctx context.Context, category string) ([]*data.Cover, error)
	Upsert(ctx context.Context, category, name, image string) (*data.Cover, error)
}

// FileStore persists uploaded bytes and returns a public URL for them.
type FileStore interface {
	Save(path string, contents []byte) (string, error)
}

// CoverServicer defines the interface for managing named image slots.
type CoverServicer interface {
	GetCover(ctx context.Context, category, name string) (*data.Cover, error)
	ListCovers(ctx context.Context, category string) ([]*data.Cover, error)
	SetCover(ctx context.Context, category, name, path string, contents []byte) (*data.Cover, error)
}

// CoverService provides business logic for footer and project tile images.
type CoverService struct {
	repo  CoverRepository
	store FileStore
}

// NewCoverService creates a new CoverService.
func NewCoverService(repo CoverRepository, store FileStore) *CoverService {
	return &CoverService{repo: repo, store: store}
}

// GetCover returns the authoritative image for a slot, or nil when unset.
func (s *CoverService) GetCover(ctx context.Context, category, name string) (*data.Cover, error) {
	return s.repo.FindByCategoryAndName(ctx, category, name)
}

// ListCovers returns all slots within a category.
func (s *CoverService) ListCovers(ctx context.Context, category string) ([]*data.Cover, error) {
	return s.repo.ListByCategory(ctx, category)
}

// SetCover stores the uploaded bytes and points the slot at the resulting
// URL. The upload is a synchronous prerequisite: the row is only written
// once the file is safely stored.
func (s *CoverService) SetCover(ctx context.Context, category, name, path string, contents []byte) (*data.Cover, error) {
	if category == "" || name == "" {
		return nil, &ValidationError{Field: "name", Message: "category and name are required"}
	}
	if len(contents) == 0 {
		return nil, &ValidationError{Field: "file", Message: "an image file is required"}
	}

	url, err := s.store.Save(path, contents)
	if err != nil {
		return nil, err
	}
	return s.repo.Upsert(ctx, category, name, url)
}
