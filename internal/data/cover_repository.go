package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// SQLCoverRepository handles database operations for named image slots.
type SQLCoverRepository struct {
	DB *sqlx.DB
}

// NewSQLCoverRepository creates a new SQLCoverRepository.
func NewSQLCoverRepository(db *sqlx.DB) *SQLCoverRepository {
	return &SQLCoverRepository{DB: db}
}

// FindByCategoryAndName finds the authoritative cover row for a slot.
// A missing slot is not an error.
func (r *SQLCoverRepository) FindByCategoryAndName(ctx context.Context, category, name string) (*Cover, error) {
	var cover Cover
	query := `SELECT id, category, name, image, created_at FROM covers
	          WHERE category = ? AND name = ? ORDER BY id LIMIT 1`
	if err := r.DB.GetContext(ctx, &cover, query, category, name); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cover %s/%s: %w", category, name, err)
	}
	return &cover, nil
}

// ListByCategory retrieves all covers in a category.
func (r *SQLCoverRepository) ListByCategory(ctx context.Context, category string) ([]*Cover, error) {
	var covers []*Cover
	query := `SELECT id, category, name, image, created_at FROM covers WHERE category = ? ORDER BY name`
	if err := r.DB.SelectContext(ctx, &covers, query, category); err != nil {
		return nil, fmt.Errorf("failed to list covers for category %s: %w", category, err)
	}
	return covers, nil
}

// Upsert writes the image URL for a slot, updating the existing row when one
// exists so duplicates cannot accumulate.
func (r *SQLCoverRepository) Upsert(ctx context.Context, category, name, image string) (*Cover, error) {
	existing, err := r.FindByCategoryAndName(ctx, category, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if _, err := r.DB.ExecContext(ctx, `UPDATE covers SET image = ? WHERE id = ?`, image, existing.ID); err != nil {
			return nil, fmt.Errorf("failed to update cover %s/%s: %w", category, name, err)
		}
		existing.Image = image
		return existing, nil
	}

	res, err := r.DB.ExecContext(ctx, `INSERT INTO covers (category, name, image) VALUES (?, ?, ?)`, category, name, image)
	if err != nil {
		return nil, fmt.Errorf("failed to insert cover %s/%s: %w", category, name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read inserted cover id: %w", err)
	}
	return &Cover{ID: id, Category: category, Name: name, Image: image}, nil
}
