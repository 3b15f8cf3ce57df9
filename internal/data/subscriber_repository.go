package data

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// SQLSubscriberRepository handles database operations for newsletter
// subscribers.
type SQLSubscriberRepository struct {
	db *sqlx.DB
}

// NewSQLSubscriberRepository creates a new SQLSubscriberRepository.
func NewSQLSubscriberRepository(db *sqlx.DB) *SQLSubscriberRepository {
	return &SQLSubscriberRepository{db: db}
}

// CreateSubscriber inserts a new subscriber row. Consent validation happens
// in the service layer before this is ever called.
func (r *SQLSubscriberRepository) CreateSubscriber(ctx context.Context, sub *Subscriber) error {
	query := `INSERT INTO subscribers (email, policy_agreement) VALUES (:email, :policy_agreement)`
	res, err := r.db.NamedExecContext(ctx, query, sub)
	if err != nil {
		return fmt.Errorf("failed to execute create subscriber query: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read inserted subscriber id: %w", err)
	}
	sub.ID = id
	return nil
}

// ListSubscribers retrieves all subscriber rows.
func (r *SQLSubscriberRepository) ListSubscribers(ctx context.Context) ([]*Subscriber, error) {
	var subs []*Subscriber
	query := `SELECT id, email, policy_agreement, created_at FROM subscribers ORDER BY created_at`
	if err := r.db.SelectContext(ctx, &subs, query); err != nil {
		return nil, fmt.Errorf("failed to list subscribers: %w", err)
	}
	return subs, nil
}
