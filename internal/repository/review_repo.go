package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/afriverse/editorial-api/internal/database"
	"github.com/afriverse/editorial-api/internal/models"
)

// reviewRepo is the concrete implementation of ReviewRepository
type reviewRepo struct {
	db *database.DB
}

// NewReviewRepo creates a new review repository
func NewReviewRepo(db *database.DB) ReviewRepository {
	return &reviewRepo{db: db}
}

// GetByContentID retrieves the review record for a content item
func (r *reviewRepo) GetByContentID(ctx context.Context, contentID string) (*models.EditorialReview, error) {
	query := `
		SELECT id, content_id, priority, assigned_to, assigned_at, completed_at, notes, created_at, updated_at
		FROM editorial_reviews WHERE content_id = $1
	`

	var review models.EditorialReview
	var assignedTo sql.NullString
	var assignedAt, completedAt sql.NullTime

	err := r.db.QueryRowContext(ctx, query, contentID).Scan(
		&review.ID, &review.ContentID, &review.Priority,
		&assignedTo, &assignedAt, &completedAt, &review.Notes,
		&review.CreatedAt, &review.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if assignedTo.Valid {
		review.AssignedTo = &assignedTo.String
	}
	if assignedAt.Valid {
		review.AssignedAt = &assignedAt.Time
	}
	if completedAt.Valid {
		review.CompletedAt = &completedAt.Time
	}
	return &review, nil
}

// Update writes the mutable review fields (priority, assignee, notes).
// When a reassignment audit entry accompanies the change both rows are
// written in one transaction, so a failed update leaves no audit trace.
func (r *reviewRepo) Update(ctx context.Context, review *models.EditorialReview, audit *models.AuditEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE editorial_reviews
		SET priority = $1, assigned_to = $2, assigned_at = $3, completed_at = $4, notes = $5, updated_at = $6
		WHERE id = $7
	`, review.Priority, review.AssignedTo, review.AssignedAt, review.CompletedAt,
		review.Notes, time.Now(), review.ID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrNotFound
	}

	if audit != nil {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO audit_entries (id, content_id, actor_id, actor_role, event, from_status, to_status, detail, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, audit.ID, audit.ContentID, audit.ActorID, audit.ActorRole,
			audit.Event, audit.FromStatus, audit.ToStatus, audit.Detail, audit.CreatedAt); err != nil {
			return fmt.Errorf("failed to append audit entry: %w", err)
		}
	}

	return tx.Commit()
}

// AddFeedback appends one immutable feedback entry
func (r *reviewRepo) AddFeedback(ctx context.Context, entry *models.FeedbackEntry) error {
	query := `
		INSERT INTO feedback_entries (id, review_id, kind, body, author_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		entry.ID, entry.ReviewID, entry.Kind, entry.Body, entry.AuthorName, entry.CreatedAt,
	)
	return err
}

// ListFeedback returns the full feedback history in insertion order
func (r *reviewRepo) ListFeedback(ctx context.Context, reviewID string) ([]*models.FeedbackEntry, error) {
	query := `
		SELECT id, review_id, kind, body, author_name, created_at
		FROM feedback_entries
		WHERE review_id = $1
		ORDER BY created_at, id
	`
	rows, err := r.db.QueryContext(ctx, query, reviewID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.FeedbackEntry
	for rows.Next() {
		var entry models.FeedbackEntry
		if err := rows.Scan(&entry.ID, &entry.ReviewID, &entry.Kind, &entry.Body,
			&entry.AuthorName, &entry.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, &entry)
	}
	return entries, rows.Err()
}
