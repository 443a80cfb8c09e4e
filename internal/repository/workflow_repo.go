package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/afriverse/editorial-api/internal/database"
	"github.com/afriverse/editorial-api/internal/models"
)

// workflowRepo is the concrete implementation of WorkflowRepository
type workflowRepo struct {
	db *database.DB
}

// NewWorkflowRepo creates a new workflow repository
func NewWorkflowRepo(db *database.DB) WorkflowRepository {
	return &workflowRepo{db: db}
}

// ApplyTransition writes one validated transition in a single transaction.
// The item row is updated with an optimistic version check; zero affected
// rows means a concurrent writer won and the whole transaction rolls back.
func (r *workflowRepo) ApplyTransition(ctx context.Context, rec *models.TransitionRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	item := rec.Item
	tagsJSON, _ := json.Marshal(item.Tags)
	if item.Tags == nil {
		tagsJSON = []byte("[]")
	}

	now := time.Now()
	res, err := tx.ExecContext(ctx, `
		UPDATE content_items
		SET status = $1, scheduled_at = $2, published_at = $3, tags = $4,
		    version = version + 1, updated_at = $5
		WHERE id = $6 AND version = $7
	`, item.Status, item.ScheduledAt, item.PublishedAt, tagsJSON, now, item.ID, item.Version)
	if err != nil {
		return fmt.Errorf("failed to update content item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrConcurrentModification
	}

	if rec.CreateReview != nil {
		rev := rec.CreateReview
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO editorial_reviews (id, content_id, priority, notes, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, rev.ID, rev.ContentID, rev.Priority, rev.Notes, now, now); err != nil {
			return fmt.Errorf("failed to create review record: %w", err)
		}
	}

	for _, entry := range rec.Feedback {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO feedback_entries (id, review_id, kind, body, author_name, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, entry.ID, entry.ReviewID, entry.Kind, entry.Body, entry.AuthorName, entry.CreatedAt); err != nil {
			return fmt.Errorf("failed to append feedback: %w", err)
		}
	}

	if rec.CompleteReview {
		if _, err := tx.ExecContext(ctx, `
			UPDATE editorial_reviews SET completed_at = $1, updated_at = $1 WHERE content_id = $2
		`, now, item.ID); err != nil {
			return fmt.Errorf("failed to complete review: %w", err)
		}
	}

	audit := rec.Audit
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO audit_entries (id, content_id, actor_id, actor_role, event, from_status, to_status, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, audit.ID, audit.ContentID, audit.ActorID, audit.ActorRole,
		audit.Event, audit.FromStatus, audit.ToStatus, audit.Detail, audit.CreatedAt); err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transition: %w", err)
	}

	item.Version++
	item.UpdatedAt = now
	return nil
}
