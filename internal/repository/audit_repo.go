package repository

import (
	"context"

	"github.com/afriverse/editorial-api/internal/database"
	"github.com/afriverse/editorial-api/internal/models"
)

// auditRepo is the concrete implementation of AuditRepository
type auditRepo struct {
	db *database.DB
}

// NewAuditRepo creates a new audit repository
func NewAuditRepo(db *database.DB) AuditRepository {
	return &auditRepo{db: db}
}

// Append inserts one audit entry
func (r *auditRepo) Append(ctx context.Context, entry *models.AuditEntry) error {
	query := `
		INSERT INTO audit_entries (id, content_id, actor_id, actor_role, event, from_status, to_status, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		entry.ID, entry.ContentID, entry.ActorID, entry.ActorRole,
		entry.Event, entry.FromStatus, entry.ToStatus, entry.Detail, entry.CreatedAt,
	)
	return err
}

// ListByContent returns the transition history of a content item in
// chronological order
func (r *auditRepo) ListByContent(ctx context.Context, contentID string) ([]*models.AuditEntry, error) {
	query := `
		SELECT id, content_id, actor_id, actor_role, event, from_status, to_status, detail, created_at
		FROM audit_entries
		WHERE content_id = $1
		ORDER BY created_at, id
	`
	rows, err := r.db.QueryContext(ctx, query, contentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.AuditEntry
	for rows.Next() {
		var entry models.AuditEntry
		if err := rows.Scan(&entry.ID, &entry.ContentID, &entry.ActorID, &entry.ActorRole,
			&entry.Event, &entry.FromStatus, &entry.ToStatus, &entry.Detail,
			&entry.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, &entry)
	}
	return entries, rows.Err()
}
