package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/afriverse/editorial-api/internal/database"
	"github.com/afriverse/editorial-api/internal/models"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

// contentRepo is the concrete implementation of ContentRepository
type contentRepo struct {
	db *database.DB
}

// NewContentRepo creates a new content repository
func NewContentRepo(db *database.DB) ContentRepository {
	return &contentRepo{db: db}
}

const contentColumns = `id, category_id, author_id, title, slug, body, featured_image, tags, status, scheduled_at, published_at, views, version, created_at, updated_at`

// Create inserts a new content item
func (r *contentRepo) Create(ctx context.Context, item *models.ContentItem) error {
	tagsJSON, _ := json.Marshal(item.Tags)
	if item.Tags == nil {
		tagsJSON = []byte("[]")
	}

	query := `
		INSERT INTO content_items (id, category_id, author_id, title, slug, body, featured_image, tags, status, views, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 0, 1, $10, $11)
	`
	now := time.Now()
	_, err := r.db.ExecContext(ctx, query,
		item.ID, item.CategoryID, item.AuthorID, item.Title, item.Slug, item.Body,
		item.FeaturedImage, tagsJSON, item.Status, now, now,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return models.ErrSlugTaken
		}
		return err
	}
	item.Views = 0
	item.Version = 1
	item.CreatedAt = now
	item.UpdatedAt = now
	return nil
}

// GetByID retrieves a content item by ID
func (r *contentRepo) GetByID(ctx context.Context, id string) (*models.ContentItem, error) {
	query := `SELECT ` + contentColumns + ` FROM content_items WHERE id = $1`
	return scanContentItem(r.db.QueryRowContext(ctx, query, id))
}

// UpdateDraft writes author-editable fields with an optimistic version check.
// The status columns are untouched; transitions go through ApplyTransition.
func (r *contentRepo) UpdateDraft(ctx context.Context, item *models.ContentItem) error {
	tagsJSON, _ := json.Marshal(item.Tags)
	if item.Tags == nil {
		tagsJSON = []byte("[]")
	}

	query := `
		UPDATE content_items
		SET title = $1, slug = $2, body = $3, featured_image = $4, tags = $5,
		    version = version + 1, updated_at = $6
		WHERE id = $7 AND version = $8
	`
	res, err := r.db.ExecContext(ctx, query,
		item.Title, item.Slug, item.Body, item.FeaturedImage, tagsJSON,
		time.Now(), item.ID, item.Version,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return models.ErrSlugTaken
		}
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrConcurrentModification
	}
	item.Version++
	return nil
}

// ListDueScheduled returns scheduled items whose publish time has arrived
func (r *contentRepo) ListDueScheduled(ctx context.Context, now time.Time) ([]*models.ContentItem, error) {
	query := `
		SELECT ` + contentColumns + `
		FROM content_items
		WHERE status = $1 AND scheduled_at <= $2
		ORDER BY scheduled_at
	`
	rows, err := r.db.QueryContext(ctx, query, models.StatusScheduled, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.ContentItem
	for rows.Next() {
		item, err := scanContentItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// IncrementViews bumps the view counter atomically
func (r *contentRepo) IncrementViews(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE content_items SET views = views + 1 WHERE id = $1", id)
	return err
}

// Count returns the total number of content items
func (r *contentRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM content_items").Scan(&count)
	return count, err
}

// rowScanner covers *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanContentItem(row rowScanner) (*models.ContentItem, error) {
	var item models.ContentItem
	var tagsJSON []byte
	var scheduledAt, publishedAt sql.NullTime

	err := row.Scan(
		&item.ID, &item.CategoryID, &item.AuthorID, &item.Title, &item.Slug,
		&item.Body, &item.FeaturedImage, &tagsJSON, &item.Status,
		&scheduledAt, &publishedAt, &item.Views, &item.Version,
		&item.CreatedAt, &item.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	json.Unmarshal(tagsJSON, &item.Tags)
	if scheduledAt.Valid {
		item.ScheduledAt = &scheduledAt.Time
	}
	if publishedAt.Valid {
		item.PublishedAt = &publishedAt.Time
	}
	return &item, nil
}
