package repository

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/afriverse/editorial-api/internal/database"
	"github.com/afriverse/editorial-api/internal/models"
)

// statsRepo is the concrete implementation of StatsRepository
type statsRepo struct {
	db      *database.DB
	builder sq.StatementBuilderType
}

// NewStatsRepo creates a new stats repository
func NewStatsRepo(db *database.DB) StatsRepository {
	return &statsRepo{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// CountByStatus returns item counts grouped by status, optionally scoped to
// an author, an assigned reviewer and/or a category. Statuses with no items
// are omitted.
func (r *statsRepo) CountByStatus(ctx context.Context, filter models.CountFilter) (map[models.Status]int, error) {
	q := r.builder.
		Select("status", "COUNT(*)").
		From("content_items").
		GroupBy("status")

	if filter.AuthorID != "" {
		q = q.Where(sq.Eq{"author_id": filter.AuthorID})
	}
	if filter.AssignedTo != "" {
		q = q.Where("EXISTS (SELECT 1 FROM editorial_reviews r WHERE r.content_id = content_items.id AND r.assigned_to = ?)",
			filter.AssignedTo)
	}
	if filter.CategoryID != "" {
		q = q.Where(sq.Eq{"category_id": filter.CategoryID})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[models.Status]int)
	for rows.Next() {
		var status models.Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

// ListByStatus returns one editorial queue page, most-recently-updated first
// with the identifier as tie-breaker for stable pagination.
func (r *statsRepo) ListByStatus(ctx context.Context, params models.QueueParams) ([]*models.ContentSummary, error) {
	q := r.builder.
		Select("c.id", "c.title", "c.slug", "c.status", "c.author_id",
			"COALESCE(r.priority, '')", "c.updated_at").
		From("content_items c").
		LeftJoin("editorial_reviews r ON r.content_id = c.id").
		Where(sq.Eq{"c.status": params.Status}).
		OrderBy("c.updated_at DESC", "c.id ASC").
		Limit(uint64(params.PageSize)).
		Offset(uint64((params.Page - 1) * params.PageSize))

	if params.Priority != "" {
		q = q.Where(sq.Eq{"r.priority": params.Priority})
	}
	if params.CategoryID != "" {
		q = q.Where(sq.Eq{"c.category_id": params.CategoryID})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []*models.ContentSummary
	for rows.Next() {
		var s models.ContentSummary
		if err := rows.Scan(&s.ID, &s.Title, &s.Slug, &s.Status, &s.AuthorID,
			&s.Priority, &s.UpdatedAt); err != nil {
			return nil, err
		}
		summaries = append(summaries, &s)
	}
	return summaries, rows.Err()
}

// PerformanceSummary aggregates the writer dashboard numbers for one author.
// Items still in draft do not count as submitted.
func (r *statsRepo) PerformanceSummary(ctx context.Context, authorID string) (*models.AuthorPerformance, error) {
	query := `
		SELECT
			COALESCE(SUM(views), 0),
			COUNT(*) FILTER (WHERE status <> 'draft'),
			COUNT(*) FILTER (WHERE status IN ('approved', 'published')),
			COUNT(*) FILTER (WHERE status = 'published' AND published_at >= date_trunc('month', now()))
		FROM content_items
		WHERE author_id = $1
	`

	perf := &models.AuthorPerformance{AuthorID: authorID}
	err := r.db.QueryRowContext(ctx, query, authorID).Scan(
		&perf.TotalViews, &perf.Submitted, &perf.ApprovedOrPublished, &perf.PublishedThisMonth,
	)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}
	if perf.Submitted > 0 {
		perf.ApprovalRate = float64(perf.ApprovedOrPublished) / float64(perf.Submitted)
	}
	return perf, nil
}
