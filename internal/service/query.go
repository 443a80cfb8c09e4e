package service

import (
	"context"
	"fmt"

	"github.com/afriverse/editorial-api/internal/config"
	"github.com/afriverse/editorial-api/internal/models"
	"github.com/afriverse/editorial-api/internal/repository"
	"github.com/rs/zerolog"
)

// queryService is the concrete implementation of QueryService. Pure reads:
// nothing here mutates status or review records.
type queryService struct {
	stats repository.StatsRepository
	cfg   *config.Config
	log   zerolog.Logger
}

// newQueryService creates a new QueryService
func newQueryService(stats repository.StatsRepository, cfg *config.Config, log zerolog.Logger) *queryService {
	return &queryService{
		stats: stats,
		cfg:   cfg,
		log:   log.With().Str("service", "query").Logger(),
	}
}

// CountByStatus returns status counts for the editorial queue header
func (s *queryService) CountByStatus(ctx context.Context, filter models.CountFilter) (map[models.Status]int, error) {
	return s.stats.CountByStatus(ctx, filter)
}

// ListByStatus returns one queue page after normalizing pagination
func (s *queryService) ListByStatus(ctx context.Context, params models.QueueParams) ([]*models.ContentSummary, error) {
	if !models.ValidStatuses[params.Status] {
		return nil, fmt.Errorf("unknown status %q: %w", params.Status, models.ErrNotFound)
	}
	if params.Priority != "" && !models.ValidPriorities[params.Priority] {
		return nil, fmt.Errorf("unknown priority %q: %w", params.Priority, models.ErrNotFound)
	}
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize <= 0 {
		params.PageSize = s.cfg.Workflow.QueuePageSize
	}
	if params.PageSize > s.cfg.Workflow.MaxPageSize {
		params.PageSize = s.cfg.Workflow.MaxPageSize
	}
	return s.stats.ListByStatus(ctx, params)
}

// PerformanceSummary returns the writer dashboard aggregation for an author
func (s *queryService) PerformanceSummary(ctx context.Context, authorID string) (*models.AuthorPerformance, error) {
	return s.stats.PerformanceSummary(ctx, authorID)
}
