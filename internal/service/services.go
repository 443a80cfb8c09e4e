package service

import (
	"context"
	"time"

	"github.com/afriverse/editorial-api/internal/config"
	"github.com/afriverse/editorial-api/internal/models"
	"github.com/afriverse/editorial-api/internal/notify"
	"github.com/afriverse/editorial-api/internal/repository"
	"github.com/rs/zerolog"
)

// timeNow is swapped out in tests for deterministic timestamps
var timeNow = time.Now

// WorkflowService is the sole authority for moving content items between
// lifecycle states
type WorkflowService interface {
	Create(ctx context.Context, input *models.ContentInput, actorID string) (*models.ContentItem, error)
	Get(ctx context.Context, id string) (*models.ContentItem, error)
	UpdateDraft(ctx context.Context, id string, input *models.ContentInput, actorID string) (*models.ContentItem, error)
	SubmitTransition(ctx context.Context, contentID string, event models.Event, actorID string, actorRole models.Role, payload *models.TransitionPayload) (*models.ContentItem, error)
	PublishDueScheduled(ctx context.Context, now time.Time) (int, error)
	RecordView(ctx context.Context, id string) error
}

// ReviewService maintains the review record's mutable fields and the
// append-only feedback history
type ReviewService interface {
	GetReview(ctx context.Context, contentID string) (*models.EditorialReview, error)
	UpdateReview(ctx context.Context, contentID string, update *models.ReviewUpdate, actorID string, actorRole models.Role) (*models.EditorialReview, error)
	AddFeedback(ctx context.Context, contentID string, kind models.FeedbackKind, body string, actorID string, actorRole models.Role) (*models.FeedbackEntry, error)
	GetFeedback(ctx context.Context, contentID string) ([]*models.FeedbackEntry, error)
	GetHistory(ctx context.Context, contentID string) ([]*models.AuditEntry, error)
}

// QueryService exposes the read-only queue and dashboard aggregations
type QueryService interface {
	CountByStatus(ctx context.Context, filter models.CountFilter) (map[models.Status]int, error)
	ListByStatus(ctx context.Context, params models.QueueParams) ([]*models.ContentSummary, error)
	PerformanceSummary(ctx context.Context, authorID string) (*models.AuthorPerformance, error)
}

// Services holds all service interfaces
type Services struct {
	Workflow WorkflowService
	Review   ReviewService
	Query    QueryService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, cfg *config.Config, notifier notify.Notifier, log zerolog.Logger) *Services {
	return &Services{
		Workflow: newWorkflowService(repos, notifier, log),
		Review:   newReviewService(repos, log),
		Query:    newQueryService(repos.Stats, cfg, log),
	}
}
