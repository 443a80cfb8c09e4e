package repository

import (
	"context"
	"time"

	"github.com/afriverse/editorial-api/internal/database"
	"github.com/afriverse/editorial-api/internal/models"
)

// ContentRepository defines the interface for content item data operations
type ContentRepository interface {
	Create(ctx context.Context, item *models.ContentItem) error
	GetByID(ctx context.Context, id string) (*models.ContentItem, error)
	UpdateDraft(ctx context.Context, item *models.ContentItem) error
	ListDueScheduled(ctx context.Context, now time.Time) ([]*models.ContentItem, error)
	IncrementViews(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// ReviewRepository defines the interface for editorial review data operations
type ReviewRepository interface {
	GetByContentID(ctx context.Context, contentID string) (*models.EditorialReview, error)
	// Update writes the mutable review fields. A non-nil audit entry is
	// inserted in the same transaction, so a failed update leaves no
	// stray audit row.
	Update(ctx context.Context, review *models.EditorialReview, audit *models.AuditEntry) error
	AddFeedback(ctx context.Context, entry *models.FeedbackEntry) error
	ListFeedback(ctx context.Context, reviewID string) ([]*models.FeedbackEntry, error)
}

// AuditRepository defines the interface for the transition audit trail
type AuditRepository interface {
	Append(ctx context.Context, entry *models.AuditEntry) error
	ListByContent(ctx context.Context, contentID string) ([]*models.AuditEntry, error)
}

// UserRepository defines the interface for actor lookups
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// WorkflowRepository applies a validated transition atomically: the item
// update (optimistic version check) plus review creation, feedback entries
// and the audit row succeed or fail as one unit.
type WorkflowRepository interface {
	ApplyTransition(ctx context.Context, rec *models.TransitionRecord) error
}

// StatsRepository defines the read-only queue and dashboard aggregations
type StatsRepository interface {
	CountByStatus(ctx context.Context, filter models.CountFilter) (map[models.Status]int, error)
	ListByStatus(ctx context.Context, params models.QueueParams) ([]*models.ContentSummary, error)
	PerformanceSummary(ctx context.Context, authorID string) (*models.AuthorPerformance, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	Content  ContentRepository
	Review   ReviewRepository
	Audit    AuditRepository
	User     UserRepository
	Workflow WorkflowRepository
	Stats    StatsRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Content:  NewContentRepo(db),
		Review:   NewReviewRepo(db),
		Audit:    NewAuditRepo(db),
		User:     NewUserRepo(db),
		Workflow: NewWorkflowRepo(db),
		Stats:    NewStatsRepo(db),
	}
}
