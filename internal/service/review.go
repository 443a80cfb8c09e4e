package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/afriverse/editorial-api/internal/models"
	"github.com/afriverse/editorial-api/internal/repository"
	"github.com/afriverse/editorial-api/internal/validation"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// reviewService is the concrete implementation of ReviewService
type reviewService struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

// newReviewService creates a new ReviewService
func newReviewService(repos *repository.Repositories, log zerolog.Logger) *reviewService {
	return &reviewService{
		repos: repos,
		log:   log.With().Str("service", "review").Logger(),
	}
}

// GetReview returns the review record for a content item
func (s *reviewService) GetReview(ctx context.Context, contentID string) (*models.EditorialReview, error) {
	return s.repos.Review.GetByContentID(ctx, contentID)
}

// activeReview loads the item and its review, rejecting mutations on items
// whose workflow has closed (published or rejected)
func (s *reviewService) activeReview(ctx context.Context, contentID string) (*models.EditorialReview, error) {
	item, err := s.repos.Content.GetByID(ctx, contentID)
	if err != nil {
		return nil, err
	}
	if item.Status.IsTerminal() {
		return nil, fmt.Errorf("item is %s: %w", item.Status, models.ErrWorkflowClosed)
	}
	return s.repos.Review.GetByContentID(ctx, contentID)
}

// UpdateReview writes the review's mutable fields (priority, assignee,
// notes). Reassignment overwrites the previous assignee; the prior
// assignment is preserved in the audit trail only.
func (s *reviewService) UpdateReview(ctx context.Context, contentID string, update *models.ReviewUpdate, actorID string, actorRole models.Role) (*models.EditorialReview, error) {
	if !actorRole.CanReview() {
		return nil, fmt.Errorf("role %s may not update reviews: %w", actorRole, models.ErrPermissionDenied)
	}
	if errs := validation.ValidateReviewUpdate(update); len(errs) > 0 {
		return nil, validation.Errors(errs)
	}

	review, err := s.activeReview(ctx, contentID)
	if err != nil {
		return nil, err
	}

	if update.Priority != nil {
		review.Priority = *update.Priority
	}
	if update.Notes != nil {
		review.Notes = *update.Notes
	}
	// A reassignment is audited in the same transaction as the review
	// write, so a failed update never leaves a stray audit entry.
	var audit *models.AuditEntry
	if update.AssignedTo != nil {
		previous := ""
		if review.AssignedTo != nil {
			previous = *review.AssignedTo
		}
		now := timeNow()
		review.AssignedTo = update.AssignedTo
		review.AssignedAt = &now

		audit = &models.AuditEntry{
			ID:        uuid.New().String(),
			ContentID: contentID,
			ActorID:   actorID,
			ActorRole: actorRole,
			Event:     "assign_reviewer",
			Detail:    fmt.Sprintf("reviewer %q -> %q", previous, *update.AssignedTo),
			CreatedAt: now,
		}
	}

	if err := s.repos.Review.Update(ctx, review, audit); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("content_id", contentID).
		Str("actor_id", actorID).
		Msg("Review updated")

	return review, nil
}

// AddFeedback appends one immutable entry to the review's feedback history
func (s *reviewService) AddFeedback(ctx context.Context, contentID string, kind models.FeedbackKind, body string, actorID string, actorRole models.Role) (*models.FeedbackEntry, error) {
	if !actorRole.CanReview() {
		return nil, fmt.Errorf("role %s may not leave feedback: %w", actorRole, models.ErrPermissionDenied)
	}
	if strings.TrimSpace(body) == "" {
		return nil, models.ErrMissingFeedback
	}
	if kind != models.FeedbackComment && kind != models.FeedbackChangeRequest {
		kind = models.FeedbackComment
	}

	review, err := s.activeReview(ctx, contentID)
	if err != nil {
		return nil, err
	}

	entry := &models.FeedbackEntry{
		ID:         uuid.New().String(),
		ReviewID:   review.ID,
		Kind:       kind,
		Body:       strings.TrimSpace(body),
		AuthorName: s.actorName(ctx, actorID),
		CreatedAt:  timeNow(),
	}
	if err := s.repos.Review.AddFeedback(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// GetFeedback returns the feedback history in insertion order
func (s *reviewService) GetFeedback(ctx context.Context, contentID string) ([]*models.FeedbackEntry, error) {
	review, err := s.repos.Review.GetByContentID(ctx, contentID)
	if err != nil {
		return nil, err
	}
	return s.repos.Review.ListFeedback(ctx, review.ID)
}

// GetHistory returns the item's transition audit trail
func (s *reviewService) GetHistory(ctx context.Context, contentID string) ([]*models.AuditEntry, error) {
	if _, err := s.repos.Content.GetByID(ctx, contentID); err != nil {
		return nil, err
	}
	return s.repos.Audit.ListByContent(ctx, contentID)
}

// actorName resolves a display name for feedback entries
func (s *reviewService) actorName(ctx context.Context, actorID string) string {
	user, err := s.repos.User.GetByID(ctx, actorID)
	if err != nil {
		return actorID
	}
	return user.Name
}
