package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/afriverse/editorial-api/internal/models"
	"github.com/afriverse/editorial-api/internal/notify"
	"github.com/afriverse/editorial-api/internal/repository"
	"github.com/afriverse/editorial-api/internal/validation"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// transitionRule defines one row of the workflow transition table
type transitionRule struct {
	to models.Status
	// allowed decides whether the actor may trigger the event. isAuthor is
	// true when the actor is the item's original author.
	allowed func(role models.Role, isAuthor bool) bool
	// needsFeedback requires non-empty feedback text supplied atomically
	// with the transition
	needsFeedback bool
	feedbackKind  models.FeedbackKind
	// needsSchedule requires a strictly-future schedule timestamp
	needsSchedule bool
	// completesReview stamps the review's completion timestamp
	completesReview bool
}

func itemAuthor(role models.Role, isAuthor bool) bool { return isAuthor }
func reviewers(role models.Role, isAuthor bool) bool { return role.CanReview() }
func publishers(role models.Role, isAuthor bool) bool { return role.CanPublish() }
func authorOrEditor(role models.Role, isAuthor bool) bool {
	return isAuthor || role.CanReview()
}

// transitions is the single permission and transition table. Role checks
// live here and only here; the HTTP layer never duplicates them.
var transitions = map[models.Status]map[models.Event]transitionRule{
	models.StatusDraft: {
		models.EventSubmit:   {to: models.StatusPendingReview, allowed: itemAuthor},
		models.EventPublish:  {to: models.StatusPublished, allowed: publishers},
		models.EventSchedule: {to: models.StatusScheduled, allowed: publishers, needsSchedule: true},
	},
	models.StatusPendingReview: {
		models.EventBeginReview: {to: models.StatusInReview, allowed: reviewers},
	},
	models.StatusInReview: {
		models.EventApprove: {to: models.StatusApproved, allowed: reviewers, completesReview: true},
		models.EventRequestChanges: {
			to: models.StatusChangesRequested, allowed: reviewers,
			needsFeedback: true, feedbackKind: models.FeedbackChangeRequest,
		},
		models.EventReject: {
			to: models.StatusRejected, allowed: reviewers,
			needsFeedback: true, feedbackKind: models.FeedbackChangeRequest,
			completesReview: true,
		},
	},
	models.StatusChangesRequested: {
		models.EventResubmit: {to: models.StatusPendingReview, allowed: itemAuthor},
	},
	models.StatusApproved: {
		models.EventPublish: {to: models.StatusPublished, allowed: reviewers},
	},
	models.StatusScheduled: {
		models.EventCancelSchedule: {to: models.StatusDraft, allowed: authorOrEditor},
	},
}

// ValidEvents returns the events defined for a status, for error responses
// that show the caller its current options
func ValidEvents(status models.Status) []models.Event {
	rules, ok := transitions[status]
	if !ok {
		return nil
	}
	events := make([]models.Event, 0, len(rules))
	for event := range rules {
		events = append(events, event)
	}
	return events
}

// workflowService is the concrete implementation of WorkflowService
type workflowService struct {
	repos    *repository.Repositories
	notifier notify.Notifier
	log      zerolog.Logger
}

// newWorkflowService creates a new WorkflowService
func newWorkflowService(repos *repository.Repositories, notifier notify.Notifier, log zerolog.Logger) *workflowService {
	return &workflowService{
		repos:    repos,
		notifier: notifier,
		log:      log.With().Str("service", "workflow").Logger(),
	}
}

// Create validates input and persists a new content item. Every item starts
// in draft regardless of the creator's role.
func (s *workflowService) Create(ctx context.Context, input *models.ContentInput, actorID string) (*models.ContentItem, error) {
	if errs := validation.ValidateContentInput(input); len(errs) > 0 {
		return nil, validation.Errors(errs)
	}

	item := &models.ContentItem{
		ID:            uuid.New().String(),
		CategoryID:    input.CategoryID,
		AuthorID:      actorID,
		Title:         input.Title,
		Slug:          input.Slug,
		Body:          input.Body,
		FeaturedImage: input.FeaturedImage,
		Tags:          input.Tags,
		Status:        models.StatusDraft,
	}

	if err := s.repos.Content.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create content item: %w", err)
	}

	s.log.Info().
		Str("content_id", item.ID).
		Str("author_id", actorID).
		Str("slug", item.Slug).
		Msg("Content item created")

	return item, nil
}

// Get retrieves a content item by ID
func (s *workflowService) Get(ctx context.Context, id string) (*models.ContentItem, error) {
	return s.repos.Content.GetByID(ctx, id)
}

// UpdateDraft applies author content edits. Permitted only while the item is
// in draft or changes_requested, and only by the original author.
func (s *workflowService) UpdateDraft(ctx context.Context, id string, input *models.ContentInput, actorID string) (*models.ContentItem, error) {
	if errs := validation.ValidateContentInput(input); len(errs) > 0 {
		return nil, validation.Errors(errs)
	}

	item, err := s.repos.Content.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.AuthorID != actorID {
		return nil, fmt.Errorf("only the original author may edit content: %w", models.ErrPermissionDenied)
	}
	if item.Status != models.StatusDraft && item.Status != models.StatusChangesRequested {
		if item.Status.IsTerminal() {
			return nil, fmt.Errorf("item is %s: %w", item.Status, models.ErrWorkflowClosed)
		}
		return nil, fmt.Errorf("content edits not allowed in status %s: %w", item.Status, models.ErrInvalidTransition)
	}

	item.Title = input.Title
	item.Slug = input.Slug
	item.Body = input.Body
	item.FeaturedImage = input.FeaturedImage
	item.Tags = input.Tags

	if err := s.repos.Content.UpdateDraft(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// SubmitTransition validates and applies one workflow transition as a single
// atomic unit. On any error the item and its review record are unchanged.
func (s *workflowService) SubmitTransition(ctx context.Context, contentID string, event models.Event, actorID string, actorRole models.Role, payload *models.TransitionPayload) (*models.ContentItem, error) {
	item, err := s.repos.Content.GetByID(ctx, contentID)
	if err != nil {
		return nil, err
	}

	rules, ok := transitions[item.Status]
	if !ok {
		return nil, fmt.Errorf("no transitions from status %s: %w", item.Status, models.ErrInvalidTransition)
	}
	rule, ok := rules[event]
	if !ok {
		return nil, fmt.Errorf("event %s not valid in status %s: %w", event, item.Status, models.ErrInvalidTransition)
	}
	if !rule.allowed(actorRole, actorID == item.AuthorID) {
		return nil, fmt.Errorf("role %s may not %s: %w", actorRole, event, models.ErrPermissionDenied)
	}

	if payload == nil {
		payload = &models.TransitionPayload{}
	}
	if rule.needsFeedback && strings.TrimSpace(payload.Feedback) == "" {
		return nil, fmt.Errorf("event %s: %w", event, models.ErrMissingFeedback)
	}

	now := timeNow()
	fromStatus := item.Status
	item.Status = rule.to

	if rule.needsSchedule {
		if payload.ScheduledAt == nil || !payload.ScheduledAt.After(now) {
			item.Status = fromStatus
			return nil, models.ErrInvalidSchedule
		}
		item.ScheduledAt = payload.ScheduledAt
	}
	if rule.to == models.StatusPublished {
		item.PublishedAt = &now
		item.ScheduledAt = nil
	}
	if event == models.EventCancelSchedule {
		item.ScheduledAt = nil
	}

	rec := &models.TransitionRecord{
		Item:            item,
		CompleteReview:  rule.completesReview,
		Audit: &models.AuditEntry{
			ID:         uuid.New().String(),
			ContentID:  item.ID,
			ActorID:    actorID,
			ActorRole:  actorRole,
			Event:      event,
			FromStatus: fromStatus,
			ToStatus:   rule.to,
			CreatedAt:  now,
		},
	}

	// Entering pending_review for the first time creates the review record
	// with priority normal. On resubmit the existing record (priority,
	// feedback history) is preserved.
	var review *models.EditorialReview
	if rule.to == models.StatusPendingReview || rule.needsFeedback {
		review, err = s.repos.Review.GetByContentID(ctx, item.ID)
		if err != nil && !errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
	}
	if rule.to == models.StatusPendingReview && review == nil {
		rec.CreateReview = &models.EditorialReview{
			ID:        uuid.New().String(),
			ContentID: item.ID,
			Priority:  models.PriorityNormal,
		}
	}

	if rule.needsFeedback {
		if review == nil {
			return nil, fmt.Errorf("no review record for item %s: %w", item.ID, models.ErrNotFound)
		}
		rec.Feedback = []*models.FeedbackEntry{{
			ID:         uuid.New().String(),
			ReviewID:   review.ID,
			Kind:       rule.feedbackKind,
			Body:       strings.TrimSpace(payload.Feedback),
			AuthorName: s.actorName(ctx, actorID),
			CreatedAt:  now,
		}}
	}

	if err := s.repos.Workflow.ApplyTransition(ctx, rec); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("content_id", item.ID).
		Str("event", string(event)).
		Str("from", string(fromStatus)).
		Str("to", string(rule.to)).
		Str("actor_id", actorID).
		Msg("Transition applied")

	s.notifyTransition(ctx, item, event, actorID)

	return item, nil
}

// PublishDueScheduled publishes every scheduled item whose time has arrived.
// Idempotent: a second sweep with the same now finds nothing in scheduled
// state, and the version check makes a racing double-publish impossible.
func (s *workflowService) PublishDueScheduled(ctx context.Context, now time.Time) (int, error) {
	due, err := s.repos.Content.ListDueScheduled(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("failed to list due scheduled items: %w", err)
	}

	published := 0
	for _, item := range due {
		fromStatus := item.Status
		item.Status = models.StatusPublished
		item.PublishedAt = &now
		item.ScheduledAt = nil

		rec := &models.TransitionRecord{
			Item:           item,
			CompleteReview: false,
			Audit: &models.AuditEntry{
				ID:         uuid.New().String(),
				ContentID:  item.ID,
				ActorID:    models.SystemActorID,
				ActorRole:  models.RoleSuperAdmin,
				Event:      models.EventPublish,
				FromStatus: fromStatus,
				ToStatus:   models.StatusPublished,
				Detail:     "scheduled publish",
				CreatedAt:  now,
			},
		}

		err := s.repos.Workflow.ApplyTransition(ctx, rec)
		if errors.Is(err, models.ErrConcurrentModification) {
			// Someone else moved the item; the sweep skips it.
			continue
		}
		if err != nil {
			s.log.Error().Err(err).Str("content_id", item.ID).Msg("Scheduled publish failed")
			continue
		}

		published++
		s.notifier.Notify(ctx, item.AuthorID, fmt.Sprintf("your article %q was published", item.Title))
	}

	if published > 0 {
		s.log.Info().Int("published", published).Msg("Scheduled publish sweep completed")
	}
	return published, nil
}

// RecordView bumps the public view counter
func (s *workflowService) RecordView(ctx context.Context, id string) error {
	return s.repos.Content.IncrementViews(ctx, id)
}

// actorName resolves a display name for feedback entries, falling back to
// the raw actor ID for unknown users
func (s *workflowService) actorName(ctx context.Context, actorID string) string {
	user, err := s.repos.User.GetByID(ctx, actorID)
	if err != nil {
		return actorID
	}
	return user.Name
}

// notifyTransition sends fire-and-forget notifications. Failures are the
// notifier's concern and never affect the committed transition.
func (s *workflowService) notifyTransition(ctx context.Context, item *models.ContentItem, event models.Event, actorID string) {
	switch event {
	case models.EventRequestChanges:
		s.notifier.Notify(ctx, item.AuthorID, fmt.Sprintf("changes requested on %q", item.Title))
	case models.EventReject:
		s.notifier.Notify(ctx, item.AuthorID, fmt.Sprintf("your article %q was rejected", item.Title))
	case models.EventApprove:
		s.notifier.Notify(ctx, item.AuthorID, fmt.Sprintf("your article %q was approved", item.Title))
	case models.EventPublish:
		if actorID != item.AuthorID {
			s.notifier.Notify(ctx, item.AuthorID, fmt.Sprintf("your article %q was published", item.Title))
		}
	case models.EventSubmit, models.EventResubmit:
		review, err := s.repos.Review.GetByContentID(ctx, item.ID)
		if err == nil && review.AssignedTo != nil {
			s.notifier.Notify(ctx, *review.AssignedTo, fmt.Sprintf("%q is ready for review", item.Title))
		}
	}
}
