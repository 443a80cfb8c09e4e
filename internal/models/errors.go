package models

import (
	"errors"
)

// Workflow error taxonomy. Callers classify with errors.Is; the engine never
// leaves a content item/review pair partially updated on any error path.
var (
	// ErrNotFound indicates the content item, review, or user does not exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidTransition indicates the requested event is not defined for
	// the item's current status
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrPermissionDenied indicates the actor's role is insufficient for the
	// requested event
	ErrPermissionDenied = errors.New("permission denied")

	// ErrMissingFeedback indicates a change request or rejection was
	// attempted without feedback text
	ErrMissingFeedback = errors.New("feedback required")

	// ErrInvalidSchedule indicates a schedule timestamp at or before now
	ErrInvalidSchedule = errors.New("schedule timestamp must be in the future")

	// ErrConcurrentModification indicates the item changed between read and
	// write; the caller should re-fetch and retry
	ErrConcurrentModification = errors.New("concurrent modification")

	// ErrWorkflowClosed indicates a mutation was attempted on a terminal
	// (published or rejected) item
	ErrWorkflowClosed = errors.New("workflow closed")

	// ErrSlugTaken indicates the slug is already used within the category
	ErrSlugTaken = errors.New("slug already exists in category")
)
