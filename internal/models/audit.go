package models

import (
	"time"
)

// AuditEntry records one successful workflow transition. Entries back the
// editorial history views and are never mutated after insert.
type AuditEntry struct {
	ID         string    `json:"id" db:"id"`
	ContentID  string    `json:"content_id" db:"content_id"`
	ActorID    string    `json:"actor_id" db:"actor_id"`
	ActorRole  Role      `json:"actor_role" db:"actor_role"`
	Event      Event     `json:"event" db:"event"`
	FromStatus Status    `json:"from_status" db:"from_status"`
	ToStatus   Status    `json:"to_status" db:"to_status"`
	Detail     string    `json:"detail,omitempty" db:"detail"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// SystemActorID identifies transitions applied by the scheduled-publish
// sweep rather than a human actor.
const SystemActorID = "system"

// TransitionRecord is the complete outcome of one validated transition:
// the updated item plus every side-effect row, applied as a single
// transaction with an optimistic version check on the item.
type TransitionRecord struct {
	Item           *ContentItem
	CreateReview   *EditorialReview
	Feedback       []*FeedbackEntry
	Audit          *AuditEntry
	CompleteReview bool
}
