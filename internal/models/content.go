package models

import (
	"time"
)

// Status is the lifecycle state of a content item. The content item's status
// is the single source of truth; review records never carry their own copy.
type Status string

const (
	StatusDraft            Status = "draft"
	StatusPendingReview    Status = "pending_review"
	StatusInReview         Status = "in_review"
	StatusChangesRequested Status = "changes_requested"
	StatusApproved         Status = "approved"
	StatusPublished        Status = "published"
	StatusScheduled        Status = "scheduled"
	StatusRejected         Status = "rejected"
)

// ValidStatuses defines the allowed content statuses
var ValidStatuses = map[Status]bool{
	StatusDraft:            true,
	StatusPendingReview:    true,
	StatusInReview:         true,
	StatusChangesRequested: true,
	StatusApproved:         true,
	StatusPublished:        true,
	StatusScheduled:        true,
	StatusRejected:         true,
}

// IsTerminal reports whether no further forward transitions are defined.
func (s Status) IsTerminal() bool {
	return s == StatusPublished || s == StatusRejected
}

// Event is a named workflow action requested by an actor.
type Event string

const (
	EventSubmit         Event = "submit"
	EventBeginReview    Event = "begin_review"
	EventApprove        Event = "approve"
	EventRequestChanges Event = "request_changes"
	EventReject         Event = "reject"
	EventResubmit       Event = "resubmit"
	EventPublish        Event = "publish"
	EventSchedule       Event = "schedule"
	EventCancelSchedule Event = "cancel_schedule"
)

// ContentItem represents a single article/post and its publishing metadata
type ContentItem struct {
	ID            string     `json:"id" db:"id"`
	CategoryID    string     `json:"category_id" db:"category_id"`
	AuthorID      string     `json:"author_id" db:"author_id"`
	Title         string     `json:"title" db:"title"`
	Slug          string     `json:"slug" db:"slug"`
	Body          string     `json:"body" db:"body"`
	FeaturedImage string     `json:"featured_image,omitempty" db:"featured_image"`
	Tags          []string   `json:"tags" db:"-"` // Stored as JSON string in DB
	Status        Status     `json:"status" db:"status"`
	ScheduledAt   *time.Time `json:"scheduled_at,omitempty" db:"scheduled_at"`
	PublishedAt   *time.Time `json:"published_at,omitempty" db:"published_at"`
	Views         int64      `json:"views" db:"views"`
	Version       int64      `json:"version" db:"version"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}

// ContentSummary is the editorial queue projection of a content item
type ContentSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Status    Status    `json:"status"`
	AuthorID  string    `json:"author_id"`
	Priority  Priority  `json:"priority,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ContentInput carries author-supplied fields for create and draft edits
type ContentInput struct {
	CategoryID    string   `json:"category_id"`
	Title         string   `json:"title"`
	Slug          string   `json:"slug"`
	Body          string   `json:"body"`
	FeaturedImage string   `json:"featured_image"`
	Tags          []string `json:"tags"`
}

// TransitionPayload carries event-specific data supplied with a transition
// request. Feedback is required for request_changes and reject; ScheduledAt
// is required for schedule.
type TransitionPayload struct {
	Feedback    string     `json:"feedback,omitempty"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
}

// Category anchors slug uniqueness and queue filters
type Category struct {
	ID   string `json:"id" db:"id"`
	Slug string `json:"slug" db:"slug"`
	Name string `json:"name" db:"name"`
}
