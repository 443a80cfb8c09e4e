package models

import (
	"time"
)

// Priority is the editorial urgency of a review
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// ValidPriorities defines allowed review priorities
var ValidPriorities = map[Priority]bool{
	PriorityLow:    true,
	PriorityNormal: true,
	PriorityHigh:   true,
	PriorityUrgent: true,
}

// FeedbackKind distinguishes plain comments from change requests
type FeedbackKind string

const (
	FeedbackComment       FeedbackKind = "comment"
	FeedbackChangeRequest FeedbackKind = "change_request"
)

// EditorialReview is the review-tracking record attached to a content item
// once it first leaves draft. Exactly one exists per content item; it carries
// review sub-state only, never a copy of the item's status.
type EditorialReview struct {
	ID          string     `json:"id" db:"id"`
	ContentID   string     `json:"content_id" db:"content_id"`
	Priority    Priority   `json:"priority" db:"priority"`
	AssignedTo  *string    `json:"assigned_to,omitempty" db:"assigned_to"`
	AssignedAt  *time.Time `json:"assigned_at,omitempty" db:"assigned_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty" db:"completed_at"`
	Notes       string     `json:"notes,omitempty" db:"notes"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// FeedbackEntry is one immutable note or change request left by a reviewer.
// Entries are append-only; insertion order is the canonical chronological
// record.
type FeedbackEntry struct {
	ID         string       `json:"id" db:"id"`
	ReviewID   string       `json:"review_id" db:"review_id"`
	Kind       FeedbackKind `json:"kind" db:"kind"`
	Body       string       `json:"body" db:"body"`
	AuthorName string       `json:"author_name" db:"author_name"`
	CreatedAt  time.Time    `json:"created_at" db:"created_at"`
}

// ReviewUpdate carries the mutable review fields for PATCH requests
type ReviewUpdate struct {
	Priority   *Priority `json:"priority,omitempty"`
	AssignedTo *string   `json:"assigned_to,omitempty"`
	Notes      *string   `json:"notes,omitempty"`
}
