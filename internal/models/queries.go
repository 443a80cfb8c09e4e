package models

// CountFilter optionally scopes status counts to an author, an assigned
// reviewer and/or a category
type CountFilter struct {
	AuthorID   string
	AssignedTo string
	CategoryID string
}

// QueueParams selects a page of the editorial queue. Results are ordered
// most-recently-updated first with identifier as tie-breaker so pagination
// stays stable.
type QueueParams struct {
	Status     Status
	Priority   Priority
	CategoryID string
	Page       int
	PageSize   int
}

// AuthorPerformance aggregates a writer dashboard summary
type AuthorPerformance struct {
	AuthorID            string  `json:"author_id"`
	TotalViews          int64   `json:"total_views"`
	Submitted           int     `json:"submitted"`
	ApprovedOrPublished int     `json:"approved_or_published"`
	ApprovalRate        float64 `json:"approval_rate"`
	PublishedThisMonth  int     `json:"published_this_month"`
}
