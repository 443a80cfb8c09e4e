package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/afriverse/editorial-api/internal/models"
	"github.com/afriverse/editorial-api/internal/repository"
)

// MockStore is an in-memory implementation of every repository interface.
// A single store backs all of them so the optimistic version check behaves
// like the real transactional apply.
type MockStore struct {
	mu       sync.Mutex
	Items    map[string]*models.ContentItem
	Reviews  map[string]*models.EditorialReview // keyed by content ID
	Feedback map[string][]*models.FeedbackEntry // keyed by review ID
	Audits   []*models.AuditEntry
	UserRepo *MockUserRepository

	// ApplyErr, when set, is returned by ApplyTransition before any write
	ApplyErr error
	// ApplyCalls counts ApplyTransition invocations
	ApplyCalls int
	// ReviewUpdateErr, when set, fails Update before any write, like a
	// rolled-back transaction
	ReviewUpdateErr error
}

// NewMockStore creates an empty in-memory store
func NewMockStore() *MockStore {
	return &MockStore{
		Items:    make(map[string]*models.ContentItem),
		Reviews:  make(map[string]*models.EditorialReview),
		Feedback: make(map[string][]*models.FeedbackEntry),
		UserRepo: NewMockUserRepository(),
	}
}

// Repositories wires the store into a repository aggregate
func (m *MockStore) Repositories() *repository.Repositories {
	return &repository.Repositories{
		Content:  m,
		Review:   m,
		Audit:    m,
		User:     m.UserRepo,
		Workflow: m,
		Stats:    m,
	}
}

// AddUser seeds an actor
func (m *MockStore) AddUser(user *models.User) {
	m.UserRepo.Add(user)
}

// MockUserRepository is an in-memory UserRepository
type MockUserRepository struct {
	mu    sync.Mutex
	Users map[string]*models.User
}

// NewMockUserRepository creates an empty user repository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{Users: make(map[string]*models.User)}
}

// Add seeds a user
func (m *MockUserRepository) Add(user *models.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Users[user.ID] = user
}

// GetByID retrieves a user by ID
func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.Users[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *user
	return &cp, nil
}

func copyItem(item *models.ContentItem) *models.ContentItem {
	cp := *item
	cp.Tags = append([]string(nil), item.Tags...)
	if item.ScheduledAt != nil {
		t := *item.ScheduledAt
		cp.ScheduledAt = &t
	}
	if item.PublishedAt != nil {
		t := *item.PublishedAt
		cp.PublishedAt = &t
	}
	return &cp
}

func copyReview(review *models.EditorialReview) *models.EditorialReview {
	cp := *review
	if review.AssignedTo != nil {
		s := *review.AssignedTo
		cp.AssignedTo = &s
	}
	if review.AssignedAt != nil {
		t := *review.AssignedAt
		cp.AssignedAt = &t
	}
	if review.CompletedAt != nil {
		t := *review.CompletedAt
		cp.CompletedAt = &t
	}
	return &cp
}

// --- ContentRepository ---

func (m *MockStore) Create(ctx context.Context, item *models.ContentItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.Items {
		if existing.CategoryID == item.CategoryID && existing.Slug == item.Slug {
			return models.ErrSlugTaken
		}
	}
	now := time.Now()
	item.Views = 0
	item.Version = 1
	item.CreatedAt = now
	item.UpdatedAt = now
	m.Items[item.ID] = copyItem(item)
	return nil
}

func (m *MockStore) GetByID(ctx context.Context, id string) (*models.ContentItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.Items[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return copyItem(item), nil
}

func (m *MockStore) UpdateDraft(ctx context.Context, item *models.ContentItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.Items[item.ID]
	if !ok {
		return models.ErrNotFound
	}
	if stored.Version != item.Version {
		return models.ErrConcurrentModification
	}
	for _, existing := range m.Items {
		if existing.ID != item.ID && existing.CategoryID == item.CategoryID && existing.Slug == item.Slug {
			return models.ErrSlugTaken
		}
	}

	stored.Title = item.Title
	stored.Slug = item.Slug
	stored.Body = item.Body
	stored.FeaturedImage = item.FeaturedImage
	stored.Tags = append([]string(nil), item.Tags...)
	stored.Version++
	stored.UpdatedAt = time.Now()
	item.Version = stored.Version
	return nil
}

func (m *MockStore) ListDueScheduled(ctx context.Context, now time.Time) ([]*models.ContentItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var due []*models.ContentItem
	for _, item := range m.Items {
		if item.Status == models.StatusScheduled && item.ScheduledAt != nil && !item.ScheduledAt.After(now) {
			due = append(due, copyItem(item))
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i].ScheduledAt.Before(*due[j].ScheduledAt) })
	return due, nil
}

func (m *MockStore) IncrementViews(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.Items[id]
	if !ok {
		return models.ErrNotFound
	}
	item.Views++
	return nil
}

func (m *MockStore) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Items), nil
}

// --- ReviewRepository ---

func (m *MockStore) GetByContentID(ctx context.Context, contentID string) (*models.EditorialReview, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	review, ok := m.Reviews[contentID]
	if !ok {
		return nil, models.ErrNotFound
	}
	return copyReview(review), nil
}

func (m *MockStore) Update(ctx context.Context, review *models.EditorialReview, audit *models.AuditEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ReviewUpdateErr != nil {
		return m.ReviewUpdateErr
	}
	stored, ok := m.Reviews[review.ContentID]
	if !ok {
		return models.ErrNotFound
	}
	*stored = *copyReview(review)
	stored.UpdatedAt = time.Now()
	if audit != nil {
		cp := *audit
		m.Audits = append(m.Audits, &cp)
	}
	return nil
}

func (m *MockStore) AddFeedback(ctx context.Context, entry *models.FeedbackEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *entry
	m.Feedback[entry.ReviewID] = append(m.Feedback[entry.ReviewID], &cp)
	return nil
}

func (m *MockStore) ListFeedback(ctx context.Context, reviewID string) ([]*models.FeedbackEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries := m.Feedback[reviewID]
	out := make([]*models.FeedbackEntry, len(entries))
	for i, e := range entries {
		cp := *e
		out[i] = &cp
	}
	return out, nil
}

// --- AuditRepository ---

func (m *MockStore) Append(ctx context.Context, entry *models.AuditEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *entry
	m.Audits = append(m.Audits, &cp)
	return nil
}

func (m *MockStore) ListByContent(ctx context.Context, contentID string) ([]*models.AuditEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*models.AuditEntry
	for _, e := range m.Audits {
		if e.ContentID == contentID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

// --- WorkflowRepository ---

func (m *MockStore) ApplyTransition(ctx context.Context, rec *models.TransitionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ApplyCalls++
	if m.ApplyErr != nil {
		return m.ApplyErr
	}

	stored, ok := m.Items[rec.Item.ID]
	if !ok {
		return models.ErrNotFound
	}
	if stored.Version != rec.Item.Version {
		return models.ErrConcurrentModification
	}

	now := time.Now()
	stored.Status = rec.Item.Status
	stored.ScheduledAt = nil
	if rec.Item.ScheduledAt != nil {
		t := *rec.Item.ScheduledAt
		stored.ScheduledAt = &t
	}
	stored.PublishedAt = nil
	if rec.Item.PublishedAt != nil {
		t := *rec.Item.PublishedAt
		stored.PublishedAt = &t
	}
	stored.Version++
	stored.UpdatedAt = now

	if rec.CreateReview != nil {
		review := copyReview(rec.CreateReview)
		review.CreatedAt = now
		review.UpdatedAt = now
		m.Reviews[review.ContentID] = review
	}
	for _, entry := range rec.Feedback {
		cp := *entry
		m.Feedback[entry.ReviewID] = append(m.Feedback[entry.ReviewID], &cp)
	}
	if rec.CompleteReview {
		if review, ok := m.Reviews[rec.Item.ID]; ok {
			review.CompletedAt = &now
			review.UpdatedAt = now
		}
	}
	audit := *rec.Audit
	m.Audits = append(m.Audits, &audit)

	rec.Item.Version = stored.Version
	rec.Item.UpdatedAt = now
	return nil
}

// --- StatsRepository ---

func (m *MockStore) CountByStatus(ctx context.Context, filter models.CountFilter) (map[models.Status]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	counts := make(map[models.Status]int)
	for _, item := range m.Items {
		if filter.AuthorID != "" && item.AuthorID != filter.AuthorID {
			continue
		}
		if filter.AssignedTo != "" {
			review, ok := m.Reviews[item.ID]
			if !ok || review.AssignedTo == nil || *review.AssignedTo != filter.AssignedTo {
				continue
			}
		}
		if filter.CategoryID != "" && item.CategoryID != filter.CategoryID {
			continue
		}
		counts[item.Status]++
	}
	return counts, nil
}

func (m *MockStore) ListByStatus(ctx context.Context, params models.QueueParams) ([]*models.ContentSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var summaries []*models.ContentSummary
	for _, item := range m.Items {
		if item.Status != params.Status {
			continue
		}
		if params.CategoryID != "" && item.CategoryID != params.CategoryID {
			continue
		}
		var priority models.Priority
		if review, ok := m.Reviews[item.ID]; ok {
			priority = review.Priority
		}
		if params.Priority != "" && priority != params.Priority {
			continue
		}
		summaries = append(summaries, &models.ContentSummary{
			ID:        item.ID,
			Title:     item.Title,
			Slug:      item.Slug,
			Status:    item.Status,
			AuthorID:  item.AuthorID,
			Priority:  priority,
			UpdatedAt: item.UpdatedAt,
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		if !summaries[i].UpdatedAt.Equal(summaries[j].UpdatedAt) {
			return summaries[i].UpdatedAt.After(summaries[j].UpdatedAt)
		}
		return summaries[i].ID < summaries[j].ID
	})

	start := (params.Page - 1) * params.PageSize
	if start >= len(summaries) {
		return nil, nil
	}
	end := start + params.PageSize
	if end > len(summaries) {
		end = len(summaries)
	}
	return summaries[start:end], nil
}

func (m *MockStore) PerformanceSummary(ctx context.Context, authorID string) (*models.AuthorPerformance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	perf := &models.AuthorPerformance{AuthorID: authorID}
	now := time.Now()
	for _, item := range m.Items {
		if item.AuthorID != authorID {
			continue
		}
		perf.TotalViews += item.Views
		if item.Status != models.StatusDraft {
			perf.Submitted++
		}
		if item.Status == models.StatusApproved || item.Status == models.StatusPublished {
			perf.ApprovedOrPublished++
		}
		if item.Status == models.StatusPublished && item.PublishedAt != nil &&
			item.PublishedAt.Year() == now.Year() && item.PublishedAt.Month() == now.Month() {
			perf.PublishedThisMonth++
		}
	}
	if perf.Submitted > 0 {
		perf.ApprovalRate = float64(perf.ApprovedOrPublished) / float64(perf.Submitted)
	}
	return perf, nil
}
