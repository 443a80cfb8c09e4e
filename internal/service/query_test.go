package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/afriverse/editorial-api/internal/models"
	"github.com/google/uuid"
)

func seedItem(store interface {
	Create(ctx context.Context, item *models.ContentItem) error
}, authorID, categoryID string) *models.ContentItem {
	item := &models.ContentItem{
		ID:         uuid.New().String(),
		CategoryID: categoryID,
		AuthorID:   authorID,
		Title:      "Seeded",
		Slug:       uuid.New().String(),
		Body:       "body",
		Status:     models.StatusDraft,
	}
	store.Create(context.Background(), item)
	return item
}

func TestCountByStatusWithFilters(t *testing.T) {
	store, _, services := newTestEnv()
	ctx := context.Background()

	otherAuthor := uuid.New().String()
	otherCategory := uuid.New().String()

	for i := 0; i < 3; i++ {
		it := seedItem(store, authorID, testCategoryID)
		store.Items[it.ID].Status = models.StatusPendingReview
	}
	it := seedItem(store, otherAuthor, otherCategory)
	store.Items[it.ID].Status = models.StatusPublished

	counts, err := services.Query.CountByStatus(ctx, models.CountFilter{})
	if err != nil {
		t.Fatalf("CountByStatus failed: %v", err)
	}
	if counts[models.StatusPendingReview] != 3 || counts[models.StatusPublished] != 1 {
		t.Errorf("Unexpected counts: %v", counts)
	}

	counts, _ = services.Query.CountByStatus(ctx, models.CountFilter{AuthorID: otherAuthor})
	if counts[models.StatusPendingReview] != 0 || counts[models.StatusPublished] != 1 {
		t.Errorf("Author filter not applied: %v", counts)
	}

	counts, _ = services.Query.CountByStatus(ctx, models.CountFilter{CategoryID: testCategoryID})
	if counts[models.StatusPublished] != 0 || counts[models.StatusPendingReview] != 3 {
		t.Errorf("Category filter not applied: %v", counts)
	}
}

func TestCountByStatusScopedToAssignedReviewer(t *testing.T) {
	store, _, services := newTestEnv()
	ctx := context.Background()

	reviewer := editorID
	assigned := seedItem(store, authorID, testCategoryID)
	store.Items[assigned.ID].Status = models.StatusInReview
	store.Reviews[assigned.ID] = &models.EditorialReview{
		ID: uuid.New().String(), ContentID: assigned.ID,
		Priority: models.PriorityNormal, AssignedTo: &reviewer,
	}

	// Pending review but not assigned to anyone
	unassigned := seedItem(store, authorID, testCategoryID)
	store.Items[unassigned.ID].Status = models.StatusPendingReview
	store.Reviews[unassigned.ID] = &models.EditorialReview{
		ID: uuid.New().String(), ContentID: unassigned.ID,
		Priority: models.PriorityNormal,
	}

	counts, err := services.Query.CountByStatus(ctx, models.CountFilter{AssignedTo: reviewer})
	if err != nil {
		t.Fatalf("CountByStatus failed: %v", err)
	}
	if counts[models.StatusInReview] != 1 {
		t.Errorf("Expected 1 in_review item for reviewer, got %d", counts[models.StatusInReview])
	}
	if counts[models.StatusPendingReview] != 0 {
		t.Errorf("Unassigned item leaked into reviewer scope: %v", counts)
	}

	counts, _ = services.Query.CountByStatus(ctx, models.CountFilter{AssignedTo: authorID})
	if len(counts) != 0 {
		t.Errorf("Expected no items for uninvolved reviewer, got %v", counts)
	}
}

func TestListByStatusOrderingAndPagination(t *testing.T) {
	store, _, services := newTestEnv()
	ctx := context.Background()

	base := time.Now().Truncate(time.Second)
	// Three items: two share an update time so the ID tie-break kicks in
	ids := []string{"aaaaaaaa-0000-0000-0000-000000000001",
		"aaaaaaaa-0000-0000-0000-000000000002",
		"aaaaaaaa-0000-0000-0000-000000000003"}
	times := []time.Time{base.Add(-time.Hour), base, base}

	for i, id := range ids {
		store.Items[id] = &models.ContentItem{
			ID: id, CategoryID: testCategoryID, AuthorID: authorID,
			Title: "Story", Slug: id, Status: models.StatusPendingReview,
			Version: 1, UpdatedAt: times[i],
		}
	}

	page, err := services.Query.ListByStatus(ctx, models.QueueParams{
		Status: models.StatusPendingReview, Page: 1, PageSize: 2,
	})
	if err != nil {
		t.Fatalf("ListByStatus failed: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(page))
	}
	// Newest first; equal timestamps break ties by ID ascending
	if page[0].ID != ids[1] || page[1].ID != ids[2] {
		t.Errorf("Unexpected order: %s, %s", page[0].ID, page[1].ID)
	}

	page2, _ := services.Query.ListByStatus(ctx, models.QueueParams{
		Status: models.StatusPendingReview, Page: 2, PageSize: 2,
	})
	if len(page2) != 1 || page2[0].ID != ids[0] {
		t.Errorf("Unexpected second page: %+v", page2)
	}
}

func TestListByStatusRejectsUnknownStatus(t *testing.T) {
	_, _, services := newTestEnv()

	_, err := services.Query.ListByStatus(context.Background(), models.QueueParams{
		Status: "mystery", Page: 1, PageSize: 10,
	})
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected error for unknown status, got %v", err)
	}
}

func TestListByStatusNormalizesPageSize(t *testing.T) {
	store, _, services := newTestEnv()

	for i := 0; i < 5; i++ {
		it := seedItem(store, authorID, testCategoryID)
		store.Items[it.ID].Status = models.StatusPendingReview
	}

	// Oversized request is clamped to the configured maximum
	page, err := services.Query.ListByStatus(context.Background(), models.QueueParams{
		Status: models.StatusPendingReview, Page: 1, PageSize: 10000,
	})
	if err != nil {
		t.Fatalf("ListByStatus failed: %v", err)
	}
	if len(page) != 5 {
		t.Errorf("Expected all 5 items, got %d", len(page))
	}
}

func TestPerformanceSummary(t *testing.T) {
	store, _, services := newTestEnv()
	ctx := context.Background()

	now := time.Now()
	lastMonth := now.AddDate(0, -1, 0)

	mk := func(status models.Status, views int64, publishedAt *time.Time) {
		id := uuid.New().String()
		store.Items[id] = &models.ContentItem{
			ID: id, CategoryID: testCategoryID, AuthorID: authorID,
			Title: "Story", Slug: id, Status: status, Views: views,
			PublishedAt: publishedAt, Version: 1, UpdatedAt: now,
		}
	}

	mk(models.StatusDraft, 0, nil) // drafts never count as submitted
	mk(models.StatusPublished, 120, &now)
	mk(models.StatusPublished, 80, &lastMonth)
	mk(models.StatusApproved, 0, nil)
	mk(models.StatusRejected, 0, nil)

	perf, err := services.Query.PerformanceSummary(ctx, authorID)
	if err != nil {
		t.Fatalf("PerformanceSummary failed: %v", err)
	}

	if perf.Submitted != 4 {
		t.Errorf("Expected 4 submitted, got %d", perf.Submitted)
	}
	if perf.ApprovedOrPublished != 3 {
		t.Errorf("Expected 3 approved/published, got %d", perf.ApprovedOrPublished)
	}
	if perf.ApprovalRate != 0.75 {
		t.Errorf("Expected approval rate 0.75, got %f", perf.ApprovalRate)
	}
	if perf.TotalViews != 200 {
		t.Errorf("Expected 200 views, got %d", perf.TotalViews)
	}
	if perf.PublishedThisMonth != 1 {
		t.Errorf("Expected 1 published this month, got %d", perf.PublishedThisMonth)
	}
}
