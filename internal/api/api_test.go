package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/afriverse/editorial-api/internal/api"
	"github.com/afriverse/editorial-api/internal/config"
	"github.com/afriverse/editorial-api/internal/mocks"
	"github.com/afriverse/editorial-api/internal/models"
	"github.com/afriverse/editorial-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	testAuthorID   = uuid.New().String()
	testEditorID   = uuid.New().String()
	testCategoryID = uuid.New().String()
)

func setupTestRouter() (*gin.Engine, *mocks.MockStore) {
	gin.SetMode(gin.TestMode)

	store := mocks.NewMockStore()
	store.AddUser(&models.User{ID: testAuthorID, Name: "Amina Writer", Role: models.RoleAuthor, Active: true})
	store.AddUser(&models.User{ID: testEditorID, Name: "Kwame Editor", Role: models.RoleEditor, Active: true})

	cfg := &config.Config{
		Server:   config.ServerConfig{Port: "8080"},
		Workflow: config.WorkflowConfig{QueuePageSize: 20, MaxPageSize: 100},
	}

	log := zerolog.Nop()
	services := service.NewServices(store.Repositories(), cfg, mocks.NewMockNotifier(), log)
	router := api.NewRouter(services, store.UserRepo, cfg, log)

	return router, store
}

func doJSON(router *gin.Engine, method, path, actorID string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if actorID != "" {
		req.Header.Set("X-Actor-ID", actorID)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := setupTestRouter()

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)

	if response["status"] != "healthy" {
		t.Errorf("Expected status 'healthy', got %v", response["status"])
	}
	if response["service"] != "afriverse-editorial-api" {
		t.Errorf("Expected service name, got %v", response["service"])
	}
}

func TestCreateContentRequiresActor(t *testing.T) {
	router, _ := setupTestRouter()

	w := doJSON(router, "POST", "/v1/content", "", map[string]string{"title": "No actor"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", w.Code)
	}

	w = doJSON(router, "POST", "/v1/content", uuid.New().String(), map[string]string{"title": "Unknown actor"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for unknown actor, got %d", w.Code)
	}
}

func contentBody(slug string) map[string]interface{} {
	return map[string]interface{}{
		"category_id": testCategoryID,
		"title":       "Accra Startup Scene",
		"slug":        slug,
		"body":        "A deep dive into the ecosystem.",
		"tags":        []string{"startups"},
	}
}

func TestCreateAndSubmitFlow(t *testing.T) {
	router, _ := setupTestRouter()

	w := doJSON(router, "POST", "/v1/content", testAuthorID, contentBody("accra-startups"))
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var item models.ContentItem
	json.Unmarshal(w.Body.Bytes(), &item)
	if item.Status != models.StatusDraft {
		t.Errorf("Expected draft, got %s", item.Status)
	}

	w = doJSON(router, "POST", "/v1/content/"+item.ID+"/transitions", testAuthorID,
		map[string]interface{}{"event": "submit"})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	json.Unmarshal(w.Body.Bytes(), &item)
	if item.Status != models.StatusPendingReview {
		t.Errorf("Expected pending_review, got %s", item.Status)
	}
}

func TestInvalidTransitionShowsValidEvents(t *testing.T) {
	router, _ := setupTestRouter()

	w := doJSON(router, "POST", "/v1/content", testAuthorID, contentBody("accra-startups"))
	var item models.ContentItem
	json.Unmarshal(w.Body.Bytes(), &item)

	w = doJSON(router, "POST", "/v1/content/"+item.ID+"/transitions", testEditorID,
		map[string]interface{}{"event": "approve"})
	if w.Code != http.StatusConflict {
		t.Fatalf("Expected 409, got %d", w.Code)
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	if response["kind"] != "invalid_transition" {
		t.Errorf("Expected invalid_transition kind, got %v", response["kind"])
	}
	if _, ok := response["valid_events"]; !ok {
		t.Error("Response should list valid events")
	}
}

func TestAuthorPublishReturns403(t *testing.T) {
	router, _ := setupTestRouter()

	w := doJSON(router, "POST", "/v1/content", testAuthorID, contentBody("accra-startups"))
	var item models.ContentItem
	json.Unmarshal(w.Body.Bytes(), &item)

	w = doJSON(router, "POST", "/v1/content/"+item.ID+"/transitions", testAuthorID,
		map[string]interface{}{"event": "publish"})
	if w.Code != http.StatusForbidden {
		t.Errorf("Expected 403, got %d: %s", w.Code, w.Body.String())
	}
}

func TestQueueEndpoint(t *testing.T) {
	router, _ := setupTestRouter()

	// One submitted item should appear in the default pending_review queue
	w := doJSON(router, "POST", "/v1/content", testAuthorID, contentBody("accra-startups"))
	var item models.ContentItem
	json.Unmarshal(w.Body.Bytes(), &item)
	doJSON(router, "POST", "/v1/content/"+item.ID+"/transitions", testAuthorID,
		map[string]interface{}{"event": "submit"})

	req := httptest.NewRequest("GET", "/v1/editorial/queue", nil)
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, req)

	if w2.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w2.Code)
	}

	var response struct {
		Items []models.ContentSummary `json:"items"`
		Count int                     `json:"count"`
	}
	json.Unmarshal(w2.Body.Bytes(), &response)
	if response.Count != 1 {
		t.Errorf("Expected 1 queued item, got %d", response.Count)
	}
}

func TestCountsEndpointScopedToAssignedReviewer(t *testing.T) {
	router, _ := setupTestRouter()

	// One submitted item assigned to the editor, one left unassigned
	w := doJSON(router, "POST", "/v1/content", testAuthorID, contentBody("assigned-story"))
	var assigned models.ContentItem
	json.Unmarshal(w.Body.Bytes(), &assigned)
	doJSON(router, "POST", "/v1/content/"+assigned.ID+"/transitions", testAuthorID,
		map[string]interface{}{"event": "submit"})
	doJSON(router, "PATCH", "/v1/content/"+assigned.ID+"/review", testEditorID,
		map[string]string{"assigned_to": testEditorID})

	w = doJSON(router, "POST", "/v1/content", testAuthorID, contentBody("unassigned-story"))
	var unassigned models.ContentItem
	json.Unmarshal(w.Body.Bytes(), &unassigned)
	doJSON(router, "POST", "/v1/content/"+unassigned.ID+"/transitions", testAuthorID,
		map[string]interface{}{"event": "submit"})

	req := httptest.NewRequest("GET", "/v1/editorial/counts?assigned_to="+testEditorID, nil)
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, req)
	if w2.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w2.Code, w2.Body.String())
	}

	var response struct {
		Counts map[models.Status]int `json:"counts"`
	}
	json.Unmarshal(w2.Body.Bytes(), &response)
	if response.Counts[models.StatusPendingReview] != 1 {
		t.Errorf("Expected 1 pending_review item for editor, got %v", response.Counts)
	}
}

func TestGetPublishedItemCountsView(t *testing.T) {
	router, store := setupTestRouter()

	w := doJSON(router, "POST", "/v1/content", testEditorID, contentBody("accra-startups"))
	var item models.ContentItem
	json.Unmarshal(w.Body.Bytes(), &item)
	doJSON(router, "POST", "/v1/content/"+item.ID+"/transitions", testEditorID,
		map[string]interface{}{"event": "publish"})

	req := httptest.NewRequest("GET", "/v1/content/"+item.ID, nil)
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, req)
	if w2.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w2.Code)
	}

	if store.Items[item.ID].Views != 1 {
		t.Errorf("Expected 1 view recorded, got %d", store.Items[item.ID].Views)
	}
}

func TestReviewEndpoints(t *testing.T) {
	router, _ := setupTestRouter()

	w := doJSON(router, "POST", "/v1/content", testAuthorID, contentBody("accra-startups"))
	var item models.ContentItem
	json.Unmarshal(w.Body.Bytes(), &item)
	doJSON(router, "POST", "/v1/content/"+item.ID+"/transitions", testAuthorID,
		map[string]interface{}{"event": "submit"})

	// Author may not change priority
	w = doJSON(router, "PATCH", "/v1/content/"+item.ID+"/review", testAuthorID,
		map[string]string{"priority": "high"})
	if w.Code != http.StatusForbidden {
		t.Errorf("Expected 403, got %d", w.Code)
	}

	// Editor may
	w = doJSON(router, "PATCH", "/v1/content/"+item.ID+"/review", testEditorID,
		map[string]string{"priority": "high"})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var review models.EditorialReview
	json.Unmarshal(w.Body.Bytes(), &review)
	if review.Priority != models.PriorityHigh {
		t.Errorf("Expected high priority, got %s", review.Priority)
	}
}
