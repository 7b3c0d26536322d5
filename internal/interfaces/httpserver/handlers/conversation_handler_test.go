package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/rs/zerolog"

	"jan-server/services/qa-api/internal/domain/conversation"
	"jan-server/services/qa-api/internal/domain/knowledgebase"
	"jan-server/services/qa-api/internal/domain/query"
	"jan-server/services/qa-api/internal/interfaces/httpserver/handlers"
	"jan-server/services/qa-api/internal/utils/platformerrors"
)

func TestConversationHandler_CreateDefaultsTitle(t *testing.T) {
	service := &MockConversationService{}
	router := setupTestRouter()
	router.POST("/conversations", handlers.NewConversationHandler(service, zerolog.Nop()).Create)

	w := doJSON(router, http.MethodPost, "/conversations", map[string]any{"username": "alice"})

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["title"] != conversation.DefaultTitle {
		t.Errorf("Expected default title, got %v", body["title"])
	}
	if body["is_active"] != float64(1) {
		t.Errorf("Expected is_active 1, got %v", body["is_active"])
	}
}

func TestConversationHandler_CreateValidation(t *testing.T) {
	router := setupTestRouter()
	router.POST("/conversations", handlers.NewConversationHandler(&MockConversationService{}, zerolog.Nop()).Create)

	w := doJSON(router, http.MethodPost, "/conversations", map[string]any{"title": "x"})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", w.Code)
	}
	details, _ := decodeBody(t, w)["details"].(map[string]any)
	if _, ok := details["username"]; !ok {
		t.Errorf("Expected username detail, got %v", details)
	}
}

func TestConversationHandler_List(t *testing.T) {
	service := &MockConversationService{
		ListFunc: func(_ context.Context, username string, pagination query.Pagination) ([]*conversation.Conversation, int64, error) {
			if pagination.Page != 1 || pagination.PageSize != 10 {
				t.Errorf("Expected default pagination, got %+v", pagination)
			}
			return []*conversation.Conversation{{ConversationID: "c1", Username: username}}, 4, nil
		},
	}
	router := setupTestRouter()
	router.GET("/conversations", handlers.NewConversationHandler(service, zerolog.Nop()).List)

	w := doJSON(router, http.MethodGet, "/conversations?username=alice", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["total"] != float64(4) {
		t.Errorf("Expected total 4, got %v", body["total"])
	}
}

func TestConversationHandler_Update(t *testing.T) {
	var got conversation.UpdateParams
	service := &MockConversationService{
		UpdateFunc: func(_ context.Context, conversationID string, params conversation.UpdateParams) bool {
			got = params
			return conversationID == "c1"
		},
	}
	router := setupTestRouter()
	router.PUT("/conversations/:conversation_id", handlers.NewConversationHandler(service, zerolog.Nop()).Update)

	w := doJSON(router, http.MethodPut, "/conversations/c1", map[string]any{"title": "新标题", "is_active": 0})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if got.Title == nil || *got.Title != "新标题" {
		t.Errorf("Expected title to be passed, got %v", got.Title)
	}
	if got.IsActive == nil || *got.IsActive {
		t.Errorf("Expected is_active=false, got %v", got.IsActive)
	}
	if got.Description != nil {
		t.Errorf("Expected description untouched, got %v", *got.Description)
	}

	if w := doJSON(router, http.MethodPut, "/conversations/missing", map[string]any{"title": "x"}); w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
	if w := doJSON(router, http.MethodPut, "/conversations/c1", map[string]any{"is_active": 2}); w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestConversationHandler_GetAndDelete(t *testing.T) {
	service := &MockConversationService{
		GetFunc: func(ctx context.Context, conversationID string) (*conversation.Conversation, error) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, "conversation not found", nil, "u-4")
		},
		DeleteFunc: func(_ context.Context, conversationID string) (bool, error) {
			switch conversationID {
			case "c1":
				return true, nil
			case "broken":
				return false, errors.New("database is locked")
			default:
				return false, nil
			}
		},
	}
	h := handlers.NewConversationHandler(service, zerolog.Nop())
	router := setupTestRouter()
	router.GET("/conversations/:conversation_id", h.Get)
	router.DELETE("/conversations/:conversation_id", h.Delete)

	if w := doJSON(router, http.MethodGet, "/conversations/c1", nil); w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
	if w := doJSON(router, http.MethodDelete, "/conversations/c1", nil); w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w := doJSON(router, http.MethodDelete, "/conversations/gone", nil); w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
	if w := doJSON(router, http.MethodDelete, "/conversations/broken", nil); w.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", w.Code)
	}
}

func TestKnowledgeBaseHandler(t *testing.T) {
	service := &MockKnowledgeBaseService{
		ListFunc: func(_ context.Context, pagination query.Pagination) (*knowledgebase.Page[knowledgebase.KnowledgeBase], error) {
			return &knowledgebase.Page[knowledgebase.KnowledgeBase]{Total: 3, Items: []knowledgebase.KnowledgeBase{{ID: "kb1"}}}, nil
		},
		FilesFunc: func(ctx context.Context, id string, _ query.Pagination) (*knowledgebase.FilesPage, error) {
			if id != "kb1" {
				return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound, "knowledge base not found", nil, "u-5")
			}
			return &knowledgebase.FilesPage{KnowledgeBaseID: id, KnowledgeBaseName: "手册"}, nil
		},
	}
	h := handlers.NewKnowledgeBaseHandler(service, zerolog.Nop())
	router := setupTestRouter()
	router.GET("/knowledge-bases", h.List)
	router.GET("/knowledge-bases/:kb_id/files", h.Files)

	w := doJSON(router, http.MethodGet, "/knowledge-bases?page=1&size=1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if decodeBody(t, w)["total"] != float64(3) {
		t.Errorf("Expected total 3, got %s", w.Body.String())
	}

	w = doJSON(router, http.MethodGet, "/knowledge-bases/kb1/files", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if items, ok := body["items"].([]any); !ok || len(items) != 0 {
		t.Errorf("Expected empty items, got %v", body["items"])
	}
	if body["knowledge_base_name"] != "手册" {
		t.Errorf("Expected knowledge base name, got %v", body["knowledge_base_name"])
	}

	if w := doJSON(router, http.MethodGet, "/knowledge-bases/nope/files", nil); w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestHealthHandler_Ready(t *testing.T) {
	healthy := &MockPinger{}
	failing := &MockPinger{PingFunc: func(context.Context) error { return errors.New("connection refused") }}

	router := setupTestRouter()
	router.GET("/readyz", handlers.NewHealthHandler("qa-api", map[string]handlers.Pinger{"database": healthy}, zerolog.Nop()).Ready)
	w := doJSON(router, http.MethodGet, "/readyz", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if decodeBody(t, w)["status"] != "ready" {
		t.Errorf("Expected ready, got %s", w.Body.String())
	}

	router = setupTestRouter()
	router.GET("/readyz", handlers.NewHealthHandler("qa-api", map[string]handlers.Pinger{
		"database": healthy,
		"gstore":   failing,
	}, zerolog.Nop()).Ready)
	w = doJSON(router, http.MethodGet, "/readyz", nil)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("Expected status 503, got %d", w.Code)
	}
	checks, _ := decodeBody(t, w)["checks"].(map[string]any)
	if checks["database"] != "ok" || checks["gstore"] != "connection refused" {
		t.Errorf("Unexpected checks %v", checks)
	}
}
