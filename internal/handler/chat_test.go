package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"clientsim/internal/domain"
	"clientsim/internal/domain/models"
	"clientsim/internal/domain/services"
)

// mockChatService is a canned-response ChatService for handler tests.
type mockChatService struct {
	chat *models.Chat
	err  error
}

func (m *mockChatService) Create(ctx context.Context, req *services.CreateChatRequest) (*models.Chat, error) {
	if req.Client == "" {
		return nil, fmt.Errorf("%w: client is required", domain.ErrValidation)
	}
	return m.chat, m.err
}

func (m *mockChatService) Get(ctx context.Context, id string) (*models.Chat, error) {
	return m.chat, m.err
}

func (m *mockChatService) Update(ctx context.Context, req *services.AppendMessageRequest) (*models.Chat, error) {
	if req.UserMessage == "" {
		return nil, fmt.Errorf("%w: user_message is required", domain.ErrValidation)
	}
	return m.chat, m.err
}

func (m *mockChatService) Delete(ctx context.Context, id string) (*models.Chat, error) {
	return m.chat, m.err
}

func (m *mockChatService) ListClients(ctx context.Context) ([]models.ClientProfile, error) {
	if m.err != nil {
		return nil, m.err
	}
	return []models.ClientProfile{{DisplayName: "Alice"}}, nil
}

func testMux(svc services.ChatService) *http.ServeMux {
	h := NewChatHandler(svc, slog.New(slog.DiscardHandler))
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/chats", h.CreateChat)
	mux.HandleFunc("GET /api/chats/{id}", h.GetChat)
	mux.HandleFunc("POST /api/chats/{id}/messages", h.AppendMessage)
	mux.HandleFunc("DELETE /api/chats/{id}", h.DeleteChat)
	mux.HandleFunc("GET /api/clients", h.ListClients)
	return mux
}

func sampleChat() *models.Chat {
	return &models.Chat{
		ID:          "11111111-2222-3333-4444-555555555555",
		DisplayName: "Alice",
		Messages: []models.Message{
			{Role: models.RoleSystem, Content: "You are roleplaying as Alice."},
		},
	}
}

func TestCreateChat(t *testing.T) {
	mux := testMux(&mockChatService{chat: sampleChat()})

	req := httptest.NewRequest(http.MethodPost, "/api/chats", strings.NewReader(`{"client":"Alice"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var chat models.Chat
	if err := json.Unmarshal(rec.Body.Bytes(), &chat); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if chat.ID == "" || len(chat.Messages) != 1 {
		t.Errorf("unexpected chat payload: %+v", chat)
	}
}

func TestCreateChat_MissingField(t *testing.T) {
	mux := testMux(&mockChatService{chat: sampleChat()})

	req := httptest.NewRequest(http.MethodPost, "/api/chats", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("expected problem+json error body, got %q", ct)
	}
}

func TestCreateChat_InvalidJSON(t *testing.T) {
	mux := testMux(&mockChatService{chat: sampleChat()})

	req := httptest.NewRequest(http.MethodPost, "/api/chats", strings.NewReader(`{not json`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid JSON, got %d", rec.Code)
	}
}

func TestGetChat_NotFound(t *testing.T) {
	mux := testMux(&mockChatService{err: fmt.Errorf("chat x: %w", domain.ErrNotFound)})

	req := httptest.NewRequest(http.MethodGet, "/api/chats/x", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAppendMessage_GatewayFailure(t *testing.T) {
	mux := testMux(&mockChatService{err: fmt.Errorf("upstream: %w", domain.ErrGateway)})

	req := httptest.NewRequest(http.MethodPost, "/api/chats/x/messages", strings.NewReader(`{"user_message":"hi"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
}

func TestAppendMessage_MissingField(t *testing.T) {
	mux := testMux(&mockChatService{chat: sampleChat()})

	req := httptest.NewRequest(http.MethodPost, "/api/chats/x/messages", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestDeleteChat(t *testing.T) {
	mux := testMux(&mockChatService{chat: sampleChat()})

	req := httptest.NewRequest(http.MethodDelete, "/api/chats/11111111-2222-3333-4444-555555555555", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var chat models.Chat
	if err := json.Unmarshal(rec.Body.Bytes(), &chat); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if chat.DisplayName != "Alice" {
		t.Errorf("expected the removed chat back, got %+v", chat)
	}
}

func TestDeleteChat_StorageFailure(t *testing.T) {
	mux := testMux(&mockChatService{err: fmt.Errorf("disk gone: %w", domain.ErrStorage)})

	req := httptest.NewRequest(http.MethodDelete, "/api/chats/x", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	// Internal failures must not leak implementation details.
	if strings.Contains(rec.Body.String(), "disk gone") {
		t.Errorf("storage detail leaked to caller: %s", rec.Body.String())
	}
}

func TestListClients(t *testing.T) {
	mux := testMux(&mockChatService{})

	req := httptest.NewRequest(http.MethodGet, "/api/clients", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var profiles []models.ClientProfile
	if err := json.Unmarshal(rec.Body.Bytes(), &profiles); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(profiles) != 1 || profiles[0].DisplayName != "Alice" {
		t.Errorf("unexpected profiles: %+v", profiles)
	}
}
