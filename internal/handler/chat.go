package handler

import (
	"log/slog"
	"net/http"

	"clientsim/internal/domain/services"
	"clientsim/internal/httputil"
)

// ChatHandler handles chat HTTP requests. Handlers only talk to the service
// layer, never to repositories.
type ChatHandler struct {
	chatService services.ChatService
	logger      *slog.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService services.ChatService, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		logger:      logger,
	}
}

// CreateChat starts a new chat for a named client
// POST /api/chats
func (h *ChatHandler) CreateChat(w http.ResponseWriter, r *http.Request) {
	var req services.CreateChatRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	chat, err := h.chatService.Create(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, chat)
}

// GetChat retrieves a single chat by ID
// GET /api/chats/{id}
func (h *ChatHandler) GetChat(w http.ResponseWriter, r *http.Request) {
	chatID, ok := pathParam(w, r, "id", "Chat ID")
	if !ok {
		return
	}

	chat, err := h.chatService.Get(r.Context(), chatID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, chat)
}

// AppendMessage adds a user turn and the assistant reply to a chat
// POST /api/chats/{id}/messages
func (h *ChatHandler) AppendMessage(w http.ResponseWriter, r *http.Request) {
	chatID, ok := pathParam(w, r, "id", "Chat ID")
	if !ok {
		return
	}

	var req services.AppendMessageRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.ChatID = chatID

	chat, err := h.chatService.Update(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, chat)
}

// DeleteChat stops tracking a chat and returns its final state
// DELETE /api/chats/{id}
func (h *ChatHandler) DeleteChat(w http.ResponseWriter, r *http.Request) {
	chatID, ok := pathParam(w, r, "id", "Chat ID")
	if !ok {
		return
	}

	deletedChat, err := h.chatService.Delete(r.Context(), chatID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, deletedChat)
}

// ListClients enumerates the client profiles available for new chats
// GET /api/clients
func (h *ChatHandler) ListClients(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.chatService.ListClients(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, profiles)
}
