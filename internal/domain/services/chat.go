package services

import (
	"context"

	"clientsim/internal/domain/models"
)

// CompletionGateway turns an ordered message history into one assistant
// reply. It is a narrow seam over the external LLM backend; implementations
// wrap every failure mode (unreachable, malformed response, missing
// credential) in domain.ErrGateway.
type CompletionGateway interface {
	Complete(ctx context.Context, model string, messages []models.Message) (string, error)
}

// PromptRenderer produces the seed system message for a client profile.
// Rendering is a pure function of the profile.
type PromptRenderer interface {
	Render(profile *models.ClientProfile) (string, error)
}

// CreateChatRequest is the input for ChatService.Create.
type CreateChatRequest struct {
	Client string `json:"client"`
}

// AppendMessageRequest is the input for ChatService.Update.
type AppendMessageRequest struct {
	ChatID      string `json:"-"`
	UserMessage string `json:"user_message"`
}

// ChatService exposes the chat session lifecycle to the transport layer.
type ChatService interface {
	// Create starts a new chat for the named client, seeded with exactly one
	// system message, and persists it immediately.
	Create(ctx context.Context, req *CreateChatRequest) (*models.Chat, error)

	// Get returns the stored chat unchanged. It never mutates state.
	Get(ctx context.Context, id string) (*models.Chat, error)

	// Update appends a user turn, obtains the assistant reply through the
	// gateway, appends it, and persists the grown transcript. On gateway
	// failure nothing is persisted.
	Update(ctx context.Context, req *AppendMessageRequest) (*models.Chat, error)

	// Delete removes the chat and returns its last known state.
	Delete(ctx context.Context, id string) (*models.Chat, error)

	// ListClients enumerates the client profiles available for new chats.
	ListClients(ctx context.Context) ([]models.ClientProfile, error)
}
