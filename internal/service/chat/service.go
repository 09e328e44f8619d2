// Package chat orchestrates the chat session lifecycle: creation seeded from
// a client profile, transcript growth through the completion gateway, and
// deletion.
package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"clientsim/internal/domain"
	"clientsim/internal/domain/models"
	"clientsim/internal/domain/repositories"
	"clientsim/internal/domain/services"
)

// Service implements the ChatService interface
type Service struct {
	chatRepo repositories.ChatRepository
	catalog  repositories.ClientCatalog
	gateway  services.CompletionGateway
	renderer services.PromptRenderer
	model    string
	logger   *slog.Logger
}

// NewService creates a chat service. model is the completion model used for
// every gateway call.
func NewService(
	chatRepo repositories.ChatRepository,
	catalog repositories.ClientCatalog,
	gateway services.CompletionGateway,
	renderer services.PromptRenderer,
	model string,
	logger *slog.Logger,
) services.ChatService {
	return &Service{
		chatRepo: chatRepo,
		catalog:  catalog,
		gateway:  gateway,
		renderer: renderer,
		model:    model,
		logger:   logger,
	}
}

// Create starts a new chat for the named client. The chat is seeded with
// exactly one system message rendered from the client's profile and persisted
// before it is returned.
func (s *Service) Create(ctx context.Context, req *services.CreateChatRequest) (*models.Chat, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Client, validation.Required),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	profile, err := s.catalog.GetOne(strings.TrimSpace(req.Client))
	if err != nil {
		return nil, err
	}

	systemPrompt, err := s.renderer.Render(profile)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	chat := &models.Chat{
		ID:          uuid.NewString(),
		DisplayName: profile.DisplayName,
		Messages: []models.Message{
			{Role: models.RoleSystem, Content: systemPrompt},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.chatRepo.Put(ctx, chat.ID, chat); err != nil {
		return nil, err
	}

	s.logger.Info("chat created",
		"id", chat.ID,
		"client", chat.DisplayName,
	)

	return chat, nil
}

// Get retrieves a chat by id without mutating stored state.
func (s *Service) Get(ctx context.Context, id string) (*models.Chat, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	return s.chatRepo.Get(ctx, id)
}

// Update appends a user turn, obtains the assistant reply, appends it, and
// persists the grown transcript as one overwrite. If the gateway call fails,
// nothing is persisted and the stored record is left exactly as it was.
//
// The load and the store are two separate repository operations spanning the
// blocking gateway round trip; they are deliberately not wrapped in a
// transaction. Two concurrent updates to the same chat can both load the same
// base transcript, and the later store overwrites the earlier reply.
func (s *Service) Update(ctx context.Context, req *services.AppendMessageRequest) (*models.Chat, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.ChatID, validation.Required),
		validation.Field(&req.UserMessage, validation.Required),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	chat, err := s.chatRepo.Get(ctx, req.ChatID)
	if err != nil {
		return nil, err
	}

	chat.Append(models.RoleUser, req.UserMessage)

	reply, err := s.gateway.Complete(ctx, s.model, chat.Messages)
	if err != nil {
		// The in-memory user turn is discarded with the failed attempt.
		return nil, err
	}

	chat.Append(models.RoleAssistant, reply)
	chat.UpdatedAt = time.Now().UTC()

	if err := s.chatRepo.Put(ctx, chat.ID, chat); err != nil {
		return nil, err
	}

	s.logger.Info("chat updated",
		"id", chat.ID,
		"messages", len(chat.Messages),
	)

	return chat, nil
}

// Delete removes a chat and returns its last known state. Deleting the same
// id twice reports ErrNotFound on the second call.
func (s *Service) Delete(ctx context.Context, id string) (*models.Chat, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	chat, err := s.chatRepo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("chat deleted", "id", id)
	return chat, nil
}

// ListClients enumerates the catalog's client profiles.
func (s *Service) ListClients(ctx context.Context) ([]models.ClientProfile, error) {
	profiles, err := s.catalog.GetAll()
	if err != nil {
		return nil, err
	}

	// Return empty slice instead of nil
	if profiles == nil {
		profiles = []models.ClientProfile{}
	}
	return profiles, nil
}

func validateID(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: id is required", domain.ErrValidation)
	}
	return nil
}
