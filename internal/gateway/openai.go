// Package gateway implements the completion gateway over an
// OpenAI-compatible chat completions API.
package gateway

import (
	"context"
	"fmt"
	"log/slog"

	openai "github.com/meguminnnnnnnnn/go-openai"

	"clientsim/internal/domain"
	"clientsim/internal/domain/models"
	"clientsim/internal/domain/services"
)

// OpenAIGateway implements services.CompletionGateway by calling the OpenAI
// chat completions endpoint. It performs exactly one blocking round trip per
// call: no retry, no streaming. Cancellation of ctx aborts the transport, but
// callers that stop waiting simply abandon the result.
type OpenAIGateway struct {
	client *openai.Client
	apiKey string
	logger *slog.Logger
}

// NewOpenAIGateway creates a gateway for the given credential. An empty
// baseURL targets the public OpenAI API; setting it allows any compatible
// backend. An empty apiKey is accepted here and reported as a gateway
// failure on the first Complete call.
func NewOpenAIGateway(apiKey, baseURL string, logger *slog.Logger) services.CompletionGateway {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}

	return &OpenAIGateway{
		client: openai.NewClientWithConfig(config),
		apiKey: apiKey,
		logger: logger,
	}
}

// Complete sends the full ordered message history and returns the assistant
// reply text. Every failure mode maps to domain.ErrGateway.
func (g *OpenAIGateway) Complete(ctx context.Context, model string, messages []models.Message) (string, error) {
	if g.apiKey == "" {
		return "", fmt.Errorf("no API key configured: %w", domain.ErrGateway)
	}

	req := openai.ChatCompletionRequest{
		Model:    model,
		Messages: toOpenAIMessages(messages),
	}

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat completion: %v: %w", err, domain.ErrGateway)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion response: %w", domain.ErrGateway)
	}

	reply := resp.Choices[0].Message.Content
	g.logger.Debug("completion received",
		"model", model,
		"history", len(messages),
		"reply_chars", len(reply),
	)

	return reply, nil
}

func toOpenAIMessages(messages []models.Message) []openai.ChatCompletionMessage {
	converted := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, msg := range messages {
		role := openai.ChatMessageRoleUser
		switch msg.Role {
		case models.RoleSystem:
			role = openai.ChatMessageRoleSystem
		case models.RoleAssistant:
			role = openai.ChatMessageRoleAssistant
		}

		converted = append(converted, openai.ChatCompletionMessage{
			Role:    role,
			Content: msg.Content,
		})
	}
	return converted
}
