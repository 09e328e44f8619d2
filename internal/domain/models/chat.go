package models

import (
	"time"
)

// Role tags who produced a message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single transcript entry. Immutable once appended.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Chat is a persisted conversation between a simulated client and the
// completion backend: an id, the client's display name, and an append-only
// message transcript. The first message is always the rendered system prompt.
type Chat struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	Messages    []Message `json:"messages"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Append adds a message to the end of the transcript. Existing messages are
// never reordered or mutated.
func (c *Chat) Append(role Role, content string) {
	c.Messages = append(c.Messages, Message{Role: role, Content: content})
}
