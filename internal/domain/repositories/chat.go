package repositories

import (
	"context"

	"clientsim/internal/domain/models"
)

// ChatRepository is a durable key-value mapping from chat id to chat record.
// Implementations must keep every operation individually atomic and must not
// hold a handle open across calls; a missing key is a recoverable
// domain.ErrNotFound, not a fatal error.
type ChatRepository interface {
	// Get returns the chat stored under id.
	Get(ctx context.Context, id string) (*models.Chat, error)

	// Put stores the chat under id, overwriting any existing record.
	Put(ctx context.Context, id string, chat *models.Chat) error

	// Delete removes the chat stored under id and returns its final state.
	Delete(ctx context.Context, id string) (*models.Chat, error)
}

// ClientCatalog is a read-only lookup of client profiles backed by a static
// configuration source. Reads are idempotent and re-read the source on every
// call so catalog edits take effect immediately.
type ClientCatalog interface {
	// GetAll returns every profile in catalog order.
	GetAll() ([]models.ClientProfile, error)

	// GetOne returns the profile whose display name matches exactly.
	// Zero matches is domain.ErrNotFound; more than one is domain.ErrConflict,
	// since the catalog is expected to keep names unique.
	GetOne(displayName string) (*models.ClientProfile, error)
}
