package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"clientsim/internal/domain"
	"clientsim/internal/domain/models"
)

// ChatRepository implements repositories.ChatRepository on a postgres
// key/value table: one row per chat id, the record stored as JSONB. Each
// operation is a single statement, so operations stay individually atomic
// while the update workflow's read-modify-write remains unguarded, same as
// the bolt backend.
type ChatRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewChatRepository creates a postgres-backed chat repository
func NewChatRepository(config *RepositoryConfig) *ChatRepository {
	return &ChatRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// EnsureSchema creates the chats table if it does not exist.
func (r *ChatRepository) EnsureSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			record JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`, r.tables.Chats)

	if _, err := r.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("ensure chats table: %v: %w", err, domain.ErrStorage)
	}
	return nil
}

// Get retrieves the chat stored under id
func (r *ChatRepository) Get(ctx context.Context, id string) (*models.Chat, error) {
	query := fmt.Sprintf(`SELECT record FROM %s WHERE id = $1`, r.tables.Chats)

	var raw []byte
	err := r.pool.QueryRow(ctx, query, id).Scan(&raw)
	if err != nil {
		if isNoRowsError(err) {
			return nil, fmt.Errorf("chat %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get chat: %v: %w", err, domain.ErrStorage)
	}

	return decodeChat(raw)
}

// Put stores the chat under id, overwriting any existing row
func (r *ChatRepository) Put(ctx context.Context, id string, chat *models.Chat) error {
	raw, err := json.Marshal(chat)
	if err != nil {
		return fmt.Errorf("encode chat %s: %v: %w", id, err, domain.ErrStorage)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, record, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET record = EXCLUDED.record, updated_at = EXCLUDED.updated_at
	`, r.tables.Chats)

	if _, err := r.pool.Exec(ctx, query, id, raw, time.Now()); err != nil {
		return fmt.Errorf("put chat: %v: %w", err, domain.ErrStorage)
	}

	r.logger.Debug("chat stored", "id", id, "messages", len(chat.Messages))
	return nil
}

// Delete removes the chat stored under id and returns the removed record
func (r *ChatRepository) Delete(ctx context.Context, id string) (*models.Chat, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1 RETURNING record`, r.tables.Chats)

	var raw []byte
	err := r.pool.QueryRow(ctx, query, id).Scan(&raw)
	if err != nil {
		if isNoRowsError(err) {
			return nil, fmt.Errorf("chat %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("delete chat: %v: %w", err, domain.ErrStorage)
	}

	r.logger.Debug("chat deleted", "id", id)
	return decodeChat(raw)
}

func decodeChat(raw []byte) (*models.Chat, error) {
	var chat models.Chat
	if err := json.Unmarshal(raw, &chat); err != nil {
		return nil, fmt.Errorf("decode chat record: %v: %w", err, domain.ErrStorage)
	}
	return &chat, nil
}
