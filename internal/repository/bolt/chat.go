package bolt

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"go.etcd.io/bbolt"

	"clientsim/internal/domain"
	"clientsim/internal/domain/models"
	"clientsim/internal/domain/repositories"
)

const recordSchemaVersion = 1

var chatsBucket = []byte("chats")

// chatRecord is the versioned on-disk shape of a stored chat. The version
// field exists so the format can evolve without guessing at old records.
type chatRecord struct {
	SchemaVersion int         `json:"schema_version"`
	Chat          models.Chat `json:"chat"`
}

// ChatRepository implements repositories.ChatRepository on a bbolt file.
// Every operation opens the database, runs a single transaction, and closes
// it again; no handle outlives a call. That keeps each operation individually
// atomic while leaving the update workflow's read-modify-write unguarded, as
// the service layer expects.
type ChatRepository struct {
	path   string
	logger *slog.Logger
}

// NewChatRepository creates a bbolt-backed chat repository storing records at
// path. The file is created lazily on first Put.
func NewChatRepository(path string, logger *slog.Logger) repositories.ChatRepository {
	return &ChatRepository{
		path:   path,
		logger: logger,
	}
}

// open acquires the database file for one operation. The timeout bounds the
// wait for the file lock when another operation is in flight.
func (r *ChatRepository) open() (*bbolt.DB, error) {
	db, err := bbolt.Open(r.path, 0600, &bbolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open chat store %s: %v: %w", r.path, err, domain.ErrStorage)
	}
	return db, nil
}

// Get returns the chat stored under id.
func (r *ChatRepository) Get(ctx context.Context, id string) (*models.Chat, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	db, err := r.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var chat *models.Chat
	err = db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(chatsBucket)
		if bucket == nil {
			return fmt.Errorf("chat %s: %w", id, domain.ErrNotFound)
		}

		raw := bucket.Get([]byte(id))
		if raw == nil {
			return fmt.Errorf("chat %s: %w", id, domain.ErrNotFound)
		}

		decoded, err := decodeRecord(raw)
		if err != nil {
			return err
		}
		chat = decoded
		return nil
	})
	if err != nil {
		return nil, err
	}

	return chat, nil
}

// Put stores the chat under id, overwriting any existing record.
func (r *ChatRepository) Put(ctx context.Context, id string, chat *models.Chat) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	raw, err := json.Marshal(chatRecord{
		SchemaVersion: recordSchemaVersion,
		Chat:          *chat,
	})
	if err != nil {
		return fmt.Errorf("encode chat %s: %v: %w", id, err, domain.ErrStorage)
	}

	db, err := r.open()
	if err != nil {
		return err
	}
	defer db.Close()

	err = db.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(chatsBucket)
		if err != nil {
			return fmt.Errorf("create chats bucket: %v: %w", err, domain.ErrStorage)
		}

		if err := bucket.Put([]byte(id), raw); err != nil {
			return fmt.Errorf("put chat %s: %v: %w", id, err, domain.ErrStorage)
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.logger.Debug("chat stored", "id", id, "messages", len(chat.Messages))
	return nil
}

// Delete removes the chat stored under id and returns the removed record.
func (r *ChatRepository) Delete(ctx context.Context, id string) (*models.Chat, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	db, err := r.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var chat *models.Chat
	err = db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(chatsBucket)
		if bucket == nil {
			return fmt.Errorf("chat %s: %w", id, domain.ErrNotFound)
		}

		raw := bucket.Get([]byte(id))
		if raw == nil {
			return fmt.Errorf("chat %s: %w", id, domain.ErrNotFound)
		}

		decoded, err := decodeRecord(raw)
		if err != nil {
			return err
		}

		if err := bucket.Delete([]byte(id)); err != nil {
			return fmt.Errorf("delete chat %s: %v: %w", id, err, domain.ErrStorage)
		}
		chat = decoded
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Debug("chat deleted", "id", id)
	return chat, nil
}

func decodeRecord(raw []byte) (*models.Chat, error) {
	var record chatRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("decode chat record: %v: %w", err, domain.ErrStorage)
	}
	if record.SchemaVersion != recordSchemaVersion {
		return nil, fmt.Errorf("unsupported chat record version %d: %w", record.SchemaVersion, domain.ErrStorage)
	}
	return &record.Chat, nil
}
