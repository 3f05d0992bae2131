package database

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/jmoiron/sqlx"
)

// Store defines the data access operations for persisted messages.
// The message table is append-only: there is deliberately no update or
// delete operation.
type Store interface {
	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// SaveMessage durably inserts a message and assigns its ID.
	SaveMessage(ctx context.Context, message *Message) error

	// ListByChat returns all rows for chatID in ascending id order.
	// A chat with no rows yields an empty slice, not an error.
	ListByChat(ctx context.Context, chatID int64) ([]ChatLine, error)
}

type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStore creates a Store backed by the given sqlx connection pool.
func NewStore(db *sqlx.DB, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &sqlxStore{
		db:     db,
		logger: logger.With("component", "store"),
	}
}

func (s *sqlxStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *sqlxStore) SaveMessage(ctx context.Context, message *Message) error {
	if message == nil {
		return fmt.Errorf("cannot save nil message")
	}
	if message.ChatID == 0 {
		return fmt.Errorf("message must have a non-zero chat_id")
	}

	query := `
        INSERT INTO messages (user_id, username, chat_id, chat_title, message_text, date, chat_type)
        VALUES (:user_id, :username, :chat_id, :chat_title, :message_text, :date, :chat_type);
    `

	result, err := s.db.NamedExecContext(ctx, query, message)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error saving message",
			"chat_id", message.ChatID, "user_id", message.UserID, "error", err)
		return fmt.Errorf("failed to save message (chat %d, user %d): %w", message.ChatID, message.UserID, err)
	}

	id, err := result.LastInsertId()
	if err == nil {
		message.ID = id
	} else {
		s.logger.WarnContext(ctx, "Could not retrieve last insert ID after saving message",
			"chat_id", message.ChatID, "error", err)
	}

	s.logger.DebugContext(ctx, "Message saved",
		"chat_id", message.ChatID, "user_id", message.UserID, "message_id", message.ID)
	return nil
}

func (s *sqlxStore) ListByChat(ctx context.Context, chatID int64) ([]ChatLine, error) {
	if chatID == 0 {
		return nil, fmt.Errorf("chat_id cannot be zero")
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	lines := []ChatLine{}
	query := `
        SELECT chat_title, message_text
        FROM messages
        WHERE chat_id = ?
        ORDER BY id ASC;
    `

	err := s.db.SelectContext(ctx, &lines, query, chatID)

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		s.logger.WarnContext(ctx, "Context timeout or cancellation while listing messages",
			"chat_id", chatID, "error", err)
		return nil, err
	}

	if err != nil {
		s.logger.ErrorContext(ctx, "Error listing messages", "chat_id", chatID, "error", err)
		return nil, fmt.Errorf("failed to list messages for chat %d: %w", chatID, err)
	}

	s.logger.DebugContext(ctx, "Listed messages", "chat_id", chatID, "count", len(lines))
	return lines, nil
}
