package telegram

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// BotSender delivers texts and documents through a live Telegram bot.
// It implements report.Sender.
type BotSender struct {
	b   *bot.Bot
	log *slog.Logger
}

// NewSender wraps a bot instance for outbound delivery.
func NewSender(b *bot.Bot, logger *slog.Logger) *BotSender {
	return &BotSender{
		b:   b,
		log: logger.With("component", "telegram_sender"),
	}
}

// SendText sends a plain text message to the chat.
func (s *BotSender) SendText(ctx context.Context, chatID int64, text string) error {
	_, err := s.b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		return fmt.Errorf("failed to send message to chat %d: %w", chatID, err)
	}

	return nil
}

// SendDocument uploads data as a named file attachment to the chat.
func (s *BotSender) SendDocument(ctx context.Context, chatID int64, filename string, data []byte) error {
	_, err := s.b.SendDocument(ctx, &bot.SendDocumentParams{
		ChatID: chatID,
		Document: &models.InputFileUpload{
			Filename: filename,
			Data:     bytes.NewReader(data),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to send document to chat %d: %w", chatID, err)
	}

	s.log.DebugContext(ctx, "Document sent", "chat_id", chatID, "filename", filename, "size", len(data))
	return nil
}
