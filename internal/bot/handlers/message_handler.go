package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"tg-analyst-bot/internal/ingest"
)

// NewMessageHandler returns the default handler that persists group
// chat messages. It is registered as the bot's catch-all handler so it
// sees every update no command or callback handler claimed.
func NewMessageHandler(deps HandlerDeps) bot.HandlerFunc {
	return messageHandler{deps}.Handle
}

type messageHandler struct {
	deps HandlerDeps
}

func (h messageHandler) Handle(ctx context.Context, _ *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "message")

	if update.Message == nil {
		return
	}

	msg := update.Message

	ev := ingest.Event{
		ChatID:    msg.Chat.ID,
		ChatType:  string(msg.Chat.Type),
		ChatTitle: msg.Chat.Title,
		Text:      msg.Text,
		Date:      int64(msg.Date),
	}
	if msg.From != nil {
		ev.UserID = msg.From.ID
		ev.Username = msg.From.Username
		ev.FirstName = msg.From.FirstName
	}

	record, ok := ingest.Normalize(ev)
	if !ok {
		log.DebugContext(ctx, "Message rejected by ingestion filter", "chat_id", ev.ChatID, "chat_type", ev.ChatType)
		return
	}

	// Ingestion is best-effort: a failed save never interrupts the
	// update stream.
	if err := h.deps.Store.SaveMessage(ctx, &record); err != nil {
		log.ErrorContext(ctx, "Failed to save message", "error", err, "chat_id", record.ChatID, "user_id", record.UserID)
		return
	}

	log.DebugContext(ctx, "Message stored", "chat_id", record.ChatID, "chat_title", record.ChatTitle, "message_id", record.ID)
}
