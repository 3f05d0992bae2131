package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewAnalyzeHandler returns a handler for the /analyze command. It
// triggers a full analysis round for the chat the command came from.
func NewAnalyzeHandler(deps HandlerDeps) bot.HandlerFunc {
	return analyzeHandler{deps}.HandleCommand
}

// NewAnalyzeCallbackHandler returns a handler for the inline analysis
// button. It behaves exactly like the /analyze command.
func NewAnalyzeCallbackHandler(deps HandlerDeps) bot.HandlerFunc {
	return analyzeHandler{deps}.HandleCallback
}

type analyzeHandler struct {
	deps HandlerDeps
}

func (h analyzeHandler) HandleCommand(ctx context.Context, _ *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "analyze")

	if update.Message == nil {
		log.WarnContext(ctx, "Analyze handler received update with nil message", "update_id", update.ID)
		return
	}

	chatID := update.Message.Chat.ID
	log.InfoContext(ctx, "Analysis requested via command", "chat_id", chatID)

	h.deps.Runner.Run(ctx, chatID)
}

func (h analyzeHandler) HandleCallback(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "analyze_callback")

	if update.CallbackQuery == nil {
		log.WarnContext(ctx, "Callback handler received update with nil callback query", "update_id", update.ID)
		return
	}

	chatID, ok := callbackChatID(update.CallbackQuery)
	if !ok {
		log.WarnContext(ctx, "Callback query carries no resolvable chat", "update_id", update.ID)
		return
	}

	// Acknowledge the button press right away so the client stops the
	// loading spinner, even if the analysis takes a while.
	if _, err := b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: update.CallbackQuery.ID,
	}); err != nil {
		log.WarnContext(ctx, "Failed to answer callback query", "error", err)
	}

	log.InfoContext(ctx, "Analysis requested via inline button", "chat_id", chatID, "user_id", update.CallbackQuery.From.ID)

	h.deps.Runner.Run(ctx, chatID)
}

// callbackChatID resolves the originating chat of a callback query.
// Buttons on messages older than 48h arrive with only an inaccessible
// message stub, so exactly one of the two fields is set.
func callbackChatID(cb *models.CallbackQuery) (int64, bool) {
	switch {
	case cb.Message.Message != nil:
		return cb.Message.Message.Chat.ID, true
	case cb.Message.InaccessibleMessage != nil:
		return cb.Message.InaccessibleMessage.Chat.ID, true
	default:
		return 0, false
	}
}
