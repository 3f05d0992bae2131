// Package report turns stored chat history into analysis reports and
// delivers them back to the requesting chat.
package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"tg-analyst-bot/internal/artifact"
	"tg-analyst-bot/internal/database"
)

// ErrEmptyConversation is returned when a chat has no stored messages.
var ErrEmptyConversation = errors.New("no stored messages for chat")

// ConversationGroup is one analyzable unit: all stored lines that share
// a chat title, in storage order.
type ConversationGroup struct {
	ChatTitle string
	Lines     []string
}

// Blob renders the group as the text sent to the analysis engine.
func (g ConversationGroup) Blob() string {
	return strings.Join(g.Lines, "\n")
}

// Materializer reads a chat's stored history and folds it into
// conversation groups, persisting a transcript artifact per group.
type Materializer struct {
	store     database.Store
	artifacts *artifact.Store
	log       *slog.Logger
}

// NewMaterializer creates a materializer over the given stores.
func NewMaterializer(store database.Store, artifacts *artifact.Store, logger *slog.Logger) *Materializer {
	return &Materializer{
		store:     store,
		artifacts: artifacts,
		log:       logger.With("component", "materializer"),
	}
}

// Materialize loads every stored message for chatID and groups it by
// chat title, preserving the order in which titles first appear.
// Returns ErrEmptyConversation when nothing is stored for the chat.
func (m *Materializer) Materialize(ctx context.Context, chatID int64) ([]ConversationGroup, error) {
	lines, err := m.store.ListByChat(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to load chat history: %w", err)
	}
	if len(lines) == 0 {
		return nil, ErrEmptyConversation
	}

	byTitle := make(map[string]int)
	var groups []ConversationGroup

	for _, line := range lines {
		idx, ok := byTitle[line.ChatTitle]
		if !ok {
			idx = len(groups)
			byTitle[line.ChatTitle] = idx
			groups = append(groups, ConversationGroup{ChatTitle: line.ChatTitle})
		}
		groups[idx].Lines = append(groups[idx].Lines, line.MessageText)
	}

	for _, group := range groups {
		key := fmt.Sprintf("%s_%d", group.ChatTitle, chatID)
		if _, err := m.artifacts.Write(key, []byte(group.Blob())); err != nil {
			// A missing transcript file never blocks the analysis itself.
			m.log.WarnContext(ctx, "Failed to write transcript artifact", "chat_id", chatID, "chat_title", group.ChatTitle, "error", err)
		}
	}

	m.log.DebugContext(ctx, "Conversation materialized", "chat_id", chatID, "groups", len(groups), "lines", len(lines))

	return groups, nil
}
