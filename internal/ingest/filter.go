// Package ingest decides which inbound chat events are persisted and
// normalizes their partial fields to non-empty values.
package ingest

import (
	"strings"

	"tg-analyst-bot/internal/database"
)

// Sentinel values substituted for missing event fields. Reports are
// produced in Russian, so the placeholders match.
const (
	UnknownUsername    = "Неизвестный"
	PersonalChatTitle  = "Личный чат"
	NonTextPlaceholder = "(медиа или пустое сообщение)"
)

// commandMarker prefixes bot commands, which are never persisted.
const commandMarker = "/"

// Event is the transport-independent view of one inbound message.
type Event struct {
	ChatID    int64
	ChatType  string
	ChatTitle string
	Text      string
	UserID    int64
	Username  string
	FirstName string
	Date      int64
}

// storableChatTypes are the only chat types whose messages are persisted.
var storableChatTypes = map[string]bool{
	"group":      true,
	"supergroup": true,
}

// Normalize applies the ingestion filter to one event. It returns the
// message to persist and true, or a zero message and false when the
// event must be rejected (command text, or a chat type that is not
// group/supergroup). Missing fields degrade to sentinel values rather
// than failing: there is no error path.
func Normalize(ev Event) (database.Message, bool) {
	text := ev.Text
	if text == "" {
		text = NonTextPlaceholder
	}

	if strings.HasPrefix(text, commandMarker) {
		return database.Message{}, false
	}

	if !storableChatTypes[ev.ChatType] {
		return database.Message{}, false
	}

	username := ev.Username
	if username == "" {
		username = ev.FirstName
	}
	if username == "" {
		username = UnknownUsername
	}

	chatTitle := ev.ChatTitle
	if chatTitle == "" {
		chatTitle = ev.Username
	}
	if chatTitle == "" {
		chatTitle = PersonalChatTitle
	}

	return database.Message{
		UserID:      ev.UserID,
		Username:    username,
		ChatID:      ev.ChatID,
		ChatTitle:   chatTitle,
		MessageText: text,
		Date:        ev.Date,
		ChatType:    ev.ChatType,
	}, true
}
