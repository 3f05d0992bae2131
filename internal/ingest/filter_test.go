package ingest_test

import (
	"testing"

	"tg-analyst-bot/internal/ingest"
)

func TestNormalizeRejection(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		event ingest.Event
	}{
		{
			name:  "private chat",
			event: ingest.Event{ChatID: 1, ChatType: "private", Text: "hello", UserID: 10},
		},
		{
			name:  "channel",
			event: ingest.Event{ChatID: 1, ChatType: "channel", Text: "hello", UserID: 10},
		},
		{
			name:  "command in group",
			event: ingest.Event{ChatID: 1, ChatType: "group", Text: "/start", UserID: 10},
		},
		{
			name:  "command in supergroup",
			event: ingest.Event{ChatID: 1, ChatType: "supergroup", Text: "/analyze now", UserID: 10},
		},
		{
			name:  "command in private chat",
			event: ingest.Event{ChatID: 1, ChatType: "private", Text: "/start", UserID: 10},
		},
		{
			name:  "unknown chat type",
			event: ingest.Event{ChatID: 1, ChatType: "", Text: "hello", UserID: 10},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if _, ok := ingest.Normalize(tc.event); ok {
				t.Errorf("expected event to be rejected: %+v", tc.event)
			}
		})
	}
}

func TestNormalizeSentinels(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		event         ingest.Event
		wantUsername  string
		wantChatTitle string
		wantText      string
	}{
		{
			name: "all fields present",
			event: ingest.Event{
				ChatID: 42, ChatType: "group", ChatTitle: "Team",
				Text: "Когда отчёт?", UserID: 100, Username: "ivan", FirstName: "Ivan",
			},
			wantUsername:  "ivan",
			wantChatTitle: "Team",
			wantText:      "Когда отчёт?",
		},
		{
			name: "username falls back to first name",
			event: ingest.Event{
				ChatID: 42, ChatType: "group", ChatTitle: "Team",
				Text: "hi", UserID: 100, FirstName: "Ivan",
			},
			wantUsername:  "Ivan",
			wantChatTitle: "Team",
			wantText:      "hi",
		},
		{
			name: "username falls back to sentinel",
			event: ingest.Event{
				ChatID: 42, ChatType: "group", ChatTitle: "Team",
				Text: "hi", UserID: 100,
			},
			wantUsername:  ingest.UnknownUsername,
			wantChatTitle: "Team",
			wantText:      "hi",
		},
		{
			name: "chat title falls back to sender username",
			event: ingest.Event{
				ChatID: 42, ChatType: "supergroup",
				Text: "hi", UserID: 100, Username: "ivan",
			},
			wantUsername:  "ivan",
			wantChatTitle: "ivan",
			wantText:      "hi",
		},
		{
			name: "chat title falls back to sentinel",
			event: ingest.Event{
				ChatID: 42, ChatType: "supergroup",
				Text: "hi", UserID: 100, FirstName: "Ivan",
			},
			wantUsername:  "Ivan",
			wantChatTitle: ingest.PersonalChatTitle,
			wantText:      "hi",
		},
		{
			name: "non-text content gets placeholder",
			event: ingest.Event{
				ChatID: 42, ChatType: "group", ChatTitle: "Team",
				UserID: 100, Username: "ivan",
			},
			wantUsername:  "ivan",
			wantChatTitle: "Team",
			wantText:      ingest.NonTextPlaceholder,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			msg, ok := ingest.Normalize(tc.event)
			if !ok {
				t.Fatalf("expected event to be accepted: %+v", tc.event)
			}
			if msg.Username != tc.wantUsername {
				t.Errorf("username: expected %q, got %q", tc.wantUsername, msg.Username)
			}
			if msg.ChatTitle != tc.wantChatTitle {
				t.Errorf("chat title: expected %q, got %q", tc.wantChatTitle, msg.ChatTitle)
			}
			if msg.MessageText != tc.wantText {
				t.Errorf("text: expected %q, got %q", tc.wantText, msg.MessageText)
			}
			if msg.Username == "" || msg.ChatTitle == "" || msg.MessageText == "" {
				t.Error("sentinel substitution must be total")
			}
		})
	}
}
