package database_test

import (
	"context"
	"testing"

	"tg-analyst-bot/internal/database"
)

func newTestStore(t *testing.T) database.Store {
	t.Helper()

	db, err := database.NewDB(":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { database.CloseDB(db) })

	return database.NewStore(db, nil)
}

func TestPing(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	if err := store.Ping(context.Background()); err != nil {
		t.Fatalf("Ping returned error: %v", err)
	}
}

func TestSaveMessageAssignsID(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	msg := &database.Message{
		UserID:      100,
		Username:    "ivan",
		ChatID:      42,
		ChatTitle:   "Team",
		MessageText: "Когда отчёт?",
		Date:        1718000000,
		ChatType:    "group",
	}
	if err := store.SaveMessage(ctx, msg); err != nil {
		t.Fatalf("SaveMessage failed: %v", err)
	}
	if msg.ID == 0 {
		t.Fatal("expected a non-zero id after save")
	}

	second := &database.Message{
		UserID:      101,
		Username:    "olga",
		ChatID:      42,
		ChatTitle:   "Team",
		MessageText: "Я помогу",
		Date:        1718000060,
		ChatType:    "group",
	}
	if err := store.SaveMessage(ctx, second); err != nil {
		t.Fatalf("SaveMessage failed: %v", err)
	}
	if second.ID <= msg.ID {
		t.Fatalf("expected monotonic ids, got %d then %d", msg.ID, second.ID)
	}
}

func TestSaveMessageRejectsInvalid(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	if err := store.SaveMessage(ctx, nil); err == nil {
		t.Error("expected error for nil message")
	}
	if err := store.SaveMessage(ctx, &database.Message{UserID: 1}); err == nil {
		t.Error("expected error for zero chat_id")
	}
}

func TestListByChatOrderAndIsolation(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	texts := []string{"first", "second", "third"}
	for i, text := range texts {
		msg := &database.Message{
			UserID:      int64(i + 1),
			Username:    "user",
			ChatID:      42,
			ChatTitle:   "Team",
			MessageText: text,
			Date:        int64(1718000000 + i),
			ChatType:    "group",
		}
		if err := store.SaveMessage(ctx, msg); err != nil {
			t.Fatalf("SaveMessage failed: %v", err)
		}
	}

	// A row in another chat must not leak into the listing.
	other := &database.Message{
		UserID: 9, Username: "u", ChatID: 7, ChatTitle: "Other",
		MessageText: "noise", Date: 1718000100, ChatType: "group",
	}
	if err := store.SaveMessage(ctx, other); err != nil {
		t.Fatalf("SaveMessage failed: %v", err)
	}

	lines, err := store.ListByChat(ctx, 42)
	if err != nil {
		t.Fatalf("ListByChat failed: %v", err)
	}
	if len(lines) != len(texts) {
		t.Fatalf("expected %d lines, got %d", len(texts), len(lines))
	}
	for i, line := range lines {
		if line.MessageText != texts[i] {
			t.Errorf("line %d: expected %q, got %q", i, texts[i], line.MessageText)
		}
		if line.ChatTitle != "Team" {
			t.Errorf("line %d: unexpected chat title %q", i, line.ChatTitle)
		}
	}
}

func TestListByChatEmpty(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	lines, err := store.ListByChat(context.Background(), 12345)
	if err != nil {
		t.Fatalf("ListByChat failed: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("expected empty result, got %d lines", len(lines))
	}
}
