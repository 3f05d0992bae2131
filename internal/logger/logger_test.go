package logger

import (
	"context"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

func TestMiddlewareCallbackOnInaccessibleMessage(t *testing.T) {
	t.Parallel()

	update := &models.Update{
		ID: 1,
		CallbackQuery: &models.CallbackQuery{
			ID:   "cb-1",
			From: models.User{ID: 7},
			Data: "start_analysis",
			Message: models.MaybeInaccessibleMessage{
				InaccessibleMessage: &models.InaccessibleMessage{Chat: models.Chat{ID: -200}},
			},
		},
	}

	nextCalled := false
	handler := Middleware(New("debug", false))(func(context.Context, *bot.Bot, *models.Update) {
		nextCalled = true
	})

	handler(context.Background(), nil, update)

	if !nextCalled {
		t.Error("middleware did not invoke the next handler")
	}
}

func TestMiddlewareCallbackWithoutAnyMessage(t *testing.T) {
	t.Parallel()

	update := &models.Update{
		ID: 2,
		CallbackQuery: &models.CallbackQuery{
			ID:   "cb-2",
			From: models.User{ID: 7},
			Data: "start_analysis",
		},
	}

	nextCalled := false
	handler := Middleware(New("debug", false))(func(context.Context, *bot.Bot, *models.Update) {
		nextCalled = true
	})

	handler(context.Background(), nil, update)

	if !nextCalled {
		t.Error("middleware did not invoke the next handler")
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     string
		maxLen int
		want   string
	}{
		{"short", 50, "short"},
		{"0123456789", 8, "01234..."},
		{"0123456789", 3, "..."},
	}

	for _, tt := range tests {
		if got := truncate(tt.in, tt.maxLen); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.maxLen, got, tt.want)
		}
	}
}
