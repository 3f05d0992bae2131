// Package ai provides clients for the external text-analysis engine.
// Two backends are supported: OpenAI-compatible chat completions and
// Google Gemini. Both send a fixed analytical instruction plus one
// variable text blob and return the engine's report text unmodified.
package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"tg-analyst-bot/internal/config"
)

// ErrNoContent is returned when the engine answers without any usable
// report text.
var ErrNoContent = errors.New("analysis engine returned no content")

// Client analyzes one conversation blob per call. A call is a single
// request/response unit: there is no internal retry, and the returned
// report text is opaque to the caller.
type Client interface {
	Analyze(ctx context.Context, blob string) (string, error)
}

// New creates an analysis client for the configured backend.
func New(ctx context.Context, cfg config.AIConfig, log *slog.Logger) (Client, error) {
	if log == nil {
		log = slog.Default()
	}
	log.Info("Initializing analysis client", "backend", cfg.Backend, "model", cfg.Model)

	switch cfg.Backend {
	case "openai":
		return newOpenAIClient(cfg, log), nil
	case "gemini":
		client, err := newGeminiClient(ctx, cfg, log)
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini client: %w", err)
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown analysis backend: %s", cfg.Backend)
	}
}
