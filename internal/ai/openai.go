package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	gopenai "github.com/sashabaranov/go-openai"

	"tg-analyst-bot/internal/config"
)

type openAIClient struct {
	client      *gopenai.Client
	model       string
	temperature float32
	maxTokens   int
	timeout     time.Duration
	log         *slog.Logger
}

func newOpenAIClient(cfg config.AIConfig, log *slog.Logger) *openAIClient {
	clientCfg := gopenai.DefaultConfig(cfg.Token)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &openAIClient{
		client:      gopenai.NewClientWithConfig(clientCfg),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		timeout:     cfg.Timeout,
		log:         log.With("component", "openai_client"),
	}
}

// Analyze sends the conversation blob through the chat completions API
// as a single request and returns the first choice content as-is.
func (c *openAIClient) Analyze(ctx context.Context, blob string) (string, error) {
	if strings.TrimSpace(blob) == "" {
		return "", ErrNoContent
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(timeoutCtx, gopenai.ChatCompletionRequest{
		Model: c.model,
		Messages: []gopenai.ChatCompletionMessage{
			{Role: gopenai.ChatMessageRoleSystem, Content: analystInstruction},
			{Role: gopenai.ChatMessageRoleUser, Content: blob},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		c.log.ErrorContext(ctx, "Chat completion request failed", "error", err, "duration_ms", time.Since(start).Milliseconds())
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		c.log.WarnContext(ctx, "Chat completion returned no choices", "model", c.model)
		return "", ErrNoContent
	}

	content := resp.Choices[0].Message.Content
	if content == "" {
		return "", ErrNoContent
	}

	c.log.DebugContext(ctx, "Analysis report generated",
		"duration_ms", time.Since(start).Milliseconds(),
		"total_tokens", resp.Usage.TotalTokens,
		"report_length", len(content))

	return content, nil
}
