package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"

	"tg-analyst-bot/internal/config"
)

type geminiClient struct {
	genaiClient   *genai.Client
	contentConfig *genai.GenerateContentConfig
	model         string
	timeout       time.Duration
	log           *slog.Logger
}

func newGeminiClient(ctx context.Context, cfg config.AIConfig, log *slog.Logger) (*geminiClient, error) {
	gi, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.Token,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	temperature := cfg.Temperature
	maxTokens := int32(cfg.MaxTokens)

	contentConfig := &genai.GenerateContentConfig{
		Temperature:       &temperature,
		MaxOutputTokens:   maxTokens,
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: analystInstruction}}},
	}

	return &geminiClient{
		genaiClient:   gi,
		contentConfig: contentConfig,
		model:         cfg.Model,
		timeout:       cfg.Timeout,
		log:           log.With("component", "gemini_client"),
	}, nil
}

// Analyze sends the conversation blob to Gemini in a single request,
// without retries, and returns the response text as-is.
func (c *geminiClient) Analyze(ctx context.Context, blob string) (string, error) {
	if strings.TrimSpace(blob) == "" {
		return "", ErrNoContent
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	contents := []*genai.Content{genai.NewContentFromText(blob, genai.RoleUser)}

	start := time.Now()
	resp, err := c.genaiClient.Models.GenerateContent(timeoutCtx, c.model, contents, c.contentConfig)
	if err != nil {
		c.log.ErrorContext(ctx, "Gemini API call failed", "error", err, "duration_ms", time.Since(start).Milliseconds())
		return "", fmt.Errorf("gemini API call failed: %w", err)
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != genai.BlockedReasonUnspecified {
		reason := fmt.Sprintf("%v", resp.PromptFeedback.BlockReason)
		if resp.PromptFeedback.BlockReasonMessage != "" {
			reason = resp.PromptFeedback.BlockReasonMessage
		}
		c.log.ErrorContext(ctx, "Gemini request blocked", "reason", reason)
		return "", fmt.Errorf("gemini request blocked by safety filter: %s", reason)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		c.log.WarnContext(ctx, "Gemini response missing candidates or content", "model", c.model)
		return "", ErrNoContent
	}

	text := resp.Text()
	if text == "" {
		return "", ErrNoContent
	}

	c.log.DebugContext(ctx, "Analysis report generated",
		"duration_ms", time.Since(start).Milliseconds(),
		"report_length", len(text))

	return text, nil
}
