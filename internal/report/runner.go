package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"tg-analyst-bot/internal/ai"
	"tg-analyst-bot/internal/artifact"
	"tg-analyst-bot/internal/config"
)

// Sender delivers texts and documents to a chat. It is satisfied by the
// Telegram transport and by fakes in tests.
type Sender interface {
	SendText(ctx context.Context, chatID int64, text string) error
	SendDocument(ctx context.Context, chatID int64, filename string, data []byte) error
}

// Dispatcher persists a finished report as an artifact and sends it to
// the requesting chat as a document.
type Dispatcher struct {
	artifacts *artifact.Store
	sender    Sender
	log       *slog.Logger
}

// NewDispatcher creates a dispatcher writing to artifacts and sending
// through sender.
func NewDispatcher(artifacts *artifact.Store, sender Sender, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		artifacts: artifacts,
		sender:    sender,
		log:       logger.With("component", "dispatcher"),
	}
}

// Dispatch writes the report artifact for the group and sends it to
// chatID as a text document.
func (d *Dispatcher) Dispatch(ctx context.Context, chatID int64, chatTitle, report string) error {
	key := fmt.Sprintf("%s_analysis_%d", chatTitle, chatID)
	filename := artifact.SanitizeKey(key) + ".txt"

	if _, err := d.artifacts.Write(key, []byte(report)); err != nil {
		// Delivery still proceeds from the in-memory report.
		d.log.WarnContext(ctx, "Failed to write report artifact", "chat_id", chatID, "chat_title", chatTitle, "error", err)
	}

	if err := d.sender.SendDocument(ctx, chatID, filename, []byte(report)); err != nil {
		return fmt.Errorf("failed to send report document: %w", err)
	}

	return nil
}

// Runner orchestrates one full analysis round for a chat: materialize,
// analyze each conversation group in order, dispatch each report.
// At most one round per chat runs at a time.
type Runner struct {
	materializer *Materializer
	dispatcher   *Dispatcher
	engine       ai.Client
	sender       Sender
	notices      config.MessagesConfig
	log          *slog.Logger

	mu       sync.Mutex
	inFlight map[int64]struct{}
}

// NewRunner wires a runner from its collaborators.
func NewRunner(
	materializer *Materializer,
	dispatcher *Dispatcher,
	engine ai.Client,
	sender Sender,
	notices config.MessagesConfig,
	logger *slog.Logger,
) *Runner {
	return &Runner{
		materializer: materializer,
		dispatcher:   dispatcher,
		engine:       engine,
		sender:       sender,
		notices:      notices,
		log:          logger.With("component", "runner"),
		inFlight:     make(map[int64]struct{}),
	}
}

// Run executes an analysis round for chatID. A round already in flight
// for the same chat is rejected with a notice instead of queueing.
// Per-group engine failures produce a named notice and do not stop the
// remaining groups.
func (r *Runner) Run(ctx context.Context, chatID int64) {
	if !r.acquire(chatID) {
		r.notify(ctx, chatID, r.notices.AlreadyRunning)
		return
	}
	defer r.release(chatID)

	r.log.InfoContext(ctx, "Analysis round started", "chat_id", chatID)
	r.notify(ctx, chatID, r.notices.Starting)

	groups, err := r.materializer.Materialize(ctx, chatID)
	if err != nil {
		if errors.Is(err, ErrEmptyConversation) {
			r.notify(ctx, chatID, r.notices.Empty)
			return
		}
		r.log.ErrorContext(ctx, "Failed to materialize conversation", "chat_id", chatID, "error", err)
		r.notify(ctx, chatID, r.notices.StorageError)
		return
	}

	delivered := 0
	for _, group := range groups {
		report, err := r.engine.Analyze(ctx, group.Blob())
		if err != nil {
			r.log.ErrorContext(ctx, "Analysis failed for group", "chat_id", chatID, "chat_title", group.ChatTitle, "error", err)
			r.notify(ctx, chatID, fmt.Sprintf(r.notices.AnalysisFailedFmt, group.ChatTitle))
			continue
		}

		// Delivery failures are logged only: the analysis itself
		// succeeded, so no failure notice is sent.
		if err := r.dispatcher.Dispatch(ctx, chatID, group.ChatTitle, report); err != nil {
			r.log.ErrorContext(ctx, "Failed to dispatch report", "chat_id", chatID, "chat_title", group.ChatTitle, "error", err)
			continue
		}

		delivered++
	}

	r.notify(ctx, chatID, r.notices.Complete)
	r.log.InfoContext(ctx, "Analysis round finished", "chat_id", chatID, "groups", len(groups), "delivered", delivered)
}

func (r *Runner) acquire(chatID int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, running := r.inFlight[chatID]; running {
		return false
	}
	r.inFlight[chatID] = struct{}{}

	return true
}

func (r *Runner) release(chatID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.inFlight, chatID)
}

func (r *Runner) notify(ctx context.Context, chatID int64, text string) {
	if err := r.sender.SendText(ctx, chatID, text); err != nil {
		r.log.WarnContext(ctx, "Failed to send notice", "chat_id", chatID, "error", err)
	}
}
