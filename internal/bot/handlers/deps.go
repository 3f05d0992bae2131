package handlers

import (
	"log/slog"

	"tg-analyst-bot/internal/config"
	"tg-analyst-bot/internal/database"
	"tg-analyst-bot/internal/report"
)

// HandlerDeps provides dependencies for Telegram command handlers.
type HandlerDeps struct {
	Logger *slog.Logger
	Config *config.Config
	Store  database.Store
	Runner *report.Runner
}
