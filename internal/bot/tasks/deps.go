// Package tasks implements scheduled background tasks: task
// definitions, dependencies, and registration.
package tasks

import (
	"log/slog"

	"tg-analyst-bot/internal/artifact"
	"tg-analyst-bot/internal/config"
	"tg-analyst-bot/internal/database"
)

// TaskDeps contains all dependencies available to scheduled tasks.
type TaskDeps struct {
	Logger    *slog.Logger
	Store     database.Store
	Artifacts *artifact.Store
	Config    *config.Config
}
