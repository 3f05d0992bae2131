package tasks

import (
	"context"
	"fmt"
	"time"
)

// newArtifactSweepTask creates the scheduled task that removes transcript
// and report artifacts older than the configured retention window.
func newArtifactSweepTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "artifact_sweep")
	ttl := deps.Config.Artifacts.TTL

	return func(ctx context.Context) error {
		log.InfoContext(ctx, "Starting artifact sweep...", "ttl", ttl)
		startTime := time.Now()

		removed, err := deps.Artifacts.Sweep(ctx, ttl)
		duration := time.Since(startTime)

		if err != nil {
			log.ErrorContext(ctx, "Artifact sweep failed", "error", err, "duration", duration)
			return fmt.Errorf("artifact sweep failed: %w", err)
		}

		log.InfoContext(ctx, "Artifact sweep completed", "removed", removed, "duration", duration)
		return nil
	}
}
