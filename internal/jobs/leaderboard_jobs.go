package jobs

import (
	"context"

	"daanbridge-backend/internal/logger"
)

// RefreshLeaderboard recomputes the monthly leaderboard aggregates and
// rewrites the cache entries for every category
func (jr *JobRunner) RefreshLeaderboard() {
	jr.runWithRecovery("RefreshLeaderboard", func() {
		ctx := context.Background()

		if err := jr.services.Leaderboard.RefreshCache(ctx); err != nil {
			logger.Error("Failed to refresh leaderboard cache", "error", err)
			return
		}

		logger.Info("Leaderboard cache refreshed")
	})
}
