package game

import (
	"context"

	"github.com/greenhollow/gh-game-core/internal/store/schema"
)

// Leaderboard retrieves the highest ranked entries of a board
func (e *Engine) Leaderboard(ctx context.Context, board string, limit int) ([]*schema.LeaderboardEntry, error) {
	return e.store.TopLeaderboard(ctx, board, limit)
}
