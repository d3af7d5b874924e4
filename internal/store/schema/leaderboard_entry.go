package schema

import "time"

// LeaderboardEntry represents the leaderboard_entries table - per-board point
// totals used for rankings (mining power, resources gathered, ...)
type LeaderboardEntry struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Board is the leaderboard name (e.g., "miningpwr", "wood")
	Board string `gorm:"column:board;not null;type:text;uniqueIndex:idx_leaderboard_entries_board_owner,priority:1;index:idx_leaderboard_entries_board_points,priority:1"`
	// Owner is the ranked account
	Owner string `gorm:"column:owner;not null;type:text;uniqueIndex:idx_leaderboard_entries_board_owner,priority:2"`
	// Points is the accumulated point total
	Points uint64 `gorm:"column:points;not null;default:0;index:idx_leaderboard_entries_board_points,priority:2,sort:desc"`
	// UpdatedAt is the timestamp when the entry was last changed
	UpdatedAt time.Time `gorm:"column:updated_at;not null;autoUpdateTime"`
	// CreatedAt is the timestamp when this record was created
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime"`
}

// TableName specifies the table name for the LeaderboardEntry model
func (LeaderboardEntry) TableName() string {
	return "leaderboard_entries"
}
