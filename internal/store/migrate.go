package store

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/greenhollow/gh-game-core/internal/store/schema"
)

// AutoMigrate creates or updates the database tables for all models
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&schema.ResourceBalance{},
		&schema.TokenBalance{},
		&schema.StakedAssembly{},
		&schema.StakedItem{},
		&schema.BlendRecipe{},
		&schema.ExchangeRatio{},
		&schema.VotingProposal{},
		&schema.ProposalVote{},
		&schema.EquipmentSlot{},
		&schema.OwnerStats{},
		&schema.LeaderboardEntry{},
		&schema.ProcessedTransfer{},
		&schema.KeyValueStore{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
