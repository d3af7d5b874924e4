package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/greenhollow/gh-game-core/internal/domain"
	"github.com/greenhollow/gh-game-core/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// It accesses the underlying *sql.DB and sets the pool configuration.
// If any of the pool settings are 0 or empty, reasonable defaults are used:
//   - MaxOpenConns: 20 (if 0)
//   - MaxIdleConns: 5 (if 0)
//   - ConnMaxLifetime: 5 minutes (if 0)
//   - ConnMaxIdleTime: 10 minutes (if 0)
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values.
//
// Defaults (when zero):
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
//
// Notes:
//   - database/sql treats MaxOpenConns=0 as "unlimited"
//   - database/sql treats MaxIdleConns=0 as "no idle connections"
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	// Ensure MaxIdleConns doesn't exceed MaxOpenConns
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// Atomically runs fn against a store view bound to a single database transaction
func (s *pgStore) Atomically(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&pgStore{db: tx})
	})
}

// GetResourceBalance retrieves the balance of a resource for an owner (0 if absent)
func (s *pgStore) GetResourceBalance(ctx context.Context, owner, resource string) (uint64, error) {
	var balance schema.ResourceBalance
	err := s.db.WithContext(ctx).
		Where("owner = ? AND resource = ?", owner, resource).
		First(&balance).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get resource balance: %w", err)
	}
	return balance.Amount, nil
}

// ListResourceBalances retrieves all resource balances of an owner
func (s *pgStore) ListResourceBalances(ctx context.Context, owner string) ([]*schema.ResourceBalance, error) {
	var balances []*schema.ResourceBalance
	err := s.db.WithContext(ctx).
		Where("owner = ?", owner).
		Order("resource ASC").
		Find(&balances).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list resource balances: %w", err)
	}
	return balances, nil
}

// AddResource credits amount of a resource to an owner
func (s *pgStore) AddResource(ctx context.Context, owner, resource string, amount uint64) error {
	balance := schema.ResourceBalance{
		Owner:    owner,
		Resource: resource,
		Amount:   amount,
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "owner"}, {Name: "resource"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"amount":     gorm.Expr("amount + ?", amount),
			"updated_at": time.Now(),
		}),
	}).Create(&balance).Error
	if err != nil {
		return fmt.Errorf("failed to add resource: %w", err)
	}
	return nil
}

// SpendResource debits amount of a resource from an owner
func (s *pgStore) SpendResource(ctx context.Context, owner, resource string, amount uint64) error {
	result := s.db.WithContext(ctx).
		Model(&schema.ResourceBalance{}).
		Where("owner = ? AND resource = ? AND amount >= ?", owner, resource, amount).
		Update("amount", gorm.Expr("amount - ?", amount))
	if result.Error != nil {
		return fmt.Errorf("failed to spend resource: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrInsufficientBalance
	}
	return nil
}

// GetTokenBalance retrieves the in-game token balance of an owner in base units (0 if absent)
func (s *pgStore) GetTokenBalance(ctx context.Context, owner string) (int64, error) {
	var balance schema.TokenBalance
	err := s.db.WithContext(ctx).
		Where("owner = ?", owner).
		First(&balance).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get token balance: %w", err)
	}
	return balance.Amount, nil
}

// CreditTokens credits base token units to an owner
func (s *pgStore) CreditTokens(ctx context.Context, owner string, amount int64) error {
	balance := schema.TokenBalance{
		Owner:  owner,
		Amount: amount,
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "owner"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"amount":     gorm.Expr("amount + ?", amount),
			"updated_at": time.Now(),
		}),
	}).Create(&balance).Error
	if err != nil {
		return fmt.Errorf("failed to credit tokens: %w", err)
	}
	return nil
}

// DebitTokens debits base token units from an owner
func (s *pgStore) DebitTokens(ctx context.Context, owner string, amount int64) error {
	result := s.db.WithContext(ctx).
		Model(&schema.TokenBalance{}).
		Where("owner = ? AND amount >= ?", owner, amount).
		Update("amount", gorm.Expr("amount - ?", amount))
	if result.Error != nil {
		return fmt.Errorf("failed to debit tokens: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrInsufficientBalance
	}
	return nil
}

// GetAssembly retrieves a staked assembly by its farming item id (nil if absent)
func (s *pgStore) GetAssembly(ctx context.Context, farmingItemID uint64) (*schema.StakedAssembly, error) {
	var assembly schema.StakedAssembly
	err := s.db.WithContext(ctx).
		Where("farming_item_id = ?", farmingItemID).
		First(&assembly).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get assembly: %w", err)
	}
	return &assembly, nil
}

// ListAssemblies retrieves all staked assemblies of an owner
func (s *pgStore) ListAssemblies(ctx context.Context, owner string) ([]*schema.StakedAssembly, error) {
	var assemblies []*schema.StakedAssembly
	err := s.db.WithContext(ctx).
		Where("owner = ?", owner).
		Order("id ASC").
		Find(&assemblies).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list assemblies: %w", err)
	}
	return assemblies, nil
}

// ListAllAssemblies retrieves staked assemblies across all owners, paginated by id
func (s *pgStore) ListAllAssemblies(ctx context.Context, afterID int64, limit int) ([]*schema.StakedAssembly, error) {
	var assemblies []*schema.StakedAssembly
	err := s.db.WithContext(ctx).
		Where("id > ?", afterID).
		Order("id ASC").
		Limit(limit).
		Find(&assemblies).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list all assemblies: %w", err)
	}
	return assemblies, nil
}

// CreateAssembly persists a newly staked assembly
func (s *pgStore) CreateAssembly(ctx context.Context, assembly *schema.StakedAssembly) error {
	if err := s.db.WithContext(ctx).Create(assembly).Error; err != nil {
		return fmt.Errorf("failed to create assembly: %w", err)
	}
	return nil
}

// UpdateAssembly persists changes to a staked assembly
func (s *pgStore) UpdateAssembly(ctx context.Context, assembly *schema.StakedAssembly) error {
	if err := s.db.WithContext(ctx).Save(assembly).Error; err != nil {
		return fmt.Errorf("failed to update assembly: %w", err)
	}
	return nil
}

// ListStakedItems retrieves the staked-item rows for the given asset ids
func (s *pgStore) ListStakedItems(ctx context.Context, assetIDs []uint64) ([]*schema.StakedItem, error) {
	if len(assetIDs) == 0 {
		return nil, nil
	}
	var items []*schema.StakedItem
	err := s.db.WithContext(ctx).
		Where("asset_id IN ?", assetIDs).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list staked items: %w", err)
	}
	return items, nil
}

// AddStakedItems persists staked-item rows. The primary key on asset_id
// rejects an item that is already staked anywhere, whoever staked it.
func (s *pgStore) AddStakedItems(ctx context.Context, items []*schema.StakedItem) error {
	if len(items) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).Create(items).Error; err != nil {
		return fmt.Errorf("failed to add staked items: %w", err)
	}
	return nil
}

// CreateBlendRecipe persists a blend recipe and fills in its id
func (s *pgStore) CreateBlendRecipe(ctx context.Context, recipe *schema.BlendRecipe) error {
	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return fmt.Errorf("failed to create blend recipe: %w", err)
	}
	return nil
}

// GetBlendRecipe retrieves a blend recipe by id (nil if absent)
func (s *pgStore) GetBlendRecipe(ctx context.Context, id int64) (*schema.BlendRecipe, error) {
	var recipe schema.BlendRecipe
	err := s.db.WithContext(ctx).
		Where("id = ?", id).
		First(&recipe).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get blend recipe: %w", err)
	}
	return &recipe, nil
}

// ListBlendRecipes retrieves all registered blend recipes
func (s *pgStore) ListBlendRecipes(ctx context.Context) ([]*schema.BlendRecipe, error) {
	var recipes []*schema.BlendRecipe
	err := s.db.WithContext(ctx).
		Order("id ASC").
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list blend recipes: %w", err)
	}
	return recipes, nil
}

// GetExchangeRatio retrieves the exchange ratio for a resource (nil if absent)
func (s *pgStore) GetExchangeRatio(ctx context.Context, resource string) (*schema.ExchangeRatio, error) {
	var ratio schema.ExchangeRatio
	err := s.db.WithContext(ctx).
		Where("resource = ?", resource).
		First(&ratio).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get exchange ratio: %w", err)
	}
	return &ratio, nil
}

// SetExchangeRatio creates or updates the exchange ratio for a resource
func (s *pgStore) SetExchangeRatio(ctx context.Context, resource string, ratio float64) error {
	record := schema.ExchangeRatio{
		Resource: resource,
		Ratio:    ratio,
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "resource"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"ratio":      ratio,
			"updated_at": time.Now(),
		}),
	}).Create(&record).Error
	if err != nil {
		return fmt.Errorf("failed to set exchange ratio: %w", err)
	}
	return nil
}

// CreateProposal persists a ratio change proposal and fills in its id
func (s *pgStore) CreateProposal(ctx context.Context, proposal *schema.VotingProposal) error {
	if err := s.db.WithContext(ctx).Create(proposal).Error; err != nil {
		return fmt.Errorf("failed to create proposal: %w", err)
	}
	return nil
}

// GetProposal retrieves a proposal by id (nil if absent)
func (s *pgStore) GetProposal(ctx context.Context, id int64) (*schema.VotingProposal, error) {
	var proposal schema.VotingProposal
	err := s.db.WithContext(ctx).
		Where("id = ?", id).
		First(&proposal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get proposal: %w", err)
	}
	return &proposal, nil
}

// UpdateProposal persists changes to a proposal
func (s *pgStore) UpdateProposal(ctx context.Context, proposal *schema.VotingProposal) error {
	if err := s.db.WithContext(ctx).Save(proposal).Error; err != nil {
		return fmt.Errorf("failed to update proposal: %w", err)
	}
	return nil
}

// ListExpiredOpenProposals retrieves open proposals whose expiry is before now
func (s *pgStore) ListExpiredOpenProposals(ctx context.Context, now time.Time) ([]*schema.VotingProposal, error) {
	var proposals []*schema.VotingProposal
	err := s.db.WithContext(ctx).
		Where("status = ? AND expires_at < ?", schema.ProposalStatusOpen, now).
		Order("id ASC").
		Find(&proposals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list expired proposals: %w", err)
	}
	return proposals, nil
}

// HasVoted reports whether a voter already voted on a proposal
func (s *pgStore) HasVoted(ctx context.Context, proposalID int64, voter string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&schema.ProposalVote{}).
		Where("proposal_id = ? AND voter = ?", proposalID, voter).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check vote: %w", err)
	}
	return count > 0, nil
}

// CreateVote persists a vote on a proposal
func (s *pgStore) CreateVote(ctx context.Context, vote *schema.ProposalVote) error {
	if err := s.db.WithContext(ctx).Create(vote).Error; err != nil {
		return fmt.Errorf("failed to create vote: %w", err)
	}
	return nil
}

// ListEquipment retrieves all equipped items of an owner
func (s *pgStore) ListEquipment(ctx context.Context, owner string) ([]*schema.EquipmentSlot, error) {
	var slots []*schema.EquipmentSlot
	err := s.db.WithContext(ctx).
		Where("owner = ?", owner).
		Order("slot ASC").
		Find(&slots).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list equipment: %w", err)
	}
	return slots, nil
}

// GetEquipmentSlot retrieves the equipped item in the given slot of an owner (nil if absent)
func (s *pgStore) GetEquipmentSlot(ctx context.Context, owner, slot string) (*schema.EquipmentSlot, error) {
	var record schema.EquipmentSlot
	err := s.db.WithContext(ctx).
		Where("owner = ? AND slot = ?", owner, slot).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get equipment slot: %w", err)
	}
	return &record, nil
}

// SaveEquipmentSlot creates or replaces the equipped item in a slot
func (s *pgStore) SaveEquipmentSlot(ctx context.Context, slot *schema.EquipmentSlot) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "owner"}, {Name: "slot"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"asset_id":   slot.AssetID,
			"updated_at": time.Now(),
		}),
	}).Create(slot).Error
	if err != nil {
		return fmt.Errorf("failed to save equipment slot: %w", err)
	}
	return nil
}

// GetOwnerStats retrieves the aggregated stats of an owner (nil if absent)
func (s *pgStore) GetOwnerStats(ctx context.Context, owner string) (*schema.OwnerStats, error) {
	var stats schema.OwnerStats
	err := s.db.WithContext(ctx).
		Where("owner = ?", owner).
		First(&stats).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get owner stats: %w", err)
	}
	return &stats, nil
}

// SaveOwnerStats creates or replaces the aggregated stats of an owner
func (s *pgStore) SaveOwnerStats(ctx context.Context, stats *schema.OwnerStats) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "owner"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"stats":      stats.Stats,
			"updated_at": time.Now(),
		}),
	}).Create(stats).Error
	if err != nil {
		return fmt.Errorf("failed to save owner stats: %w", err)
	}
	return nil
}

// GetLeaderboardEntry retrieves a leaderboard entry (nil if absent)
func (s *pgStore) GetLeaderboardEntry(ctx context.Context, board, owner string) (*schema.LeaderboardEntry, error) {
	var entry schema.LeaderboardEntry
	err := s.db.WithContext(ctx).
		Where("board = ? AND owner = ?", board, owner).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get leaderboard entry: %w", err)
	}
	return &entry, nil
}

// AddLeaderboardPoints adjusts an owner's points on a board by delta
func (s *pgStore) AddLeaderboardPoints(ctx context.Context, board, owner string, delta int64) error {
	if delta >= 0 {
		entry := schema.LeaderboardEntry{
			Board:  board,
			Owner:  owner,
			Points: uint64(delta),
		}
		err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "board"}, {Name: "owner"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"points":     gorm.Expr("points + ?", delta),
				"updated_at": time.Now(),
			}),
		}).Create(&entry).Error
		if err != nil {
			return fmt.Errorf("failed to add leaderboard points: %w", err)
		}
		return nil
	}

	result := s.db.WithContext(ctx).
		Model(&schema.LeaderboardEntry{}).
		Where("board = ? AND owner = ? AND points >= ?", board, owner, -delta).
		Update("points", gorm.Expr("points - ?", -delta))
	if result.Error != nil {
		return fmt.Errorf("failed to subtract leaderboard points: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNegativePoints
	}
	return nil
}

// SetLeaderboardPoints sets an owner's points on a board to an absolute value
func (s *pgStore) SetLeaderboardPoints(ctx context.Context, board, owner string, points uint64) error {
	entry := schema.LeaderboardEntry{
		Board:  board,
		Owner:  owner,
		Points: points,
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "board"}, {Name: "owner"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"points":     points,
			"updated_at": time.Now(),
		}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to set leaderboard points: %w", err)
	}
	return nil
}

// TopLeaderboard retrieves the highest ranked entries of a board
func (s *pgStore) TopLeaderboard(ctx context.Context, board string, limit int) ([]*schema.LeaderboardEntry, error) {
	var entries []*schema.LeaderboardEntry
	err := s.db.WithContext(ctx).
		Where("board = ?", board).
		Order("points DESC").
		Order("owner ASC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get top leaderboard: %w", err)
	}
	return entries, nil
}

// MarkTransferProcessed records a ledger transaction id as applied
func (s *pgStore) MarkTransferProcessed(ctx context.Context, txID string) (bool, error) {
	record := schema.ProcessedTransfer{TxID: txID}
	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&record)
	if result.Error != nil {
		return false, fmt.Errorf("failed to mark transfer processed: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
