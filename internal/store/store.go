package store

import (
	"context"
	"time"

	"github.com/greenhollow/gh-game-core/internal/store/schema"
)

// Store defines the interface for database operations
type Store interface {
	// Atomically runs fn against a store view bound to a single database
	// transaction. The transaction commits when fn returns nil and rolls
	// back otherwise.
	Atomically(ctx context.Context, fn func(tx Store) error) error

	// GetResourceBalance retrieves the balance of a resource for an owner (0 if absent)
	GetResourceBalance(ctx context.Context, owner, resource string) (uint64, error)
	// ListResourceBalances retrieves all resource balances of an owner
	ListResourceBalances(ctx context.Context, owner string) ([]*schema.ResourceBalance, error)
	// AddResource credits amount of a resource to an owner
	AddResource(ctx context.Context, owner, resource string, amount uint64) error
	// SpendResource debits amount of a resource from an owner.
	// Returns domain.ErrInsufficientBalance when the balance is too low.
	SpendResource(ctx context.Context, owner, resource string, amount uint64) error

	// GetTokenBalance retrieves the in-game token balance of an owner in base units (0 if absent)
	GetTokenBalance(ctx context.Context, owner string) (int64, error)
	// CreditTokens credits base token units to an owner
	CreditTokens(ctx context.Context, owner string, amount int64) error
	// DebitTokens debits base token units from an owner.
	// Returns domain.ErrInsufficientBalance when the balance is too low.
	DebitTokens(ctx context.Context, owner string, amount int64) error

	// GetAssembly retrieves a staked assembly by its farming item id (nil if absent)
	GetAssembly(ctx context.Context, farmingItemID uint64) (*schema.StakedAssembly, error)
	// ListAssemblies retrieves all staked assemblies of an owner
	ListAssemblies(ctx context.Context, owner string) ([]*schema.StakedAssembly, error)
	// ListAllAssemblies retrieves staked assemblies across all owners, paginated by id
	ListAllAssemblies(ctx context.Context, afterID int64, limit int) ([]*schema.StakedAssembly, error)
	// CreateAssembly persists a newly staked assembly
	CreateAssembly(ctx context.Context, assembly *schema.StakedAssembly) error
	// UpdateAssembly persists changes to a staked assembly
	UpdateAssembly(ctx context.Context, assembly *schema.StakedAssembly) error
	// ListStakedItems retrieves the staked-item rows for the given asset ids,
	// across all owners
	ListStakedItems(ctx context.Context, assetIDs []uint64) ([]*schema.StakedItem, error)
	// AddStakedItems persists staked-item rows. A row whose asset id is
	// already staked anywhere fails the whole batch.
	AddStakedItems(ctx context.Context, items []*schema.StakedItem) error

	// CreateBlendRecipe persists a blend recipe and fills in its id
	CreateBlendRecipe(ctx context.Context, recipe *schema.BlendRecipe) error
	// GetBlendRecipe retrieves a blend recipe by id (nil if absent)
	GetBlendRecipe(ctx context.Context, id int64) (*schema.BlendRecipe, error)
	// ListBlendRecipes retrieves all registered blend recipes
	ListBlendRecipes(ctx context.Context) ([]*schema.BlendRecipe, error)

	// GetExchangeRatio retrieves the exchange ratio for a resource (nil if absent)
	GetExchangeRatio(ctx context.Context, resource string) (*schema.ExchangeRatio, error)
	// SetExchangeRatio creates or updates the exchange ratio for a resource
	SetExchangeRatio(ctx context.Context, resource string, ratio float64) error

	// CreateProposal persists a ratio change proposal and fills in its id
	CreateProposal(ctx context.Context, proposal *schema.VotingProposal) error
	// GetProposal retrieves a proposal by id (nil if absent)
	GetProposal(ctx context.Context, id int64) (*schema.VotingProposal, error)
	// UpdateProposal persists changes to a proposal
	UpdateProposal(ctx context.Context, proposal *schema.VotingProposal) error
	// ListExpiredOpenProposals retrieves open proposals whose expiry is before now
	ListExpiredOpenProposals(ctx context.Context, now time.Time) ([]*schema.VotingProposal, error)
	// HasVoted reports whether a voter already voted on a proposal
	HasVoted(ctx context.Context, proposalID int64, voter string) (bool, error)
	// CreateVote persists a vote on a proposal
	CreateVote(ctx context.Context, vote *schema.ProposalVote) error

	// ListEquipment retrieves all equipped items of an owner
	ListEquipment(ctx context.Context, owner string) ([]*schema.EquipmentSlot, error)
	// GetEquipmentSlot retrieves the equipped item in the given slot of an owner (nil if absent)
	GetEquipmentSlot(ctx context.Context, owner, slot string) (*schema.EquipmentSlot, error)
	// SaveEquipmentSlot creates or replaces the equipped item in a slot
	SaveEquipmentSlot(ctx context.Context, slot *schema.EquipmentSlot) error

	// GetOwnerStats retrieves the aggregated stats of an owner (nil if absent)
	GetOwnerStats(ctx context.Context, owner string) (*schema.OwnerStats, error)
	// SaveOwnerStats creates or replaces the aggregated stats of an owner
	SaveOwnerStats(ctx context.Context, stats *schema.OwnerStats) error

	// GetLeaderboardEntry retrieves a leaderboard entry (nil if absent)
	GetLeaderboardEntry(ctx context.Context, board, owner string) (*schema.LeaderboardEntry, error)
	// AddLeaderboardPoints adjusts an owner's points on a board by delta.
	// Returns domain.ErrNegativePoints when the result would be negative.
	AddLeaderboardPoints(ctx context.Context, board, owner string, delta int64) error
	// SetLeaderboardPoints sets an owner's points on a board to an absolute value
	SetLeaderboardPoints(ctx context.Context, board, owner string, points uint64) error
	// TopLeaderboard retrieves the highest ranked entries of a board
	TopLeaderboard(ctx context.Context, board string, limit int) ([]*schema.LeaderboardEntry, error)

	// MarkTransferProcessed records a ledger transaction id as applied.
	// Returns false when the transaction was already recorded.
	MarkTransferProcessed(ctx context.Context, txID string) (bool, error)
}
