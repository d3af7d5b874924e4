package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/greenhollow/gh-game-core/internal/adapter"
	"github.com/greenhollow/gh-game-core/internal/config"
	"github.com/greenhollow/gh-game-core/internal/domain"
	"github.com/greenhollow/gh-game-core/internal/ledger"
	"github.com/greenhollow/gh-game-core/internal/logger"
	"github.com/greenhollow/gh-game-core/internal/messaging"
	"github.com/greenhollow/gh-game-core/internal/store"
	"github.com/greenhollow/gh-game-core/internal/store/schema"
)

// Leaderboard scope written by the staking manager.
const BoardMiningPower = "miningpwr"

// ClaimResult describes the outcome of a successful production claim
type ClaimResult struct {
	Resource    string  `json:"resource"`
	Amount      uint64  `json:"amount"`
	MiningPower float64 `json:"mining_power"`
}

// UpgradeResult describes the outcome of an upgrade attempt. A failed roll
// is a valid outcome, not an error: the attempt is consumed either way.
type UpgradeResult struct {
	Success bool  `json:"success"`
	Level   uint8 `json:"level"`
	Chance  uint8 `json:"chance"`
	Roll    uint8 `json:"roll"`
}

// VoteResult describes the outcome of a cast vote
type VoteResult struct {
	Weight      domain.TokenAmount `json:"weight"`
	TotalWeight domain.TokenAmount `json:"total_weight"`
	Finalized   bool               `json:"finalized"`
}

// Service is the action and query surface of the game economy core.
// Every action executes as a single atomic unit of work: either all of its
// state writes and dependent external-ledger calls commit together, or the
// action fails with no partial effect.
//
//go:generate mockgen -source=engine.go -destination=../mocks/game_service.go -package=mocks -mock_names=Service=MockGameService
type Service interface {
	// RegisterFarmingItems registers transferred farming items as production
	// slots. txID, when non-empty, is the inbound ledger transaction id; a
	// transaction already applied is skipped without effect.
	RegisterFarmingItems(ctx context.Context, owner domain.OwnerName, assetIDs []domain.AssetID, txID string) error
	// StakeItems stakes transferred items into an existing production slot
	StakeItems(ctx context.Context, owner domain.OwnerName, slotAssetID domain.AssetID, assetIDs []domain.AssetID, txID string) error
	// Claim credits the resources produced by a staked farming item since its last claim
	Claim(ctx context.Context, owner domain.OwnerName, slotAssetID domain.AssetID) (*ClaimResult, error)
	// UpgradeItem attempts a probabilistic level upgrade of a staked item
	UpgradeItem(ctx context.Context, owner domain.OwnerName, itemID domain.AssetID, targetLevel uint8, stakedAt domain.AssetID) (*UpgradeResult, error)
	// UpgradeFarmingItem attempts a probabilistic level upgrade of a farming item
	UpgradeFarmingItem(ctx context.Context, owner domain.OwnerName, slotAssetID domain.AssetID, staked bool) (*UpgradeResult, error)
	// AddBlend registers a blend recipe and returns its id
	AddBlend(ctx context.Context, ingredients []domain.TemplateID, result domain.TemplateID) (int64, error)
	// Blend burns the transferred assets against a recipe and mints the result
	Blend(ctx context.Context, owner domain.OwnerName, assetIDs []domain.AssetID, recipeID int64, txID string) (domain.AssetID, error)
	// Equip wears transferred items by their slot kind and recomputes stats
	Equip(ctx context.Context, owner domain.OwnerName, assetIDs []domain.AssetID, txID string) error
	// SetRatio creates or replaces the exchange ratio of a resource
	SetRatio(ctx context.Context, resource string, ratio float64) error
	// Swap converts resource units into in-game tokens at the current ratio
	Swap(ctx context.Context, owner domain.OwnerName, resource string, amount uint64) (domain.TokenAmount, error)
	// Deposit credits an inbound token transfer to an owner's balance
	Deposit(ctx context.Context, owner domain.OwnerName, amount domain.TokenAmount, txID string) error
	// Withdraw debits an owner's token balance and issues an external token
	// transfer. A zero amount withdraws the full balance.
	Withdraw(ctx context.Context, owner domain.OwnerName, amount domain.TokenAmount) (domain.TokenAmount, error)
	// CreateVoting opens a token-weighted proposal to change a resource ratio
	CreateVoting(ctx context.Context, player domain.OwnerName, resource string, newRatio float64) (int64, error)
	// Vote casts the player's current token balance as vote weight
	Vote(ctx context.Context, player domain.OwnerName, proposalID int64) (*VoteResult, error)

	// Resources retrieves all resource balances of an owner
	Resources(ctx context.Context, owner domain.OwnerName) ([]*schema.ResourceBalance, error)
	// TokenBalance retrieves the in-game token balance of an owner
	TokenBalance(ctx context.Context, owner domain.OwnerName) (domain.TokenAmount, error)
	// StatsOf retrieves the aggregated stats of an owner
	StatsOf(ctx context.Context, owner domain.OwnerName) (domain.Stats, error)
	// EquipmentOf retrieves the equipped items of an owner
	EquipmentOf(ctx context.Context, owner domain.OwnerName) ([]*schema.EquipmentSlot, error)
	// AssembliesOf retrieves the staked assemblies of an owner
	AssembliesOf(ctx context.Context, owner domain.OwnerName) ([]*schema.StakedAssembly, error)
	// Recipes retrieves all registered blend recipes
	Recipes(ctx context.Context) ([]*schema.BlendRecipe, error)
	// Ratio retrieves the exchange ratio of a resource (nil if absent)
	Ratio(ctx context.Context, resource string) (*schema.ExchangeRatio, error)
	// Proposal retrieves a voting proposal by id (nil if absent)
	Proposal(ctx context.Context, id int64) (*schema.VotingProposal, error)
	// Leaderboard retrieves the highest ranked entries of a board
	Leaderboard(ctx context.Context, board string, limit int) ([]*schema.LeaderboardEntry, error)

	// RefreshMiningPower recomputes an owner's mining power leaderboard entry
	RefreshMiningPower(ctx context.Context, owner domain.OwnerName) error
	// ExpireProposals marks open proposals past their expiry as expired
	ExpireProposals(ctx context.Context) (int, error)
}

// Engine implements Service against the store and the external ledgers
type Engine struct {
	store       store.Store
	assets      ledger.AssetLedger
	tokens      ledger.TokenLedger
	entropy     Entropy
	publisher   messaging.Publisher
	clock       adapter.Clock
	json        adapter.JSON
	economy     config.EconomyConfig
	gameAccount domain.OwnerName
}

// NewEngine creates a new game engine
func NewEngine(
	st store.Store,
	assets ledger.AssetLedger,
	tokens ledger.TokenLedger,
	entropy Entropy,
	publisher messaging.Publisher,
	clock adapter.Clock,
	jsonAdapter adapter.JSON,
	economy config.EconomyConfig,
	gameAccount domain.OwnerName,
) *Engine {
	return &Engine{
		store:       st,
		assets:      assets,
		tokens:      tokens,
		entropy:     entropy,
		publisher:   publisher,
		clock:       clock,
		json:        jsonAdapter,
		economy:     economy,
		gameAccount: gameAccount,
	}
}

// errTransferApplied aborts an action whose inbound transfer was already
// applied. The transaction rolls back and the caller reports success.
var errTransferApplied = errors.New("transfer already applied")

// markOnce records an inbound ledger transaction inside the action's
// transaction. Marker and action commit or roll back together, so a
// transfer whose action aborts stays unprocessed and can be redelivered.
// An empty txID marks nothing; direct calls carry no transfer.
func (e *Engine) markOnce(ctx context.Context, tx store.Store, txID string) error {
	if txID == "" {
		return nil
	}
	fresh, err := tx.MarkTransferProcessed(ctx, txID)
	if err != nil {
		return fmt.Errorf("failed to record transfer: %w", err)
	}
	if !fresh {
		return errTransferApplied
	}
	return nil
}

// skipApplied swallows errTransferApplied after the transaction unwinds
func skipApplied(ctx context.Context, err error, txID string) (bool, error) {
	if errors.Is(err, errTransferApplied) {
		logger.InfoCtx(ctx, "Skipping already applied transfer", zap.String("txID", txID))
		return true, nil
	}
	return false, err
}

// uniqueAssetIDs rejects transfers that list the same asset more than once.
// A duplicated id would otherwise count twice against recipe and capacity
// checks while naming only one real asset.
func uniqueAssetIDs(ids []domain.AssetID) error {
	seen := make(map[domain.AssetID]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return fmt.Errorf("%w: asset %d", domain.ErrDuplicateAsset, id)
		}
		seen[id] = true
	}
	return nil
}

// custodyAsset fetches an asset and verifies the acting owner controls it.
// Assets arriving through memo transfers sit under game-account custody, so
// both the owner and the game account pass the check.
func (e *Engine) custodyAsset(ctx context.Context, owner domain.OwnerName, id domain.AssetID) (*domain.Asset, error) {
	asset, err := e.assets.GetAsset(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch asset %d: %w", id, err)
	}
	if asset == nil {
		return nil, fmt.Errorf("%w: asset %d", domain.ErrAssetNotFound, id)
	}
	if asset.Owner != owner && asset.Owner != e.gameAccount {
		return nil, fmt.Errorf("%w: asset %d belongs to %s", domain.ErrNotOwner, id, asset.Owner)
	}
	return asset, nil
}

// custodyAssets fetches multiple assets and verifies control over each
func (e *Engine) custodyAssets(ctx context.Context, owner domain.OwnerName, ids []domain.AssetID) ([]*domain.Asset, error) {
	assets, err := e.assets.GetAssets(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assets: %w", err)
	}
	byID := make(map[domain.AssetID]*domain.Asset, len(assets))
	for _, asset := range assets {
		byID[asset.ID] = asset
	}

	out := make([]*domain.Asset, 0, len(ids))
	for _, id := range ids {
		asset, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: asset %d", domain.ErrAssetNotFound, id)
		}
		if asset.Owner != owner && asset.Owner != e.gameAccount {
			return nil, fmt.Errorf("%w: asset %d belongs to %s", domain.ErrNotOwner, id, asset.Owner)
		}
		out = append(out, asset)
	}
	return out, nil
}

// publish emits an economy event after a committed action. Events are
// advisory: failures are logged and swallowed.
func (e *Engine) publish(ctx context.Context, kind domain.EconomyEventKind, owner domain.OwnerName, payload interface{}) {
	if e.publisher == nil {
		return
	}

	raw, err := e.json.Marshal(payload)
	if err != nil {
		logger.ErrorCtx(ctx, err, zap.String("message", "Failed to marshal economy event payload"), zap.String("kind", string(kind)))
		return
	}

	event := &domain.EconomyEvent{
		ID:        ulid.Make().String(),
		Kind:      kind,
		Owner:     owner,
		Payload:   raw,
		Timestamp: e.clock.Now(),
	}
	if err := e.publisher.PublishEconomyEvent(ctx, event); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("message", "Failed to publish economy event"), zap.String("kind", string(kind)))
	}
}
