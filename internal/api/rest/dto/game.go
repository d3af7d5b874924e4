package dto

import (
	"errors"
	"time"

	"github.com/greenhollow/gh-game-core/internal/domain"
	"github.com/greenhollow/gh-game-core/internal/game"
	"github.com/greenhollow/gh-game-core/internal/store/schema"
)

// ClaimRequest asks for the accrued production of a staked farming item
type ClaimRequest struct {
	SlotAssetID uint64 `json:"slot_asset_id"`
}

// Validate checks the request fields
func (r *ClaimRequest) Validate() error {
	if r.SlotAssetID == 0 {
		return errors.New("slot_asset_id is required")
	}
	return nil
}

// UpgradeItemRequest attempts a level upgrade of a staked item
type UpgradeItemRequest struct {
	AssetID     uint64 `json:"asset_id"`
	TargetLevel uint8  `json:"target_level"`
	StakedAt    uint64 `json:"staked_at"`
}

// Validate checks the request fields
func (r *UpgradeItemRequest) Validate() error {
	if r.AssetID == 0 {
		return errors.New("asset_id is required")
	}
	if r.TargetLevel == 0 {
		return errors.New("target_level is required")
	}
	if r.StakedAt == 0 {
		return errors.New("staked_at is required")
	}
	return nil
}

// UpgradeFarmRequest attempts a level upgrade of a farming item
type UpgradeFarmRequest struct {
	SlotAssetID uint64 `json:"slot_asset_id"`
	Staked      bool   `json:"staked"`
}

// Validate checks the request fields
func (r *UpgradeFarmRequest) Validate() error {
	if r.SlotAssetID == 0 {
		return errors.New("slot_asset_id is required")
	}
	return nil
}

// AddBlendRequest registers a blend recipe
type AddBlendRequest struct {
	Ingredients []int32 `json:"ingredients"`
	Result      int32   `json:"result"`
}

// Validate checks the request fields
func (r *AddBlendRequest) Validate() error {
	if len(r.Ingredients) == 0 {
		return errors.New("ingredients are required")
	}
	for _, t := range r.Ingredients {
		if t <= 0 {
			return errors.New("ingredient template ids must be positive")
		}
	}
	if r.Result <= 0 {
		return errors.New("result template id must be positive")
	}
	return nil
}

// SetRatioRequest creates or replaces an exchange ratio
type SetRatioRequest struct {
	Resource string  `json:"resource"`
	Ratio    float64 `json:"ratio"`
}

// Validate checks the request fields
func (r *SetRatioRequest) Validate() error {
	if r.Resource == "" {
		return errors.New("resource is required")
	}
	return nil
}

// SwapRequest converts resource units into tokens
type SwapRequest struct {
	Resource string `json:"resource"`
	Amount   uint64 `json:"amount"`
}

// Validate checks the request fields
func (r *SwapRequest) Validate() error {
	if r.Resource == "" {
		return errors.New("resource is required")
	}
	if r.Amount == 0 {
		return errors.New("amount must be positive")
	}
	return nil
}

// WithdrawRequest debits tokens and issues an external transfer.
// A zero amount withdraws the full balance.
type WithdrawRequest struct {
	Amount float64 `json:"amount"`
}

// Validate checks the request fields
func (r *WithdrawRequest) Validate() error {
	if r.Amount < 0 {
		return errors.New("amount must not be negative")
	}
	return nil
}

// CreateVotingRequest opens a ratio change proposal
type CreateVotingRequest struct {
	Resource string  `json:"resource"`
	NewRatio float64 `json:"new_ratio"`
}

// Validate checks the request fields
func (r *CreateVotingRequest) Validate() error {
	if r.Resource == "" {
		return errors.New("resource is required")
	}
	return nil
}

// ClaimResponse reports a successful claim
type ClaimResponse struct {
	Resource    string  `json:"resource"`
	Amount      uint64  `json:"amount"`
	MiningPower float64 `json:"mining_power"`
}

// FromClaimResult maps an engine claim result
func FromClaimResult(r *game.ClaimResult) ClaimResponse {
	return ClaimResponse{
		Resource:    r.Resource,
		Amount:      r.Amount,
		MiningPower: r.MiningPower,
	}
}

// UpgradeResponse reports the outcome of an upgrade attempt
type UpgradeResponse struct {
	Success bool  `json:"success"`
	Level   uint8 `json:"level"`
	Chance  uint8 `json:"chance"`
	Roll    uint8 `json:"roll"`
}

// FromUpgradeResult maps an engine upgrade result
func FromUpgradeResult(r *game.UpgradeResult) UpgradeResponse {
	return UpgradeResponse{
		Success: r.Success,
		Level:   r.Level,
		Chance:  r.Chance,
		Roll:    r.Roll,
	}
}

// RecipeCreatedResponse reports a newly registered blend recipe
type RecipeCreatedResponse struct {
	RecipeID int64 `json:"recipe_id"`
}

// SwapResponse reports the tokens credited by a swap
type SwapResponse struct {
	Tokens string `json:"tokens"`
}

// WithdrawResponse reports the tokens paid out by a withdrawal
type WithdrawResponse struct {
	Amount string `json:"amount"`
}

// VotingCreatedResponse reports a newly opened proposal
type VotingCreatedResponse struct {
	ProposalID int64 `json:"proposal_id"`
}

// VoteResponse reports the outcome of a cast vote
type VoteResponse struct {
	Weight      string `json:"weight"`
	TotalWeight string `json:"total_weight"`
	Finalized   bool   `json:"finalized"`
}

// FromVoteResult maps an engine vote result
func FromVoteResult(r *game.VoteResult) VoteResponse {
	return VoteResponse{
		Weight:      r.Weight.String(),
		TotalWeight: r.TotalWeight.String(),
		Finalized:   r.Finalized,
	}
}

// ResourceBalanceResponse represents one resource balance
type ResourceBalanceResponse struct {
	Resource  string    `json:"resource"`
	Amount    uint64    `json:"amount"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FromResourceBalances maps resource balance rows
func FromResourceBalances(rows []*schema.ResourceBalance) []ResourceBalanceResponse {
	out := make([]ResourceBalanceResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, ResourceBalanceResponse{
			Resource:  row.Resource,
			Amount:    row.Amount,
			UpdatedAt: row.UpdatedAt,
		})
	}
	return out
}

// TokenBalanceResponse represents an owner's token balance
type TokenBalanceResponse struct {
	Balance string `json:"balance"`
}

// EquipmentSlotResponse represents one equipped item
type EquipmentSlotResponse struct {
	Slot    string `json:"slot"`
	AssetID uint64 `json:"asset_id"`
}

// FromEquipmentSlots maps equipment slot rows
func FromEquipmentSlots(rows []*schema.EquipmentSlot) []EquipmentSlotResponse {
	out := make([]EquipmentSlotResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, EquipmentSlotResponse{
			Slot:    row.Slot,
			AssetID: row.AssetID,
		})
	}
	return out
}

// AssemblyResponse represents one staked farming item with its sub-items
type AssemblyResponse struct {
	FarmingItemID uint64    `json:"farming_item_id"`
	StakedItems   []uint64  `json:"staked_items"`
	LastClaim     time.Time `json:"last_claim"`
}

// FromAssemblies maps staked assembly rows
func FromAssemblies(rows []*schema.StakedAssembly) ([]AssemblyResponse, error) {
	out := make([]AssemblyResponse, 0, len(rows))
	for _, row := range rows {
		items, err := row.ItemIDs()
		if err != nil {
			return nil, err
		}
		if items == nil {
			items = []uint64{}
		}
		out = append(out, AssemblyResponse{
			FarmingItemID: row.FarmingItemID,
			StakedItems:   items,
			LastClaim:     row.LastClaim,
		})
	}
	return out, nil
}

// RecipeResponse represents one blend recipe
type RecipeResponse struct {
	ID          int64   `json:"id"`
	Ingredients []int32 `json:"ingredients"`
	Result      int32   `json:"result"`
}

// FromRecipes maps blend recipe rows
func FromRecipes(rows []*schema.BlendRecipe) ([]RecipeResponse, error) {
	out := make([]RecipeResponse, 0, len(rows))
	for _, row := range rows {
		ingredients, err := row.Ingredients()
		if err != nil {
			return nil, err
		}
		out = append(out, RecipeResponse{
			ID:          row.ID,
			Ingredients: ingredients,
			Result:      row.ResultTemplate,
		})
	}
	return out, nil
}

// RatioResponse represents the exchange ratio of a resource
type RatioResponse struct {
	Resource  string    `json:"resource"`
	Ratio     float64   `json:"ratio"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FromRatio maps an exchange ratio row
func FromRatio(row *schema.ExchangeRatio) RatioResponse {
	return RatioResponse{
		Resource:  row.Resource,
		Ratio:     row.Ratio,
		UpdatedAt: row.UpdatedAt,
	}
}

// ProposalResponse represents a voting proposal
type ProposalResponse struct {
	ID            int64                 `json:"id"`
	Resource      string                `json:"resource"`
	ProposedRatio float64               `json:"proposed_ratio"`
	Status        schema.ProposalStatus `json:"status"`
	TotalWeight   string                `json:"total_weight"`
	ExpiresAt     time.Time             `json:"expires_at"`
	CreatedAt     time.Time             `json:"created_at"`
}

// FromProposal maps a voting proposal row
func FromProposal(row *schema.VotingProposal) ProposalResponse {
	return ProposalResponse{
		ID:            row.ID,
		Resource:      row.Resource,
		ProposedRatio: row.ProposedRatio,
		Status:        row.Status,
		TotalWeight:   domain.TokenAmount(row.TotalWeight).String(),
		ExpiresAt:     row.ExpiresAt,
		CreatedAt:     row.CreatedAt,
	}
}

// LeaderboardEntryResponse represents one ranked leaderboard entry
type LeaderboardEntryResponse struct {
	Rank   int    `json:"rank"`
	Owner  string `json:"owner"`
	Points uint64 `json:"points"`
}

// FromLeaderboard maps leaderboard rows in rank order
func FromLeaderboard(rows []*schema.LeaderboardEntry) []LeaderboardEntryResponse {
	out := make([]LeaderboardEntryResponse, 0, len(rows))
	for i, row := range rows {
		out = append(out, LeaderboardEntryResponse{
			Rank:   i + 1,
			Owner:  row.Owner,
			Points: row.Points,
		})
	}
	return out
}

// StatsResponse represents an owner's aggregated equipment stats
type StatsResponse struct {
	Stats map[string]uint32 `json:"stats"`
}
