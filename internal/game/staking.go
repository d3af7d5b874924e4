package game

import (
	"context"
	"fmt"
	"math"

	"github.com/greenhollow/gh-game-core/internal/domain"
	"github.com/greenhollow/gh-game-core/internal/store"
	"github.com/greenhollow/gh-game-core/internal/store/schema"
)

// RegisterFarmingItems registers transferred farming items as production
// slots. Each item gets an empty assembly whose production clock starts now.
func (e *Engine) RegisterFarmingItems(ctx context.Context, owner domain.OwnerName, assetIDs []domain.AssetID, txID string) error {
	if err := uniqueAssetIDs(assetIDs); err != nil {
		return err
	}

	assets, err := e.custodyAssets(ctx, owner, assetIDs)
	if err != nil {
		return err
	}
	for _, asset := range assets {
		if asset.ImmutableData.String(domain.AttrFarmResource) == "" {
			return fmt.Errorf("asset %d is not a farming item", asset.ID)
		}
	}

	now := e.clock.Now()
	err = e.store.Atomically(ctx, func(tx store.Store) error {
		if err := e.markOnce(ctx, tx, txID); err != nil {
			return err
		}
		for _, asset := range assets {
			existing, err := tx.GetAssembly(ctx, uint64(asset.ID))
			if err != nil {
				return fmt.Errorf("failed to fetch assembly: %w", err)
			}
			if existing != nil {
				return fmt.Errorf("%w: farming item %d", domain.ErrAlreadyStaked, asset.ID)
			}

			assembly := &schema.StakedAssembly{
				Owner:         owner.String(),
				FarmingItemID: uint64(asset.ID),
				LastClaim:     now,
			}
			if err := assembly.SetItemIDs([]uint64{}); err != nil {
				return fmt.Errorf("failed to encode staked items: %w", err)
			}
			if err := tx.CreateAssembly(ctx, assembly); err != nil {
				return fmt.Errorf("failed to create assembly: %w", err)
			}
		}
		return nil
	})
	if _, err = skipApplied(ctx, err, txID); err != nil {
		return err
	}
	return nil
}

// StakeItems stakes transferred items into an existing production slot.
// Capacity is the slot template's slot count plus one per level above the
// first.
func (e *Engine) StakeItems(ctx context.Context, owner domain.OwnerName, slotAssetID domain.AssetID, assetIDs []domain.AssetID, txID string) error {
	if err := uniqueAssetIDs(assetIDs); err != nil {
		return err
	}

	if _, err := e.custodyAssets(ctx, owner, assetIDs); err != nil {
		return err
	}

	slotAsset, err := e.custodyAsset(ctx, owner, slotAssetID)
	if err != nil {
		return err
	}

	err = e.store.Atomically(ctx, func(tx store.Store) error {
		if err := e.markOnce(ctx, tx, txID); err != nil {
			return err
		}
		assembly, err := tx.GetAssembly(ctx, uint64(slotAssetID))
		if err != nil {
			return fmt.Errorf("failed to fetch assembly: %w", err)
		}
		if assembly == nil {
			return fmt.Errorf("%w: farming item %d", domain.ErrNotStaked, slotAssetID)
		}
		if assembly.Owner != owner.String() {
			return fmt.Errorf("%w: farming item %d", domain.ErrNotOwner, slotAssetID)
		}

		staked, err := assembly.ItemIDs()
		if err != nil {
			return fmt.Errorf("failed to decode staked items: %w", err)
		}

		// A sub-item belongs to at most one assembly, whoever staked it.
		ids := make([]uint64, 0, len(assetIDs))
		for _, id := range assetIDs {
			ids = append(ids, uint64(id))
		}
		members, err := tx.ListStakedItems(ctx, ids)
		if err != nil {
			return fmt.Errorf("failed to check staked items: %w", err)
		}
		if len(members) > 0 {
			return fmt.Errorf("%w: item %d", domain.ErrAlreadyStaked, members[0].AssetID)
		}

		capacity := int(slotAsset.ImmutableData.Int(domain.AttrSlots)) + int(slotAsset.Level()) - 1
		if len(staked)+len(assetIDs) > capacity {
			return fmt.Errorf("%w: capacity %d", domain.ErrAssemblyFull, capacity)
		}

		rows := make([]*schema.StakedItem, 0, len(ids))
		for _, id := range ids {
			staked = append(staked, id)
			rows = append(rows, &schema.StakedItem{
				AssetID:       id,
				FarmingItemID: uint64(slotAssetID),
				Owner:         owner.String(),
			})
		}
		if err := tx.AddStakedItems(ctx, rows); err != nil {
			return err
		}
		if err := assembly.SetItemIDs(staked); err != nil {
			return fmt.Errorf("failed to encode staked items: %w", err)
		}
		if err := tx.UpdateAssembly(ctx, assembly); err != nil {
			return fmt.Errorf("failed to update assembly: %w", err)
		}

		return e.refreshMiningPower(ctx, tx, owner)
	})
	if _, err = skipApplied(ctx, err, txID); err != nil {
		return err
	}
	return nil
}

// Claim credits the resources a staked farming item produced since its last
// claim and restarts the production clock.
func (e *Engine) Claim(ctx context.Context, owner domain.OwnerName, slotAssetID domain.AssetID) (*ClaimResult, error) {
	now := e.clock.Now()

	var result *ClaimResult
	err := e.store.Atomically(ctx, func(tx store.Store) error {
		assembly, err := tx.GetAssembly(ctx, uint64(slotAssetID))
		if err != nil {
			return fmt.Errorf("failed to fetch assembly: %w", err)
		}
		if assembly == nil {
			return fmt.Errorf("%w: farming item %d", domain.ErrNotStaked, slotAssetID)
		}
		if assembly.Owner != owner.String() {
			return fmt.Errorf("%w: farming item %d", domain.ErrNotOwner, slotAssetID)
		}

		elapsed := now.Sub(assembly.LastClaim)
		if elapsed < e.economy.MinClaimInterval {
			return fmt.Errorf("%w: %s elapsed", domain.ErrNothingToClaim, elapsed)
		}

		slotAsset, err := e.assets.GetAsset(ctx, slotAssetID)
		if err != nil {
			return fmt.Errorf("failed to fetch farming item: %w", err)
		}
		if slotAsset == nil {
			return fmt.Errorf("%w: asset %d", domain.ErrAssetNotFound, slotAssetID)
		}

		power, resource, err := e.assemblyPower(ctx, tx, assembly, slotAsset)
		if err != nil {
			return err
		}
		if power <= 0 || resource == "" {
			return fmt.Errorf("%w: no production rate for farming item %d", domain.ErrNothingToClaim, slotAssetID)
		}

		produced := uint64(power * elapsed.Hours())
		if produced == 0 {
			return fmt.Errorf("%w: produced nothing in %s", domain.ErrNothingToClaim, elapsed)
		}

		if err := tx.AddResource(ctx, owner.String(), resource, produced); err != nil {
			return fmt.Errorf("failed to credit resource: %w", err)
		}

		assembly.LastClaim = now
		if err := tx.UpdateAssembly(ctx, assembly); err != nil {
			return fmt.Errorf("failed to update assembly: %w", err)
		}

		if err := e.refreshMiningPower(ctx, tx, owner); err != nil {
			return err
		}

		// Mirror the claim time onto the asset's mutable attributes as the
		// last step before commit.
		mutable := slotAsset.MutableData.Clone()
		mutable[domain.AttrLastClaim] = now.Unix()
		if err := e.assets.UpdateMutableData(ctx, slotAssetID, mutable); err != nil {
			return fmt.Errorf("failed to update last claim: %w", err)
		}

		result = &ClaimResult{Resource: resource, Amount: produced, MiningPower: power}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.publish(ctx, domain.EconomyEventClaim, owner, result)
	return result, nil
}

// assemblyPower computes the production rate of an assembly in resource
// units per hour. Each staked sub-item adds its mining boost and the owner's
// strength adds up to a factor of two.
func (e *Engine) assemblyPower(ctx context.Context, tx store.Store, assembly *schema.StakedAssembly, slotAsset *domain.Asset) (float64, string, error) {
	rate := slotAsset.MutableData.Float(domain.AttrMiningRate)
	if rate == 0 {
		rate = slotAsset.ImmutableData.Float(domain.AttrMiningRate)
	}
	resource := slotAsset.ImmutableData.String(domain.AttrFarmResource)

	boost := 0.0
	itemIDs, err := assembly.ItemIDs()
	if err != nil {
		return 0, "", fmt.Errorf("failed to decode staked items: %w", err)
	}
	if len(itemIDs) > 0 {
		ids := make([]domain.AssetID, 0, len(itemIDs))
		for _, id := range itemIDs {
			ids = append(ids, domain.AssetID(id))
		}
		staked, err := e.assets.GetAssets(ctx, ids)
		if err != nil {
			return 0, "", fmt.Errorf("failed to fetch staked items: %w", err)
		}
		for _, item := range staked {
			boost += item.ImmutableData.Float(domain.AttrMiningBoost)
		}
	}

	stats, err := e.readStats(ctx, tx, domain.OwnerName(assembly.Owner))
	if err != nil {
		return 0, "", err
	}
	strength := math.Min(float64(stats.Get(domain.StatStrength)), 100)

	power := rate * (1 + boost) * (1 + strength/100)
	return power, resource, nil
}

// refreshMiningPower recomputes the owner's total mining power and writes it
// to the mining power leaderboard, scaled to two decimals.
func (e *Engine) refreshMiningPower(ctx context.Context, tx store.Store, owner domain.OwnerName) error {
	assemblies, err := tx.ListAssemblies(ctx, owner.String())
	if err != nil {
		return fmt.Errorf("failed to list assemblies: %w", err)
	}

	total := 0.0
	for _, assembly := range assemblies {
		slotAsset, err := e.assets.GetAsset(ctx, domain.AssetID(assembly.FarmingItemID))
		if err != nil {
			return fmt.Errorf("failed to fetch farming item: %w", err)
		}
		if slotAsset == nil {
			continue
		}
		power, _, err := e.assemblyPower(ctx, tx, assembly, slotAsset)
		if err != nil {
			return err
		}
		total += power
	}

	points := uint64(math.Round(total * 100))
	if err := tx.SetLeaderboardPoints(ctx, BoardMiningPower, owner.String(), points); err != nil {
		return fmt.Errorf("failed to update mining power leaderboard: %w", err)
	}
	return nil
}

// RefreshMiningPower recomputes an owner's mining power leaderboard entry
func (e *Engine) RefreshMiningPower(ctx context.Context, owner domain.OwnerName) error {
	return e.store.Atomically(ctx, func(tx store.Store) error {
		return e.refreshMiningPower(ctx, tx, owner)
	})
}

// AssembliesOf retrieves the staked assemblies of an owner
func (e *Engine) AssembliesOf(ctx context.Context, owner domain.OwnerName) ([]*schema.StakedAssembly, error) {
	return e.store.ListAssemblies(ctx, owner.String())
}
