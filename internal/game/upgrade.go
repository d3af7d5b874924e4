package game

import (
	"context"
	"fmt"
	"time"

	"github.com/greenhollow/gh-game-core/internal/domain"
	"github.com/greenhollow/gh-game-core/internal/store"
)

// Upgrade policy: the cooldown and the token cost both double per level, the
// success chance is the item's base percentage plus the owner's luck, and a
// failed roll still consumes the cooldown. A staked farming item may upgrade
// while producing, at a discounted cost.

// UpgradeItem attempts a probabilistic level upgrade of an item currently
// staked at the given farming item.
func (e *Engine) UpgradeItem(ctx context.Context, owner domain.OwnerName, itemID domain.AssetID, targetLevel uint8, stakedAt domain.AssetID) (*UpgradeResult, error) {
	asset, err := e.custodyAsset(ctx, owner, itemID)
	if err != nil {
		return nil, err
	}

	var result *UpgradeResult
	err = e.store.Atomically(ctx, func(tx store.Store) error {
		assembly, err := tx.GetAssembly(ctx, uint64(stakedAt))
		if err != nil {
			return fmt.Errorf("failed to fetch assembly: %w", err)
		}
		if assembly == nil || assembly.Owner != owner.String() {
			return fmt.Errorf("%w: item %d is not staked at farming item %d", domain.ErrNotStaked, itemID, stakedAt)
		}
		staked, err := assembly.ItemIDs()
		if err != nil {
			return fmt.Errorf("failed to decode staked items: %w", err)
		}
		found := false
		for _, id := range staked {
			if id == uint64(itemID) {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: item %d is not staked at farming item %d", domain.ErrNotStaked, itemID, stakedAt)
		}

		cost := scaleByLevel(e.economy.UpgradeCostBase, asset.Level())
		result, err = e.attemptUpgrade(ctx, tx, owner, asset, targetLevel, cost)
		return err
	})
	if err != nil {
		return nil, err
	}

	e.publish(ctx, domain.EconomyEventUpgrade, owner, result)
	return result, nil
}

// UpgradeFarmingItem attempts a probabilistic level upgrade of a farming
// item. The staked flag must match the item's actual staking state; staked
// items upgrade at a discounted cost.
func (e *Engine) UpgradeFarmingItem(ctx context.Context, owner domain.OwnerName, slotAssetID domain.AssetID, staked bool) (*UpgradeResult, error) {
	asset, err := e.custodyAsset(ctx, owner, slotAssetID)
	if err != nil {
		return nil, err
	}

	var result *UpgradeResult
	err = e.store.Atomically(ctx, func(tx store.Store) error {
		assembly, err := tx.GetAssembly(ctx, uint64(slotAssetID))
		if err != nil {
			return fmt.Errorf("failed to fetch assembly: %w", err)
		}
		if staked {
			if assembly == nil || assembly.Owner != owner.String() {
				return fmt.Errorf("%w: farming item %d", domain.ErrNotStaked, slotAssetID)
			}
		} else if assembly != nil {
			return fmt.Errorf("%w: farming item %d", domain.ErrAlreadyStaked, slotAssetID)
		}

		cost := scaleByLevel(e.economy.FarmUpgradeCostBase, asset.Level())
		if staked {
			cost *= 1 - e.economy.StakedUpgradeDiscount
		}

		result, err = e.attemptUpgrade(ctx, tx, owner, asset, asset.Level()+1, cost)
		if err != nil {
			return err
		}
		if result.Success && staked {
			return e.refreshMiningPower(ctx, tx, owner)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.publish(ctx, domain.EconomyEventUpgrade, owner, result)
	return result, nil
}

// attemptUpgrade runs the shared upgrade state machine: level gate, cooldown
// gate, token cost, entropy roll, attribute write-back. The cooldown is
// consumed whether or not the roll succeeds.
func (e *Engine) attemptUpgrade(ctx context.Context, tx store.Store, owner domain.OwnerName, asset *domain.Asset, targetLevel uint8, costTokens float64) (*UpgradeResult, error) {
	level := asset.Level()
	if targetLevel != level+1 || targetLevel > e.economy.MaxLevel {
		return nil, fmt.Errorf("%w: level %d to %d", domain.ErrWrongLevel, level, targetLevel)
	}

	now := e.clock.Now()
	if last := asset.MutableData.Int(domain.AttrLastUpgrade); last > 0 {
		cooldown := e.cooldown(level)
		since := now.Sub(time.Unix(last, 0))
		if since < cooldown {
			return nil, fmt.Errorf("%w: %s of %s cooldown elapsed", domain.ErrTooSoon, since, cooldown)
		}
	}

	if costTokens > 0 {
		if err := tx.DebitTokens(ctx, owner.String(), int64(domain.TokenFromFloat(costTokens))); err != nil {
			return nil, fmt.Errorf("failed to pay upgrade cost: %w", err)
		}
	}

	base := asset.ImmutableData.Float(domain.AttrUpgradePercentage)
	if base == 0 {
		base = asset.MutableData.Float(domain.AttrUpgradePercentage)
	}
	stats, err := e.readStats(ctx, tx, owner)
	if err != nil {
		return nil, err
	}

	chance := base + float64(stats.Get(domain.StatLuck))
	if chance < 0 {
		chance = 0
	}
	if chance > 100 {
		chance = 100
	}

	roll, err := e.entropy.Draw(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to draw upgrade outcome: %w", err)
	}
	success := float64(roll) < chance

	mutable := asset.MutableData.Clone()
	mutable[domain.AttrLastUpgrade] = now.Unix()
	if success {
		mutable[domain.AttrLevel] = int64(targetLevel)
	}
	if err := e.assets.UpdateMutableData(ctx, asset.ID, mutable); err != nil {
		return nil, fmt.Errorf("failed to write upgrade attempt: %w", err)
	}

	result := &UpgradeResult{Success: success, Level: level, Chance: uint8(chance), Roll: roll}
	if success {
		result.Level = targetLevel
	}
	return result, nil
}

// cooldown doubles per level above the first
func (e *Engine) cooldown(level uint8) time.Duration {
	return e.economy.UpgradeCooldownBase << (level - 1)
}

// scaleByLevel doubles the base cost per level above the first
func scaleByLevel(base uint64, level uint8) float64 {
	return float64(base * (1 << (level - 1)))
}
