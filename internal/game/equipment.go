package game

import (
	"context"
	"fmt"

	"github.com/greenhollow/gh-game-core/internal/domain"
	"github.com/greenhollow/gh-game-core/internal/store"
	"github.com/greenhollow/gh-game-core/internal/store/schema"
)

// Equip wears the transferred items, one per slot kind. An item displaces
// whatever occupied its slot; the displaced item is transferred back to the
// owner. Stats are recomputed in the same transaction.
func (e *Engine) Equip(ctx context.Context, owner domain.OwnerName, assetIDs []domain.AssetID, txID string) error {
	if err := uniqueAssetIDs(assetIDs); err != nil {
		return err
	}

	assets, err := e.custodyAssets(ctx, owner, assetIDs)
	if err != nil {
		return err
	}

	for _, asset := range assets {
		if asset.ImmutableData.String(domain.AttrType) == "" {
			return fmt.Errorf("asset %d has no slot kind attribute", asset.ID)
		}
	}

	err = e.store.Atomically(ctx, func(tx store.Store) error {
		if err := e.markOnce(ctx, tx, txID); err != nil {
			return err
		}

		var displaced []domain.AssetID
		for _, asset := range assets {
			slot := asset.ImmutableData.String(domain.AttrType)

			current, err := tx.GetEquipmentSlot(ctx, owner.String(), slot)
			if err != nil {
				return fmt.Errorf("failed to fetch equipment slot %q: %w", slot, err)
			}
			if current != nil && current.AssetID == uint64(asset.ID) {
				continue
			}
			if current == nil {
				current = &schema.EquipmentSlot{Owner: owner.String(), Slot: slot}
			} else {
				displaced = append(displaced, domain.AssetID(current.AssetID))
			}

			current.AssetID = uint64(asset.ID)
			if err := tx.SaveEquipmentSlot(ctx, current); err != nil {
				return fmt.Errorf("failed to save equipment slot %q: %w", slot, err)
			}
		}

		if _, err := e.recalcStats(ctx, tx, owner); err != nil {
			return err
		}

		// External call last so an abort leaves no partial state.
		if len(displaced) > 0 {
			if err := e.assets.Transfer(ctx, e.gameAccount, owner, displaced, "unequipped"); err != nil {
				return fmt.Errorf("failed to return displaced items: %w", err)
			}
		}
		return nil
	})
	if _, err = skipApplied(ctx, err, txID); err != nil {
		return err
	}
	return nil
}

// EquipmentOf retrieves the equipped items of an owner
func (e *Engine) EquipmentOf(ctx context.Context, owner domain.OwnerName) ([]*schema.EquipmentSlot, error) {
	return e.store.ListEquipment(ctx, owner.String())
}
