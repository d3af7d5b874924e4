package game

import (
	"context"
	"fmt"

	"github.com/greenhollow/gh-game-core/internal/domain"
	"github.com/greenhollow/gh-game-core/internal/store"
	"github.com/greenhollow/gh-game-core/internal/store/schema"
)

// recalcStats recomputes an owner's aggregated stats from their equipped
// items and persists them. Equipment mutators call this synchronously in the
// same transaction; stats are never recomputed lazily.
func (e *Engine) recalcStats(ctx context.Context, tx store.Store, owner domain.OwnerName) (domain.Stats, error) {
	slots, err := tx.ListEquipment(ctx, owner.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list equipment: %w", err)
	}

	stats := domain.Stats{}
	if len(slots) > 0 {
		ids := make([]domain.AssetID, 0, len(slots))
		for _, slot := range slots {
			ids = append(ids, domain.AssetID(slot.AssetID))
		}

		assets, err := e.assets.GetAssets(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch equipped assets: %w", err)
		}
		for _, asset := range assets {
			for _, name := range domain.StatNames {
				if v := asset.ImmutableData.Float(name); v > 0 {
					stats[name] += uint32(v)
				}
			}
		}
	}

	record, err := tx.GetOwnerStats(ctx, owner.String())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch owner stats: %w", err)
	}
	if record == nil {
		record = &schema.OwnerStats{Owner: owner.String()}
	}
	if err := record.SetStatValues(stats); err != nil {
		return nil, fmt.Errorf("failed to encode owner stats: %w", err)
	}
	if err := tx.SaveOwnerStats(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save owner stats: %w", err)
	}

	return stats, nil
}

// readStats loads an owner's persisted stats, empty when never computed
func (e *Engine) readStats(ctx context.Context, tx store.Store, owner domain.OwnerName) (domain.Stats, error) {
	record, err := tx.GetOwnerStats(ctx, owner.String())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch owner stats: %w", err)
	}
	if record == nil {
		return domain.Stats{}, nil
	}

	values, err := record.StatValues()
	if err != nil {
		return nil, fmt.Errorf("failed to decode owner stats: %w", err)
	}

	stats := domain.Stats{}
	for name, v := range values {
		stats[name] = v
	}
	return stats, nil
}

// StatsOf retrieves the aggregated stats of an owner
func (e *Engine) StatsOf(ctx context.Context, owner domain.OwnerName) (domain.Stats, error) {
	return e.readStats(ctx, e.store, owner)
}
