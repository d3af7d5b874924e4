package game_test

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenhollow/gh-game-core/internal/domain"
)

func TestEquip(t *testing.T) {
	ctx := context.Background()

	t.Run("equips items and aggregates stats", func(t *testing.T) {
		f := newFixture(t)
		f.addAssets(
			wearableAsset(30, alice, "hat", map[string]float64{domain.StatStrength: 10, domain.StatLuck: 5}),
			wearableAsset(31, alice, "tool", map[string]float64{domain.StatStrength: 20}),
		)

		require.NoError(t, f.engine.Equip(ctx, alice, []domain.AssetID{30, 31}, ""))

		equipment, err := f.engine.EquipmentOf(ctx, alice)
		require.NoError(t, err)
		assert.Len(t, equipment, 2)

		stats, err := f.engine.StatsOf(ctx, alice)
		require.NoError(t, err)
		assert.Equal(t, uint32(30), stats.Get(domain.StatStrength))
		assert.Equal(t, uint32(5), stats.Get(domain.StatLuck))
	})

	t.Run("a displaced item is returned and stats recomputed", func(t *testing.T) {
		f := newFixture(t)
		f.addAssets(
			wearableAsset(30, alice, "hat", map[string]float64{domain.StatStrength: 10}),
			wearableAsset(32, alice, "hat", map[string]float64{domain.StatStrength: 25}),
		)
		require.NoError(t, f.engine.Equip(ctx, alice, []domain.AssetID{30}, ""))

		f.assets.EXPECT().
			Transfer(gomock.Any(), testGameAccount, alice, []domain.AssetID{30}, "unequipped").
			Return(nil)
		require.NoError(t, f.engine.Equip(ctx, alice, []domain.AssetID{32}, ""))

		equipment, err := f.engine.EquipmentOf(ctx, alice)
		require.NoError(t, err)
		require.Len(t, equipment, 1)
		assert.Equal(t, uint64(32), equipment[0].AssetID)

		stats, err := f.engine.StatsOf(ctx, alice)
		require.NoError(t, err)
		assert.Equal(t, uint32(25), stats.Get(domain.StatStrength))
	})

	t.Run("re-equipping the same item is a no-op", func(t *testing.T) {
		f := newFixture(t)
		f.addAssets(wearableAsset(30, alice, "hat", map[string]float64{domain.StatStrength: 10}))

		require.NoError(t, f.engine.Equip(ctx, alice, []domain.AssetID{30}, ""))
		require.NoError(t, f.engine.Equip(ctx, alice, []domain.AssetID{30}, ""))

		equipment, err := f.engine.EquipmentOf(ctx, alice)
		require.NoError(t, err)
		assert.Len(t, equipment, 1)
	})

	t.Run("rejects an item without a slot kind", func(t *testing.T) {
		f := newFixture(t)
		f.addAssets(toolAsset(10, alice, 0.5))

		err := f.engine.Equip(ctx, alice, []domain.AssetID{10}, "")
		assert.ErrorContains(t, err, "no slot kind")
	})

	t.Run("a failed return transfer rolls the equip back", func(t *testing.T) {
		f := newFixture(t)
		f.addAssets(
			wearableAsset(30, alice, "hat", map[string]float64{domain.StatStrength: 10}),
			wearableAsset(32, alice, "hat", map[string]float64{domain.StatStrength: 25}),
		)
		require.NoError(t, f.engine.Equip(ctx, alice, []domain.AssetID{30}, ""))

		f.assets.EXPECT().
			Transfer(gomock.Any(), testGameAccount, alice, []domain.AssetID{30}, "unequipped").
			Return(assert.AnError)
		require.Error(t, f.engine.Equip(ctx, alice, []domain.AssetID{32}, ""))

		equipment, err := f.engine.EquipmentOf(ctx, alice)
		require.NoError(t, err)
		require.Len(t, equipment, 1)
		assert.Equal(t, uint64(30), equipment[0].AssetID)

		stats, err := f.engine.StatsOf(ctx, alice)
		require.NoError(t, err)
		assert.Equal(t, uint32(10), stats.Get(domain.StatStrength))
	})
}
