package game_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenhollow/gh-game-core/internal/domain"
)

// upgradeFixture stakes tool 10 at farm 1 and funds alice with 1000 GAME
func upgradeFixture(t *testing.T) *fixture {
	ctx := context.Background()
	f := newFixture(t)

	tool := toolAsset(10, alice, 0.5)
	tool.ImmutableData[domain.AttrUpgradePercentage] = float64(30)
	farm := farmAsset(1, alice, 10, 2)
	farm.ImmutableData[domain.AttrUpgradePercentage] = float64(30)
	f.addAssets(farm, tool)

	require.NoError(t, f.engine.RegisterFarmingItems(ctx, alice, []domain.AssetID{1}, ""))
	require.NoError(t, f.engine.StakeItems(ctx, alice, 1, []domain.AssetID{10}, ""))
	require.NoError(t, f.engine.Deposit(ctx, alice, domain.TokenFromFloat(1000), ""))
	return f
}

func TestUpgradeItem(t *testing.T) {
	ctx := context.Background()

	t.Run("a winning roll raises the level", func(t *testing.T) {
		f := upgradeFixture(t)
		f.entropy.EXPECT().Draw(gomock.Any()).Return(uint8(29), nil)
		f.assets.EXPECT().UpdateMutableData(gomock.Any(), domain.AssetID(10), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ domain.AssetID, data domain.AttributeMap) error {
				assert.Equal(t, int64(2), data.Int(domain.AttrLevel))
				assert.Equal(t, f.now.Unix(), data.Int(domain.AttrLastUpgrade))
				return nil
			})

		result, err := f.engine.UpgradeItem(ctx, alice, 10, 2, 1)
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, uint8(2), result.Level)
		assert.Equal(t, uint8(30), result.Chance)

		// 100 GAME upgrade cost debited
		balance, err := f.engine.TokenBalance(ctx, alice)
		require.NoError(t, err)
		assert.Equal(t, domain.TokenFromFloat(900), balance)
	})

	t.Run("a losing roll consumes cost and cooldown", func(t *testing.T) {
		f := upgradeFixture(t)
		f.entropy.EXPECT().Draw(gomock.Any()).Return(uint8(30), nil)
		f.assets.EXPECT().UpdateMutableData(gomock.Any(), domain.AssetID(10), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ domain.AssetID, data domain.AttributeMap) error {
				assert.Nil(t, data[domain.AttrLevel])
				assert.Equal(t, f.now.Unix(), data.Int(domain.AttrLastUpgrade))
				return nil
			})

		result, err := f.engine.UpgradeItem(ctx, alice, 10, 2, 1)
		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, uint8(1), result.Level)

		balance, err := f.engine.TokenBalance(ctx, alice)
		require.NoError(t, err)
		assert.Equal(t, domain.TokenFromFloat(900), balance)
	})

	t.Run("luck raises the success chance", func(t *testing.T) {
		f := upgradeFixture(t)
		f.addAssets(wearableAsset(30, alice, "charm", map[string]float64{domain.StatLuck: 15}))
		require.NoError(t, f.engine.Equip(ctx, alice, []domain.AssetID{30}, ""))

		f.entropy.EXPECT().Draw(gomock.Any()).Return(uint8(44), nil)
		f.assets.EXPECT().UpdateMutableData(gomock.Any(), domain.AssetID(10), gomock.Any()).Return(nil)

		result, err := f.engine.UpgradeItem(ctx, alice, 10, 2, 1)
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, uint8(45), result.Chance)
	})

	t.Run("rejects a second attempt within the cooldown", func(t *testing.T) {
		f := upgradeFixture(t)
		f.entropy.EXPECT().Draw(gomock.Any()).Return(uint8(99), nil)
		f.assets.EXPECT().UpdateMutableData(gomock.Any(), domain.AssetID(10), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ domain.AssetID, data domain.AttributeMap) error {
				f.registry[10].MutableData = data
				return nil
			})

		_, err := f.engine.UpgradeItem(ctx, alice, 10, 2, 1)
		require.NoError(t, err)

		f.now = f.now.Add(30 * time.Minute)
		_, err = f.engine.UpgradeItem(ctx, alice, 10, 2, 1)
		assert.ErrorIs(t, err, domain.ErrTooSoon)

		f.now = f.now.Add(31 * time.Minute)
		f.entropy.EXPECT().Draw(gomock.Any()).Return(uint8(99), nil)
		f.assets.EXPECT().UpdateMutableData(gomock.Any(), domain.AssetID(10), gomock.Any()).Return(nil)
		_, err = f.engine.UpgradeItem(ctx, alice, 10, 2, 1)
		require.NoError(t, err)
	})

	t.Run("rejects a skipped level", func(t *testing.T) {
		f := upgradeFixture(t)

		_, err := f.engine.UpgradeItem(ctx, alice, 10, 3, 1)
		assert.ErrorIs(t, err, domain.ErrWrongLevel)
	})

	t.Run("rejects an unstaked item", func(t *testing.T) {
		f := upgradeFixture(t)
		f.addAssets(toolAsset(11, alice, 0.5))

		_, err := f.engine.UpgradeItem(ctx, alice, 11, 2, 1)
		assert.ErrorIs(t, err, domain.ErrNotStaked)
	})

	t.Run("rejects when the cost exceeds the balance", func(t *testing.T) {
		f := upgradeFixture(t)
		f.tokens.EXPECT().Transfer(gomock.Any(), testGameAccount, alice, domain.TokenFromFloat(950), "withdraw").Return(nil)
		_, err := f.engine.Withdraw(ctx, alice, domain.TokenFromFloat(950))
		require.NoError(t, err)

		_, err = f.engine.UpgradeItem(ctx, alice, 10, 2, 1)
		assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
	})
}

func TestUpgradeFarmingItem(t *testing.T) {
	ctx := context.Background()

	t.Run("a staked farming item upgrades at a discount", func(t *testing.T) {
		f := upgradeFixture(t)
		f.entropy.EXPECT().Draw(gomock.Any()).Return(uint8(10), nil)
		f.assets.EXPECT().UpdateMutableData(gomock.Any(), domain.AssetID(1), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ domain.AssetID, data domain.AttributeMap) error {
				assert.Equal(t, int64(2), data.Int(domain.AttrLevel))
				return nil
			})

		result, err := f.engine.UpgradeFarmingItem(ctx, alice, 1, true)
		require.NoError(t, err)
		assert.True(t, result.Success)

		// 200 GAME base cost, 20% staked discount
		balance, err := f.engine.TokenBalance(ctx, alice)
		require.NoError(t, err)
		assert.Equal(t, domain.TokenFromFloat(840), balance)
	})

	t.Run("rejects the staked flag on an unstaked item", func(t *testing.T) {
		f := newFixture(t)
		f.addAssets(farmAsset(2, alice, 10, 2))

		_, err := f.engine.UpgradeFarmingItem(ctx, alice, 2, true)
		assert.ErrorIs(t, err, domain.ErrNotStaked)
	})

	t.Run("rejects the unstaked flag on a staked item", func(t *testing.T) {
		f := upgradeFixture(t)

		_, err := f.engine.UpgradeFarmingItem(ctx, alice, 1, false)
		assert.ErrorIs(t, err, domain.ErrAlreadyStaked)
	})

	t.Run("an unstaked farming item pays full cost", func(t *testing.T) {
		f := upgradeFixture(t)
		farm := farmAsset(2, alice, 10, 2)
		farm.ImmutableData[domain.AttrUpgradePercentage] = float64(30)
		f.addAssets(farm)

		f.entropy.EXPECT().Draw(gomock.Any()).Return(uint8(10), nil)
		f.assets.EXPECT().UpdateMutableData(gomock.Any(), domain.AssetID(2), gomock.Any()).Return(nil)

		_, err := f.engine.UpgradeFarmingItem(ctx, alice, 2, false)
		require.NoError(t, err)

		balance, err := f.engine.TokenBalance(ctx, alice)
		require.NoError(t, err)
		assert.Equal(t, domain.TokenFromFloat(800), balance)
	})

	t.Run("rejects upgrading past the maximum level", func(t *testing.T) {
		f := upgradeFixture(t)
		f.registry[1].MutableData[domain.AttrLevel] = float64(10)

		_, err := f.engine.UpgradeFarmingItem(ctx, alice, 1, true)
		assert.ErrorIs(t, err, domain.ErrWrongLevel)
	})
}
