package game_test

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenhollow/gh-game-core/internal/game"
	"github.com/greenhollow/gh-game-core/internal/mocks"
)

func TestBlockEntropy(t *testing.T) {
	ctx := context.Background()

	t.Run("draws deterministically from the head block", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		assets := mocks.NewMockAssetLedger(ctrl)
		assets.EXPECT().HeadBlock(gomock.Any()).
			Return(uint64(123456), "0a1b2c3d", nil).Times(2)

		entropy := game.NewBlockEntropy(assets)

		first, err := entropy.Draw(ctx)
		require.NoError(t, err)
		assert.Less(t, first, uint8(100))

		second, err := entropy.Draw(ctx)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("different blocks draw different values", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		assets := mocks.NewMockAssetLedger(ctrl)
		assets.EXPECT().HeadBlock(gomock.Any()).Return(uint64(1), "aa", nil)
		assets.EXPECT().HeadBlock(gomock.Any()).Return(uint64(2), "bb", nil)

		entropy := game.NewBlockEntropy(assets)

		first, err := entropy.Draw(ctx)
		require.NoError(t, err)
		second, err := entropy.Draw(ctx)
		require.NoError(t, err)

		assert.Less(t, first, uint8(100))
		assert.Less(t, second, uint8(100))
	})

	t.Run("propagates head block failures", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		assets := mocks.NewMockAssetLedger(ctrl)
		assets.EXPECT().HeadBlock(gomock.Any()).Return(uint64(0), "", assert.AnError)

		entropy := game.NewBlockEntropy(assets)

		_, err := entropy.Draw(ctx)
		require.Error(t, err)
	})
}
