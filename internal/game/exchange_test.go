package game_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenhollow/gh-game-core/internal/domain"
	"github.com/greenhollow/gh-game-core/internal/store/schema"
)

func TestSetRatio(t *testing.T) {
	ctx := context.Background()

	t.Run("sets and replaces a ratio", func(t *testing.T) {
		f := newFixture(t)

		require.NoError(t, f.engine.SetRatio(ctx, "wood", 25))
		require.NoError(t, f.engine.SetRatio(ctx, "wood", 50))

		ratio, err := f.engine.Ratio(ctx, "wood")
		require.NoError(t, err)
		assert.Equal(t, 50.0, ratio.Ratio)
	})

	t.Run("rejects a non-positive ratio", func(t *testing.T) {
		f := newFixture(t)

		assert.ErrorIs(t, f.engine.SetRatio(ctx, "wood", 0), domain.ErrInvalidRatio)
		assert.ErrorIs(t, f.engine.SetRatio(ctx, "wood", -3), domain.ErrInvalidRatio)
	})
}

func TestSwap(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) *fixture {
		f := newFixture(t)
		require.NoError(t, f.engine.SetRatio(ctx, "wood", 25))
		require.NoError(t, f.store.AddResource(ctx, alice.String(), "wood", 100))
		return f
	}

	t.Run("swaps 100 wood at ratio 25 into 4 tokens", func(t *testing.T) {
		f := setup(t)

		out, err := f.engine.Swap(ctx, alice, "wood", 100)
		require.NoError(t, err)
		assert.Equal(t, "4.0000 GAME", out.String())

		wood, err := f.store.GetResourceBalance(ctx, alice.String(), "wood")
		require.NoError(t, err)
		assert.Zero(t, wood)

		balance, err := f.engine.TokenBalance(ctx, alice)
		require.NoError(t, err)
		assert.Equal(t, domain.TokenFromFloat(4), balance)
	})

	t.Run("rejects a swap above the balance", func(t *testing.T) {
		f := setup(t)

		_, err := f.engine.Swap(ctx, alice, "wood", 101)
		assert.ErrorIs(t, err, domain.ErrInsufficientBalance)

		// nothing debited, nothing credited
		wood, err := f.store.GetResourceBalance(ctx, alice.String(), "wood")
		require.NoError(t, err)
		assert.Equal(t, uint64(100), wood)
		balance, err := f.engine.TokenBalance(ctx, alice)
		require.NoError(t, err)
		assert.Zero(t, balance)
	})

	t.Run("rejects a resource without a ratio", func(t *testing.T) {
		f := setup(t)
		require.NoError(t, f.store.AddResource(ctx, alice.String(), "stone", 50))

		_, err := f.engine.Swap(ctx, alice, "stone", 50)
		assert.ErrorIs(t, err, domain.ErrNoRatioDefined)
	})
}

func TestDeposit(t *testing.T) {
	ctx := context.Background()

	t.Run("credits the sender", func(t *testing.T) {
		f := newFixture(t)

		require.NoError(t, f.engine.Deposit(ctx, alice, domain.TokenFromFloat(10), ""))

		balance, err := f.engine.TokenBalance(ctx, alice)
		require.NoError(t, err)
		assert.Equal(t, domain.TokenFromFloat(10), balance)
	})

	t.Run("rejects a zero amount", func(t *testing.T) {
		f := newFixture(t)

		require.Error(t, f.engine.Deposit(ctx, alice, 0, ""))
	})

	t.Run("a redelivered transaction credits once", func(t *testing.T) {
		f := newFixture(t)

		require.NoError(t, f.engine.Deposit(ctx, alice, domain.TokenFromFloat(10), "tx-1"))
		require.NoError(t, f.engine.Deposit(ctx, alice, domain.TokenFromFloat(10), "tx-1"))

		balance, err := f.engine.TokenBalance(ctx, alice)
		require.NoError(t, err)
		assert.Equal(t, domain.TokenFromFloat(10), balance)
	})
}

func TestWithdraw(t *testing.T) {
	ctx := context.Background()

	t.Run("debits the balance and transfers tokens out", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.engine.Deposit(ctx, alice, domain.TokenFromFloat(10), ""))
		f.tokens.EXPECT().Transfer(gomock.Any(), testGameAccount, alice, domain.TokenFromFloat(6), "withdraw").Return(nil)

		withdrawn, err := f.engine.Withdraw(ctx, alice, domain.TokenFromFloat(6))
		require.NoError(t, err)
		assert.Equal(t, domain.TokenFromFloat(6), withdrawn)

		balance, err := f.engine.TokenBalance(ctx, alice)
		require.NoError(t, err)
		assert.Equal(t, domain.TokenFromFloat(4), balance)
	})

	t.Run("a zero amount withdraws the full balance", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.engine.Deposit(ctx, alice, domain.TokenFromFloat(10), ""))
		f.tokens.EXPECT().Transfer(gomock.Any(), testGameAccount, alice, domain.TokenFromFloat(10), "withdraw").Return(nil)

		withdrawn, err := f.engine.Withdraw(ctx, alice, 0)
		require.NoError(t, err)
		assert.Equal(t, domain.TokenFromFloat(10), withdrawn)

		balance, err := f.engine.TokenBalance(ctx, alice)
		require.NoError(t, err)
		assert.Zero(t, balance)
	})

	t.Run("a failed transfer rolls the debit back", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.engine.Deposit(ctx, alice, domain.TokenFromFloat(10), ""))
		f.tokens.EXPECT().Transfer(gomock.Any(), testGameAccount, alice, gomock.Any(), "withdraw").Return(assert.AnError)

		_, err := f.engine.Withdraw(ctx, alice, domain.TokenFromFloat(6))
		require.Error(t, err)

		balance, err := f.engine.TokenBalance(ctx, alice)
		require.NoError(t, err)
		assert.Equal(t, domain.TokenFromFloat(10), balance)
	})

	t.Run("rejects withdrawing an empty balance", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.engine.Withdraw(ctx, alice, 0)
		assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
	})
}

func TestVoting(t *testing.T) {
	ctx := context.Background()

	// quorum is 100 GAME
	setup := func(t *testing.T) (*fixture, int64) {
		f := newFixture(t)
		require.NoError(t, f.engine.SetRatio(ctx, "wood", 25))
		proposalID, err := f.engine.CreateVoting(ctx, alice, "wood", 20)
		require.NoError(t, err)
		return f, proposalID
	}

	t.Run("rejects an invalid proposed ratio", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.engine.CreateVoting(ctx, alice, "wood", 0)
		assert.ErrorIs(t, err, domain.ErrInvalidRatio)
	})

	t.Run("accumulates vote weight without finalizing below quorum", func(t *testing.T) {
		f, proposalID := setup(t)
		require.NoError(t, f.engine.Deposit(ctx, alice, domain.TokenFromFloat(60), ""))

		result, err := f.engine.Vote(ctx, alice, proposalID)
		require.NoError(t, err)
		assert.False(t, result.Finalized)
		assert.Equal(t, domain.TokenFromFloat(60), result.TotalWeight)

		ratio, err := f.engine.Ratio(ctx, "wood")
		require.NoError(t, err)
		assert.Equal(t, 25.0, ratio.Ratio)
	})

	t.Run("the quorum crossing vote finalizes the proposal", func(t *testing.T) {
		f, proposalID := setup(t)
		require.NoError(t, f.engine.Deposit(ctx, alice, domain.TokenFromFloat(60), ""))
		require.NoError(t, f.engine.Deposit(ctx, "bob", domain.TokenFromFloat(40), ""))

		first, err := f.engine.Vote(ctx, alice, proposalID)
		require.NoError(t, err)
		assert.False(t, first.Finalized)

		second, err := f.engine.Vote(ctx, "bob", proposalID)
		require.NoError(t, err)
		assert.True(t, second.Finalized)
		assert.Equal(t, domain.TokenFromFloat(100), second.TotalWeight)

		ratio, err := f.engine.Ratio(ctx, "wood")
		require.NoError(t, err)
		assert.Equal(t, 20.0, ratio.Ratio)

		proposal, err := f.engine.Proposal(ctx, proposalID)
		require.NoError(t, err)
		assert.Equal(t, schema.ProposalStatusApplied, proposal.Status)
	})

	t.Run("rejects a vote on a finalized proposal", func(t *testing.T) {
		f, proposalID := setup(t)
		require.NoError(t, f.engine.Deposit(ctx, alice, domain.TokenFromFloat(150), ""))

		result, err := f.engine.Vote(ctx, alice, proposalID)
		require.NoError(t, err)
		assert.True(t, result.Finalized)

		require.NoError(t, f.engine.Deposit(ctx, "bob", domain.TokenFromFloat(150), ""))
		_, err = f.engine.Vote(ctx, "bob", proposalID)
		assert.ErrorIs(t, err, domain.ErrProposalClosed)
	})

	t.Run("rejects a second vote from the same voter", func(t *testing.T) {
		f, proposalID := setup(t)
		require.NoError(t, f.engine.Deposit(ctx, alice, domain.TokenFromFloat(10), ""))

		_, err := f.engine.Vote(ctx, alice, proposalID)
		require.NoError(t, err)

		_, err = f.engine.Vote(ctx, alice, proposalID)
		assert.ErrorIs(t, err, domain.ErrAlreadyVoted)
	})

	t.Run("rejects a vote on an unknown proposal", func(t *testing.T) {
		f, _ := setup(t)

		_, err := f.engine.Vote(ctx, alice, 999)
		assert.ErrorIs(t, err, domain.ErrProposalNotFound)
	})

	t.Run("rejects a vote after expiry and the sweeper closes it", func(t *testing.T) {
		f, proposalID := setup(t)
		require.NoError(t, f.engine.Deposit(ctx, alice, domain.TokenFromFloat(10), ""))

		f.now = f.now.Add(25 * time.Hour)
		_, err := f.engine.Vote(ctx, alice, proposalID)
		assert.ErrorIs(t, err, domain.ErrProposalClosed)

		expired, err := f.engine.ExpireProposals(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, expired)

		proposal, err := f.engine.Proposal(ctx, proposalID)
		require.NoError(t, err)
		assert.Equal(t, schema.ProposalStatusExpired, proposal.Status)

		// the sweep is idempotent
		expired, err = f.engine.ExpireProposals(ctx)
		require.NoError(t, err)
		assert.Zero(t, expired)
	})
}
