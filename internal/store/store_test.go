package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/greenhollow/gh-game-core/internal/domain"
	"github.com/greenhollow/gh-game-core/internal/store/schema"
)

// =============================================================================
// Test Data Builders
// =============================================================================

// buildTestAssembly creates a staked assembly record for tests
func buildTestAssembly(owner string, farmingItemID uint64, stakedItems ...uint64) *schema.StakedAssembly {
	items, _ := json.Marshal(stakedItems)
	return &schema.StakedAssembly{
		Owner:         owner,
		FarmingItemID: farmingItemID,
		StakedItems:   datatypes.JSON(items),
		LastClaim:     time.Now().UTC().Truncate(time.Second),
	}
}

// buildTestRecipe creates a blend recipe record for tests
func buildTestRecipe(result int32, ingredients ...int32) *schema.BlendRecipe {
	raw, _ := json.Marshal(ingredients)
	return &schema.BlendRecipe{
		IngredientTemplates: datatypes.JSON(raw),
		ResultTemplate:      result,
	}
}

// =============================================================================
// Test: Resource balances
// =============================================================================

func testResourceBalances(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("balance starts at zero", func(t *testing.T) {
		amount, err := store.GetResourceBalance(ctx, "alice", "wood")
		require.NoError(t, err)
		assert.Equal(t, uint64(0), amount)
	})

	t.Run("add accumulates", func(t *testing.T) {
		require.NoError(t, store.AddResource(ctx, "alice", "wood", 100))
		require.NoError(t, store.AddResource(ctx, "alice", "wood", 50))

		amount, err := store.GetResourceBalance(ctx, "alice", "wood")
		require.NoError(t, err)
		assert.Equal(t, uint64(150), amount)
	})

	t.Run("spend debits", func(t *testing.T) {
		require.NoError(t, store.AddResource(ctx, "bob", "stone", 30))
		require.NoError(t, store.SpendResource(ctx, "bob", "stone", 20))

		amount, err := store.GetResourceBalance(ctx, "bob", "stone")
		require.NoError(t, err)
		assert.Equal(t, uint64(10), amount)
	})

	t.Run("spend more than held fails", func(t *testing.T) {
		require.NoError(t, store.AddResource(ctx, "carol", "wood", 5))

		err := store.SpendResource(ctx, "carol", "wood", 6)
		assert.ErrorIs(t, err, domain.ErrInsufficientBalance)

		// Balance unchanged
		amount, err := store.GetResourceBalance(ctx, "carol", "wood")
		require.NoError(t, err)
		assert.Equal(t, uint64(5), amount)
	})

	t.Run("spend from empty balance fails", func(t *testing.T) {
		err := store.SpendResource(ctx, "nobody", "wood", 1)
		assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
	})

	t.Run("list returns all resources of owner", func(t *testing.T) {
		require.NoError(t, store.AddResource(ctx, "dave", "wood", 1))
		require.NoError(t, store.AddResource(ctx, "dave", "stone", 2))
		require.NoError(t, store.AddResource(ctx, "eve", "wood", 3))

		balances, err := store.ListResourceBalances(ctx, "dave")
		require.NoError(t, err)
		require.Len(t, balances, 2)
		assert.Equal(t, "stone", balances[0].Resource)
		assert.Equal(t, "wood", balances[1].Resource)
	})
}

// =============================================================================
// Test: Token balances
// =============================================================================

func testTokenBalances(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("balance starts at zero", func(t *testing.T) {
		amount, err := store.GetTokenBalance(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, int64(0), amount)
	})

	t.Run("credit and debit", func(t *testing.T) {
		require.NoError(t, store.CreditTokens(ctx, "alice", 40000))
		require.NoError(t, store.CreditTokens(ctx, "alice", 10000))
		require.NoError(t, store.DebitTokens(ctx, "alice", 25000))

		amount, err := store.GetTokenBalance(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, int64(25000), amount)
	})

	t.Run("overdraft fails", func(t *testing.T) {
		require.NoError(t, store.CreditTokens(ctx, "bob", 100))

		err := store.DebitTokens(ctx, "bob", 101)
		assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
	})
}

// =============================================================================
// Test: Staked assemblies
// =============================================================================

func testAssemblies(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("create and get", func(t *testing.T) {
		assembly := buildTestAssembly("alice", 1001, 2001, 2002)
		require.NoError(t, store.CreateAssembly(ctx, assembly))
		require.NotZero(t, assembly.ID)

		got, err := store.GetAssembly(ctx, 1001)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "alice", got.Owner)

		var items []uint64
		require.NoError(t, json.Unmarshal(got.StakedItems, &items))
		assert.Equal(t, []uint64{2001, 2002}, items)
	})

	t.Run("get missing returns nil", func(t *testing.T) {
		got, err := store.GetAssembly(ctx, 999999)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("update staked items and last claim", func(t *testing.T) {
		assembly := buildTestAssembly("bob", 1002)
		require.NoError(t, store.CreateAssembly(ctx, assembly))

		items, _ := json.Marshal([]uint64{3001})
		assembly.StakedItems = datatypes.JSON(items)
		assembly.LastClaim = assembly.LastClaim.Add(time.Hour)
		require.NoError(t, store.UpdateAssembly(ctx, assembly))

		got, err := store.GetAssembly(ctx, 1002)
		require.NoError(t, err)
		require.NotNil(t, got)

		var updated []uint64
		require.NoError(t, json.Unmarshal(got.StakedItems, &updated))
		assert.Equal(t, []uint64{3001}, updated)
	})

	t.Run("list by owner", func(t *testing.T) {
		require.NoError(t, store.CreateAssembly(ctx, buildTestAssembly("carol", 1003)))
		require.NoError(t, store.CreateAssembly(ctx, buildTestAssembly("carol", 1004)))
		require.NoError(t, store.CreateAssembly(ctx, buildTestAssembly("dave", 1005)))

		assemblies, err := store.ListAssemblies(ctx, "carol")
		require.NoError(t, err)
		assert.Len(t, assemblies, 2)
	})

	t.Run("list all paginates by id", func(t *testing.T) {
		page, err := store.ListAllAssemblies(ctx, 0, 2)
		require.NoError(t, err)
		require.Len(t, page, 2)

		next, err := store.ListAllAssemblies(ctx, page[1].ID, 100)
		require.NoError(t, err)
		for _, a := range next {
			assert.Greater(t, a.ID, page[1].ID)
		}
	})
}

// =============================================================================
// Test: Blend recipes
// =============================================================================

func testBlendRecipes(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("create fills id and get round-trips", func(t *testing.T) {
		recipe := buildTestRecipe(500, 100, 100, 101)
		require.NoError(t, store.CreateBlendRecipe(ctx, recipe))
		require.NotZero(t, recipe.ID)

		got, err := store.GetBlendRecipe(ctx, recipe.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, int32(500), got.ResultTemplate)

		var ingredients []int32
		require.NoError(t, json.Unmarshal(got.IngredientTemplates, &ingredients))
		assert.Equal(t, []int32{100, 100, 101}, ingredients)
	})

	t.Run("get missing returns nil", func(t *testing.T) {
		got, err := store.GetBlendRecipe(ctx, 999999)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("list returns all", func(t *testing.T) {
		require.NoError(t, store.CreateBlendRecipe(ctx, buildTestRecipe(501, 102)))
		recipes, err := store.ListBlendRecipes(ctx)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(recipes), 2)
	})
}

// =============================================================================
// Test: Exchange ratios
// =============================================================================

func testExchangeRatios(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("missing ratio returns nil", func(t *testing.T) {
		ratio, err := store.GetExchangeRatio(ctx, "wood")
		require.NoError(t, err)
		assert.Nil(t, ratio)
	})

	t.Run("set and get", func(t *testing.T) {
		require.NoError(t, store.SetExchangeRatio(ctx, "wood", 25))

		ratio, err := store.GetExchangeRatio(ctx, "wood")
		require.NoError(t, err)
		require.NotNil(t, ratio)
		assert.Equal(t, 25.0, ratio.Ratio)
	})

	t.Run("set overwrites existing", func(t *testing.T) {
		require.NoError(t, store.SetExchangeRatio(ctx, "wood", 40))

		ratio, err := store.GetExchangeRatio(ctx, "wood")
		require.NoError(t, err)
		require.NotNil(t, ratio)
		assert.Equal(t, 40.0, ratio.Ratio)
	})
}

// =============================================================================
// Test: Voting proposals
// =============================================================================

func testProposals(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("create, vote and update", func(t *testing.T) {
		proposal := &schema.VotingProposal{
			Resource:      "wood",
			ProposedRatio: 30,
			Status:        schema.ProposalStatusOpen,
			ExpiresAt:     time.Now().Add(24 * time.Hour),
		}
		require.NoError(t, store.CreateProposal(ctx, proposal))
		require.NotZero(t, proposal.ID)

		voted, err := store.HasVoted(ctx, proposal.ID, "alice")
		require.NoError(t, err)
		assert.False(t, voted)

		require.NoError(t, store.CreateVote(ctx, &schema.ProposalVote{
			ProposalID: proposal.ID,
			Voter:      "alice",
			Weight:     50000,
		}))

		voted, err = store.HasVoted(ctx, proposal.ID, "alice")
		require.NoError(t, err)
		assert.True(t, voted)

		proposal.TotalWeight += 50000
		proposal.Status = schema.ProposalStatusApplied
		require.NoError(t, store.UpdateProposal(ctx, proposal))

		got, err := store.GetProposal(ctx, proposal.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, int64(50000), got.TotalWeight)
		assert.Equal(t, schema.ProposalStatusApplied, got.Status)
	})

	t.Run("get missing returns nil", func(t *testing.T) {
		got, err := store.GetProposal(ctx, 999999)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("expired open proposals listed", func(t *testing.T) {
		expired := &schema.VotingProposal{
			Resource:      "stone",
			ProposedRatio: 10,
			Status:        schema.ProposalStatusOpen,
			ExpiresAt:     time.Now().Add(-time.Hour),
		}
		require.NoError(t, store.CreateProposal(ctx, expired))

		open := &schema.VotingProposal{
			Resource:      "stone",
			ProposedRatio: 12,
			Status:        schema.ProposalStatusOpen,
			ExpiresAt:     time.Now().Add(time.Hour),
		}
		require.NoError(t, store.CreateProposal(ctx, open))

		proposals, err := store.ListExpiredOpenProposals(ctx, time.Now())
		require.NoError(t, err)
		require.Len(t, proposals, 1)
		assert.Equal(t, expired.ID, proposals[0].ID)
	})
}

// =============================================================================
// Test: Equipment
// =============================================================================

func testEquipment(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("save and get slot", func(t *testing.T) {
		require.NoError(t, store.SaveEquipmentSlot(ctx, &schema.EquipmentSlot{
			Owner:   "alice",
			Slot:    "hat",
			AssetID: 4001,
		}))

		slot, err := store.GetEquipmentSlot(ctx, "alice", "hat")
		require.NoError(t, err)
		require.NotNil(t, slot)
		assert.Equal(t, uint64(4001), slot.AssetID)
	})

	t.Run("save replaces occupied slot", func(t *testing.T) {
		require.NoError(t, store.SaveEquipmentSlot(ctx, &schema.EquipmentSlot{
			Owner:   "alice",
			Slot:    "hat",
			AssetID: 4002,
		}))

		slot, err := store.GetEquipmentSlot(ctx, "alice", "hat")
		require.NoError(t, err)
		require.NotNil(t, slot)
		assert.Equal(t, uint64(4002), slot.AssetID)
	})

	t.Run("empty slot returns nil", func(t *testing.T) {
		slot, err := store.GetEquipmentSlot(ctx, "alice", "boots")
		require.NoError(t, err)
		assert.Nil(t, slot)
	})

	t.Run("list equipment of owner", func(t *testing.T) {
		require.NoError(t, store.SaveEquipmentSlot(ctx, &schema.EquipmentSlot{
			Owner:   "alice",
			Slot:    "tool",
			AssetID: 4003,
		}))

		slots, err := store.ListEquipment(ctx, "alice")
		require.NoError(t, err)
		assert.Len(t, slots, 2)
	})
}

// =============================================================================
// Test: Owner stats
// =============================================================================

func testOwnerStats(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("missing stats returns nil", func(t *testing.T) {
		stats, err := store.GetOwnerStats(ctx, "alice")
		require.NoError(t, err)
		assert.Nil(t, stats)
	})

	t.Run("save and update", func(t *testing.T) {
		raw, _ := json.Marshal(domain.Stats{domain.StatStrength: 10, domain.StatLuck: 5})
		require.NoError(t, store.SaveOwnerStats(ctx, &schema.OwnerStats{
			Owner: "alice",
			Stats: datatypes.JSON(raw),
		}))

		raw, _ = json.Marshal(domain.Stats{domain.StatStrength: 20})
		require.NoError(t, store.SaveOwnerStats(ctx, &schema.OwnerStats{
			Owner: "alice",
			Stats: datatypes.JSON(raw),
		}))

		got, err := store.GetOwnerStats(ctx, "alice")
		require.NoError(t, err)
		require.NotNil(t, got)

		var stats domain.Stats
		require.NoError(t, json.Unmarshal(got.Stats, &stats))
		assert.Equal(t, uint32(20), stats[domain.StatStrength])
		assert.NotContains(t, stats, domain.StatLuck)
	})
}

// =============================================================================
// Test: Leaderboard
// =============================================================================

func testLeaderboard(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("increment creates entry", func(t *testing.T) {
		require.NoError(t, store.AddLeaderboardPoints(ctx, "wood", "alice", 100))
		require.NoError(t, store.AddLeaderboardPoints(ctx, "wood", "alice", 50))

		entry, err := store.GetLeaderboardEntry(ctx, "wood", "alice")
		require.NoError(t, err)
		require.NotNil(t, entry)
		assert.Equal(t, uint64(150), entry.Points)
	})

	t.Run("decrement below zero fails", func(t *testing.T) {
		require.NoError(t, store.AddLeaderboardPoints(ctx, "wood", "bob", 10))

		err := store.AddLeaderboardPoints(ctx, "wood", "bob", -11)
		assert.ErrorIs(t, err, domain.ErrNegativePoints)

		// Points unchanged after the failed decrement
		entry, err := store.GetLeaderboardEntry(ctx, "wood", "bob")
		require.NoError(t, err)
		require.NotNil(t, entry)
		assert.Equal(t, uint64(10), entry.Points)

		require.NoError(t, store.AddLeaderboardPoints(ctx, "wood", "bob", -10))
		entry, err = store.GetLeaderboardEntry(ctx, "wood", "bob")
		require.NoError(t, err)
		assert.Equal(t, uint64(0), entry.Points)
	})

	t.Run("set overwrites", func(t *testing.T) {
		require.NoError(t, store.SetLeaderboardPoints(ctx, "miningpwr", "carol", 777))
		require.NoError(t, store.SetLeaderboardPoints(ctx, "miningpwr", "carol", 888))

		entry, err := store.GetLeaderboardEntry(ctx, "miningpwr", "carol")
		require.NoError(t, err)
		require.NotNil(t, entry)
		assert.Equal(t, uint64(888), entry.Points)
	})

	t.Run("top orders by points descending", func(t *testing.T) {
		require.NoError(t, store.SetLeaderboardPoints(ctx, "stone", "alice", 300))
		require.NoError(t, store.SetLeaderboardPoints(ctx, "stone", "bob", 500))
		require.NoError(t, store.SetLeaderboardPoints(ctx, "stone", "carol", 100))

		top, err := store.TopLeaderboard(ctx, "stone", 2)
		require.NoError(t, err)
		require.Len(t, top, 2)
		assert.Equal(t, "bob", top[0].Owner)
		assert.Equal(t, "alice", top[1].Owner)
	})
}

// =============================================================================
// Test: Processed transfers
// =============================================================================

func testProcessedTransfers(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("first mark wins, second is a no-op", func(t *testing.T) {
		fresh, err := store.MarkTransferProcessed(ctx, "tx-abc")
		require.NoError(t, err)
		assert.True(t, fresh)

		fresh, err = store.MarkTransferProcessed(ctx, "tx-abc")
		require.NoError(t, err)
		assert.False(t, fresh)
	})
}

// =============================================================================
// Test: Atomically
// =============================================================================

func testAtomically(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("commit on nil error", func(t *testing.T) {
		err := store.Atomically(ctx, func(tx Store) error {
			if err := tx.AddResource(ctx, "alice", "wood", 10); err != nil {
				return err
			}
			return tx.CreditTokens(ctx, "alice", 10000)
		})
		require.NoError(t, err)

		amount, err := store.GetResourceBalance(ctx, "alice", "wood")
		require.NoError(t, err)
		assert.Equal(t, uint64(10), amount)
	})

	t.Run("rollback on error", func(t *testing.T) {
		err := store.Atomically(ctx, func(tx Store) error {
			if err := tx.AddResource(ctx, "bob", "wood", 10); err != nil {
				return err
			}
			// A failed debit aborts the whole transaction
			return tx.DebitTokens(ctx, "bob", 1)
		})
		assert.ErrorIs(t, err, domain.ErrInsufficientBalance)

		amount, err := store.GetResourceBalance(ctx, "bob", "wood")
		require.NoError(t, err)
		assert.Equal(t, uint64(0), amount)
	})
}

// RunStoreTests runs the full store test suite against an implementation
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store)
	}{
		{"ResourceBalances", testResourceBalances},
		{"TokenBalances", testTokenBalances},
		{"Assemblies", testAssemblies},
		{"BlendRecipes", testBlendRecipes},
		{"ExchangeRatios", testExchangeRatios},
		{"Proposals", testProposals},
		{"Equipment", testEquipment},
		{"OwnerStats", testOwnerStats},
		{"Leaderboard", testLeaderboard},
		{"ProcessedTransfers", testProcessedTransfers},
		{"Atomically", testAtomically},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := initDB(t)
			defer cleanupDB(t)
			tt.fn(t, store)
		})
	}
}
