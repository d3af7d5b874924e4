package game

import (
	"context"
	"fmt"
	"sort"

	"github.com/greenhollow/gh-game-core/internal/domain"
	"github.com/greenhollow/gh-game-core/internal/store"
	"github.com/greenhollow/gh-game-core/internal/store/schema"
)

// AddBlend registers a blend recipe. Recipes with the same ingredient
// multiset are rejected regardless of ordering.
func (e *Engine) AddBlend(ctx context.Context, ingredients []domain.TemplateID, result domain.TemplateID) (int64, error) {
	if len(ingredients) == 0 {
		return 0, fmt.Errorf("recipe needs at least one ingredient")
	}

	sorted := make([]int32, 0, len(ingredients))
	for _, id := range ingredients {
		sorted = append(sorted, int32(id))
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var recipeID int64
	err := e.store.Atomically(ctx, func(tx store.Store) error {
		existing, err := tx.ListBlendRecipes(ctx)
		if err != nil {
			return fmt.Errorf("failed to list recipes: %w", err)
		}
		for _, recipe := range existing {
			other, err := recipe.Ingredients()
			if err != nil {
				return fmt.Errorf("failed to decode recipe %d: %w", recipe.ID, err)
			}
			if equalSorted(sorted, other) {
				return fmt.Errorf("%w: same ingredients as recipe %d", domain.ErrDuplicateRecipe, recipe.ID)
			}
		}

		recipe := &schema.BlendRecipe{ResultTemplate: int32(result)}
		if err := recipe.SetIngredients(sorted); err != nil {
			return fmt.Errorf("failed to encode ingredients: %w", err)
		}
		if err := tx.CreateBlendRecipe(ctx, recipe); err != nil {
			return fmt.Errorf("failed to create recipe: %w", err)
		}
		recipeID = recipe.ID
		return nil
	})
	if err != nil {
		return 0, err
	}
	return recipeID, nil
}

// Blend burns the transferred assets against a recipe and mints one asset of
// the result template to the owner. The asset templates must match the
// recipe's ingredient multiset exactly, duplicates counted.
func (e *Engine) Blend(ctx context.Context, owner domain.OwnerName, assetIDs []domain.AssetID, recipeID int64, txID string) (domain.AssetID, error) {
	if err := uniqueAssetIDs(assetIDs); err != nil {
		return 0, err
	}

	assets, err := e.custodyAssets(ctx, owner, assetIDs)
	if err != nil {
		return 0, err
	}

	var minted domain.AssetID
	err = e.store.Atomically(ctx, func(tx store.Store) error {
		if err := e.markOnce(ctx, tx, txID); err != nil {
			return err
		}

		recipe, err := tx.GetBlendRecipe(ctx, recipeID)
		if err != nil {
			return fmt.Errorf("failed to fetch recipe: %w", err)
		}
		if recipe == nil {
			return fmt.Errorf("%w: recipe %d", domain.ErrRecipeNotFound, recipeID)
		}

		required, err := recipe.Ingredients()
		if err != nil {
			return fmt.Errorf("failed to decode recipe %d: %w", recipeID, err)
		}

		supplied := make([]int32, 0, len(assets))
		for _, asset := range assets {
			supplied = append(supplied, int32(asset.TemplateID))
		}
		sort.Slice(supplied, func(i, j int) bool { return supplied[i] < supplied[j] })
		if !equalSorted(supplied, required) {
			return fmt.Errorf("%w: recipe %d", domain.ErrRecipeMismatch, recipeID)
		}

		// The ledger burns all ingredients and mints the result in one call,
		// so an abort on either side leaves nothing half-blended.
		minted, err = e.assets.BurnAndMint(ctx, owner, assetIDs, domain.TemplateID(recipe.ResultTemplate))
		if err != nil {
			return fmt.Errorf("failed to burn and mint: %w", err)
		}
		return nil
	})
	if applied, err := skipApplied(ctx, err, txID); applied || err != nil {
		return 0, err
	}

	e.publish(ctx, domain.EconomyEventBlend, owner, map[string]interface{}{
		"recipe_id":       recipeID,
		"burned_assets":   assetIDs,
		"minted_asset_id": minted,
	})
	return minted, nil
}

// Recipes retrieves all registered blend recipes
func (e *Engine) Recipes(ctx context.Context) ([]*schema.BlendRecipe, error) {
	return e.store.ListBlendRecipes(ctx)
}

// equalSorted compares two ascending int32 slices element-wise
func equalSorted(a, b []int32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
