package ledger

import (
	"context"

	"github.com/greenhollow/gh-game-core/internal/domain"
)

// AssetLedger defines the operations the game performs against the external
// NFT ledger service
//
//go:generate mockgen -source=ledger.go -destination=../mocks/ledger.go -package=mocks -mock_names=AssetLedger=MockAssetLedger,TokenLedger=MockTokenLedger
type AssetLedger interface {
	// GetAsset fetches a single asset by id
	GetAsset(ctx context.Context, id domain.AssetID) (*domain.Asset, error)
	// GetAssets fetches multiple assets by id
	GetAssets(ctx context.Context, ids []domain.AssetID) ([]*domain.Asset, error)
	// GetTemplate fetches an asset template by id
	GetTemplate(ctx context.Context, id domain.TemplateID) (*domain.Template, error)
	// UpdateMutableData replaces the mutable attributes of an asset
	UpdateMutableData(ctx context.Context, id domain.AssetID, data domain.AttributeMap) error
	// Transfer moves assets between accounts
	Transfer(ctx context.Context, from, to domain.OwnerName, ids []domain.AssetID, memo string) error
	// BurnAndMint atomically burns the given assets and mints one asset of
	// the result template to the owner, returning the new asset id
	BurnAndMint(ctx context.Context, owner domain.OwnerName, burn []domain.AssetID, result domain.TemplateID) (domain.AssetID, error)
	// HeadBlock returns the current head block number and its hash
	HeadBlock(ctx context.Context) (uint64, string, error)
}

// TokenLedger defines the operations the game performs against the external
// fungible token ledger service
type TokenLedger interface {
	// Transfer moves tokens between accounts
	Transfer(ctx context.Context, from, to domain.OwnerName, amount domain.TokenAmount, memo string) error
}
