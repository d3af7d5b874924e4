package game

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	"github.com/greenhollow/gh-game-core/internal/ledger"
)

// Entropy draws a pseudo-random percentage in [0, 100) from a source the
// caller cannot influence within the same action.
//
//go:generate mockgen -source=entropy.go -destination=../mocks/entropy.go -package=mocks -mock_names=Entropy=MockEntropy
type Entropy interface {
	// Draw returns a value in [0, 100)
	Draw(ctx context.Context) (uint8, error)
}

// blockEntropy derives the draw from the asset ledger's current head block.
// The head advances outside the caller's control, so an upgrade attempt
// cannot re-roll its own outcome.
type blockEntropy struct {
	assets ledger.AssetLedger
}

// NewBlockEntropy creates an entropy source backed by the asset ledger head block
func NewBlockEntropy(assets ledger.AssetLedger) Entropy {
	return &blockEntropy{assets: assets}
}

// Draw hashes the head block number and hash into a percentage
func (b *blockEntropy) Draw(ctx context.Context) (uint8, error) {
	num, hash, err := b.assets.HeadBlock(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch head block: %w", err)
	}

	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], num)
	sum := sha256.Sum256(append(buf[:], hash...))

	return uint8(binary.BigEndian.Uint64(sum[:8]) % 100), nil
}
