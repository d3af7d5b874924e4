package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// MemoKind enumerates the actions an inbound transfer memo can select.
// The memo is parsed exactly once at the notification boundary and carried
// through the core as a typed command, never re-parsed.
type MemoKind string

const (
	// MemoStakeSlot registers the transferred asset(s) as staking slot items ("stake")
	MemoStakeSlot MemoKind = "stake_slot"
	// MemoStakeItems stakes the transferred assets into an existing slot ("stake:<slotAssetID>")
	MemoStakeItems MemoKind = "stake_items"
	// MemoBlend converts the transferred assets via a registered recipe ("blend:<recipeID>")
	MemoBlend MemoKind = "blend"
	// MemoEquip equips the transferred assets by slot type ("equip")
	MemoEquip MemoKind = "equip"
	// MemoDeposit credits an inbound token transfer to the sender's balance ("deposit")
	MemoDeposit MemoKind = "deposit"
)

// MemoCommand is the parsed form of an inbound transfer memo
type MemoCommand struct {
	Kind MemoKind
	// SlotAssetID is set for MemoStakeItems
	SlotAssetID AssetID
	// RecipeID is set for MemoBlend
	RecipeID uint64
}

// ParseAssetMemo parses the memo of an inbound NFT transfer.
// Returns ErrUnrecognizedMemo for anything outside the supported set.
func ParseAssetMemo(memo string) (MemoCommand, error) {
	memo = strings.TrimSpace(memo)

	tag, arg, hasArg := strings.Cut(memo, ":")
	switch tag {
	case "stake":
		if !hasArg {
			return MemoCommand{Kind: MemoStakeSlot}, nil
		}
		slot, err := strconv.ParseUint(strings.TrimSpace(arg), 10, 64)
		if err != nil {
			return MemoCommand{}, fmt.Errorf("%w: bad slot asset id %q", ErrUnrecognizedMemo, arg)
		}
		return MemoCommand{Kind: MemoStakeItems, SlotAssetID: AssetID(slot)}, nil
	case "blend":
		if !hasArg {
			return MemoCommand{}, fmt.Errorf("%w: blend memo missing recipe id", ErrUnrecognizedMemo)
		}
		recipe, err := strconv.ParseUint(strings.TrimSpace(arg), 10, 64)
		if err != nil {
			return MemoCommand{}, fmt.Errorf("%w: bad recipe id %q", ErrUnrecognizedMemo, arg)
		}
		return MemoCommand{Kind: MemoBlend, RecipeID: recipe}, nil
	case "equip":
		if hasArg {
			return MemoCommand{}, fmt.Errorf("%w: equip memo takes no argument", ErrUnrecognizedMemo)
		}
		return MemoCommand{Kind: MemoEquip}, nil
	default:
		return MemoCommand{}, fmt.Errorf("%w: %q", ErrUnrecognizedMemo, memo)
	}
}

// ParseTokenMemo parses the memo of an inbound fungible-token transfer
func ParseTokenMemo(memo string) (MemoCommand, error) {
	switch strings.TrimSpace(memo) {
	case "deposit":
		return MemoCommand{Kind: MemoDeposit}, nil
	default:
		return MemoCommand{}, fmt.Errorf("%w: %q", ErrUnrecognizedMemo, memo)
	}
}
