package domain

import "errors"

var (
	// ErrNotOwner is returned when the acting player does not currently own
	// (or hold in game custody) a referenced asset
	ErrNotOwner = errors.New("not the owner of the asset")

	// ErrInsufficientBalance is returned when a resource or token debit exceeds the balance
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrInvalidRatio is returned when an exchange ratio is zero or negative
	ErrInvalidRatio = errors.New("invalid exchange ratio")

	// ErrNoRatioDefined is returned when swapping a resource with no exchange ratio
	ErrNoRatioDefined = errors.New("no exchange ratio defined for resource")

	// ErrRecipeNotFound is returned when a blend references an unknown recipe
	ErrRecipeNotFound = errors.New("blend recipe not found")

	// ErrDuplicateRecipe is returned when registering a recipe whose component
	// multiset already exists
	ErrDuplicateRecipe = errors.New("blend recipe already registered")

	// ErrRecipeMismatch is returned when the supplied assets do not exactly
	// match a recipe's component multiset
	ErrRecipeMismatch = errors.New("assets do not match blend recipe")

	// ErrAlreadyStaked is returned when a sub-item is already a member of an assembly
	ErrAlreadyStaked = errors.New("item is already staked")

	// ErrNotStaked is returned when an action requires an active staking assembly
	ErrNotStaked = errors.New("item is not staked")

	// ErrTooSoon is returned when an upgrade attempt falls inside the cooldown window
	ErrTooSoon = errors.New("upgrade cooldown has not elapsed")

	// ErrWrongLevel is returned when the requested target level is not current level + 1
	ErrWrongLevel = errors.New("wrong target level")

	// ErrNothingToClaim is returned when no production has accrued yet
	ErrNothingToClaim = errors.New("nothing to claim")

	// ErrProposalNotFound is returned when voting on an unknown proposal
	ErrProposalNotFound = errors.New("voting proposal not found")

	// ErrAlreadyVoted is returned when a player votes twice on the same proposal
	ErrAlreadyVoted = errors.New("player has already voted")

	// ErrProposalClosed is returned when voting on a finalized proposal
	ErrProposalClosed = errors.New("voting proposal is closed")

	// ErrNegativePoints is returned when a leaderboard decrement would drop below zero
	ErrNegativePoints = errors.New("leaderboard points would become negative")

	// ErrUnrecognizedMemo is returned when an inbound transfer memo selects no known action
	ErrUnrecognizedMemo = errors.New("unrecognized transfer memo")

	// ErrAssetNotFound is returned by ledger clients when an asset id does not exist
	ErrAssetNotFound = errors.New("asset not found")

	// ErrAssemblyFull is returned when staking more sub-items than the slot item allows
	ErrAssemblyFull = errors.New("staking assembly is full")

	// ErrDuplicateAsset is returned when a transfer lists the same asset twice
	ErrDuplicateAsset = errors.New("asset listed more than once")
)

// actionErrors are the rejection kinds an action can surface to its caller.
// Anything outside this set is an infrastructure failure.
var actionErrors = []error{
	ErrNotOwner,
	ErrInsufficientBalance,
	ErrInvalidRatio,
	ErrNoRatioDefined,
	ErrRecipeNotFound,
	ErrDuplicateRecipe,
	ErrRecipeMismatch,
	ErrAlreadyStaked,
	ErrNotStaked,
	ErrTooSoon,
	ErrWrongLevel,
	ErrNothingToClaim,
	ErrProposalNotFound,
	ErrAlreadyVoted,
	ErrProposalClosed,
	ErrNegativePoints,
	ErrUnrecognizedMemo,
	ErrAssetNotFound,
	ErrAssemblyFull,
	ErrDuplicateAsset,
}

// IsActionError reports whether err is a deterministic action rejection, as
// opposed to an infrastructure failure that may succeed on retry
func IsActionError(err error) bool {
	for _, kind := range actionErrors {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}
