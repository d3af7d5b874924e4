package game

import (
	"context"
	"fmt"

	"github.com/greenhollow/gh-game-core/internal/domain"
	"github.com/greenhollow/gh-game-core/internal/store"
	"github.com/greenhollow/gh-game-core/internal/store/schema"
)

// SetRatio creates or replaces the exchange ratio of a resource. The ratio
// is resource units per whole token.
func (e *Engine) SetRatio(ctx context.Context, resource string, ratio float64) error {
	if ratio <= 0 {
		return fmt.Errorf("%w: %g", domain.ErrInvalidRatio, ratio)
	}
	return e.store.SetExchangeRatio(ctx, resource, ratio)
}

// Swap converts resource units into in-game tokens at the current ratio.
// The resource debit and the token credit commit as one step.
func (e *Engine) Swap(ctx context.Context, owner domain.OwnerName, resource string, amount uint64) (domain.TokenAmount, error) {
	if amount == 0 {
		return 0, fmt.Errorf("%w: zero amount", domain.ErrInsufficientBalance)
	}

	var tokensOut domain.TokenAmount
	err := e.store.Atomically(ctx, func(tx store.Store) error {
		ratio, err := tx.GetExchangeRatio(ctx, resource)
		if err != nil {
			return fmt.Errorf("failed to fetch exchange ratio: %w", err)
		}
		if ratio == nil {
			return fmt.Errorf("%w: %s", domain.ErrNoRatioDefined, resource)
		}

		if err := tx.SpendResource(ctx, owner.String(), resource, amount); err != nil {
			return fmt.Errorf("failed to debit resource: %w", err)
		}

		tokensOut = domain.TokenFromFloat(float64(amount) / ratio.Ratio)
		if err := tx.CreditTokens(ctx, owner.String(), int64(tokensOut)); err != nil {
			return fmt.Errorf("failed to credit tokens: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	e.publish(ctx, domain.EconomyEventSwap, owner, map[string]interface{}{
		"resource":   resource,
		"amount":     amount,
		"tokens_out": tokensOut.String(),
	})
	return tokensOut, nil
}

// Deposit credits an inbound token transfer to an owner's balance
func (e *Engine) Deposit(ctx context.Context, owner domain.OwnerName, amount domain.TokenAmount, txID string) error {
	if amount <= 0 {
		return fmt.Errorf("deposit amount must be positive")
	}
	err := e.store.Atomically(ctx, func(tx store.Store) error {
		if err := e.markOnce(ctx, tx, txID); err != nil {
			return err
		}
		return tx.CreditTokens(ctx, owner.String(), int64(amount))
	})
	if _, err = skipApplied(ctx, err, txID); err != nil {
		return err
	}
	return nil
}

// Withdraw debits an owner's token balance and issues an external token
// transfer. A zero amount withdraws the full balance. The debit is staged
// before the external call and rolls back with it.
func (e *Engine) Withdraw(ctx context.Context, owner domain.OwnerName, amount domain.TokenAmount) (domain.TokenAmount, error) {
	if amount < 0 {
		return 0, fmt.Errorf("withdraw amount must not be negative")
	}

	var withdrawn domain.TokenAmount
	err := e.store.Atomically(ctx, func(tx store.Store) error {
		withdrawn = amount
		if withdrawn == 0 {
			balance, err := tx.GetTokenBalance(ctx, owner.String())
			if err != nil {
				return fmt.Errorf("failed to fetch token balance: %w", err)
			}
			withdrawn = domain.TokenAmount(balance)
		}
		if withdrawn <= 0 {
			return fmt.Errorf("%w: nothing to withdraw", domain.ErrInsufficientBalance)
		}

		if err := tx.DebitTokens(ctx, owner.String(), int64(withdrawn)); err != nil {
			return fmt.Errorf("failed to debit tokens: %w", err)
		}

		if err := e.tokens.Transfer(ctx, e.gameAccount, owner, withdrawn, "withdraw"); err != nil {
			return fmt.Errorf("failed to transfer tokens: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	e.publish(ctx, domain.EconomyEventWithdraw, owner, map[string]interface{}{
		"quantity": withdrawn.String(),
	})
	return withdrawn, nil
}

// CreateVoting opens a token-weighted proposal to change a resource ratio
func (e *Engine) CreateVoting(ctx context.Context, player domain.OwnerName, resource string, newRatio float64) (int64, error) {
	if newRatio <= 0 {
		return 0, fmt.Errorf("%w: %g", domain.ErrInvalidRatio, newRatio)
	}

	proposal := &schema.VotingProposal{
		Resource:      resource,
		ProposedRatio: newRatio,
		Status:        schema.ProposalStatusOpen,
		ExpiresAt:     e.clock.Now().Add(e.economy.VotingDuration),
	}
	if err := e.store.CreateProposal(ctx, proposal); err != nil {
		return 0, fmt.Errorf("failed to create proposal: %w", err)
	}
	return proposal.ID, nil
}

// Vote casts the player's current token balance as vote weight. The vote
// that lifts the cumulative weight to the quorum finalizes the proposal and
// applies its ratio; later votes are rejected.
func (e *Engine) Vote(ctx context.Context, player domain.OwnerName, proposalID int64) (*VoteResult, error) {
	now := e.clock.Now()
	quorum := int64(domain.TokenFromFloat(e.economy.VotingQuorum))

	var result *VoteResult
	err := e.store.Atomically(ctx, func(tx store.Store) error {
		proposal, err := tx.GetProposal(ctx, proposalID)
		if err != nil {
			return fmt.Errorf("failed to fetch proposal: %w", err)
		}
		if proposal == nil {
			return fmt.Errorf("%w: proposal %d", domain.ErrProposalNotFound, proposalID)
		}
		if proposal.Status != schema.ProposalStatusOpen || now.After(proposal.ExpiresAt) {
			return fmt.Errorf("%w: proposal %d", domain.ErrProposalClosed, proposalID)
		}

		voted, err := tx.HasVoted(ctx, proposalID, player.String())
		if err != nil {
			return fmt.Errorf("failed to check vote: %w", err)
		}
		if voted {
			return fmt.Errorf("%w: proposal %d", domain.ErrAlreadyVoted, proposalID)
		}

		weight, err := tx.GetTokenBalance(ctx, player.String())
		if err != nil {
			return fmt.Errorf("failed to fetch token balance: %w", err)
		}

		if err := tx.CreateVote(ctx, &schema.ProposalVote{
			ProposalID: proposalID,
			Voter:      player.String(),
			Weight:     weight,
		}); err != nil {
			return fmt.Errorf("failed to record vote: %w", err)
		}

		proposal.TotalWeight += weight
		finalized := proposal.TotalWeight >= quorum
		if finalized {
			if err := tx.SetExchangeRatio(ctx, proposal.Resource, proposal.ProposedRatio); err != nil {
				return fmt.Errorf("failed to apply voted ratio: %w", err)
			}
			proposal.Status = schema.ProposalStatusApplied
		}
		if err := tx.UpdateProposal(ctx, proposal); err != nil {
			return fmt.Errorf("failed to update proposal: %w", err)
		}

		result = &VoteResult{
			Weight:      domain.TokenAmount(weight),
			TotalWeight: domain.TokenAmount(proposal.TotalWeight),
			Finalized:   finalized,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Finalized {
		e.publish(ctx, domain.EconomyEventVotingFinalized, player, map[string]interface{}{
			"proposal_id":  proposalID,
			"total_weight": int64(result.TotalWeight),
		})
	}
	return result, nil
}

// ExpireProposals marks open proposals past their expiry as expired and
// returns how many were closed. Invoked periodically by the sweeper.
func (e *Engine) ExpireProposals(ctx context.Context) (int, error) {
	now := e.clock.Now()

	expired := 0
	err := e.store.Atomically(ctx, func(tx store.Store) error {
		proposals, err := tx.ListExpiredOpenProposals(ctx, now)
		if err != nil {
			return fmt.Errorf("failed to list expired proposals: %w", err)
		}
		for _, proposal := range proposals {
			proposal.Status = schema.ProposalStatusExpired
			if err := tx.UpdateProposal(ctx, proposal); err != nil {
				return fmt.Errorf("failed to expire proposal %d: %w", proposal.ID, err)
			}
			expired++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return expired, nil
}

// Resources retrieves all resource balances of an owner
func (e *Engine) Resources(ctx context.Context, owner domain.OwnerName) ([]*schema.ResourceBalance, error) {
	return e.store.ListResourceBalances(ctx, owner.String())
}

// TokenBalance retrieves the in-game token balance of an owner
func (e *Engine) TokenBalance(ctx context.Context, owner domain.OwnerName) (domain.TokenAmount, error) {
	balance, err := e.store.GetTokenBalance(ctx, owner.String())
	if err != nil {
		return 0, err
	}
	return domain.TokenAmount(balance), nil
}

// Ratio retrieves the exchange ratio of a resource (nil if absent)
func (e *Engine) Ratio(ctx context.Context, resource string) (*schema.ExchangeRatio, error) {
	return e.store.GetExchangeRatio(ctx, resource)
}

// Proposal retrieves a voting proposal by id (nil if absent)
func (e *Engine) Proposal(ctx context.Context, id int64) (*schema.VotingProposal, error) {
	return e.store.GetProposal(ctx, id)
}
