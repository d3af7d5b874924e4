package domain

import (
	"encoding/json"
	"time"
)

// AssetTransferEvent is an inbound NFT-transfer notification from the dispatch
// layer, published to NATS by the ledger listeners.
type AssetTransferEvent struct {
	From      OwnerName `json:"from"`
	To        OwnerName `json:"to"`
	AssetIDs  []AssetID `json:"asset_ids"`
	Memo      string    `json:"memo"`
	TxID      string    `json:"tx_id"`
	BlockNum  uint64    `json:"block_num"`
	Timestamp time.Time `json:"timestamp"`
}

// Valid checks the structural validity of an asset transfer notification.
// The transaction id keys transfer dedupe, so an event without one is
// malformed.
func (e *AssetTransferEvent) Valid() bool {
	if e.From == "" || e.To == "" || e.TxID == "" {
		return false
	}
	if len(e.AssetIDs) == 0 {
		return false
	}
	for _, id := range e.AssetIDs {
		if id == 0 {
			return false
		}
	}
	return true
}

// TokenTransferEvent is an inbound fungible-token transfer notification
type TokenTransferEvent struct {
	From      OwnerName   `json:"from"`
	To        OwnerName   `json:"to"`
	Quantity  TokenAmount `json:"quantity"`
	Memo      string      `json:"memo"`
	TxID      string      `json:"tx_id"`
	BlockNum  uint64      `json:"block_num"`
	Timestamp time.Time   `json:"timestamp"`
}

// Valid checks the structural validity of a token transfer notification
func (e *TokenTransferEvent) Valid() bool {
	return e.From != "" && e.To != "" && e.TxID != "" && e.Quantity > 0
}

// EconomyEventKind enumerates outbound economy events
type EconomyEventKind string

const (
	EconomyEventClaim           EconomyEventKind = "claim"
	EconomyEventUpgrade         EconomyEventKind = "upgrade"
	EconomyEventBlend           EconomyEventKind = "blend"
	EconomyEventSwap            EconomyEventKind = "swap"
	EconomyEventWithdraw        EconomyEventKind = "withdraw"
	EconomyEventVotingFinalized EconomyEventKind = "voting_finalized"
)

// EconomyEvent is published after a successful action for the notification
// layer. Events are advisory: a publish failure never aborts the action.
type EconomyEvent struct {
	ID        string           `json:"id"`
	Kind      EconomyEventKind `json:"kind"`
	Owner     OwnerName        `json:"owner"`
	Payload   json.RawMessage  `json:"payload,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
}
