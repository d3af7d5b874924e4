package schema

import "time"

// ProcessedTransfer represents the processed_transfers table - ledger transfer
// transactions already applied, used to make event handling idempotent
type ProcessedTransfer struct {
	// TxID is the ledger transaction id of the transfer
	TxID string `gorm:"column:tx_id;primaryKey;type:text"`
	// ProcessedAt is the timestamp when the transfer was applied
	ProcessedAt time.Time `gorm:"column:processed_at;not null;autoCreateTime"`
}

// TableName specifies the table name for the ProcessedTransfer model
func (ProcessedTransfer) TableName() string {
	return "processed_transfers"
}
