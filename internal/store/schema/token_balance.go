package schema

import "time"

// TokenBalance represents the token_balances table - in-game token balances
// credited by deposits and swaps, debited by withdrawals
type TokenBalance struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Owner is the account the balance belongs to
	Owner string `gorm:"column:owner;not null;type:text;uniqueIndex"`
	// Amount is the held quantity in base token units (4 decimal places)
	Amount int64 `gorm:"column:amount;not null;default:0"`
	// CreatedAt is the timestamp when this balance was created
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime"`
	// UpdatedAt is the timestamp when this balance was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;autoUpdateTime"`
}

// TableName specifies the table name for the TokenBalance model
func (TokenBalance) TableName() string {
	return "token_balances"
}
