package schema

import "time"

// ExchangeRatio represents the exchange_ratios table - resource units required
// per one token when swapping a resource for tokens
type ExchangeRatio struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Resource is the resource kind the ratio applies to
	Resource string `gorm:"column:resource;not null;type:text;uniqueIndex"`
	// Ratio is the number of resource units exchanged for one token
	Ratio float64 `gorm:"column:ratio;not null"`
	// CreatedAt is the timestamp when this ratio was first set
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime"`
	// UpdatedAt is the timestamp when this ratio was last changed
	UpdatedAt time.Time `gorm:"column:updated_at;not null;autoUpdateTime"`
}

// TableName specifies the table name for the ExchangeRatio model
func (ExchangeRatio) TableName() string {
	return "exchange_ratios"
}
