package schema

import "time"

// ResourceBalance represents the resource_balances table - fungible resource
// holdings (wood, stone, ...) credited by claims and debited by upgrades and swaps
type ResourceBalance struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Owner is the account the balance belongs to
	Owner string `gorm:"column:owner;not null;type:text;uniqueIndex:idx_resource_balances_owner_resource,priority:1"`
	// Resource is the resource kind (e.g., "wood", "stone")
	Resource string `gorm:"column:resource;not null;type:text;uniqueIndex:idx_resource_balances_owner_resource,priority:2"`
	// Amount is the held quantity in whole resource units
	Amount uint64 `gorm:"column:amount;not null;default:0"`
	// CreatedAt is the timestamp when this balance was created
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime"`
	// UpdatedAt is the timestamp when this balance was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;autoUpdateTime"`
}

// TableName specifies the table name for the ResourceBalance model
func (ResourceBalance) TableName() string {
	return "resource_balances"
}
