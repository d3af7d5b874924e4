package schema

import "time"

// StakedItem represents the staked_items table - one row per sub-item staked
// into an assembly. The primary key on the asset id enforces that an item
// belongs to at most one assembly across all owners.
type StakedItem struct {
	// AssetID is the ledger asset id of the staked sub-item
	AssetID uint64 `gorm:"column:asset_id;primaryKey"`
	// FarmingItemID is the ledger asset id of the assembly's farming item
	FarmingItemID uint64 `gorm:"column:farming_item_id;not null;index"`
	// Owner is the account whose assembly holds the item
	Owner string `gorm:"column:owner;not null;type:text"`
	// CreatedAt is the timestamp when the item was staked
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime"`
}

// TableName specifies the table name for the StakedItem model
func (StakedItem) TableName() string {
	return "staked_items"
}
