package schema

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// StakedAssembly represents the staked_assemblies table - a farming item under
// game custody together with the resource items staked into its slots
type StakedAssembly struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Owner is the account that staked the farming item
	Owner string `gorm:"column:owner;not null;type:text;index"`
	// FarmingItemID is the ledger asset id of the staked farming item
	FarmingItemID uint64 `gorm:"column:farming_item_id;not null;uniqueIndex"`
	// StakedItems holds the ledger asset ids of the items staked into the slots (JSON array of uint64)
	StakedItems datatypes.JSON `gorm:"column:staked_items;type:jsonb"`
	// LastClaim is the time of the most recent production claim
	LastClaim time.Time `gorm:"column:last_claim;not null"`
	// CreatedAt is the timestamp when the farming item was staked
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime"`
	// UpdatedAt is the timestamp when this record was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;autoUpdateTime"`
}

// TableName specifies the table name for the StakedAssembly model
func (StakedAssembly) TableName() string {
	return "staked_assemblies"
}

// ItemIDs decodes the staked item asset ids from the JSON column
func (a *StakedAssembly) ItemIDs() ([]uint64, error) {
	if len(a.StakedItems) == 0 {
		return nil, nil
	}
	var ids []uint64
	if err := json.Unmarshal(a.StakedItems, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// SetItemIDs encodes the staked item asset ids into the JSON column
func (a *StakedAssembly) SetItemIDs(ids []uint64) error {
	raw, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	a.StakedItems = datatypes.JSON(raw)
	return nil
}
