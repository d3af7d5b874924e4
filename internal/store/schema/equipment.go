package schema

import "time"

// EquipmentSlot represents the equipment_slots table - an item worn by an
// account, one per slot kind, under game custody
type EquipmentSlot struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Owner is the account wearing the item
	Owner string `gorm:"column:owner;not null;type:text;uniqueIndex:idx_equipment_slots_owner_slot,priority:1"`
	// Slot is the slot kind taken from the item's type attribute (e.g., "hat", "tool")
	Slot string `gorm:"column:slot;not null;type:text;uniqueIndex:idx_equipment_slots_owner_slot,priority:2"`
	// AssetID is the ledger asset id of the equipped item
	AssetID uint64 `gorm:"column:asset_id;not null;uniqueIndex"`
	// CreatedAt is the timestamp when the item was equipped
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime"`
	// UpdatedAt is the timestamp when this record was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;autoUpdateTime"`
}

// TableName specifies the table name for the EquipmentSlot model
func (EquipmentSlot) TableName() string {
	return "equipment_slots"
}
