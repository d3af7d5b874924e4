package schema

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// OwnerStats represents the owner_stats table - aggregated stat totals
// (strength, luck, vitality) recomputed from an account's equipped items
type OwnerStats struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Owner is the account the stats belong to
	Owner string `gorm:"column:owner;not null;type:text;uniqueIndex"`
	// Stats holds the aggregated stat totals (JSON object of name to value)
	Stats datatypes.JSON `gorm:"column:stats;not null;type:jsonb"`
	// UpdatedAt is the timestamp when the stats were last recomputed
	UpdatedAt time.Time `gorm:"column:updated_at;not null;autoUpdateTime"`
	// CreatedAt is the timestamp when this record was created
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime"`
}

// TableName specifies the table name for the OwnerStats model
func (OwnerStats) TableName() string {
	return "owner_stats"
}

// StatValues decodes the aggregated stat totals from the JSON column
func (s *OwnerStats) StatValues() (map[string]uint32, error) {
	if len(s.Stats) == 0 {
		return nil, nil
	}
	var values map[string]uint32
	if err := json.Unmarshal(s.Stats, &values); err != nil {
		return nil, err
	}
	return values, nil
}

// SetStatValues encodes the aggregated stat totals into the JSON column
func (s *OwnerStats) SetStatValues(values map[string]uint32) error {
	raw, err := json.Marshal(values)
	if err != nil {
		return err
	}
	s.Stats = datatypes.JSON(raw)
	return nil
}
