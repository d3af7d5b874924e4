package schema

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// BlendRecipe represents the blend_recipes table - a burn-and-mint recipe
// mapping a set of ingredient templates to a result template
type BlendRecipe struct {
	// ID is the recipe identifier
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// IngredientTemplates holds the required ingredient template ids (JSON array of int32, sorted)
	IngredientTemplates datatypes.JSON `gorm:"column:ingredient_templates;not null;type:jsonb"`
	// ResultTemplate is the template id of the minted result
	ResultTemplate int32 `gorm:"column:result_template;not null"`
	// CreatedAt is the timestamp when the recipe was registered
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime"`
}

// TableName specifies the table name for the BlendRecipe model
func (BlendRecipe) TableName() string {
	return "blend_recipes"
}

// Ingredients decodes the required ingredient template ids from the JSON column
func (r *BlendRecipe) Ingredients() ([]int32, error) {
	if len(r.IngredientTemplates) == 0 {
		return nil, nil
	}
	var ids []int32
	if err := json.Unmarshal(r.IngredientTemplates, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// SetIngredients encodes the required ingredient template ids into the JSON column
func (r *BlendRecipe) SetIngredients(ids []int32) error {
	raw, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	r.IngredientTemplates = datatypes.JSON(raw)
	return nil
}
