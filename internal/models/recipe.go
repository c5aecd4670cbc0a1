package models

import "time"

// Recipe is the root aggregate: it exclusively owns its ingredients and
// images, which are persisted and deleted with it as one transactional unit.
type Recipe struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	Name             string          `gorm:"size:255;not null" json:"name"`
	Description      string          `gorm:"type:text" json:"description"`
	Instructions     string          `gorm:"type:text;not null" json:"instructions"`
	DietType         DietType        `gorm:"not null" json:"diet_type"`
	MealType         MealType        `gorm:"not null" json:"meal_type"`
	MealCategory     MealCategory    `gorm:"not null" json:"meal_category"`
	PreparationTime  uint            `gorm:"not null" json:"preparation_time"`
	CookingTime      uint            `gorm:"not null" json:"cooking_time"`
	DifficultyLevel  DifficultyLevel `gorm:"not null" json:"difficulty_level"`
	VideoURL         *string         `gorm:"size:255" json:"video_url"`
	Rating           float64         `gorm:"default:0" json:"rating"`
	NumberOfServings uint            `gorm:"default:1;check:number_of_servings > 0" json:"number_of_servings"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`

	Ingredients []Ingredient `gorm:"constraint:OnDelete:CASCADE" json:"ingredients"`
	Images      []Image      `gorm:"constraint:OnDelete:CASCADE" json:"images"`
}

func (Recipe) TableName() string {
	return "recipes"
}

// Ingredient is a nested child of Recipe. The recipe reference is required;
// an ingredient never outlives its recipe.
type Ingredient struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	RecipeID        uint            `gorm:"not null;index" json:"recipe_id"`
	Name            string          `gorm:"size:255;not null" json:"name"`
	Category        string          `gorm:"size:100" json:"category"`
	Quantity        uint            `gorm:"not null;check:quantity > 0" json:"quantity"`
	MeasurementUnit MeasurementUnit `gorm:"not null" json:"measurement_unit"`
}

func (Ingredient) TableName() string {
	return "ingredients"
}
