// Package types holds the flattened read views returned by the API. Views
// are assembled at read time from persisted aggregates and never written
// back; every constructor here is a pure transform.
package types

import (
	"fmt"
	"time"

	"github.com/Haval-Sadun/mealmaster-m/internal/models"
)

// RecipeView is the denormalized projection of a Recipe aggregate.
type RecipeView struct {
	ID               uint             `json:"id"`
	Name             string           `json:"name"`
	Description      string           `json:"description"`
	Instructions     string           `json:"instructions"`
	DietType         int              `json:"diet_type"`
	MealType         int              `json:"meal_type"`
	MealCategory     int              `json:"meal_category"`
	PreparationTime  uint             `json:"preparation_time"`
	CookingTime      uint             `json:"cooking_time"`
	DifficultyLevel  int              `json:"difficulty_level"`
	VideoURL         *string          `json:"video_url"`
	Rating           float64          `json:"rating"`
	NumberOfServings uint             `json:"number_of_servings"`
	Ingredients      []IngredientView `json:"ingredients"`
	Images           []ImageView      `json:"images"`
}

// IngredientView mirrors one ingredient row.
type IngredientView struct {
	ID              uint   `json:"id"`
	RecipeID        uint   `json:"recipe_id"`
	Name            string `json:"name"`
	Category        string `json:"category"`
	Quantity        uint   `json:"quantity"`
	MeasurementUnit int    `json:"measurement_unit"`
}

// ImageView exposes image metadata plus retrieval URLs. URL is present iff
// the raw payload is stored; ThumbnailURL iff a thumbnail is stored.
type ImageView struct {
	ID           uint      `json:"id"`
	RecipeID     uint      `json:"recipe_id"`
	Filename     string    `json:"filename"`
	ContentType  string    `json:"content_type"`
	Size         uint      `json:"size"`
	URL          *string   `json:"url"`
	ThumbnailURL *string   `json:"thumbnail_url"`
	CreatedAt    time.Time `json:"created_at"`
}

// MealPlanView is the denormalized projection of a MealPlan aggregate.
type MealPlanView struct {
	ID        uint                `json:"id"`
	StartDate string              `json:"start_date"`
	EndDate   string              `json:"end_date"`
	Active    bool                `json:"active"`
	Entries   []MealPlanEntryView `json:"entries"`
}

// MealPlanEntryView mirrors one plan entry row.
type MealPlanEntryView struct {
	ID             uint   `json:"id"`
	MealPlanID     uint   `json:"meal_plan_id"`
	RecipeID       uint   `json:"recipe_id"`
	Date           string `json:"date"`
	MealType       int    `json:"meal_type"`
	NumberOfPeople uint   `json:"number_of_people"`
}

const dateLayout = "2006-01-02"

// NewRecipeView projects a recipe with its nested collections. Empty
// collections project as empty slices, never null.
func NewRecipeView(r *models.Recipe, baseURL string) RecipeView {
	ingredients := make([]IngredientView, 0, len(r.Ingredients))
	for i := range r.Ingredients {
		ingredients = append(ingredients, NewIngredientView(&r.Ingredients[i]))
	}
	images := make([]ImageView, 0, len(r.Images))
	for i := range r.Images {
		images = append(images, NewImageView(&r.Images[i], baseURL))
	}
	return RecipeView{
		ID:               r.ID,
		Name:             r.Name,
		Description:      r.Description,
		Instructions:     r.Instructions,
		DietType:         int(r.DietType),
		MealType:         int(r.MealType),
		MealCategory:     int(r.MealCategory),
		PreparationTime:  r.PreparationTime,
		CookingTime:      r.CookingTime,
		DifficultyLevel:  int(r.DifficultyLevel),
		VideoURL:         r.VideoURL,
		Rating:           r.Rating,
		NumberOfServings: r.NumberOfServings,
		Ingredients:      ingredients,
		Images:           images,
	}
}

// NewIngredientView projects one ingredient.
func NewIngredientView(i *models.Ingredient) IngredientView {
	return IngredientView{
		ID:              i.ID,
		RecipeID:        i.RecipeID,
		Name:            i.Name,
		Category:        i.Category,
		Quantity:        i.Quantity,
		MeasurementUnit: int(i.MeasurementUnit),
	}
}

// NewImageView projects one image. This decides URL presence only; the
// paths follow the retrieval endpoints under baseURL.
func NewImageView(img *models.Image, baseURL string) ImageView {
	v := ImageView{
		ID:          img.ID,
		RecipeID:    img.RecipeID,
		Filename:    img.Filename,
		ContentType: img.ContentType,
		Size:        img.Size,
		CreatedAt:   img.CreatedAt,
	}
	if len(img.Data) > 0 {
		u := fmt.Sprintf("%s/api/v1/images/%d/raw", baseURL, img.ID)
		v.URL = &u
	}
	if len(img.Thumbnail) > 0 {
		u := fmt.Sprintf("%s/api/v1/images/%d/thumb", baseURL, img.ID)
		v.ThumbnailURL = &u
	}
	return v
}

// NewMealPlanView projects a plan with its entries.
func NewMealPlanView(p *models.MealPlan) MealPlanView {
	entries := make([]MealPlanEntryView, 0, len(p.Entries))
	for i := range p.Entries {
		entries = append(entries, NewMealPlanEntryView(&p.Entries[i]))
	}
	return MealPlanView{
		ID:        p.ID,
		StartDate: p.StartDate.Format(dateLayout),
		EndDate:   p.EndDate.Format(dateLayout),
		Active:    p.Active,
		Entries:   entries,
	}
}

// NewMealPlanEntryView projects one plan entry.
func NewMealPlanEntryView(e *models.MealPlanEntry) MealPlanEntryView {
	return MealPlanEntryView{
		ID:             e.ID,
		MealPlanID:     e.MealPlanID,
		RecipeID:       e.RecipeID,
		Date:           e.Date.Format(dateLayout),
		MealType:       int(e.MealType),
		NumberOfPeople: e.NumberOfPeople,
	}
}
