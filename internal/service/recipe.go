package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Haval-Sadun/mealmaster-m/internal/models"
)

// RecipeService owns the transactional lifecycle of the Recipe aggregate:
// the root row plus its ingredient and image rows are written and destroyed
// as one atomic unit.
type RecipeService struct {
	db *gorm.DB
}

// NewRecipeService creates a new RecipeService instance.
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// RecipeUpdate carries the scalar root fields replaced by UpdateRecipe.
// Nested collections are managed through the dedicated child operations.
type RecipeUpdate struct {
	Name             string
	Description      string
	Instructions     string
	DietType         models.DietType
	MealType         models.MealType
	MealCategory     models.MealCategory
	PreparationTime  uint
	CookingTime      uint
	DifficultyLevel  models.DifficultyLevel
	VideoURL         *string
	Rating           float64
	NumberOfServings uint
}

// CreateRecipe persists the root and every nested ingredient and image in a
// single transaction. If any nested insert fails the whole aggregate rolls
// back and a *PersistenceError is returned.
func (s *RecipeService) CreateRecipe(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error) {
	ingredients := recipe.Ingredients
	images := recipe.Images
	recipe.Ingredients = nil
	recipe.Images = nil

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(recipe).Error; err != nil {
			return err
		}
		for i := range ingredients {
			ingredients[i].RecipeID = recipe.ID
			if err := tx.Create(&ingredients[i]).Error; err != nil {
				return err
			}
		}
		for i := range images {
			images[i].RecipeID = recipe.ID
			if err := tx.Create(&images[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, persistence("create recipe", err)
	}
	return s.GetRecipe(ctx, recipe.ID)
}

// GetRecipe loads a recipe with its nested collections.
func (s *RecipeService) GetRecipe(ctx context.Context, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Ingredients").
		Preload("Images").
		First(&recipe, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, persistence("get recipe", err)
	}
	return &recipe, nil
}

// ListRecipes returns every recipe with nested collections preloaded,
// ordered by id so page windows stay stable.
func (s *RecipeService) ListRecipes(ctx context.Context) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Ingredients").
		Preload("Images").
		Order("id").
		Find(&recipes).Error
	if err != nil {
		return nil, persistence("list recipes", err)
	}
	return recipes, nil
}

// UpdateRecipe replaces the scalar root fields only. Ingredients and images
// are untouched.
func (s *RecipeService) UpdateRecipe(ctx context.Context, id uint, upd RecipeUpdate) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, persistence("update recipe", err)
	}

	updates := map[string]interface{}{
		"name":               upd.Name,
		"description":        upd.Description,
		"instructions":       upd.Instructions,
		"diet_type":          upd.DietType,
		"meal_type":          upd.MealType,
		"meal_category":      upd.MealCategory,
		"preparation_time":   upd.PreparationTime,
		"cooking_time":       upd.CookingTime,
		"difficulty_level":   upd.DifficultyLevel,
		"video_url":          upd.VideoURL,
		"rating":             upd.Rating,
		"number_of_servings": upd.NumberOfServings,
	}
	if err := s.db.WithContext(ctx).Model(&recipe).Updates(updates).Error; err != nil {
		return nil, persistence("update recipe", err)
	}
	return s.GetRecipe(ctx, id)
}

// DeleteRecipe destroys the recipe and every owned ingredient and image in
// one transaction. A second delete of the same id fails with ErrNotFound.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id uint) error {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return persistence("delete recipe", err)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Ingredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Image{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Recipe{}, "id = ?", id).Error
	})
	if err != nil {
		return persistence("delete recipe", err)
	}
	return nil
}

// AddIngredient inserts one ingredient bound to an existing recipe.
func (s *RecipeService) AddIngredient(ctx context.Context, recipeID uint, ing *models.Ingredient) (*models.Ingredient, error) {
	if err := s.requireRecipe(ctx, recipeID); err != nil {
		return nil, err
	}
	ing.RecipeID = recipeID
	if err := s.db.WithContext(ctx).Create(ing).Error; err != nil {
		return nil, persistence("add ingredient", err)
	}
	return ing, nil
}

// GetIngredient retrieves a single ingredient by id.
func (s *RecipeService) GetIngredient(ctx context.Context, id uint) (*models.Ingredient, error) {
	var ing models.Ingredient
	if err := s.db.WithContext(ctx).First(&ing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, persistence("get ingredient", err)
	}
	return &ing, nil
}

// ListIngredients lists all ingredients, or only those of one recipe when
// recipeID is non-nil.
func (s *RecipeService) ListIngredients(ctx context.Context, recipeID *uint) ([]models.Ingredient, error) {
	query := s.db.WithContext(ctx).Order("id")
	if recipeID != nil {
		if err := s.requireRecipe(ctx, *recipeID); err != nil {
			return nil, err
		}
		query = query.Where("recipe_id = ?", *recipeID)
	}
	var ingredients []models.Ingredient
	if err := query.Find(&ingredients).Error; err != nil {
		return nil, persistence("list ingredients", err)
	}
	return ingredients, nil
}

// IngredientUpdate carries the replaceable ingredient fields. The owning
// recipe never changes.
type IngredientUpdate struct {
	Name            string
	Category        string
	Quantity        uint
	MeasurementUnit models.MeasurementUnit
}

// UpdateIngredient replaces an ingredient's fields.
func (s *RecipeService) UpdateIngredient(ctx context.Context, id uint, upd IngredientUpdate) (*models.Ingredient, error) {
	ing, err := s.GetIngredient(ctx, id)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{
		"name":             upd.Name,
		"category":         upd.Category,
		"quantity":         upd.Quantity,
		"measurement_unit": upd.MeasurementUnit,
	}
	if err := s.db.WithContext(ctx).Model(ing).Updates(updates).Error; err != nil {
		return nil, persistence("update ingredient", err)
	}
	return ing, nil
}

// DeleteIngredient removes one ingredient directly.
func (s *RecipeService) DeleteIngredient(ctx context.Context, id uint) error {
	if _, err := s.GetIngredient(ctx, id); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&models.Ingredient{}, "id = ?", id).Error; err != nil {
		return persistence("delete ingredient", err)
	}
	return nil
}

func (s *RecipeService) requireRecipe(ctx context.Context, id uint) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return persistence("check recipe", err)
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}
