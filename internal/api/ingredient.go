package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Haval-Sadun/mealmaster-m/internal/models"
	"github.com/Haval-Sadun/mealmaster-m/internal/service"
	"github.com/Haval-Sadun/mealmaster-m/internal/types"
)

// IngredientHandler exposes direct operations on single ingredients.
// Creation under a recipe lives on the recipe routes.
type IngredientHandler struct {
	recipes *service.RecipeService
}

// NewIngredientHandler creates a new ingredient handler.
func NewIngredientHandler(recipes *service.RecipeService) *IngredientHandler {
	return &IngredientHandler{recipes: recipes}
}

// RegisterRoutes registers the ingredient routes.
func (h *IngredientHandler) RegisterRoutes(router *gin.RouterGroup) {
	ingredients := router.Group("/ingredients")
	{
		ingredients.GET("", h.ListIngredients)
		ingredients.GET("/:id", h.GetIngredient)
		ingredients.PUT("/:id", h.UpdateIngredient)
		ingredients.DELETE("/:id", h.DeleteIngredient)
	}
}

// GetIngredient retrieves one ingredient.
func (h *IngredientHandler) GetIngredient(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	ing, err := h.recipes.GetIngredient(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, types.NewIngredientView(ing))
}

// ListIngredients lists all ingredients, optionally filtered by recipe_id.
func (h *IngredientHandler) ListIngredients(c *gin.Context) {
	var recipeID *uint
	if raw := c.Query("recipe_id"); raw != "" {
		id, ok := queryID(c, "recipe_id", raw)
		if !ok {
			return
		}
		recipeID = &id
	}
	ingredients, err := h.recipes.ListIngredients(c.Request.Context(), recipeID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	views := make([]types.IngredientView, 0, len(ingredients))
	for i := range ingredients {
		views = append(views, types.NewIngredientView(&ingredients[i]))
	}
	respondSuccess(c, http.StatusOK, views)
}

// UpdateIngredient replaces the ingredient's fields.
func (h *IngredientHandler) UpdateIngredient(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req IngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if !models.MeasurementUnit(req.MeasurementUnit).Valid() {
		respondError(c, http.StatusBadRequest, "measurement_unit out of range", nil)
		return
	}

	ing, err := h.recipes.UpdateIngredient(c.Request.Context(), id, service.IngredientUpdate{
		Name:            req.Name,
		Category:        req.Category,
		Quantity:        req.Quantity,
		MeasurementUnit: models.MeasurementUnit(req.MeasurementUnit),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, types.NewIngredientView(ing))
}

// DeleteIngredient removes one ingredient.
func (h *IngredientHandler) DeleteIngredient(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.recipes.DeleteIngredient(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"deleted": id})
}
