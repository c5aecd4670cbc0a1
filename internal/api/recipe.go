package api

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Haval-Sadun/mealmaster-m/internal/models"
	"github.com/Haval-Sadun/mealmaster-m/internal/service"
	"github.com/Haval-Sadun/mealmaster-m/internal/types"
)

// RecipeHandler exposes the Recipe aggregate: CRUD on the root plus the
// nested ingredient and image collections.
type RecipeHandler struct {
	recipes *service.RecipeService
	images  *service.ImageService
}

// NewRecipeHandler creates a new recipe handler.
func NewRecipeHandler(recipes *service.RecipeService, images *service.ImageService) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, images: images}
}

// RegisterRoutes registers the recipe routes.
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.POST("", h.CreateRecipe)
		recipes.GET("/:id", h.GetRecipe)
		recipes.PUT("/:id", h.UpdateRecipe)
		recipes.DELETE("/:id", h.DeleteRecipe)
		recipes.GET("/:id/ingredients", h.ListIngredients)
		recipes.POST("/:id/ingredients", h.AddIngredient)
		recipes.GET("/:id/images", h.ListImages)
		recipes.POST("/:id/images", h.UploadImage)
	}
}

// IngredientRequest is the payload for creating or replacing an ingredient.
type IngredientRequest struct {
	Name            string `json:"name" binding:"required"`
	Category        string `json:"category"`
	Quantity        uint   `json:"quantity" binding:"required,gt=0"`
	MeasurementUnit int    `json:"measurement_unit" binding:"required"`
}

// InlineImageRequest carries an image uploaded inline with recipe creation.
// Data is base64 in the JSON body.
type InlineImageRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"data"`
}

// RecipeRequest is the payload for creating a recipe or replacing its
// scalar fields. Ingredients and Images are honored on create only.
type RecipeRequest struct {
	Name             string               `json:"name" binding:"required"`
	Description      string               `json:"description"`
	Instructions     string               `json:"instructions" binding:"required"`
	DietType         int                  `json:"diet_type" binding:"required"`
	MealType         int                  `json:"meal_type" binding:"required"`
	MealCategory     int                  `json:"meal_category" binding:"required"`
	PreparationTime  uint                 `json:"preparation_time"`
	CookingTime      uint                 `json:"cooking_time"`
	DifficultyLevel  int                  `json:"difficulty_level" binding:"required"`
	VideoURL         *string              `json:"video_url"`
	Rating           float64              `json:"rating"`
	NumberOfServings *uint                `json:"number_of_servings"`
	Ingredients      []IngredientRequest  `json:"ingredients"`
	Images           []InlineImageRequest `json:"images"`
}

// validate enforces enum membership and positive-count constraints before
// anything reaches the store layer.
func (r *RecipeRequest) validate() (string, bool) {
	if !models.DietType(r.DietType).Valid() {
		return "diet_type out of range", false
	}
	if !models.MealType(r.MealType).Valid() {
		return "meal_type out of range", false
	}
	if !models.MealCategory(r.MealCategory).Valid() {
		return "meal_category out of range", false
	}
	if !models.DifficultyLevel(r.DifficultyLevel).Valid() {
		return "difficulty_level out of range", false
	}
	if r.NumberOfServings != nil && *r.NumberOfServings == 0 {
		return "number_of_servings must be positive", false
	}
	for _, ing := range r.Ingredients {
		if !models.MeasurementUnit(ing.MeasurementUnit).Valid() {
			return "measurement_unit out of range", false
		}
	}
	return "", true
}

func (r *RecipeRequest) servings() uint {
	if r.NumberOfServings == nil {
		return 1
	}
	return *r.NumberOfServings
}

// CreateRecipe persists the root and all nested ingredients and images as
// one atomic unit.
func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if msg, ok := req.validate(); !ok {
		respondError(c, http.StatusBadRequest, msg, nil)
		return
	}

	recipe := models.Recipe{
		Name:             req.Name,
		Description:      req.Description,
		Instructions:     req.Instructions,
		DietType:         models.DietType(req.DietType),
		MealType:         models.MealType(req.MealType),
		MealCategory:     models.MealCategory(req.MealCategory),
		PreparationTime:  req.PreparationTime,
		CookingTime:      req.CookingTime,
		DifficultyLevel:  models.DifficultyLevel(req.DifficultyLevel),
		VideoURL:         req.VideoURL,
		Rating:           req.Rating,
		NumberOfServings: req.servings(),
	}
	for _, ing := range req.Ingredients {
		recipe.Ingredients = append(recipe.Ingredients, models.Ingredient{
			Name:            ing.Name,
			Category:        ing.Category,
			Quantity:        ing.Quantity,
			MeasurementUnit: models.MeasurementUnit(ing.MeasurementUnit),
		})
	}
	for _, img := range req.Images {
		if len(img.Data) > service.MaxUploadBytes {
			respondError(c, http.StatusBadRequest, "image exceeds upload limit", img.Filename)
			return
		}
		recipe.Images = append(recipe.Images, *h.images.BuildImage(img.Filename, img.ContentType, img.Data))
	}

	created, err := h.recipes.CreateRecipe(c.Request.Context(), &recipe)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, types.NewRecipeView(created, requestBaseURL(c)))
}

// ListRecipes materializes all projected recipes and windows them.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	page, pageSize, ok := paginationParams(c)
	if !ok {
		return
	}

	recipes, err := h.recipes.ListRecipes(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	base := requestBaseURL(c)
	views := make([]types.RecipeView, 0, len(recipes))
	for i := range recipes {
		views = append(views, types.NewRecipeView(&recipes[i], base))
	}

	window, err := service.Paginate(views, page, pageSize)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, window)
}

// GetRecipe returns the full read view of one recipe.
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	recipe, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, types.NewRecipeView(recipe, requestBaseURL(c)))
}

// UpdateRecipe replaces scalar root fields; nested collections have their
// own endpoints.
func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if msg, ok := req.validate(); !ok {
		respondError(c, http.StatusBadRequest, msg, nil)
		return
	}

	updated, err := h.recipes.UpdateRecipe(c.Request.Context(), id, service.RecipeUpdate{
		Name:             req.Name,
		Description:      req.Description,
		Instructions:     req.Instructions,
		DietType:         models.DietType(req.DietType),
		MealType:         models.MealType(req.MealType),
		MealCategory:     models.MealCategory(req.MealCategory),
		PreparationTime:  req.PreparationTime,
		CookingTime:      req.CookingTime,
		DifficultyLevel:  models.DifficultyLevel(req.DifficultyLevel),
		VideoURL:         req.VideoURL,
		Rating:           req.Rating,
		NumberOfServings: req.servings(),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, types.NewRecipeView(updated, requestBaseURL(c)))
}

// DeleteRecipe cascades to all owned ingredients and images.
func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.recipes.DeleteRecipe(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"deleted": id})
}

// AddIngredient appends one ingredient to an existing recipe.
func (h *RecipeHandler) AddIngredient(c *gin.Context) {
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

	ing, err := h.recipes.AddIngredient(c.Request.Context(), id, &models.Ingredient{
		Name:            req.Name,
		Category:        req.Category,
		Quantity:        req.Quantity,
		MeasurementUnit: models.MeasurementUnit(req.MeasurementUnit),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, types.NewIngredientView(ing))
}

// ListIngredients lists the ingredients of one recipe.
func (h *RecipeHandler) ListIngredients(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	ingredients, err := h.recipes.ListIngredients(c.Request.Context(), &id)
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

// UploadImage ingests a multipart image upload for a recipe. Payloads over
// the 2 MiB cap are rejected here, before the pipeline sees them.
func (h *RecipeHandler) UploadImage(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "missing file field", err.Error())
		return
	}
	if file.Size > service.MaxUploadBytes {
		respondError(c, http.StatusBadRequest, "image exceeds upload limit of "+strconv.Itoa(service.MaxUploadBytes)+" bytes", nil)
		return
	}

	f, err := file.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "unreadable upload", err.Error())
		return
	}
	defer func() { _ = f.Close() }()

	data := make([]byte, file.Size)
	if _, err := io.ReadFull(f, data); err != nil {
		respondError(c, http.StatusBadRequest, "unreadable upload", err.Error())
		return
	}

	img, err := h.images.Ingest(c.Request.Context(), id, file.Filename, file.Header.Get("Content-Type"), data)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, types.NewImageView(img, requestBaseURL(c)))
}

// ListImages lists the image views of one recipe.
func (h *RecipeHandler) ListImages(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	images, err := h.images.ListImages(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	base := requestBaseURL(c)
	views := make([]types.ImageView, 0, len(images))
	for i := range images {
		views = append(views, types.NewImageView(&images[i], base))
	}
	respondSuccess(c, http.StatusOK, views)
}

// paginationParams reads page/page_size query values, defaulting to the
// first page of ten.
func paginationParams(c *gin.Context) (int, int, bool) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid page", c.Query("page"))
		return 0, 0, false
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid page_size", c.Query("page_size"))
		return 0, 0, false
	}
	return page, pageSize, true
}
