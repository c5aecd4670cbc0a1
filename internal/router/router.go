package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Haval-Sadun/mealmaster-m/internal/api"
	"github.com/Haval-Sadun/mealmaster-m/internal/logger"
	"github.com/Haval-Sadun/mealmaster-m/internal/middleware"
)

// SetupRouter configures the application routes.
func SetupRouter(
	log *logger.Logger,
	recipeHandler *api.RecipeHandler,
	ingredientHandler *api.IngredientHandler,
	imageHandler *api.ImageHandler,
	mealPlanHandler *api.MealPlanHandler,
	corsOrigins []string,
) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.ContextLogger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS(corsOrigins))

	v1 := router.Group("/api/v1")
	recipeHandler.RegisterRoutes(v1)
	ingredientHandler.RegisterRoutes(v1)
	imageHandler.RegisterRoutes(v1)
	mealPlanHandler.RegisterRoutes(v1)
	v1.GET("/enums", api.ListEnums)

	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "API running"})
	})

	return router
}
