package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Haval-Sadun/mealmaster-m/config"
	"github.com/Haval-Sadun/mealmaster-m/internal/api"
	"github.com/Haval-Sadun/mealmaster-m/internal/logger"
	"github.com/Haval-Sadun/mealmaster-m/internal/router"
	"github.com/Haval-Sadun/mealmaster-m/internal/service"
)

// Server wires services and handlers around the HTTP listener.
type Server struct {
	engine *gin.Engine
	http   *http.Server
	log    *logger.Logger
}

// New builds the full handler graph on top of the given database.
func New(cfg *config.Config, db *gorm.DB, log *logger.Logger) *Server {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	recipeService := service.NewRecipeService(db)
	imageService := service.NewImageService(db, log)
	mealPlanService := service.NewMealPlanService(db)

	engine := router.SetupRouter(
		log,
		api.NewRecipeHandler(recipeService, imageService),
		api.NewIngredientHandler(recipeService),
		api.NewImageHandler(imageService),
		api.NewMealPlanHandler(mealPlanService),
		cfg.CORSOrigins,
	)

	return &Server{
		engine: engine,
		http: &http.Server{
			Addr:    cfg.ServerHost + ":" + cfg.ServerPort,
			Handler: engine,
		},
		log: log,
	}
}

// Start blocks serving HTTP until the listener fails or is shut down.
func (s *Server) Start() error {
	s.log.Info("server listening", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// Engine exposes the router, for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
