package database_test

import (
	"context"
	"fmt"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Haval-Sadun/mealmaster-m/internal/database"
	"github.com/Haval-Sadun/mealmaster-m/internal/models"
	"github.com/Haval-Sadun/mealmaster-m/internal/service"
)

// setupPostgres starts a disposable PostgreSQL container and returns a
// migrated connection. Skips when docker is unavailable.
func setupPostgres(t *testing.T) *gorm.DB {
	if _, err := exec.LookPath("docker"); err != nil {
		t.Skip("docker not installed, skipping container-based test")
	}

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "postpass",
				"POSTGRES_DB":       "mealmaster_test",
			},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("5432/tcp"),
				wait.ForLog("database system is ready to accept connections"),
			).WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("failed to start container: %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := container.Terminate(ctx); err != nil {
			t.Errorf("failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	mappedPort, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("host=%s port=%s user=postgres password=postpass dbname=mealmaster_test sslmode=disable",
		host, mappedPort.Port())

	var db *gorm.DB
	for attempt := 0; attempt < 5; attempt++ {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	require.NoError(t, err, "failed to connect to database")
	require.NoError(t, database.Migrate(db))
	return db
}

func TestPostgresAggregateTransaction(t *testing.T) {
	db := setupPostgres(t)
	svc := service.NewRecipeService(db)
	ctx := context.Background()

	recipe := &models.Recipe{
		Name:             "Integration stew",
		Description:      "persisted against real postgres",
		Instructions:     "simmer",
		DietType:         models.DietOmnivore,
		MealType:         models.MealDinner,
		MealCategory:     models.CategoryMainCourse,
		DifficultyLevel:  models.DifficultyEasy,
		NumberOfServings: 2,
		Ingredients: []models.Ingredient{
			{Name: "Carrot", Quantity: 3, MeasurementUnit: models.UnitPiece},
			{Name: "Beef", Quantity: 500, MeasurementUnit: models.UnitGram},
		},
		Images: []models.Image{
			{Filename: "stew.jpg", ContentType: "image/jpeg", Size: 3, Data: []byte{1, 2, 3}},
		},
	}
	created, err := svc.CreateRecipe(ctx, recipe)
	require.NoError(t, err)
	assert.Len(t, created.Ingredients, 2)
	assert.Len(t, created.Images, 1)

	// An invalid nested row rolls the whole aggregate back.
	bad := &models.Recipe{
		Name:            "Doomed",
		Instructions:    "never lands",
		DietType:        models.DietOmnivore,
		MealType:        models.MealLunch,
		MealCategory:    models.CategorySoup,
		DifficultyLevel: models.DifficultyEasy,
		Ingredients: []models.Ingredient{
			{Name: "Water", Quantity: 0, MeasurementUnit: models.UnitLiter},
		},
	}
	_, err = svc.CreateRecipe(ctx, bad)
	require.Error(t, err)

	var recipeCount int64
	require.NoError(t, db.Model(&models.Recipe{}).Count(&recipeCount).Error)
	assert.Equal(t, int64(1), recipeCount)

	// Cascade delete clears every owned row.
	require.NoError(t, svc.DeleteRecipe(ctx, created.ID))
	var ingredientCount, imageCount int64
	require.NoError(t, db.Model(&models.Ingredient{}).Count(&ingredientCount).Error)
	require.NoError(t, db.Model(&models.Image{}).Count(&imageCount).Error)
	assert.Zero(t, ingredientCount)
	assert.Zero(t, imageCount)
}

func TestPostgresMealPlanScheduling(t *testing.T) {
	db := setupPostgres(t)
	recipes := service.NewRecipeService(db)
	plans := service.NewMealPlanService(db)
	ctx := context.Background()

	recipe, err := recipes.CreateRecipe(ctx, &models.Recipe{
		Name:            "Porridge",
		Instructions:    "boil oats",
		DietType:        models.DietVegan,
		MealType:        models.MealBreakfast,
		MealCategory:    models.CategoryMainCourse,
		DifficultyLevel: models.DifficultyEasy,
	})
	require.NoError(t, err)

	start, _ := time.Parse("2006-01-02", "2026-09-01")
	end, _ := time.Parse("2006-01-02", "2026-09-07")

	plan, err := plans.CreateMealPlan(ctx, &models.MealPlan{
		StartDate: start, EndDate: end, Active: true,
		Entries: []models.MealPlanEntry{
			{RecipeID: recipe.ID, Date: start, MealType: models.MealBreakfast, NumberOfPeople: 2},
		},
	})
	require.NoError(t, err)

	active, err := plans.GetActiveMealPlan(ctx)
	require.NoError(t, err)
	assert.Equal(t, plan.ID, active.ID)

	_, err = plans.UpdateMealPlan(ctx, plan.ID, service.MealPlanUpdate{
		StartDate: start, EndDate: end, Active: false,
	})
	require.NoError(t, err)

	_, err = plans.AddEntry(ctx, plan.ID, &models.MealPlanEntry{
		RecipeID: recipe.ID, Date: end, MealType: models.MealDinner, NumberOfPeople: 1,
	})
	assert.ErrorIs(t, err, service.ErrPlanInactive)
}
