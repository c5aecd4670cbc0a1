package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Haval-Sadun/mealmaster-m/internal/models"
)

// MealPlanService owns the MealPlan aggregate and enforces the scheduling
// rule that entries are only appended to an active plan.
type MealPlanService struct {
	db *gorm.DB
}

// NewMealPlanService creates a new MealPlanService instance.
func NewMealPlanService(db *gorm.DB) *MealPlanService {
	return &MealPlanService{db: db}
}

// CreateMealPlan persists the plan and any initial entries in one
// transaction. Every entry's recipe must already exist; a missing recipe
// fails the whole operation with ErrInvalidReference before commit.
func (s *MealPlanService) CreateMealPlan(ctx context.Context, plan *models.MealPlan) (*models.MealPlan, error) {
	entries := plan.Entries
	plan.Entries = nil

	for i := range entries {
		ok, err := s.recipeExists(ctx, entries[i].RecipeID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrInvalidReference
		}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(plan).Error; err != nil {
			return err
		}
		for i := range entries {
			entries[i].MealPlanID = plan.ID
			if err := tx.Create(&entries[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, persistence("create meal plan", err)
	}
	return s.GetMealPlan(ctx, plan.ID)
}

// GetMealPlan loads a plan with its entries.
func (s *MealPlanService) GetMealPlan(ctx context.Context, id uint) (*models.MealPlan, error) {
	var plan models.MealPlan
	err := s.db.WithContext(ctx).Preload("Entries").First(&plan, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, persistence("get meal plan", err)
	}
	return &plan, nil
}

// GetActiveMealPlan returns the first plan flagged active, lowest id first.
// Nothing stops several plans being active at once; the tie-break is
// deliberate and documented rather than enforced at write time.
func (s *MealPlanService) GetActiveMealPlan(ctx context.Context) (*models.MealPlan, error) {
	var plan models.MealPlan
	err := s.db.WithContext(ctx).
		Preload("Entries").
		Where("active = ?", true).
		Order("id").
		First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoActivePlan
		}
		return nil, persistence("get active meal plan", err)
	}
	return &plan, nil
}

// ListMealPlans returns every plan with entries preloaded, ordered by id.
func (s *MealPlanService) ListMealPlans(ctx context.Context) ([]models.MealPlan, error) {
	var plans []models.MealPlan
	if err := s.db.WithContext(ctx).Preload("Entries").Order("id").Find(&plans).Error; err != nil {
		return nil, persistence("list meal plans", err)
	}
	return plans, nil
}

// MealPlanUpdate carries the scalar plan fields replaced by UpdateMealPlan.
type MealPlanUpdate struct {
	StartDate time.Time
	EndDate   time.Time
	Active    bool
}

// UpdateMealPlan replaces the plan's scalar fields; entries are untouched.
func (s *MealPlanService) UpdateMealPlan(ctx context.Context, id uint, upd MealPlanUpdate) (*models.MealPlan, error) {
	plan, err := s.GetMealPlan(ctx, id)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{
		"start_date": upd.StartDate,
		"end_date":   upd.EndDate,
		"active":     upd.Active,
	}
	if err := s.db.WithContext(ctx).Model(plan).Updates(updates).Error; err != nil {
		return nil, persistence("update meal plan", err)
	}
	return s.GetMealPlan(ctx, id)
}

// DeleteMealPlan destroys the plan and all its entries in one transaction.
func (s *MealPlanService) DeleteMealPlan(ctx context.Context, id uint) error {
	if _, err := s.GetMealPlan(ctx, id); err != nil {
		return err
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("meal_plan_id = ?", id).Delete(&models.MealPlanEntry{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.MealPlan{}, "id = ?", id).Error
	})
	if err != nil {
		return persistence("delete meal plan", err)
	}
	return nil
}

// AddEntry appends one entry to an active plan. All checks run before any
// write: missing plan -> ErrNotFound, inactive plan -> ErrPlanInactive,
// missing recipe -> ErrInvalidReference.
func (s *MealPlanService) AddEntry(ctx context.Context, planID uint, entry *models.MealPlanEntry) (*models.MealPlanEntry, error) {
	var plan models.MealPlan
	if err := s.db.WithContext(ctx).First(&plan, "id = ?", planID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, persistence("get meal plan", err)
	}
	if !plan.Active {
		return nil, ErrPlanInactive
	}
	ok, err := s.recipeExists(ctx, entry.RecipeID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidReference
	}

	entry.MealPlanID = planID
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, persistence("add meal plan entry", err)
	}
	return entry, nil
}

// ListEntries returns all entries of one plan.
func (s *MealPlanService) ListEntries(ctx context.Context, planID uint) ([]models.MealPlanEntry, error) {
	if _, err := s.GetMealPlan(ctx, planID); err != nil {
		return nil, err
	}
	var entries []models.MealPlanEntry
	if err := s.db.WithContext(ctx).Where("meal_plan_id = ?", planID).Order("id").Find(&entries).Error; err != nil {
		return nil, persistence("list meal plan entries", err)
	}
	return entries, nil
}

// GetEntry retrieves one entry by id.
func (s *MealPlanService) GetEntry(ctx context.Context, id uint) (*models.MealPlanEntry, error) {
	var entry models.MealPlanEntry
	if err := s.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, persistence("get meal plan entry", err)
	}
	return &entry, nil
}

// EntryUpdate carries the replaceable entry fields. The owning plan never
// changes; the recipe may, but must reference an existing recipe.
type EntryUpdate struct {
	RecipeID       uint
	Date           time.Time
	MealType       models.MealType
	NumberOfPeople uint
}

// UpdateEntry replaces an entry's fields.
func (s *MealPlanService) UpdateEntry(ctx context.Context, id uint, upd EntryUpdate) (*models.MealPlanEntry, error) {
	entry, err := s.GetEntry(ctx, id)
	if err != nil {
		return nil, err
	}
	ok, err := s.recipeExists(ctx, upd.RecipeID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidReference
	}
	updates := map[string]interface{}{
		"recipe_id":        upd.RecipeID,
		"date":             upd.Date,
		"meal_type":        upd.MealType,
		"number_of_people": upd.NumberOfPeople,
	}
	if err := s.db.WithContext(ctx).Model(entry).Updates(updates).Error; err != nil {
		return nil, persistence("update meal plan entry", err)
	}
	return entry, nil
}

func (s *MealPlanService) recipeExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, persistence("check recipe", err)
	}
	return count > 0, nil
}
