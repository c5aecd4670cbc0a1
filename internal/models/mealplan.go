package models

import "time"

// MealPlan is a date-scoped plan of meals. The HTTP layer defaults new plans
// to active; entries may only be appended while the plan stays active.
// Nothing prevents two plans from being active at once: active-plan lookup
// picks the one with the lowest id.
//
// Active intentionally carries no column default: a default tag would make
// the insert omit an explicit false and persist the plan as active.
type MealPlan struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StartDate time.Time `gorm:"not null" json:"start_date"`
	EndDate   time.Time `gorm:"not null" json:"end_date"`
	Active    bool      `gorm:"not null" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Entries []MealPlanEntry `gorm:"constraint:OnDelete:CASCADE" json:"entries"`
}

func (MealPlan) TableName() string {
	return "meal_plans"
}

// MealPlanEntry schedules one recipe on one date of a plan. The referenced
// recipe must exist when the entry is created.
type MealPlanEntry struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	MealPlanID     uint      `gorm:"not null;index" json:"meal_plan_id"`
	RecipeID       uint      `gorm:"not null;index" json:"recipe_id"`
	Date           time.Time `gorm:"not null" json:"date"`
	MealType       MealType  `gorm:"not null" json:"meal_type"`
	NumberOfPeople uint      `gorm:"default:1;check:number_of_people > 0" json:"number_of_people"`
}

func (MealPlanEntry) TableName() string {
	return "meal_plan_entries"
}
