package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnumMembership(t *testing.T) {
	assert.True(t, DietVegan.Valid())
	assert.True(t, MealDinner.Valid())
	assert.True(t, CategoryBeverage.Valid())
	assert.True(t, DifficultyHard.Valid())
	assert.True(t, UnitPinch.Valid())

	assert.False(t, DietType(0).Valid())
	assert.False(t, DietType(99).Valid())
	assert.False(t, MealType(5).Valid())
	assert.False(t, MeasurementUnit(-1).Valid())
}

func TestEnumLabels(t *testing.T) {
	assert.Equal(t, "Vegetarian", DietVegetarian.Label())
	assert.Equal(t, "Breakfast", MealBreakfast.Label())
	assert.Equal(t, "Main course", CategoryMainCourse.Label())
	assert.Equal(t, "Easy", DifficultyEasy.Label())
	assert.Equal(t, "Tablespoon", UnitTablespoon.Label())
	assert.Equal(t, "", MealType(42).Label())
}

func TestEnumRegistry(t *testing.T) {
	registry := EnumRegistry()

	assert.Len(t, registry, 5)
	for name, values := range registry {
		assert.NotEmpty(t, values, name)
		for i, v := range values {
			assert.Equal(t, i+1, v.Value, name)
			assert.NotEmpty(t, v.Label, name)
		}
	}
	assert.Len(t, registry["meal_type"], 4)
	assert.Len(t, registry["measurement_unit"], 9)
}
