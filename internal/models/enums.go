package models

// DietType classifies a recipe's dietary profile.
type DietType int

const (
	DietOmnivore DietType = iota + 1
	DietVegetarian
	DietVegan
	DietPescatarian
	DietKeto
	DietPaleo
)

var dietTypeLabels = map[DietType]string{
	DietOmnivore:    "Omnivore",
	DietVegetarian:  "Vegetarian",
	DietVegan:       "Vegan",
	DietPescatarian: "Pescatarian",
	DietKeto:        "Keto",
	DietPaleo:       "Paleo",
}

func (d DietType) Valid() bool   { _, ok := dietTypeLabels[d]; return ok }
func (d DietType) Label() string { return dietTypeLabels[d] }

// MealType identifies the meal of the day a recipe or plan entry belongs to.
type MealType int

const (
	MealBreakfast MealType = iota + 1
	MealLunch
	MealDinner
	MealSnack
)

var mealTypeLabels = map[MealType]string{
	MealBreakfast: "Breakfast",
	MealLunch:     "Lunch",
	MealDinner:    "Dinner",
	MealSnack:     "Snack",
}

func (m MealType) Valid() bool   { _, ok := mealTypeLabels[m]; return ok }
func (m MealType) Label() string { return mealTypeLabels[m] }

// MealCategory is the course a recipe is served as.
type MealCategory int

const (
	CategoryAppetizer MealCategory = iota + 1
	CategoryMainCourse
	CategorySideDish
	CategorySoup
	CategorySalad
	CategoryDessert
	CategoryBeverage
)

var mealCategoryLabels = map[MealCategory]string{
	CategoryAppetizer:  "Appetizer",
	CategoryMainCourse: "Main course",
	CategorySideDish:   "Side dish",
	CategorySoup:       "Soup",
	CategorySalad:      "Salad",
	CategoryDessert:    "Dessert",
	CategoryBeverage:   "Beverage",
}

func (m MealCategory) Valid() bool   { _, ok := mealCategoryLabels[m]; return ok }
func (m MealCategory) Label() string { return mealCategoryLabels[m] }

// DifficultyLevel rates how hard a recipe is to prepare.
type DifficultyLevel int

const (
	DifficultyEasy DifficultyLevel = iota + 1
	DifficultyMedium
	DifficultyHard
)

var difficultyLabels = map[DifficultyLevel]string{
	DifficultyEasy:   "Easy",
	DifficultyMedium: "Medium",
	DifficultyHard:   "Hard",
}

func (d DifficultyLevel) Valid() bool   { _, ok := difficultyLabels[d]; return ok }
func (d DifficultyLevel) Label() string { return difficultyLabels[d] }

// MeasurementUnit is the unit an ingredient quantity is expressed in.
type MeasurementUnit int

const (
	UnitGram MeasurementUnit = iota + 1
	UnitKilogram
	UnitMilliliter
	UnitLiter
	UnitPiece
	UnitTablespoon
	UnitTeaspoon
	UnitCup
	UnitPinch
)

var measurementUnitLabels = map[MeasurementUnit]string{
	UnitGram:       "Gram",
	UnitKilogram:   "Kilogram",
	UnitMilliliter: "Milliliter",
	UnitLiter:      "Liter",
	UnitPiece:      "Piece",
	UnitTablespoon: "Tablespoon",
	UnitTeaspoon:   "Teaspoon",
	UnitCup:        "Cup",
	UnitPinch:      "Pinch",
}

func (u MeasurementUnit) Valid() bool   { _, ok := measurementUnitLabels[u]; return ok }
func (u MeasurementUnit) Label() string { return measurementUnitLabels[u] }

// EnumValue is a single value/label pair exposed to clients.
type EnumValue struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

func enumValues[T ~int](labels map[T]string) []EnumValue {
	out := make([]EnumValue, 0, len(labels))
	for v := T(1); int(v) <= len(labels); v++ {
		out = append(out, EnumValue{Value: int(v), Label: labels[v]})
	}
	return out
}

// EnumRegistry lists every enum type with its closed value set, for
// validation UIs and the /enums endpoint.
func EnumRegistry() map[string][]EnumValue {
	return map[string][]EnumValue{
		"diet_type":        enumValues(dietTypeLabels),
		"meal_type":        enumValues(mealTypeLabels),
		"meal_category":    enumValues(mealCategoryLabels),
		"difficulty_level": enumValues(difficultyLabels),
		"measurement_unit": enumValues(measurementUnitLabels),
	}
}
