package domain

// MealType partitions the cart: at most one plan per meal type.
type MealType string

const (
	Breakfast MealType = "Breakfast"
	Lunch     MealType = "Lunch"
	Dinner    MealType = "Dinner"
)

// MealTypes lists every meal category in display order.
var MealTypes = []MealType{Breakfast, Lunch, Dinner}

// MealCard is the display metadata for a meal category on the meals screen.
type MealCard struct {
	Type        MealType
	Description string
	Window      string // serving window, display only
}

// MealCards holds the storefront copy for the three meal categories.
var MealCards = []MealCard{
	{Breakfast, "Start your day with delicious morning meals", "6:00 AM - 11:00 AM"},
	{Lunch, "Wholesome lunch options to fuel your afternoon", "12:00 PM - 3:00 PM"},
	{Dinner, "End your day with satisfying dinner choices", "6:00 PM - 11:00 PM"},
}

var validMealTypeSet = func() map[MealType]bool {
	m := make(map[MealType]bool, len(MealTypes))
	for _, t := range MealTypes {
		m[t] = true
	}
	return m
}()

// ValidMealType returns true if the given value is a known meal category.
func ValidMealType(t MealType) bool {
	return validMealTypeSet[t]
}
