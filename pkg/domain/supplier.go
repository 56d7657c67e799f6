package domain

// Supplier is a vendor offering a meal plan within one category.
type Supplier struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Rating      float64 `json:"rating"`
	Image       string  `json:"image,omitempty"`
	Description string  `json:"description,omitempty"`
}

// suppliers is the stubbed vendor catalog. A real catalog backend is an
// explicit non-goal; every category currently shares the same roster.
var suppliers = []Supplier{
	{1, "Healthy Bites Co.", 4.8, "lb-1", "Fresh and organic meal plans"},
	{2, "Tasty Meals Hub", 4.6, "lb-2", "Delicious home-style cooking"},
	{3, "Nutrition Express", 4.9, "lb-3", "Balanced nutritional meals"},
	{4, "Quick Eats Kitchen", 4.5, "lb-1", "Fast and fresh delivery"},
	{5, "Gourmet Delight", 4.7, "lb-2", "Premium quality ingredients"},
}

// SuppliersFor returns the vendors serving the given meal category.
func SuppliersFor(t MealType) []Supplier {
	if !ValidMealType(t) {
		return nil
	}
	out := make([]Supplier, len(suppliers))
	copy(out, suppliers)
	return out
}

// DayMeal is one entry of a supplier's sample weekly menu.
type DayMeal struct {
	Day  string
	Meal string
}

// weekMenus holds the sample 7-day menu shown in the read-only plan preview.
var weekMenus = map[MealType][]DayMeal{
	Breakfast: {
		{"Monday", "Pancakes with Fresh Fruits"},
		{"Tuesday", "Veggie Omelette & Toast"},
		{"Wednesday", "Traditional Thali"},
		{"Thursday", "Sandwich & Salad"},
		{"Friday", "Rice Bowl with Curry"},
		{"Saturday", "Continental Breakfast"},
		{"Sunday", "Special Sunday Brunch"},
	},
	Lunch: {
		{"Monday", "Grilled Paneer Bowl"},
		{"Tuesday", "Dal, Rice & Seasonal Sabzi"},
		{"Wednesday", "Mediterranean Wrap"},
		{"Thursday", "Rajma Chawal"},
		{"Friday", "Noodle Stir-Fry"},
		{"Saturday", "Biryani Special"},
		{"Sunday", "Chef's Choice Platter"},
	},
	Dinner: {
		{"Monday", "Roti, Dal & Mixed Veg"},
		{"Tuesday", "Pasta Primavera"},
		{"Wednesday", "Paneer Butter Masala"},
		{"Thursday", "Khichdi & Kadhi"},
		{"Friday", "Pizza Night"},
		{"Saturday", "Tandoori Platter"},
		{"Sunday", "Light Soup & Salad"},
	},
}

// WeekMenuFor returns the sample weekly menu for a meal category.
func WeekMenuFor(t MealType) []DayMeal {
	return weekMenus[t]
}
