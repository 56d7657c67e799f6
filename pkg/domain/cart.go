package domain

// DefaultPlanDays is assumed when a cart item carries no explicit duration.
const DefaultPlanDays = 7

// PlanDayOptions are the subscription lengths a buyer may choose from.
// The 2-day plan is a trial tier.
var PlanDayOptions = []int{2, 15, 30, 60}

// DemoPlanDays marks the trial tier within PlanDayOptions.
const DemoPlanDays = 2

// CartItem is one confirmed supplier+plan selection, keyed by MealType.
type CartItem struct {
	SupplierID   int      `json:"supplier_id"`
	SupplierName string   `json:"supplier_name"`
	MealType     MealType `json:"meal_type"`
	Rating       float64  `json:"rating"`
	Image        string   `json:"image,omitempty"`
	PlanDays     int      `json:"plan_days,omitempty"`
}

// Days returns the plan duration, defaulting to DefaultPlanDays when unset.
func (i CartItem) Days() int {
	if i.PlanDays <= 0 {
		return DefaultPlanDays
	}
	return i.PlanDays
}
