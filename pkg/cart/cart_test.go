package cart

import (
	"errors"
	"reflect"
	"testing"

	"github.com/mealdeck/mealdeck/pkg/domain"
)

func item(supplier int, t domain.MealType, days int) domain.CartItem {
	return domain.CartItem{SupplierID: supplier, MealType: t, PlanDays: days}
}

func TestAddOrReplaceNeverDuplicatesCategory(t *testing.T) {
	c := New()
	if err := c.AddOrReplace(item(1, domain.Breakfast, 7)); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if err := c.AddOrReplace(item(2, domain.Breakfast, 30)); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if got := c.Count(); got != 1 {
		t.Fatalf("Count() = %d, want 1", got)
	}
	id, ok := c.SupplierFor(domain.Breakfast)
	if !ok || id != 2 {
		t.Errorf("SupplierFor(Breakfast) = (%d, %v), want (2, true)", id, ok)
	}
}

func TestAddFourthCategoryFailsUnchanged(t *testing.T) {
	c := New()
	for i, mt := range domain.MealTypes {
		if err := c.AddOrReplace(item(i+1, mt, 7)); err != nil {
			t.Fatalf("add %s: %v", mt, err)
		}
	}
	before := c.Items()

	err := c.AddOrReplace(item(9, domain.MealType("Snacks"), 7))
	if !errors.Is(err, ErrFull) {
		t.Fatalf("expected ErrFull, got %v", err)
	}
	if !reflect.DeepEqual(c.Items(), before) {
		t.Error("cart changed after rejected add")
	}
}

func TestReplaceSucceedsAtCapacity(t *testing.T) {
	c := New()
	for i, mt := range domain.MealTypes {
		if err := c.AddOrReplace(item(i+1, mt, 7)); err != nil {
			t.Fatalf("add %s: %v", mt, err)
		}
	}
	// Swapping the Lunch supplier does not grow the cart, so the cap
	// must not apply.
	if err := c.AddOrReplace(item(5, domain.Lunch, 15)); err != nil {
		t.Fatalf("replace at capacity: %v", err)
	}
	if got := c.Count(); got != 3 {
		t.Errorf("Count() = %d, want 3", got)
	}
	if id, _ := c.SupplierFor(domain.Lunch); id != 5 {
		t.Errorf("SupplierFor(Lunch) = %d, want 5", id)
	}
}

func TestRemoveAbsentIsNoOp(t *testing.T) {
	c := New()
	if err := c.AddOrReplace(item(1, domain.Breakfast, 7)); err != nil {
		t.Fatal(err)
	}
	before := c.Items()
	c.Remove(domain.Dinner)
	if !reflect.DeepEqual(c.Items(), before) {
		t.Error("cart changed after removing an absent category")
	}
}

func TestRemoveThenReAdd(t *testing.T) {
	c := New()
	for i, mt := range domain.MealTypes {
		if err := c.AddOrReplace(item(i+1, mt, 7)); err != nil {
			t.Fatal(err)
		}
	}
	c.Remove(domain.Breakfast)
	if c.Contains(domain.Breakfast) {
		t.Fatal("Contains(Breakfast) = true after Remove")
	}
	if err := c.AddOrReplace(item(7, domain.Breakfast, 7)); err != nil {
		t.Fatalf("re-add after remove: %v", err)
	}
	if got := c.Count(); got != 3 {
		t.Errorf("Count() = %d, want 3", got)
	}
}

func TestTotalPlanDaysDefaultsMissingToSeven(t *testing.T) {
	c := New()
	if err := c.AddOrReplace(item(1, domain.Breakfast, 30)); err != nil {
		t.Fatal(err)
	}
	if err := c.AddOrReplace(item(2, domain.Lunch, 0)); err != nil {
		t.Fatal(err)
	}
	if got := c.TotalPlanDays(); got != 37 {
		t.Errorf("TotalPlanDays() = %d, want 37", got)
	}
}

func TestOrderSummaryScenario(t *testing.T) {
	// Breakfast+A(7d), Lunch+B(14d), then Dinner+C(7d): 28 total, size 3,
	// and a fourth category is rejected.
	c := New()
	if err := c.AddOrReplace(item(1, domain.Breakfast, 7)); err != nil {
		t.Fatal(err)
	}
	if err := c.AddOrReplace(item(2, domain.Lunch, 14)); err != nil {
		t.Fatal(err)
	}
	if err := c.AddOrReplace(item(3, domain.Dinner, 7)); err != nil {
		t.Fatal(err)
	}
	if got := c.TotalPlanDays(); got != 28 {
		t.Errorf("TotalPlanDays() = %d, want 28", got)
	}
	if got := c.Count(); got != 3 {
		t.Errorf("Count() = %d, want 3", got)
	}
	if err := c.AddOrReplace(item(4, domain.MealType("Snacks"), 7)); !errors.Is(err, ErrFull) {
		t.Errorf("adding Snacks: expected ErrFull, got %v", err)
	}
}

func TestInsertionOrderPreserved(t *testing.T) {
	c := New()
	order := []domain.MealType{domain.Dinner, domain.Breakfast, domain.Lunch}
	for i, mt := range order {
		if err := c.AddOrReplace(item(i+1, mt, 7)); err != nil {
			t.Fatal(err)
		}
	}
	items := c.Items()
	for i, mt := range order {
		if items[i].MealType != mt {
			t.Errorf("Items()[%d].MealType = %s, want %s", i, items[i].MealType, mt)
		}
	}
	// Replacement keeps the original slot.
	if err := c.AddOrReplace(item(9, domain.Breakfast, 7)); err != nil {
		t.Fatal(err)
	}
	if got := c.Items()[1].SupplierID; got != 9 {
		t.Errorf("Items()[1].SupplierID = %d, want 9", got)
	}
}

func TestSubscribeFiresOnMutationOnly(t *testing.T) {
	c := New()
	fired := 0
	c.Subscribe(func() { fired++ })

	if err := c.AddOrReplace(item(1, domain.Breakfast, 7)); err != nil {
		t.Fatal(err)
	}
	c.Remove(domain.Breakfast)
	c.Remove(domain.Breakfast) // absent: no notification
	c.Contains(domain.Lunch)   // query: no notification

	if fired != 2 {
		t.Errorf("subscriber fired %d times, want 2", fired)
	}
}

func TestRejectedAddDoesNotNotify(t *testing.T) {
	c := New()
	for i, mt := range domain.MealTypes {
		if err := c.AddOrReplace(item(i+1, mt, 7)); err != nil {
			t.Fatal(err)
		}
	}
	fired := 0
	c.Subscribe(func() { fired++ })
	if err := c.AddOrReplace(item(9, domain.MealType("Snacks"), 7)); !errors.Is(err, ErrFull) {
		t.Fatalf("expected ErrFull, got %v", err)
	}
	if fired != 0 {
		t.Errorf("subscriber fired %d times after rejected add, want 0", fired)
	}
}
