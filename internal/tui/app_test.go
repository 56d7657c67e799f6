package tui

import (
	"strings"
	"testing"

	"github.com/mealdeck/mealdeck/pkg/auth"
	"github.com/mealdeck/mealdeck/pkg/cart"
	"github.com/mealdeck/mealdeck/pkg/client"
	"github.com/mealdeck/mealdeck/pkg/domain"
	"github.com/mealdeck/mealdeck/pkg/session"
)

func newTestApp() App {
	store := session.NewStore(session.NewMemory())
	c := client.New("http://localhost:0", "")
	a := NewApp(c, auth.New(c, store), cart.New(), 0)
	a.width = 80
	a.height = 30
	return a
}

func TestAppTabSwitching(t *testing.T) {
	tests := []struct {
		key     string
		wantTab tab
	}{
		{"1", tabHome},
		{"2", tabMeals},
		{"3", tabCart},
		{"4", tabAccount},
	}
	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			app := newTestApp()
			model, _ := app.Update(key(tc.key))
			a := model.(App)
			if a.tab != tc.wantTab {
				t.Errorf("after key %q: expected tab=%d, got %d", tc.key, tc.wantTab, a.tab)
			}
		})
	}
}

func TestAppPartnerOverlay(t *testing.T) {
	app := newTestApp()
	model, _ := app.Update(key("p"))
	a := model.(App)
	if !a.showPartner {
		t.Fatal("expected partner overlay open")
	}
	if !strings.Contains(a.View(), "Partner with MealDeck") {
		t.Error("expected the partner form in view")
	}

	// While the overlay captures text, global keys must not switch tabs.
	model, _ = a.Update(key("2"))
	a = model.(App)
	if !a.showPartner || a.tab == tabMeals {
		t.Error("overlay must capture plain keys")
	}

	model, _ = a.Update(key("esc"))
	a = model.(App)
	if a.showPartner {
		t.Error("esc must close the overlay")
	}
}

func TestAppHelpOverlay(t *testing.T) {
	app := newTestApp()
	model, _ := app.Update(key("h"))
	a := model.(App)
	if !a.showHelp {
		t.Fatal("expected help overlay open")
	}
	model, _ = a.Update(key("j"))
	a = model.(App)
	if a.helpCursor != 1 {
		t.Errorf("expected helpCursor 1, got %d", a.helpCursor)
	}
	model, _ = a.Update(key("esc"))
	a = model.(App)
	if a.showHelp {
		t.Error("esc must close the help overlay")
	}
}

func TestAppQuitDisabledWhileEditing(t *testing.T) {
	app := newTestApp()
	model, _ := app.Update(key("/")) // focus the address input on Home
	a := model.(App)
	if !a.editing() {
		t.Fatal("expected editing state after focusing the input")
	}
	model, cmd := a.Update(key("q"))
	a = model.(App)
	if cmd != nil {
		t.Fatal("q while typing must not quit")
	}
	if !strings.Contains(a.home.input, "q") {
		t.Error("q while typing must go to the input")
	}
}

func TestAppCartBadgeCount(t *testing.T) {
	app := newTestApp()
	if strings.Contains(app.tabBar(), "Cart (") {
		t.Fatal("no badge expected for an empty cart")
	}
	if err := app.basket.AddOrReplace(domain.CartItem{SupplierID: 1, SupplierName: "A", MealType: domain.Breakfast, PlanDays: 7}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(app.tabBar(), "Cart (1)") {
		t.Errorf("expected cart badge, got %q", app.tabBar())
	}
}

func TestAppSessionChangeUpdatesClientToken(t *testing.T) {
	store := session.NewStore(session.NewMemory())
	c := client.New("http://localhost:0", "")
	a := NewApp(c, auth.New(c, store), cart.New(), 0)

	if err := store.Save(domain.User{ID: "u1", Phone: "9876543210"}, "tok-123"); err != nil {
		t.Fatal(err)
	}
	model, _ := a.Update(sessionChangedMsg{})
	a = model.(App)

	if got := c.Token(); got != "tok-123" {
		t.Errorf("expected client token to follow the session, got %q", got)
	}
}

func TestAppRoutesAsyncResultsAcrossTabs(t *testing.T) {
	app := newTestApp()
	model, _ := app.Update(key("/"))
	a := model.(App)
	a.home, _ = a.home.Update(key("a"))
	model, _ = a.Update(key("enter")) // lookup in flight
	a = model.(App)

	// Switch away, then let the result arrive.
	a.home.inputFocused = false
	model, _ = a.Update(key("2"))
	a = model.(App)
	model, _ = a.Update(restaurantsMsg{seq: a.home.seq, restaurants: []domain.Restaurant{{Name: "Dosa Den"}}})
	a = model.(App)

	if len(a.home.results) != 1 {
		t.Error("results must reach the home screen even while another tab shows")
	}
}
