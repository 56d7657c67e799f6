package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mealdeck/mealdeck/pkg/cart"
	"github.com/mealdeck/mealdeck/pkg/domain"
)

// mealsStage is the selection flow position. The flow is strictly
// user-driven: categories -> suppliers for the chosen category ->
// either a read-only plan preview (dead end) or the plan-duration
// chooser, which terminates in a cart mutation and unwinds to the start.
type mealsStage int

const (
	stageCategories mealsStage = iota
	stageSuppliers
	stagePreview
	stagePlan
)

type mealsModel struct {
	cart  *cart.Cart
	stage mealsStage

	catCursor int
	mealType  domain.MealType

	suppliers []domain.Supplier
	supCursor int
	supplier  domain.Supplier

	// planCursor indexes domain.PlanDayOptions; -1 until the user makes
	// an explicit choice. No duration is pre-selected.
	planCursor int

	rejection string // cart-full message, shown while the chooser stays open
	statusMsg string
	width     int
	height    int
}

func newMealsModel(c *cart.Cart) mealsModel {
	return mealsModel{cart: c, planCursor: -1}
}

func (m mealsModel) Init() tea.Cmd {
	return nil
}

// reset unwinds the whole flow back to the category grid, dropping any
// unconfirmed selection. It never touches the cart.
func (m mealsModel) reset() mealsModel {
	m.stage = stageCategories
	m.mealType = ""
	m.suppliers = nil
	m.supCursor = 0
	m.supplier = domain.Supplier{}
	m.planCursor = -1
	m.rejection = ""
	return m
}

func (m mealsModel) Update(msg tea.Msg) (mealsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		return m.updateKeys(msg), nil
	}
	return m, nil
}

func (m mealsModel) updateKeys(msg tea.KeyMsg) mealsModel {
	m.statusMsg = ""
	key := msg.String()

	// Cancel is available from every non-idle stage and returns straight
	// to the categories with no side effects.
	if key == "esc" && m.stage != stageCategories {
		return m.reset()
	}

	switch m.stage {
	case stageCategories:
		switch key {
		case "j", "down", "l", "right":
			if m.catCursor < len(domain.MealCards)-1 {
				m.catCursor++
			}
		case "k", "up", "h", "left":
			if m.catCursor > 0 {
				m.catCursor--
			}
		case "enter":
			// Opening a category abandons any prior unconfirmed
			// selection; the flow restarts scoped to this category.
			m = m.reset()
			m.mealType = domain.MealCards[m.catCursor].Type
			m.suppliers = domain.SuppliersFor(m.mealType)
			m.stage = stageSuppliers
		}

	case stageSuppliers:
		switch key {
		case "j", "down":
			if m.supCursor < len(m.suppliers)-1 {
				m.supCursor++
			}
		case "k", "up":
			if m.supCursor > 0 {
				m.supCursor--
			}
		case "v":
			m.supplier = m.suppliers[m.supCursor]
			m.stage = stagePreview
		case "enter", "a":
			m.supplier = m.suppliers[m.supCursor]
			m.planCursor = -1
			m.rejection = ""
			m.stage = stagePlan
		}

	case stagePreview:
		// Read-only dead end; back returns to the supplier list.
		if key == "b" || key == "left" || key == "backspace" {
			m.stage = stageSuppliers
		}

	case stagePlan:
		switch key {
		case "b", "left", "backspace":
			m.stage = stageSuppliers
			m.rejection = ""
		case "j", "down", "l":
			if m.planCursor < len(domain.PlanDayOptions)-1 {
				m.planCursor++
			}
		case "k", "up", "h":
			if m.planCursor > 0 {
				m.planCursor--
			}
		case "enter":
			if m.planCursor < 0 {
				// A duration must be chosen explicitly.
				return m
			}
			return m.confirm(domain.PlanDayOptions[m.planCursor])
		}
	}
	return m
}

// confirm composes the cart item and drives the cart state machine. On
// acceptance the flow unwinds fully; on rejection the chooser stays open
// so the user can cancel or pick a different supplier.
func (m mealsModel) confirm(days int) mealsModel {
	err := m.cart.AddOrReplace(domain.CartItem{
		SupplierID:   m.supplier.ID,
		SupplierName: m.supplier.Name,
		MealType:     m.mealType,
		Rating:       m.supplier.Rating,
		Image:        m.supplier.Image,
		PlanDays:     days,
	})
	if err != nil {
		if errors.Is(err, cart.ErrFull) {
			m.rejection = "cart is full — remove a meal plan or replace one of its categories"
			return m
		}
		m.rejection = err.Error()
		return m
	}
	added := fmt.Sprintf("%d-day %s plan from %s added to cart", days, m.mealType, m.supplier.Name)
	m = m.reset()
	m.statusMsg = added
	return m
}

func (m mealsModel) View() string {
	var sb strings.Builder

	switch m.stage {
	case stageCategories:
		sb.WriteString(" " + selectedStyle.Render("Order your favorite deck of meals") + "\n")
		sb.WriteString(" " + dimStyle.Render("Choose from our breakfast, lunch, and dinner plans") + "\n\n")
		for i, card := range domain.MealCards {
			cursor := "  "
			name := MealStyle(card.Type).Render(string(card.Type))
			if i == m.catCursor {
				cursor = accentStyle.Render("> ")
			}
			line := fmt.Sprintf(" %s%s  %s", cursor, name, dimStyle.Render(card.Window))
			sb.WriteString(line + "\n")
			sb.WriteString("     " + normalStyle.Render(card.Description))
			if m.cart.Contains(card.Type) {
				if id, ok := m.cart.SupplierFor(card.Type); ok {
					sb.WriteString("  " + okStyle.Render(fmt.Sprintf("in cart (supplier #%d)", id)))
				}
			}
			sb.WriteString("\n\n")
		}
		if m.statusMsg != "" {
			sb.WriteString(" " + okStyle.Render(m.statusMsg) + "\n")
		}

	case stageSuppliers:
		sb.WriteString(" " + MealBadge(m.mealType) + " " + selectedStyle.Render("Choose a supplier") + "\n\n")
		for i, s := range m.suppliers {
			cursor := "  "
			name := normalStyle.Render(s.Name)
			if i == m.supCursor {
				cursor = accentStyle.Render("> ")
				name = selectedStyle.Render(s.Name)
			}
			rating := ratingStyle.Render(fmt.Sprintf("★ %.1f", s.Rating))
			line := fmt.Sprintf(" %s%s  %s  %s", cursor, name, rating, dimStyle.Render(s.Description))
			if id, ok := m.cart.SupplierFor(m.mealType); ok && id == s.ID {
				line += "  " + okStyle.Render("● in cart")
			}
			sb.WriteString(line + "\n")
		}

	case stagePreview:
		sb.WriteString(" " + selectedStyle.Render(m.supplier.Name+" — "+string(m.mealType)+" Plan") + "\n")
		sb.WriteString(" " + dimStyle.Render("7-day sample menu (preview only)") + "\n\n")
		for _, dm := range domain.WeekMenuFor(m.mealType) {
			sb.WriteString(fmt.Sprintf("   %s  %s\n",
				metaStyle.Render(fmt.Sprintf("%-9s", dm.Day)),
				normalStyle.Render(dm.Meal)))
		}

	case stagePlan:
		sb.WriteString(" " + selectedStyle.Render("Choose plan duration") + "\n")
		sb.WriteString(" " + dimStyle.Render(fmt.Sprintf("How many days would you like %s from %s?", m.mealType, m.supplier.Name)) + "\n\n")
		for i, d := range domain.PlanDayOptions {
			label := fmt.Sprintf("%d days", d)
			if d == domain.DemoPlanDays {
				label = fmt.Sprintf("Demo (%d days)", d)
			}
			cursor := "  "
			rendered := normalStyle.Render(label)
			if i == m.planCursor {
				cursor = accentStyle.Render("> ")
				rendered = selectedStyle.Render(label)
			}
			sb.WriteString(" " + cursor + rendered + "\n")
		}
		if m.rejection != "" {
			sb.WriteString("\n " + errStyle.Render(m.rejection) + "\n")
		}
	}

	return sb.String()
}

// helpKeys returns the context line for the bottom help bar.
func (m mealsModel) helpKeys() string {
	switch m.stage {
	case stageSuppliers:
		return helpEntry("j/k", "nav") + "  " + helpEntry("enter", "add to cart") + "  " + helpEntry("v", "view plan") + "  " + helpEntry("esc", "close")
	case stagePreview:
		return helpEntry("b", "back to suppliers") + "  " + helpEntry("esc", "close")
	case stagePlan:
		return helpEntry("j/k", "choose") + "  " + helpEntry("enter", "confirm") + "  " + helpEntry("b", "back") + "  " + helpEntry("esc", "cancel")
	default:
		return helpEntry("j/k", "nav") + "  " + helpEntry("enter", "see suppliers")
	}
}
