package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mealdeck/mealdeck/pkg/cart"
)

type cartModel struct {
	cart      *cart.Cart
	cursor    int
	statusMsg string
	width     int
	height    int
}

type summaryCopiedMsg struct{ err error }

func newCartModel(c *cart.Cart) cartModel {
	return cartModel{cart: c}
}

func (m cartModel) Init() tea.Cmd {
	return nil
}

func (m cartModel) Update(msg tea.Msg) (cartModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case summaryCopiedMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("copy failed: %v", msg.err)
		} else {
			m.statusMsg = "order summary copied"
		}
		return m, nil

	case tea.KeyMsg:
		m.statusMsg = ""
		items := m.cart.Items()
		if m.cursor >= len(items) {
			m.cursor = 0
		}
		switch msg.String() {
		case "j", "down":
			if m.cursor < len(items)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "d", "x":
			if len(items) > 0 {
				m.cart.Remove(items[m.cursor].MealType)
				if m.cursor > 0 {
					m.cursor--
				}
			}
		case "c":
			if len(items) > 0 {
				summary := m.summaryText()
				return m, func() tea.Msg {
					return summaryCopiedMsg{err: clipboard.WriteAll(summary)}
				}
			}
		}
	}
	return m, nil
}

// summaryText builds the plain-text order summary placed on the clipboard.
func (m cartModel) summaryText() string {
	var sb strings.Builder
	sb.WriteString("MealDeck order summary\n")
	for _, it := range m.cart.Items() {
		fmt.Fprintf(&sb, "- %d-day %s plan, %s\n", it.Days(), it.MealType, it.SupplierName)
	}
	fmt.Fprintf(&sb, "Total: %d days\n", m.cart.TotalPlanDays())
	return sb.String()
}

func (m cartModel) View() string {
	items := m.cart.Items()
	if len(items) == 0 {
		return " " + dimStyle.Render("your cart is empty — pick a meal plan from the Meals tab")
	}

	var sb strings.Builder
	sb.WriteString(" " + selectedStyle.Render("Your Cart") + "  " +
		metaStyle.Render(fmt.Sprintf("%d of %d meal plans", m.cart.Count(), cart.MaxItems)) + "\n\n")

	for i, it := range items {
		cursor := "  "
		name := normalStyle.Render(it.SupplierName)
		if i == m.cursor {
			cursor = accentStyle.Render("> ")
			name = selectedStyle.Render(it.SupplierName)
		}
		plan := okStyle.Render(fmt.Sprintf("✓ %d-Day %s Plan Included", it.Days(), it.MealType))
		rating := ratingStyle.Render(fmt.Sprintf("★ %.1f", it.Rating))
		sb.WriteString(fmt.Sprintf(" %s%s %s  %s\n", cursor, MealBadge(it.MealType), name, rating))
		sb.WriteString("     " + plan + "\n\n")
	}

	total := m.cart.TotalPlanDays()
	sb.WriteString(" " + metaStyle.Render(strings.Repeat("─", 40)) + "\n")
	sb.WriteString(fmt.Sprintf("   %s %s\n", dimStyle.Render("Plan length:"), selectedStyle.Render(fmt.Sprintf("%d days", total))))
	sb.WriteString(fmt.Sprintf("   %s %s\n", dimStyle.Render("Total meals:"), selectedStyle.Render(fmt.Sprintf("%d meals", total))))

	if m.statusMsg != "" {
		sb.WriteString("\n " + okStyle.Render(m.statusMsg) + "\n")
	}
	return sb.String()
}

func (m cartModel) helpKeys() string {
	return helpEntry("j/k", "nav") + "  " + helpEntry("d", "remove") + "  " + helpEntry("c", "copy summary")
}
