package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mealdeck/mealdeck/pkg/domain"
)

// Shimmer animation for the MEALDECK logo.
type shimmerTickMsg time.Time

func shimmerTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return shimmerTickMsg(t)
	})
}

// renderShimmerLogo renders "M E A L D E C K" as a flowing wave of warm
// light, ember (#7c2d12) -> bright tangerine (#fb923c).
func renderShimmerLogo(frame int) string {
	const text = "MEALDECK"
	n := len(text)

	var out string
	t := float64(frame)

	for i := 0; i < n; i++ {
		x := float64(i) / float64(n-1)

		// One smooth wave advancing through the text.
		phase := t*0.1 - x*3.0
		phase += math.Sin(t*0.023) * 2.0

		b := math.Sin(phase)*0.5 + 0.5
		b = math.Pow(b, 1.3)

		tide := math.Sin(t*0.035) * 0.12
		b = b*0.75 + tide + 0.18

		if b > 1.0 {
			b = 1.0
		} else if b < 0.05 {
			b = 0.05
		}

		// Ember: (124, 45, 18). Tangerine: (251, 146, 60).
		r := clampByte(124 + b*(251-124))
		g := clampByte(45 + b*(146-45))
		bl := clampByte(18 + b*(60-18))

		s := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", r, g, bl)))
		out += s.Render(string(text[i]))

		if i < n-1 {
			out += "  "
		}
	}

	return out
}

func clampByte(v float64) int {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return int(v)
}

var (
	// Base styles — warm storefront palette
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f4ede4")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#cfc6ba"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5a5244"))

	// Help bar
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	helpLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5a5244"))

	// Accent / action styles
	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fb923c")).
			Bold(true)

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#34d474"))

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e06060"))

	ratingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4a844"))

	inputPromptStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#fb923c")).
				Bold(true)

	inputPlaceholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#4a4438"))

	// Selected row background
	selectedRowBg = lipgloss.NewStyle().Background(lipgloss.Color("#2a2218"))

	// Meal category colors — sunrise to dusk
	mealColors = map[domain.MealType]lipgloss.Color{
		domain.Breakfast: lipgloss.Color("#fbbf24"),
		domain.Lunch:     lipgloss.Color("#4ade80"),
		domain.Dinner:    lipgloss.Color("#c084e0"),
	}
)

// MealStyle returns a bold style colored for the given meal category.
func MealStyle(t domain.MealType) lipgloss.Style {
	if c, ok := mealColors[t]; ok {
		return lipgloss.NewStyle().Foreground(c).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#606878")).Bold(true)
}

// MealBadge returns a short colored badge for a meal category, e.g. "[Lunch]".
func MealBadge(t domain.MealType) string {
	return MealStyle(t).Render("[" + string(t) + "]")
}

// helpEntry renders a single "key label" pair for help bars.
func helpEntry(key, label string) string {
	return helpKeyStyle.Render(key) + " " + helpLabelStyle.Render(label)
}

// helpItem is a selectable link in the help overlay.
type helpItem struct {
	label string
	desc  string
	url   string
}

var helpItems = []helpItem{
	{"Terms of Service", "mealdeck.app/terms", "https://mealdeck.app/terms"},
	{"Privacy Policy", "mealdeck.app/privacy", "https://mealdeck.app/privacy"},
	{"Become a Partner", "mealdeck.app/partner", "https://mealdeck.app/partner"},
	{"Website", "mealdeck.app", "https://mealdeck.app"},
}

// helpView renders the interactive help overlay with a cursor.
func helpView(cursor int) string {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#fb923c")).
		Bold(true).
		Render("M E A L D E C K")

	tagline := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render("Order your favorite deck of meals.")

	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	sectionStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)
	cursorStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#fb923c"))
	linkDescStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)

	commands := []struct{ cmd, desc string }{
		{"mealdeck", "Open the storefront (interactive TUI)"},
		{"mealdeck logout", "Clear your session"},
		{"mealdeck --version", "Show version"},
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n  %s\n\n  %s\n\n", title, tagline)

	fmt.Fprintf(&b, "  %s\n", sectionStyle.Render("Commands"))
	for _, c := range commands {
		fmt.Fprintf(&b, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-20s", c.cmd)), descStyle.Render(c.desc))
	}

	fmt.Fprintf(&b, "\n  %s\n", sectionStyle.Render("Links (enter to open)"))
	for i, item := range helpItems {
		label := cmdStyle.Render(fmt.Sprintf("%-20s", item.label))
		prefix := "    "
		if i == cursor {
			label = cursorStyle.Render(fmt.Sprintf("%-20s", item.label))
			prefix = "  > "
		}
		fmt.Fprintf(&b, "%s%s  %s\n", prefix, label, linkDescStyle.Render(item.desc))
	}
	return b.String()
}
