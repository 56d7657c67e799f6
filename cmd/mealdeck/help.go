package main

import (
	"fmt"
	"math/rand"

	"github.com/charmbracelet/lipgloss"
)

var kitchenLines = [...]string{
	"Breakfast, lunch, dinner. Pick a card, any card.",
	"Three slots. One deck. Zero decisions you'll regret.",
	"The tiffin is packed. It's waiting on you.",
	"Somewhere, a dal is simmering with your name on it.",
	"A week of meals takes less planning than one grocery run.",
	"Your cart holds three cards. Choose them well.",
	"Home food, minus the home part. We handle the kitchen.",
	"The lunch window closes at 3. The craving does not.",
	"Sixty days of dinner, sorted in sixty seconds.",
	"Fresh curd rice doesn't book itself.",
	"One supplier per meal. No double-booking your breakfast.",
	"The deck is shuffled daily. The quality is not.",
}

func printHelp() {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#fb923c")).
		Bold(true).
		Render("M E A L D E C K")

	quote := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render(`"` + kitchenLines[rand.Intn(len(kitchenLines))] + `"`)

	attrib := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#D4A017")).
		Render("— The Kitchen")

	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	commands := []struct{ cmd, desc string }{
		{"mealdeck", "Open the storefront (interactive TUI)"},
		{"mealdeck logout", "Clear your session"},
		{"mealdeck partner", "Partner with us (opens browser)"},
		{"mealdeck terms", "Terms of Service"},
		{"mealdeck privacy", "Privacy Policy"},
		{"mealdeck --version", "Show version"},
		{"mealdeck help", "You are here"},
	}

	fmt.Printf("\n  %s\n\n  %s\n  %s\n\n  Commands:\n", title, quote, attrib)
	for _, c := range commands {
		fmt.Printf("    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-20s", c.cmd)), descStyle.Render(c.desc))
	}
	url := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Render("https://mealdeck.app")
	fmt.Printf("\n  %s\n\n", url)
}
