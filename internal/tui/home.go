package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mealdeck/mealdeck/pkg/client"
	"github.com/mealdeck/mealdeck/pkg/domain"
)

// defaultRadiusKm bounds the nearby-restaurant search.
const defaultRadiusKm = 30

type restaurantsMsg struct {
	seq         int
	restaurants []domain.Restaurant
	err         error
}

type homeModel struct {
	client   *client.Client
	radiusKm float64

	input        string
	inputFocused bool
	searching    bool
	searched     string // address of the shown results
	results      []domain.Restaurant
	err          string

	// seq tags each lookup; responses for an abandoned lookup are dropped.
	seq    int
	width  int
	height int
}

func newHomeModel(c *client.Client, radiusKm float64) homeModel {
	if radiusKm <= 0 {
		radiusKm = defaultRadiusKm
	}
	return homeModel{client: c, radiusKm: radiusKm}
}

func (m homeModel) Init() tea.Cmd {
	return nil
}

func (m homeModel) search() (homeModel, tea.Cmd) {
	address := strings.TrimSpace(m.input)
	if address == "" {
		return m, nil
	}
	m.seq++
	m.searching = true
	m.err = ""
	seq := m.seq
	c := m.client
	radius := m.radiusKm
	return m, func() tea.Msg {
		rs, err := c.RestaurantsByAddress(context.Background(), address, radius)
		return restaurantsMsg{seq: seq, restaurants: rs, err: err}
	}
}

func (m homeModel) Update(msg tea.Msg) (homeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case restaurantsMsg:
		if msg.seq != m.seq {
			// Superseded or cancelled lookup: discard.
			return m, nil
		}
		m.searching = false
		if msg.err != nil {
			m.err = msg.err.Error()
			return m, nil
		}
		m.results = msg.restaurants
		m.searched = strings.TrimSpace(m.input)
		return m, nil

	case tea.KeyMsg:
		if m.inputFocused {
			switch msg.String() {
			case "esc":
				m.inputFocused = false
				// An in-flight lookup no longer has an owner.
				m.seq++
				m.searching = false
			case "enter":
				var cmd tea.Cmd
				m, cmd = m.search()
				m.inputFocused = false
				return m, cmd
			default:
				m.input = editRune(m.input, msg.String())
			}
			return m, nil
		}
		switch msg.String() {
		case "/", "enter":
			m.inputFocused = true
		}
	}
	return m, nil
}

func (m homeModel) View() string {
	var sb strings.Builder

	sb.WriteString(" " + selectedStyle.Render("Fresh meals, delivered on your schedule") + "\n")
	sb.WriteString(" " + normalStyle.Render("Subscribe to breakfast, lunch, and dinner plans from kitchens near you.") + "\n\n")

	// Address search input
	prompt := inputPromptStyle.Render("⌖ ")
	switch {
	case m.inputFocused:
		cursor := accentStyle.Render("█")
		sb.WriteString(" " + prompt + normalStyle.Render(m.input) + cursor + "\n")
	case m.input == "":
		sb.WriteString(" " + prompt + inputPlaceholderStyle.Render("enter your address to find restaurants nearby...") + "\n")
	default:
		sb.WriteString(" " + prompt + dimStyle.Render(m.input) + "\n")
	}
	sb.WriteString("\n")

	switch {
	case m.searching:
		sb.WriteString(" " + dimStyle.Render("searching nearby restaurants...") + "\n")
	case m.err != "":
		sb.WriteString(" " + errStyle.Render("lookup failed: "+m.err) + "\n")
	case m.searched != "":
		if len(m.results) == 0 {
			sb.WriteString(" " + dimStyle.Render(fmt.Sprintf("no restaurants within %.0f km of %q", m.radiusKm, m.searched)) + "\n")
			break
		}
		sb.WriteString(" " + selectedStyle.Render("Nearby restaurants") + "\n\n")
		for _, r := range m.results {
			line := "   " + normalStyle.Render(r.Name)
			if km := formatKm(r.DistanceKm); km != "" {
				line += "  " + metaStyle.Render(km)
			}
			sb.WriteString(line + "\n")
			if r.Description != "" {
				sb.WriteString("     " + dimStyle.Render(truncStr(r.Description, 70)) + "\n")
			}
		}
	default:
		for _, card := range domain.MealCards {
			sb.WriteString(fmt.Sprintf("   %s  %s\n", MealBadge(card.Type), dimStyle.Render(card.Window)))
		}
	}

	return sb.String()
}

func (m homeModel) helpKeys() string {
	if m.inputFocused {
		return helpEntry("enter", "search") + "  " + helpEntry("esc", "cancel")
	}
	return helpEntry("/", "find nearby") + "  " + helpEntry("p", "become a partner")
}
