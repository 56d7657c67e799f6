package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mealdeck/mealdeck/internal/browser"
	"github.com/mealdeck/mealdeck/pkg/auth"
	"github.com/mealdeck/mealdeck/pkg/cart"
	"github.com/mealdeck/mealdeck/pkg/client"
)

type tab int

const (
	tabHome tab = iota
	tabMeals
	tabCart
	tabAccount
)

var tabNames = []string{"Home", "Meals", "Cart", "Account"}

// App is the root model. It owns one sub-model per screen, routes
// keystrokes to whichever is active, and forwards async results to
// their owners even when another screen is showing.
type App struct {
	apiClient *client.Client
	auth      *auth.Authenticator
	basket    *cart.Cart

	tab     tab
	home    homeModel
	meals   mealsModel
	cartScr cartModel
	account accountModel
	partner partnerModel

	showPartner bool
	showHelp    bool
	helpCursor  int

	frame  int
	width  int
	height int
}

func NewApp(c *client.Client, a *auth.Authenticator, basket *cart.Cart, radiusKm float64) App {
	return App{
		apiClient: c,
		auth:      a,
		basket:    basket,
		home:      newHomeModel(c, radiusKm),
		meals:     newMealsModel(basket),
		cartScr:   newCartModel(basket),
		account:   newAccountModel(a),
		partner:   newPartnerModel(c),
	}
}

func (a App) Init() tea.Cmd {
	return shimmerTickCmd()
}

// editing reports whether the active screen is capturing free text, in
// which case global single-letter shortcuts must stay out of the way.
func (a App) editing() bool {
	if a.showPartner {
		return true
	}
	if a.showHelp {
		return false
	}
	switch a.tab {
	case tabHome:
		return a.home.inputFocused
	case tabAccount:
		return a.account.editing()
	}
	return false
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.home, _ = a.home.Update(msg)
		a.meals, _ = a.meals.Update(msg)
		a.cartScr, _ = a.cartScr.Update(msg)
		a.account, _ = a.account.Update(msg)
		a.partner, _ = a.partner.Update(msg)
		return a, nil

	case shimmerTickMsg:
		a.frame++
		return a, shimmerTickCmd()

	case sessionChangedMsg:
		a.apiClient.SetToken(a.auth.Token())
		return a, nil

	// Async results go to their owning screen regardless of which tab
	// is showing; each screen drops results its seq no longer matches.
	case restaurantsMsg:
		var cmd tea.Cmd
		a.home, cmd = a.home.Update(msg)
		return a, cmd
	case authDoneMsg, otpSentMsg:
		var cmd tea.Cmd
		a.account, cmd = a.account.Update(msg)
		return a, cmd
	case summaryCopiedMsg:
		var cmd tea.Cmd
		a.cartScr, cmd = a.cartScr.Update(msg)
		return a, cmd
	case partnerDoneMsg:
		var cmd tea.Cmd
		a.partner, cmd = a.partner.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		return a.updateKeys(msg)
	}
	return a, nil
}

func (a App) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return a, tea.Quit
	}

	if a.showHelp {
		switch key {
		case "j", "down":
			if a.helpCursor < len(helpItems)-1 {
				a.helpCursor++
			}
		case "k", "up":
			if a.helpCursor > 0 {
				a.helpCursor--
			}
		case "enter":
			url := helpItems[a.helpCursor].url
			return a, func() tea.Msg {
				browser.Open(url) //nolint:errcheck // best-effort; the link text stays visible
				return nil
			}
		case "h", "esc", "q":
			a.showHelp = false
		}
		return a, nil
	}

	if a.showPartner {
		if key == "esc" {
			a.showPartner = false
			return a, nil
		}
		var cmd tea.Cmd
		a.partner, cmd = a.partner.Update(msg)
		return a, cmd
	}

	if !a.editing() {
		switch key {
		case "q":
			return a, tea.Quit
		case "1":
			a.tab = tabHome
			return a, nil
		case "2":
			a.tab = tabMeals
			return a, nil
		case "3":
			a.tab = tabCart
			return a, nil
		case "4":
			a.tab = tabAccount
			return a, nil
		case "p":
			a.showPartner = true
			return a, nil
		case "h":
			a.showHelp = true
			a.helpCursor = 0
			return a, nil
		}
	}

	var cmd tea.Cmd
	switch a.tab {
	case tabHome:
		a.home, cmd = a.home.Update(msg)
	case tabMeals:
		a.meals, cmd = a.meals.Update(msg)
	case tabCart:
		a.cartScr, cmd = a.cartScr.Update(msg)
	case tabAccount:
		a.account, cmd = a.account.Update(msg)
	}
	return a, cmd
}

func (a App) tabBar() string {
	var parts []string
	for i, name := range tabNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if tab(i) == tabCart {
			if n := a.basket.Count(); n > 0 {
				label = fmt.Sprintf("%s (%d)", label, n)
			}
		}
		if tab(i) == a.tab && !a.showPartner && !a.showHelp {
			parts = append(parts, selectedRowBg.Render(" "+label+" "))
		} else {
			parts = append(parts, dimStyle.Render(" "+label+" "))
		}
	}
	if a.showPartner {
		parts = append(parts, selectedRowBg.Render(" Partner "))
	}
	return strings.Join(parts, " ")
}

func (a App) View() string {
	header := " " + renderShimmerLogo(a.frame) + "\n " + a.tabBar() + "\n\n"

	var body, keys string
	switch {
	case a.showHelp:
		body = helpView(a.helpCursor)
		keys = helpEntry("j/k", "nav") + "  " + helpEntry("enter", "open link") + "  " + helpEntry("esc", "close")
	case a.showPartner:
		body = a.partner.View()
		keys = a.partner.helpKeys()
	default:
		switch a.tab {
		case tabHome:
			body = a.home.View()
			keys = a.home.helpKeys()
		case tabMeals:
			body = a.meals.View()
			keys = a.meals.helpKeys()
		case tabCart:
			body = a.cartScr.View()
			keys = a.cartScr.helpKeys()
		case tabAccount:
			body = a.account.View()
			keys = a.account.helpKeys()
		}
	}

	footer := "\n " + keys
	if !a.editing() {
		footer += "  " + helpEntry("1-4", "tabs") + "  " + helpEntry("p", "partner") + "  " + helpEntry("h", "help") + "  " + helpEntry("q", "quit")
	}
	return header + body + footer + "\n"
}
