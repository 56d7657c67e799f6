package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/mealdeck/mealdeck/internal/browser"
	"github.com/mealdeck/mealdeck/internal/tui"
	"github.com/mealdeck/mealdeck/pkg/auth"
	"github.com/mealdeck/mealdeck/pkg/cart"
	"github.com/mealdeck/mealdeck/pkg/client"
	"github.com/mealdeck/mealdeck/pkg/session"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// stateDir returns the directory holding the persisted session,
// MEALDECK_HOME when set, otherwise ~/.mealdeck.
func stateDir() (string, error) {
	if dir := os.Getenv("MEALDECK_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".mealdeck"), nil
}

// parseRadius returns the search radius in km, falling back to the
// default for empty, malformed, or non-positive values.
func parseRadius(s string) float64 {
	r, err := strconv.ParseFloat(s, 64)
	if err != nil || r <= 0 {
		return 0
	}
	return r
}

func run() error {
	godotenv.Load() //nolint:errcheck // a missing .env is fine

	apiURL := os.Getenv("MEALDECK_API_URL")
	if apiURL == "" {
		apiURL = "https://api.mealdeck.app"
	}

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "version", "-v":
			fmt.Println("mealdeck " + version)
			return nil
		case "help", "--help", "-h":
			printHelp()
			return nil
		case "terms":
			return openLegal("terms")
		case "privacy":
			return openLegal("privacy")
		case "partner":
			return openLegal("partner")
		case "logout":
			return runLogout()
		}
	}

	dir, err := stateDir()
	if err != nil {
		return err
	}
	store := session.NewStore(session.NewDir(dir))

	c := client.New(apiURL, "")
	clientID, err := store.ClientID()
	if err != nil {
		return fmt.Errorf("client id: %w", err)
	}
	c.SetClientID(clientID)

	a := auth.New(c, store)
	if tok := a.Token(); tok != "" {
		c.SetToken(tok)
	}

	app := tui.NewApp(c, a, cart.New(), parseRadius(os.Getenv("MEALDECK_RADIUS_KM")))

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

func runLogout() error {
	dir, err := stateDir()
	if err != nil {
		return err
	}
	if err := session.NewStore(session.NewDir(dir)).Clear(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	fmt.Println("Logged out.")
	return nil
}

func openLegal(page string) error {
	url := "https://mealdeck.app/" + page
	if err := browser.Open(url); err != nil {
		fmt.Println(url)
	}
	return nil
}
