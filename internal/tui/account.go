package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mealdeck/mealdeck/pkg/auth"
)

type accountMode int

const (
	accMenu accountMode = iota
	accPassword
	accOtpPhone
	accOtpCode
	accSignup
	accProfile
)

var accMenuItems = []string{
	"Login with password",
	"Login with a one-time code",
	"Create an account",
}

// sessionChangedMsg tells the app that the persisted session changed, so
// the API client can pick up (or drop) the bearer token.
type sessionChangedMsg struct{}

// authDoneMsg is the outcome of any attempt to reach the logged-in state.
type authDoneMsg struct {
	seq int
	err error
}

// otpSentMsg is the outcome of a one-time-code dispatch.
type otpSentMsg struct {
	seq int
	ch  auth.Challenge
	err error
}

type accountModel struct {
	auth *auth.Authenticator

	mode       accountMode
	menuCursor int

	fields []string
	focus  int

	challenge  auth.Challenge
	signupFlow bool // the code entry belongs to a pending signup

	busy      bool
	errMsg    string
	statusMsg string

	// seq tags in-flight requests; results of an abandoned flow are dropped.
	seq    int
	width  int
	height int
}

func newAccountModel(a *auth.Authenticator) accountModel {
	m := accountModel{auth: a}
	if _, ok := a.Current(); ok {
		m.mode = accProfile
	}
	return m
}

func (m accountModel) Init() tea.Cmd {
	return nil
}

// editing reports whether keystrokes should go to a text field rather
// than global navigation.
func (m accountModel) editing() bool {
	switch m.mode {
	case accPassword, accOtpPhone, accOtpCode, accSignup:
		return true
	}
	return false
}

// abandon drops any in-flight request and returns to the account menu.
func (m accountModel) abandon() accountModel {
	m.seq++
	m.busy = false
	m.mode = accMenu
	m.fields = nil
	m.focus = 0
	m.errMsg = ""
	m.signupFlow = false
	m.challenge = auth.Challenge{}
	return m
}

func (m accountModel) enter(mode accountMode, nfields int) accountModel {
	m.mode = mode
	m.fields = make([]string, nfields)
	m.focus = 0
	m.errMsg = ""
	m.statusMsg = ""
	return m
}

func (m accountModel) Update(msg tea.Msg) (accountModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case authDoneMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.busy = false
		if msg.err != nil {
			m.errMsg = friendlyAuthError(msg.err)
			return m, nil
		}
		m.mode = accProfile
		m.fields = nil
		m.errMsg = ""
		m.statusMsg = "you're in"
		return m, func() tea.Msg { return sessionChangedMsg{} }

	case otpSentMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.busy = false
		if msg.err != nil {
			m.errMsg = friendlyAuthError(msg.err)
			return m, nil
		}
		m.challenge = msg.ch
		if m.mode == accSignup {
			m.signupFlow = true
		}
		m = m.enter(accOtpCode, 1)
		m.statusMsg = "code sent to " + maskPhone(msg.ch.Phone)
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m accountModel) updateKeys(msg tea.KeyMsg) (accountModel, tea.Cmd) {
	key := msg.String()

	switch m.mode {
	case accMenu:
		switch key {
		case "j", "down":
			if m.menuCursor < len(accMenuItems)-1 {
				m.menuCursor++
			}
		case "k", "up":
			if m.menuCursor > 0 {
				m.menuCursor--
			}
		case "enter":
			switch m.menuCursor {
			case 0:
				return m.enter(accPassword, 2), nil
			case 1:
				return m.enter(accOtpPhone, 1), nil
			case 2:
				return m.enter(accSignup, 3), nil
			}
		}

	case accProfile:
		switch key {
		case "l", "enter":
			m.auth.Logout()
			m = m.abandon()
			m.statusMsg = "logged out"
			return m, func() tea.Msg { return sessionChangedMsg{} }
		}

	case accPassword, accOtpPhone, accSignup:
		return m.updateForm(key)

	case accOtpCode:
		switch key {
		case "esc":
			return m.abandon(), nil
		case "ctrl+r":
			// Resend: supersedes the outstanding code.
			return m.sendOtp(m.challenge.Phone)
		case "enter":
			return m.submitCode()
		default:
			if !m.busy {
				m.fields[0] = editRune(m.fields[0], key)
			}
		}
	}
	return m, nil
}

func (m accountModel) updateForm(key string) (accountModel, tea.Cmd) {
	switch key {
	case "esc":
		return m.abandon(), nil
	case "tab", "down":
		m.focus = (m.focus + 1) % len(m.fields)
	case "shift+tab", "up":
		m.focus = (m.focus - 1 + len(m.fields)) % len(m.fields)
	case "enter":
		if m.focus < len(m.fields)-1 {
			m.focus++
			return m, nil
		}
		return m.submitForm()
	default:
		if !m.busy {
			m.fields[m.focus] = editRune(m.fields[m.focus], key)
		}
	}
	return m, nil
}

func (m accountModel) submitForm() (accountModel, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	switch m.mode {
	case accPassword:
		phone, password := m.fields[0], m.fields[1]
		m.busy = true
		m.errMsg = ""
		m.seq++
		seq, a := m.seq, m.auth
		return m, func() tea.Msg {
			return authDoneMsg{seq: seq, err: a.LoginWithPassword(context.Background(), phone, password)}
		}

	case accOtpPhone:
		return m.sendOtp(m.fields[0])

	case accSignup:
		phone, password, confirm := m.fields[0], m.fields[1], m.fields[2]
		if password != confirm {
			m.errMsg = "passwords do not match"
			return m, nil
		}
		m.busy = true
		m.errMsg = ""
		m.seq++
		seq, a := m.seq, m.auth
		return m, func() tea.Msg {
			ch, err := a.SignUp(context.Background(), phone, password)
			if err != nil {
				return authDoneMsg{seq: seq, err: err}
			}
			if !ch.Verified {
				// Phone-linking path: a code is pending.
				return otpSentMsg{seq: seq, ch: ch}
			}
			return authDoneMsg{seq: seq}
		}
	}
	return m, nil
}

func (m accountModel) sendOtp(phone string) (accountModel, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	m.busy = true
	m.errMsg = ""
	m.seq++
	seq, a := m.seq, m.auth
	return m, func() tea.Msg {
		ch, err := a.RequestLoginOtp(context.Background(), phone)
		return otpSentMsg{seq: seq, ch: ch, err: err}
	}
}

func (m accountModel) submitCode() (accountModel, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	code := strings.TrimSpace(m.fields[0])
	m.busy = true
	m.errMsg = ""
	m.seq++
	seq, a, ch, signup := m.seq, m.auth, m.challenge, m.signupFlow
	return m, func() tea.Msg {
		var err error
		if signup {
			err = a.VerifySignUp(context.Background(), ch, code)
		} else {
			err = a.VerifyLoginOtp(context.Background(), ch, code)
		}
		return authDoneMsg{seq: seq, err: err}
	}
}

// friendlyAuthError maps the auth failure taxonomy onto inline copy.
func friendlyAuthError(err error) string {
	switch {
	case errors.Is(err, auth.ErrInvalidInput):
		return err.Error()
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "invalid phone or password"
	case errors.Is(err, auth.ErrDuplicateIdentity):
		return "that phone is already registered, try logging in"
	case errors.Is(err, auth.ErrInvalidCode):
		return "that code didn't match, check it and try again"
	case errors.Is(err, auth.ErrNoPendingChallenge):
		return "that code is no longer valid, request a new one"
	case errors.Is(err, auth.ErrExpiredChallenge):
		return "the code expired, request a new one"
	case errors.Is(err, auth.ErrDispatch):
		return "couldn't send the code, check your connection and retry"
	default:
		return err.Error()
	}
}

var formLabels = map[accountMode][]string{
	accPassword: {"Phone", "Password"},
	accOtpPhone: {"Phone"},
	accOtpCode:  {"Code"},
	accSignup:   {"Phone", "Password", "Confirm password"},
}

func (m accountModel) View() string {
	var sb strings.Builder

	switch m.mode {
	case accMenu:
		sb.WriteString(" " + selectedStyle.Render("Welcome to MealDeck") + "\n\n")
		for i, item := range accMenuItems {
			cursor := "  "
			label := normalStyle.Render(item)
			if i == m.menuCursor {
				cursor = accentStyle.Render("> ")
				label = selectedStyle.Render(item)
			}
			sb.WriteString(" " + cursor + label + "\n")
		}
		if m.statusMsg != "" {
			sb.WriteString("\n " + okStyle.Render(m.statusMsg) + "\n")
		}

	case accProfile:
		u, _ := m.auth.Current()
		sb.WriteString(" " + selectedStyle.Render("Your account") + "\n\n")
		sb.WriteString("   " + dimStyle.Render("Phone:") + " " + normalStyle.Render(u.Phone) + "\n")
		sb.WriteString("   " + dimStyle.Render("ID:") + "    " + metaStyle.Render(u.ID) + "\n")
		if m.statusMsg != "" {
			sb.WriteString("\n " + okStyle.Render(m.statusMsg) + "\n")
		}

	default:
		titles := map[accountMode]string{
			accPassword: "Login",
			accOtpPhone: "Login with a one-time code",
			accOtpCode:  "Enter the code",
			accSignup:   "Create an account",
		}
		sb.WriteString(" " + selectedStyle.Render(titles[m.mode]) + "\n\n")
		for i, label := range formLabels[m.mode] {
			value := m.fields[i]
			if label == "Password" || label == "Confirm password" {
				value = strings.Repeat("•", len(value))
			}
			prompt := "  "
			rendered := normalStyle.Render(value)
			if i == m.focus {
				prompt = accentStyle.Render("> ")
				rendered += accentStyle.Render("█")
			}
			sb.WriteString(fmt.Sprintf(" %s%s %s\n", prompt, dimStyle.Render(fmt.Sprintf("%-17s", label+":")), rendered))
		}
		if m.busy {
			sb.WriteString("\n " + dimStyle.Render("talking to the kitchen...") + "\n")
		}
		if m.errMsg != "" {
			sb.WriteString("\n " + errStyle.Render(m.errMsg) + "\n")
		}
		if m.statusMsg != "" {
			sb.WriteString("\n " + okStyle.Render(m.statusMsg) + "\n")
		}
	}

	return sb.String()
}

func (m accountModel) helpKeys() string {
	switch m.mode {
	case accMenu:
		return helpEntry("j/k", "nav") + "  " + helpEntry("enter", "select")
	case accProfile:
		return helpEntry("l", "logout")
	case accOtpCode:
		return helpEntry("enter", "verify") + "  " + helpEntry("ctrl+r", "resend") + "  " + helpEntry("esc", "back")
	default:
		return helpEntry("tab", "next field") + "  " + helpEntry("enter", "submit") + "  " + helpEntry("esc", "back")
	}
}
