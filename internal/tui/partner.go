package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mealdeck/mealdeck/pkg/client"
	"github.com/mealdeck/mealdeck/pkg/domain"
)

// partnerField is one row of the registration form.
type partnerField struct {
	label    string
	docKey   string // non-empty for a document upload slot (value is a file path)
	required bool
}

func partnerFields() []partnerField {
	fields := []partnerField{
		{label: "Restaurant name", required: true},
		{label: "Description"},
		{label: "Owner phone", required: true},
	}
	for _, d := range domain.PartnerDocuments {
		fields = append(fields, partnerField{label: d.Label, docKey: d.Key, required: d.Required})
	}
	for _, t := range domain.MealTypes {
		fields = append(fields,
			partnerField{label: "Signature " + strings.ToLower(string(t)) + " dish"},
			partnerField{label: "  price (Rs)"},
		)
	}
	return fields
}

type partnerDoneMsg struct {
	seq int
	err error
}

type partnerModel struct {
	client *client.Client

	fields []partnerField
	values []string
	focus  int

	busy      bool
	errMsg    string
	statusMsg string

	seq    int
	width  int
	height int
}

func newPartnerModel(c *client.Client) partnerModel {
	fields := partnerFields()
	return partnerModel{
		client: c,
		fields: fields,
		values: make([]string, len(fields)),
	}
}

func (m partnerModel) Init() tea.Cmd {
	return nil
}

func (m partnerModel) Update(msg tea.Msg) (partnerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case partnerDoneMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.busy = false
		if msg.err != nil {
			m.errMsg = client.Message(msg.err)
			return m, nil
		}
		m.values = make([]string, len(m.fields))
		m.focus = 0
		m.errMsg = ""
		m.statusMsg = "application received, we'll call you once it's reviewed"
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			if m.focus < len(m.fields)-1 {
				m.focus++
			}
		case "shift+tab", "up":
			if m.focus > 0 {
				m.focus--
			}
		case "enter":
			if m.focus < len(m.fields)-1 {
				m.focus++
				return m, nil
			}
			return m.submit()
		case "ctrl+s":
			return m.submit()
		default:
			if !m.busy {
				m.values[m.focus] = editRune(m.values[m.focus], msg.String())
			}
		}
	}
	return m, nil
}

// build assembles and validates the registration from the form values.
func (m partnerModel) build() (domain.PartnerRegistration, error) {
	reg := domain.PartnerRegistration{
		Name:        strings.TrimSpace(m.values[0]),
		Description: strings.TrimSpace(m.values[1]),
		OwnerPhone:  strings.TrimSpace(m.values[2]),
		Documents:   map[string]string{},
	}
	if reg.Name == "" {
		return reg, fmt.Errorf("restaurant name is required")
	}
	if !domain.ValidPhone(reg.OwnerPhone) {
		return reg, fmt.Errorf("owner phone must be 10 digits")
	}
	for i, f := range m.fields {
		if f.docKey == "" {
			continue
		}
		path := strings.TrimSpace(m.values[i])
		if path == "" {
			continue
		}
		encoded, err := domain.EncodeDocumentFile(path)
		if err != nil {
			return reg, fmt.Errorf("%s: %w", f.label, err)
		}
		reg.Documents[f.docKey] = encoded
	}
	if missing := reg.MissingDocuments(); len(missing) > 0 {
		return reg, fmt.Errorf("missing required documents: %s", strings.Join(missing, ", "))
	}

	// One optional signature dish per meal category.
	base := 3 + len(domain.PartnerDocuments)
	for i, t := range domain.MealTypes {
		title := strings.TrimSpace(m.values[base+i*2])
		if title == "" {
			continue
		}
		price, err := strconv.ParseFloat(strings.TrimSpace(m.values[base+i*2+1]), 64)
		if err != nil || price <= 0 {
			return reg, fmt.Errorf("%s dish needs a valid price", strings.ToLower(string(t)))
		}
		reg.InitialMenu = append(reg.InitialMenu, domain.MenuItem{
			Title:    title,
			Price:    price,
			Category: t,
		})
	}
	return reg, nil
}

func (m partnerModel) submit() (partnerModel, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	reg, err := m.build()
	if err != nil {
		m.errMsg = err.Error()
		m.statusMsg = ""
		return m, nil
	}
	m.busy = true
	m.errMsg = ""
	m.statusMsg = ""
	m.seq++
	seq, c := m.seq, m.client
	return m, func() tea.Msg {
		return partnerDoneMsg{seq: seq, err: c.RegisterPartner(context.Background(), reg)}
	}
}

func (m partnerModel) View() string {
	var sb strings.Builder
	sb.WriteString(" " + selectedStyle.Render("Partner with MealDeck") + "\n")
	sb.WriteString(" " + dimStyle.Render("register your restaurant, document slots take file paths") + "\n\n")

	for i, f := range m.fields {
		label := f.label
		if f.required {
			label += " *"
		}
		prompt := "  "
		value := m.values[i]
		rendered := normalStyle.Render(value)
		if f.docKey != "" && value == "" {
			rendered = inputPlaceholderStyle.Render("path/to/file")
		}
		if i == m.focus {
			prompt = accentStyle.Render("> ")
			rendered = normalStyle.Render(value) + accentStyle.Render("█")
		}
		sb.WriteString(fmt.Sprintf(" %s%s %s\n", prompt, dimStyle.Render(fmt.Sprintf("%-36s", label+":")), rendered))
	}

	if m.busy {
		sb.WriteString("\n " + dimStyle.Render("submitting your application...") + "\n")
	}
	if m.errMsg != "" {
		sb.WriteString("\n " + errStyle.Render(m.errMsg) + "\n")
	}
	if m.statusMsg != "" {
		sb.WriteString("\n " + okStyle.Render(m.statusMsg) + "\n")
	}
	return truncateToHeight(sb.String(), m.height-4)
}

func (m partnerModel) helpKeys() string {
	return helpEntry("tab", "next field") + "  " + helpEntry("ctrl+s", "submit") + "  " + helpEntry("esc", "back")
}
