package domain

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DocumentKind describes one upload slot on the partner registration form.
type DocumentKind struct {
	Key      string
	Label    string
	Required bool
}

// PartnerDocuments lists the registration documents in form order.
var PartnerDocuments = []DocumentKind{
	{"fssai", "FSSAI License", true},
	{"gst", "GST Registration", false},
	{"pan", "PAN Card", true},
	{"owner_id", "Owner's ID Proof", true},
	{"owner_address", "Owner's Address Proof", true},
	{"premises_address", "Restaurant Premises Address Proof", true},
	{"shop_establish", "Shop and Establishment License", false},
	{"trade", "Trade License", false},
}

// MenuItem is one dish in a partner's initial menu submission.
type MenuItem struct {
	Title     string   `json:"title"`
	Price     float64  `json:"price"`
	Category  MealType `json:"category"`
	ImageData string   `json:"imageData,omitempty"`
}

// PartnerRegistration is the public partner-onboarding payload.
// Documents maps document keys to data-URL encoded file contents.
type PartnerRegistration struct {
	OwnerPhone  string            `json:"ownerPhone"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Documents   map[string]string `json:"documents"`
	InitialMenu []MenuItem        `json:"initialMenu"`
}

// MissingDocuments returns the labels of required documents absent from r.
func (r PartnerRegistration) MissingDocuments() []string {
	var missing []string
	for _, d := range PartnerDocuments {
		if d.Required && r.Documents[d.Key] == "" {
			missing = append(missing, d.Label)
		}
	}
	return missing
}

// EncodeDocumentFile reads a local file and returns it as a data URL,
// the wire format the registration endpoint expects for uploads.
func EncodeDocumentFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read document: %w", err)
	}
	mime := "application/octet-stream"
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		mime = "image/png"
	case ".jpg", ".jpeg":
		mime = "image/jpeg"
	case ".pdf":
		mime = "application/pdf"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
