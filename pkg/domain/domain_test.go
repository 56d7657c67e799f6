package domain

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidMealType(t *testing.T) {
	for _, mt := range MealTypes {
		if !ValidMealType(mt) {
			t.Errorf("ValidMealType(%s) = false", mt)
		}
	}
	for _, bad := range []MealType{"Snacks", "breakfast", ""} {
		if ValidMealType(bad) {
			t.Errorf("ValidMealType(%q) = true", bad)
		}
	}
}

func TestCartItemDaysDefault(t *testing.T) {
	tests := []struct {
		planDays int
		want     int
	}{
		{0, 7},
		{-1, 7},
		{2, 2},
		{30, 30},
	}
	for _, tt := range tests {
		got := CartItem{PlanDays: tt.planDays}.Days()
		if got != tt.want {
			t.Errorf("Days() with PlanDays=%d = %d, want %d", tt.planDays, got, tt.want)
		}
	}
}

func TestValidPhone(t *testing.T) {
	tests := []struct {
		phone string
		want  bool
	}{
		{"5550100000", true},
		{"555010000", false},
		{"55501000001", false},
		{"555-010000", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ValidPhone(tt.phone); got != tt.want {
			t.Errorf("ValidPhone(%q) = %v, want %v", tt.phone, got, tt.want)
		}
	}
}

func TestMissingDocuments(t *testing.T) {
	reg := PartnerRegistration{Documents: map[string]string{
		"fssai":            "data:...",
		"pan":              "data:...",
		"owner_id":         "data:...",
		"owner_address":    "data:...",
		"premises_address": "data:...",
	}}
	if missing := reg.MissingDocuments(); len(missing) != 0 {
		t.Errorf("MissingDocuments() = %v with all required present", missing)
	}

	delete(reg.Documents, "pan")
	delete(reg.Documents, "fssai")
	missing := reg.MissingDocuments()
	if len(missing) != 2 {
		t.Fatalf("MissingDocuments() = %v, want 2 entries", missing)
	}
	// Optional documents never appear.
	for _, label := range missing {
		if label == "GST Registration" || label == "Trade License" {
			t.Errorf("optional document %q reported missing", label)
		}
	}
}

func TestEncodeDocumentFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "license.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4"), 0600); err != nil {
		t.Fatal(err)
	}
	got, err := EncodeDocumentFile(path)
	if err != nil {
		t.Fatalf("EncodeDocumentFile: %v", err)
	}
	if !strings.HasPrefix(got, "data:application/pdf;base64,") {
		t.Errorf("data URL = %q, want application/pdf prefix", got)
	}

	if _, err := EncodeDocumentFile(filepath.Join(t.TempDir(), "absent.png")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSuppliersForUnknownCategory(t *testing.T) {
	if got := SuppliersFor(MealType("Snacks")); got != nil {
		t.Errorf("SuppliersFor(Snacks) = %v, want nil", got)
	}
	if got := SuppliersFor(Breakfast); len(got) == 0 {
		t.Error("SuppliersFor(Breakfast) is empty")
	}
}
