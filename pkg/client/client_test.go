package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mealdeck/mealdeck/pkg/domain"
)

func TestLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			http.NotFound(w, r)
			return
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if body["phone"] != "5550100000" || body["password"] != "hunter2" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": "invalid credentials"}) //nolint:errcheck
			return
		}
		json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
			"ok":    true,
			"token": "tok-1",
			"user":  domain.User{ID: "u-1", Phone: "5550100000"},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	creds, err := c.Login(context.Background(), "5550100000", "hunter2")
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	if creds.Token != "tok-1" {
		t.Errorf("Token = %q, want %q", creds.Token, "tok-1")
	}
	if creds.User.ID != "u-1" {
		t.Errorf("User.ID = %q, want %q", creds.User.ID, "u-1")
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": "invalid credentials"}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	_, err := c.Login(context.Background(), "5550100000", "wrong")
	if err == nil {
		t.Fatal("expected error for rejected login")
	}
	if !IsStatus(err, http.StatusUnauthorized) {
		t.Errorf("IsStatus(err, 401) = false, err = %v", err)
	}
	if got := Message(err); got != "invalid credentials" {
		t.Errorf("Message(err) = %q, want %q", got, "invalid credentials")
	}
}

func TestOkFalseOnTwoHundredSurfacesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": "phone already registered"}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	_, err := c.SignUp(context.Background(), "5550100000", "pw")
	if err == nil {
		t.Fatal("expected error for ok:false response")
	}
	if got := Message(err); got != "phone already registered" {
		t.Errorf("Message(err) = %q, want %q", got, "phone already registered")
	}
}

func TestUnparsableErrorBodyFallsBackToStatusText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	_, err := c.SendOTP(context.Background(), "5550100000")
	if err == nil {
		t.Fatal("expected error for 502")
	}
	if !IsStatus(err, http.StatusBadGateway) {
		t.Errorf("IsStatus(err, 502) = false, err = %v", err)
	}
	if !strings.Contains(err.Error(), "502") {
		t.Errorf("error = %q, want it to contain the status", err)
	}
}

func TestSendOTPReturnsVerificationID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/send-otp" {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"ok": true, "verificationId": "v-42"}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	id, err := c.SendOTP(context.Background(), "5550100000")
	if err != nil {
		t.Fatalf("SendOTP() error: %v", err)
	}
	if id != "v-42" {
		t.Errorf("verification id = %q, want %q", id, "v-42")
	}
}

func TestAuthHeaders(t *testing.T) {
	var gotAuth, gotClientID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotClientID = r.Header.Get("X-Client-Id")
		json.NewEncoder(w).Encode(map[string]any{"ok": true, "restaurants": []domain.Restaurant{}}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, "tok-7")
	c.SetClientID("install-1")
	if _, err := c.NearbyRestaurants(context.Background(), 12.9, 77.6, 30); err != nil {
		t.Fatalf("NearbyRestaurants() error: %v", err)
	}
	if gotAuth != "Bearer tok-7" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer tok-7")
	}
	if gotClientID != "install-1" {
		t.Errorf("X-Client-Id = %q, want %q", gotClientID, "install-1")
	}

	// Without a token the header is omitted, not sent empty.
	c.SetToken("")
	if _, err := c.NearbyRestaurants(context.Background(), 12.9, 77.6, 30); err != nil {
		t.Fatal(err)
	}
	if gotAuth != "" {
		t.Errorf("Authorization = %q after SetToken(\"\"), want omitted", gotAuth)
	}
}

func TestRestaurantsByAddressQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("address") != "MG Road" || q.Get("radiusKm") != "30" {
			t.Errorf("query = %v, want address=MG Road radiusKm=30", q)
		}
		json.NewEncoder(w).Encode(map[string]any{"ok": true, "restaurants": []domain.Restaurant{ //nolint:errcheck
			{Name: "Dosa Corner", DistanceKm: 1.2},
		}})
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	got, err := c.RestaurantsByAddress(context.Background(), "MG Road", 30)
	if err != nil {
		t.Fatalf("RestaurantsByAddress() error: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Dosa Corner" {
		t.Errorf("restaurants = %+v, want one Dosa Corner", got)
	}
}

func TestRegisterPartner(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/partners/register-public" {
			http.NotFound(w, r)
			return
		}
		var reg domain.PartnerRegistration
		if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
			t.Errorf("decode registration: %v", err)
		}
		if reg.Name != "Dosa Corner" || len(reg.InitialMenu) != 1 {
			t.Errorf("registration = %+v", reg)
		}
		json.NewEncoder(w).Encode(map[string]any{"ok": true}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	err := c.RegisterPartner(context.Background(), domain.PartnerRegistration{
		OwnerPhone: "5550100000",
		Name:       "Dosa Corner",
		Documents:  map[string]string{"fssai": "data:application/pdf;base64,AA=="},
		InitialMenu: []domain.MenuItem{
			{Title: "Masala Dosa", Price: 80, Category: domain.Breakfast},
		},
	})
	if err != nil {
		t.Fatalf("RegisterPartner() error: %v", err)
	}
}
