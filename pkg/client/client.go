// Package client consumes the MealDeck delivery API. Every response uses
// the {ok, ...} | {ok:false, error} envelope; authenticated calls carry the
// stored token as a bearer credential.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/mealdeck/mealdeck/pkg/domain"
)

// Client is the MealDeck API client.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu       sync.RWMutex
	token    string
	clientID string
}

// New creates a new API client. token may be empty for anonymous use.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetToken replaces the bearer credential for subsequent requests.
// An empty token drops the Authorization header.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the bearer credential currently in use.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// SetClientID sets the stable install identifier sent as X-Client-Id.
func (c *Client) SetClientID(id string) {
	c.mu.Lock()
	c.clientID = id
	c.mu.Unlock()
}

// envelope is the shared response wrapper.
type envelope struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

func (e *envelope) result() (bool, string) {
	return e.OK, e.Error
}

// enveloped is implemented by response types embedding envelope.
type enveloped interface {
	result() (ok bool, msg string)
}

// Credentials is the issued identity + bearer token pair.
type Credentials struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

type credentialsResponse struct {
	envelope
	Credentials
}

// SignUp registers a new identity bound to phone.
func (c *Client) SignUp(ctx context.Context, phone, password string) (*Credentials, error) {
	var res credentialsResponse
	if err := c.post(ctx, "/auth/signup", map[string]string{"phone": phone, "password": password}, &res); err != nil {
		return nil, fmt.Errorf("client.SignUp: %w", err)
	}
	return &res.Credentials, nil
}

// Login exchanges phone+password for credentials.
func (c *Client) Login(ctx context.Context, phone, password string) (*Credentials, error) {
	var res credentialsResponse
	if err := c.post(ctx, "/auth/login", map[string]string{"phone": phone, "password": password}, &res); err != nil {
		return nil, fmt.Errorf("client.Login: %w", err)
	}
	return &res.Credentials, nil
}

// SendOTP dispatches a one-time code to phone and returns the
// verification id identifying the dispatch.
func (c *Client) SendOTP(ctx context.Context, phone string) (string, error) {
	var res struct {
		envelope
		VerificationID string `json:"verificationId"`
	}
	if err := c.post(ctx, "/auth/send-otp", map[string]string{"phone": phone}, &res); err != nil {
		return "", fmt.Errorf("client.SendOTP: %w", err)
	}
	return res.VerificationID, nil
}

// VerifyOTP exchanges phone+code for credentials.
func (c *Client) VerifyOTP(ctx context.Context, phone, code string) (*Credentials, error) {
	var res credentialsResponse
	if err := c.post(ctx, "/auth/verify-otp", map[string]string{"phone": phone, "code": code}, &res); err != nil {
		return nil, fmt.Errorf("client.VerifyOTP: %w", err)
	}
	return &res.Credentials, nil
}

type restaurantsResponse struct {
	envelope
	Restaurants []domain.Restaurant `json:"restaurants"`
}

// NearbyRestaurants searches for restaurants around a coordinate.
func (c *Client) NearbyRestaurants(ctx context.Context, lat, lng, radiusKm float64) ([]domain.Restaurant, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lng", strconv.FormatFloat(lng, 'f', -1, 64))
	params.Set("radiusKm", strconv.FormatFloat(radiusKm, 'f', -1, 64))

	var res restaurantsResponse
	if err := c.get(ctx, "/restaurants?"+params.Encode(), &res); err != nil {
		return nil, fmt.Errorf("client.NearbyRestaurants: %w", err)
	}
	return res.Restaurants, nil
}

// RestaurantsByAddress searches for restaurants around a free-form address.
func (c *Client) RestaurantsByAddress(ctx context.Context, address string, radiusKm float64) ([]domain.Restaurant, error) {
	params := url.Values{}
	params.Set("address", address)
	params.Set("radiusKm", strconv.FormatFloat(radiusKm, 'f', -1, 64))

	var res restaurantsResponse
	if err := c.get(ctx, "/restaurants?"+params.Encode(), &res); err != nil {
		return nil, fmt.Errorf("client.RestaurantsByAddress: %w", err)
	}
	return res.Restaurants, nil
}

// RegisterPartner submits a public partner registration.
func (c *Client) RegisterPartner(ctx context.Context, reg domain.PartnerRegistration) error {
	var res struct{ envelope }
	if err := c.post(ctx, "/partners/register-public", reg, &res); err != nil {
		return fmt.Errorf("client.RegisterPartner: %w", err)
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, body any, out enveloped) error {
	return c.doRequest(ctx, http.MethodPost, path, body, out)
}

func (c *Client) get(ctx context.Context, path string, out enveloped) error {
	return c.doRequest(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any, out enveloped) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.mu.RLock()
	token, clientID := c.token, c.clientID
	c.mu.RUnlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if clientID != "" {
		req.Header.Set("X-Client-Id", clientID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max error body
		if readErr != nil {
			return &HTTPError{StatusCode: resp.StatusCode, Message: resp.Status}
		}
		var apiErr envelope
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error != "" {
			return &HTTPError{StatusCode: resp.StatusCode, Message: apiErr.Error}
		}
		if len(bytes.TrimSpace(respBody)) > 0 {
			return &HTTPError{StatusCode: resp.StatusCode, Message: string(respBody)}
		}
		return &HTTPError{StatusCode: resp.StatusCode, Message: resp.Status}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if ok, msg := out.result(); !ok {
		if msg == "" {
			msg = resp.Status
		}
		return &HTTPError{StatusCode: resp.StatusCode, Message: msg}
	}
	return nil
}
