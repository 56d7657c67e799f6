// Package auth orchestrates signup, password login, and OTP login against
// the delivery API, and owns the persisted session. It holds at most one
// outstanding verification challenge at a time; a new OTP request silently
// supersedes the old one.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/mealdeck/mealdeck/pkg/client"
	"github.com/mealdeck/mealdeck/pkg/domain"
	"github.com/mealdeck/mealdeck/pkg/session"
)

// API is the credential-issuing backend. *client.Client satisfies it; which
// service actually mints tokens is a pluggable capability behind this
// interface.
type API interface {
	SignUp(ctx context.Context, phone, password string) (*client.Credentials, error)
	Login(ctx context.Context, phone, password string) (*client.Credentials, error)
	SendOTP(ctx context.Context, phone string) (string, error)
	VerifyOTP(ctx context.Context, phone, code string) (*client.Credentials, error)
}

// Challenge is the handle for one one-time-code dispatch. It lives in
// memory only, between "OTP requested" and "verified or abandoned".
type Challenge struct {
	Phone    string
	ID       string
	IssuedAt time.Time

	// Verified marks the password-only signup path, where no code is
	// pending and verification is a no-op.
	Verified bool
}

const (
	defaultOTPTTL          = 5 * time.Minute
	defaultDispatchTimeout = 10 * time.Second
)

// Authenticator is the auth state machine. It is the only writer of the
// session store. Not safe for concurrent use; call it from one goroutine.
type Authenticator struct {
	api   API
	store *session.Store

	pending         *Challenge
	ttl             time.Duration
	dispatchTimeout time.Duration
}

// New returns an Authenticator over the given backend and session store.
func New(api API, store *session.Store) *Authenticator {
	return &Authenticator{
		api:             api,
		store:           store,
		ttl:             defaultOTPTTL,
		dispatchTimeout: defaultDispatchTimeout,
	}
}

// Current returns the persisted identity, if logged in.
func (a *Authenticator) Current() (domain.User, bool) {
	u, _, ok := a.store.Current()
	return u, ok
}

// Token returns the persisted bearer token, or "" when logged out.
func (a *Authenticator) Token() string {
	_, token, _ := a.store.Current()
	return token
}

// SignUp registers a new identity bound to phone. The password path issues
// credentials immediately; the returned challenge is already verified and
// VerifySignUp on it is a no-op.
func (a *Authenticator) SignUp(ctx context.Context, phone, password string) (Challenge, error) {
	if !domain.ValidPhone(phone) {
		return Challenge{}, fmt.Errorf("%w: phone must be exactly 10 digits", ErrInvalidInput)
	}
	if password == "" {
		return Challenge{}, fmt.Errorf("%w: password is required", ErrInvalidInput)
	}

	creds, err := a.api.SignUp(ctx, phone, password)
	if err != nil {
		if client.IsStatus(err, http.StatusConflict) {
			return Challenge{}, fmt.Errorf("%w: %s", ErrDuplicateIdentity, client.Message(err))
		}
		return Challenge{}, err
	}
	if err := a.logIn(*creds); err != nil {
		return Challenge{}, err
	}
	return Challenge{Phone: phone, IssuedAt: time.Now(), Verified: true}, nil
}

// VerifySignUp completes phone linking for a pending signup. For the
// password path (already-verified challenge) it succeeds idempotently.
func (a *Authenticator) VerifySignUp(ctx context.Context, ch Challenge, code string) error {
	if ch.Verified {
		return nil
	}
	return a.verify(ctx, ch, code)
}

// LoginWithPassword exchanges phone+password for a session.
func (a *Authenticator) LoginWithPassword(ctx context.Context, phone, password string) error {
	if !domain.ValidPhone(phone) || password == "" {
		return fmt.Errorf("%w: enter phone and password", ErrInvalidInput)
	}
	creds, err := a.api.Login(ctx, phone, password)
	if err != nil {
		if client.IsStatus(err, http.StatusUnauthorized) || client.IsStatus(err, http.StatusBadRequest) {
			return fmt.Errorf("%w: %s", ErrInvalidCredentials, client.Message(err))
		}
		return err
	}
	return a.logIn(*creds)
}

// RequestLoginOtp dispatches a one-time code to phone, superseding any
// prior outstanding challenge. The dispatch waits at most the configured
// bound before failing with ErrDispatch.
func (a *Authenticator) RequestLoginOtp(ctx context.Context, phone string) (Challenge, error) {
	if !domain.ValidPhone(phone) {
		return Challenge{}, fmt.Errorf("%w: phone must be exactly 10 digits", ErrInvalidInput)
	}

	ctx, cancel := context.WithTimeout(ctx, a.dispatchTimeout)
	defer cancel()

	id, err := a.api.SendOTP(ctx, phone)
	if err != nil {
		var httpErr *client.HTTPError
		if errors.As(err, &httpErr) {
			return Challenge{}, err
		}
		// Transport failure or timeout: the code never went out.
		return Challenge{}, fmt.Errorf("%w: %v", ErrDispatch, err)
	}

	ch := Challenge{Phone: phone, ID: id, IssuedAt: time.Now()}
	a.pending = &ch
	return ch, nil
}

// VerifyLoginOtp completes an OTP login. The handle must match the single
// outstanding challenge; a superseded or unknown handle fails with
// ErrNoPendingChallenge, an outlived one with ErrExpiredChallenge.
func (a *Authenticator) VerifyLoginOtp(ctx context.Context, ch Challenge, code string) error {
	return a.verify(ctx, ch, code)
}

func (a *Authenticator) verify(ctx context.Context, ch Challenge, code string) error {
	if a.pending == nil || ch.ID != a.pending.ID {
		return ErrNoPendingChallenge
	}
	if time.Since(a.pending.IssuedAt) > a.ttl {
		a.pending = nil
		return ErrExpiredChallenge
	}
	if code == "" {
		return fmt.Errorf("%w: enter the code", ErrInvalidInput)
	}

	creds, err := a.api.VerifyOTP(ctx, a.pending.Phone, code)
	if err != nil {
		if client.IsStatus(err, http.StatusBadRequest) ||
			client.IsStatus(err, http.StatusUnauthorized) ||
			client.IsStatus(err, http.StatusUnprocessableEntity) {
			// Wrong code: the challenge stays pending so the user can retry.
			return fmt.Errorf("%w: %s", ErrInvalidCode, client.Message(err))
		}
		return err
	}
	return a.logIn(*creds)
}

// logIn is the single transition into the logged-in state: the session is
// written exactly once and any outstanding challenge is discarded.
func (a *Authenticator) logIn(creds client.Credentials) error {
	if err := a.store.Save(creds.User, creds.Token); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	a.pending = nil
	return nil
}

// Logout clears the session and any outstanding challenge. It always
// succeeds; a failed disk delete still leaves the process logged out.
func (a *Authenticator) Logout() {
	a.pending = nil
	a.store.Clear() //nolint:errcheck // best-effort: Current self-repairs partial state
}
