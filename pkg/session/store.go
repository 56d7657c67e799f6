// Package session persists the authenticated session (identity + token)
// across runs behind a small key/value port, so any durable local store
// can back it.
package session

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/mealdeck/mealdeck/pkg/domain"
)

// Well-known keys. Token and user are written and read as a pair.
const (
	keyToken    = "token"
	keyUser     = "user"
	keyClientID = "client_id"
)

// Store owns the persisted session. The auth layer is its only writer;
// everything else reads.
type Store struct {
	kv KV
}

// NewStore returns a session store backed by kv.
func NewStore(kv KV) *Store {
	return &Store{kv: kv}
}

// Current returns the persisted identity and token. Both keys must be
// present; partial presence reads as logged out and is repaired by
// clearing whichever key remains.
func (s *Store) Current() (domain.User, string, bool) {
	token, haveToken := s.kv.Get(keyToken)
	raw, haveUser := s.kv.Get(keyUser)
	if !haveToken || !haveUser {
		if haveToken || haveUser {
			s.Clear() //nolint:errcheck // best-effort repair of a torn session
		}
		return domain.User{}, "", false
	}
	var u domain.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		s.Clear() //nolint:errcheck // unreadable identity: treat as logged out
		return domain.User{}, "", false
	}
	return u, token, true
}

// Save persists identity and token together.
func (s *Store) Save(u domain.User, token string) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := s.kv.Set(keyToken, token); err != nil {
		return err
	}
	if err := s.kv.Set(keyUser, string(raw)); err != nil {
		return err
	}
	return nil
}

// Clear removes both session keys. The client id survives logout.
func (s *Store) Clear() error {
	if err := s.kv.Delete(keyToken); err != nil {
		return err
	}
	return s.kv.Delete(keyUser)
}

// ClientID returns the stable per-install identifier, generating and
// persisting one on first use.
func (s *Store) ClientID() (string, error) {
	if id, ok := s.kv.Get(keyClientID); ok && id != "" {
		return id, nil
	}
	id := uuid.NewString()
	if err := s.kv.Set(keyClientID, id); err != nil {
		return "", err
	}
	return id, nil
}
