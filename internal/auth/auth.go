// Package auth signs the user in with a federated identity and remembers the
// session in the OS keyring. The signed-in user's id keys their document.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/harmony/internal/constants"
	apperrors "github.com/julianstephens/harmony/internal/errors"
	"github.com/julianstephens/harmony/internal/keyring"
	"github.com/julianstephens/harmony/internal/logger"
)

// User is the signed-in identity.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

type Provider interface {
	// SignIn blocks until the user approves or ctx ends.
	SignIn(ctx context.Context) (User, error)
	SignOut(ctx context.Context) error
	// Current returns apperrors.ErrNotSignedIn when nobody is signed in.
	Current() (User, error)
}

// SessionStore persists one serialized session.
type SessionStore interface {
	Get() (string, error)
	Set(string) error
	Delete() error
}

// KeyringSessions stores the session in the OS keyring.
type KeyringSessions struct{}

func (KeyringSessions) Get() (string, error) { return keyring.GetSession() }
func (KeyringSessions) Set(s string) error   { return keyring.SetSession(s) }
func (KeyringSessions) Delete() error        { return keyring.DeleteSession() }

func loadSession(store SessionStore) (User, error) {
	raw, err := store.Get()
	if errors.Is(err, keyring.ErrNotFound) {
		return User{}, apperrors.ErrNotSignedIn
	}
	if err != nil {
		return User{}, err
	}
	var u User
	if err := json.Unmarshal([]byte(raw), &u); err != nil || u.ID == "" {
		logger.Warn("Discarding unreadable session", "error", err)
		return User{}, apperrors.ErrNotSignedIn
	}
	return u, nil
}

func saveSession(store SessionStore, u User) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return store.Set(string(raw))
}

func clearSession(store SessionStore) error {
	if err := store.Delete(); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// UserIDOrLocal returns the signed-in user's id, or the local user id when
// nobody is signed in or the session cannot be read.
func UserIDOrLocal(p Provider) string {
	if p == nil {
		return constants.LocalUserID
	}
	u, err := p.Current()
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotSignedIn) {
			logger.Warn("Failed to read session, using local user", "error", err)
		}
		return constants.LocalUserID
	}
	return u.ID
}
