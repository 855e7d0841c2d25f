// Package session is the single owner of the cached auth identity. The SPA
// kept these values under fixed local-storage keys; here they live in one
// JSON file behind a typed store so no call site reads tokens ad hoc.
package session

import (
	"encoding/json"
	"errors"
	"os"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const filePerm = 0600

// ErrNoSession is returned when no session has been persisted yet or the
// session was cleared by a forced logout.
var ErrNoSession = errors.New("no active session")

type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	UserID       string    `json:"user_id"`
	UserRole     string    `json:"user_role"`
	UserEmail    string    `json:"user_email"`
	SessionStart time.Time `json:"session_start"`
}

// Expired reports whether the access token carries an exp claim in the past.
// The claim is read without signature verification, and a token that does not
// parse as a JWT is not treated as expired; the backend remains the authority
// and still rejects bad tokens with token_not_valid.
func (s *Session) Expired(now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.AccessToken, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Time.Before(now)
}

type Store struct {
	mu   sync.Mutex
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (st *Store) Load() (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	raw, err := os.ReadFile(st.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSession
		}
		return nil, err
	}

	sess := &Session{}
	if err := json.Unmarshal(raw, sess); err != nil {
		return nil, err
	}
	if sess.AccessToken == "" {
		return nil, ErrNoSession
	}
	return sess, nil
}

func (st *Store) Save(sess *Session) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	raw, err := json.MarshalIndent(sess, "", " ")
	if err != nil {
		return err
	}
	return os.WriteFile(st.path, raw, filePerm)
}

// Clear removes the persisted session. Used by the forced-logout path when
// the backend reports token_not_valid.
func (st *Store) Clear() error {
	st.mu.Lock()
	defer st.mu.Unlock()

	if err := os.Remove(st.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// AccessToken loads the session and returns the bearer token.
func (st *Store) AccessToken() (string, error) {
	sess, err := st.Load()
	if err != nil {
		return "", err
	}
	return sess.AccessToken, nil
}
