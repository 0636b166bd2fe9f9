package auth

import (
	"encoding/json"
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultMaxAge is how long a bearer token is trusted after issuance when
// the token itself does not carry an expiry.
const DefaultMaxAge = 10 * time.Minute

// Session holds the bearer token for a run together with its issue time.
// Single writer, single reader: the poll loop only ever reads it.
type Session struct {
	Token    string    `json:"token"`
	IssuedAt time.Time `json:"issued_at"`
}

func NewSession(token string, issuedAt time.Time) Session {
	return Session{Token: token, IssuedAt: issuedAt}
}

// AuthHeader formats the Authorization header value.
func (s Session) AuthHeader() string {
	return "Bearer " + s.Token
}

// Age is the elapsed time since the token was issued.
func (s Session) Age(now time.Time) time.Duration {
	return now.Sub(s.IssuedAt)
}

// Stale reports whether the token is past maxAge. Stale sessions are not
// trusted for booking, but the caller decides what to do about it; the run
// keeps operating and only warns.
func (s Session) Stale(now time.Time, maxAge time.Duration) bool {
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	return s.Age(now) > maxAge
}

// ExpiresAt returns the token's own exp claim when it is a parseable JWT,
// otherwise IssuedAt plus maxAge. The claim is read without signature
// verification; it only feeds the staleness warning.
func (s Session) ExpiresAt(maxAge time.Duration) time.Time {
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	fallback := s.IssuedAt.Add(maxAge)

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(s.Token, claims); err != nil {
		return fallback
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return fallback
	}
	return exp.Time
}

// Store persists the session to a small JSON state file so a token issued
// in the last few minutes can be reused across runs.
type Store struct {
	Path string
}

func NewStore(path string) *Store {
	return &Store{Path: path}
}

// Load reads the stored session. A missing file returns ok=false, not an
// error.
func (st *Store) Load() (Session, bool, error) {
	data, err := os.ReadFile(st.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Session{}, false, nil
		}
		return Session{}, false, err
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return Session{}, false, err
	}
	if s.Token == "" {
		return Session{}, false, nil
	}
	return s, true, nil
}

func (st *Store) Save(s Session) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(st.Path, data, 0o600)
}
