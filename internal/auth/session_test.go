package auth

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestSessionStale(t *testing.T) {
	t.Parallel()
	issued := time.Date(2021, 6, 15, 10, 0, 0, 0, time.UTC)
	s := NewSession("tok", issued)

	tests := []struct {
		name  string
		now   time.Time
		stale bool
	}{
		{"fresh", issued.Add(time.Minute), false},
		{"at the boundary", issued.Add(10 * time.Minute), false},
		{"just past", issued.Add(10*time.Minute + time.Second), true},
		{"long past", issued.Add(time.Hour), true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := s.Stale(tt.now, 10*time.Minute); got != tt.stale {
				t.Fatalf("Stale(%s) = %v, want %v", tt.now, got, tt.stale)
			}
		})
	}
}

func TestExpiresAtPrefersJWTClaim(t *testing.T) {
	t.Parallel()
	issued := time.Date(2021, 6, 15, 10, 0, 0, 0, time.UTC)
	exp := issued.Add(14 * time.Minute)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte("irrelevant"))
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}

	s := NewSession(signed, issued)
	if got := s.ExpiresAt(10 * time.Minute); !got.Equal(exp) {
		t.Fatalf("ExpiresAt() = %s, want the exp claim %s", got, exp)
	}
}

func TestExpiresAtFallsBackForOpaqueToken(t *testing.T) {
	t.Parallel()
	issued := time.Date(2021, 6, 15, 10, 0, 0, 0, time.UTC)
	s := NewSession("not-a-jwt", issued)
	want := issued.Add(10 * time.Minute)
	if got := s.ExpiresAt(10 * time.Minute); !got.Equal(want) {
		t.Fatalf("ExpiresAt() = %s, want %s", got, want)
	}
}

func TestStoreRoundTrip(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewStore(path)

	if _, ok, err := store.Load(); err != nil || ok {
		t.Fatalf("Load() on missing file = ok=%v err=%v, want ok=false err=nil", ok, err)
	}

	issued := time.Date(2021, 6, 15, 10, 0, 0, 0, time.UTC)
	if err := store.Save(NewSession("tok", issued)); err != nil {
		t.Fatalf("Save() = %v", err)
	}

	got, ok, err := store.Load()
	if err != nil || !ok {
		t.Fatalf("Load() = ok=%v err=%v", ok, err)
	}
	if got.Token != "tok" || !got.IssuedAt.Equal(issued) {
		t.Fatalf("Load() = %+v", got)
	}
}
