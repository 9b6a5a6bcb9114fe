package auth_test

import (
	"errors"
	"testing"
	"time"

	"github.com/jobtrackr/jobtrackr/internal/auth"
)

func newTestManager() *auth.Manager {
	return auth.NewManager("test-secret-key", 15*time.Minute, 7*24*time.Hour)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := newTestManager()

	raw, err := m.GenerateAccessToken("user-1", "alice@example.com", "user")

	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := m.VerifyAccessToken(raw)

	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}

	if claims.UserID != "user-1" || claims.Email != "alice@example.com" || claims.Role != "user" {
		t.Fatalf("claims mangled: %+v", claims)
	}

	if claims.TokenType != "access" {
		t.Fatalf("want typ access, got %q", claims.TokenType)
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	m := newTestManager()

	raw, jti, expiresAt, err := m.GenerateRefreshToken("user-1", "alice@example.com", "user")

	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if jti == "" {
		t.Fatalf("expected a jti")
	}

	if !expiresAt.After(time.Now().Add(6 * 24 * time.Hour)) {
		t.Fatalf("expiry too soon: %v", expiresAt)
	}

	claims, err := m.VerifyRefreshToken(raw)

	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}

	if claims.JTI != jti {
		t.Fatalf("jti mismatch: %q vs %q", claims.JTI, jti)
	}
}

func TestTokenTypeConfusionRejected(t *testing.T) {
	m := newTestManager()

	access, err := m.GenerateAccessToken("user-1", "alice@example.com", "user")
	if err != nil {
		t.Fatalf("generate access failed: %v", err)
	}

	refresh, _, _, err := m.GenerateRefreshToken("user-1", "alice@example.com", "user")
	if err != nil {
		t.Fatalf("generate refresh failed: %v", err)
	}

	if _, err := m.VerifyRefreshToken(access); !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("access token must not pass refresh verification, got %v", err)
	}

	if _, err := m.VerifyAccessToken(refresh); !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("refresh token must not pass access verification, got %v", err)
	}
}

func TestWrongSecretRejected(t *testing.T) {
	m := newTestManager()
	other := auth.NewManager("a-different-secret", 15*time.Minute, 7*24*time.Hour)

	raw, err := m.GenerateAccessToken("user-1", "alice@example.com", "user")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := other.VerifyAccessToken(raw); !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("want ErrInvalidToken, got %v", err)
	}
}

func TestTamperedTokenRejected(t *testing.T) {
	m := newTestManager()

	raw, err := m.GenerateAccessToken("user-1", "alice@example.com", "user")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	tampered := raw[:len(raw)-2] + "xx"

	if _, err := m.VerifyAccessToken(tampered); !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("want ErrInvalidToken, got %v", err)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	m := auth.NewManager("test-secret-key", -time.Minute, -time.Minute)

	raw, err := m.GenerateAccessToken("user-1", "alice@example.com", "user")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := m.VerifyAccessToken(raw); !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("want ErrInvalidToken, got %v", err)
	}
}

func TestHashRefreshTokenIsDeterministic(t *testing.T) {
	m := newTestManager()

	h1 := m.HashRefreshToken("token-a")
	h2 := m.HashRefreshToken("token-a")
	h3 := m.HashRefreshToken("token-b")

	if h1 != h2 {
		t.Fatalf("hash not deterministic")
	}

	if h1 == h3 {
		t.Fatalf("different tokens hashed identically")
	}

	// keyed hash: a manager with another secret produces another digest
	other := auth.NewManager("a-different-secret", 15*time.Minute, 7*24*time.Hour)

	if other.HashRefreshToken("token-a") == h1 {
		t.Fatalf("hash should depend on the secret")
	}
}
