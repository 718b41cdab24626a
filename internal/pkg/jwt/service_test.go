package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestService() *HMACService {
	return NewHMACService("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := newTestService()
	id := uuid.New()

	tok, err := svc.GenerateAccessToken(id, "a@b.c", "writer", "USER")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := svc.ValidateToken(tok)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != id || claims.Email != "a@b.c" || claims.Nickname != "writer" || claims.Role != "USER" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.TokenType != TokenTypeAccess || svc.IsRefreshToken(claims) {
		t.Fatalf("expected access token type, got %q", claims.TokenType)
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	svc := newTestService()
	id := uuid.New()

	tok, err := svc.GenerateRefreshToken(id)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := svc.ValidateToken(tok)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !svc.IsRefreshToken(claims) {
		t.Fatalf("expected refresh token")
	}
	if claims.UserID != id {
		t.Fatalf("unexpected user id")
	}
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := newTestService()
	if _, err := svc.ValidateToken("not-a-token"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestValidateToken_Expired(t *testing.T) {
	svc := newTestService()
	svc.now = func() time.Time { return time.Now().Add(-time.Hour) }

	tok, err := svc.GenerateAccessToken(uuid.New(), "a@b.c", "", "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	svc.now = time.Now
	if _, err := svc.ValidateToken(tok); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	svc := newTestService()
	other := NewHMACService("different-access", "different-refresh", time.Minute, time.Minute)

	tok, err := svc.GenerateAccessToken(uuid.New(), "a@b.c", "", "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := other.ValidateToken(tok); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
