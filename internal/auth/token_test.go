package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"finledger/internal/models"
)

func testUser() *models.User {
	return &models.User{Base: models.Base{ID: 42}, Username: "alice"}
}

func TestIssueAndVerify(t *testing.T) {
	ti := NewTokenIssuer("test-secret", 30*time.Minute)

	raw, err := ti.Issue(testUser())
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	if raw == "" {
		t.Fatal("expected non-empty token")
	}

	claims, err := ti.Verify(raw)
	if err != nil {
		t.Fatalf("failed to verify token: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("expected user ID 42, got %d", claims.UserID)
	}
	if claims.Username != "alice" {
		t.Errorf("expected username alice, got %s", claims.Username)
	}
	if claims.Subject != "alice" {
		t.Errorf("expected subject alice, got %s", claims.Subject)
	}
}

func TestExpiryWindow(t *testing.T) {
	ttl := 30 * time.Minute
	ti := NewTokenIssuer("test-secret", ttl)

	raw, err := ti.Issue(testUser())
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	claims, err := ti.Verify(raw)
	if err != nil {
		t.Fatalf("failed to verify token: %v", err)
	}

	lifetime := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if lifetime != ttl {
		t.Errorf("expected lifetime %v, got %v", ttl, lifetime)
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	ti := NewTokenIssuer("test-secret", -time.Minute)

	raw, err := ti.Issue(testUser())
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	if _, err := ti.Verify(raw); err == nil {
		t.Error("expected expired token to be rejected")
	}
}

func TestVerifyRejectsTampered(t *testing.T) {
	ti := NewTokenIssuer("test-secret", 30*time.Minute)

	raw, err := ti.Issue(testUser())
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		t.Fatalf("expected 3 token segments, got %d", len(parts))
	}

	// Flip a character in the signature.
	sig := parts[2]
	flipped := "A"
	if strings.HasSuffix(sig, "A") {
		flipped = "B"
	}
	tampered := parts[0] + "." + parts[1] + "." + sig[:len(sig)-1] + flipped

	if _, err := ti.Verify(tampered); err == nil {
		t.Error("expected tampered token to be rejected")
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenIssuer("secret-one", 30*time.Minute)
	verifier := NewTokenIssuer("secret-two", 30*time.Minute)

	raw, err := issuer.Issue(testUser())
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	if _, err := verifier.Verify(raw); err == nil {
		t.Error("expected token signed with a different secret to be rejected")
	}
}

func TestVerifyRejectsUnsignedToken(t *testing.T) {
	ti := NewTokenIssuer("test-secret", 30*time.Minute)

	claims := &Claims{
		UserID:   42,
		Username: "alice",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("failed to build unsigned token: %v", err)
	}

	if _, err := ti.Verify(raw); err == nil {
		t.Error("expected alg=none token to be rejected")
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	ti := NewTokenIssuer("test-secret", 30*time.Minute)

	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := ti.Verify(raw); err == nil {
			t.Errorf("expected %q to be rejected", raw)
		}
	}
}
