package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// parse verifies a token with the issuer's key and clock.
func parse(i *Issuer, token string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now), jwt.WithValidMethods([]string{"HS256"}))
	return claims, err
}

func TestIssueAndParse(t *testing.T) {
	iss := NewIssuer("test-secret", time.Hour)

	tok, err := iss.Issue("user-1", "a@b.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := parse(iss, tok)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.Subject != "user-1" || claims.Email != "a@b.com" {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestParse_WrongSecret(t *testing.T) {
	tok, _ := NewIssuer("one", time.Hour).Issue("u", "e@x.com")
	if _, err := parse(NewIssuer("two", time.Hour), tok); err == nil {
		t.Fatal("expected signature error")
	}
}

func TestParse_Expired(t *testing.T) {
	iss := NewIssuer("s", time.Minute)
	base := time.Date(2024, 11, 10, 12, 0, 0, 0, time.UTC)
	iss.now = func() time.Time { return base }

	tok, err := iss.Issue("u", "e@x.com")
	if err != nil {
		t.Fatal(err)
	}

	iss.now = func() time.Time { return base.Add(2 * time.Minute) }
	if _, err := parse(iss, tok); err == nil {
		t.Fatal("expected expiry error")
	}
}

func TestNewIssuer_EmptySecretStillSigns(t *testing.T) {
	iss := NewIssuer("", 0)
	tok, err := iss.Issue("u", "e@x.com")
	if err != nil || tok == "" {
		t.Fatalf("expected token with fallback secret, got %q %v", tok, err)
	}
}
