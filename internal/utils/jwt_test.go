package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestNewAccessTokenRoundTrip(t *testing.T) {
	at, err := NewAccessToken("secret", 42, 15)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	if at.Token == "" {
		t.Fatal("empty token")
	}
	if remaining := time.Until(at.Exp); remaining < 14*time.Minute || remaining > 16*time.Minute {
		t.Errorf("expiry %v not ~15m out", at.Exp)
	}

	tok, err := jwt.Parse(at.Token, func(tok *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !tok.Valid {
		t.Fatalf("token does not parse: %v", err)
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("claims are not MapClaims")
	}
	if sub, _ := claims["sub"].(float64); uint64(sub) != 42 {
		t.Errorf("sub = %v, want 42", claims["sub"])
	}
}

func TestNewAccessTokenWrongSecretFails(t *testing.T) {
	at, err := NewAccessToken("secret", 42, 15)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	tok, err := jwt.Parse(at.Token, func(tok *jwt.Token) (interface{}, error) {
		return []byte("other-secret"), nil
	})
	if err == nil && tok.Valid {
		t.Error("token verified with the wrong secret")
	}
}
