package auth

import (
	"testing"
	"time"
)

func TestBuildAndParseJWT(t *testing.T) {
	secret := []byte("test-secret-min-32-chars!!")
	tok, err := BuildJWT(secret, "mariana", TokenAccess, time.Hour)
	if err != nil {
		t.Fatalf("BuildJWT: %v", err)
	}
	claims, err := ParseJWT(secret, tok)
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.Username != "mariana" || claims.TokenType != TokenAccess {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

func TestParseJWT_WrongSecret(t *testing.T) {
	tok, err := BuildJWT([]byte("secret-a-0123456789-0123456789!!"), "mariana", TokenAccess, time.Hour)
	if err != nil {
		t.Fatalf("BuildJWT: %v", err)
	}
	if _, err := ParseJWT([]byte("secret-b-0123456789-0123456789!!"), tok); err == nil {
		t.Fatal("expected error for wrong secret")
	}
}

func TestParseJWT_Expired(t *testing.T) {
	secret := []byte("test-secret-min-32-chars!!")
	tok, err := BuildJWT(secret, "mariana", TokenRefresh, -time.Minute)
	if err != nil {
		t.Fatalf("BuildJWT: %v", err)
	}
	if _, err := ParseJWT(secret, tok); err == nil {
		t.Fatal("expected error for expired token")
	}
}
