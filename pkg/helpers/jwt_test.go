package helpers

import (
	"testing"
	"time"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	m := NewJWTManager("secret-one", time.Hour)

	token, exp, err := m.GenerateSessionToken("alice", "sid-123")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !exp.After(time.Now()) {
		t.Fatalf("expiry not in the future: %v", exp)
	}

	claims, err := m.ParseSessionToken(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserName != "alice" || claims.SessionID != "sid-123" {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

func TestSessionTokenWrongSecret(t *testing.T) {
	m := NewJWTManager("secret-one", time.Hour)
	token, _, err := m.GenerateSessionToken("alice", "sid-123")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	other := NewJWTManager("secret-two", time.Hour)
	if _, err := other.ParseSessionToken(token); err == nil {
		t.Fatal("token validated under a different secret")
	}
}

func TestSessionTokenExpired(t *testing.T) {
	m := NewJWTManager("secret-one", -time.Minute)
	token, _, err := m.GenerateSessionToken("alice", "sid-123")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := m.ParseSessionToken(token); err == nil {
		t.Fatal("expired token validated")
	}
}
