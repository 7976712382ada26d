package auth

import (
	"errors"
	"testing"
	"time"
)

func TestIssueParseRoundTrip(t *testing.T) {
	tokens := NewTokens([]byte("test-secret"), time.Hour)

	tok, err := tokens.Issue("user-1", RoleCustomer)
	if err != nil {
		t.Fatal(err)
	}

	claims, err := tokens.Parse(tok)
	if err != nil {
		t.Fatal(err)
	}
	if claims.Subject != "user-1" {
		t.Errorf("subject = %q", claims.Subject)
	}
	if claims.Role != RoleCustomer {
		t.Errorf("role = %q", claims.Role)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	a := NewTokens([]byte("secret-a"), time.Hour)
	b := NewTokens([]byte("secret-b"), time.Hour)

	tok, err := a.Issue("user-1", RoleAdmin)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := b.Parse(tok); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("got %v, want ErrInvalidToken", err)
	}
}

func TestParseRejectsExpired(t *testing.T) {
	tokens := NewTokens([]byte("test-secret"), -time.Minute)

	tok, err := tokens.Issue("user-1", RoleCustomer)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tokens.Parse(tok); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("got %v, want ErrInvalidToken", err)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	tokens := NewTokens([]byte("test-secret"), time.Hour)
	if _, err := tokens.Parse("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("got %v, want ErrInvalidToken", err)
	}
}
