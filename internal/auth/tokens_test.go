package auth

import (
	"testing"
	"time"
)

func TestIssueAndVerify(t *testing.T) {
	issuer := NewTokenIssuer("jwt-secret", 7*24*time.Hour)

	token, err := issuer.Issue(Claims{Email: "a@x.com", Phone: "+1000", Role: "sender", Status: "active"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Email != "a@x.com" || claims.Phone != "+1000" || claims.Role != "sender" || claims.Status != "active" {
		t.Fatalf("claims do not match issued snapshot: %+v", claims)
	}

	wantExp := time.Now().Add(7 * 24 * time.Hour)
	gotExp := claims.ExpiresAt.Time
	if gotExp.Before(wantExp.Add(-time.Minute)) || gotExp.After(wantExp.Add(time.Minute)) {
		t.Fatalf("expected expiry ~7 days out, got %v", gotExp)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenIssuer("jwt-secret", time.Hour)
	other := NewTokenIssuer("other-secret", time.Hour)

	token, err := issuer.Issue(Claims{Email: "a@x.com"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := other.Verify(token); err == nil {
		t.Fatal("expected verification to fail under a different secret")
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	issuer := NewTokenIssuer("jwt-secret", -time.Minute)

	token, err := issuer.Issue(Claims{Email: "a@x.com"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := issuer.Verify(token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	issuer := NewTokenIssuer("jwt-secret", time.Hour)

	if _, err := issuer.Verify("not.a.token"); err == nil {
		t.Fatal("expected malformed token to be rejected")
	}
}
