package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/lenden-pay/lenden/internal/auth"
)

func newAuthTestApp(tokens *auth.TokenIssuer) *fiber.App {
	app := fiber.New()
	app.Get("/protected", BearerAuth(tokens), func(c *fiber.Ctx) error {
		claims, ok := c.Locals(ClaimsLocal).(auth.Claims)
		if !ok {
			return fiber.NewError(fiber.StatusInternalServerError, "claims missing from context")
		}
		return c.JSON(fiber.Map{"email": claims.Email, "role": claims.Role})
	})
	return app
}

func TestBearerAuthMissingHeader(t *testing.T) {
	app := newAuthTestApp(auth.NewTokenIssuer("jwt-secret", time.Hour))

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/protected", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestBearerAuthMalformedHeader(t *testing.T) {
	app := newAuthTestApp(auth.NewTokenIssuer("jwt-secret", time.Hour))

	req := httptest.NewRequest(fiber.MethodGet, "/protected", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Token abc")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestBearerAuthInvalidToken(t *testing.T) {
	app := newAuthTestApp(auth.NewTokenIssuer("jwt-secret", time.Hour))

	req := httptest.NewRequest(fiber.MethodGet, "/protected", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer not.a.token")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
}

func TestBearerAuthExpiredToken(t *testing.T) {
	expired := auth.NewTokenIssuer("jwt-secret", -time.Minute)
	app := newAuthTestApp(auth.NewTokenIssuer("jwt-secret", time.Hour))

	token, err := expired.Issue(auth.Claims{Email: "a@x.com"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	req := httptest.NewRequest(fiber.MethodGet, "/protected", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403 for expired token, got %d", resp.StatusCode)
	}
}

func TestBearerAuthAttachesClaims(t *testing.T) {
	tokens := auth.NewTokenIssuer("jwt-secret", time.Hour)
	app := newAuthTestApp(tokens)

	token, err := tokens.Issue(auth.Claims{Email: "a@x.com", Role: "sender"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	req := httptest.NewRequest(fiber.MethodGet, "/protected", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}
