package middleware

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/lenden-pay/lenden/internal/auth"
)

// ClaimsLocal is the fiber.Ctx locals key under which verified token claims
// are stored for downstream handlers.
const ClaimsLocal = "auth_claims"

// BearerAuth returns a middleware guarding protected routes. A missing or
// malformed Authorization header fails closed with 401; a token that does not
// verify (bad signature, expired, garbage) fails closed with 403. The
// middleware does not consult the directory; the consuming handler re-fetches
// the record itself.
func BearerAuth(tokens *auth.TokenIssuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authz := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			return fiber.NewError(http.StatusUnauthorized, "Forbidden access")
		}
		raw := strings.TrimSpace(authz[len("Bearer "):])
		claims, err := tokens.Verify(raw)
		if err != nil {
			return fiber.NewError(http.StatusForbidden, "Unauthorized access")
		}
		c.Locals(ClaimsLocal, claims)
		return c.Next()
	}
}
