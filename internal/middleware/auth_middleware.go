package middleware

import (
	"strings"

	"github.com/itsmrajesh/quizgen-backend/internal/domain"
	"github.com/itsmrajesh/quizgen-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

const (
	AuthorizationHeader = "Authorization"
	BearerSchema        = "Bearer "

	// IdentityKey is the fiber.Ctx locals key the verified identity is
	// stored under.
	IdentityKey = "identity"
)

// Protected requires a valid Google ID token. On success the verified
// identity is stored in the request locals; on failure the request is
// terminated with 401 and never reaches the handler, so no provider or
// ledger access happens for unauthenticated calls.
func Protected(authService service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(AuthorizationHeader)
		if authHeader == "" {
			return domain.NewUnauthorizedError("Authorization header is missing", nil)
		}
		if !strings.HasPrefix(authHeader, BearerSchema) {
			return domain.NewUnauthorizedError("Authorization scheme is not Bearer", nil)
		}

		tokenString := strings.TrimPrefix(authHeader, BearerSchema)
		if tokenString == "" {
			return domain.NewUnauthorizedError("Bearer token is empty", nil)
		}

		identity, err := authService.Authenticate(c.UserContext(), tokenString)
		if err != nil {
			return err
		}

		c.Locals(IdentityKey, identity)
		return c.Next()
	}
}

// IdentityFromCtx returns the identity stored by Protected, or nil when
// the route was not protected.
func IdentityFromCtx(c *fiber.Ctx) *domain.Identity {
	identity, _ := c.Locals(IdentityKey).(*domain.Identity)
	return identity
}
