package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	apperrors "github.com/spec-kit/shop-directory/pkg/util"
)

const shopIDKey = "auth_shop_id"

// AuthMiddleware validates bearer tokens on protected routes.
type AuthMiddleware struct {
	tokens *TokenManager
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Handle rejects the request unless it carries a valid bearer token.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	shopID, err := m.tokens.ParseToken(strings.TrimSpace(parts[1]))
	if err != nil {
		return apperrors.NewUnauthorized("token or session expired")
	}
	if _, err := uuid.Parse(shopID); err != nil {
		return apperrors.NewUnauthorized("token or session expired")
	}

	c.Locals(shopIDKey, shopID)
	return c.Next()
}

// ShopIDFromContext retrieves the authenticated shop id.
func ShopIDFromContext(c *fiber.Ctx) (string, bool) {
	id, ok := c.Locals(shopIDKey).(string)
	return id, ok && id != ""
}
