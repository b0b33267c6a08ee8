package auth

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/shop-directory/pkg/util"
)

func newProtectedApp(tm *TokenManager) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).SendString(de.Code)
		},
	})
	app.Get("/me", NewAuthMiddleware(tm).Handle, func(c *fiber.Ctx) error {
		id, ok := ShopIDFromContext(c)
		if !ok {
			return fiber.ErrInternalServerError
		}
		return c.SendString(id)
	})
	return app
}

func TestAuthMiddleware(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	shopID := uuid.NewString()
	valid, _, err := tm.GenerateToken(shopID)
	require.NoError(t, err)
	notUUID, _, err := tm.GenerateToken("not-a-uuid")
	require.NoError(t, err)
	foreign, _, err := NewTokenManager("other", time.Hour).GenerateToken(shopID)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{name: "valid", header: "Bearer " + valid, status: http.StatusOK, body: shopID},
		{name: "lowercase scheme", header: "bearer " + valid, status: http.StatusOK, body: shopID},
		{name: "missing", header: "", status: http.StatusUnauthorized, body: "UNAUTHORIZED"},
		{name: "no scheme", header: valid, status: http.StatusUnauthorized, body: "UNAUTHORIZED"},
		{name: "garbage", header: "Bearer abc.def.ghi", status: http.StatusUnauthorized, body: "UNAUTHORIZED"},
		{name: "foreign signature", header: "Bearer " + foreign, status: http.StatusUnauthorized, body: "UNAUTHORIZED"},
		{name: "subject not uuid", header: "Bearer " + notUUID, status: http.StatusUnauthorized, body: "UNAUTHORIZED"},
	}

	app := newProtectedApp(tm)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			body, _ := io.ReadAll(resp.Body)
			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.body, string(body))
		})
	}
}
