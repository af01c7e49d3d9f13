package jwt

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/rirekisho/pkg/auth"
)

func newApp(secret, issuer string) *fiber.App {
	app := fiber.New()
	app.Get("/me", NewAuthMiddleware(secret, issuer), func(c *fiber.Ctx) error {
		id, ok := UserID(c)
		if !ok {
			return c.SendStatus(http.StatusInternalServerError)
		}
		return c.JSON(fiber.Map{"id": id.String(), "email": Email(c)})
	})
	return app
}

func TestMiddlewareAcceptsGeneratedToken(t *testing.T) {
	user := auth.User{ID: uuid.New(), Email: "taro@example.com"}
	token, err := NewGenerator("secret", "rirekisho", time.Hour).Generate(context.Background(), user)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := newApp("secret", "rirekisho").Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMiddlewareRejects(t *testing.T) {
	user := auth.User{ID: uuid.New()}
	wrongIssuer, err := NewGenerator("secret", "other", time.Hour).Generate(context.Background(), user)
	require.NoError(t, err)
	expired, err := NewGenerator("secret", "rirekisho", -time.Minute).Generate(context.Background(), user)
	require.NoError(t, err)
	wrongKey, err := NewGenerator("nope", "rirekisho", time.Hour).Generate(context.Background(), user)
	require.NoError(t, err)

	app := newApp("secret", "rirekisho")
	for name, header := range map[string]string{
		"missing":      "",
		"garbage":      "Bearer abc",
		"issuer":       "Bearer " + wrongIssuer,
		"expired":      "Bearer " + expired,
		"wrong secret": wrongKey,
	} {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		resp, err := app.Test(req)
		require.NoError(t, err, name)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, name)
	}
}
