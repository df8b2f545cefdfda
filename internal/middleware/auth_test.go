package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func newAuthApp(resolve KeyResolver) *fiber.App {
	app := fiber.New()
	app.Get("/protected", RequireUser(resolve), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"userId": UserID(c)})
	})
	return app
}

func staticResolver(valid map[string]string) KeyResolver {
	return func(c *fiber.Ctx, key string) (string, error) {
		return valid[key], nil
	}
}

func TestRequireUserMissingKey(t *testing.T) {
	app := newAuthApp(staticResolver(map[string]string{"good": "user-1"}))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireUserInvalidKey(t *testing.T) {
	app := newAuthApp(staticResolver(map[string]string{"good": "user-1"}))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("X-API-Key", "bad")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireUserValidKey(t *testing.T) {
	app := newAuthApp(staticResolver(map[string]string{"good": "user-1"}))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("X-API-Key", "good")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireUserBearerFallback(t *testing.T) {
	app := newAuthApp(staticResolver(map[string]string{"good": "user-1"}))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer good")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireUserResolverError(t *testing.T) {
	app := newAuthApp(func(c *fiber.Ctx, key string) (string, error) {
		return "", errors.New("db down")
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("X-API-Key", "any")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}
