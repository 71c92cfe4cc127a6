package http_test

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/ArmandoPeralta0405/app-erp-sub001/internal/interfaces/http"
	"github.com/ArmandoPeralta0405/app-erp-sub001/pkg/jwt"
)

const testSecret = "secreto-de-prueba"

// buildApp app mínima con el middleware bajo prueba y un handler que refleja
// el userID resuelto.
func buildApp(secret string) *fiber.App {
	app := fiber.New()
	app.Use(apphttp.AuthMiddleware(secret))
	app.Get("/quien-soy", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": apphttp.GetUserID(c)})
	})
	return app
}

// ──────────────────────────────────────────────────────────────────────────────
// Rechazos
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinHeader(t *testing.T) {
	app := buildApp(testSecret)

	req := httptest.NewRequest("GET", "/quien-soy", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

func TestAuthMiddleware_FormatoInvalido(t *testing.T) {
	app := buildApp(testSecret)

	for _, header := range []string{"token-sin-esquema", "Basic abc123", "Bearer "} {
		req := httptest.NewRequest("GET", "/quien-soy", nil)
		req.Header.Set("Authorization", header)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, "header %q debe rechazarse", header)
	}
}

func TestAuthMiddleware_FirmaIncorrecta(t *testing.T) {
	app := buildApp(testSecret)

	token, err := jwt.Generate("otro-secreto", 10, "aperalta", "app-erp", 60)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/quien-soy", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

func TestAuthMiddleware_TokenExpirado(t *testing.T) {
	app := buildApp(testSecret)

	token, err := jwt.Generate(testSecret, 10, "aperalta", "app-erp", -5)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/quien-soy", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Camino feliz
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_TokenValido(t *testing.T) {
	app := buildApp(testSecret)

	token, err := jwt.Generate(testSecret, 77, "aperalta", "app-erp", 60)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/quien-soy", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `"user_id":77`, "el userID del claim queda disponible para los handlers")
}

func TestAuthMiddleware_EsquemaCaseInsensitive(t *testing.T) {
	app := buildApp(testSecret)

	token, err := jwt.Generate(testSecret, 77, "aperalta", "app-erp", 60)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/quien-soy", nil)
	req.Header.Set("Authorization", "bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
