package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcsalazar/abasto-api/internal/domain/entity"
	apphttp "github.com/jcsalazar/abasto-api/internal/interfaces/http"
	pkgjwt "github.com/jcsalazar/abasto-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testUnitID    = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "abasto-api-test"
	testExpMin    = 60
)

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para parsear el JWT y cargar locals
//   - RequireCapability para autorizar la acción
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(action string) *fiber.App {
	app := fiber.New(fiber.Config{
		// Silenciar errores internos en los tests
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireCapability(action),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":   true,
				"role": apphttp.GetRole(c),
			})
		},
	)
	return app
}

// tokenForRole genera un JWT con el rol indicado.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testUnitID, role, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireCapability
// ──────────────────────────────────────────────────────────────────────────────

// El comprador puede finalizar compras → HTTP 200.
func TestRequireCapability_CompradorFinalizaCompras(t *testing.T) {
	app := buildTestApp(apphttp.ActionFinalizePurchase)
	resp := doRequest(t, app, tokenForRole(t, entity.RoleComprador))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"comprador debe poder finalizar compras")

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, entity.RoleComprador, body["role"])
}

// El solicitante no mueve stock → HTTP 403 Forbidden.
func TestRequireCapability_SolicitanteNoMueveStock(t *testing.T) {
	app := buildTestApp(apphttp.ActionMoveStock)
	resp := doRequest(t, app, tokenForRole(t, entity.RoleSolicitante))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN",
		"la respuesta de error debe incluir el código FORBIDDEN")
}

// El admin pasa cualquier acción, incluso una desconocida.
func TestRequireCapability_AdminPasaTodo(t *testing.T) {
	app := buildTestApp("accion.inventada")
	resp := doRequest(t, app, tokenForRole(t, entity.RoleAdmin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// Sin header Authorization → HTTP 401 con MISSING_TOKEN.
func TestAuthMiddleware_SinToken(t *testing.T) {
	app := buildTestApp(apphttp.ActionViewDashboard)
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

// Token firmado con otro secreto → HTTP 401 con INVALID_TOKEN.
func TestAuthMiddleware_TokenConOtroSecreto(t *testing.T) {
	app := buildTestApp(apphttp.ActionViewDashboard)
	tok, err := pkgjwt.Generate("otro-secreto", testUserID, testUnitID, entity.RoleAdmin, testIssuer, testExpMin)
	require.NoError(t, err)
	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

// Header sin el esquema Bearer → HTTP 401.
func TestAuthMiddleware_FormatoInvalido(t *testing.T) {
	app := buildTestApp(apphttp.ActionViewDashboard)
	resp := doRequest(t, app, "Basic abc123")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// El middleware deja UserID y UnitID disponibles para los handlers.
func TestAuthMiddleware_CargaLocals(t *testing.T) {
	app := fiber.New()
	app.Get("/whoami",
		apphttp.AuthMiddleware(testJWTSecret),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{
				"user_id": apphttp.GetUserID(c),
				"unit_id": apphttp.GetUnitID(c),
			})
		},
	)
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", tokenForRole(t, entity.RoleAlmacenista))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testUnitID, body["unit_id"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de la tabla de capacidades
// ──────────────────────────────────────────────────────────────────────────────

func TestHasCapability_Tabla(t *testing.T) {
	cases := []struct {
		role    string
		action  string
		permite bool
	}{
		{entity.RoleAdmin, apphttp.ActionManageCatalog, true},
		{entity.RoleComprador, apphttp.ActionManagePurchase, true},
		{entity.RoleComprador, apphttp.ActionManageBudget, true},
		{entity.RoleComprador, apphttp.ActionMoveStock, false},
		{entity.RoleAlmacenista, apphttp.ActionMoveStock, true},
		{entity.RoleAlmacenista, apphttp.ActionManageRequest, true},
		{entity.RoleAlmacenista, apphttp.ActionFinalizePurchase, false},
		{entity.RoleSolicitante, apphttp.ActionCreateRequest, true},
		{entity.RoleSolicitante, apphttp.ActionViewDashboard, false},
		{"rol-desconocido", apphttp.ActionViewDashboard, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.permite, apphttp.HasCapability(tc.role, tc.action),
			"rol=%s acción=%s", tc.role, tc.action)
	}
}
