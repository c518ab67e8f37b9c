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

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	apphttp "github.com/jhoicas/Bodega-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Bodega-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "bodega-api-test"
	testExpMin    = 60
)

// gatedApp expone GET /gate detrás de AuthMiddleware + RequireRole(roles...).
func gatedApp(roles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/gate",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(roles...),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"user_id": apphttp.GetUserID(c), "role": apphttp.GetRole(c)})
		},
	)
	return app
}

func bearer(t *testing.T, role string, expMin int) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, role, testIssuer, expMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func gate(t *testing.T, app *fiber.App, authHeader string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/gate", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestRequireRole_Matrix(t *testing.T) {
	cases := []struct {
		name    string
		allowed []string
		role    string
		status  int
		code    string
	}{
		{"admin en ruta admin", []string{entity.RoleAdmin}, entity.RoleAdmin, http.StatusOK, ""},
		{"bodeguero en ruta admin o bodeguero", []string{entity.RoleAdmin, entity.RoleBodeguero}, entity.RoleBodeguero, http.StatusOK, ""},
		{"vendedor en ruta admin", []string{entity.RoleAdmin}, entity.RoleVendedor, http.StatusForbidden, "FORBIDDEN"},
		{"bodeguero en ruta vendedor", []string{entity.RoleVendedor}, entity.RoleBodeguero, http.StatusForbidden, "FORBIDDEN"},
		{"token sin rol", []string{entity.RoleAdmin}, "", http.StatusUnauthorized, "MISSING_ROLE"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := gate(t, gatedApp(tc.allowed...), bearer(t, tc.role, testExpMin))
			assert.Equal(t, tc.status, status, body)
			if tc.code != "" {
				assert.Contains(t, body, tc.code)
			}
		})
	}
}

func TestAuthMiddleware_RejectsBadCredentials(t *testing.T) {
	app := gatedApp(entity.RoleAdmin)
	cases := map[string]struct {
		header string
		code   string
	}{
		"sin header":   {"", "MISSING_TOKEN"},
		"sin Bearer":   {"Token abc", "INVALID_TOKEN"},
		"malformado":   {"Bearer token.invalido.aqui", "INVALID_TOKEN"},
		"expirado":     {bearer(t, entity.RoleAdmin, -1), "INVALID_TOKEN"},
		"otro secreto": {"Bearer " + otherSecretToken(t), "INVALID_TOKEN"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			status, body := gate(t, app, tc.header)
			assert.Equal(t, http.StatusUnauthorized, status)
			assert.Contains(t, body, tc.code)
		})
	}
}

func otherSecretToken(t *testing.T) string {
	t.Helper()
	tok, err := pkgjwt.Generate("otro-secreto", testUserID, entity.RoleAdmin, testIssuer, testExpMin)
	require.NoError(t, err)
	return tok
}

func TestAuthMiddleware_LoadsLocals(t *testing.T) {
	status, body := gate(t, gatedApp(entity.RoleBodeguero), bearer(t, entity.RoleBodeguero, testExpMin))
	require.Equal(t, http.StatusOK, status)

	var out map[string]string
	require.NoError(t, json.Unmarshal([]byte(body), &out))
	assert.Equal(t, testUserID, out["user_id"])
	assert.Equal(t, entity.RoleBodeguero, out["role"])
}

// Las rutas administrativas del router real rechazan a vendedor y bodeguero sin tocar el artículo.
func TestRouter_AdminGate(t *testing.T) {
	app := newServer(t)
	admin := login(t, app, "jefe@bodega.test", entity.RoleAdmin)
	keeper := login(t, app, "bodega@bodega.test", entity.RoleBodeguero)
	seller := login(t, app, "venta@bodega.test", entity.RoleVendedor)
	itemID := createItem(t, app, keeper, "Brida", 4, 1)

	for _, tok := range []string{seller, keeper} {
		resp, body := call(t, app, http.MethodDelete, "/api/items/"+itemID, tok, nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, string(body))
		resp, _ = call(t, app, http.MethodPost, "/api/items/"+itemID+"/correction", tok, map[string]any{"quantity": 0})
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	}

	resp, body := call(t, app, http.MethodGet, "/api/items/"+itemID, seller, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	item := decode[map[string]any](t, body)
	assert.EqualValues(t, 4, item["quantity"])
	assert.Equal(t, true, item["active"])

	resp, _ = call(t, app, http.MethodDelete, "/api/items/"+itemID, "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = call(t, app, http.MethodDelete, "/api/items/"+itemID, admin, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}
