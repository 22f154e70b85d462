package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	pkgjwt "github.com/jhoicas/bodega-api/pkg/jwt"
)

const (
	testJWTSecret   = "test-secret-key-for-unit-tests"
	testUserID      = "00000000-0000-0000-0000-000000000001"
	testCompanyID   = "00000000-0000-0000-0000-000000000002"
	testIssuer      = "bodega-api-test"
	testExpMin      = 60
	loteInexistente = "7c0e9a52-0000-4000-8000-0000000000aa"
)

func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	return bearer(t, testJWTSecret, role, testExpMin)
}

func bearer(t *testing.T, secret, role string, expMin int) string {
	t.Helper()
	tok, err := pkgjwt.Generate(secret, testUserID, testCompanyID, role, testIssuer, expMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

// send lanza una petición sin cuerpo con el header Authorization tal cual.
func (f *apiFixture) send(t *testing.T, method, path, auth string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestRutasDeSupervisor_OperadorRecibe403(t *testing.T) {
	f := newAPI(t)
	routes := []struct{ method, path string }{
		{http.MethodPost, "/api/transactions/" + loteInexistente + "/undo"},
		{http.MethodPut, "/api/putaway-batches/" + loteInexistente},
		{http.MethodPost, "/api/putaway-batches/" + loteInexistente + "/undo"},
	}
	for _, r := range routes {
		t.Run(r.method+" "+r.path, func(t *testing.T) {
			resp := f.send(t, r.method, r.path, tokenForRole(t, pkgjwt.RoleOperador))
			require.Equal(t, http.StatusForbidden, resp.StatusCode)
			assert.Equal(t, "FORBIDDEN", decode[dto.ErrorResponse](t, resp).Code)

			resp = f.send(t, r.method, r.path, tokenForRole(t, pkgjwt.RoleSupervisor))
			defer resp.Body.Close()
			assert.NotEqual(t, http.StatusForbidden, resp.StatusCode)
			assert.NotEqual(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestConsultas_AmbosRolesAcceden(t *testing.T) {
	f := newAPI(t)
	f.putaway(t, itemTornillo, "A-01-01", 2)
	for _, role := range []string{pkgjwt.RoleOperador, pkgjwt.RoleSupervisor} {
		resp := f.send(t, http.MethodGet, "/api/items/"+itemTornillo+"/stock", tokenForRole(t, role))
		assert.Equal(t, http.StatusOK, resp.StatusCode, role)
		resp.Body.Close()
	}
}

func TestAuth_RechazosDeToken(t *testing.T) {
	f := newAPI(t)
	path := "/api/items/" + itemTornillo + "/stock"
	cases := []struct {
		name   string
		auth   func(t *testing.T) string
		status int
		code   string
	}{
		{"sin header", func(*testing.T) string { return "" }, http.StatusUnauthorized, "MISSING_TOKEN"},
		{"sin esquema Bearer", func(*testing.T) string { return "Token abc" }, http.StatusUnauthorized, "INVALID_TOKEN"},
		{"malformado", func(*testing.T) string { return "Bearer token.invalido.aqui" }, http.StatusUnauthorized, "INVALID_TOKEN"},
		{"expirado", func(t *testing.T) string { return bearer(t, testJWTSecret, pkgjwt.RoleSupervisor, -1) }, http.StatusUnauthorized, "INVALID_TOKEN"},
		{"firmado con otro secret", func(t *testing.T) string { return bearer(t, "otro-secret", pkgjwt.RoleSupervisor, testExpMin) }, http.StatusUnauthorized, "INVALID_TOKEN"},
		{"sin rol", func(t *testing.T) string { return bearer(t, testJWTSecret, "", testExpMin) }, http.StatusUnauthorized, "MISSING_ROLE"},
		{"rol ajeno a la bodega", func(t *testing.T) string { return tokenForRole(t, "vendedor") }, http.StatusForbidden, "FORBIDDEN"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := f.send(t, http.MethodGet, path, tc.auth(t))
			require.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.code, decode[dto.ErrorResponse](t, resp).Code)
		})
	}
}
