package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mzohaibq/roomstay/internal/model"
	"github.com/mzohaibq/roomstay/internal/utils"
)

const testSecret = "test-secret"

func buildApp(t *testing.T) *echo.Echo {
	t.Helper()
	e := echo.New()

	e.GET("/protected", func(c echo.Context) error {
		uid, _ := CurrentUserID(c)
		return c.JSON(http.StatusOK, echo.Map{"user_id": uid, "role": CurrentRole(c)})
	}, JWTAuth(testSecret))

	e.GET("/optional", func(c echo.Context) error {
		uid, ok := CurrentUserID(c)
		return c.JSON(http.StatusOK, echo.Map{"authenticated": ok, "user_id": uid})
	}, OptionalAuth(testSecret))

	e.GET("/vendor-only", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}, JWTAuth(testSecret), RequireRole(model.RoleVendor))

	return e
}

func bearer(t *testing.T, userID uint64, role string) string {
	t.Helper()
	tok, err := utils.NewAccessToken(testSecret, userID, role, 5)
	require.NoError(t, err)
	return "Bearer " + tok.Token
}

func do(e *echo.Echo, path, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestJWTAuth(t *testing.T) {
	e := buildApp(t)

	assert.Equal(t, http.StatusUnauthorized, do(e, "/protected", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(e, "/protected", "Bearer garbage").Code)
	assert.Equal(t, http.StatusUnauthorized, do(e, "/protected", "Basic abc").Code)

	rec := do(e, "/protected", bearer(t, 7, model.RoleCustomer))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"user_id":7`)
	assert.Contains(t, rec.Body.String(), `"role":"CUSTOMER"`)
}

func TestJWTAuthWrongSecret(t *testing.T) {
	e := buildApp(t)

	tok, err := utils.NewAccessToken("other-secret", 7, model.RoleCustomer, 5)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, do(e, "/protected", "Bearer "+tok.Token).Code)
}

func TestOptionalAuth(t *testing.T) {
	e := buildApp(t)

	// Anonymous passes through as guest.
	rec := do(e, "/optional", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"authenticated":false`)

	// A valid token authenticates.
	rec = do(e, "/optional", bearer(t, 9, model.RoleCustomer))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"authenticated":true`)
	assert.Contains(t, rec.Body.String(), `"user_id":9`)

	// A present-but-invalid token is rejected, not downgraded.
	assert.Equal(t, http.StatusUnauthorized, do(e, "/optional", "Bearer garbage").Code)
}

func TestRequireRole(t *testing.T) {
	e := buildApp(t)

	assert.Equal(t, http.StatusOK, do(e, "/vendor-only", bearer(t, 1, model.RoleVendor)).Code)
	assert.Equal(t, http.StatusForbidden, do(e, "/vendor-only", bearer(t, 2, model.RoleCustomer)).Code)
	assert.Equal(t, http.StatusForbidden, do(e, "/vendor-only", bearer(t, 3, model.RoleAdmin)).Code)
	assert.Equal(t, http.StatusUnauthorized, do(e, "/vendor-only", "").Code)
}
