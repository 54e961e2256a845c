package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Meenakshi-1306/Tutedude/internal/model"
	"github.com/Meenakshi-1306/Tutedude/pkg/config"
	"github.com/Meenakshi-1306/Tutedude/pkg/jwtutil"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJWT() *jwtutil.JWTUtil {
	return jwtutil.NewJWTUtil(&config.JWTConfig{SigningKey: "test-key", ExpirationHours: 1})
}

func runAuth(t *testing.T, header string) (*httptest.ResponseRecorder, echo.Context, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	err := Auth(newJWT())(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})(c)
	require.NoError(t, err)
	return rec, c, called
}

func TestAuth_ValidToken(t *testing.T) {
	token, err := newJWT().GenerateToken("2", "supplier@demo.com", "supplier")
	require.NoError(t, err)

	rec, c, called := runAuth(t, "Bearer "+token)
	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2", UserIDOf(c))
	assert.Equal(t, model.RoleSupplier, RoleOf(c))
	assert.Equal(t, "supplier@demo.com", c.Get(EmailKey))
}

func TestAuth_MissingToken(t *testing.T) {
	rec, _, called := runAuth(t, "")
	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "authentication required")
}

func TestAuth_InvalidToken(t *testing.T) {
	rec, _, called := runAuth(t, "Bearer not-a-token")
	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid token")
}

func TestRequireRole(t *testing.T) {
	e := echo.New()
	handler := RequireRole(model.RoleSupplier)(func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})

	for _, tc := range []struct {
		role model.Role
		want int
	}{
		{model.RoleSupplier, http.StatusNoContent},
		{model.RoleVendor, http.StatusForbidden},
		{"", http.StatusForbidden},
	} {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodPost, "/api/products", nil), rec)
		if tc.role != "" {
			c.Set(RoleKey, tc.role)
		}
		require.NoError(t, handler(c))
		assert.Equal(t, tc.want, rec.Code, "role %q", tc.role)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	e := echo.New()
	handler := RequestIDMiddleware(func(c echo.Context) error { return nil })

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, handler(c))
	generated := rec.Header().Get(echo.HeaderXRequestID)
	assert.NotEmpty(t, generated)
	assert.Equal(t, generated, c.Get("request_id"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderXRequestID, "abc-123")
	rec = httptest.NewRecorder()
	require.NoError(t, handler(e.NewContext(req, rec)))
	assert.Equal(t, "abc-123", rec.Header().Get(echo.HeaderXRequestID))
}
