package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_Validation(t *testing.T) {
	env := newTestEnv(t)

	cases := []struct {
		name string
		body map[string]any
		want string
	}{
		{"missing role", map[string]any{"name": "A", "email": "a@x.com", "password": "secret1"}, "All fields are required"},
		{"unknown role", map[string]any{"name": "A", "email": "a@x.com", "password": "secret1", "role": "driver"}, "Invalid role"},
		{"short password", map[string]any{"name": "A", "email": "a@x.com", "password": "12345", "role": "vendor"}, "Password must be at least 6 characters"},
		{"bad vendor type", map[string]any{"name": "A", "email": "a@x.com", "password": "123456", "role": "vendor", "vendorType": "spaceship"}, "Invalid vendor type"},
		{"half a position", map[string]any{"name": "A", "email": "a@x.com", "password": "123456", "role": "vendor", "latitude": 28.6}, "Latitude and longitude must be provided together"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, body := env.call(t, env.h.Register, request{method: http.MethodPost, path: "/auth/register", body: tc.body})
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tc.want, body["error"])
		})
	}
}

func TestRegister_ThenLogin(t *testing.T) {
	env := newTestEnv(t)

	rec, body := env.call(t, env.h.Register, request{method: http.MethodPost, path: "/auth/register", body: map[string]any{
		"name": "Asha", "email": "asha@cafe.com", "password": "123456", "role": "vendor",
		"vendorType": "cafe", "latitude": 28.6, "longitude": 77.2,
	}})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["token"])

	user := body["user"].(map[string]any)
	assert.Equal(t, "asha@cafe.com", user["email"])
	assert.Equal(t, "cafe", user["vendorType"])
	assert.NotContains(t, user, "passwordHash")
	assert.Regexp(t, `^user_\d+_[0-9a-f]{9}$`, user["id"])

	rec, body = env.call(t, env.h.Login, request{method: http.MethodPost, path: "/auth/login",
		body: map[string]any{"email": "asha@cafe.com", "password": "123456"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, user["id"], body["user"].(map[string]any)["id"])

	// registered accounts are checked against their hash, not the demo rule
	rec, body = env.call(t, env.h.Login, request{method: http.MethodPost, path: "/auth/login",
		body: map[string]any{"email": "asha@cafe.com", "password": "wrong-but-long"}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid credentials", body["error"])
}

func TestRegister_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)

	rec, body := env.call(t, env.h.Register, request{method: http.MethodPost, path: "/auth/register", body: map[string]any{
		"name": "Copy", "email": "vendor@demo.com", "password": "123456", "role": "supplier",
	}})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, body["error"], "already exists")
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)

	cases := []struct {
		name     string
		body     any
		wantCode int
		wantErr  string
	}{
		{"unknown email", map[string]any{"email": "nobody@demo.com", "password": "whatever"}, http.StatusUnauthorized, "Invalid credentials"},
		{"short password", map[string]any{"email": "vendor@demo.com", "password": "ab"}, http.StatusUnauthorized, "Invalid credentials"},
		{"missing password", map[string]any{"email": "vendor@demo.com"}, http.StatusBadRequest, "Email and password are required"},
		{"malformed body", "{not json", http.StatusBadRequest, "Invalid request data"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, body := env.call(t, env.h.Login, request{method: http.MethodPost, path: "/auth/login", body: tc.body})
			assert.Equal(t, tc.wantCode, rec.Code)
			assert.Equal(t, tc.wantErr, body["error"])
		})
	}
}

func TestLogin_DemoAccount(t *testing.T) {
	env := newTestEnv(t)

	rec, body := env.call(t, env.h.Login, request{method: http.MethodPost, path: "/auth/login",
		body: map[string]any{"email": "supplier@demo.com", "password": "abc"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, map[string]any{
		"id":    "2",
		"email": "supplier@demo.com",
		"name":  "Demo Supplier",
		"role":  "supplier",
	}, body["user"])

	claims, err := env.h.jwt.ValidateToken(body["token"].(string))
	require.NoError(t, err)
	assert.Equal(t, "2", claims.UserID)
	assert.Equal(t, "supplier", claims.Role)
}
