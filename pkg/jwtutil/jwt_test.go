package jwtutil

import (
	"testing"
	"time"

	"github.com/Meenakshi-1306/Tutedude/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	j := NewJWTUtil(&config.JWTConfig{SigningKey: "test-key", ExpirationHours: 1})

	token, err := j.GenerateToken("vendor_demo_1", "rajesh@vendor.com", "vendor")
	require.NoError(t, err)

	claims, err := j.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "vendor_demo_1", claims.UserID)
	assert.Equal(t, "rajesh@vendor.com", claims.Email)
	assert.Equal(t, "vendor", claims.Role)
}

func TestValidate_WrongKey(t *testing.T) {
	issuer := NewJWTUtil(&config.JWTConfig{SigningKey: "key-a", ExpirationHours: 1})
	verifier := NewJWTUtil(&config.JWTConfig{SigningKey: "key-b", ExpirationHours: 1})

	token, err := issuer.GenerateToken("u1", "a@b.c", "supplier")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidate_Expired(t *testing.T) {
	j := NewJWTUtil(&config.JWTConfig{SigningKey: "test-key", ExpirationHours: 1})
	j.now = func() time.Time { return time.Now().Add(-3 * time.Hour) }

	token, err := j.GenerateToken("u1", "a@b.c", "vendor")
	require.NoError(t, err)

	_, err = j.ValidateToken(token)
	assert.Error(t, err)
}

func TestMissingConfig(t *testing.T) {
	j := NewJWTUtil(nil)

	_, err := j.GenerateToken("u1", "a@b.c", "vendor")
	assert.Error(t, err)
	_, err = j.ValidateToken("anything")
	assert.Error(t, err)
}
