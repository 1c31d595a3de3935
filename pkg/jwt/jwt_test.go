package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	token, err := GenerateToken("abc123", "a@b.io", "user", "secret", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "abc123", claims.UserID)
	assert.Equal(t, "a@b.io", claims.Email)
	assert.Equal(t, "user", claims.Role)
}

func TestValidateRejects(t *testing.T) {
	good, err := GenerateToken("abc123", "a@b.io", "user", "secret", time.Hour)
	require.NoError(t, err)
	expired, err := GenerateToken("abc123", "a@b.io", "user", "secret", -time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		secret string
	}{
		{"wrong secret", good, "other"},
		{"expired", expired, "secret"},
		{"garbage", "not.a.token", "secret"},
		{"empty", "", "secret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateToken(tt.token, tt.secret)
			assert.Error(t, err)
		})
	}
}
