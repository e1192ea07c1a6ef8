package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken("user-1", "secret", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.InDelta(t, time.Hour.Seconds(), claims.RemainingLifetime().Seconds(), 5)
}

func TestValidateTokenRejects(t *testing.T) {
	valid, err := GenerateToken("user-1", "secret", time.Hour)
	require.NoError(t, err)

	expired, err := GenerateToken("user-1", "secret", -time.Minute)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{UserID: "user-1"}).SignedString([]byte("secret"))
	require.NoError(t, err)

	noSubject, err := GenerateToken("", "secret", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		secret string
	}{
		{"Wrong secret", valid, "other"},
		{"Expired", expired, "secret"},
		{"Missing expiry", noExpiry, "secret"},
		{"Missing subject", noSubject, "secret"},
		{"Garbage", "invalid.token.signature", "secret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateToken(tt.token, tt.secret)
			assert.Error(t, err)
		})
	}
}

func TestGenerateTokenRequiresSecret(t *testing.T) {
	_, err := GenerateToken("user-1", "", time.Hour)
	assert.Error(t, err)
}

func TestTokensAreUnique(t *testing.T) {
	a, err := GenerateToken("user-1", "secret", time.Hour)
	require.NoError(t, err)
	b, err := GenerateToken("user-1", "secret", time.Hour)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestExtractToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name        string
		header      string
		expected    string
		expectedErr string
	}{
		{"Missing header", "", "", "authorization header is required"},
		{"Wrong scheme", "Basic abc", "", "bearer token not found"},
		{"Empty bearer", "Bearer ", "", "bearer token not found"},
		{"Valid", "Bearer abc.def.ghi", "abc.def.ghi", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request, _ = http.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				c.Request.Header.Set("Authorization", tt.header)
			}

			token, err := ExtractToken(c)
			if tt.expectedErr != "" {
				assert.EqualError(t, err, tt.expectedErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, token)
		})
	}
}
