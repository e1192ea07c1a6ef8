package auth_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"aicodegen-backend/config"
	"aicodegen-backend/internal/api/v1/auth"
	"aicodegen-backend/internal/api/v1/user"
	"aicodegen-backend/internal/database"
	"aicodegen-backend/internal/middleware"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testJWT = config.JWTConfig{
	AccessSecret:  "access-secret",
	AccessTTL:     time.Hour,
	RefreshSecret: "refresh-secret",
	RefreshTTL:    24 * time.Hour,
}

type envelope struct {
	Success bool            `json:"success"`
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.ConnectSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { database.Close() })

	mr := miniredis.RunT(t)
	database.RedisClient = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		database.RedisClient.Close()
		database.RedisClient = nil
	})

	r := gin.New()
	r.Use(middleware.ErrorHandler(false))
	v1 := r.Group("/api/v1")
	auth.RegisterRoutes(v1, testJWT)
	user.RegisterRoutes(v1, testJWT)
	return r
}

func do(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func register(t *testing.T, r *gin.Engine) {
	t.Helper()
	w, _ := do(t, r, http.MethodPost, "/api/v1/user/register", "", gin.H{
		"name": "Ada", "email": "ada@example.com", "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, w.Code)
}

func login(t *testing.T, r *gin.Engine) auth.LoginResponse {
	t.Helper()
	w, env := do(t, r, http.MethodPost, "/api/v1/user/login", "", gin.H{
		"email": "ada@example.com", "password": "secret1",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var resp auth.LoginResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	return resp
}

func TestRegister(t *testing.T) {
	r := setupRouter(t)

	w, env := do(t, r, http.MethodPost, "/api/v1/user/register", "", gin.H{
		"name": "Ada", "email": "Ada@Example.com", "password": "secret1",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, env.Success)
	assert.Equal(t, http.StatusCreated, env.Status)
	assert.Equal(t, "User created successfully", env.Message)

	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "ada@example.com", data["email"])
	assert.NotEmpty(t, data["id"])
	assert.NotContains(t, data, "password")
	assert.NotContains(t, data, "refreshToken")

	w, env = do(t, r, http.MethodPost, "/api/v1/user/register", "", gin.H{
		"name": "Ada", "email": "ada@example.com", "password": "secret1",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "User already exists with this email", env.Message)
}

func TestRegisterValidation(t *testing.T) {
	r := setupRouter(t)

	tests := []struct {
		name  string
		body  interface{}
		field string
	}{
		{"missing name", gin.H{"email": "a@b.co", "password": "secret1"}, "name"},
		{"bad email", gin.H{"name": "Ada", "email": "nope", "password": "secret1"}, "email"},
		{"short password", gin.H{"name": "Ada", "email": "a@b.co", "password": "123"}, "password"},
		{"empty body", nil, "body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := do(t, r, http.MethodPost, "/api/v1/user/register", "", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var details []map[string]interface{}
			require.NoError(t, json.Unmarshal(env.Errors, &details))
			require.NotEmpty(t, details)
			assert.Equal(t, tt.field, details[0]["field"])
		})
	}
}

func TestLogin(t *testing.T) {
	r := setupRouter(t)
	register(t, r)

	w, env := do(t, r, http.MethodPost, "/api/v1/user/login", "", gin.H{"email": "who@example.com", "password": "secret1"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User not found with this email", env.Message)

	w, env = do(t, r, http.MethodPost, "/api/v1/user/login", "", gin.H{"email": "ada@example.com", "password": "wrong-one"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid password", env.Message)

	w, _ = do(t, r, http.MethodPost, "/api/v1/user/login", "", gin.H{"email": "ada@example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = do(t, r, http.MethodPost, "/api/v1/user/login", "", gin.H{"email": "ada@example.com", "password": "secret1"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "User logged in successfully", env.Message)

	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.NotEmpty(t, data["accessToken"])
	assert.NotEmpty(t, data["refreshToken"])
	u := data["user"].(map[string]interface{})
	assert.NotContains(t, u, "password")
	assert.NotContains(t, u, "refreshToken")
}

func TestRefreshAndLogout(t *testing.T) {
	r := setupRouter(t)
	register(t, r)
	tokens := login(t, r)

	w, env := do(t, r, http.MethodGet, "/api/v1/user/current-user", tokens.AccessToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var identity map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &identity))
	assert.Equal(t, "ada@example.com", identity["email"])
	assert.NotContains(t, identity, "password")

	w, env = do(t, r, http.MethodPost, "/api/v1/user/refresh-token", "", gin.H{"refreshToken": tokens.RefreshToken})
	require.Equal(t, http.StatusOK, w.Code)
	var refreshed auth.LoginResponse
	require.NoError(t, json.Unmarshal(env.Data, &refreshed))
	assert.NotEqual(t, tokens.RefreshToken, refreshed.RefreshToken)

	w, _ = do(t, r, http.MethodPost, "/api/v1/user/refresh-token", "", gin.H{"refreshToken": tokens.RefreshToken})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = do(t, r, http.MethodPost, "/api/v1/user/logout", refreshed.AccessToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, env = do(t, r, http.MethodGet, "/api/v1/user/current-user", refreshed.AccessToken, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Token has been revoked", env.Message)

	w, _ = do(t, r, http.MethodPost, "/api/v1/user/refresh-token", "", gin.H{"refreshToken": refreshed.RefreshToken})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutRequiresToken(t *testing.T) {
	r := setupRouter(t)

	w, env := do(t, r, http.MethodPost, "/api/v1/user/logout", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "authorization header is required", env.Message)
}
