package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"aicodegen-backend/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newErrorRouter(production bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Logger(), Recovery(production), ErrorHandler(production))

	r.GET("/api-error", func(c *gin.Context) {
		c.Error(utils.NewNotFoundError("Prompt not found"))
	})
	r.GET("/validation", func(c *gin.Context) {
		apiErr := utils.NewBadRequestError("prompt is required")
		apiErr.Errors = []utils.ValidationErrorDetail{{Field: "prompt", Message: "prompt is required"}}
		c.Error(apiErr)
	})
	r.GET("/raw-error", func(c *gin.Context) {
		c.Error(errors.New("db exploded"))
	})
	r.GET("/panic", func(c *gin.Context) {
		panic("kaboom")
	})
	r.GET("/ok", func(c *gin.Context) {
		c.JSON(http.StatusOK, utils.NewSuccessResponse("fine", nil))
	})
	return r
}

func doRequest(r *gin.Engine, path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestErrorHandler(t *testing.T) {
	r := newErrorRouter(false)

	w, body := doRequest(r, "/api-error")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, float64(404), body["status"])
	assert.Equal(t, "Prompt not found", body["message"])

	w, body = doRequest(r, "/validation")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	errs, ok := body["errors"].([]interface{})
	require.True(t, ok)
	assert.Len(t, errs, 1)

	w, body = doRequest(r, "/raw-error")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "db exploded", body["message"])

	w, body = doRequest(r, "/ok")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestErrorHandlerHidesDetailsInProduction(t *testing.T) {
	r := newErrorRouter(true)

	w, body := doRequest(r, "/raw-error")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, genericServerMessage, body["message"])

	w, body = doRequest(r, "/panic")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, genericServerMessage, body["message"])
}

func TestRecoveryShowsPanicOutsideProduction(t *testing.T) {
	r := newErrorRouter(false)

	w, body := doRequest(r, "/panic")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "kaboom", body["message"])
}

func TestLoggerKeepsIncomingRequestID(t *testing.T) {
	r := newErrorRouter(false)

	req, _ := http.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set("X-Request-ID", "req-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
}
