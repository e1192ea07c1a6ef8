package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"aicodegen-backend/internal/utils"
	"aicodegen-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const genericServerMessage = "Internal server error"

// ErrorHandler renders the last error pushed with c.Error as the response envelope.
// Errors other than *utils.APIError become a 500; their text is hidden in production.
func ErrorHandler(production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err

		var apiErr *utils.APIError
		if !errors.As(err, &apiErr) {
			message := err.Error()
			if production {
				message = genericServerMessage
			}
			apiErr = utils.NewInternalServerError(message).Wrap(err)
		}

		if apiErr.Status >= http.StatusInternalServerError {
			logger.Log.Error("request failed",
				zap.String("request_id", c.GetString(RequestIDKey)),
				zap.Int("status", apiErr.Status),
				zap.Error(err),
				zap.Stack("stack"),
			)
		}

		c.JSON(apiErr.Status, apiErr.Response())
	}
}

// Recovery turns a panic into a 500 envelope.
func Recovery(production bool) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Log.Error("panic recovered",
			zap.String("request_id", c.GetString(RequestIDKey)),
			zap.Any("panic", recovered),
			zap.Stack("stack"),
		)

		message := genericServerMessage
		if !production {
			message = fmt.Sprint(recovered)
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, message))
	})
}
