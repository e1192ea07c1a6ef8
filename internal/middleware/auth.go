package middleware

import (
	"net/http"

	"aicodegen-backend/config"
	"aicodegen-backend/internal/models"
	"aicodegen-backend/internal/services"
	"aicodegen-backend/internal/utils"
	"aicodegen-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Context keys set by AuthMiddleware.
const (
	ContextUserKey   = "user"
	ContextTokenKey  = "accessToken"
	ContextClaimsKey = "claims"
)

func AuthMiddleware(cfg config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := utils.ExtractToken(c)
		if err != nil {
			abortWith(c, http.StatusUnauthorized, err.Error())
			return
		}

		isDenylisted, err := services.IsDenylisted(c.Request.Context(), tokenString)
		if err != nil {
			logger.Log.Error("denylist lookup failed", zap.Error(err))
			abortWith(c, http.StatusInternalServerError, "Failed to check token status")
			return
		}
		if isDenylisted {
			abortWith(c, http.StatusUnauthorized, "Token has been revoked")
			return
		}

		claims, err := utils.ValidateToken(tokenString, cfg.AccessSecret)
		if err != nil {
			abortWith(c, http.StatusUnauthorized, "Invalid or expired access token")
			return
		}

		identity, err := services.ResolveIdentity(c.Request.Context(), claims.UserID)
		if err != nil {
			abortWith(c, http.StatusUnauthorized, "User not found")
			return
		}

		c.Set(ContextUserKey, identity)
		c.Set(ContextTokenKey, tokenString)
		c.Set(ContextClaimsKey, claims)
		c.Next()
	}
}

// CurrentIdentity returns the identity attached by AuthMiddleware.
func CurrentIdentity(c *gin.Context) (models.Identity, bool) {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return models.Identity{}, false
	}
	identity, ok := v.(models.Identity)
	return identity, ok
}

// CurrentClaims returns the raw access token and its claims.
func CurrentClaims(c *gin.Context) (string, *utils.Claims) {
	token := c.GetString(ContextTokenKey)
	v, ok := c.Get(ContextClaimsKey)
	if !ok {
		return token, nil
	}
	claims, _ := v.(*utils.Claims)
	return token, claims
}

func abortWith(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, utils.NewErrorResponse(status, message))
}
