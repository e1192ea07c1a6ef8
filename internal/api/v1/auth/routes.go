package auth

import (
	"aicodegen-backend/config"
	"aicodegen-backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the credential endpoints under /user, next to the profile routes.
func RegisterRoutes(router *gin.RouterGroup, cfg config.JWTConfig) {
	h := NewHandler(cfg)

	auth := router.Group("/user")
	auth.POST("/register", h.Register)
	auth.POST("/login", h.Login)
	auth.POST("/refresh-token", h.RefreshToken)
	auth.POST("/logout", middleware.AuthMiddleware(cfg), h.Logout)
}
