package user

import (
	"aicodegen-backend/config"
	"aicodegen-backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, cfg config.JWTConfig) {
	user := router.Group("/user")
	user.GET("/current-user", middleware.AuthMiddleware(cfg), CurrentUser)
}
