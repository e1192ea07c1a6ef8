package ai

import (
	"aicodegen-backend/config"
	"aicodegen-backend/internal/middleware"
	"aicodegen-backend/internal/services"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, cfg config.JWTConfig, svc *services.CodeService) {
	h := NewHandler(svc)

	aiGroup := router.Group("/ai")
	aiGroup.Use(middleware.AuthMiddleware(cfg))
	{
		aiGroup.POST("/generate", h.GenerateCode)
		aiGroup.PUT("/regenerate/:id", h.RegenerateCode)
		aiGroup.POST("/improve", h.ImproveCode)
		aiGroup.POST("/explain", h.ExplainCode)
		aiGroup.GET("/history", h.GetPromptHistory)
		aiGroup.GET("/history/:id", h.GetPromptByID)
		aiGroup.DELETE("/history/:id", h.DeletePrompt)
		aiGroup.GET("/options", h.GetOptions)
	}
}
