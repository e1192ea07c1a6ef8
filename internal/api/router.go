package api

import (
	"net/http"
	"time"

	"aicodegen-backend/config"
	_ "aicodegen-backend/docs"
	"aicodegen-backend/internal/api/v1/ai"
	"aicodegen-backend/internal/api/v1/auth"
	"aicodegen-backend/internal/api/v1/health"
	userRoutes "aicodegen-backend/internal/api/v1/user"
	"aicodegen-backend/internal/middleware"
	"aicodegen-backend/internal/services"
	"aicodegen-backend/internal/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// NewRouter wires middleware and every route group. Connections and the
// code service are created by the caller.
func NewRouter(cfg *config.Config, codeService *services.CodeService) *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.Logger(),
		middleware.Recovery(cfg.IsProduction()),
		middleware.ErrorHandler(cfg.IsProduction()),
	)

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           5 * time.Minute,
	}))

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "Route not found"))
	})

	// API v1
	v1 := router.Group("/api/v1")
	{
		health.RegisterRoutes(v1)
		auth.RegisterRoutes(v1, cfg.JWT)
		userRoutes.RegisterRoutes(v1, cfg.JWT)
		ai.RegisterRoutes(v1, cfg.JWT, codeService)
	}

	return router
}
