package health

import (
	"net/http"

	"aicodegen-backend/internal/database"
	"aicodegen-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

// StatusResponse reports the reachability of each backing store.
type StatusResponse struct {
	Database string `json:"database"`
	Redis    string `json:"redis"`
}

// Health godoc
// @Summary      Health check
// @Description  Report whether the database and redis are reachable.
// @Tags         health
// @Produce      json
// @Success      200 {object} utils.Response{data=StatusResponse}
// @Failure      503 {object} utils.Response{data=StatusResponse}
// @Router       /health [get]
func Health(c *gin.Context) {
	status := StatusResponse{Database: "up", Redis: "disabled"}
	code := http.StatusOK

	if database.DB == nil {
		status.Database = "down"
		code = http.StatusServiceUnavailable
	} else if sqlDB, err := database.DB.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
		status.Database = "down"
		code = http.StatusServiceUnavailable
	}

	if database.RedisClient != nil {
		status.Redis = "up"
		if err := database.RedisClient.Ping(c.Request.Context()).Err(); err != nil {
			status.Redis = "down"
			code = http.StatusServiceUnavailable
		}
	}

	message := "Service is healthy"
	if code != http.StatusOK {
		message = "Service is degraded"
	}
	c.JSON(code, utils.NewResponse(code, message, status))
}

func RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/health", Health)
}
