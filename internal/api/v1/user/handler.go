package user

import (
	"net/http"

	"aicodegen-backend/internal/middleware"
	"aicodegen-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

// CurrentUser godoc
// @Summary Get current user
// @Description Get the identity attached to the access token
// @Tags user
// @Produce  json
// @Security Bearer
// @Success 200 {object} utils.Response{data=models.Identity}
// @Failure 401 {object} utils.Response
// @Router /user/current-user [get]
func CurrentUser(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.Error(utils.NewUnauthorizedError("Unauthorized"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("User information retrieved successfully", identity))
}
